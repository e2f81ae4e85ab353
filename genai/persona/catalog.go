package persona

import (
	"strings"
	"sync"

	"github.com/viant/mbrewrite/shared"
)

// Catalog holds the built-in personas and the user-defined ones.
type Catalog struct {
	mux      sync.RWMutex
	builtins []*Persona
	customs  []*Persona
}

// NewCatalog creates a catalog with the built-in personas.
func NewCatalog() *Catalog {
	return &Catalog{builtins: Builtins()}
}

// Builtins returns copies of the built-in personas.
func (c *Catalog) Builtins() []*Persona {
	return clones(c.builtins)
}

// Customs returns copies of the custom personas in creation order.
func (c *Catalog) Customs() []*Persona {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return clones(c.customs)
}

// List returns built-in personas followed by custom ones.
func (c *Catalog) List() []*Persona {
	c.mux.RLock()
	defer c.mux.RUnlock()
	ret := make([]*Persona, 0, len(c.builtins)+len(c.customs))
	ret = append(ret, clones(c.builtins)...)
	return append(ret, clones(c.customs)...)
}

// AddCustom validates and adds a custom persona.
func (c *Catalog) AddCustom(label, description string) (*Persona, error) {
	p := New(label, description)
	if p.Label == "" {
		return nil, shared.NewValidationError("label", "persona label is required")
	}
	if p.Description == "" {
		return nil, shared.NewValidationError("description", "persona description is required")
	}
	c.mux.Lock()
	c.customs = append(c.customs, p)
	c.mux.Unlock()
	return p.Clone(), nil
}

// RemoveCustom removes a custom persona; it reports whether anything was removed.
// Built-in personas cannot be removed.
func (c *Catalog) RemoveCustom(id string) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	for i, p := range c.customs {
		if p.ID == id {
			c.customs = append(c.customs[:i:i], c.customs[i+1:]...)
			return true
		}
	}
	return false
}

// SetCustoms replaces custom personas, typically with previously persisted ones.
// Entries with an empty ID, label or description are dropped.
func (c *Catalog) SetCustoms(personas []*Persona) {
	customs := make([]*Persona, 0, len(personas))
	seen := map[string]bool{}
	for _, p := range personas {
		if p == nil || p.ID == "" || seen[p.ID] {
			continue
		}
		item := p.Clone()
		item.Label = strings.TrimSpace(item.Label)
		item.Description = strings.TrimSpace(item.Description)
		item.IsBuiltin = false
		if item.Label == "" || item.Description == "" {
			continue
		}
		seen[item.ID] = true
		customs = append(customs, item)
	}
	c.mux.Lock()
	c.customs = customs
	c.mux.Unlock()
}

// Find returns a persona by ID.
func (c *Catalog) Find(id string) (*Persona, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	for _, group := range [][]*Persona{c.builtins, c.customs} {
		for _, p := range group {
			if p.ID == id {
				return p.Clone(), true
			}
		}
	}
	return nil, false
}

// Lookup finds a persona by its label, ignoring case. Built-in personas win.
func (c *Catalog) Lookup(label string) (*Persona, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, false
	}
	c.mux.RLock()
	defer c.mux.RUnlock()
	for _, group := range [][]*Persona{c.builtins, c.customs} {
		for _, p := range group {
			if strings.EqualFold(p.Label, label) {
				return p.Clone(), true
			}
		}
	}
	return nil, false
}

func clones(personas []*Persona) []*Persona {
	ret := make([]*Persona, len(personas))
	for i, p := range personas {
		ret[i] = p.Clone()
	}
	return ret
}
