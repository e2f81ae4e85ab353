// Package persona defines rewrite personas and the catalog holding them.
package persona

import (
	"strings"

	"github.com/google/uuid"
)

var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/viant/mbrewrite/persona"))

// Persona describes a communication style a message can be rewritten for.
type Persona struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	IsBuiltin   bool   `json:"isBuiltin" yaml:"isBuiltin"`
}

// New creates a custom persona with a random ID.
func New(label, description string) *Persona {
	return &Persona{
		ID:          uuid.New().String(),
		Label:       strings.TrimSpace(label),
		Description: strings.TrimSpace(description),
	}
}

// BuiltinID returns the stable ID of the built-in persona with the given label.
func BuiltinID(label string) string {
	return uuid.NewSHA1(namespace, []byte(label)).String()
}

// Clone returns a shallow copy.
func (p *Persona) Clone() *Persona {
	if p == nil {
		return nil
	}
	ret := *p
	return &ret
}
