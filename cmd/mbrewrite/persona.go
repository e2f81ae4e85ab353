package mbrewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/mbrewrite/genai/persona"
)

// PersonaCmd groups persona management commands.
type PersonaCmd struct {
	List   PersonaListCmd   `command:"list" description:"List personas; selected ones are marked"`
	Add    PersonaAddCmd    `command:"add" description:"Add a custom persona"`
	Remove PersonaRemoveCmd `command:"remove" description:"Remove custom personas by ID or label"`
	Select PersonaSelectCmd `command:"select" description:"Toggle or replace the persisted selection"`
}

type PersonaListCmd struct {
	Selected bool `short:"s" long:"selected" description:"only selected personas"`
}

func (c *PersonaListCmd) Execute(_ []string) error {
	sess, err := openSession(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()
	for _, p := range sess.Personas() {
		selected := sess.IsSelected(p.ID)
		if c.Selected && !selected {
			continue
		}
		mark := " "
		if selected {
			mark = "x"
		}
		if p.IsBuiltin {
			fmt.Fprintf(stdout, "[%s] %-4s - %s\n", mark, p.Label, summary(p))
			continue
		}
		fmt.Fprintf(stdout, "[%s] %s (%s) - %s\n", mark, p.Label, p.ID, summary(p))
	}
	return nil
}

type PersonaAddCmd struct {
	Label       string `short:"l" long:"label" description:"persona label" required:"yes"`
	Description string `short:"d" long:"description" description:"persona description used in the prompt" required:"yes"`
	Select      bool   `short:"s" long:"select" description:"select the new persona"`
}

func (c *PersonaAddCmd) Execute(_ []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	p, err := sess.AddCustom(ctx, c.Label, c.Description)
	if err != nil {
		return err
	}
	if c.Select {
		if _, err = sess.Toggle(ctx, p.ID); err != nil {
			return err
		}
	}
	fmt.Fprintln(stdout, p.ID)
	return nil
}

type PersonaRemoveCmd struct{}

func (c *PersonaRemoveCmd) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("persona ID or label is required")
	}
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	for _, ref := range args {
		p, ok := customPersona(sess.Catalog(), ref)
		if !ok {
			fmt.Fprintf(stderr, "Warning: custom persona '%s' not found. Skipping.\n", ref)
			continue
		}
		if err := sess.RemoveCustom(ctx, p.ID); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Removed %s.\n", p.Label)
	}
	return nil
}

type PersonaSelectCmd struct {
	Only  bool `long:"only" description:"replace the selection with the given personas"`
	Clear bool `long:"clear" description:"clear the selection"`
}

func (c *PersonaSelectCmd) Execute(args []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	var personas []*persona.Persona
	for _, ref := range args {
		p, ok := resolvePersona(sess.Catalog(), ref)
		if !ok {
			return fmt.Errorf("unknown persona: %v", ref)
		}
		personas = append(personas, p)
	}
	if c.Clear || c.Only {
		var ids []string
		if c.Only {
			for _, p := range personas {
				ids = append(ids, p.ID)
			}
		}
		if err := sess.Select(ctx, ids...); err != nil {
			return err
		}
	} else {
		for _, p := range personas {
			selected, err := sess.Toggle(ctx, p.ID)
			if err != nil {
				return err
			}
			state := "Deselected"
			if selected {
				state = "Selected"
			}
			fmt.Fprintf(stdout, "%s %s.\n", state, p.Label)
		}
	}
	var labels []string
	for _, p := range sess.Selected() {
		labels = append(labels, p.Label)
	}
	if len(labels) == 0 {
		fmt.Fprintln(stdout, "Selection: (none)")
		return nil
	}
	fmt.Fprintf(stdout, "Selection: %s\n", strings.Join(labels, ", "))
	return nil
}

func customPersona(catalog *persona.Catalog, ref string) (*persona.Persona, bool) {
	for _, p := range catalog.Customs() {
		if p.ID == ref || strings.EqualFold(p.Label, strings.TrimSpace(ref)) {
			return p, true
		}
	}
	return nil, false
}
