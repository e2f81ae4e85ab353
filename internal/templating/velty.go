package templating

import (
	"fmt"

	"github.com/viant/velty"
)

// Template is a velty template compiled once against a fixed set of variable names.
type Template struct {
	render func(vars map[string]string) (string, error)
}

// Compile compiles tmpl with string variables named by names.
func Compile(tmpl string, names ...string) (*Template, error) {
	planner := velty.New()
	for _, name := range names {
		if err := planner.DefineVariable(name, ""); err != nil {
			return nil, fmt.Errorf("failed to define template variable %v: %w", name, err)
		}
	}
	exec, newState, err := planner.Compile([]byte(tmpl))
	if err != nil {
		return nil, fmt.Errorf("failed to compile template: %w", err)
	}
	render := func(vars map[string]string) (string, error) {
		state := newState()
		for _, name := range names {
			if err := state.SetValue(name, vars[name]); err != nil {
				return "", err
			}
		}
		if err := exec.Exec(state); err != nil {
			return "", err
		}
		return string(state.Buffer.Bytes()), nil
	}
	return &Template{render: render}, nil
}

// Execute renders the template; variables missing from vars render empty.
func (t *Template) Execute(vars map[string]string) (string, error) {
	return t.render(vars)
}
