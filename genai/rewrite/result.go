package rewrite

import "github.com/google/uuid"

// ErrorPrefix starts the text stored for a persona whose rewrite failed.
const ErrorPrefix = "Error: Failed to rewrite message - "

// PersonaResult is the outcome of rewriting a message for a single persona.
type PersonaResult struct {
	ID            string `json:"id" yaml:"id"`
	PersonaLabel  string `json:"personaLabel" yaml:"personaLabel"`
	RewrittenText string `json:"rewrittenText" yaml:"rewrittenText"`
}

// NewResult creates a result with a fresh ID.
func NewResult(label, text string) *PersonaResult {
	return &PersonaResult{ID: uuid.New().String(), PersonaLabel: label, RewrittenText: text}
}

// NewErrorResult records a failed rewrite in-band.
func NewErrorResult(label string, err error) *PersonaResult {
	return NewResult(label, ErrorPrefix+err.Error())
}
