package history

import (
	"time"

	"github.com/viant/mbrewrite/genai/rewrite"
)

// Entry is one submitted message together with its rewrites.
type Entry struct {
	ID              string                   `json:"id" yaml:"id"`
	OriginalMessage string                   `json:"originalMessage" yaml:"originalMessage"`
	Timestamp       time.Time                `json:"timestamp" yaml:"timestamp"`
	Results         []*rewrite.PersonaResult `json:"results" yaml:"results"`
}

// Clone returns a deep copy.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	ret := *e
	ret.Results = make([]*rewrite.PersonaResult, len(e.Results))
	for i, result := range e.Results {
		if result == nil {
			continue
		}
		item := *result
		ret.Results[i] = &item
	}
	return &ret
}
