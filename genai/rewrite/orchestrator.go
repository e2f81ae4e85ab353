package rewrite

import (
	"context"
	"time"

	"github.com/viant/mbrewrite/genai/persona"
	elog "github.com/viant/mbrewrite/internal/log"
	"github.com/viant/mbrewrite/shared"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 4
	DefaultTimeout     = 60 * time.Second
	previewRunes       = 80
)

// Rewriter rewrites a message for a single persona.
type Rewriter interface {
	Generate(ctx context.Context, message string, p *persona.Persona) (string, error)
}

// Orchestrator fans a message out to a rewriter once per persona.
type Orchestrator struct {
	rewriter    Rewriter
	concurrency int
	timeout     time.Duration
}

type Option func(o *Orchestrator)

// WithConcurrency caps the number of in-flight rewrites.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithTimeout sets the per-persona call timeout; zero keeps the default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

func NewOrchestrator(rewriter Rewriter, opts ...Option) *Orchestrator {
	ret := &Orchestrator{rewriter: rewriter, concurrency: DefaultConcurrency, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// RewriteForPersonas returns one result per persona in input order. A failed
// rewrite is recorded in its result text and never aborts the others. When ctx
// is cancelled no partial results are returned.
func (o *Orchestrator) RewriteForPersonas(ctx context.Context, message string, personas []*persona.Persona) ([]*PersonaResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]*PersonaResult, len(personas))
	group := &errgroup.Group{}
	group.SetLimit(o.concurrency)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i, p := range personas {
			group.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				results[i] = o.rewrite(ctx, message, p)
				return nil
			})
		}
		_ = group.Wait()
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *Orchestrator) rewrite(ctx context.Context, message string, p *persona.Persona) *PersonaResult {
	label := ""
	if p != nil {
		label = p.Label
	}
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	elog.Publish(elog.RewriteInput, map[string]interface{}{"persona": label, "message": shared.RuneTruncate(message, previewRunes)})
	text, err := o.rewriter.Generate(callCtx, message, p)
	if err != nil {
		elog.Publish(elog.RewriteError, map[string]interface{}{"persona": label, "error": err.Error()})
		return NewErrorResult(label, err)
	}
	elog.Publish(elog.RewriteOutput, map[string]interface{}{"persona": label, "text": shared.RuneTruncate(text, previewRunes)})
	return NewResult(label, text)
}
