package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/mbrewrite/genai/llm"
	"github.com/viant/mbrewrite/genai/persona"
)

const (
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 500
)

// Generator rewrites a message for a single persona with one model call.
type Generator struct {
	model   llm.Model
	options llm.Options
}

type GeneratorOption func(g *Generator)

// WithModelName overrides the requested model.
func WithModelName(name string) GeneratorOption {
	return func(g *Generator) {
		if name != "" {
			g.options.Model = name
		}
	}
}

func WithTemperature(temperature float64) GeneratorOption {
	return func(g *Generator) {
		if temperature > 0 {
			g.options.Temperature = temperature
		}
	}
}

func WithMaxTokens(maxTokens int) GeneratorOption {
	return func(g *Generator) {
		if maxTokens > 0 {
			g.options.MaxTokens = maxTokens
		}
	}
}

// NewGenerator creates a generator backed by model.
func NewGenerator(model llm.Model, opts ...GeneratorOption) *Generator {
	ret := &Generator{
		model: model,
		options: llm.Options{
			Model:       DefaultModel,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Generate returns message rewritten for p, trimmed of surrounding whitespace.
func (g *Generator) Generate(ctx context.Context, message string, p *persona.Persona) (string, error) {
	if p == nil {
		return "", fmt.Errorf("persona was nil")
	}
	content, err := Prompt(message, p)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt for %v: %w", p.Label, err)
	}
	options := g.options
	request := &llm.GenerateRequest{
		Messages: []llm.Message{
			llm.NewSystemMessage(SystemInstruction),
			llm.NewUserMessage(content),
		},
		Options: &options,
	}
	response, err := g.model.Generate(ctx, request)
	if err != nil {
		return "", err
	}
	text, ok := response.FirstContent()
	if !ok {
		return "", &llm.UpstreamError{Message: "invalid response from OpenAI API"}
	}
	return strings.TrimSpace(text), nil
}
