package provider

import (
	"context"

	basecfg "github.com/viant/mbrewrite/genai/llm/provider/base"
)

// APIKeyFunc resolves the API key at call time.
type APIKeyFunc func(ctx context.Context) (string, error)

type Options struct {
	Model         string                `yaml:"model,omitempty" json:"model,omitempty"`
	Provider      string                `yaml:"provider,omitempty" json:"provider,omitempty"`
	URL           string                `yaml:"url,omitempty" json:"url,omitempty"`
	Temperature   *float64              `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	MaxTokens     int                   `yaml:"maxTokens,omitempty" json:"maxTokens,omitempty"`
	TimeoutSec    int                   `yaml:"timeoutSec,omitempty" json:"timeoutSec,omitempty"`
	APIKey        APIKeyFunc            `yaml:"-" json:"-"`
	UsageListener basecfg.UsageListener `yaml:"-" json:"-"`
	Logging       bool                  `yaml:"-" json:"-"`
}
