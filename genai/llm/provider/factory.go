package provider

import (
	"context"
	"fmt"

	"github.com/viant/mbrewrite/genai/llm"
	"github.com/viant/mbrewrite/genai/llm/provider/openai"
)

type Factory struct{}

// CreateModel creates a new language model instance
func (f *Factory) CreateModel(ctx context.Context, options *Options) (llm.Model, error) {
	if options == nil {
		return nil, fmt.Errorf("options were nil")
	}
	providerName := options.Provider
	if providerName == "" {
		providerName = ProviderOpenAI
	}
	switch providerName {
	case ProviderOpenAI, ProviderOpenAICompatible:
		if providerName == ProviderOpenAICompatible && options.URL == "" {
			return nil, fmt.Errorf("url is required for provider %v", providerName)
		}
		opts := []openai.ClientOption{
			openai.WithBaseURL(options.URL),
			openai.WithUsageListener(options.UsageListener),
			openai.WithLoggingEnabled(options.Logging),
		}
		if options.APIKey != nil {
			opts = append(opts, openai.WithAPIKeyProvider(openai.APIKeyProvider(options.APIKey)))
		}
		if options.Temperature != nil {
			opts = append(opts, openai.WithTemperature(*options.Temperature))
		}
		if options.MaxTokens > 0 {
			opts = append(opts, openai.WithMaxTokens(options.MaxTokens))
		}
		if options.TimeoutSec > 0 {
			opts = append(opts, openai.WithTimeout(options.TimeoutSec))
		}
		return openai.NewClient("", options.Model, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %v", options.Provider)
	}
}
