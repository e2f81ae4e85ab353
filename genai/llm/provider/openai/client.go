package openai

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	basecfg "github.com/viant/mbrewrite/genai/llm/provider/base"
)

const (
	openAIEndpoint = "https://api.openai.com/v1"
	defaultTimeout = 60 * time.Second
)

type APIKeyProvider func(ctx context.Context) (string, error)

// Client represents an OpenAI API client
type Client struct {
	basecfg.Config
	APIKey string
	// APIKeyProvider resolves the API key at call time (e.g. from a credential store).
	// When set, it is used only if APIKey is empty.
	APIKeyProvider APIKeyProvider
	// EnableLogging toggles provider runtime logs.
	EnableLogging bool

	// Defaults applied when GenerateRequest.Options is nil or leaves the
	// respective field unset.
	MaxTokens   int
	Temperature *float64
}

// NewClient creates a new OpenAI client with the given API key and model
func NewClient(apiKey, model string, options ...ClientOption) *Client {
	client := &Client{
		Config: basecfg.Config{
			HTTPClient: &http.Client{},
			BaseURL:    openAIEndpoint,
			Model:      model,
			Timeout:    defaultTimeout,
		},
		APIKey:        apiKey,
		EnableLogging: true,
	}

	for _, option := range options {
		option(client)
	}

	if client.APIKey == "" && client.APIKeyProvider == nil {
		client.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	// Optional: override per-call timeout via environment variable (seconds)
	if v := os.Getenv("OPENAI_HTTP_TIMEOUT_SEC"); v != "" {
		if sec, err := time.ParseDuration(strings.TrimSpace(v) + "s"); err == nil && sec > 0 {
			client.Config.Timeout = sec
		}
	}
	return client
}

func (c *Client) logf(format string, args ...interface{}) {
	if c == nil || !c.EnableLogging {
		return
	}
	log.Printf(format, args...)
}

func (c *Client) apiKey(ctx context.Context) (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	if c.APIKeyProvider == nil {
		return "", nil
	}
	key, err := c.APIKeyProvider(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}
