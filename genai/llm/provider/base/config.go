package base

import (
	"net/http"
	"time"
)

// Config aggregates common client parameters used by LLM providers. It is
// embedded into a concrete provider Client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Model      string

	// Timeout bounds a single generate call; zero means no per-call bound
	// beyond the HTTP client's own.
	Timeout time.Duration

	// UsageListener, when set, receives token usage information for each
	// successful model invocation.
	UsageListener UsageListener
}

// ClientOption mutates Config.
type ClientOption func(*Config)

// WithBaseURL overrides the default endpoint of the provider.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Config) {
		if baseURL != "" {
			c.BaseURL = baseURL
		}
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Config) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

// WithModel selects the model name.
func WithModel(model string) ClientOption {
	return func(c *Config) {
		if model != "" {
			c.Model = model
		}
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithUsageListener registers a callback to receive token usage metrics.
func WithUsageListener(l UsageListener) ClientOption {
	return func(c *Config) {
		c.UsageListener = l
	}
}
