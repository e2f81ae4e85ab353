// Package config loads the mbrewrite configuration.
package config

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/mbrewrite/genai/history"
	"github.com/viant/mbrewrite/genai/rewrite"
	"github.com/viant/mbrewrite/internal/store"
	"github.com/viant/mbrewrite/internal/workspace"
	"gopkg.in/yaml.v3"
)

// Config describes the model, persistence and credential settings.
type Config struct {
	Model           string        `yaml:"model,omitempty" json:"model,omitempty"`
	BaseURL         string        `yaml:"baseURL,omitempty" json:"baseURL,omitempty"`
	Temperature     float64       `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	MaxTokens       int           `yaml:"maxTokens,omitempty" json:"maxTokens,omitempty"`
	TimeoutSec      int           `yaml:"timeoutSec,omitempty" json:"timeoutSec,omitempty"`
	Concurrency     int           `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
	HistoryCapacity int           `yaml:"historyCapacity,omitempty" json:"historyCapacity,omitempty"`
	Store           store.Options `yaml:"store,omitempty" json:"store,omitempty"`
	Secret          Secret        `yaml:"secret,omitempty" json:"secret,omitempty"`
}

// Secret locates the API credential.
type Secret struct {
	// URL is a scy resource, e.g. ${workspaceRoot}/secret/openai.json|blowfish://default.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
	// Env names the fallback environment variable.
	Env string `yaml:"env,omitempty" json:"env,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	ret := &Config{}
	ret.Init()
	return ret
}

// Init fills unset fields with defaults.
func (c *Config) Init() {
	if c.Model == "" {
		c.Model = rewrite.DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Temperature == 0 {
		c.Temperature = rewrite.DefaultTemperature
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = rewrite.DefaultMaxTokens
	}
	if c.TimeoutSec == 0 {
		c.TimeoutSec = int(rewrite.DefaultTimeout.Seconds())
	}
	if c.Concurrency == 0 {
		c.Concurrency = rewrite.DefaultConcurrency
	}
	if c.HistoryCapacity == 0 {
		c.HistoryCapacity = history.DefaultCapacity
	}
	if c.Store.Kind == "" {
		c.Store.Kind = store.KindFile
	}
	if c.Store.URL == "" && c.Store.Kind == store.KindFile {
		c.Store.URL = "${workspaceRoot}/" + workspace.KindState
	}
	if c.Secret.URL == "" {
		c.Secret.URL = "${workspaceRoot}/" + workspace.KindSecret + "/openai.json|blowfish://default"
	}
	if c.Secret.Env == "" {
		c.Secret.Env = "OPENAI_API_KEY"
	}
}

// Resolve expands workspace macros in locations.
func (c *Config) Resolve() {
	c.Store.URL = workspace.ResolvePathTemplate(c.Store.URL)
	c.Secret.URL = workspace.ResolvePathTemplate(c.Secret.URL)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Temperature < 0 || c.Temperature > 2:
		return fmt.Errorf("invalid temperature: %v, expected 0..2", c.Temperature)
	case c.MaxTokens < 0:
		return fmt.Errorf("invalid maxTokens: %v", c.MaxTokens)
	case c.TimeoutSec < 0:
		return fmt.Errorf("invalid timeoutSec: %v", c.TimeoutSec)
	case c.Concurrency < 0:
		return fmt.Errorf("invalid concurrency: %v", c.Concurrency)
	case c.HistoryCapacity < 0:
		return fmt.Errorf("invalid historyCapacity: %v", c.HistoryCapacity)
	}
	return nil
}

// Load reads the configuration from URL. An empty URL falls back to the
// workspace config.yaml and then to defaults.
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	if URL == "" {
		candidate := filepath.Join(workspace.Root(), workspace.ConfigFile)
		if ok, _ := fs.Exists(ctx, candidate); !ok {
			ret := Default()
			ret.ApplyEnv()
			ret.Resolve()
			return ret, nil
		}
		URL = candidate
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	ret.ApplyEnv()
	return ret, nil
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	ret := &Config{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, ret); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	ret.Init()
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	ret.Resolve()
	return ret, nil
}

// ApplyEnv overrides the timeout from OPENAI_HTTP_TIMEOUT_SEC when set.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT_SEC")); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			c.TimeoutSec = sec
		}
	}
}
