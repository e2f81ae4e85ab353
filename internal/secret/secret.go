// Package secret holds the API credential used for generation calls.
package secret

import (
	"context"
	"os"
	"strings"
	"sync"
)

// CredentialStore reads and writes the opaque API key. Get returns an empty
// string when no key is stored.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, key string) error
}

// Memory keeps the key in process memory.
type Memory struct {
	mux sync.RWMutex
	key string
}

func NewMemory(key string) *Memory {
	return &Memory{key: strings.TrimSpace(key)}
}

func (m *Memory) Get(ctx context.Context) (string, error) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return m.key, nil
}

func (m *Memory) Set(ctx context.Context, key string) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.key = strings.TrimSpace(key)
	return nil
}

// Env reads the key from an environment variable.
type Env struct {
	Name string
}

// DefaultEnvName is the conventional OpenAI key variable.
const DefaultEnvName = "OPENAI_API_KEY"

func NewEnv(name string) *Env {
	if name == "" {
		name = DefaultEnvName
	}
	return &Env{Name: name}
}

func (e *Env) Get(ctx context.Context) (string, error) {
	return strings.TrimSpace(os.Getenv(e.Name)), nil
}

// Set updates the variable for the current process only.
func (e *Env) Set(ctx context.Context, key string) error {
	return os.Setenv(e.Name, strings.TrimSpace(key))
}

// Chain reads from the first store holding a key and writes to the first store.
type Chain []CredentialStore

func (c Chain) Get(ctx context.Context) (string, error) {
	for _, store := range c {
		key, err := store.Get(ctx)
		if err != nil {
			return "", err
		}
		if key != "" {
			return key, nil
		}
	}
	return "", nil
}

func (c Chain) Set(ctx context.Context, key string) error {
	if len(c) == 0 {
		return nil
	}
	return c[0].Set(ctx, key)
}

// Redact masks all but the last four characters of key.
func Redact(key string) string {
	if key == "" {
		return ""
	}
	runes := []rune(key)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}
