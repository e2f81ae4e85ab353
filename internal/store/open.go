package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/mbrewrite/internal/store/fs"
	"github.com/viant/mbrewrite/internal/store/mem"
	"github.com/viant/mbrewrite/internal/store/redis"
	"github.com/viant/mbrewrite/internal/store/sqlite"
)

// Store kinds.
const (
	KindFile   = "file"
	KindRedis  = "redis"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Options selects and locates a store backend.
type Options struct {
	Kind   string `yaml:"kind,omitempty" json:"kind,omitempty"`
	URL    string `yaml:"url,omitempty" json:"url,omitempty"`
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
}

// Open creates the backend described by options. Backends holding a
// connection also implement io.Closer.
func Open(ctx context.Context, options *Options) (Store, error) {
	if options == nil {
		options = &Options{}
	}
	kind := strings.ToLower(strings.TrimSpace(options.Kind))
	if kind == "" {
		kind = KindFile
	}
	if kind != KindMemory && options.URL == "" {
		return nil, fmt.Errorf("url is required for %v store", kind)
	}
	switch kind {
	case KindFile:
		return fs.New(options.URL), nil
	case KindRedis:
		return redis.Open(options.URL, redis.WithPrefix(options.Prefix))
	case KindSQLite:
		return sqlite.Open(ctx, options.URL)
	case KindMemory:
		return mem.New(), nil
	default:
		return nil, fmt.Errorf("unsupported store kind: %v", options.Kind)
	}
}
