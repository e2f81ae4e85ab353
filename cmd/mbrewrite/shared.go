package mbrewrite

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/viant/mbrewrite/genai/persona"
	"github.com/viant/mbrewrite/genai/usage"
	"github.com/viant/mbrewrite/internal/config"
	elog "github.com/viant/mbrewrite/internal/log"
	"github.com/viant/mbrewrite/internal/secret"
	"github.com/viant/mbrewrite/internal/store"
	"github.com/viant/mbrewrite/service"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin

	optsMu  sync.RWMutex
	current *Options

	// customizeService adjusts service options before the service is created.
	customizeService = func(opts *service.Options) {}
)

const rule = 70

func setOptions(opts *Options) {
	optsMu.Lock()
	current = opts
	optsMu.Unlock()
}

func globalOptions() *Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	if current == nil {
		return &Options{}
	}
	return current
}

// session is a service together with the resources opened for one command.
type session struct {
	*service.Service
	usage   *usage.Aggregator
	closers []func()
}

func openSession(ctx context.Context) (*session, error) {
	opts := globalOptions()
	cfg, err := config.Load(ctx, opts.Config)
	if err != nil {
		return nil, err
	}
	ret := &session{usage: &usage.Aggregator{}}
	if opts.Log != "" {
		w, err := os.OpenFile(opts.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(stderr, "warning: unable to open log file %s: %v\n", opts.Log, err)
		} else {
			stop := elog.FileSink(w)
			ret.closers = append(ret.closers, func() {
				stop()
				_ = w.Close()
			})
		}
	}
	backend, err := store.Open(ctx, &cfg.Store)
	if err != nil {
		ret.Close()
		return nil, err
	}
	serviceOptions := service.Options{
		Config:        cfg,
		Store:         backend,
		Credentials:   secret.Chain{secret.NewScy(cfg.Secret.URL), secret.NewEnv(cfg.Secret.Env)},
		UsageListener: ret.usage.OnUsage,
	}
	customizeService(&serviceOptions)
	svc, err := service.New(ctx, serviceOptions)
	if err != nil {
		if closer, ok := backend.(io.Closer); ok {
			_ = closer.Close()
		}
		ret.Close()
		return nil, err
	}
	ret.Service = svc
	return ret, nil
}

func (s *session) Close() {
	if s.Service != nil {
		_ = s.Service.Close()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// resolvePersona finds a persona by ID or case-insensitive label.
func resolvePersona(catalog *persona.Catalog, ref string) (*persona.Persona, bool) {
	if p, ok := catalog.Find(ref); ok {
		return p, true
	}
	return catalog.Lookup(ref)
}

// summary returns the part of a built-in description after the type name.
func summary(p *persona.Persona) string {
	if !p.IsBuiltin {
		return p.Description
	}
	if _, after, ok := strings.Cut(p.Description, ":"); ok {
		return strings.TrimSpace(after)
	}
	return p.Description
}
