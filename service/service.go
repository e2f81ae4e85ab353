// Package service combines the persona catalog, rewrite orchestration and
// history into the operations exposed to user interfaces.
package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/viant/mbrewrite/genai/history"
	"github.com/viant/mbrewrite/genai/llm"
	"github.com/viant/mbrewrite/genai/llm/provider"
	"github.com/viant/mbrewrite/genai/llm/provider/base"
	"github.com/viant/mbrewrite/genai/persona"
	"github.com/viant/mbrewrite/genai/rewrite"
	"github.com/viant/mbrewrite/internal/config"
	"github.com/viant/mbrewrite/internal/secret"
	"github.com/viant/mbrewrite/internal/store"
	"github.com/viant/mbrewrite/internal/store/mem"
	"github.com/viant/mbrewrite/shared"
)

// Options configures behaviour of Service.
type Options struct {
	Config      *config.Config
	Store       store.Store            // defaults to an in-memory store
	Credentials secret.CredentialStore // defaults to an in-memory credential
	// Model overrides the OpenAI client built from Config.
	Model         llm.Model
	UsageListener base.UsageListener
	Logging       bool
}

// Service owns the persona catalog, the persisted selection, the history log
// and the credential.
type Service struct {
	config       *config.Config
	store        store.Store
	credentials  secret.CredentialStore
	catalog      *persona.Catalog
	recorder     *history.Recorder
	orchestrator *rewrite.Orchestrator

	mux      sync.RWMutex
	selected map[string]bool
}

// New creates a service and loads the persisted state.
func New(ctx context.Context, opts Options) (*Service, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	ret := &Service{
		config:      cfg,
		store:       opts.Store,
		credentials: opts.Credentials,
		catalog:     persona.NewCatalog(),
		selected:    map[string]bool{},
	}
	if ret.store == nil {
		ret.store = mem.New()
	}
	if ret.credentials == nil {
		ret.credentials = secret.NewMemory("")
	}
	model := opts.Model
	if model == nil {
		var err error
		if model, err = ret.newModel(ctx, opts); err != nil {
			return nil, err
		}
	}
	generator := rewrite.NewGenerator(model,
		rewrite.WithModelName(cfg.Model),
		rewrite.WithTemperature(cfg.Temperature),
		rewrite.WithMaxTokens(cfg.MaxTokens))
	ret.orchestrator = rewrite.NewOrchestrator(generator,
		rewrite.WithConcurrency(cfg.Concurrency),
		rewrite.WithTimeout(time.Duration(cfg.TimeoutSec)*time.Second))
	ret.recorder = history.New(ret.store, history.WithCapacity(cfg.HistoryCapacity))
	if err := ret.Load(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) newModel(ctx context.Context, opts Options) (llm.Model, error) {
	temperature := s.config.Temperature
	factory := &provider.Factory{}
	return factory.CreateModel(ctx, &provider.Options{
		Model:         s.config.Model,
		URL:           s.config.BaseURL,
		Temperature:   &temperature,
		MaxTokens:     s.config.MaxTokens,
		TimeoutSec:    s.config.TimeoutSec,
		APIKey:        s.credentials.Get,
		UsageListener: opts.UsageListener,
		Logging:       opts.Logging,
	})
}

// Load reads custom personas, the selection and the history from the store.
func (s *Service) Load(ctx context.Context) error {
	var customs []*persona.Persona
	if _, err := s.store.Load(ctx, store.KeyCustomPersonas, &customs); err != nil {
		return shared.NewPersistenceError("load", store.KeyCustomPersonas, err)
	}
	s.catalog.SetCustoms(customs)

	var ids []string
	if _, err := s.store.Load(ctx, store.KeySelectedPersonas, &ids); err != nil {
		return shared.NewPersistenceError("load", store.KeySelectedPersonas, err)
	}
	selected := map[string]bool{}
	for _, id := range ids {
		if _, ok := s.catalog.Find(id); ok {
			selected[id] = true
		}
	}
	s.mux.Lock()
	s.selected = selected
	s.mux.Unlock()
	return s.recorder.Load(ctx)
}

// Close releases the store connection when it holds one.
func (s *Service) Close() error {
	if closer, ok := s.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Catalog returns the persona catalog.
func (s *Service) Catalog() *persona.Catalog {
	return s.catalog
}

// Personas returns built-in personas followed by custom ones.
func (s *Service) Personas() []*persona.Persona {
	return s.catalog.List()
}

// Selected returns the selected personas in catalog order.
func (s *Service) Selected() []*persona.Persona {
	s.mux.RLock()
	defer s.mux.RUnlock()
	var ret []*persona.Persona
	for _, p := range s.catalog.List() {
		if s.selected[p.ID] {
			ret = append(ret, p)
		}
	}
	return ret
}

func (s *Service) IsSelected(id string) bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.selected[id]
}

// Toggle flips the selection of a persona and reports whether it is now selected.
func (s *Service) Toggle(ctx context.Context, id string) (bool, error) {
	if _, ok := s.catalog.Find(id); !ok {
		return false, shared.NewValidationError("persona", "unknown persona: "+id)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.selected[id] {
		delete(s.selected, id)
	} else {
		s.selected[id] = true
	}
	return s.selected[id], s.saveSelection(ctx)
}

// Select replaces the selection.
func (s *Service) Select(ctx context.Context, ids ...string) error {
	selected := map[string]bool{}
	for _, id := range ids {
		if _, ok := s.catalog.Find(id); !ok {
			return shared.NewValidationError("persona", "unknown persona: "+id)
		}
		selected[id] = true
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.selected = selected
	return s.saveSelection(ctx)
}

// AddCustom creates and persists a custom persona.
func (s *Service) AddCustom(ctx context.Context, label, description string) (*persona.Persona, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	p, err := s.catalog.AddCustom(label, description)
	if err != nil {
		return nil, err
	}
	return p, s.saveCustoms(ctx)
}

// RemoveCustom deletes a custom persona and drops it from the selection.
// Recorded history keeps the persona label.
func (s *Service) RemoveCustom(ctx context.Context, id string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if !s.catalog.RemoveCustom(id) {
		return nil
	}
	if err := s.saveCustoms(ctx); err != nil {
		return err
	}
	if !s.selected[id] {
		return nil
	}
	delete(s.selected, id)
	return s.saveSelection(ctx)
}

// SetAPIKey stores the credential.
func (s *Service) SetAPIKey(ctx context.Context, key string) error {
	if err := s.credentials.Set(ctx, key); err != nil {
		return shared.NewPersistenceError("save", "apiKey", err)
	}
	return nil
}

// APIKey returns the stored credential, empty when none is set.
func (s *Service) APIKey(ctx context.Context) (string, error) {
	key, err := s.credentials.Get(ctx)
	if err != nil {
		return "", shared.NewPersistenceError("load", "apiKey", err)
	}
	return key, nil
}

// History returns the entries, most recent first.
func (s *Service) History() []*history.Entry {
	return s.recorder.Entries()
}

func (s *Service) ClearHistory(ctx context.Context) error {
	return s.recorder.Clear(ctx)
}

// Submit rewrites message for every persona and records the outcome. Individual
// rewrite failures are reported in the entry results. When only recording
// fails the entry is returned together with a *shared.PersistenceError.
func (s *Service) Submit(ctx context.Context, message string, personas []*persona.Persona) (*history.Entry, error) {
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewValidationError("message", "message is required")
	}
	if len(personas) == 0 {
		return nil, shared.NewValidationError("personas", "at least one persona is required")
	}
	key, err := s.APIKey(ctx)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, shared.NewValidationError("apiKey", "API key is required")
	}
	results, err := s.orchestrator.RewriteForPersonas(ctx, message, personas)
	if err != nil {
		return nil, err
	}
	return s.recorder.Record(ctx, message, results)
}

// SubmitSelected submits message for the current selection.
func (s *Service) SubmitSelected(ctx context.Context, message string) (*history.Entry, error) {
	return s.Submit(ctx, message, s.Selected())
}

// saveSelection and saveCustoms expect s.mux to be held for writing.
func (s *Service) saveSelection(ctx context.Context) error {
	ids := make([]string, 0, len(s.selected))
	for _, p := range s.catalog.List() {
		if s.selected[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	if err := s.store.Save(ctx, store.KeySelectedPersonas, ids); err != nil {
		return shared.NewPersistenceError("save", store.KeySelectedPersonas, err)
	}
	return nil
}

func (s *Service) saveCustoms(ctx context.Context) error {
	customs := s.catalog.Customs()
	if err := s.store.Save(ctx, store.KeyCustomPersonas, customs); err != nil {
		return shared.NewPersistenceError("save", store.KeyCustomPersonas, err)
	}
	return nil
}
