// Package history keeps the bounded log of rewritten messages.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viant/mbrewrite/genai/rewrite"
	elog "github.com/viant/mbrewrite/internal/log"
	"github.com/viant/mbrewrite/internal/store"
	"github.com/viant/mbrewrite/shared"
)

// DefaultCapacity is the maximum number of retained entries.
const DefaultCapacity = 100

// Recorder owns the history log. The most recent entry is first; the oldest
// entries are evicted once capacity is exceeded. Every mutation is written
// through to the store.
type Recorder struct {
	mux      sync.Mutex
	store    store.Store
	capacity int
	entries  []*Entry
	now      func() time.Time
}

type Option func(r *Recorder)

func WithCapacity(capacity int) Option {
	return func(r *Recorder) {
		if capacity > 0 {
			r.capacity = capacity
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a recorder; a nil store keeps history in memory only.
func New(s store.Store, opts ...Option) *Recorder {
	ret := &Recorder{store: s, capacity: DefaultCapacity, now: time.Now}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Load replaces the in-memory log with the persisted one.
func (r *Recorder) Load(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	var entries []*Entry
	if _, err := r.store.Load(ctx, store.KeyMessageHistory, &entries); err != nil {
		return shared.NewPersistenceError("load", store.KeyMessageHistory, err)
	}
	loaded := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			loaded = append(loaded, entry)
		}
	}
	if len(loaded) > r.capacity {
		loaded = loaded[:r.capacity]
	}
	r.mux.Lock()
	r.entries = loaded
	r.mux.Unlock()
	return nil
}

// Record inserts a new entry at the head of the log. When persisting fails
// the entry stays recorded in memory and a *shared.PersistenceError is returned
// alongside it.
func (r *Recorder) Record(ctx context.Context, originalMessage string, results []*rewrite.PersonaResult) (*Entry, error) {
	entry := &Entry{
		ID:              uuid.New().String(),
		OriginalMessage: originalMessage,
		Timestamp:       r.now().UTC(),
		Results:         results,
	}
	entry = entry.Clone()

	r.mux.Lock()
	defer r.mux.Unlock()
	entries := make([]*Entry, 0, min(len(r.entries)+1, r.capacity))
	entries = append(entries, entry)
	for _, item := range r.entries {
		if len(entries) == r.capacity {
			break
		}
		entries = append(entries, item)
	}
	r.entries = entries
	elog.Publish(elog.HistoryRecord, map[string]interface{}{"id": entry.ID, "results": len(entry.Results), "size": len(entries)})
	return entry.Clone(), r.persist(ctx)
}

// Clear removes every entry.
func (r *Recorder) Clear(ctx context.Context) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.entries = nil
	elog.Publish(elog.HistoryClear, nil)
	return r.persist(ctx)
}

// Entries returns copies of the entries, most recent first.
func (r *Recorder) Entries() []*Entry {
	r.mux.Lock()
	defer r.mux.Unlock()
	ret := make([]*Entry, len(r.entries))
	for i, entry := range r.entries {
		ret[i] = entry.Clone()
	}
	return ret
}

// Len returns the number of entries.
func (r *Recorder) Len() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return len(r.entries)
}

func (r *Recorder) persist(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	entries := r.entries
	if entries == nil {
		entries = []*Entry{}
	}
	if err := r.store.Save(ctx, store.KeyMessageHistory, entries); err != nil {
		return shared.NewPersistenceError("save", store.KeyMessageHistory, err)
	}
	return nil
}
