package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mbrewrite/genai/rewrite"
	"github.com/viant/mbrewrite/internal/store"
	"github.com/viant/mbrewrite/internal/store/fs"
	"github.com/viant/mbrewrite/internal/store/mem"
	"github.com/viant/mbrewrite/shared"
)

type failingStore struct {
	store.Store
	saveErr error
	loadErr error
}

func (f *failingStore) Save(ctx context.Context, key string, value interface{}) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Store.Save(ctx, key, value)
}

func (f *failingStore) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	if f.loadErr != nil {
		return false, f.loadErr
	}
	return f.Store.Load(ctx, key, dest)
}

func results(labels ...string) []*rewrite.PersonaResult {
	var ret []*rewrite.PersonaResult
	for _, label := range labels {
		ret = append(ret, rewrite.NewResult(label, "text for "+label))
	}
	return ret
}

func TestRecorder_Record(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 12, 19, 9, 0, 0, 0, time.FixedZone("PST", -8*3600))
	recorder := New(mem.New(), WithClock(func() time.Time { return now }))

	entry, err := recorder.Record(ctx, "meeting at 3", results("INTJ", "ENFP"))
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.EqualValues(t, "meeting at 3", entry.OriginalMessage)
	assert.True(t, now.Equal(entry.Timestamp))
	assert.EqualValues(t, time.UTC, entry.Timestamp.Location())
	require.Len(t, entry.Results, 2)
	assert.EqualValues(t, "INTJ", entry.Results[0].PersonaLabel)
	assert.EqualValues(t, "ENFP", entry.Results[1].PersonaLabel)

	second, err := recorder.Record(ctx, "second", results("ISTJ"))
	require.NoError(t, err)
	entries := recorder.Entries()
	require.Len(t, entries, 2)
	assert.EqualValues(t, second.ID, entries[0].ID)
	assert.EqualValues(t, entry.ID, entries[1].ID)
}

func TestRecorder_Capacity(t *testing.T) {
	testCases := []struct {
		name     string
		capacity int
		records  int
		expected int
	}{
		{name: "below capacity", records: 5, expected: 5},
		{name: "at capacity", records: 100, expected: 100},
		{name: "over default capacity", records: 101, expected: 100},
		{name: "well over capacity", records: 150, expected: 100},
		{name: "custom capacity", capacity: 3, records: 10, expected: 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			backend := mem.New()
			recorder := New(backend, WithCapacity(tc.capacity))
			for i := 0; i < tc.records; i++ {
				_, err := recorder.Record(ctx, fmt.Sprintf("message %d", i), results("INTJ"))
				require.NoError(t, err)
			}
			entries := recorder.Entries()
			require.Len(t, entries, tc.expected)
			for i, entry := range entries {
				assert.EqualValues(t, fmt.Sprintf("message %d", tc.records-1-i), entry.OriginalMessage)
			}

			var persisted []*Entry
			ok, err := backend.Load(ctx, store.KeyMessageHistory, &persisted)
			require.NoError(t, err)
			require.True(t, ok)
			require.Len(t, persisted, tc.expected)
			for i := range entries {
				assert.EqualValues(t, entries[i].ID, persisted[i].ID)
			}
		})
	}
}

func TestRecorder_Clear(t *testing.T) {
	ctx := context.Background()
	backend := mem.New()
	recorder := New(backend)
	for i := 0; i < 3; i++ {
		_, err := recorder.Record(ctx, "m", results("INTJ"))
		require.NoError(t, err)
	}
	require.NoError(t, recorder.Clear(ctx))
	assert.Empty(t, recorder.Entries())
	assert.EqualValues(t, 0, recorder.Len())

	reloaded := New(backend)
	require.NoError(t, reloaded.Load(ctx))
	assert.Empty(t, reloaded.Entries())

	entry, err := recorder.Record(ctx, "after clear", results("ENFP"))
	require.NoError(t, err)
	require.Len(t, recorder.Entries(), 1)
	assert.EqualValues(t, entry.ID, recorder.Entries()[0].ID)
}

func TestRecorder_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	backend := &failingStore{Store: mem.New(), saveErr: errors.New("disk full")}
	recorder := New(backend)

	entry, err := recorder.Record(ctx, "m", results("INTJ"))
	require.NotNil(t, entry)
	var persistenceErr *shared.PersistenceError
	require.True(t, errors.As(err, &persistenceErr))
	assert.EqualValues(t, store.KeyMessageHistory, persistenceErr.Key)
	assert.EqualValues(t, "failed to save messageHistory: disk full", err.Error())
	require.Len(t, recorder.Entries(), 1)
	assert.EqualValues(t, entry.ID, recorder.Entries()[0].ID)

	err = recorder.Clear(ctx)
	assert.True(t, errors.As(err, &persistenceErr))
	assert.Empty(t, recorder.Entries())
}

func TestRecorder_Load(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name    string
		backend store.Store
	}{
		{name: "memory", backend: mem.New()},
		{name: "yaml file", backend: fs.New("mem://localhost/history/" + t.Name())},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			writer := New(tc.backend)
			var recorded []*Entry
			for i := 0; i < 5; i++ {
				entry, err := writer.Record(ctx, fmt.Sprintf("message %d", i), results("INTJ", "Custom 1"))
				require.NoError(t, err)
				recorded = append([]*Entry{entry}, recorded...)
			}

			reader := New(tc.backend)
			require.NoError(t, reader.Load(ctx))
			loaded := reader.Entries()
			require.Len(t, loaded, len(recorded))
			for i := range recorded {
				assert.EqualValues(t, recorded[i].ID, loaded[i].ID)
				assert.EqualValues(t, recorded[i].OriginalMessage, loaded[i].OriginalMessage)
				assert.True(t, recorded[i].Timestamp.Equal(loaded[i].Timestamp))
				assert.EqualValues(t, recorded[i].Results, loaded[i].Results)
			}

			small := New(tc.backend, WithCapacity(2))
			require.NoError(t, small.Load(ctx))
			require.Len(t, small.Entries(), 2)
			assert.EqualValues(t, recorded[0].ID, small.Entries()[0].ID)
		})
	}
}

func TestRecorder_LoadFailure(t *testing.T) {
	recorder := New(&failingStore{Store: mem.New(), loadErr: errors.New("corrupt")})
	err := recorder.Load(context.Background())
	var persistenceErr *shared.PersistenceError
	require.True(t, errors.As(err, &persistenceErr))
	assert.EqualValues(t, "load", persistenceErr.Op)
}

func TestRecorder_MemoryOnly(t *testing.T) {
	recorder := New(nil)
	require.NoError(t, recorder.Load(context.Background()))
	_, err := recorder.Record(context.Background(), "m", nil)
	require.NoError(t, err)
	assert.Len(t, recorder.Entries(), 1)
}

func TestRecorder_Concurrent(t *testing.T) {
	recorder := New(mem.New(), WithCapacity(20))
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := recorder.Record(context.Background(), fmt.Sprintf("m%d", i), results("INTJ"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Len(t, recorder.Entries(), 20)
}

func TestRecorder_EntriesAreCopies(t *testing.T) {
	recorder := New(nil)
	_, err := recorder.Record(context.Background(), "m", results("INTJ"))
	require.NoError(t, err)
	recorder.Entries()[0].Results[0].RewrittenText = "changed"
	assert.EqualValues(t, "text for INTJ", recorder.Entries()[0].Results[0].RewrittenText)
}
