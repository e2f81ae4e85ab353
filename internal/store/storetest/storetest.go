// Package storetest exercises store implementations against shared expectations.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Record is a representative persisted value.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	Labels    []string  `json:"labels" yaml:"labels"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Store mirrors store.Store to avoid an import cycle.
type Store interface {
	Load(ctx context.Context, key string, dest interface{}) (bool, error)
	Save(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// Run verifies load/save/delete semantics of s.
func Run(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	createdAt := time.Date(2025, 12, 19, 10, 30, 0, 0, time.UTC)

	var missing []Record
	ok, err := s.Load(ctx, "missing", &missing)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, missing)

	expected := []Record{
		{ID: "1", Labels: []string{"INTJ", "ENFP"}, CreatedAt: createdAt},
		{ID: "2", Labels: []string{"Custom 1"}, CreatedAt: createdAt.Add(time.Minute)},
	}
	require.NoError(t, s.Save(ctx, "records", expected))

	var actual []Record
	ok, err = s.Load(ctx, "records", &actual)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, actual, 2)
	for i := range expected {
		assert.EqualValues(t, expected[i].ID, actual[i].ID)
		assert.EqualValues(t, expected[i].Labels, actual[i].Labels)
		assert.True(t, expected[i].CreatedAt.Equal(actual[i].CreatedAt), "%v != %v", expected[i].CreatedAt, actual[i].CreatedAt)
	}

	require.NoError(t, s.Save(ctx, "records", expected[:1]))
	actual = nil
	ok, err = s.Load(ctx, "records", &actual)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, actual, 1)

	var ids []string
	require.NoError(t, s.Save(ctx, "ids", []string{"a", "b"}))
	ok, err = s.Load(ctx, "ids", &ids)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, []string{"a", "b"}, ids)

	var mismatched int
	ok, err = s.Load(ctx, "ids", &mismatched)
	assert.Error(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, "records"))
	require.NoError(t, s.Delete(ctx, "records"))
	actual = nil
	ok, err = s.Load(ctx, "records", &actual)
	require.NoError(t, err)
	assert.False(t, ok)

	ids = nil
	ok, err = s.Load(ctx, "ids", &ids)
	require.NoError(t, err)
	assert.True(t, ok)
}
