// Package mem provides an in-process store.
package mem

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Store keeps JSON encoded records in memory.
type Store struct {
	mux     sync.RWMutex
	records map[string][]byte
}

func New() *Store {
	return &Store{records: map[string][]byte{}}
}

func (s *Store) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	s.mux.RLock()
	data, ok := s.records[key]
	s.mux.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode %v: %w", key, err)
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mux.Lock()
	s.records[key] = data
	s.mux.Unlock()
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mux.Lock()
	delete(s.records, key)
	s.mux.Unlock()
	return nil
}
