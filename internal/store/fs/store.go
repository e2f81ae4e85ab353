// Package fs stores records as YAML files on any afs supported location.
package fs

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

const ext = ".yaml"

// Store keeps each record in <baseURL>/<key>.yaml.
type Store struct {
	fs      afs.Service
	baseURL string
}

// New creates a store rooted at baseURL, e.g. a local directory or mem://localhost/state.
func New(baseURL string) *Store {
	return &Store{fs: afs.New(), baseURL: baseURL}
}

// URL returns the location of the record.
func (s *Store) URL(key string) string {
	return url.Join(s.baseURL, key+ext)
}

func (s *Store) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	URL := s.URL(key)
	ok, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return false, fmt.Errorf("failed to check %v: %w", URL, err)
	}
	if !ok {
		return false, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return false, fmt.Errorf("failed to download %v: %w", URL, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err = yaml.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, key string, value interface{}) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %v: %w", key, err)
	}
	return s.fs.Upload(ctx, s.URL(key), file.DefaultFileOsMode, bytes.NewReader(data))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	URL := s.URL(key)
	ok, err := s.fs.Exists(ctx, URL)
	if err != nil || !ok {
		return err
	}
	return s.fs.Delete(ctx, URL)
}
