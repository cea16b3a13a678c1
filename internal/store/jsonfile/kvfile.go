// Package jsonfile implements kv.KV on top of a single JSON document.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/tzc/internal/core/kv"
)

// FileName is the document created inside the data directory.
const FileName = "tzc.json"

// document is the root JSON structure stored on disk.
type document struct {
	Entries map[string]json.RawMessage `json:"entries"`
}

// KVFile implements kv.KV using a JSON file for persistence. Every write
// rewrites the whole file atomically.
type KVFile struct {
	path string
	mu   sync.RWMutex
}

var _ kv.KV = (*KVFile)(nil)

// NewKVFile creates a store backed by the file at path.
func NewKVFile(path string) *KVFile {
	return &KVFile{path: path}
}

// Path returns the backing file path.
func (s *KVFile) Path() string {
	return s.path
}

// Get retrieves and deserializes a value by key.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *KVFile) Get(_ context.Context, key string, dest any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return fmt.Errorf("kv get %q: %w", key, err)
	}

	raw, ok := doc.Entries[key]
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set stores a value, replacing any previous one.
func (s *KVFile) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}

	doc.Entries[key] = raw
	if err := s.save(doc); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (s *KVFile) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}

	if _, ok := doc.Entries[key]; !ok {
		return nil
	}

	delete(doc.Entries, key)
	if err := s.save(doc); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *KVFile) Has(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}

	_, ok := doc.Entries[key]
	return ok, nil
}

// load reads the document from disk.
// Returns an empty document if the file doesn't exist or is empty.
func (s *KVFile) load() (document, error) {
	doc := document{Entries: map[string]json.RawMessage{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, err
	}

	if len(data) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, err
	}
	if doc.Entries == nil {
		doc.Entries = map[string]json.RawMessage{}
	}

	return doc, nil
}

// save writes the document to disk atomically.
func (s *KVFile) save(doc document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
