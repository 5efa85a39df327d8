package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFilePath is the JSON preference file, relative to the process working directory.
const DefaultFilePath = "config/preferences.json"

// FileStore keeps all keys in one JSON object on disk and rewrites the file on every SetItem.
type FileStore struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

// OpenFile reads path if it exists. A missing or invalid file starts empty and is not created until the first write.
func OpenFile(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultFilePath
	}
	s := &FileStore{path: path, items: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	var items map[string]string
	if err := json.Unmarshal(data, &items); err != nil {
		return s, nil
	}
	if items != nil {
		s.items = items
	}
	return s, nil
}

// GetItem implements Store.
func (s *FileStore) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem implements Store, creating the parent directory if needed.
func (s *FileStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.items, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

// MemoryStore is a Store that forgets everything on exit.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

// GetItem implements Store.
func (s *MemoryStore) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem implements Store.
func (s *MemoryStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
