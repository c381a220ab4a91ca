package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a file-backed key-value store: one JSON file per key under a
// state directory. Last writer wins; there is no key-level locking.
type Store struct {
	dir string
}

// Open returns a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SetItem serializes value as JSON and writes it durably under key.
func (s *Store) SetItem(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// GetItem reads the value stored under key into out. ok reports whether the
// key exists at all. When the stored text cannot be decoded into out, the
// text is handed back verbatim through raw and decoded is false; GetItem
// never fails on a corrupt value.
func (s *Store) GetItem(key string, out any) (raw string, decoded, ok bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false, false
	}
	if err := json.Unmarshal(data, out); err != nil {
		return string(data), false, true
	}
	return string(data), true, true
}

// Clear removes every stored key.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read state dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("remove %q: %w", e.Name(), err)
		}
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
