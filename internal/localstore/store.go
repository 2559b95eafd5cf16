// Package localstore is a small durable key/value store holding
// serialized JSON under fixed keys, the server-side stand-in for the
// browser localStorage the storefront state lives in. Missing or
// corrupt entries read as absent; reads never fail.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Well-known keys.
const (
	KeyCart      = "urbanwear-cart"
	KeyLastOrder = "lastOrder"
	KeyWishlist  = "urbanwear-wishlist"
)

type Store struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create localstore dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load reads the value stored under key into dest. It returns false
// when the key is missing or the stored payload does not parse; dest is
// left untouched in that case.
func (s *Store) Load(key string, dest any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		// Corrupt storage reads as empty, never as an error.
		return false
	}
	return true
}

// Save serializes v under key, replacing any previous value. The write
// goes through a temp file and rename so a crash cannot leave a
// half-written entry behind.
func (s *Store) Save(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("rename %q: %w", key, err)
	}
	return nil
}

// Delete removes the value under key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	// Keys are fixed strings, but keep them filesystem-safe anyway.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe+".json")
}
