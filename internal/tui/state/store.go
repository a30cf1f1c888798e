package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
)

// Well-known keys persisted across sessions.
const (
	KeyTheme          = "theme"
	KeyColorTheme     = "color-theme"
	KeyQueryCache     = "query-cache"
	KeyContentVersion = "content-version"
)

// Store persists small JSON documents keyed by name in a directory, one file
// per key. It plays the role a browser's local storage would.
type Store struct {
	mu  sync.Mutex
	dir string
}

// DefaultDir returns the per-user state directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", eris.Wrap(err, "resolving user config dir")
	}
	return filepath.Join(base, "whoami"), nil
}

// NewStore opens a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, eris.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "creating state directory")
	}
	return &Store{dir: dir}, nil
}

// Get reads the value stored under key into target. The boolean reports
// whether the key existed.
func (s *Store) Get(key string, target any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, eris.Wrapf(err, "reading state key %s", key)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return false, eris.Wrapf(err, "decoding state key %s", key)
	}
	return true, nil
}

// Set writes the value under key, replacing any previous value. The write is
// atomic: a torn write never corrupts the previous value.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return eris.Wrapf(err, "encoding state key %s", key)
	}

	target := s.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return eris.Wrapf(err, "writing state key %s", key)
	}
	if err := os.Rename(tmp, target); err != nil {
		return eris.Wrapf(err, "committing state key %s", key)
	}
	return nil
}

// Delete removes the value stored under key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return eris.Wrapf(err, "deleting state key %s", key)
	}
	return nil
}

func (s *Store) path(key string) string {
	// Keys are internal constants, but keep path traversal impossible anyway.
	safe := strings.ReplaceAll(key, string(filepath.Separator), "-")
	return filepath.Join(s.dir, safe+".json")
}
