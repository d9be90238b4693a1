// Package credential holds the session's authentication token.
//
// The token is opaque to this layer: it is written by the login flow,
// cleared on logout or client-side expiry detection, and read by the API
// client on every call. Nothing here ever refreshes it.
package credential

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-faster/errors"
)

// Store is the injectable token store consulted by the API client.
// An absent token means an unauthenticated session.
type Store interface {
	// Get returns the current token and whether one is present.
	Get() (string, bool)
	// Set replaces the stored token.
	Set(token string) error
	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear() error
}

// Memory is an in-process Store with no persistence. The zero value is ready
// to use and represents an unauthenticated session.
type Memory struct {
	mu    sync.Mutex
	token string
}

var _ Store = (*Memory)(nil)

func (m *Memory) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *Memory) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// File persists the token to a single file with 0600 permissions, surviving
// process restarts. Reads are served from memory after the initial load;
// writes go through to disk.
type File struct {
	mu     sync.Mutex
	path   string
	token  string
	loaded bool
}

var _ Store = (*File)(nil)

// NewFile returns a Store backed by the file at path. The file does not need
// to exist yet; parent directories are created on the first Set.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Get() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()
	return f.token, f.token != ""
}

func (f *File) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(err, "create token dir")
	}
	if err := os.WriteFile(f.path, []byte(token+"\n"), 0o600); err != nil {
		return errors.Wrap(err, "write token")
	}
	f.token = token
	f.loaded = true
	return nil
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.loaded = true
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove token")
	}
	return nil
}

// load reads the token file once; missing or unreadable files count as an
// unauthenticated session rather than an error.
func (f *File) load() {
	if f.loaded {
		return
	}
	f.loaded = true
	data, err := os.ReadFile(f.path)
	if err != nil {
		return
	}
	f.token = strings.TrimSpace(string(data))
}
