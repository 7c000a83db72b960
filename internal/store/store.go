// Package store provides the key-value backends that persist checklist state.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var (
	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrClosed is returned when a closed backend is used.
	ErrClosed = errors.New("store closed")
)

// Backend is a string key-value store with a lifecycle.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Path returns where the data lives, or "" for in-memory stores.
	Path() string
	Close() error
}

// Backends returns the names accepted by Open.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}

// NormalizeBackend lowercases and trims a backend name.
func NormalizeBackend(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	switch NormalizeBackend(name) {
	case BackendFile, BackendSQLite, BackendMemory:
		return true
	}
	return false
}

// Open opens the named backend at path. path is ignored for memory.
func Open(backend, path string) (Backend, error) {
	switch NormalizeBackend(backend) {
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected %s)", ErrUnknownBackend, backend, strings.Join(Backends(), "|"))
	}
}
