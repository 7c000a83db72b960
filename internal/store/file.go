package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var errCorruptFile = errors.New("parse store file")

// File keeps all keys in one JSON object on disk:
//
//	{
//	  "progress": "50",
//	  "rows": "[...]"
//	}
//
// The file is read on every Get so edits made by another process are seen.
type File struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// OpenFile returns a file store at path, creating its directory.
// A missing file is an empty store.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("store file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &File{path: path}, nil
}

// Get returns the value stored under key.
func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key. A file that is not a JSON object is
// replaced; any other read error is returned and the file is left alone.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	values, err := f.read()
	if errors.Is(err, errCorruptFile) {
		values = map[string]string{}
	} else if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

// Path returns the store file path.
func (f *File) Path() string {
	return f.path
}

// Close marks the store closed. There is no open handle to release.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptFile, err)
	}
	return values, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (f *File) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store file: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close store file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
