package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultJSONPath is used when no path is configured.
const DefaultJSONPath = "coverage_tracker.json"

// JSONStore keeps the ledger in a single JSON document.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore returns a store backed by the file at path. The file is
// created on first save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file.
func (s *JSONStore) Path() string { return s.path }

// Load reads the ledger. A missing or empty file is an empty ledger; invalid
// JSON returns ErrCorrupt.
func (s *JSONStore) Load(ctx context.Context) (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}
	l := New()
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return l, nil
}

// Save rewrites the file through a temporary file and rename so readers never
// see a partial document.
func (s *JSONStore) Save(ctx context.Context, l *Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(l, "", "    ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Close is a no-op.
func (s *JSONStore) Close() error { return nil }
