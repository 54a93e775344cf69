// Package assets stores uploaded image files referenced by [IMG:id] tokens.
// The store is a flat directory: names never contain path separators, and
// writes are atomic (tmp file, fsync, rename).
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a flat file store rooted at a single directory.
type Store struct {
	root string // absolute path to the assets directory
}

// NewStore creates a Store rooted at the given directory, creating it if
// needed.
func NewStore(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("assets: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("assets: create root: %w", err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute assets directory path.
func (s *Store) Root() string { return s.root }

// safeName validates that name is a plain filename (no separators, no
// traversal) and returns its absolute path under the store root.
func (s *Store) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("assets: filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("assets: invalid filename: %s", name)
	}
	abs := filepath.Join(s.root, cleaned)
	if !strings.HasPrefix(abs, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("assets: path escapes store root: %s", name)
	}
	return abs, nil
}

// Path resolves name to its absolute path without touching the filesystem.
func (s *Store) Path(name string) (string, error) {
	return s.safeName(name)
}

// Read returns the raw bytes of a stored file.
func (s *Store) Read(name string) ([]byte, error) {
	abs, err := s.safeName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file, fsync, rename.
func (s *Store) Write(name string, content []byte) error {
	abs, err := s.safeName(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, ".folio-tmp-*")
	if err != nil {
		return fmt.Errorf("assets: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("assets: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("assets: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("assets: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("assets: rename: %w", err)
	}
	success = true
	return nil
}

// Delete removes a stored file.
func (s *Store) Delete(name string) error {
	abs, err := s.safeName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("assets: delete %s: %w", name, err)
	}
	return nil
}
