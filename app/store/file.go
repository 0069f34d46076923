package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/go-pkgz/lgr"
)

// File keeps every key in its own file under the root directory.
// Writes go to a temp file first and renamed in place, so readers never see partial values.
type File struct {
	root string
}

// NewFile makes file store, creating root directory if needed
func NewFile(root string) (*File, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("store directory is empty")
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("can't make %s: %w", root, err)
	}
	log.Printf("[DEBUG] file store at %s", root)
	return &File{root: root}, nil
}

// Get returns value for the key, nil if key doesn't exist
func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	fname, err := f.path(key)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fname) //nolint:gosec // path is validated
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", fname, err)
	}
	return data, nil
}

// Set writes value for the key atomically
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	fname, err := f.path(key)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, key+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, fname); err != nil {
		return fmt.Errorf("rename %s: %w", fname, err)
	}
	return nil
}

// Delete removes file for the key. Deleting missing key is not an error
func (f *File) Delete(ctx context.Context, key string) error {
	fname, err := f.path(key)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(fname); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", fname, err)
	}
	return nil
}

// Close is a no-op, nothing to release
func (f *File) Close() error { return nil }

func (f *File) path(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.root, key), nil
}
