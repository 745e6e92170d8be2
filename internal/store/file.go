package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"cocktailhaven/internal/domain"
)

// FileProvider keeps each key in its own file under dir/<namespace>/.
// It is the on-device storage analog for single-user runs; writes go
// through a temp file and rename so a crash never leaves a torn blob.
type FileProvider struct {
	dir string
}

// NewFileProvider creates the base directory if needed.
func NewFileProvider(dir string) (*FileProvider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileProvider{dir: dir}, nil
}

// Namespace returns a Store rooted at dir/ns.
func (p *FileProvider) Namespace(ns string) Store {
	return &fileStore{dir: filepath.Join(p.dir, ns)}
}

type fileStore struct {
	dir string
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileStore) Get(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *fileStore) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *fileStore) Remove(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
