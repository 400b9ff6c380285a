package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/nikolayk812/inventory-cart/internal/port"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

type fileStorage struct {
	dir string
}

// NewFile stores each document as a file under dir. Absolute names bypass dir.
func NewFile(dir string) (port.DocumentStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}

	return &fileStorage{dir: dir}, nil
}

func (s *fileStorage) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, port.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	return data, nil
}

// Write replaces the file atomically: readers see either the old or the new content.
func (s *fileStorage) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	if err := renameio.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("renameio.WriteFile: %w", err)
	}

	return nil
}

func (s *fileStorage) path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name is empty")
	}

	if filepath.IsAbs(name) {
		return name, nil
	}

	return filepath.Join(s.dir, name), nil
}
