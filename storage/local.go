package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"docuvault/models"
)

// Local stores content as files under a single base directory, one file per key.
type Local struct {
	basePath string
}

func NewLocal(basePath string) (*Local, error) {
	if basePath == "" {
		basePath = "./data/uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{basePath: basePath}, nil
}

func (l *Local) Put(_ context.Context, data []byte, fileName string) (string, error) {
	key := newKey(fileName)
	if err := os.WriteFile(filepath.Join(l.basePath, key), data, 0o644); err != nil {
		return "", models.ErrorStorage{Op: "put", Key: key, Err: err}
	}
	return key, nil
}

func (l *Local) Get(_ context.Context, key string) ([]byte, error) {
	if !validKey(key) {
		return nil, models.ErrorNotFound{Entity: "file", ID: key}
	}
	data, err := os.ReadFile(filepath.Join(l.basePath, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, models.ErrorNotFound{Entity: "file", ID: key}
	}
	if err != nil {
		return nil, models.ErrorStorage{Op: "get", Key: key, Err: err}
	}
	return data, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return nil
	}
	err := os.Remove(filepath.Join(l.basePath, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return models.ErrorStorage{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// validKey rejects keys that would escape the base directory.
func validKey(key string) bool {
	return key != "" && key == filepath.Base(key)
}
