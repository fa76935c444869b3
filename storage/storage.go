package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists opaque byte content under generated keys. Keys are opaque
// handles; callers must not assume any path structure behind them.
type Store interface {
	// Put writes data and returns the key it was stored under.
	Put(ctx context.Context, data []byte, fileName string) (string, error)
	// Get returns the stored bytes, or models.ErrorNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the stored bytes. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// newKey builds a collision-resistant key, keeping the original extension
// so downloads stay recognizable.
func newKey(fileName string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	ext := filepath.Ext(fileName)
	return id + ext
}
