// Package storage provides the byte-level stores the editor persists
// its graph document into.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned (wrapped) by Get when the key does not exist.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnsupportedScheme is returned by Open for unknown URL schemes.
	ErrUnsupportedScheme = errors.New("storage: unsupported scheme")
	// ErrInvalidKey is returned for keys that cannot be stored, such as
	// empty keys or paths escaping a LocalStore root.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// BlobStore defines the interface for abstract storage backends.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
