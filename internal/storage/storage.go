package storage

import (
	"errors"
	"io"
)

var ErrNotFound = errors.New("content not found")

// Storage holds raw file content keyed by file UUID. Metadata lives in the
// database; the two are paired by the file service.
type Storage interface {
	// Save stores content under the given key, replacing any previous value
	Save(key string, content io.Reader) error

	// Load returns the full content for the key, ErrNotFound if absent
	Load(key string) ([]byte, error)

	// Delete removes the content for the key
	Delete(key string) error
}
