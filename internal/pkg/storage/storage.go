package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrKeyExists is returned by Put when IfAbsent is set and the key is taken.
	ErrKeyExists = errors.New("storage key already exists")
)

// PutOptions controls how a Put behaves
type PutOptions struct {
	// IfAbsent rejects the write with ErrKeyExists when the key is already
	// present instead of silently overwriting.
	IfAbsent bool
}

// Storage defines the minimal interface for photo blob backends.
// Intentionally simple: store a blob, delete a blob, get its URL.
type Storage interface {
	// Put stores a blob at the given key and returns an error on failure.
	Put(ctx context.Context, key string, reader io.Reader, contentType string, opts PutOptions) error

	// Delete removes a blob by its key. Returns nil if the blob doesn't exist.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a blob is present at the given key.
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the publicly fetchable URL for a key.
	URL(key string) string
}
