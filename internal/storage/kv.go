// Package storage provides the durable key-value backends that hold the
// reminder records. Values are opaque byte slices, usually JSON documents.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned by Get when no value is stored under the key
	ErrKeyNotFound = errors.New("key not found")
	// ErrStoreClosed is returned by every operation after Close
	ErrStoreClosed = errors.New("store is closed")
)

// KeyValueStore is a durable mapping from string keys to opaque values
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
