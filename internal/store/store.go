// Package store defines the key-value persistence used by the list manager.
//
// A Store holds opaque byte values under string keys. Each Set replaces the
// whole value (last writer wins). Backends:
//
//   - jsonstore: one file per key in a data directory (default)
//   - sqlitestore: a single kv table in a SQLite database
//   - redisstore: plain GET/SET against a Redis server
//   - memstore: in-process map, used by tests and the "memory" backend
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a synchronous key-value store owned by a single process.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
