// Package kv provides the durable string key-value stores that back the
// task tracker. Every backend exposes the same small contract, so the
// records layered on top (see package persist) do not care where they live.
package kv

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound       = errors.New("key not found")
	ErrCorrupt        = errors.New("store content is corrupt")
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Store is a durable mapping from string keys to string values.
// A Set or Remove is a single call to the underlying backend; there are no
// transactions spanning several keys.
type Store interface {
	// Get returns ErrNotFound if the key was never set or was removed.
	Get(key string) (string, error)
	Set(key, value string) error
	// Remove does nothing if the key is absent.
	Remove(key string) error
	Close() error
}

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

type Options struct {
	Backend Backend
	// Path is the file used by the file and sqlite backends.
	Path  string
	Redis RedisOptions
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Timeout  time.Duration
}

// Open creates the store described by opts.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		return InFile(opts.Path)
	case BackendSQLite:
		return InSQLite(opts.Path)
	case BackendRedis:
		return InRedis(opts.Redis)
	case BackendMemory:
		return InMemory(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
