// Package storage provides the key/value abstraction the credential store
// persists into, with in-memory, JSON file, LevelDB and bbolt backends.
package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNotFound is returned by Get when the key is absent.
	ErrNotFound = errors.New("key not found")
	// ErrUnavailable wraps any failure of the underlying store.
	ErrUnavailable = errors.New("storage unavailable")
	ErrClosed      = errors.New("storage closed")
)

// KV is a string key/value store. Remove of an absent key is not an error.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Backend is a KV that holds resources.
type Backend interface {
	KV
	io.Closer
}

// Kind names a backend implementation.
type Kind string

const (
	KindMemory  Kind = "memory"
	KindFile    Kind = "file"
	KindLevelDB Kind = "leveldb"
	KindBolt    Kind = "bolt"
)

// ParseKind normalises s and checks that it names a known backend.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindMemory, KindFile, KindLevelDB, KindBolt:
		return k, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q", s)
	}
}

// Open returns the backend of the given kind rooted at path.
// path is ignored for the memory backend.
func Open(kind, path string) (Backend, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindMemory:
		return NewMemory(), nil
	case KindFile:
		return OpenFile(path)
	case KindLevelDB:
		return OpenLevelDB(path)
	default:
		return OpenBolt(path)
	}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
