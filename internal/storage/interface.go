package storage

import "errors"

var (
	// ErrNotFound is returned by Get and Delete when no document is stored under the key.
	ErrNotFound = errors.New("document not found")
	// ErrNotLoaded is returned when a provider is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a key/value document backend. Each value is one whole JSON
// document that callers read and write as a unit.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
