package storage

import "errors"

// ErrNotLoaded is returned by providers used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

// Provider is a synchronous string key/value store. Values are opaque
// serialized snapshots; the persist package owns their encoding.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key/value access
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)

	// Utils
	GetConfigPath() string
}
