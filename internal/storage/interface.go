package storage

import (
	"errors"

	"github.com/julianstephens/boardprep/internal/migration"
)

var (
	// ErrNotInitialized is returned by Load when the backing store has never
	// been initialized.
	ErrNotInitialized = errors.New("storage not initialized, run 'boardprep init' first")
	// ErrNotLoaded is returned by Read and Write before Init or Load succeeded.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a durable key-value store holding opaque byte blobs. The
// application keeps its whole state document under a single key.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Read returns the value stored under key. found is false when the key
	// has never been written.
	Read(key string) (value []byte, found bool, err error)
	// Write replaces the value stored under key.
	Write(key string, value []byte) error

	// GetConfigPath returns a non-sensitive description of where data lives
	GetConfigPath() string
}

// Migrator is implemented by SQL-backed providers
type Migrator interface {
	MigrationStatus() (migration.Status, error)
	Migrate(logFn func(string)) (int, error)
}
