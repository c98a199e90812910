package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/learnnova/internal/storage/postgres"
	"github.com/julianstephens/learnnova/internal/storage/sqlite"
)

// MemoryLocation selects the in-memory provider.
const MemoryLocation = ":memory:"

var (
	_ Provider = (*MemoryStore)(nil)
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// Kind names the provider implementation a location resolves to.
type Kind string

const (
	KindMemory   Kind = "memory"
	KindJSON     Kind = "json"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// KindOf classifies a storage location without touching it.
func KindOf(location string) Kind {
	switch {
	case postgres.IsConnString(location):
		return KindPostgres
	case location == MemoryLocation:
		return KindMemory
	case strings.EqualFold(filepath.Ext(location), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// New returns the provider for location. File locations have a leading
// "~" expanded; the provider is neither initialized nor loaded.
func New(location string) Provider {
	switch KindOf(location) {
	case KindPostgres:
		return postgres.New(location)
	case KindMemory:
		return NewMemoryStore()
	case KindJSON:
		return NewJSONStore(ExpandHome(location))
	default:
		return sqlite.NewStore(ExpandHome(location))
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
