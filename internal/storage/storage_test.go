package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/learnnova/internal/storage/postgres"
	"github.com/julianstephens/learnnova/internal/storage/sqlite"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		location string
		want     Kind
	}{
		{"postgres://user@localhost/db", KindPostgres},
		{"postgresql://user@localhost/db", KindPostgres},
		{":memory:", KindMemory},
		{"/tmp/learnnova.json", KindJSON},
		{"/tmp/learnnova.JSON", KindJSON},
		{"/tmp/learnnova.db", KindSQLite},
		{"~/.config/learnnova/learnnova.db", KindSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			if got := KindOf(tt.location); got != tt.want {
				t.Errorf("KindOf(%q) = %s, want %s", tt.location, got, tt.want)
			}
		})
	}
}

func TestNewProviderTypes(t *testing.T) {
	if _, ok := New(":memory:").(*MemoryStore); !ok {
		t.Error("expected MemoryStore")
	}
	if _, ok := New("data.json").(*JSONStore); !ok {
		t.Error("expected JSONStore")
	}
	if _, ok := New("data.db").(*sqlite.Store); !ok {
		t.Error("expected sqlite.Store")
	}
	if _, ok := New("postgres://user@localhost/db").(*postgres.Store); !ok {
		t.Error("expected postgres.Store")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandHome("~/.config/x.db"); got != filepath.Join(home, ".config/x.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/x.db"); got != "/abs/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got := ExpandHome("~user/x.db"); got != "~user/x.db" {
		t.Errorf("~user form should be untouched: %q", got)
	}
}

// providerContract runs the shared key/value behavior against a provider.
func providerContract(t *testing.T, p Provider) {
	t.Helper()

	if _, ok, err := p.Get("learnnova:study"); err != nil || ok {
		t.Fatalf("expected empty provider, got ok=%v err=%v", ok, err)
	}

	if err := p.Set("learnnova:study", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := p.Set("learnnova:goals", "{}"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := p.Set("other:goals", "{}"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := p.Get("learnnova:study")
	if err != nil || !ok || v != "[]" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}

	keys, err := p.Keys("learnnova:")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "learnnova:goals" || keys[1] != "learnnova:study" {
		t.Errorf("Keys = %v", keys)
	}

	if err := p.Delete("learnnova:study"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := p.Get("learnnova:study"); ok {
		t.Error("expected key removed")
	}
	if err := p.Delete("learnnova:missing"); err != nil {
		t.Errorf("Delete of missing key failed: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	providerContract(t, NewMemoryStore())
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learnnova.json")
	store := NewJSONStore(path)

	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	providerContract(t, store)

	if err := store.Init(); err == nil {
		t.Error("expected second Init to fail")
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	v, ok, err := reopened.Get("learnnova:goals")
	if err != nil || !ok || v != "{}" {
		t.Errorf("reopened Get = %q, %v, %v", v, ok, err)
	}
}

func TestJSONStoreNotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))

	if err := store.Load(); err == nil {
		t.Error("expected Load to fail for missing file")
	}
	if err := store.Set("k", "v"); err != ErrNotLoaded {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learnnova.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(path).Load(); err == nil {
		t.Error("expected parse error")
	}
}
