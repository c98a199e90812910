package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/learnnova/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func migrationFS(files map[string]string) fs.FS {
	mfs := fstest.MapFS{}
	for name, content := range files {
		mfs[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return mfs
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}), DriverSQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql":    "CREATE TABLE test1 (id INTEGER);",
		"002_update.sql":  "ALTER TABLE test1 ADD COLUMN name TEXT;",
		"003_another.sql": "CREATE TABLE test2 (id INTEGER);",
		"README.md":       "ignored",
	}), DriverSQLite)

	got, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(got))
	}

	wantNames := []string{"init", "update", "another"}
	for i, m := range got {
		if m.Version != i+1 || m.Name != wantNames[i] {
			t.Errorf("migration %d: got version %d name %q, want version %d name %q", i, m.Version, m.Name, i+1, wantNames[i])
		}
	}
}

func TestApplyEmbeddedSQLiteMigrations(t *testing.T) {
	db := setupTestDB(t)

	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("fs.Sub failed: %v", err)
	}
	runner := NewRunner(db, sub, DriverSQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied == 0 {
		t.Fatal("expected at least one migration to be applied")
	}

	if _, err := db.Exec("INSERT INTO kv (key, value, updated_at) VALUES ('learnnova:study', '[]', '2024-01-01T00:00:00Z')"); err != nil {
		t.Errorf("kv table is not usable after migration: %v", err)
	}

	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion after migrating: %v", err)
	}
}

func TestApplyMigrationsNoOp(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);",
	}), DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("first ApplyMigrations failed: %v", err)
	}

	var messages []string
	applied, err := runner.ApplyMigrations(func(msg string) { messages = append(messages, msg) })
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations applied, got %d", applied)
	}
	if len(messages) == 0 || !strings.Contains(messages[0], "up to date") {
		t.Errorf("expected up to date message, got %v", messages)
	}
}

func TestMigrationRollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql":   "CREATE TABLE users (id INTEGER PRIMARY KEY);",
		"002_broken.sql": "CREATE TABLE broken (id INTEGER PRIMARY KEY; -- syntax error",
	}), DriverSQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version to stay at 1, got %d", version)
	}
}

func TestValidateVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);",
	}), DriverSQLite)

	if err := runner.ValidateVersion(); err == nil || !strings.Contains(err.Error(), "older") {
		t.Errorf("expected older schema error on fresh database, got %v", err)
	}

	if err := runner.SetVersion(10); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("expected newer schema error, got %v", err)
	}
}

func TestMigrationFilenameValidation(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{name: "missing underscore", files: map[string]string{"001.sql": "SELECT 1;"}},
		{name: "non numeric version", files: map[string]string{"abc_init.sql": "SELECT 1;"}},
		{name: "zero version", files: map[string]string{"000_init.sql": "SELECT 1;"}},
		{name: "duplicate version", files: map[string]string{"001_a.sql": "SELECT 1;", "001_b.sql": "SELECT 1;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), migrationFS(tt.files), DriverSQLite)
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Error("expected ReadMigrationFiles to fail")
			}
		})
	}
}

func TestInsertVersionSQLByDriver(t *testing.T) {
	if got := NewRunner(nil, nil, DriverPostgres).insertVersionSQL(); !strings.Contains(got, "$1") {
		t.Errorf("postgres insert should use $1 placeholder, got %q", got)
	}
	if got := NewRunner(nil, nil, DriverSQLite).insertVersionSQL(); !strings.Contains(got, "?") {
		t.Errorf("sqlite insert should use ? placeholder, got %q", got)
	}
}
