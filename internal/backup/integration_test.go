package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/storage"
	"github.com/julianstephens/learnnova/internal/storage/sqlite"
	"github.com/julianstephens/learnnova/internal/store"
)

// TestIntegrationBackupRestoreWorkflow backs up, modifies and restores a sqlite store.
func TestIntegrationBackupRestoreWorkflow(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(t, dbPath)

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	s := sqlite.NewStore(dbPath)
	if err := s.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	if err := s.Set("learnnova:habits", `[]`); err != nil {
		t.Fatalf("failed to add key: %v", err)
	}
	s.Close()

	if keys := openKeys(t, dbPath); len(keys) != 3 {
		t.Fatalf("expected 3 keys after modification, got %v", keys)
	}

	safety, err := mgr.RestoreBackup(first)
	if err != nil {
		t.Fatalf("failed to restore backup: %v", err)
	}
	if safety == "" {
		t.Fatal("expected a backup of the current data before restore")
	}

	if keys := openKeys(t, dbPath); len(keys) != 2 {
		t.Errorf("expected 2 keys after restore, got %v", keys)
	}
	if keys := openKeys(t, safety); !slices.Contains(keys, "learnnova:habits") {
		t.Errorf("safety backup is missing the modified key: %v", keys)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups after restore, got %d", len(backups))
	}
}

func TestRestoreWithCorruptedBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(t, dbPath)

	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	corrupted := filepath.Join(mgr.BackupDir(), "corrupted.db")
	if err := os.WriteFile(corrupted, []byte("not a valid sqlite database"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.RestoreBackup(corrupted); err == nil {
		t.Error("expected error when restoring from corrupted backup")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(mgr.BackupDir(), "missing.db")); err == nil {
		t.Error("expected error when restoring from a missing file")
	}
}

func TestJSONStoreBackupRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learnnova.json")
	js := storage.NewJSONStore(path)
	if err := js.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := js.Set("learnnova:goals", `{"studyMinutes":90}`); err != nil {
		t.Fatal(err)
	}

	mgr := newTestManager(t, path)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("json backups should keep the .json suffix, got %s", backupPath)
	}

	if err := js.Delete("learnnova:goals"); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	reloaded := storage.NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, ok, _ := reloaded.Get("learnnova:goals"); !ok || v != `{"studyMinutes":90}` {
		t.Errorf("restored value = %q, %v", v, ok)
	}

	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected backup of a corrupted json file to fail")
	}
}

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	clock := func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	s := store.New(storage.NewMemoryStore(), store.WithClock(clock), store.WithLocation(time.UTC))
	if err := s.Hydrate(t.Context()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}

	s.RecordStudy(45, "2025-03-09")
	s.RecordStudy(30, "")
	s.RecordSleep(450, models.SleepDetails{Bedtime: "23:00", WakeTime: "06:30", Note: "शांत झोप"})
	h, _ := s.AddHabit("व्यायाम")
	s.ToggleHabitCompletion(h.ID, "")
	s.AddYoutubeLink("Physics", "https://youtube.com/watch?v=abc")
	s.UpdateGoals(models.Goals{StudyMinutes: 180, SleepMinutes: 420, HabitsPerDay: 4})
	return s
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			src := seededStore(t)
			snap := src.Snapshot()

			var buf bytes.Buffer
			if err := Export(&buf, snap, format); err != nil {
				t.Fatalf("Export failed: %v", err)
			}

			got, err := Import(&buf, format)
			if err != nil {
				t.Fatalf("Import failed: %v", err)
			}

			dst := store.New(storage.NewMemoryStore())
			if err := dst.Hydrate(t.Context()); err != nil {
				t.Fatal(err)
			}
			dst.Restore(got)

			if !slices.Equal(dst.StudyEntries(), src.StudyEntries()) {
				t.Errorf("study mismatch: %v vs %v", dst.StudyEntries(), src.StudyEntries())
			}
			if !slices.Equal(dst.SleepEntries(), src.SleepEntries()) {
				t.Errorf("sleep mismatch: %v vs %v", dst.SleepEntries(), src.SleepEntries())
			}
			if dst.Goals() != src.Goals() {
				t.Errorf("goals mismatch: %v vs %v", dst.Goals(), src.Goals())
			}
			if len(dst.Habits()) != 1 || !dst.Habits()[0].CompletedOn("2025-03-10") {
				t.Errorf("habits not restored: %v", dst.Habits())
			}
			links := dst.YoutubeLinks()
			if len(links) != 1 || !links[0].AddedAt.Equal(src.YoutubeLinks()[0].AddedAt) {
				t.Errorf("links not restored: %v", links)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, " yml ": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Error("expected error for csv")
	}

	if FormatFromPath("out.YML") != FormatYAML || FormatFromPath("out.json") != FormatJSON || FormatFromPath("out") != FormatJSON {
		t.Error("FormatFromPath guessed wrong")
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	if _, err := Import(strings.NewReader("{nope"), FormatJSON); err == nil {
		t.Error("expected json decode error")
	}
	if _, err := Import(strings.NewReader("study: [unterminated"), FormatYAML); err == nil {
		t.Error("expected yaml decode error")
	}
}
