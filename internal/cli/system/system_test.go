package system

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/config"
	"github.com/julianstephens/learnnova/internal/storage"
	"github.com/julianstephens/learnnova/internal/store"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newContext(t *testing.T, location string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	provider := storage.New(location)
	out := &bytes.Buffer{}
	t.Cleanup(func() { _ = provider.Close() })
	return &cli.Context{
		Provider: provider,
		Store: store.New(provider,
			store.WithClock(func() time.Time { return fixedNow }),
			store.WithLocation(time.UTC),
		),
		Config:   config.Default(),
		Location: time.UTC,
		Out:      out,
	}, out
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	ctx, out := newContext(t, filepath.Join(dir, "learnnova.db"))
	ctx.SettingsPath = filepath.Join(dir, "config.toml")

	require.NoError(t, (&InitCmd{}).Run(ctx))
	assert.FileExists(t, filepath.Join(dir, "learnnova.db"))
	assert.FileExists(t, ctx.SettingsPath)
	assert.Contains(t, out.String(), "Initialized learnnova storage at:")
	assert.Contains(t, out.String(), "Wrote default settings to:")

	cfg, err := config.Load(ctx.SettingsPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Chat.Model, cfg.Chat.Model)
}

func TestInitCmdForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "learnnova.json")
	ctx, out := newContext(t, path)

	require.NoError(t, (&InitCmd{}).Run(ctx))
	require.NoError(t, ctx.Hydrate())
	require.True(t, ctx.Store.RecordStudy(30, ""))

	// A JSON store refuses to initialize twice without --force
	assert.Error(t, (&InitCmd{}).Run(ctx))

	out.Reset()
	require.NoError(t, (&InitCmd{Force: true}).Run(ctx))
	assert.Contains(t, out.String(), "Deleted existing database at: "+path)

	fresh, _ := newContext(t, path)
	require.NoError(t, fresh.Provider.Load())
	require.NoError(t, fresh.Hydrate())
	assert.Empty(t, fresh.Store.StudyEntries())
}

func TestInitDoesNotOverwriteSettings(t *testing.T) {
	dir := t.TempDir()
	ctx, out := newContext(t, filepath.Join(dir, "learnnova.db"))
	ctx.SettingsPath = filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(ctx.SettingsPath, []byte("[app]\ntimezone = \"UTC\"\n"), 0600))

	require.NoError(t, (&InitCmd{}).Run(ctx))
	assert.NotContains(t, out.String(), "Wrote default settings")

	data, err := os.ReadFile(ctx.SettingsPath)
	require.NoError(t, err)
	assert.Equal(t, "[app]\ntimezone = \"UTC\"\n", string(data))
}

func TestValidateCmd(t *testing.T) {
	ctx, out := newContext(t, storage.MemoryLocation)
	require.NoError(t, ctx.Hydrate())
	ctx.Store.RecordStudy(60, "2025-03-09")
	ctx.Store.AddHabit("Read")

	require.NoError(t, (&ValidateCmd{Strict: true}).Run(ctx))
	assert.Contains(t, out.String(), "No problems detected.")
}

func TestDoctorCmd(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv("OPENAI_API_KEY", "")
	dir := t.TempDir()
	ctx, out := newContext(t, filepath.Join(dir, "learnnova.db"))
	require.NoError(t, ctx.Provider.Init())

	require.NoError(t, (&DoctorCmd{}).Run(ctx))
	got := out.String()
	assert.Contains(t, got, "✓ Storage reachable: OK")
	assert.Contains(t, got, "✓ Schema version: OK")
	assert.Contains(t, got, "⚠ Backups present: WARNING")
	assert.Contains(t, got, "✓ Data validation: OK")
	assert.Contains(t, got, "⚠ Chat credentials: WARNING")
	assert.Contains(t, got, "All diagnostics passed!")
}

func TestDoctorCmdUnreachable(t *testing.T) {
	gokeyring.MockInit()
	ctx, out := newContext(t, filepath.Join(t.TempDir(), "missing.db"))

	err := (&DoctorCmd{}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, out.String(), "❌ Storage reachable: FAIL")
	assert.Contains(t, out.String(), "⊘ Data validation: SKIPPED")
}

func TestDebugCommands(t *testing.T) {
	ctx, out := newContext(t, storage.MemoryLocation)
	require.NoError(t, ctx.Hydrate())
	ctx.Store.AddHabit("Stretch")

	require.NoError(t, (&DebugDBPathCmd{}).Run(ctx))
	assert.Contains(t, out.String(), `"kind": "memory"`)

	out.Reset()
	require.NoError(t, (&DebugKeysCmd{}).Run(ctx))
	assert.Equal(t, "learnnova:habits\n", out.String())

	out.Reset()
	require.NoError(t, (&DebugDumpCmd{Slice: "habit"}).Run(ctx))
	assert.Contains(t, out.String(), `"name": "Stretch"`)

	assert.Error(t, (&DebugDumpCmd{Slice: "plans"}).Run(ctx))
}
