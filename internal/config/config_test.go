package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/learnnova/internal/constants"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func clearEnv(t *testing.T) {
	for _, k := range []string{
		constants.EnvTimezone, constants.EnvChatProvider, constants.EnvChatModel,
		constants.EnvListenAddr, constants.EnvOpenAIKey, constants.EnvGeminiKey,
	} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileWithExpansion(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEARNNOVA_TEST_MODEL", "gpt-4.1-mini")

	path := writeFile(t, t.TempDir(), "config.toml", `
[app]
timezone = "Asia/Kolkata"
namespace = "learnnova-dev"

[chat]
model = "${LEARNNOVA_TEST_MODEL}"
temperature = 0.2
max_tokens = 256
timeout = "10s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", cfg.App.Timezone)
	assert.Equal(t, "learnnova-dev", cfg.App.Namespace)
	assert.Equal(t, "gpt-4.1-mini", cfg.Chat.Model)
	assert.Equal(t, 0.2, cfg.Chat.Temperature)
	assert.Equal(t, 256, cfg.Chat.MaxTokens)
	assert.Equal(t, 10*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, constants.DefaultListenAddr, cfg.Chat.ListenAddr)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), "config.toml", `
[chat]
provider = "openai"
listen_addr = "127.0.0.1:9000"
`)
	t.Setenv(constants.EnvChatProvider, "GEMINI")
	t.Setenv(constants.EnvListenAddr, "127.0.0.1:9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, constants.ChatProviderGemini, cfg.Chat.Provider)
	assert.Equal(t, constants.DefaultGeminiModel, cfg.Chat.Model, "gemini gets its own default model")
	assert.Equal(t, "127.0.0.1:9999", cfg.Chat.ListenAddr)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tests := map[string]string{
		"syntax":      `[chat`,
		"provider":    "[chat]\nprovider = \"claude\"",
		"timezone":    "[app]\ntimezone = \"Mars/Olympus\"",
		"temperature": "[chat]\ntemperature = 3.5",
		"timeout":     "[chat]\ntimeout = \"-1s\"",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, name+".toml", content))
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "LEARNNOVA_TEST_A=from-file\nLEARNNOVA_TEST_B=from-file\n")

	t.Setenv("LEARNNOVA_TEST_A", "from-env")
	os.Unsetenv("LEARNNOVA_TEST_B")
	t.Cleanup(func() { os.Unsetenv("LEARNNOVA_TEST_B") })

	require.NoError(t, LoadEnv(dir, filepath.Join(dir, "absent")))
	assert.Equal(t, "from-env", os.Getenv("LEARNNOVA_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("LEARNNOVA_TEST_B"))
}

func TestWriteRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, Default().Write(path, false))
	assert.Error(t, Default().Write(path, false), "existing file needs force")
	require.NoError(t, Default().Write(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestAPIKeyFollowsProvider(t *testing.T) {
	clearEnv(t)
	gokeyring.MockInit()

	cfg := Default()
	assert.Empty(t, cfg.APIKey())

	t.Setenv(constants.EnvOpenAIKey, "sk-openai")
	t.Setenv(constants.EnvGeminiKey, "gm-key")
	assert.Equal(t, "sk-openai", cfg.APIKey())

	cfg.Chat.Provider = constants.ChatProviderGemini
	assert.Equal(t, "gm-key", cfg.APIKey())
}

func TestLocation(t *testing.T) {
	cfg := Default()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}
