// Package config loads learnnova settings from config.toml, .env files and
// the environment, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/keyring"
	"github.com/julianstephens/learnnova/internal/utils"
)

type Config struct {
	App  AppConfig  `toml:"app"`
	Chat ChatConfig `toml:"chat"`
}

type AppConfig struct {
	// Timezone is an IANA name; "Local" or empty uses the system zone.
	Timezone  string `toml:"timezone"`
	Namespace string `toml:"namespace"`
}

type ChatConfig struct {
	Provider    string        `toml:"provider"`
	BaseURL     string        `toml:"base_url"`
	Model       string        `toml:"model"`
	Temperature float64       `toml:"temperature"`
	MaxTokens   int           `toml:"max_tokens"`
	Timeout     time.Duration `toml:"timeout"`
	ListenAddr  string        `toml:"listen_addr"`
}

func Default() Config {
	return Config{
		App: AppConfig{
			Timezone:  "Local",
			Namespace: constants.KeyNamespace,
		},
		Chat: ChatConfig{
			Provider:    constants.ChatProviderOpenAI,
			BaseURL:     constants.DefaultOpenAIBaseURL,
			Model:       constants.DefaultOpenAIModel,
			Temperature: constants.DefaultChatTemperature,
			MaxTokens:   constants.DefaultChatMaxTokens,
			Timeout:     constants.DefaultChatTimeout,
			ListenAddr:  constants.DefaultListenAddr,
		},
	}
}

// DefaultPath returns ~/.config/learnnova/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", constants.AppName, "config.toml")
	}
	return filepath.Join(home, ".config", constants.AppName, "config.toml")
}

// LoadEnv loads .env files from dirs. Missing files are skipped and
// variables already present in the environment are never overridden.
func LoadEnv(dirs ...string) error {
	var errs []error
	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			errs = append(errs, fmt.Errorf("loading %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// Load reads path on top of the defaults, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := toml.Decode(expandEnvVars(string(data)), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	cfg.applyEnv()

	// A provider switch without an explicit model picks that provider's default.
	if cfg.Chat.Provider == constants.ChatProviderGemini && cfg.Chat.Model == constants.DefaultOpenAIModel {
		cfg.Chat.Model = constants.DefaultGeminiModel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}"))
	})
}

func (c *Config) applyEnv() {
	if v := os.Getenv(constants.EnvTimezone); v != "" {
		c.App.Timezone = v
	}
	if v := os.Getenv(constants.EnvChatProvider); v != "" {
		c.Chat.Provider = strings.ToLower(v)
	}
	if v := os.Getenv(constants.EnvChatModel); v != "" {
		c.Chat.Model = v
	}
	if v := os.Getenv(constants.EnvListenAddr); v != "" {
		c.Chat.ListenAddr = v
	}
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.App.Timezone) {
		return fmt.Errorf("app.timezone %q is not a valid IANA timezone", c.App.Timezone)
	}
	if strings.TrimSpace(c.App.Namespace) == "" {
		return fmt.Errorf("app.namespace is required")
	}
	switch c.Chat.Provider {
	case constants.ChatProviderOpenAI, constants.ChatProviderGemini:
	default:
		return fmt.Errorf("chat.provider must be %q or %q, got %q",
			constants.ChatProviderOpenAI, constants.ChatProviderGemini, c.Chat.Provider)
	}
	if c.Chat.Model == "" {
		return fmt.Errorf("chat.model is required")
	}
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		return fmt.Errorf("chat.temperature must be between 0 and 2")
	}
	if c.Chat.MaxTokens <= 0 {
		return fmt.Errorf("chat.max_tokens must be positive")
	}
	if c.Chat.Timeout <= 0 {
		return fmt.Errorf("chat.timeout must be positive")
	}
	return nil
}

// Location resolves App.Timezone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.App.Timezone)
}

// APIKey returns the credential for the configured chat provider, or ""
// when none is set.
func (c *Config) APIKey() string {
	secret := keyring.SecretOpenAI
	if c.Chat.Provider == constants.ChatProviderGemini {
		secret = keyring.SecretGemini
	}
	key, _ := keyring.Resolve(secret)
	return key
}

// Write saves c to path, creating the parent directory. It refuses to
// replace an existing file unless force is set.
func (c Config) Write(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0600)
}
