package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/learnnova/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnknownSecret is returned for a secret kind with no keyring entry
	ErrUnknownSecret = errors.New("unknown secret kind")
)

// Secret names one credential learnnova keeps in the OS keyring.
type Secret string

const (
	SecretDatabase Secret = "db"
	SecretOpenAI   Secret = "openai"
	SecretGemini   Secret = "gemini"
)

// Secrets lists every kind in display order.
var Secrets = []Secret{SecretDatabase, SecretOpenAI, SecretGemini}

func (s Secret) user() (string, error) {
	switch s {
	case SecretDatabase:
		return constants.KeyringUserDatabase, nil
	case SecretOpenAI:
		return constants.KeyringUserOpenAI, nil
	case SecretGemini:
		return constants.KeyringUserGemini, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSecret, string(s))
}

// EnvVar is the environment variable that takes precedence over the
// keyring entry.
func (s Secret) EnvVar() string {
	switch s {
	case SecretDatabase:
		return constants.EnvDBConnection
	case SecretOpenAI:
		return constants.EnvOpenAIKey
	case SecretGemini:
		return constants.EnvGeminiKey
	}
	return ""
}

// Get retrieves a secret from the OS keyring.
// Returns ErrNotFound if nothing is stored.
func Get(secret Secret) (string, error) {
	user, err := secret.user()
	if err != nil {
		return "", err
	}
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// Set stores a secret in the OS keyring.
func Set(secret Secret, value string) error {
	user, err := secret.user()
	if err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("%s secret cannot be empty", secret)
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes a secret from the OS keyring.
func Delete(secret Secret) error {
	user, err := secret.user()
	if err != nil {
		return err
	}
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Source reports where Resolve found a secret.
type Source string

const (
	SourceNone    Source = ""
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

// Resolve returns a secret from its environment variable, falling back to
// the keyring. Keyring failures are treated as "not set".
func Resolve(secret Secret) (string, Source) {
	if env := secret.EnvVar(); env != "" {
		if v := os.Getenv(env); v != "" {
			return v, SourceEnv
		}
	}
	if v, err := Get(secret); err == nil {
		return v, SourceKeyring
	}
	return "", SourceNone
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
