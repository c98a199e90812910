// Package chat forwards study-coaching conversations to a hosted language
// model. Callers always receive displayable text: missing credentials and
// upstream failures turn into fixed localized fallback replies.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/learnnova/internal/config"
	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/models"
)

// ErrNoAPIKey is returned when a provider is built without credentials.
var ErrNoAPIKey = errors.New("no API key configured")

// Provider sends one conversation upstream and returns the reply text.
type Provider interface {
	Name() string
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// Options are the generation settings shared by every provider.
type Options struct {
	Model        string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

func optionsFrom(cfg config.ChatConfig) Options {
	return Options{
		Model:        cfg.Model,
		SystemPrompt: constants.ChatSystemPrompt,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
	}
}

// NewProvider builds the provider named in cfg. It returns ErrNoAPIKey
// when apiKey is empty.
func NewProvider(ctx context.Context, cfg config.ChatConfig, apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	switch cfg.Provider {
	case constants.ChatProviderOpenAI:
		return NewOpenAI(cfg.BaseURL, apiKey, optionsFrom(cfg)), nil
	case constants.ChatProviderGemini:
		return NewGemini(ctx, apiKey, optionsFrom(cfg))
	}
	return nil, fmt.Errorf("unknown chat provider %q", cfg.Provider)
}
