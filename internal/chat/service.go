package chat

import (
	"context"
	"strings"
	"time"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/logger"
	"github.com/julianstephens/learnnova/internal/models"
)

// Service turns a conversation into a reply. It never fails: every
// problem maps onto one of the fallback messages.
type Service struct {
	provider Provider
	timeout  time.Duration
}

// NewService wraps provider, which may be nil when no credentials are
// configured. A non-positive timeout selects the default.
func NewService(provider Provider, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = constants.DefaultChatTimeout
	}
	return &Service{provider: provider, timeout: timeout}
}

// Available reports whether replies can come from a real provider.
func (s *Service) Available() bool {
	return s.provider != nil
}

// Sanitize keeps only non-empty user and assistant turns. Client-supplied
// system messages are dropped so the configured prompt always leads.
func Sanitize(messages []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Role != models.RoleUser && m.Role != models.RoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *Service) Reply(ctx context.Context, messages []models.ChatMessage) models.ChatResponse {
	if s.provider == nil {
		return models.ChatResponse{Content: constants.ChatFallbackUnavailable}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	content, err := s.provider.Complete(ctx, Sanitize(messages))
	if err != nil {
		logger.Error("Chat completion failed", "provider", s.provider.Name(), "error", err, "elapsed", time.Since(start))
		return models.ChatResponse{Content: constants.ChatFallbackFailed}
	}
	if strings.TrimSpace(content) == "" {
		logger.Warn("Chat completion was empty", "provider", s.provider.Name())
		return models.ChatResponse{Content: constants.ChatFallbackEmpty}
	}

	logger.Debug("Chat completion succeeded", "provider", s.provider.Name(), "elapsed", time.Since(start))
	return models.ChatResponse{Content: strings.TrimSpace(content)}
}
