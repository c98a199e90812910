package chat

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/julianstephens/learnnova/internal/models"
)

type GeminiProvider struct {
	client *genai.Client
	opts   Options
}

func NewGemini(ctx context.Context, apiKey string, opts Options) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiProvider{client: client, opts: opts}, nil
}

func (g *GeminiProvider) Name() string { return "gemini:" + g.opts.Model }

// toContents maps chat turns onto Gemini roles; "assistant" becomes "model".
func toContents(messages []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}

func (g *GeminiProvider) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.opts.Temperature)),
		MaxOutputTokens: int32(g.opts.MaxTokens),
	}
	if g.opts.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(g.opts.SystemPrompt, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.opts.Model, toContents(messages), cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return strings.TrimSpace(result.Text()), nil
}
