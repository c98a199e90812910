package chat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/julianstephens/learnnova/internal/models"
)

type OpenAIProvider struct {
	baseURL string
	apiKey  string
	opts    Options
	client  *http.Client
}

func NewOpenAI(baseURL, apiKey string, opts Options) *OpenAIProvider {
	return &OpenAIProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		opts:    opts,
		client:  &http.Client{},
	}
}

func (o *OpenAIProvider) Name() string { return "openai:" + o.opts.Model }

type oaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oaiRequest struct {
	Model       string       `json:"model"`
	Messages    []oaiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

type oaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (o *OpenAIProvider) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	msgs := make([]oaiMessage, 0, len(messages)+1)
	if o.opts.SystemPrompt != "" {
		msgs = append(msgs, oaiMessage{Role: string(models.RoleSystem), Content: o.opts.SystemPrompt})
	}
	for _, m := range messages {
		msgs = append(msgs, oaiMessage{Role: string(m.Role), Content: m.Content})
	}

	payload, err := sonic.Marshal(oaiRequest{
		Model:       o.opts.Model,
		Messages:    msgs,
		Temperature: o.opts.Temperature,
		MaxTokens:   o.opts.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var result oaiResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("openai returned status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if result.Error != nil {
			return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, result.Error.Message)
		}
		return "", fmt.Errorf("openai returned status %d", resp.StatusCode)
	}
	if len(result.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
