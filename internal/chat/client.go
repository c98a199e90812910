package chat

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/models"
)

// Client talks to a chat server over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Leave headroom over the server's own upstream timeout.
		http: &http.Client{Timeout: constants.DefaultChatTimeout + 5*time.Second},
	}
}

func (c *Client) Ask(ctx context.Context, messages []models.ChatMessage) (string, error) {
	payload, err := sonic.Marshal(models.ChatRequest{Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ChatPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat server returned status %d", resp.StatusCode)
	}

	var out models.ChatResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	return out.Content, nil
}
