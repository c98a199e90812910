package models

// Role is the author of a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a coaching conversation
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body accepted by the chat proxy
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the body returned by the chat proxy, including fallbacks
type ChatResponse struct {
	Content string `json:"content"`
}
