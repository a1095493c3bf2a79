// Package chat defines the message shapes exchanged with LLM providers.
package chat

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a chat completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
