// Package services contains the LLM provider clients.
package services

import (
	"context"

	"github.com/Sherwin-Cui/three-kindoms/pkg/chat"
)

// LLMService is the narrator transport. Implementations return the raw
// completion text; parsing and validation live upstream.
type LLMService interface {
	// Chat sends the conversation and returns the assistant reply text.
	Chat(ctx context.Context, messages []chat.Message) (string, error)
}
