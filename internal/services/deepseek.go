package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Sherwin-Cui/three-kindoms/pkg/chat"
)

const (
	deepseekBaseURL = "https://api.deepseek.com"

	DefaultDeepSeekModel       = "deepseek-chat"
	DefaultDeepSeekTemperature = 0.7
	DefaultDeepSeekMaxTokens   = 1000
)

// DeepSeekService implements LLMService against the DeepSeek chat
// completions API.
type DeepSeekService struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
}

// DeepSeekChatRequest is the request body for chat completions.
type DeepSeekChatRequest struct {
	Model       string         `json:"model"`
	Messages    []chat.Message `json:"messages"`
	Temperature float64        `json:"temperature,omitempty"`
	MaxTokens   int            `json:"max_tokens,omitempty"`
	Stream      bool           `json:"stream"`
}

// DeepSeekChatChoice is a single completion choice.
type DeepSeekChatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// DeepSeekChatResponse is the response body for chat completions.
type DeepSeekChatResponse struct {
	ID      string               `json:"id"`
	Object  string               `json:"object"`
	Created int64                `json:"created"`
	Model   string               `json:"model"`
	Choices []DeepSeekChatChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// NewDeepSeekService creates a DeepSeek client.
func NewDeepSeekService(apiKey string, modelName string) *DeepSeekService {
	if modelName == "" {
		modelName = DefaultDeepSeekModel
	}
	return &DeepSeekService{
		apiKey:    apiKey,
		modelName: modelName,
		baseURL:   deepseekBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Chat sends the conversation and returns the assistant reply text.
func (d *DeepSeekService) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	reqBody := DeepSeekChatRequest{
		Model:       d.modelName,
		Messages:    messages,
		Temperature: DefaultDeepSeekTemperature,
		MaxTokens:   DefaultDeepSeekMaxTokens,
		Stream:      false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepseek API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp DeepSeekChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("deepseek API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("deepseek returned no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}
