package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Sherwin-Cui/three-kindoms/pkg/chat"
)

// MockLLMService is a scriptable LLMService for tests. Responses are
// returned in order; when the queue is empty the last response repeats.
type MockLLMService struct {
	Responses []string
	Err       error
	Calls     [][]chat.Message

	next int
}

func (m *MockLLMService) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	m.Calls = append(m.Calls, messages)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	i := m.next
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	m.next++
	return m.Responses[i], nil
}

// SimulatedService is an offline narrator for local play without an API
// key. It produces a minimal well-formed reply that echoes the player.
type SimulatedService struct{}

func (SimulatedService) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	input := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == chat.RoleUser {
			input = messages[i].Content
			break
		}
	}
	input = strings.TrimPrefix(input, "玩家行动：")
	reply := map[string]any{
		"narrative": "（模拟模式）江风猎猎，军帐内烛影摇曳。你的言语落定，在场众人神色各异。",
		"npc_dialogue": map[string]string{
			"speaker": "鲁肃",
			"content": "先生所言「" + truncate(input, 20) + "」，肃记下了。",
		},
	}
	out, err := json.Marshal(reply)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
