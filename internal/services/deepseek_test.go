package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherwin-Cui/three-kindoms/pkg/chat"
)

func newDeepSeekTestService(t *testing.T, handler http.HandlerFunc) *DeepSeekService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	svc := NewDeepSeekService("test-key", "")
	svc.baseURL = srv.URL
	return svc
}

func TestDeepSeekChat(t *testing.T) {
	svc := newDeepSeekTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req DeepSeekChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultDeepSeekModel, req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, chat.RoleSystem, req.Messages[0].Role)

		resp := DeepSeekChatResponse{
			Choices: []DeepSeekChatChoice{{}},
		}
		resp.Choices[0].Message.Role = chat.RoleAssistant
		resp.Choices[0].Message.Content = `{"narrative": "江风渐起。"}`
		json.NewEncoder(w).Encode(resp)
	})

	out, err := svc.Chat(context.Background(), []chat.Message{
		{Role: chat.RoleSystem, Content: "你是旁白。"},
		{Role: chat.RoleUser, Content: "玩家行动：观望。"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"narrative": "江风渐起。"}`, out)
}

func TestDeepSeekChatHTTPError(t *testing.T) {
	svc := newDeepSeekTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "invalid api key"}}`, http.StatusUnauthorized)
	})

	_, err := svc.Chat(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestDeepSeekChatAPIError(t *testing.T) {
	svc := newDeepSeekTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(DeepSeekChatResponse{Error: &struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    string `json:"code"`
		}{Message: "model overloaded"}})
	})

	_, err := svc.Chat(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestDeepSeekChatNoChoices(t *testing.T) {
	svc := newDeepSeekTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(DeepSeekChatResponse{})
	})

	_, err := svc.Chat(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestSimulatedServiceEchoesPlayer(t *testing.T) {
	out, err := SimulatedService{}.Chat(context.Background(), []chat.Message{
		{Role: chat.RoleSystem, Content: "你是旁白。"},
		{Role: chat.RoleUser, Content: "玩家行动：借箭十万。"},
	})
	require.NoError(t, err)

	var reply map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &reply))
	assert.NotEmpty(t, reply["narrative"])
	dlg, ok := reply["npc_dialogue"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, dlg["content"], "借箭十万")
}
