package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Sherwin-Cui/three-kindoms/internal/engine"
	"github.com/Sherwin-Cui/three-kindoms/internal/handlers"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

// APIClient talks to the game API server.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *APIClient) post(path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", &buf)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func (c *APIClient) get(path string, out any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// NewGame creates a new playthrough.
func (c *APIClient) NewGame() (*state.GameState, error) {
	var gs state.GameState
	if err := c.post("/v1/gamestate", nil, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

// SendTurn submits a player utterance.
func (c *APIClient) SendTurn(sessionID, input string) (*engine.TurnResult, error) {
	var result engine.TurnResult
	req := handlers.TurnRequest{SessionID: sessionID, Input: input}
	if err := c.post("/v1/turn", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CompleteCheck resolves a check event.
func (c *APIClient) CompleteCheck(sessionID, eventID string, items []string) (*engine.CheckOutcome, error) {
	var outcome engine.CheckOutcome
	req := handlers.CheckRequest{SessionID: sessionID, EventID: eventID, Items: items}
	if err := c.post("/v1/check", req, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// ResolveChoice picks a choice option.
func (c *APIClient) ResolveChoice(sessionID, eventID, option string) (*engine.ChoiceOutcome, error) {
	var outcome engine.ChoiceOutcome
	req := handlers.ChoiceRequest{SessionID: sessionID, EventID: eventID, Option: option}
	if err := c.post("/v1/choice", req, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// UseItem uses an inventory item.
func (c *APIClient) UseItem(sessionID, itemID, message string) (*engine.TurnResult, error) {
	var result engine.TurnResult
	req := handlers.ItemUseRequest{SessionID: sessionID, ItemID: itemID, Message: message}
	if err := c.post("/v1/items/use", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AdvanceChapter moves to the next chapter after a success.
func (c *APIClient) AdvanceChapter(sessionID string) (*state.GameState, error) {
	var gs state.GameState
	if err := c.post("/v1/chapter?session_id="+sessionID, nil, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

// Reset restarts the session from chapter 1.
func (c *APIClient) Reset(sessionID string) (*state.GameState, error) {
	var gs state.GameState
	if err := c.post("/v1/reset?session_id="+sessionID, nil, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

// Summary fetches the status view.
func (c *APIClient) Summary(sessionID string) (*engine.Summary, error) {
	var sum engine.Summary
	if err := c.get("/v1/summary?session_id="+sessionID, &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}
