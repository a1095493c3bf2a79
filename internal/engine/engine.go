// Package engine orchestrates turns: it compiles prompts, calls the
// narrator, reconciles the untrusted reply with authoritative game state and
// resolves chapter endings.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Sherwin-Cui/three-kindoms/internal/services"
	"github.com/Sherwin-Cui/three-kindoms/internal/storage"
	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
	"github.com/Sherwin-Cui/three-kindoms/pkg/prompts"
	"github.com/Sherwin-Cui/three-kindoms/pkg/response"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

// ErrSessionBusy is returned when a turn is already in flight for a session.
var ErrSessionBusy = errors.New("a turn is already being processed for this session")

// ErrSessionNotFound is returned when no state exists for the session id.
var ErrSessionNotFound = errors.New("session not found")

// ErrGameEnded is returned for play requests against a finished game.
var ErrGameEnded = errors.New("the game has ended")

// fallbackNarrative covers narrator transport failures: the turn still
// renders, with no mechanical consequences.
const fallbackNarrative = "江风忽起，吹得帐中烛火明灭不定。你接下去的话，且容片刻再说。"

// Engine processes turns for any number of sessions. At most one request
// mutates a given session at a time.
type Engine struct {
	cat     *catalog.Catalog
	llm     services.LLMService
	parser  *response.Parser
	store   storage.Storage
	roller  state.Roller
	logger  *slog.Logger
	handler map[string]eventHandler

	mu       sync.Mutex
	inFlight map[uuid.UUID]bool
}

// New creates an engine.
func New(cat *catalog.Catalog, llm services.LLMService, store storage.Storage, roller state.Roller, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cat:      cat,
		llm:      llm,
		parser:   response.NewParser(logger),
		store:    store,
		roller:   roller,
		logger:   logger,
		handler:  buildHandlers(cat),
		inFlight: make(map[uuid.UUID]bool),
	}
}

// acquire claims a session for exclusive processing.
func (e *Engine) acquire(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight[id] {
		return ErrSessionBusy
	}
	e.inFlight[id] = true
	return nil
}

func (e *Engine) release(id uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, id)
}

// loadStore fetches a session and wraps it for mutation.
func (e *Engine) loadStore(ctx context.Context, id uuid.UUID) (*state.Store, error) {
	snap, err := e.store.LoadSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if snap == nil || snap.State == nil {
		return nil, ErrSessionNotFound
	}
	return state.NewStore(e.cat, snap.State, e.roller, e.logger), nil
}

func (e *Engine) saveStore(ctx context.Context, st *state.Store) error {
	gs := st.State()
	if err := e.store.SaveSession(ctx, gs.ID, &state.Snapshot{State: gs, Timestamp: gs.UpdatedAt}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// NewSession starts a playthrough at chapter 1 and persists it.
func (e *Engine) NewSession(ctx context.Context) (*state.GameState, error) {
	gs := state.NewGameState(e.cat)
	snap := &state.Snapshot{State: gs, Timestamp: gs.CreatedAt}
	if err := e.store.SaveSession(ctx, gs.ID, snap); err != nil {
		return nil, fmt.Errorf("failed to save new session: %w", err)
	}
	e.logger.Info("new session", "session", gs.ID)
	return gs, nil
}

// GetState loads the current state of a session.
func (e *Engine) GetState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	st, err := e.loadStore(ctx, id)
	if err != nil {
		return nil, err
	}
	return st.State(), nil
}

// TurnResult is the outcome of one narrated turn.
type TurnResult struct {
	SessionID   uuid.UUID             `json:"session_id"`
	Narrative   string                `json:"narrative"`
	NPCDialogue *response.NPCDialogue `json:"npc_dialogue,omitempty"`
	Changes     []state.ChangeRecord  `json:"changes,omitempty"`
	Events      []TriggeredEvent      `json:"events,omitempty"`
	Items       []ItemNotification    `json:"items,omitempty"`
	ChapterEnd  *state.ChapterEnd     `json:"chapter_end,omitempty"`

	// Degraded marks a turn rendered from the fallback narrative after a
	// narrator transport failure. No state changed.
	Degraded bool `json:"degraded,omitempty"`
}

// ProcessTurn runs one full turn: prompt, narrator call, reconciliation,
// trigger evaluation and ending resolution.
func (e *Engine) ProcessTurn(ctx context.Context, id uuid.UUID, input string) (*TurnResult, error) {
	if err := e.acquire(id); err != nil {
		return nil, err
	}
	defer e.release(id)

	st, err := e.loadStore(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.State().IsEnded {
		return nil, ErrGameEnded
	}

	// Blank input advances the story without logging a player line.
	if strings.TrimSpace(input) != "" {
		player := e.cat.Player()
		st.AddDialogue(player.Name, input, "player")
	}

	messages, err := prompts.New(e.cat).
		WithGameState(st.State()).
		WithPlayerInput(input).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	raw, err := e.llm.Chat(ctx, messages)
	if err != nil {
		e.logger.Error("narrator call failed", "session", id, "error", err)
		if saveErr := e.saveStore(ctx, st); saveErr != nil {
			return nil, saveErr
		}
		return &TurnResult{
			SessionID: id,
			Narrative: fallbackNarrative,
			Degraded:  true,
		}, nil
	}

	resp, parsed := e.parser.Parse(raw)
	if !parsed {
		e.logger.Warn("narrator reply rejected", "session", id)
	}

	result := e.reconcile(st, resp)
	result.SessionID = id
	if err := e.saveStore(ctx, st); err != nil {
		return nil, err
	}
	return result, nil
}

// reconcile applies a parsed narrator reply to the state and assembles the
// turn result. Order matters: deltas first, then events, then item grants,
// then the authoritative trigger scan, then ending resolution.
func (e *Engine) reconcile(st *state.Store, resp *response.Response) *TurnResult {
	result := &TurnResult{
		Narrative:   resp.Narrative,
		NPCDialogue: resp.NPCDialogue,
	}

	if len(resp.ValueChanges) > 0 {
		delta := state.NormalizeChanges(resp.ValueChanges)
		result.Changes = st.ApplyDelta(delta)
	}
	if len(resp.SpecialProgress) > 0 {
		result.Changes = append(result.Changes, st.ApplyDelta(state.Delta{
			Tracks: state.NormalizeSpecialProgress(resp.SpecialProgress),
		})...)
	}

	if resp.Narrative != "" {
		st.AddDialogue("旁白", resp.Narrative, "narration")
	}
	if d := resp.NPCDialogue; d != nil && d.Content != "" {
		st.AddDialogue(d.Speaker, d.Content, "npc")
	}

	if s := resp.EventSuggestion; s != nil && s.ShouldTrigger {
		if ev := e.dispatchSuggestion(st, s.EventID, s.Reason); ev != nil {
			result.Events = append(result.Events, *ev)
		}
	}
	result.Events = append(result.Events, e.scanEmergencies(st)...)

	if g := resp.ItemGrant; g != nil && g.ShouldGrant {
		if n := e.grantItem(st, g.ItemID, g.ConditionMet); n != nil {
			result.Items = append(result.Items, *n)
		}
	}
	result.Items = append(result.Items, e.scanItemTriggers(st)...)

	result.ChapterEnd = e.resolveEnd(st, resp.GameEnd)
	return result
}

// dispatchSuggestion validates a narrator event suggestion against the
// catalog before acting on it. Unknown ids, out-of-chapter events and
// repeats are dropped with a log line.
func (e *Engine) dispatchSuggestion(st *state.Store, eventID, reason string) *TriggeredEvent {
	ev := e.cat.Event(eventID)
	if ev == nil {
		e.logger.Warn("narrator suggested unknown event", "event", eventID)
		return nil
	}
	if ev.Chapter != st.ChapterNumber() {
		e.logger.Warn("narrator suggested out-of-chapter event",
			"event", eventID, "chapter", st.ChapterNumber())
		return nil
	}
	h, ok := e.handler[eventID]
	if !ok {
		return nil
	}
	return h.handle(st, ev, reason)
}

// scanEmergencies fires emergency events whose state condition holds,
// narrator opinion ignored.
func (e *Engine) scanEmergencies(st *state.Store) []TriggeredEvent {
	ch := e.cat.Chapter(st.ChapterNumber())
	if ch == nil {
		return nil
	}
	var out []TriggeredEvent
	for _, id := range ch.EventIDs {
		ev := e.cat.Event(id)
		if ev == nil || ev.Type != catalog.EventEmergency || ev.TriggerWhen == nil {
			continue
		}
		if st.EventTriggered(id) || !ev.TriggerWhen.Eval(st) {
			continue
		}
		if t := e.handler[id].handle(st, ev, ev.TriggerCondition); t != nil {
			out = append(out, *t)
		}
	}
	return out
}

// resolveEnd decides whether the chapter (or game) ends this turn. A
// narrator end judgment is binding; otherwise declared conditions decide.
// Chapter 3 narrator successes are refined into an ending tier.
func (e *Engine) resolveEnd(st *state.Store, judgment *response.GameEndJudgment) *state.ChapterEnd {
	if judgment != nil && judgment.IsEnd {
		end := &state.ChapterEnd{
			Success:    judgment.EndType == "Success",
			Chapter:    st.ChapterNumber(),
			JudgedByAI: true,
		}
		if end.Success && st.ChapterNumber() == 3 {
			if tier := st.Chapter3Ending(); tier != nil {
				end.Ending = tier.ID
				end.Title = tier.Title
				end.Description = tier.Description
				end.Narrative = tier.Narrative
			}
		}
		if end.Description == "" {
			end.Description = judgment.Reason
		}
		e.finishChapter(st, end)
		return end
	}
	if end := st.CheckGameEnd(); end != nil {
		e.finishChapter(st, end)
		return end
	}
	return nil
}

// finishChapter records a resolved chapter. Failure and the final chapter
// end the game; intermediate successes wait for an explicit advance.
func (e *Engine) finishChapter(st *state.Store, end *state.ChapterEnd) {
	gs := st.State()
	if !end.Success || end.Chapter >= 3 {
		gs.IsEnded = true
	} else {
		gs.Flags[fmt.Sprintf("chapter%d_complete", end.Chapter)] = true
		if end.NextChapter == 0 {
			end.NextChapter = end.Chapter + 1
		}
	}
	e.logger.Info("chapter resolved",
		"chapter", end.Chapter, "success", end.Success, "ending", end.Ending)
}
