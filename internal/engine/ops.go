package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
	"github.com/Sherwin-Cui/three-kindoms/pkg/prompts"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

// ErrBadRequest wraps player-caused validation failures so handlers can map
// them to 400s.
var ErrBadRequest = errors.New("bad request")

// autoSuccessTargets maps check events to the item special-effect target
// that short-circuits them. Committing such an item consumes it and the
// check succeeds without a roll.
var autoSuccessTargets = map[string]string{
	"check_event5":     "retreatAutoSuccess",
	"emergency_event1": "ganNingNightCheckAutoSuccess",
}

// CheckOutcome is the result of resolving a check event.
type CheckOutcome struct {
	EventID    string               `json:"event_id"`
	Result     state.CheckResult    `json:"result"`
	ResultText string               `json:"result_text,omitempty"`
	Changes    []state.ChangeRecord `json:"changes,omitempty"`
	Items      []ItemNotification   `json:"items,omitempty"`
	ChapterEnd *state.ChapterEnd    `json:"chapter_end,omitempty"`
}

// CompleteCheck resolves a pending check event: rolls against the player
// attribute it targets, applies the authored effects for the outcome tier
// and records the outcome flags the item trigger scan reads.
func (e *Engine) CompleteCheck(ctx context.Context, id uuid.UUID, eventID string, itemIDs []string) (*CheckOutcome, error) {
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
	ev := e.cat.Event(eventID)
	if ev == nil || (ev.Type != catalog.EventCheck && ev.Type != catalog.EventEmergency) {
		return nil, fmt.Errorf("%w: %q is not a check event", ErrBadRequest, eventID)
	}
	if ev.Chapter != st.ChapterNumber() {
		return nil, fmt.Errorf("%w: event %q belongs to chapter %d", ErrBadRequest, eventID, ev.Chapter)
	}
	if st.EventTriggered(eventID) {
		return nil, fmt.Errorf("%w: event %q already resolved", ErrBadRequest, eventID)
	}

	outcome := &CheckOutcome{EventID: eventID}
	if itemID := e.autoSuccessItem(st, eventID, itemIDs); itemID != "" {
		st.UseItem(itemID)
		outcome.Result = state.CheckResult{Success: true, SuccessRate: 100}
	} else {
		outcome.Result = st.PerformCheck(ev.CheckTarget, ev.SuccessThreshold, itemIDs)
	}

	st.TriggerEvent(eventID)
	gs := st.State()
	var effects []catalog.Effect
	switch {
	case outcome.Result.GreatSuccess:
		gs.Flags[eventID+"_success"] = true
		gs.Flags[eventID+"_great_success"] = true
		outcome.ResultText = ev.SuccessText
		effects = ev.GreatSuccessEffects
		if effects == nil {
			effects = ev.SuccessEffects
		}
	case outcome.Result.Success:
		gs.Flags[eventID+"_success"] = true
		outcome.ResultText = ev.SuccessText
		effects = ev.SuccessEffects
	default:
		gs.Flags[eventID+"_failure"] = true
		outcome.ResultText = ev.FailureText
		effects = ev.FailureEffects
	}
	if outcome.ResultText != "" {
		st.AddDialogue("旁白", outcome.ResultText, "narration")
	}

	changes, forcedFail := st.ApplyEffects(effects)
	outcome.Changes = changes
	outcome.Items = e.scanItemTriggers(st)

	if forcedFail {
		outcome.ChapterEnd = st.FailChapter("")
		e.finishChapter(st, outcome.ChapterEnd)
	} else if end := st.CheckGameEnd(); end != nil {
		outcome.ChapterEnd = end
		e.finishChapter(st, end)
	}

	if err := e.saveStore(ctx, st); err != nil {
		return nil, err
	}
	return outcome, nil
}

// autoSuccessItem returns the first committed item that short-circuits this
// check, or empty.
func (e *Engine) autoSuccessItem(st *state.Store, eventID string, itemIDs []string) string {
	target, ok := autoSuccessTargets[eventID]
	if !ok {
		return ""
	}
	for _, id := range itemIDs {
		if !st.HasItem(id) {
			continue
		}
		item := e.cat.Item(id)
		if item == nil {
			continue
		}
		if hasSpecialTarget(item.Effect, target) {
			return id
		}
	}
	return ""
}

func hasSpecialTarget(ef catalog.ItemEffect, target string) bool {
	if ef.Type == catalog.ItemEffectSpecial && ef.Target == target {
		return true
	}
	for _, sub := range ef.Effects {
		if hasSpecialTarget(sub, target) {
			return true
		}
	}
	return false
}

// ChoiceOutcome is the result of resolving a choice event.
type ChoiceOutcome struct {
	EventID    string               `json:"event_id"`
	Option     string               `json:"option"`
	ResultText string               `json:"result_text,omitempty"`
	Changes    []state.ChangeRecord `json:"changes,omitempty"`
	Items      []ItemNotification   `json:"items,omitempty"`
	ChapterEnd *state.ChapterEnd    `json:"chapter_end,omitempty"`
}

// ResolveChoice applies the picked option of a choice event. Requirements
// are re-validated server side; an unavailable option is rejected.
func (e *Engine) ResolveChoice(ctx context.Context, id uuid.UUID, eventID, optionKey string) (*ChoiceOutcome, error) {
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
	ev := e.cat.Event(eventID)
	if ev == nil || ev.Type != catalog.EventChoice {
		return nil, fmt.Errorf("%w: %q is not a choice event", ErrBadRequest, eventID)
	}
	if ev.Chapter != st.ChapterNumber() {
		return nil, fmt.Errorf("%w: event %q belongs to chapter %d", ErrBadRequest, eventID, ev.Chapter)
	}
	if st.EventTriggered(eventID) {
		return nil, fmt.Errorf("%w: event %q already resolved", ErrBadRequest, eventID)
	}
	opt, ok := ev.Options[optionKey]
	if !ok {
		return nil, fmt.Errorf("%w: event %q has no option %q", ErrBadRequest, eventID, optionKey)
	}
	if !catalog.EvalRequirements(st, opt.Requirements) {
		return nil, fmt.Errorf("%w: option %q requirements not met", ErrBadRequest, optionKey)
	}

	st.TriggerEvent(eventID)
	st.State().Flags[eventID+"_choice_"+optionKey] = true

	outcome := &ChoiceOutcome{EventID: eventID, Option: optionKey, ResultText: opt.ResultText}
	if outcome.ResultText != "" {
		st.AddDialogue("旁白", outcome.ResultText, "narration")
	}
	changes, forcedFail := st.ApplyEffects(opt.Effects)
	outcome.Changes = changes
	outcome.Items = e.scanItemTriggers(st)

	if forcedFail {
		outcome.ChapterEnd = st.FailChapter(opt.ResultText)
		e.finishChapter(st, outcome.ChapterEnd)
	} else if end := st.CheckGameEnd(); end != nil {
		outcome.ChapterEnd = end
		e.finishChapter(st, end)
	}

	if err := e.saveStore(ctx, st); err != nil {
		return nil, err
	}
	return outcome, nil
}

// UseItem uses an inventory item mid-dialogue. The state change happens
// first, the narrator is asked to weave it into the story, and a transport
// failure rolls the whole use back so the item is not lost silently.
func (e *Engine) UseItem(ctx context.Context, id uuid.UUID, itemID, message string) (*TurnResult, error) {
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
	item := e.cat.Item(itemID)
	if item == nil {
		return nil, fmt.Errorf("%w: unknown item %q", ErrBadRequest, itemID)
	}

	before := st.SnapshotState()
	use := st.UseItem(itemID)
	if !use.Success {
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, use.Message)
	}

	if message == "" {
		message = "（出示" + item.Name + "）"
	}
	player := e.cat.Player()
	st.AddDialogue(player.Name, message, "player")

	messages, err := prompts.New(e.cat).
		WithGameState(st.State()).
		WithPlayerInput(message).
		WithUsedItem(itemID).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	raw, err := e.llm.Chat(ctx, messages)
	if err != nil {
		st.Restore(before)
		e.logger.Error("narrator call failed, item use rolled back",
			"session", id, "item", itemID, "error", err)
		return nil, fmt.Errorf("narrator unavailable, item not used: %w", err)
	}

	resp, _ := e.parser.Parse(raw)
	result := e.reconcile(st, resp)
	result.SessionID = id
	if err := e.saveStore(ctx, st); err != nil {
		st.Restore(before)
		return nil, err
	}
	return result, nil
}

// AdvanceChapter moves a session with a completed chapter into the next one.
func (e *Engine) AdvanceChapter(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	if err := e.acquire(id); err != nil {
		return nil, err
	}
	defer e.release(id)

	st, err := e.loadStore(ctx, id)
	if err != nil {
		return nil, err
	}
	gs := st.State()
	if gs.IsEnded {
		return nil, ErrGameEnded
	}
	if !gs.Flags[fmt.Sprintf("chapter%d_complete", gs.Chapter)] {
		return nil, fmt.Errorf("%w: chapter %d is not resolved yet", ErrBadRequest, gs.Chapter)
	}
	if err := st.SwitchToChapter(gs.Chapter + 1); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if err := e.saveStore(ctx, st); err != nil {
		return nil, err
	}
	return gs, nil
}

// Reset restarts the session from the top of chapter 1, keeping its
// identity. A finished game can be reset and replayed.
func (e *Engine) Reset(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	if err := e.acquire(id); err != nil {
		return nil, err
	}
	defer e.release(id)

	st, err := e.loadStore(ctx, id)
	if err != nil {
		return nil, err
	}
	st.Reset()
	if err := e.saveStore(ctx, st); err != nil {
		return nil, err
	}
	e.logger.Info("session reset", "session", id)
	return st.State(), nil
}

// SaveSlot snapshots the session into a named slot.
func (e *Engine) SaveSlot(ctx context.Context, id uuid.UUID, slot string) error {
	st, err := e.loadStore(ctx, id)
	if err != nil {
		return err
	}
	gs := st.SnapshotState()
	return e.store.SaveSlot(ctx, id, slot, &state.Snapshot{State: gs, Timestamp: gs.UpdatedAt})
}

// LoadSlot restores the session from a named slot.
func (e *Engine) LoadSlot(ctx context.Context, id uuid.UUID, slot string) (*state.GameState, error) {
	if err := e.acquire(id); err != nil {
		return nil, err
	}
	defer e.release(id)

	snap, err := e.store.LoadSlot(ctx, id, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if snap == nil || snap.State == nil {
		return nil, fmt.Errorf("%w: slot %q is empty", ErrBadRequest, slot)
	}
	if err := e.store.SaveSession(ctx, id, snap); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	return snap.State, nil
}

// Summary is a compact view of a session for status displays.
type Summary struct {
	SessionID   uuid.UUID      `json:"session_id"`
	Chapter     int            `json:"chapter"`
	ChapterName string         `json:"chapter_name"`
	Day         int            `json:"day"`
	Attributes  map[string]int `json:"attributes"`
	Tracks      map[string]int `json:"tracks"`
	Items       []string       `json:"items"`
	Triggered   []string       `json:"triggered_events"`
	IsEnded     bool           `json:"is_ended"`
}

// Summarize builds the status view of a session.
func (e *Engine) Summarize(ctx context.Context, id uuid.UUID) (*Summary, error) {
	st, err := e.loadStore(ctx, id)
	if err != nil {
		return nil, err
	}
	gs := st.State()
	ch := e.cat.Chapter(gs.Chapter)
	sum := &Summary{
		SessionID:  gs.ID,
		Chapter:    gs.Chapter,
		Day:        gs.Tracks["timeProgress"],
		Attributes: make(map[string]int),
		Tracks:     make(map[string]int, len(gs.Tracks)),
		Triggered:  append([]string(nil), gs.TriggeredEvents...),
		IsEnded:    gs.IsEnded,
	}
	if ch != nil {
		sum.ChapterName = ch.Title
	}
	for npc, attrs := range gs.Attributes {
		for name, v := range attrs {
			sum.Attributes[npc+"."+name] = v
		}
	}
	for name, v := range gs.Tracks {
		sum.Tracks[name] = v
	}
	for itemID := range gs.Items {
		sum.Items = append(sum.Items, itemID)
	}
	return sum, nil
}
