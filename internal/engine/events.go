package engine

import (
	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

// OptionView is one choice option as presented to the player. Options whose
// requirements fail are shown but not selectable.
type OptionView struct {
	Key          string `json:"key"`
	Text         string `json:"text"`
	Consequences string `json:"consequences,omitempty"`
	Available    bool   `json:"available"`
}

// CheckInfo describes a pending check the player must resolve.
type CheckInfo struct {
	Target              string `json:"target"`
	SuccessThreshold    int    `json:"success_threshold"`
	AdditionalCondition string `json:"additional_condition,omitempty"`
}

// TriggeredEvent is an event surfaced to the player this turn.
type TriggeredEvent struct {
	ID          string            `json:"id"`
	Type        catalog.EventType `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Content     string            `json:"content,omitempty"`
	Reason      string            `json:"reason,omitempty"`
	Options     []OptionView      `json:"options,omitempty"`
	Check       *CheckInfo        `json:"check,omitempty"`
}

// eventHandler prepares one authored event for presentation. Handlers are
// registered per event id at engine construction and dispatched by type.
type eventHandler interface {
	// handle marks the event triggered where appropriate and builds its
	// presentation. A nil result suppresses the event.
	handle(st *state.Store, ev *catalog.Event, reason string) *TriggeredEvent
}

type dialogueHandler struct{}

// Dialogue events fire immediately: the authored content is the payload.
func (dialogueHandler) handle(st *state.Store, ev *catalog.Event, reason string) *TriggeredEvent {
	if !st.TriggerEvent(ev.ID) {
		return nil
	}
	st.AddDialogue("旁白", ev.Content, "narration")
	return &TriggeredEvent{
		ID:      ev.ID,
		Type:    ev.Type,
		Title:   ev.Title,
		Content: ev.Content,
		Reason:  reason,
	}
}

type choiceHandler struct{}

// Choice events present their options; resolution happens on a later
// request. The event is not marked triggered until an option is picked.
func (choiceHandler) handle(st *state.Store, ev *catalog.Event, reason string) *TriggeredEvent {
	if st.EventTriggered(ev.ID) {
		return nil
	}
	out := &TriggeredEvent{
		ID:          ev.ID,
		Type:        ev.Type,
		Title:       ev.Title,
		Description: ev.Description,
		Reason:      reason,
	}
	for _, key := range ev.OptionOrder {
		opt, ok := ev.Options[key]
		if !ok {
			continue
		}
		out.Options = append(out.Options, OptionView{
			Key:          key,
			Text:         opt.Text,
			Consequences: opt.Consequences,
			Available:    catalog.EvalRequirements(st, opt.Requirements),
		})
	}
	return out
}

type checkHandler struct{}

// Check events present the pending roll; the player resolves it with a
// separate request, optionally committing bonus items.
func (checkHandler) handle(st *state.Store, ev *catalog.Event, reason string) *TriggeredEvent {
	if st.EventTriggered(ev.ID) {
		return nil
	}
	return &TriggeredEvent{
		ID:          ev.ID,
		Type:        ev.Type,
		Title:       ev.Title,
		Description: ev.Description,
		Reason:      reason,
		Check: &CheckInfo{
			Target:              ev.CheckTarget,
			SuccessThreshold:    ev.SuccessThreshold,
			AdditionalCondition: ev.AdditionalCondition,
		},
	}
}

type emergencyHandler struct{}

// Emergency events carry both a description and a forced check.
func (emergencyHandler) handle(st *state.Store, ev *catalog.Event, reason string) *TriggeredEvent {
	if st.EventTriggered(ev.ID) {
		return nil
	}
	return &TriggeredEvent{
		ID:          ev.ID,
		Type:        ev.Type,
		Title:       ev.Title,
		Description: ev.Description,
		Reason:      reason,
		Check: &CheckInfo{
			Target:           ev.CheckTarget,
			SuccessThreshold: ev.SuccessThreshold,
		},
	}
}

// buildHandlers registers a handler per authored event id, keyed so unknown
// narrator suggestions fall through harmlessly.
func buildHandlers(cat *catalog.Catalog) map[string]eventHandler {
	handlers := make(map[string]eventHandler, len(cat.Events))
	for id, ev := range cat.Events {
		switch ev.Type {
		case catalog.EventDialogue:
			handlers[id] = dialogueHandler{}
		case catalog.EventChoice:
			handlers[id] = choiceHandler{}
		case catalog.EventCheck:
			handlers[id] = checkHandler{}
		case catalog.EventEmergency:
			handlers[id] = emergencyHandler{}
		}
	}
	return handlers
}
