// Package response defines the narrator reply schema and a tolerant parser
// for it. Narrator output is untrusted text that usually contains JSON;
// parsing degrades through recovery stages and bottoms out at a safe default
// instead of failing the turn.
package response

// NPCDialogue is one spoken line attributed to an NPC.
type NPCDialogue struct {
	Speaker string `json:"speaker"`
	Content string `json:"content"`
}

// EventSuggestion is the narrator's non-binding opinion that an authored
// event should fire. The dispatcher re-validates before acting on it.
type EventSuggestion struct {
	ShouldTrigger bool   `json:"should_trigger"`
	EventID       string `json:"event_id"`
	Reason        string `json:"reason"`
}

// ItemGrant is the narrator's opinion that an item should be granted.
type ItemGrant struct {
	ShouldGrant  bool   `json:"should_grant"`
	ItemID       string `json:"item_id"`
	ConditionMet string `json:"condition_met"`
}

// GameEndJudgment is the narrator's binding end-of-game verdict.
type GameEndJudgment struct {
	IsEnd   bool   `json:"isEnd"`
	EndType string `json:"endType"` // "Success" or "Failure"
	Reason  string `json:"reason"`
}

// Response is the full narrator reply. value_changes and special_progress
// stay loosely typed here; pkg/state normalizes them into deltas.
type Response struct {
	Narrative   string       `json:"narrative"`
	NPCDialogue *NPCDialogue `json:"npc_dialogue,omitempty"`

	ValueChanges    map[string]any `json:"value_changes,omitempty"`
	SpecialProgress map[string]any `json:"special_progress,omitempty"`

	EventSuggestion *EventSuggestion `json:"event_suggestion,omitempty"`
	ItemGrant       *ItemGrant       `json:"item_grant,omitempty"`

	GameEnd *GameEndJudgment `json:"gameEndJudgment,omitempty"`

	// Legacy spelling of the end judgment, folded into GameEnd after parse.
	GameEndLegacy *GameEndJudgment `json:"gameEnd,omitempty"`
}

// normalize folds legacy fields into their canonical spots.
func (r *Response) normalize() {
	if r.GameEnd == nil && r.GameEndLegacy != nil {
		r.GameEnd = r.GameEndLegacy
	}
	r.GameEndLegacy = nil
}

// hasContent reports whether the reply carries any displayable text. A
// structurally valid reply with neither narrative nor dialogue is useless to
// the player and treated as a parse failure.
func (r *Response) hasContent() bool {
	if r.Narrative != "" {
		return true
	}
	return r.NPCDialogue != nil && r.NPCDialogue.Content != ""
}

// Default returns the safe fallback reply used when every recovery stage
// fails. It carries narration only: no deltas, no suggestions, no verdicts.
func Default() *Response {
	return &Response{
		Narrative: "你的话语在营帐中回荡，众人若有所思。江风拂过，军旗猎猎作响。",
	}
}
