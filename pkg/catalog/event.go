package catalog

// EventType discriminates the four authored event flavors.
type EventType string

const (
	EventDialogue  EventType = "dialogue"
	EventChoice    EventType = "choice"
	EventCheck     EventType = "check"
	EventEmergency EventType = "emergency"
)

// Effect is one mechanical consequence of an event branch. Value uses the
// signed-token grammar ("+15", "-20000", "5") shared with narrator deltas.
type EffectType string

const (
	EffectChange   EffectType = "change"    // adjust Target (entity.attr or track) by Value
	EffectGainItem EffectType = "gain_item" // grant item Target
	EffectFlag     EffectType = "flag"      // set progress flag Target
	EffectEndFail  EffectType = "end_fail"  // force chapter failure
)

type Effect struct {
	Type   EffectType `json:"type"`
	Target string     `json:"target,omitempty"`
	Value  string     `json:"value,omitempty"`
}

// ChoiceOption is one branch of a choice event. Requirements use the
// requirement grammar ("item:<id>", "usedItem:<id>", "<entity>.<attr><op><n>").
type ChoiceOption struct {
	Text         string   `json:"text"`
	Requirements []string `json:"requirements,omitempty"`
	Consequences string   `json:"consequences,omitempty"`
	ResultText   string   `json:"result_text,omitempty"`
	Effects      []Effect `json:"effects,omitempty"`
}

// Event is one authored story beat. Fields are populated by type: Content for
// dialogue and emergency events, Options for choices, the check fields for
// checks.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Chapter     int       `json:"chapter"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`

	Content string `json:"content,omitempty"`

	// Choice events. OptionOrder preserves authored presentation order.
	Options     map[string]ChoiceOption `json:"options,omitempty"`
	OptionOrder []string                `json:"option_order,omitempty"`

	// Check events. CheckTarget names the player attribute rolled against;
	// SuccessThreshold is the difficulty subtracted from attribute+bonus.
	CheckTarget         string   `json:"check_target,omitempty"`
	SuccessThreshold    int      `json:"success_threshold,omitempty"`
	AdditionalCondition string   `json:"additional_condition,omitempty"`
	SuccessText         string   `json:"success_text,omitempty"`
	FailureText         string   `json:"failure_text,omitempty"`
	SuccessEffects      []Effect `json:"success_effects,omitempty"`
	FailureEffects      []Effect `json:"failure_effects,omitempty"`

	// Optional outcome tiers. A success with a roll of 90 or above is a
	// great success; effects fall back to the plain tier when absent.
	GreatSuccessEffects []Effect `json:"great_success_effects,omitempty"`

	// Emergency events fire from state alone, narrator opinion ignored.
	// TriggerCondition is the human-readable rule shown in prompts;
	// TriggerWhen is the machine form the dispatcher evaluates.
	TriggerCondition string     `json:"trigger_condition,omitempty"`
	TriggerWhen      *Condition `json:"trigger_when,omitempty"`
}
