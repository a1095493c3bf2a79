package catalog

// ItemEffectType discriminates what using or holding an item does.
type ItemEffectType string

const (
	ItemEffectCheckBonus      ItemEffectType = "check_bonus"      // passive bonus on matching checks while held
	ItemEffectAttributeChange ItemEffectType = "attribute_change" // on use, adjust an attribute or track
	ItemEffectSpecial         ItemEffectType = "special"          // narrative effect resolved by the narrator
	ItemEffectMultiple        ItemEffectType = "multiple"         // composite of Effects
)

// ItemEffect describes an item's mechanical effect. CheckBonus effects name
// the player attribute they boost in Target; only checks against that exact
// attribute receive the bonus.
type ItemEffect struct {
	Type        ItemEffectType `json:"type"`
	Target      string         `json:"target,omitempty"`
	Value       int            `json:"value,omitempty"`
	Description string         `json:"description,omitempty"`
	Effects     []ItemEffect   `json:"effects,omitempty"`
}

// ItemTrigger is the structured grant condition for an item. Zero value means
// the item is never auto-granted; it can still arrive through choice effects
// or an accepted narrator grant suggestion. All set fields must hold.
type ItemTrigger struct {
	InitialCarry      bool       `json:"initial_carry,omitempty"`
	AfterEvent        string     `json:"after_event,omitempty"`         // event id has been triggered
	AfterSuccess      string     `json:"after_success,omitempty"`       // check event id succeeded
	AfterGreatSuccess string     `json:"after_great_success,omitempty"` // check event id greatly succeeded
	Condition         *Condition `json:"condition,omitempty"`           // extra state predicate
}

// IsZero reports whether the trigger has no grant path.
func (t ItemTrigger) IsZero() bool {
	return !t.InitialCarry && t.AfterEvent == "" && t.AfterSuccess == "" &&
		t.AfterGreatSuccess == "" && t.Condition == nil
}

// ItemCategory is the narrative classification of an item.
type ItemCategory string

const (
	ItemPlot     ItemCategory = "plot"
	ItemCheck    ItemCategory = "check"
	ItemDialogue ItemCategory = "dialogue"
)

// Item is one authored inventory entry.
type Item struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    ItemCategory `json:"category"`
	Description string       `json:"description,omitempty"`
	Consumable  bool         `json:"consumable"`
	Effect      ItemEffect   `json:"effect"`
	Trigger     ItemTrigger  `json:"trigger"`
}

// CheckBonus returns the bonus this item contributes to a check against the
// given attribute, walking composite effects.
func (i *Item) CheckBonus(attribute string) int {
	return checkBonus(i.Effect, attribute)
}

func checkBonus(e ItemEffect, attribute string) int {
	switch e.Type {
	case ItemEffectCheckBonus:
		if e.Target == attribute {
			return e.Value
		}
	case ItemEffectMultiple:
		total := 0
		for _, sub := range e.Effects {
			total += checkBonus(sub, attribute)
		}
		return total
	}
	return 0
}
