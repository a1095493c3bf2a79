// Package catalog holds the authored rule set for the story: characters,
// chapters, events and items. Catalog data is immutable; all mutable values
// (current attributes, owned items, triggered events) live in pkg/state.
package catalog

// Character is an authored cast member. Attributes are the baseline values
// used to seed chapter state; player attributes double as check baselines.
type Character struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	IsPlayer    bool           `json:"is_player,omitempty"`
	Attributes  map[string]int `json:"attributes"`
}

// Track describes a bounded numeric value (global or chapter-local).
type Track struct {
	Initial     int    `json:"initial"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Description string `json:"description,omitempty"`
}

// EndText is the narrative wrapper shown when a chapter resolves.
type EndText struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Narrative   string `json:"narrative"`
}

// Ending is one tier of a chapter's ending table. Tiers are evaluated in
// authored priority order; the first satisfied set wins.
type Ending struct {
	ID         string    `json:"id"`
	Conditions Condition `json:"conditions"`
	EndText
}

// Chapter is one act of the story. Most chapters resolve through flat
// success/failure condition lists; a chapter may instead carry a
// priority-ordered Endings table (chapter 3 does).
type Chapter struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	OpeningText string `json:"opening_text"`
	PlotSummary string `json:"plot_summary"`

	// Chapter-local bounded tracks, reseeded on chapter entry.
	State map[string]Track `json:"state,omitempty"`

	SuccessConditions []Condition `json:"success_conditions,omitempty"`
	FailureConditions []Condition `json:"failure_conditions,omitempty"`
	Endings           []Ending    `json:"endings,omitempty"`

	SuccessText EndText `json:"success_text"`
	FailureText EndText `json:"failure_text"`

	// Closed sets of ids the narrator may reference this chapter. The prompt
	// compiler lists exactly these, so out-of-chapter references cannot be
	// produced by construction.
	EventIDs   []string `json:"event_ids"`
	ItemIDs    []string `json:"item_ids"`
	ActiveNPCs []string `json:"active_npcs"`
}

// Catalog bundles the full authored rule set.
type Catalog struct {
	Characters map[string]Character
	Chapters   map[int]*Chapter
	Events     map[string]*Event
	Items      map[string]*Item

	// Declared [min,max] ranges for character attributes and state tracks.
	// Every mutation is clamped against these.
	AttributeRanges map[string]Range
	TrackRanges     map[string]Range
}

// Range is a closed integer interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Player returns the player character.
func (c *Catalog) Player() Character {
	for _, ch := range c.Characters {
		if ch.IsPlayer {
			return ch
		}
	}
	return Character{}
}

// Chapter returns the chapter with the given number, or nil.
func (c *Catalog) Chapter(n int) *Chapter {
	return c.Chapters[n]
}

// Event returns the event with the given id, or nil.
func (c *Catalog) Event(id string) *Event {
	return c.Events[id]
}

// Item returns the item with the given id, or nil.
func (c *Catalog) Item(id string) *Item {
	return c.Items[id]
}

// AttributeRange reports the declared range for an attribute name,
// defaulting to [0,100] for undeclared attributes.
func (c *Catalog) AttributeRange(attr string) Range {
	if r, ok := c.AttributeRanges[attr]; ok {
		return r
	}
	return Range{Min: 0, Max: 100}
}

// TrackRange reports the declared range for a named track,
// defaulting to [0,100] for undeclared tracks.
func (c *Catalog) TrackRange(name string) Range {
	if r, ok := c.TrackRanges[name]; ok {
		return r
	}
	return Range{Min: 0, Max: 100}
}
