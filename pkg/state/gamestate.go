// Package state owns the mutable game state for one playthrough and the
// guarded mutation operations on it. Everything that changes at runtime
// lives here; authored rules live in pkg/catalog.
package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
)

// DialogueEntry is one line of the conversation log fed back into prompts.
type DialogueEntry struct {
	Speaker   string    `json:"speaker"`
	Content   string    `json:"content"`
	Type      string    `json:"type"` // "player", "npc" or "narration"
	Timestamp time.Time `json:"timestamp"`
}

// GameState is the complete mutable state of one playthrough. It is a plain
// serializable value; all guarded mutation goes through Store.
type GameState struct {
	ID      uuid.UUID `json:"id"`
	Chapter int       `json:"chapter"`

	// Current character attributes, character id to attribute name.
	Attributes map[string]map[string]int `json:"attributes"`

	// Bounded numeric tracks: timeProgress, arrows and the chapter-local
	// tracks of the current chapter.
	Tracks map[string]int `json:"tracks"`

	// Owned items and items already used. A consumed consumable leaves
	// Items but stays in UsedItems permanently.
	Items     map[string]bool `json:"items"`
	UsedItems map[string]bool `json:"used_items"`

	// Coarse progress flags set by event outcomes and narrator deltas.
	Flags map[string]bool `json:"flags"`

	// TriggeredEvents records each event id at most once, in order.
	TriggeredEvents []string             `json:"triggered_events"`
	EventTimes      map[string]time.Time `json:"event_times,omitempty"`

	ActiveNPCs []string        `json:"active_npcs"`
	Dialogue   []DialogueEntry `json:"dialogue"`

	IsEnded   bool      `json:"is_ended"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot is the unit of persistence: a whole-state copy plus save time.
type Snapshot struct {
	State     *GameState `json:"state"`
	Timestamp time.Time  `json:"timestamp"`
}

const (
	// Dialogue log bounds: once the log exceeds maxDialogue entries it is
	// trimmed to the most recent keepDialogue.
	maxDialogue  = 20
	keepDialogue = 15
)

// NewGameState creates a fresh playthrough positioned at the start of
// chapter 1.
func NewGameState(cat *catalog.Catalog) *GameState {
	now := time.Now().UTC()
	gs := &GameState{
		ID:         uuid.New(),
		Attributes: make(map[string]map[string]int),
		Tracks:     make(map[string]int),
		Items:      make(map[string]bool),
		UsedItems:  make(map[string]bool),
		Flags:      make(map[string]bool),
		EventTimes: make(map[string]time.Time),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for id, ch := range cat.Characters {
		attrs := make(map[string]int, len(ch.Attributes))
		for k, v := range ch.Attributes {
			attrs[k] = v
		}
		gs.Attributes[id] = attrs
	}
	gs.Tracks["arrows"] = 0
	gs.enterChapter(cat, 1)
	return gs
}

// enterChapter positions the state at the start of the given chapter:
// chapter-local tracks are reseeded, per-chapter outcome flags cleared and
// the NPC roster replaced. Inventory, used items and dialogue are left
// untouched; SwitchToChapter decides what carries over.
func (gs *GameState) enterChapter(cat *catalog.Catalog, n int) {
	ch := cat.Chapter(n)
	if ch == nil {
		return
	}
	gs.Chapter = n
	gs.Tracks["timeProgress"] = n
	for name, tr := range ch.State {
		gs.Tracks[name] = tr.Initial
	}
	gs.ActiveNPCs = append([]string(nil), ch.ActiveNPCs...)
	for _, id := range ch.EventIDs {
		delete(gs.Flags, id+"_success")
		delete(gs.Flags, id+"_failure")
		delete(gs.Flags, id+"_great_success")
	}
	for _, it := range cat.Items {
		if it.Trigger.InitialCarry && !gs.UsedItems[it.ID] {
			gs.Items[it.ID] = true
		}
	}
	gs.UpdatedAt = time.Now().UTC()
}

// clone deep-copies the state for snapshots and rollback.
// Clone returns a deep copy sharing nothing with the receiver.
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.Attributes = make(map[string]map[string]int, len(gs.Attributes))
	for id, attrs := range gs.Attributes {
		cp.Attributes[id] = copyMap(attrs)
	}
	cp.Tracks = copyMap(gs.Tracks)
	cp.Items = copyMap(gs.Items)
	cp.UsedItems = copyMap(gs.UsedItems)
	cp.Flags = copyMap(gs.Flags)
	cp.EventTimes = copyMap(gs.EventTimes)
	cp.TriggeredEvents = append([]string(nil), gs.TriggeredEvents...)
	cp.ActiveNPCs = append([]string(nil), gs.ActiveNPCs...)
	cp.Dialogue = append([]DialogueEntry(nil), gs.Dialogue...)
	return &cp
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
