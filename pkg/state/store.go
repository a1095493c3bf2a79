package state

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
)

// Store guards all mutation of a GameState. Narrator-supplied deltas pass
// through normalization and clamping; malformed input is logged and dropped,
// never fatal. Store satisfies catalog.StateView.
type Store struct {
	cat    *catalog.Catalog
	gs     *GameState
	roller Roller
	logger *slog.Logger
}

// NewStore wraps an existing state.
func NewStore(cat *catalog.Catalog, gs *GameState, roller Roller, logger *slog.Logger) *Store {
	if roller == nil {
		roller = NewRoller()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{cat: cat, gs: gs, roller: roller, logger: logger}
}

// State exposes the underlying state. Callers must not mutate it directly.
func (s *Store) State() *GameState { return s.gs }

// SnapshotState returns a deep copy for display diffs and rollback.
func (s *Store) SnapshotState() *GameState { return s.gs.Clone() }

// Restore replaces the whole state, e.g. rolling back a failed item use.
func (s *Store) Restore(gs *GameState) { s.gs = gs }

// Reset re-initializes the playthrough at chapter 1, clearing history,
// items and flags. The session identity survives.
func (s *Store) Reset() {
	fresh := NewGameState(s.cat)
	fresh.ID = s.gs.ID
	fresh.CreatedAt = s.gs.CreatedAt
	s.gs = fresh
}

// catalog.StateView implementation.

func (s *Store) ChapterNumber() int       { return s.gs.Chapter }
func (s *Store) HasItem(id string) bool   { return s.gs.Items[id] }
func (s *Store) ItemUsed(id string) bool  { return s.gs.UsedItems[id] }
func (s *Store) FlagSet(name string) bool { return s.gs.Flags[name] }
func (s *Store) EventTriggered(id string) bool {
	_, ok := s.gs.EventTimes[id]
	return ok
}

// Value resolves "entity.attr" paths and bare track names.
func (s *Store) Value(path string) (int, bool) {
	if entity, attr, ok := strings.Cut(path, "."); ok {
		attrs, found := s.gs.Attributes[entity]
		if !found {
			return 0, false
		}
		v, found := attrs[attr]
		return v, found
	}
	v, found := s.gs.Tracks[path]
	return v, found
}

// ChangeRecord describes one applied mutation, for display.
type ChangeRecord struct {
	Target string `json:"target"`
	Old    int    `json:"old"`
	New    int    `json:"new"`
}

// ApplyDelta applies a normalized delta. Every numeric result is clamped to
// its declared range; unknown characters and attributes are skipped with a
// warning. Returns the changes that actually took effect.
func (s *Store) ApplyDelta(d Delta) []ChangeRecord {
	var applied []ChangeRecord
	for id, attrs := range d.Characters {
		current, ok := s.gs.Attributes[id]
		if !ok {
			s.logger.Warn("delta names unknown character", "character", id)
			continue
		}
		for attr, delta := range attrs {
			old, ok := current[attr]
			if !ok {
				s.logger.Warn("delta names unknown attribute", "character", id, "attribute", attr)
				continue
			}
			r := s.cat.AttributeRange(attr)
			next := clamp(old+delta, r.Min, r.Max)
			if next != old {
				current[attr] = next
				applied = append(applied, ChangeRecord{Target: id + "." + attr, Old: old, New: next})
			}
		}
	}
	for name, delta := range d.Tracks {
		applied = s.applyTrackDelta(name, delta, applied)
	}
	for id, owned := range d.Items {
		if s.cat.Item(id) == nil {
			s.logger.Warn("delta names unknown item", "item", id)
			continue
		}
		if owned {
			s.gs.Items[id] = true
		} else {
			delete(s.gs.Items, id)
		}
	}
	for name, set := range d.Flags {
		s.gs.Flags[name] = set
	}
	if len(applied) > 0 || len(d.Items) > 0 || len(d.Flags) > 0 {
		s.gs.UpdatedAt = time.Now().UTC()
	}
	return applied
}

func (s *Store) applyTrackDelta(name string, delta int, applied []ChangeRecord) []ChangeRecord {
	old, ok := s.gs.Tracks[name]
	if !ok {
		if _, declared := s.cat.TrackRanges[name]; !declared {
			s.logger.Warn("delta names unknown track", "track", name)
			return applied
		}
	}
	r := s.cat.TrackRange(name)
	next := clamp(old+delta, r.Min, r.Max)
	if next != old || !ok {
		s.gs.Tracks[name] = next
		applied = append(applied, ChangeRecord{Target: name, Old: old, New: next})
	}
	return applied
}

// ApplyEffects applies authored event effects. EffectEndFail is reported to
// the caller rather than applied; chapter resolution owns ending the game.
func (s *Store) ApplyEffects(effects []catalog.Effect) (applied []ChangeRecord, forcedFail bool) {
	for _, ef := range effects {
		switch ef.Type {
		case catalog.EffectChange:
			delta := ParseSignedToken(ef.Value)
			if entity, attr, ok := strings.Cut(ef.Target, "."); ok {
				d := Delta{Characters: map[string]map[string]int{entity: {attr: delta}}}
				applied = append(applied, s.ApplyDelta(d)...)
			} else {
				applied = s.applyTrackDelta(ef.Target, delta, applied)
			}
		case catalog.EffectGainItem:
			if s.cat.Item(ef.Target) != nil {
				s.gs.Items[ef.Target] = true
			}
		case catalog.EffectFlag:
			s.gs.Flags[ef.Target] = true
		case catalog.EffectEndFail:
			forcedFail = true
		}
	}
	return applied, forcedFail
}

// TriggerEvent records an event as triggered. Idempotent: re-triggering is
// a no-op and reports false.
func (s *Store) TriggerEvent(id string) bool {
	if _, ok := s.gs.EventTimes[id]; ok {
		return false
	}
	s.gs.EventTimes[id] = time.Now().UTC()
	s.gs.TriggeredEvents = append(s.gs.TriggeredEvents, id)
	s.gs.UpdatedAt = time.Now().UTC()
	return true
}

// UseResult reports an item use attempt.
type UseResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UseItem consumes or marks an item as used. Consumables leave the
// inventory; non-consumables stay but are recorded in UsedItems. Using an
// unowned or unknown item fails without mutating anything.
func (s *Store) UseItem(id string) UseResult {
	item := s.cat.Item(id)
	if item == nil {
		return UseResult{Message: "未知道具"}
	}
	if !s.gs.Items[id] {
		if s.gs.UsedItems[id] {
			return UseResult{Message: item.Name + "已经使用过了"}
		}
		return UseResult{Message: "未持有" + item.Name}
	}
	if item.Consumable && s.gs.UsedItems[id] {
		return UseResult{Message: item.Name + "已经使用过了"}
	}
	if item.Consumable {
		delete(s.gs.Items, id)
	}
	s.gs.UsedItems[id] = true
	if item.Effect.Type == catalog.ItemEffectAttributeChange && item.Effect.Target != "" {
		s.ApplyEffects([]catalog.Effect{{
			Type:   catalog.EffectChange,
			Target: item.Effect.Target,
			Value:  fmt.Sprintf("%d", item.Effect.Value),
		}})
	}
	s.gs.UpdatedAt = time.Now().UTC()
	return UseResult{Success: true, Message: "使用" + item.Name + "成功"}
}

// CheckResult is the outcome of one attribute check.
type CheckResult struct {
	Success      bool    `json:"success"`
	GreatSuccess bool    `json:"great_success"`
	Attribute    int     `json:"attribute"`
	Bonus        int     `json:"bonus"`
	Difficulty   int     `json:"difficulty"`
	SuccessRate  int     `json:"success_rate"`
	Roll         float64 `json:"roll"`
}

// PerformCheck rolls an attribute check for the player. The success rate is
// attribute plus item bonuses minus difficulty, clamped to [0,100]; the
// check succeeds when the roll lands below it. A successful roll of 90 or
// above is a great success. Only owned, unused items whose declared bonus
// targets the checked attribute contribute.
func (s *Store) PerformCheck(attribute string, difficulty int, itemIDs []string) CheckResult {
	player := s.cat.Player()
	attrValue := s.gs.Attributes[player.ID][attribute]

	bonus := 0
	for _, id := range itemIDs {
		if !s.gs.Items[id] || s.gs.UsedItems[id] {
			continue
		}
		if item := s.cat.Item(id); item != nil {
			bonus += item.CheckBonus(attribute)
		}
	}

	rate := clamp(attrValue+bonus-difficulty, 0, 100)
	roll := s.roller.Roll()
	success := roll < float64(rate)
	return CheckResult{
		Success:      success,
		GreatSuccess: success && roll >= 90,
		Attribute:    attrValue,
		Bonus:        bonus,
		Difficulty:   difficulty,
		SuccessRate:  rate,
		Roll:         roll,
	}
}

// SwitchToChapter advances to the given chapter. Non-consumed items, used
// item records, flags and dialogue history carry over; chapter-local tracks,
// outcome flags and the event-trigger log reset.
func (s *Store) SwitchToChapter(n int) error {
	if s.cat.Chapter(n) == nil {
		return fmt.Errorf("unknown chapter %d", n)
	}
	s.gs.EventTimes = make(map[string]time.Time)
	s.gs.TriggeredEvents = nil
	s.gs.enterChapter(s.cat, n)
	s.logger.Info("entered chapter", "chapter", n)
	return nil
}

// AddDialogue appends one line to the conversation log, skipping an exact
// repeat of the latest entry and trimming the log when it outgrows its cap.
func (s *Store) AddDialogue(speaker, content, typ string) {
	if speaker == "" || content == "" {
		return
	}
	if n := len(s.gs.Dialogue); n > 0 {
		last := s.gs.Dialogue[n-1]
		if last.Speaker == speaker && last.Content == content {
			return
		}
	}
	s.gs.Dialogue = append(s.gs.Dialogue, DialogueEntry{
		Speaker:   speaker,
		Content:   content,
		Type:      typ,
		Timestamp: time.Now().UTC(),
	})
	if len(s.gs.Dialogue) > maxDialogue {
		s.gs.Dialogue = s.gs.Dialogue[len(s.gs.Dialogue)-keepDialogue:]
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
