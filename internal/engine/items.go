package engine

import (
	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

// ItemNotification announces a gained item.
type ItemNotification struct {
	ItemID      string `json:"item_id"`
	ItemName    string `json:"item_name"`
	Description string `json:"description,omitempty"`
	Condition   string `json:"condition,omitempty"`
}

// grantItem validates a narrator item grant. The catalog is authoritative:
// unknown items and items outside the current chapter's item list are
// refused, as are repeat grants.
func (e *Engine) grantItem(st *state.Store, itemID, condition string) *ItemNotification {
	item := e.cat.Item(itemID)
	if item == nil {
		e.logger.Warn("narrator granted unknown item", "item", itemID)
		return nil
	}
	gs := st.State()
	if gs.Items[itemID] || gs.UsedItems[itemID] {
		return nil
	}
	if !e.itemLegalNow(st, itemID) {
		e.logger.Warn("narrator granted out-of-chapter item",
			"item", itemID, "chapter", st.ChapterNumber())
		return nil
	}
	gs.Items[itemID] = true
	return &ItemNotification{
		ItemID:      itemID,
		ItemName:    item.Name,
		Description: item.Effect.Description,
		Condition:   condition,
	}
}

// itemLegalNow reports whether the item may be acquired in the current
// chapter. Initial-carry items are always legal.
func (e *Engine) itemLegalNow(st *state.Store, itemID string) bool {
	item := e.cat.Item(itemID)
	if item == nil {
		return false
	}
	if item.Trigger.InitialCarry {
		return true
	}
	ch := e.cat.Chapter(st.ChapterNumber())
	if ch == nil {
		return false
	}
	for _, id := range ch.ItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// scanItemTriggers grants every item whose structured trigger is now
// satisfied. This scan is the authoritative grant path: it runs after every
// mutation batch, so an authored grant the narrator forgot still happens.
func (e *Engine) scanItemTriggers(st *state.Store) []ItemNotification {
	gs := st.State()
	var out []ItemNotification
	for id, item := range e.cat.Items {
		if gs.Items[id] || gs.UsedItems[id] || item.Trigger.IsZero() {
			continue
		}
		if !e.itemLegalNow(st, id) {
			continue
		}
		if !triggerSatisfied(st, item.Trigger) {
			continue
		}
		gs.Items[id] = true
		e.logger.Info("item granted by trigger", "item", id)
		out = append(out, ItemNotification{
			ItemID:      id,
			ItemName:    item.Name,
			Description: item.Effect.Description,
		})
	}
	return out
}

func triggerSatisfied(st *state.Store, t catalog.ItemTrigger) bool {
	if t.InitialCarry {
		return true
	}
	if t.AfterEvent != "" && !st.EventTriggered(t.AfterEvent) {
		return false
	}
	if t.AfterSuccess != "" && !st.FlagSet(t.AfterSuccess+"_success") {
		return false
	}
	if t.AfterGreatSuccess != "" && !st.FlagSet(t.AfterGreatSuccess+"_great_success") {
		return false
	}
	if t.Condition != nil && !t.Condition.Eval(st) {
		return false
	}
	return t.AfterEvent != "" || t.AfterSuccess != "" || t.AfterGreatSuccess != ""
}
