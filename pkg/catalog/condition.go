package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// StateView is the read-only window conditions are evaluated against.
// pkg/state.Store satisfies it; tests use lightweight fakes.
type StateView interface {
	ChapterNumber() int
	// Value resolves a dotted variable path ("zhouYu.suspicion", "arrows",
	// "timeProgress") to its current value.
	Value(path string) (int, bool)
	HasItem(id string) bool
	ItemUsed(id string) bool
	EventTriggered(id string) bool
	FlagSet(name string) bool
}

// Condition is a predicate over game state. Exactly one of All, Any or the
// leaf fields (Variable/Operator...) is populated. Leaves compare a resolved
// variable against Value, or test item possession when Item is set.
type Condition struct {
	All []Condition `json:"all,omitempty"`
	Any []Condition `json:"any,omitempty"`

	Variable string `json:"variable,omitempty"`
	Operator string `json:"operator,omitempty"`
	Value    int    `json:"value,omitempty"`

	Item string `json:"item,omitempty"` // satisfied when the item is owned
	Flag string `json:"flag,omitempty"` // satisfied when the flag is set
}

// Eval reports whether the condition holds. Unresolvable variables make the
// leaf false rather than erroring; authored data controls the vocabulary.
func (c Condition) Eval(sv StateView) bool {
	switch {
	case len(c.All) > 0:
		for _, sub := range c.All {
			if !sub.Eval(sv) {
				return false
			}
		}
		return true
	case len(c.Any) > 0:
		for _, sub := range c.Any {
			if sub.Eval(sv) {
				return true
			}
		}
		return false
	case c.Item != "":
		return sv.HasItem(c.Item)
	case c.Flag != "":
		return sv.FlagSet(c.Flag)
	case c.Variable != "":
		v, ok := sv.Value(c.Variable)
		if !ok {
			return false
		}
		return compare(v, c.Operator, c.Value)
	}
	return true
}

func compare(left int, op string, right int) bool {
	switch op {
	case "<":
		return left < right
	case ">":
		return left > right
	case "<=":
		return left <= right
	case ">=":
		return left >= right
	case "==", "":
		return left == right
	case "!=":
		return left != right
	}
	return false
}

// comparison operators ordered so two-rune forms match before their one-rune
// prefixes.
var requirementOps = []string{"<=", ">=", "==", "!=", "<", ">"}

// ParseRequirement parses one entry of the requirement grammar used by
// choice options and check preconditions:
//
//	item:<id>         owned and not yet consumed
//	usedItem:<id>     has been used
//	<path><op><n>     numeric comparison, e.g. "zhouYu.suspicion<50"
func ParseRequirement(raw string) (Condition, error) {
	raw = strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(raw, "item:"); ok {
		return Condition{Item: rest}, nil
	}
	if rest, ok := strings.CutPrefix(raw, "usedItem:"); ok {
		return Condition{Flag: usedItemFlag(rest)}, nil
	}
	for _, op := range requirementOps {
		if i := strings.Index(raw, op); i > 0 {
			path := strings.TrimSpace(raw[:i])
			n, err := strconv.Atoi(strings.TrimSpace(raw[i+len(op):]))
			if err != nil {
				return Condition{}, fmt.Errorf("requirement %q: bad number: %w", raw, err)
			}
			return Condition{Variable: path, Operator: op, Value: n}, nil
		}
	}
	return Condition{}, fmt.Errorf("unrecognized requirement %q", raw)
}

// usedItemFlag names the pseudo-flag the evaluator maps to ItemUsed.
func usedItemFlag(itemID string) string { return "used:" + itemID }

// EvalRequirements reports whether every requirement in the list holds.
// Malformed entries fail closed.
func EvalRequirements(sv StateView, reqs []string) bool {
	for _, raw := range reqs {
		cond, err := ParseRequirement(raw)
		if err != nil {
			return false
		}
		if cond.Flag != "" {
			if id, ok := strings.CutPrefix(cond.Flag, "used:"); ok {
				if !sv.ItemUsed(id) {
					return false
				}
				continue
			}
		}
		if !cond.Eval(sv) {
			return false
		}
	}
	return true
}
