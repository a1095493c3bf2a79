package state

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Delta is the normalized form of a narrator value_changes block: canonical
// ids, integer deltas, boolean item and flag settings. Unknown or malformed
// entries are dropped during normalization, never failed on.
type Delta struct {
	Characters map[string]map[string]int
	Tracks     map[string]int
	Items      map[string]bool
	Flags      map[string]bool
}

// Narrators key entities and attributes inconsistently: sometimes by
// canonical id, sometimes by display name. Both spellings normalize to the
// canonical id; anything else passes through untouched.
var characterAliases = map[string]string{
	"周瑜":  "zhouYu",
	"鲁肃":  "luSu",
	"甘宁":  "ganNing",
	"诸葛亮": "zhugeLiang",
}

var attributeAliases = map[string]string{
	"猜忌值": "suspicion",
	"信任值": "trust",
	"机警值": "alertness",
	"智谋值": "intelligence",
	"口才值": "eloquence",
	"体力值": "stamina",
}

// trackAliases maps legacy and display spellings of track names.
var trackAliases = map[string]string{
	"arrowCount": "arrows",
	"箭支数量":       "arrows",
	"准备进度":       "preparationProgress",
	"危险等级":       "dangerLevel",
	"士兵士气":       "soldierMorale",
}

var signedToken = regexp.MustCompile(`^[+-]?\d+$`)

// ParseSignedToken parses a delta value from a narrator response. Strings
// must match the signed-token grammar ("+5", "-10", "15"); JSON numbers are
// truncated to int. Anything else contributes zero.
func ParseSignedToken(v any) int {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if !signedToken.MatchString(s) {
			return 0
		}
		n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
		if err != nil {
			return 0
		}
		return n
	case float64:
		return int(t)
	case int:
		return t
	}
	return 0
}

// trueish interprets the loose boolean forms narrators produce.
func trueish(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "获得"
	case float64:
		return t != 0
	}
	return false
}

// NormalizeChanges converts a raw value_changes block into a Delta. The top
// level keys are character ids or names, "global", "items", "events", or
// bare track names; one level of nesting below each.
func NormalizeChanges(raw map[string]any) Delta {
	d := Delta{
		Characters: make(map[string]map[string]int),
		Tracks:     make(map[string]int),
		Items:      make(map[string]bool),
		Flags:      make(map[string]bool),
	}
	for key, val := range raw {
		switch key {
		case "items":
			if m, ok := val.(map[string]any); ok {
				for id, v := range m {
					d.Items[id] = trueish(v)
				}
			}
		case "events":
			if m, ok := val.(map[string]any); ok {
				for id, v := range m {
					d.Flags[id] = trueish(v)
				}
			}
		case "global":
			if m, ok := val.(map[string]any); ok {
				for name, v := range m {
					d.Tracks[canonicalTrack(name)] += ParseSignedToken(v)
				}
			}
		default:
			if m, ok := val.(map[string]any); ok {
				id := canonicalCharacter(key)
				attrs := d.Characters[id]
				if attrs == nil {
					attrs = make(map[string]int)
					d.Characters[id] = attrs
				}
				for attr, v := range m {
					attrs[canonicalAttribute(attr)] += ParseSignedToken(v)
				}
				continue
			}
			// Bare scalar at the top level is a track delta
			// (preparationProgress, dangerLevel and friends).
			d.Tracks[canonicalTrack(key)] += ParseSignedToken(val)
		}
	}
	return d
}

// NormalizeSpecialProgress folds a special_progress block into track deltas.
func NormalizeSpecialProgress(raw map[string]any) map[string]int {
	out := make(map[string]int, len(raw))
	for name, v := range raw {
		out[canonicalTrack(name)] += ParseSignedToken(v)
	}
	return out
}

// Narrator keys are NFC-normalized before alias lookup; model output is not
// guaranteed to use composed forms.
func canonicalCharacter(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if id, ok := characterAliases[name]; ok {
		return id
	}
	return name
}

func canonicalAttribute(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if a, ok := attributeAliases[name]; ok {
		return a
	}
	return name
}

func canonicalTrack(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if t, ok := trackAliases[name]; ok {
		return t
	}
	return name
}
