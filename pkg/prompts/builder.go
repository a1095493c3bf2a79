// Package prompts compiles game state into the message array sent to the
// narrator model. Building is pure: no state is mutated and the same inputs
// produce the same prompt.
package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
	"github.com/Sherwin-Cui/three-kindoms/pkg/chat"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

// Builder assembles a narrator prompt using a fluent interface.
type Builder struct {
	cat          *catalog.Catalog
	gs           *state.GameState
	playerInput  string
	usedItem     string
	historyLimit int
}

// New creates a builder with default settings.
func New(cat *catalog.Catalog) *Builder {
	return &Builder{cat: cat, historyLimit: 15}
}

// WithGameState sets the state snapshot the prompt describes.
func (b *Builder) WithGameState(gs *state.GameState) *Builder {
	b.gs = gs
	return b
}

// WithPlayerInput sets the player's utterance for this turn.
func (b *Builder) WithPlayerInput(input string) *Builder {
	b.playerInput = input
	return b
}

// WithUsedItem marks an item as used this turn, so the narrator weaves its
// effect into the reply.
func (b *Builder) WithUsedItem(itemID string) *Builder {
	b.usedItem = itemID
	return b
}

// WithHistoryLimit caps how many dialogue entries are replayed.
func (b *Builder) WithHistoryLimit(n int) *Builder {
	b.historyLimit = n
	return b
}

// Build constructs the message array for the narrator call.
func (b *Builder) Build() ([]chat.Message, error) {
	if b.gs == nil {
		return nil, fmt.Errorf("game state is required")
	}
	ch := b.cat.Chapter(b.gs.Chapter)
	if ch == nil {
		return nil, fmt.Errorf("unknown chapter %d", b.gs.Chapter)
	}

	var sys strings.Builder
	sys.WriteString(narratorRole)
	sys.WriteString("\n\n## 本章剧情\n")
	sys.WriteString(ch.PlotSummary)
	b.writeChapterVocabulary(&sys, ch)
	b.writeCharacters(&sys)
	b.writeReactionRules(&sys)
	b.writeGameState(&sys, ch)
	b.writeProgressRules(&sys)
	sys.WriteString("\n\n")
	sys.WriteString(outputRequirements)

	messages := []chat.Message{{Role: chat.RoleSystem, Content: sys.String()}}
	messages = append(messages, b.historyMessages()...)

	var user strings.Builder
	if b.usedItem != "" {
		if item := b.cat.Item(b.usedItem); item != nil {
			fmt.Fprintf(&user, "【玩家使用了道具：%s】%s\n", item.Name, item.Effect.Description)
		}
	}
	if strings.TrimSpace(b.playerInput) == "" {
		user.WriteString("（玩家沉默不语，请继续推进剧情）")
	} else {
		user.WriteString("玩家行动：")
		user.WriteString(b.playerInput)
	}
	messages = append(messages, chat.Message{Role: chat.RoleUser, Content: user.String()})
	return messages, nil
}

// writeChapterVocabulary lists exactly the events and items the narrator may
// reference this chapter.
func (b *Builder) writeChapterVocabulary(w *strings.Builder, ch *catalog.Chapter) {
	w.WriteString("\n\n## 本章可触发的事件\n")
	for _, id := range ch.EventIDs {
		ev := b.cat.Event(id)
		if ev == nil {
			continue
		}
		status := ""
		if _, triggered := b.gs.EventTimes[id]; triggered {
			status = "（已触发）"
		}
		fmt.Fprintf(w, "- %s：%s%s\n", id, ev.Title, status)
	}
	w.WriteString("\n## 本章可获得的道具\n")
	for _, id := range ch.ItemIDs {
		item := b.cat.Item(id)
		if item == nil {
			continue
		}
		fmt.Fprintf(w, "- %s：%s\n", id, item.Name)
	}
}

func (b *Builder) writeCharacters(w *strings.Builder) {
	w.WriteString("\n## 出场人物\n")
	player := b.cat.Player()
	fmt.Fprintf(w, "- %s（玩家）：%s\n", player.Name, player.Description)
	for _, id := range b.gs.ActiveNPCs {
		npc, ok := b.cat.Characters[id]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "- %s：%s\n", npc.Name, npc.Description)
	}
}

func (b *Builder) writeReactionRules(w *strings.Builder) {
	w.WriteString("\n## 人物数值变化规则\n")
	for _, id := range b.gs.ActiveNPCs {
		rule, ok := reactionRules[id]
		if !ok {
			continue
		}
		if id == "luSu" && b.gs.Chapter == 2 {
			rule = luSuChapter2Rule
		}
		npc := b.cat.Characters[id]
		fmt.Fprintf(w, "%s：%s\n", npc.Name, rule)
	}
}

func (b *Builder) writeGameState(w *strings.Builder, ch *catalog.Chapter) {
	w.WriteString("\n## 当前游戏状态\n")
	fmt.Fprintf(w, "第%d章《%s》，第%d日/共3日\n", ch.ID, ch.Title, b.gs.Tracks["timeProgress"])
	for _, id := range b.gs.ActiveNPCs {
		attrs := b.gs.Attributes[id]
		npc, ok := b.cat.Characters[id]
		if !ok || len(attrs) == 0 {
			continue
		}
		names := make([]string, 0, len(attrs))
		for k := range attrs {
			names = append(names, k)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, k := range names {
			parts = append(parts, fmt.Sprintf("%s=%d", k, attrs[k]))
		}
		fmt.Fprintf(w, "%s：%s\n", npc.Name, strings.Join(parts, "，"))
	}
	tracks := make([]string, 0, len(ch.State)+1)
	for name := range ch.State {
		tracks = append(tracks, name)
	}
	sort.Strings(tracks)
	if b.gs.Chapter == 3 {
		tracks = append(tracks, "arrows")
	}
	for _, name := range tracks {
		fmt.Fprintf(w, "%s=%d\n", name, b.gs.Tracks[name])
	}
	if len(b.gs.Items) > 0 {
		names := make([]string, 0, len(b.gs.Items))
		for id := range b.gs.Items {
			if item := b.cat.Item(id); item != nil {
				names = append(names, item.Name)
			}
		}
		sort.Strings(names)
		fmt.Fprintf(w, "持有道具：%s\n", strings.Join(names, "、"))
	}
}

func (b *Builder) writeProgressRules(w *strings.Builder) {
	rules, ok := progressRules[b.gs.Chapter]
	if !ok {
		return
	}
	w.WriteString("\n## 特殊数值规则\n")
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s：%s\n", name, rules[name])
	}
}

func (b *Builder) historyMessages() []chat.Message {
	history := b.gs.Dialogue
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}
	player := b.cat.Player()
	msgs := make([]chat.Message, 0, len(history))
	for _, entry := range history {
		role := chat.RoleAssistant
		content := entry.Content
		if entry.Type == "player" || entry.Speaker == player.Name {
			role = chat.RoleUser
		} else if entry.Speaker != "" && entry.Type != "narration" {
			content = entry.Speaker + "：" + entry.Content
		}
		msgs = append(msgs, chat.Message{Role: role, Content: content})
	}
	return msgs
}
