package prompts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
	"github.com/Sherwin-Cui/three-kindoms/pkg/chat"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

func TestBuildRequiresGameState(t *testing.T) {
	_, err := New(catalog.Default()).WithPlayerInput("先生何意？").Build()
	assert.Error(t, err)
}

func TestBuildSystemPrompt(t *testing.T) {
	cat := catalog.Default()
	gs := state.NewGameState(cat)

	msgs, err := New(cat).
		WithGameState(gs).
		WithPlayerInput("都督要多少箭？").
		Build()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(msgs), 2)

	sys := msgs[0]
	assert.Equal(t, chat.RoleSystem, sys.Role)
	assert.Contains(t, sys.Content, "本章可触发的事件")
	assert.Contains(t, sys.Content, "choice_event1")
	assert.Contains(t, sys.Content, "本章可获得的道具")
	assert.Contains(t, sys.Content, "militaryOrder")
	assert.Contains(t, sys.Content, "周瑜")
	assert.Contains(t, sys.Content, "当前游戏状态")
	assert.Contains(t, sys.Content, "suspicion=50")
	assert.NotContains(t, sys.Content, "dialogue_event3", "other chapters' events stay out")

	last := msgs[len(msgs)-1]
	assert.Equal(t, chat.RoleUser, last.Role)
	assert.Contains(t, last.Content, "玩家行动：都督要多少箭？")
}

func TestBuildBlankInputAsksForContinuation(t *testing.T) {
	cat := catalog.Default()
	gs := state.NewGameState(cat)

	msgs, err := New(cat).WithGameState(gs).WithPlayerInput("  ").Build()
	require.NoError(t, err)

	last := msgs[len(msgs)-1]
	assert.Equal(t, chat.RoleUser, last.Role)
	assert.Contains(t, last.Content, "继续推进剧情")
	assert.NotContains(t, last.Content, "玩家行动")
}

func TestBuildMarksTriggeredEvents(t *testing.T) {
	cat := catalog.Default()
	gs := state.NewGameState(cat)
	gs.EventTimes["choice_event1"] = time.Now()

	msgs, err := New(cat).WithGameState(gs).WithPlayerInput("继续").Build()
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Content, "choice_event1：")
	assert.Contains(t, msgs[0].Content, "已触发")
}

func TestBuildUsedItemPrefix(t *testing.T) {
	cat := catalog.Default()
	gs := state.NewGameState(cat)

	msgs, err := New(cat).
		WithGameState(gs).
		WithUsedItem("xuanDeBrush").
		WithPlayerInput("子敬请看此信。").
		Build()
	require.NoError(t, err)

	last := msgs[len(msgs)-1]
	assert.Contains(t, last.Content, "玩家使用了道具：玄德亲笔")
	assert.Contains(t, last.Content, "玩家行动：子敬请看此信。")
}

func TestBuildHistoryRolesAndLimit(t *testing.T) {
	cat := catalog.Default()
	gs := state.NewGameState(cat)
	for i := 0; i < 4; i++ {
		gs.Dialogue = append(gs.Dialogue,
			state.DialogueEntry{Speaker: "诸葛亮", Content: "亮自有妙计。", Type: "player"},
			state.DialogueEntry{Speaker: "鲁肃", Content: "先生但说无妨。", Type: "npc"},
		)
	}

	msgs, err := New(cat).
		WithGameState(gs).
		WithHistoryLimit(3).
		WithPlayerInput("明日再议。").
		Build()
	require.NoError(t, err)

	// system + 3 history + current user message
	require.Len(t, msgs, 5)
	history := msgs[1:4]
	assert.Equal(t, chat.RoleAssistant, history[0].Role)
	assert.Contains(t, history[0].Content, "鲁肃：", "NPC lines carry the speaker")
	assert.Equal(t, chat.RoleUser, history[1].Role)
	assert.Equal(t, "亮自有妙计。", history[1].Content, "player lines stay bare")
}

func TestBuildChapterThreeShowsArrows(t *testing.T) {
	cat := catalog.Default()
	gs := state.NewGameState(cat)
	gs.Tracks["arrows"] = 60000

	msgs, err := New(cat).WithGameState(gs).WithPlayerInput("出发").Build()
	require.NoError(t, err)
	assert.NotContains(t, msgs[0].Content, "arrows=", "arrow tally hidden before chapter 3")

	st := state.NewStore(cat, gs, nil, nil)
	require.NoError(t, st.SwitchToChapter(3))

	msgs, err = New(cat).WithGameState(gs).WithPlayerInput("出发").Build()
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Content, "arrows=60000")
	assert.Contains(t, msgs[0].Content, "dangerLevel=0")
}
