package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherwin-Cui/three-kindoms/internal/services"
	"github.com/Sherwin-Cui/three-kindoms/internal/storage"
	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

func newTestEngine(t *testing.T, llm *services.MockLLMService, roll float64) (*Engine, *state.GameState) {
	t.Helper()
	if llm == nil {
		llm = &services.MockLLMService{}
	}
	e := New(catalog.Default(), llm, storage.NewMemoryStorage(), state.FixedRoller(roll), nil)
	gs, err := e.NewSession(context.Background())
	require.NoError(t, err)
	return e, gs
}

// seedState stages a session's persisted state. Storage hands out copies, so
// tests go through it rather than mutating a loaded pointer.
func seedState(t *testing.T, e *Engine, id uuid.UUID, fn func(gs *state.GameState)) {
	t.Helper()
	snap, err := e.store.LoadSession(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, snap)
	fn(snap.State)
	require.NoError(t, e.store.SaveSession(context.Background(), id, snap))
}

func currentState(t *testing.T, e *Engine, id uuid.UUID) *state.GameState {
	t.Helper()
	gs, err := e.GetState(context.Background(), id)
	require.NoError(t, err)
	return gs
}

func TestNewSessionAndGetState(t *testing.T) {
	e, gs := newTestEngine(t, nil, 50)

	loaded, err := e.GetState(context.Background(), gs.ID)
	require.NoError(t, err)
	assert.Equal(t, gs.ID, loaded.ID)
	assert.Equal(t, 1, loaded.Chapter)

	_, err = e.GetState(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestProcessTurnAppliesReply(t *testing.T) {
	llm := &services.MockLLMService{Responses: []string{`{
		"narrative": "周瑜抚掌而笑，命人取军令状来。",
		"npc_dialogue": {"speaker": "周瑜", "content": "先生既应承，便请画押。"},
		"value_changes": {"zhouYu": {"suspicion": "+10"}},
		"event_suggestion": {"should_trigger": true, "event_id": "dialogue_event2", "reason": "玩家同意立状"}
	}`}}
	e, gs := newTestEngine(t, llm, 50)

	res, err := e.ProcessTurn(context.Background(), gs.ID, "亮愿立军令状。")
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	assert.Equal(t, "周瑜抚掌而笑，命人取军令状来。", res.Narrative)

	require.Len(t, res.Changes, 1)
	assert.Equal(t, state.ChangeRecord{Target: "zhouYu.suspicion", Old: 50, New: 60}, res.Changes[0])

	require.Len(t, res.Events, 1)
	assert.Equal(t, "dialogue_event2", res.Events[0].ID)

	// The authored trigger follows the event: signing grants the order.
	require.Len(t, res.Items, 1)
	assert.Equal(t, "militaryOrder", res.Items[0].ItemID)

	got := currentState(t, e, gs.ID)
	assert.True(t, got.Items["militaryOrder"])
	// player line, narration, npc line
	assert.GreaterOrEqual(t, len(got.Dialogue), 3)
}

func TestProcessTurnBlankInputAdvancesWithoutPlayerLine(t *testing.T) {
	llm := &services.MockLLMService{Responses: []string{`{
		"narrative": "帐外更鼓三响，众人静候先生开口。"
	}`}}
	e, gs := newTestEngine(t, llm, 50)

	res, err := e.ProcessTurn(context.Background(), gs.ID, "  ")
	require.NoError(t, err)
	assert.Equal(t, "帐外更鼓三响，众人静候先生开口。", res.Narrative)
	for _, d := range currentState(t, e, gs.ID).Dialogue {
		assert.NotEqual(t, "player", d.Type)
	}
}

func TestProcessTurnDropsInvalidSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		eventID string
	}{
		{"unknown event", "dialogue_event99"},
		{"out of chapter", "dialogue_event3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &services.MockLLMService{Responses: []string{`{
				"narrative": "夜色渐深。",
				"event_suggestion": {"should_trigger": true, "event_id": "` + tt.eventID + `", "reason": "?"}
			}`}}
			e, gs := newTestEngine(t, llm, 50)

			res, err := e.ProcessTurn(context.Background(), gs.ID, "继续")
			require.NoError(t, err)
			assert.Empty(t, res.Events)
			assert.Empty(t, currentState(t, e, gs.ID).TriggeredEvents)
		})
	}
}

func TestProcessTurnRefusesOutOfChapterGrant(t *testing.T) {
	llm := &services.MockLLMService{Responses: []string{`{
		"narrative": "鲁肃沉吟。",
		"item_grant": {"should_grant": true, "item_id": "windTalisman", "condition_met": "?"}
	}`}}
	e, gs := newTestEngine(t, llm, 50)

	res, err := e.ProcessTurn(context.Background(), gs.ID, "继续")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.False(t, currentState(t, e, gs.ID).Items["windTalisman"])
}

func TestProcessTurnDegradedOnTransportFailure(t *testing.T) {
	llm := &services.MockLLMService{Err: errors.New("connection refused")}
	e, gs := newTestEngine(t, llm, 50)

	res, err := e.ProcessTurn(context.Background(), gs.ID, "都督可还记得昨日之言？")
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.Equal(t, fallbackNarrative, res.Narrative)
	assert.Empty(t, res.Changes)
	assert.Equal(t, 50, currentState(t, e, gs.ID).Attributes["zhouYu"]["suspicion"])
}

func TestProcessTurnUnparseableReplyFallsBack(t *testing.T) {
	llm := &services.MockLLMService{Responses: []string{"I cannot respond in JSON right now."}}
	e, gs := newTestEngine(t, llm, 50)

	res, err := e.ProcessTurn(context.Background(), gs.ID, "继续")
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	assert.NotEmpty(t, res.Narrative)
	assert.Empty(t, res.Changes)
	assert.Empty(t, res.Events)
	assert.Equal(t, 50, currentState(t, e, gs.ID).Attributes["zhouYu"]["suspicion"])
}

func TestProcessTurnNarratorEndJudgmentBinds(t *testing.T) {
	llm := &services.MockLLMService{Responses: []string{`{
		"narrative": "周瑜拍案而起，厉声逐客。",
		"gameEndJudgment": {"isEnd": true, "endType": "Failure", "reason": "彻底激怒周瑜"}
	}`}}
	e, gs := newTestEngine(t, llm, 50)

	res, err := e.ProcessTurn(context.Background(), gs.ID, "都督不过嫉贤妒能之辈。")
	require.NoError(t, err)
	require.NotNil(t, res.ChapterEnd)
	assert.False(t, res.ChapterEnd.Success)
	assert.True(t, res.ChapterEnd.JudgedByAI)
	assert.Equal(t, "彻底激怒周瑜", res.ChapterEnd.Description)
	assert.True(t, currentState(t, e, gs.ID).IsEnded)

	_, err = e.ProcessTurn(context.Background(), gs.ID, "再说一句")
	assert.ErrorIs(t, err, ErrGameEnded)
}

func TestProcessTurnSessionNotFound(t *testing.T) {
	e, _ := newTestEngine(t, nil, 50)

	_, err := e.ProcessTurn(context.Background(), uuid.New(), "你好")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompleteCheckSuccessResolvesChapterOne(t *testing.T) {
	// eloquence 90 - difficulty 60 = 30% rate; a roll of 20 lands inside it.
	e, gs := newTestEngine(t, nil, 20)

	out, err := e.CompleteCheck(context.Background(), gs.ID, "check_event1", nil)
	require.NoError(t, err)
	assert.True(t, out.Result.Success)
	assert.False(t, out.Result.GreatSuccess)
	assert.Equal(t, 30, out.Result.SuccessRate)

	got := currentState(t, e, gs.ID)
	assert.True(t, got.Flags["check_event1_success"])
	assert.True(t, got.Flags["convinceLuSu"])
	assert.Equal(t, 70, got.Attributes["luSu"]["trust"])

	// The tally follows the success, which in turn resolves the chapter.
	require.Len(t, out.Items, 1)
	assert.Equal(t, "dongwuTiger", out.Items[0].ItemID)
	require.NotNil(t, out.ChapterEnd)
	assert.True(t, out.ChapterEnd.Success)
	assert.Equal(t, 2, out.ChapterEnd.NextChapter)
	assert.True(t, got.Flags["chapter1_complete"])
	assert.False(t, got.IsEnded)
}

func TestCompleteCheckFailure(t *testing.T) {
	e, gs := newTestEngine(t, nil, 95)

	out, err := e.CompleteCheck(context.Background(), gs.ID, "check_event1", nil)
	require.NoError(t, err)
	assert.False(t, out.Result.Success)
	got := currentState(t, e, gs.ID)
	assert.True(t, got.Flags["check_event1_failure"])
	assert.Equal(t, 40, got.Attributes["luSu"]["trust"])
	assert.Empty(t, out.Items)
	assert.Nil(t, out.ChapterEnd)

	_, err = e.CompleteCheck(context.Background(), gs.ID, "check_event1", nil)
	assert.ErrorIs(t, err, ErrBadRequest, "a resolved check cannot rerun")
}

func TestCompleteCheckGreatSuccess(t *testing.T) {
	e, gs := newTestEngine(t, nil, 90)
	seedState(t, e, gs.ID, func(gs *state.GameState) {
		gs.Chapter = 3
		gs.Tracks["dangerLevel"] = 0
		gs.Tracks["soldierMorale"] = 80
		gs.Tracks["shipLoss"] = 0
		// intelligence 95 plus sima 20, grassman 30 and warDrum 15 against
		// difficulty 60 caps the rate at 100, so the roll of 90 succeeds and
		// counts as a great success.
		gs.Items["sima"] = true
		gs.Items["grassman"] = true
		gs.Items["warDrum"] = true
	})

	out, err := e.CompleteCheck(context.Background(), gs.ID, "check_event4", []string{"sima", "grassman", "warDrum"})
	require.NoError(t, err)
	assert.True(t, out.Result.GreatSuccess)

	got := currentState(t, e, gs.ID)
	assert.True(t, got.Flags["check_event4_great_success"])
	assert.Equal(t, 120000, got.Tracks["arrows"])
	assert.Equal(t, 100, got.Tracks["soldierMorale"])
	assert.Equal(t, 10, got.Tracks["dangerLevel"])

	// windTalisman follows the great success; the perfect ending follows the
	// arrow tally.
	require.Len(t, out.Items, 1)
	assert.Equal(t, "windTalisman", out.Items[0].ItemID)
	require.NotNil(t, out.ChapterEnd)
	assert.Equal(t, "perfect", out.ChapterEnd.Ending)
	assert.True(t, got.IsEnded)
}

func TestCompleteCheckForcedFailEndsGame(t *testing.T) {
	e, gs := newTestEngine(t, nil, 99)
	seedState(t, e, gs.ID, func(gs *state.GameState) {
		gs.Chapter = 2
		gs.Tracks["preparationProgress"] = 0
	})

	out, err := e.CompleteCheck(context.Background(), gs.ID, "check_event2", nil)
	require.NoError(t, err)
	assert.False(t, out.Result.Success)
	require.NotNil(t, out.ChapterEnd)
	assert.False(t, out.ChapterEnd.Success)
	assert.True(t, currentState(t, e, gs.ID).IsEnded)
}

func TestCompleteCheckAutoSuccessItem(t *testing.T) {
	e, gs := newTestEngine(t, nil, 99)
	seedState(t, e, gs.ID, func(gs *state.GameState) {
		gs.Chapter = 2
		gs.Tracks["preparationProgress"] = 0
		gs.Items["confusionIncense"] = true
		gs.Flags["check_event3_failure"] = true
	})

	out, err := e.CompleteCheck(context.Background(), gs.ID, "emergency_event1", []string{"confusionIncense"})
	require.NoError(t, err)
	assert.True(t, out.Result.Success, "the incense short-circuits the night inspection")
	assert.Equal(t, 100, out.Result.SuccessRate)
	got := currentState(t, e, gs.ID)
	assert.False(t, got.Items["confusionIncense"], "consumed on use")
	assert.True(t, got.UsedItems["confusionIncense"])
	assert.False(t, got.IsEnded)
}

func TestCompleteCheckValidation(t *testing.T) {
	e, gs := newTestEngine(t, nil, 50)

	_, err := e.CompleteCheck(context.Background(), gs.ID, "dialogue_event2", nil)
	assert.ErrorIs(t, err, ErrBadRequest, "not a check event")

	_, err = e.CompleteCheck(context.Background(), gs.ID, "check_event4", nil)
	assert.ErrorIs(t, err, ErrBadRequest, "wrong chapter")

	_, err = e.CompleteCheck(context.Background(), gs.ID, "no_such_event", nil)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestResolveChoice(t *testing.T) {
	t.Run("accepting the challenge sets its flag", func(t *testing.T) {
		e, gs := newTestEngine(t, nil, 50)

		out, err := e.ResolveChoice(context.Background(), gs.ID, "choice_event1", "A")
		require.NoError(t, err)
		assert.Equal(t, "A", out.Option)
		got := currentState(t, e, gs.ID)
		assert.True(t, got.Flags["acceptChallenge"])
		assert.True(t, got.Flags["choice_event1_choice_A"])
		assert.Nil(t, out.ChapterEnd)
	})

	t.Run("refusing ends the game", func(t *testing.T) {
		e, gs := newTestEngine(t, nil, 50)

		out, err := e.ResolveChoice(context.Background(), gs.ID, "choice_event1", "B")
		require.NoError(t, err)
		require.NotNil(t, out.ChapterEnd)
		assert.False(t, out.ChapterEnd.Success)
		assert.True(t, currentState(t, e, gs.ID).IsEnded)
	})

	t.Run("requirements gate options", func(t *testing.T) {
		e, gs := newTestEngine(t, nil, 50)
		seedState(t, e, gs.ID, func(gs *state.GameState) {
			gs.Chapter = 3
			gs.Tracks["soldierMorale"] = 80
		})

		_, err := e.ResolveChoice(context.Background(), gs.ID, "choice_event3", "A")
		assert.ErrorIs(t, err, ErrBadRequest, "tally not shown yet")

		seedState(t, e, gs.ID, func(gs *state.GameState) {
			gs.UsedItems["dongwuTiger"] = true
		})
		out, err := e.ResolveChoice(context.Background(), gs.ID, "choice_event3", "A")
		require.NoError(t, err)
		assert.Empty(t, out.Changes, "the authorized pass costs nothing")
	})

	t.Run("forcing through costs ships and morale", func(t *testing.T) {
		e, gs := newTestEngine(t, nil, 50)
		seedState(t, e, gs.ID, func(gs *state.GameState) {
			gs.Chapter = 3
			gs.Tracks["soldierMorale"] = 80
			gs.Tracks["shipLoss"] = 0
		})

		_, err := e.ResolveChoice(context.Background(), gs.ID, "choice_event3", "B")
		require.NoError(t, err)
		got := currentState(t, e, gs.ID)
		assert.Equal(t, 2, got.Tracks["shipLoss"])
		assert.Equal(t, 65, got.Tracks["soldierMorale"])
	})

	t.Run("unknown option", func(t *testing.T) {
		e, gs := newTestEngine(t, nil, 50)

		_, err := e.ResolveChoice(context.Background(), gs.ID, "choice_event1", "C")
		assert.ErrorIs(t, err, ErrBadRequest)
	})
}

func TestUseItemHappyPath(t *testing.T) {
	llm := &services.MockLLMService{Responses: []string{`{
		"narrative": "鲁肃读罢书信，神色动容。",
		"npc_dialogue": {"speaker": "鲁肃", "content": "玄德公之托，肃岂敢辞。"}
	}`}}
	e, gs := newTestEngine(t, llm, 50)

	res, err := e.UseItem(context.Background(), gs.ID, "xuanDeBrush", "子敬请看此信。")
	require.NoError(t, err)
	assert.Equal(t, "鲁肃读罢书信，神色动容。", res.Narrative)
	got := currentState(t, e, gs.ID)
	assert.True(t, got.UsedItems["xuanDeBrush"])
	assert.Equal(t, 80, got.Attributes["luSu"]["trust"])

	// The narrator saw the item use in the final user message.
	last := llm.Calls[0][len(llm.Calls[0])-1]
	assert.Contains(t, last.Content, "玄德亲笔")
}

func TestUseItemRollsBackOnTransportFailure(t *testing.T) {
	llm := &services.MockLLMService{Err: errors.New("timeout")}
	e, gs := newTestEngine(t, llm, 50)

	_, err := e.UseItem(context.Background(), gs.ID, "xuanDeBrush", "")
	require.Error(t, err)

	loaded, err := e.GetState(context.Background(), gs.ID)
	require.NoError(t, err)
	assert.False(t, loaded.UsedItems["xuanDeBrush"], "the use rolled back")
	assert.True(t, loaded.Items["xuanDeBrush"])
	assert.Equal(t, 50, loaded.Attributes["luSu"]["trust"])
}

func TestUseItemValidation(t *testing.T) {
	e, gs := newTestEngine(t, nil, 50)

	_, err := e.UseItem(context.Background(), gs.ID, "noSuchItem", "")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = e.UseItem(context.Background(), gs.ID, "windTalisman", "")
	assert.ErrorIs(t, err, ErrBadRequest, "not owned")
}

func TestAdvanceChapter(t *testing.T) {
	e, gs := newTestEngine(t, nil, 50)

	_, err := e.AdvanceChapter(context.Background(), gs.ID)
	assert.ErrorIs(t, err, ErrBadRequest, "chapter not resolved yet")

	seedState(t, e, gs.ID, func(gs *state.GameState) {
		gs.Flags["chapter1_complete"] = true
	})
	advanced, err := e.AdvanceChapter(context.Background(), gs.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, advanced.Chapter)
	assert.Equal(t, 0, advanced.Tracks["preparationProgress"])
}

func TestSaveAndLoadSlot(t *testing.T) {
	e, gs := newTestEngine(t, nil, 50)
	require.NoError(t, e.SaveSlot(context.Background(), gs.ID, "manual1"))

	seedState(t, e, gs.ID, func(gs *state.GameState) {
		gs.Attributes["zhouYu"]["suspicion"] = 95
	})

	restored, err := e.LoadSlot(context.Background(), gs.ID, "manual1")
	require.NoError(t, err)
	assert.Equal(t, 50, restored.Attributes["zhouYu"]["suspicion"])
	assert.Equal(t, 50, currentState(t, e, gs.ID).Attributes["zhouYu"]["suspicion"])

	_, err = e.LoadSlot(context.Background(), gs.ID, "empty")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestResetRestartsPlaythrough(t *testing.T) {
	e, gs := newTestEngine(t, nil, 50)
	seedState(t, e, gs.ID, func(gs *state.GameState) {
		gs.Chapter = 3
		gs.IsEnded = true
		gs.Flags["chapter1_complete"] = true
		gs.Attributes["zhouYu"]["suspicion"] = 95
	})

	fresh, err := e.Reset(context.Background(), gs.ID)
	require.NoError(t, err)
	assert.Equal(t, gs.ID, fresh.ID)
	assert.Equal(t, 1, fresh.Chapter)
	assert.False(t, fresh.IsEnded)
	assert.Empty(t, fresh.Flags)
	assert.Empty(t, fresh.Dialogue)
	assert.Equal(t, 50, fresh.Attributes["zhouYu"]["suspicion"])
	assert.True(t, fresh.Items["kongMingFan"], "initial carry restored")
}

func TestSummarize(t *testing.T) {
	e, gs := newTestEngine(t, nil, 50)
	seedState(t, e, gs.ID, func(gs *state.GameState) {
		gs.TriggeredEvents = append(gs.TriggeredEvents, "choice_event1")
	})

	sum, err := e.Summarize(context.Background(), gs.ID)
	require.NoError(t, err)
	assert.Equal(t, gs.ID, sum.SessionID)
	assert.Equal(t, 1, sum.Chapter)
	assert.Equal(t, "三日之约", sum.ChapterName)
	assert.Equal(t, 1, sum.Day)
	assert.Equal(t, 50, sum.Attributes["zhouYu.suspicion"])
	assert.Contains(t, sum.Items, "kongMingFan")
	assert.Equal(t, []string{"choice_event1"}, sum.Triggered)
}
