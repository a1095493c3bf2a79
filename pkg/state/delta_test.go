package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSignedToken(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"plus prefix", "+15", 15},
		{"minus prefix", "-10", -10},
		{"bare digits", "20", 20},
		{"padded", " +5 ", 5},
		{"json number", float64(12), 12},
		{"negative json number", float64(-3), -3},
		{"go int", 7, 7},
		{"double sign", "++5", 0},
		{"trailing garbage", "+5 arrows", 0},
		{"words", "many", 0},
		{"empty", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSignedToken(tt.in))
		})
	}
}

func TestNormalizeChanges(t *testing.T) {
	raw := map[string]any{
		"zhouYu": map[string]any{"suspicion": "+10"},
		"鲁肃":     map[string]any{"信任值": "+20"},
		"global": map[string]any{"timeProgress": "+1", "箭支数量": float64(5000)},
		"items":  map[string]any{"militaryOrder": true, "grassman": "获得", "warDrum": false},
		"events": map[string]any{"convinceLuSu": true},
		// Bare scalar keyed by a track name, as narrators sometimes emit.
		"preparationProgress": "+20",
	}

	d := NormalizeChanges(raw)

	assert.Equal(t, 10, d.Characters["zhouYu"]["suspicion"])
	assert.Equal(t, 20, d.Characters["luSu"]["trust"])
	assert.Equal(t, 1, d.Tracks["timeProgress"])
	assert.Equal(t, 5000, d.Tracks["arrows"])
	assert.Equal(t, 20, d.Tracks["preparationProgress"])
	assert.True(t, d.Items["militaryOrder"])
	assert.True(t, d.Items["grassman"])
	assert.False(t, d.Items["warDrum"])
	assert.True(t, d.Flags["convinceLuSu"])
}

func TestNormalizeChangesMalformedValues(t *testing.T) {
	raw := map[string]any{
		"zhouYu": map[string]any{"suspicion": "a lot"},
		"global": map[string]any{"arrowCount": "+5 arrows"},
	}

	d := NormalizeChanges(raw)

	assert.Equal(t, 0, d.Characters["zhouYu"]["suspicion"])
	assert.Equal(t, 0, d.Tracks["arrows"])
}

func TestNormalizeSpecialProgress(t *testing.T) {
	out := NormalizeSpecialProgress(map[string]any{
		"准备进度":        "+30",
		"dangerLevel": float64(15),
	})
	assert.Equal(t, 30, out["preparationProgress"])
	assert.Equal(t, 15, out["dangerLevel"])
}
