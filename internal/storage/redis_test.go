package storage

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

func newRedisTestStorage(t *testing.T) *RedisStorage {
	t.Helper()
	mr := miniredis.RunT(t)
	rs, err := NewRedisStorage("redis://"+mr.Addr(), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { rs.Close() })
	return rs
}

func TestNewRedisStorageBadURL(t *testing.T) {
	_, err := NewRedisStorage("not a url", slog.Default())
	assert.Error(t, err)
}

func TestRedisSessionRoundTrip(t *testing.T) {
	rs := newRedisTestStorage(t)
	ctx := context.Background()

	gs := state.NewGameState(catalog.Default())
	gs.Attributes["zhouYu"]["suspicion"] = 65
	gs.Items["militaryOrder"] = true
	snap := &state.Snapshot{State: gs, Timestamp: gs.UpdatedAt}

	require.NoError(t, rs.SaveSession(ctx, gs.ID, snap))

	loaded, err := rs.LoadSession(ctx, gs.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, gs.ID, loaded.State.ID)
	assert.Equal(t, 65, loaded.State.Attributes["zhouYu"]["suspicion"])
	assert.True(t, loaded.State.Items["militaryOrder"])
	assert.Equal(t, 1, loaded.State.Chapter)
}

func TestRedisLoadMissingSession(t *testing.T) {
	rs := newRedisTestStorage(t)

	snap, err := rs.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err, "a miss is not an error")
	assert.Nil(t, snap)
}

func TestRedisDeleteSession(t *testing.T) {
	rs := newRedisTestStorage(t)
	ctx := context.Background()

	gs := state.NewGameState(catalog.Default())
	require.NoError(t, rs.SaveSession(ctx, gs.ID, &state.Snapshot{State: gs}))
	require.NoError(t, rs.DeleteSession(ctx, gs.ID))

	snap, err := rs.LoadSession(ctx, gs.ID)
	require.NoError(t, err)
	assert.Nil(t, snap)

	assert.NoError(t, rs.DeleteSession(ctx, gs.ID), "deleting a missing session is fine")
}

func TestRedisSlotsAreIndependent(t *testing.T) {
	rs := newRedisTestStorage(t)
	ctx := context.Background()

	gs := state.NewGameState(catalog.Default())
	require.NoError(t, rs.SaveSession(ctx, gs.ID, &state.Snapshot{State: gs}))

	slotState := state.NewGameState(catalog.Default())
	slotState.ID = gs.ID
	slotState.Attributes["luSu"]["trust"] = 90
	require.NoError(t, rs.SaveSlot(ctx, gs.ID, "manual1", &state.Snapshot{State: slotState}))

	loaded, err := rs.LoadSlot(ctx, gs.ID, "manual1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 90, loaded.State.Attributes["luSu"]["trust"])

	missing, err := rs.LoadSlot(ctx, gs.ID, "manual2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Session state is untouched by slot writes.
	sess, err := rs.LoadSession(ctx, gs.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, sess.State.Attributes["luSu"]["trust"])
}

func TestRedisPing(t *testing.T) {
	mr := miniredis.RunT(t)
	rs, err := NewRedisStorage("redis://"+mr.Addr(), slog.Default())
	require.NoError(t, err)
	defer rs.Close()

	assert.NoError(t, rs.Ping(context.Background()))

	mr.Close()
	assert.Error(t, rs.Ping(context.Background()))
}
