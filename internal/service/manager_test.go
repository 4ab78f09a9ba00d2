package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wordreader/internal/testutil"
)

func TestWorkspaceManager_CreateGetClose(t *testing.T) {
	deps, _, relay := newTestDeps(t)
	relay.On("SendAsync", mock.Anything).Return()
	m := NewWorkspaceManager(deps, testutil.NewTestLogger())

	ws := m.Create()
	require.NotEmpty(t, ws.ID())

	got, err := m.Get(ws.ID())
	require.NoError(t, err)
	assert.Same(t, ws, got)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	require.NoError(t, m.Close(ws.ID()))
	assert.ErrorIs(t, m.Close(ws.ID()), ErrWorkspaceNotFound)
	_, err = m.Get(ws.ID())
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)

	relay.AssertNumberOfCalls(t, "SendAsync", 1)
}

func TestWorkspaceManager_GetOrCreate(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	m := NewWorkspaceManager(deps, testutil.NewTestLogger())

	a := m.GetOrCreate("42")
	b := m.GetOrCreate("42")
	assert.Same(t, a, b)
	assert.Equal(t, "42", a.ID())
	assert.Equal(t, []string{"42"}, m.IDs())
}

func TestWorkspaceManager_CloseIdle(t *testing.T) {
	deps, _, relay := newTestDeps(t)
	relay.On("SendAsync", mock.Anything).Return()
	m := NewWorkspaceManager(deps, testutil.NewTestLogger())

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.GetOrCreate("old")
	now = now.Add(2 * time.Hour)
	m.GetOrCreate("fresh")

	assert.Equal(t, 1, m.CloseIdle(time.Hour))
	assert.Equal(t, []string{"fresh"}, m.IDs())

	m.CloseAll()
	assert.Empty(t, m.IDs())
}
