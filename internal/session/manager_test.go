package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(clock *fakeClock) *Manager {
	m := NewManager(NewMemoryTokenStoreWithClock(clock.Now))
	m.now = clock.Now
	return m
}

func testToken(clock *fakeClock, id string, ttl time.Duration) auth.Token {
	return auth.Token{Value: "signed", SessionID: id, Username: "test123", ExpiresAt: clock.now.Add(ttl)}
}

func TestManager_OpenGetClose(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)
	ctx := context.Background()

	opened, err := m.Open(ctx, testToken(clock, "s1", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "test123", opened.Username)
	assert.Equal(t, 0, opened.Board.Snapshot().Len())

	got, err := m.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Same(t, opened, got)

	require.NoError(t, m.Close(ctx, "s1"))
	_, err = m.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManager_SessionsHaveIndependentBoards(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)
	ctx := context.Background()

	first, err := m.Open(ctx, testToken(clock, "s1", time.Hour))
	require.NoError(t, err)
	second, err := m.Open(ctx, testToken(clock, "s2", time.Hour))
	require.NoError(t, err)

	_, err = first.Board.CreateTask(board.TaskInput{Name: "a", DueDate: "2024-06-01"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Board.Snapshot().Len())
	assert.Equal(t, 0, second.Board.Snapshot().Len())
}

func TestManager_ExpiredSessionIsDropped(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)
	ctx := context.Background()

	_, err := m.Open(ctx, testToken(clock, "s1", time.Hour))
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = m.Get(ctx, "s1")

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManager_OpenRejectsExpiredToken(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)

	_, err := m.Open(context.Background(), testToken(clock, "s1", -time.Minute))

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 0, m.Len())
}

func TestManager_UnknownSession(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)

	_, err := m.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_RevokedInStore(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryTokenStoreWithClock(clock.Now)
	m := NewManager(store)
	m.now = clock.Now
	ctx := context.Background()

	_, err := m.Open(ctx, testToken(clock, "s1", time.Hour))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err = m.Get(ctx, "s1")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_SweepDropsExpiredWithoutLookups(t *testing.T) {
	// Arrange
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryTokenStoreWithClock(clock.Now)
	m := NewManager(store)
	m.now = clock.Now
	ctx := context.Background()

	for i := range 1000 {
		_, err := m.Open(ctx, testToken(clock, fmt.Sprintf("s%d", i), time.Hour))
		require.NoError(t, err)
	}
	_, err := m.Open(ctx, testToken(clock, "long", 72*time.Hour))
	require.NoError(t, err)

	// Act
	clock.Advance(48 * time.Hour)
	dropped := m.Sweep(ctx)

	// Assert
	assert.Equal(t, 1000, dropped)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1, store.Len())

	_, err = m.Get(ctx, "long")
	assert.NoError(t, err)
}

func TestManager_SweepKeepsLiveSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)
	ctx := context.Background()

	_, err := m.Open(ctx, testToken(clock, "s1", time.Hour))
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)

	assert.Equal(t, 0, m.Sweep(ctx))
	assert.Equal(t, 1, m.Len())
}

func TestManager_RunSweepsInBackground(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(clock)
	_, err := m.Open(context.Background(), testToken(clock, "s1", time.Hour))
	require.NoError(t, err)
	clock.Advance(2 * time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
