package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/board"

	log "github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Session is the period between login and logout. Its board lives only
// as long as the session does.
type Session struct {
	ID        string
	Username  string
	ExpiresAt time.Time
	Board     *board.Board
}

// Manager holds the live sessions of this process.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    TokenStore
	newID    board.IDGenerator
	now      func() time.Time
}

func NewManager(store TokenStore) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		store:    store,
		newID:    board.NewID,
		now:      time.Now,
	}
}

// Open starts a session for a freshly issued token with an empty board.
func (m *Manager) Open(ctx context.Context, token auth.Token) (*Session, error) {
	ttl := token.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil, ErrSessionExpired
	}
	if err := m.store.Put(ctx, token.SessionID, ttl); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}

	s := &Session{
		ID:        token.SessionID,
		Username:  token.Username,
		ExpiresAt: token.ExpiresAt,
		Board:     board.New(m.newID),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s, nil
}

// Get returns the live session with id. Sessions that were logged out,
// expired, or never opened in this process yield ErrSessionNotFound.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	live, err := m.store.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if !live || !m.now().Before(s.ExpiresAt) {
		m.forget(id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close ends the session and drops its board.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.forget(id)
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("unregister session: %w", err)
	}
	return nil
}

// Sweep drops every session whose token has expired, together with its
// board, and returns how many were dropped.
func (m *Manager) Sweep(ctx context.Context) int {
	now := m.now()

	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		if err := m.store.Delete(ctx, id); err != nil {
			log.WithError(err).WithField("session", id).Warn("⚠️  failed to unregister expired session")
		}
	}
	if sweeper, ok := m.store.(interface{ Sweep() int }); ok {
		sweeper.Sweep()
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(ctx); n > 0 {
				log.WithField("count", n).Debug("🧹 expired sessions dropped")
			}
		}
	}
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
