package session

import (
	"context"
	"sync"

	"github.com/Aknes122/securitycash/internal/localstore"
	"github.com/Aknes122/securitycash/internal/logger"
	"github.com/Aknes122/securitycash/internal/remote"
)

// Manager keeps at most one live session per identity. Opening a
// session for an identity replaces (and closes) any previous one, so a
// login/logout switch always starts from a fresh aggregate.
type Manager struct {
	local *localstore.Store
	store *remote.Store // nil disables the remote path entirely

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager. Pass a nil remote store to run
// local-only.
func NewManager(local *localstore.Store, store *remote.Store) *Manager {
	return &Manager{
		local:    local,
		store:    store,
		sessions: make(map[string]*Session),
	}
}

// Open constructs a fresh session for an identity, performing the
// initial load (and migration, when applicable) before returning. Any
// previous session for the identity is closed first.
func (m *Manager) Open(ctx context.Context, userID string) (*Session, error) {
	m.mu.Lock()
	if prev, ok := m.sessions[userID]; ok {
		prev.close()
	}
	s := newSession(m.local, m.store, userID)
	m.sessions[userID] = s
	m.mu.Unlock()

	if err := s.start(ctx); err != nil {
		// The session stays usable with whatever state the load left;
		// the error is surfaced for logging by the caller.
		logger.Get().Warnw("session started degraded", "user_id", userID, "error", err)
	}
	return s, nil
}

// Get returns the live session for an identity, opening one if needed
// or if the previous one was closed (e.g. after DeleteAccount).
func (m *Manager) Get(ctx context.Context, userID string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	m.mu.Unlock()
	if ok && s.Ready() {
		return s, nil
	}
	return m.Open(ctx, userID)
}

// Close closes and drops the session for an identity.
func (m *Manager) Close(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		s.close()
		delete(m.sessions, userID)
	}
}
