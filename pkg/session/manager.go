// Package session keeps the signed-in user of the CLI across invocations.
// The record is read once by Init and rewritten on every Begin and End.
// Concurrent processes share one file; the last writer wins.
package session

import (
	"errors"
	"sync"
	"time"
)

type Session struct {
	Token    string    `json:"token"`
	UserID   string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserType string    `json:"user_type"`
	SavedAt  time.Time `json:"saved_at"`
}

type Manager struct {
	mu      sync.RWMutex
	store   Store
	current *Session
	now     func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Init loads the persisted record. A missing record is not an error; an
// unreadable one is cleared so the next login starts fresh.
func (m *Manager) Init() error {
	s, err := m.store.Load()
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case err == nil:
		m.current = s
		return nil
	case errors.Is(err, ErrNoSession):
		m.current = nil
		return nil
	default:
		m.current = nil
		if clearErr := m.store.Clear(); clearErr != nil {
			return errors.Join(err, clearErr)
		}
		return err
	}
}

// Current returns a copy of the signed-in session, or nil.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil
	}
	cp := *m.current
	return &cp
}

func (m *Manager) Begin(s Session) error {
	s.SavedAt = m.now().UTC()
	if err := m.store.Save(&s); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
	return nil
}

func (m *Manager) End() error {
	if err := m.store.Clear(); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	return nil
}
