// Package session owns the client's authentication state. The Manager is
// the single authorized mutation path: login, logout, profile edits and
// account deletion all route through Update, which writes through to the
// persistent store and notifies subscribers.
package session

import (
	"sync"

	"github.com/oyildirim/kimlik/internal/store"
	"github.com/oyildirim/kimlik/pkg/domain"
)

// authKey is the single persisted key holding the session.
const authKey = "auth"

// Manager holds the in-memory session. Reads happen from request-decorator
// goroutines while writes happen on the UI loop, hence the lock.
type Manager struct {
	store *store.Store

	mu      sync.RWMutex
	current domain.Session
	subs    map[int]func(domain.Session)
	nextSub int
}

// NewManager returns a manager backed by st. Call Initialize before use.
func NewManager(st *store.Store) *Manager {
	return &Manager{store: st, subs: make(map[int]func(domain.Session))}
}

// Initialize loads the persisted session. An absent key yields the
// logged-out default. A malformed stored value degrades instead of failing:
// the result is the logged-out default carrying the stored text in Raw.
func (m *Manager) Initialize() domain.Session {
	var s domain.Session
	raw, decoded, ok := m.store.GetItem(authKey, &s)
	switch {
	case !ok:
		s = domain.LoggedOut()
	case !decoded:
		s = domain.LoggedOut()
		s.Raw = raw
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s
}

// Update replaces the session, synchronously persists it, and notifies
// every subscriber. Each call is a full write, no debouncing.
func (m *Manager) Update(s domain.Session) error {
	m.mu.Lock()
	m.current = s
	subs := make([]func(domain.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	err := m.store.SetItem(authKey, s)
	for _, fn := range subs {
		fn(s)
	}
	return err
}

// Read returns the current session without I/O.
func (m *Manager) Read() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Subscribe registers fn to run after every Update. The returned cancel
// func removes the subscription.
func (m *Manager) Subscribe(fn func(domain.Session)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Authorization returns the header value to attach to outgoing requests.
// Empty whenever the session is logged out, so no request from an
// unauthenticated client ever carries a credential.
func (m *Manager) Authorization() string {
	s := m.Read()
	if !s.LoggedIn {
		return ""
	}
	return s.AuthHeader
}
