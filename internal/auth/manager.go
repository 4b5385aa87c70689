package auth

import (
	"context"
	"sync"
)

// Manager wraps a Provider and owns the client's view of the current
// session. It holds exactly one provider subscription for its lifetime;
// Close releases it. Managers are injected, never global.
type Manager struct {
	provider Provider

	mu          sync.RWMutex
	current     *Session
	listeners   map[int]func(*Session)
	nextID      int
	unsubscribe func()
	closed      bool
}

// NewManager creates a Manager subscribed to the provider. The provider's
// initial synchronous delivery seeds the current session.
func NewManager(provider Provider) *Manager {
	m := &Manager{
		provider:  provider,
		listeners: make(map[int]func(*Session)),
	}
	m.unsubscribe = provider.Subscribe(m.onChange)
	return m
}

func (m *Manager) onChange(s *Session) {
	m.mu.Lock()
	m.current = s
	fns := make([]func(*Session), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Current returns the session as last reported by the provider, or nil.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// OnSessionChange registers a listener and returns an unsubscribe function.
// The listener is called synchronously with the current state before
// OnSessionChange returns, then on every subsequent change.
func (m *Manager) OnSessionChange(fn func(*Session)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	current := m.current
	m.mu.Unlock()

	fn(current)

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// FreshToken obtains a bearer token from the provider at call time. Tokens
// are never cached here: each call reflects the session state at that
// instant. Fails with ErrUnauthenticated when no session exists.
func (m *Manager) FreshToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	current := m.current
	m.mu.RUnlock()
	if current == nil {
		return "", ErrUnauthenticated
	}
	return m.provider.AccessToken(ctx)
}

// SignUp registers and signs in through the provider.
func (m *Manager) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return m.provider.SignUp(ctx, email, password)
}

// SignIn authenticates through the provider.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return m.provider.SignIn(ctx, email, password)
}

// SignOut clears the session through the provider.
func (m *Manager) SignOut(ctx context.Context) error {
	return m.provider.SignOut(ctx)
}

// Close releases the provider subscription. The Manager must not be used
// afterward.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	unsub := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
