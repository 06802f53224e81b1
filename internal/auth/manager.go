// Package auth holds the client-side session state: who is logged in, and
// whether the initial session resolution is still in flight. It is the single
// source of truth consulted by the route guard and every view; no view writes
// session state directly.
package auth

import (
	"context"
	"sync"

	"github.com/CauceloJuanma/reserva/internal/api"
	apperrors "github.com/CauceloJuanma/reserva/internal/errors"
	"github.com/CauceloJuanma/reserva/internal/logging"
)

// SessionAPI is the slice of the backend client the manager needs.
type SessionAPI interface {
	ResolveSession(ctx context.Context) (*api.User, error)
	Logout(ctx context.Context) error
}

// State is an immutable snapshot of the session.
type State struct {
	// User is the authenticated identity, nil when logged out.
	User *api.User
	// Loading is true only while the initial resolution attempt is running.
	// It becomes false exactly once and never reverts.
	Loading bool
}

// Authenticated reports whether a user is logged in.
func (s State) Authenticated() bool {
	return s.User != nil
}

// Manager owns the session state. It is safe for concurrent use; all
// mutation goes through Initialize, Login and Logout.
type Manager struct {
	mu      sync.RWMutex
	api     SessionAPI
	log     *logging.Logger
	user    *api.User
	loading bool
	subs    []func(State)

	initOnce sync.Once
}

// NewManager creates a Manager in its pre-resolution state: no user, loading.
func NewManager(backend SessionAPI, log *logging.Logger) *Manager {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Manager{
		api:     backend,
		log:     log,
		loading: true,
	}
}

// Initialize resolves the current session from the backend. It runs the
// resolution at most once per process; later calls return the settled state
// without touching the backend.
//
// Resolution failure is an expected outcome (no cookie, expired session,
// backend down): the user simply stays logged out, and loading still settles
// to false. Nothing is reported as an error to the caller.
func (m *Manager) Initialize(ctx context.Context) State {
	m.initOnce.Do(func() {
		user, err := m.api.ResolveSession(ctx)

		m.mu.Lock()
		switch {
		case err != nil:
			if apperrors.IsUnauthenticated(err) {
				m.log.Debug("session resolution: not authenticated")
			} else {
				m.log.Warn("session resolution failed", "error", err)
			}
			m.user = nil
		case user == nil:
			// A nil user with no error still means logged out.
			m.log.Debug("session resolution: no user")
			m.user = nil
		default:
			m.log.Info("session resolved", "user_id", user.ID)
			m.user = user
		}
		m.loading = false
		m.mu.Unlock()

		m.notify()
	})
	return m.Snapshot()
}

// Login records an identity established by an external login call. It is a
// pure local mutation: the login view owns the transport call, keeping
// authentication transport decoupled from state storage.
func (m *Manager) Login(user *api.User) {
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.log.Info("logged in", "user_id", user.ID)
	m.notify()
}

// Logout invalidates the server-side session, then clears the local user
// unconditionally: a network failure must not keep the user logged in when
// their intent is to leave. The transport error is returned for logging only.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.api.Logout(ctx)
	if err != nil {
		m.log.Warn("server-side logout failed, clearing local session anyway", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	m.notify()
	return err
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{User: m.user, Loading: m.loading}
}

// Subscribe registers fn to be called with the new state after every
// mutation. Subscribers are invoked synchronously and must not call back
// into the Manager's mutation methods.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

func (m *Manager) notify() {
	state := m.Snapshot()

	m.mu.RLock()
	subs := make([]func(State), len(m.subs))
	copy(subs, m.subs)
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(state)
	}
}
