// Package session owns the client's single authentication session.
//
// The Manager is a small state machine:
//
//	Initializing -> Authenticated | Unauthenticated
//	Authenticated <-> Unauthenticated
//
// Boot restores a persisted credential optimistically and then validates
// it against the backend in the background. Every transition that
// invalidates earlier work (login, signup, logout, forced logout) bumps a
// generation counter, and a validation result is applied only while the
// generation it started under is still current.
//
// Observers registered with Subscribe see every transition exactly once,
// in the order the transitions happened. Delivery runs outside the state
// lock, so observers may call Session or even trigger further transitions;
// those are queued behind the notification in progress.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/hirepad/internal/client/api"
	"github.com/dmitrijs2005/hirepad/internal/client/credentials"
	"github.com/dmitrijs2005/hirepad/internal/client/models"
	"github.com/dmitrijs2005/hirepad/internal/logging"
)

// Gateway is the part of the backend the Manager talks to.
type Gateway interface {
	Login(ctx context.Context, email, password string) (models.AuthResponse, error)
	Signup(ctx context.Context, reg models.Registration) (models.AuthResponse, error)
	Me(ctx context.Context) (models.User, error)
}

type subscriber struct {
	id int
	fn func(models.Session)
}

type Manager struct {
	store   credentials.Store
	gateway Gateway
	logger  logging.Logger

	mu         sync.Mutex
	session    models.Session
	token      string
	generation uint64
	booted     bool

	subs      []subscriber
	nextSubID int
	pending   []models.Session
	draining  bool

	wg sync.WaitGroup
}

func NewManager(store credentials.Store, gateway Gateway, logger logging.Logger) *Manager {
	return &Manager{
		store:   store,
		gateway: gateway,
		logger:  logger,
		session: models.Session{Status: models.StatusInitializing},
	}
}

// Session returns a snapshot of the current state.
func (m *Manager) Session() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// AccessToken returns the current bearer token, or "" when signed out.
// It is meant to be installed as the gateway's token source.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Subscribe registers fn for every future transition. The returned
// function unregisters it and may be called more than once.
func (m *Manager) Subscribe(fn func(models.Session)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Boot restores the persisted session. Only the first call has an effect,
// and none at all if a login or logout already moved the session out of
// Initializing.
func (m *Manager) Boot(ctx context.Context) {
	m.mu.Lock()
	if m.booted {
		m.mu.Unlock()
		return
	}
	m.booted = true
	gen := m.generation
	m.mu.Unlock()

	cred, ok := m.store.Load(ctx)

	m.mu.Lock()
	if m.generation != gen || m.session.Status != models.StatusInitializing {
		m.mu.Unlock()
		return
	}

	if !ok {
		m.setLocked(models.Session{Status: models.StatusUnauthenticated})
		m.mu.Unlock()
		m.flush()
		return
	}

	user := cred.User
	m.token = cred.Token
	m.setLocked(models.Session{Status: models.StatusAuthenticated, User: &user})
	m.wg.Add(1)
	m.mu.Unlock()
	m.flush()

	m.logger.Info(ctx, "session restored", "email", user.Email, "role", user.Role)

	go m.validate(ctx, gen, cred.Token)
}

// validate confirms a restored credential with the backend.
func (m *Manager) validate(ctx context.Context, gen uint64, token string) {
	defer m.wg.Done()

	user, err := m.gateway.Me(ctx)

	m.mu.Lock()
	if m.generation != gen {
		m.mu.Unlock()
		m.logger.Debug(ctx, "discarding stale session validation")
		return
	}

	switch {
	case err == nil:
		if *m.session.User != user {
			if serr := m.store.Save(ctx, models.Credential{Token: token, User: user}); serr != nil {
				m.logger.Error(ctx, "failed to persist refreshed user", "error", serr)
			}
			u := user
			m.setLocked(models.Session{Status: models.StatusAuthenticated, User: &u})
		}
		m.mu.Unlock()

	case errors.Is(err, api.ErrUnauthorized):
		m.logger.Info(ctx, "stored session rejected by server")
		m.logoutLocked(ctx, true)
		m.mu.Unlock()

	default:
		m.mu.Unlock()
		m.logger.Warn(ctx, "could not validate stored session, keeping it", "error", err)
	}

	m.flush()
}

// Login authenticates with the backend and starts a new session. On
// failure the current session is left untouched and an *AuthError is
// returned.
func (m *Manager) Login(ctx context.Context, email, password string) (models.User, error) {
	resp, err := m.gateway.Login(ctx, email, password)
	if err != nil {
		return models.User{}, newAuthError(err)
	}
	return m.establish(ctx, resp), nil
}

// Signup registers a new account and signs it in.
func (m *Manager) Signup(ctx context.Context, reg models.Registration) (models.User, error) {
	resp, err := m.gateway.Signup(ctx, reg)
	if err != nil {
		return models.User{}, newAuthError(err)
	}
	return m.establish(ctx, resp), nil
}

func (m *Manager) establish(ctx context.Context, resp models.AuthResponse) models.User {
	user := resp.User

	m.mu.Lock()
	m.generation++
	m.booted = true
	m.token = resp.AccessToken
	if err := m.store.Save(ctx, models.Credential{Token: resp.AccessToken, User: user}); err != nil {
		m.logger.Error(ctx, "failed to persist credential", "error", err)
	}
	u := user
	m.setLocked(models.Session{Status: models.StatusAuthenticated, User: &u})
	m.mu.Unlock()
	m.flush()

	m.logger.Info(ctx, "signed in", "email", user.Email, "role", user.Role)
	return user
}

// Logout ends the session locally. It never calls the backend and is safe
// to call in any state.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.booted = true
	m.logoutLocked(ctx, false)
	m.mu.Unlock()
	m.flush()
}

// HandleUnauthorized is the gateway's 401 listener. The session is dropped
// only if the rejected token is still the one in use, so a late 401 for a
// token that was already replaced does nothing.
func (m *Manager) HandleUnauthorized(token string) {
	ctx := context.Background()

	m.mu.Lock()
	if token == "" || token != m.token || m.session.Status != models.StatusAuthenticated {
		m.mu.Unlock()
		return
	}
	m.logoutLocked(ctx, true)
	m.mu.Unlock()

	m.logger.Info(ctx, "session expired, signed out")
	m.flush()
}

// UpdateUser replaces the cached user after a server round trip. It does
// nothing unless a session is active.
func (m *Manager) UpdateUser(ctx context.Context, user models.User) {
	m.mu.Lock()
	if m.session.Status != models.StatusAuthenticated {
		m.mu.Unlock()
		return
	}
	if err := m.store.Save(ctx, models.Credential{Token: m.token, User: user}); err != nil {
		m.logger.Error(ctx, "failed to persist updated user", "error", err)
	}
	u := user
	m.setLocked(models.Session{Status: models.StatusAuthenticated, User: &u})
	m.mu.Unlock()
	m.flush()
}

// Wait blocks until any background validation started by Boot is done.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// logoutLocked drops the session. expired marks a logout the backend
// forced, so observers can tell it from one the user asked for.
func (m *Manager) logoutLocked(ctx context.Context, expired bool) {
	m.generation++
	m.token = ""
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error(ctx, "failed to clear stored credential", "error", err)
	}
	if m.session.Status != models.StatusUnauthenticated {
		m.setLocked(models.Session{Status: models.StatusUnauthenticated, Expired: expired})
	}
}

func (m *Manager) snapshotLocked() models.Session {
	s := m.session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// setLocked records a transition and queues it for observers.
func (m *Manager) setLocked(s models.Session) {
	m.session = s
	m.pending = append(m.pending, m.snapshotLocked())
}

// flush delivers queued transitions in order. Only one goroutine drains at
// a time; others leave their transitions to it. A panicking observer
// releases the drain, so the next transition delivers whatever is queued.
func (m *Manager) flush() {
	m.mu.Lock()
	if m.draining {
		m.mu.Unlock()
		return
	}
	m.draining = true
	defer func() {
		m.draining = false
		m.mu.Unlock()
	}()

	for len(m.pending) > 0 {
		s := m.pending[0]
		m.pending = m.pending[1:]
		m.deliver(append([]subscriber(nil), m.subs...), s)
	}
}

// deliver calls the observers without the lock and reacquires it on the
// way out, panics included.
func (m *Manager) deliver(subs []subscriber, s models.Session) {
	m.mu.Unlock()
	defer m.mu.Lock()

	for _, sub := range subs {
		sub.fn(s)
	}
}
