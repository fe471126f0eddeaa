package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/hirepad/internal/client/models"
)

type fakeStore struct {
	mu     sync.Mutex
	cred   *models.Credential
	loads  int
	saves  int
	clears int
}

func newFakeStore(cred *models.Credential) *fakeStore {
	return &fakeStore{cred: cred}
}

func (s *fakeStore) Save(_ context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	c := cred
	s.cred = &c
	return nil
}

func (s *fakeStore) Load(context.Context) (models.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.cred == nil {
		return models.Credential{}, false
	}
	return *s.cred, true
}

func (s *fakeStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.cred = nil
	return nil
}

func (s *fakeStore) stored() *models.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil
	}
	c := *s.cred
	return &c
}

type fakeGateway struct {
	mu     sync.Mutex
	calls  int
	login  func(email, password string) (models.AuthResponse, error)
	signup func(reg models.Registration) (models.AuthResponse, error)
	me     func(ctx context.Context) (models.User, error)
}

func (g *fakeGateway) Login(_ context.Context, email, password string) (models.AuthResponse, error) {
	g.mu.Lock()
	g.calls++
	fn := g.login
	g.mu.Unlock()
	return fn(email, password)
}

func (g *fakeGateway) Signup(_ context.Context, reg models.Registration) (models.AuthResponse, error) {
	g.mu.Lock()
	g.calls++
	fn := g.signup
	g.mu.Unlock()
	return fn(reg)
}

func (g *fakeGateway) Me(ctx context.Context) (models.User, error) {
	g.mu.Lock()
	g.calls++
	fn := g.me
	g.mu.Unlock()
	return fn(ctx)
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// recorder collects notifications.
type recorder struct {
	mu   sync.Mutex
	seen []models.Session
}

func (r *recorder) observe(s models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, s)
}

func (r *recorder) statuses() []models.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Status, 0, len(r.seen))
	for _, s := range r.seen {
		out = append(out, s.Status)
	}
	return out
}

func (r *recorder) last() models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seen[len(r.seen)-1]
}
