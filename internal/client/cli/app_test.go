package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/hirepad/internal/client/config"
	"github.com/dmitrijs2005/hirepad/internal/client/models"
	"github.com/dmitrijs2005/hirepad/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	candidate = models.User{ID: "u1", FullName: "Ada Candidate", Email: "ada@example.com", Role: models.RoleCandidate}
	recruiter = models.User{ID: "u2", FullName: "Rita Recruiter", Email: "rita@example.com", Role: models.RoleRecruiter}
	admin     = models.User{ID: "u3", FullName: "Root", Email: "root@example.com", Role: "admin"}
)

// memStore is an in-memory credentials.Store.
type memStore struct {
	mu   sync.Mutex
	cred *models.Credential
}

func (s *memStore) Save(_ context.Context, c models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &c
	return nil
}

func (s *memStore) Load(context.Context) (models.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return models.Credential{}, false
	}
	return *s.cred, true
}

func (s *memStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}

func (s *memStore) stored() *models.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

// backend is a small stand-in for the recruiting API. Tokens are
// "tok-<user id>"; revoke makes every token fail with 401.
type backend struct {
	*httptest.Server

	revoked atomic.Bool
	healthy atomic.Bool
	pings   atomic.Int32

	mu      sync.Mutex
	users   map[string]models.User
	deleted []string
	company *models.Company
	drafts  map[string]models.JobDraft
	profile models.CandidateProfile
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	b := &backend{users: map[string]models.User{}, drafts: map[string]models.JobDraft{}}
	for _, u := range []models.User{candidate, recruiter, admin} {
		b.users["tok-"+u.ID] = u
	}
	b.healthy.Store(true)

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			b.pings.Add(1)
			if !b.healthy.Load() {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "down"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
		})

		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var req models.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			b.mu.Lock()
			defer b.mu.Unlock()
			for tok, u := range b.users {
				if u.Email == req.Email && req.Password == "password123" {
					writeJSON(w, http.StatusOK, models.AuthResponse{AccessToken: tok, TokenType: "bearer", User: u})
					return
				}
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
		})

		r.Group(func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
					if _, ok := b.user(tok); !ok || b.revoked.Load() {
						writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
						return
					}
					next.ServeHTTP(w, r)
				})
			})

			r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
				u, _ := b.user(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
				writeJSON(w, http.StatusOK, u)
			})
			r.Get("/candidates/me", func(w http.ResponseWriter, _ *http.Request) {
				b.mu.Lock()
				defer b.mu.Unlock()
				writeJSON(w, http.StatusOK, b.profile)
			})
			r.Patch("/candidates/me", func(w http.ResponseWriter, r *http.Request) {
				var p models.CandidateProfile
				_ = json.NewDecoder(r.Body).Decode(&p)
				b.mu.Lock()
				defer b.mu.Unlock()
				b.profile = p
				writeJSON(w, http.StatusOK, p)
			})
			r.Get("/companies/my", func(w http.ResponseWriter, _ *http.Request) {
				b.mu.Lock()
				defer b.mu.Unlock()
				if b.company == nil {
					writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Company not found"})
					return
				}
				writeJSON(w, http.StatusOK, b.company)
			})
			r.Post("/companies", func(w http.ResponseWriter, r *http.Request) {
				var co models.Company
				_ = json.NewDecoder(r.Body).Decode(&co)
				co.ID = "c1"
				b.mu.Lock()
				defer b.mu.Unlock()
				b.company = &co
				writeJSON(w, http.StatusCreated, co)
			})
			r.Patch("/companies/{id}", func(w http.ResponseWriter, r *http.Request) {
				var co models.Company
				_ = json.NewDecoder(r.Body).Decode(&co)
				co.ID = chi.URLParam(r, "id")
				b.mu.Lock()
				defer b.mu.Unlock()
				b.company = &co
				writeJSON(w, http.StatusOK, co)
			})
			r.Post("/jobs", func(w http.ResponseWriter, r *http.Request) {
				var d models.JobDraft
				_ = json.NewDecoder(r.Body).Decode(&d)
				b.mu.Lock()
				defer b.mu.Unlock()
				b.drafts["j-new"] = d
				writeJSON(w, http.StatusCreated, models.Job{ID: "j-new", CompanyID: d.CompanyID, Title: d.Title, Status: d.Status})
			})
			r.Patch("/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
				var d models.JobDraft
				_ = json.NewDecoder(r.Body).Decode(&d)
				id := chi.URLParam(r, "id")
				b.mu.Lock()
				defer b.mu.Unlock()
				b.drafts[id] = d
				writeJSON(w, http.StatusOK, models.Job{ID: id, Title: d.Title, Status: d.Status})
			})
			r.Get("/applications/my", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, []models.Application{
					{ID: "a1", JobID: "j1", Status: models.ApplicationStatus("applied"), MatchScore: 87, Job: &models.Job{ID: "j1", Title: "Go Developer"}},
				})
			})
			r.Get("/jobs/my", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, []models.Job{{ID: "j1", Title: "Go Developer", Status: "published"}, {ID: "j2", Title: "SRE", Status: "draft"}})
			})
			r.Delete("/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
				b.mu.Lock()
				b.deleted = append(b.deleted, chi.URLParam(r, "id"))
				b.mu.Unlock()
				w.WriteHeader(http.StatusNoContent)
			})
		})

		r.Get("/jobs", func(w http.ResponseWriter, r *http.Request) {
			jobs := []models.Job{
				{ID: "j1", Title: "Go Developer", Location: "Berlin", RemoteType: "hybrid", Status: "published"},
				{ID: "j2", Title: "Frontend Engineer", Location: "Riga", RemoteType: "remote", Status: "published"},
			}
			title := strings.ToLower(r.URL.Query().Get("title"))
			var out []models.Job
			for _, j := range jobs {
				if strings.Contains(strings.ToLower(j.Title), title) {
					out = append(out, j)
				}
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Get("/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "id") != "j1" {
				writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Job not found"})
				return
			}
			writeJSON(w, http.StatusOK, models.Job{
				ID: "j1", CompanyID: "c1", Title: "Go Developer", Description: "Build services.",
				RemoteType: "hybrid", EmploymentType: "full-time", Currency: "EUR", Status: "published",
			})
		})
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

func (b *backend) user(tok string) (models.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[tok]
	return u, ok
}

// rename changes a user's name on the server only, as another client would.
func (b *backend) rename(id, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for tok, u := range b.users {
		if u.ID == id {
			u.FullName = name
			b.users[tok] = u
		}
	}
}

func (b *backend) savedCompany() *models.Company {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.company
}

func (b *backend) draft(id string) (models.JobDraft, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.drafts[id]
	return d, ok
}

func (b *backend) deletedJobs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.deleted...)
}

// newTestApp builds an App against b with the given stdin. Output is
// collected in the returned buffer.
func newTestApp(t *testing.T, b *backend, store *memStore, input string) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{
		ServerURL:      b.URL + "/api",
		RequestTimeout: 2 * time.Second,
	}
	out := &bytes.Buffer{}
	a := newApp(cfg, logging.Nop(), store, strings.NewReader(input), out)
	t.Cleanup(a.Close)
	return a, out
}

func signedIn(u models.User) *memStore {
	return &memStore{cred: &models.Credential{Token: "tok-" + u.ID, User: u}}
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestSetMode_LogsOnlyOnChange(t *testing.T) {
	var logs bytes.Buffer
	a := &App{logger: logging.New(&logs, "info")}
	ctx := context.Background()

	a.setMode(ctx, ModeOnline)
	assert.Equal(t, ModeOnline, a.currentMode())
	assert.Contains(t, logs.String(), "mode=online")

	logs.Reset()
	a.setMode(ctx, ModeOnline)
	assert.Empty(t, logs.String())

	a.setMode(ctx, ModeOffline)
	assert.Equal(t, ModeOffline, a.currentMode())
	assert.Contains(t, logs.String(), "mode=offline")
}

func TestCheckOnline_TracksBackendHealth(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, &memStore{}, "")
	ctx := context.Background()

	a.checkOnline(ctx)
	assert.Equal(t, ModeOnline, a.currentMode())

	b.healthy.Store(false)
	a.checkOnline(ctx)
	assert.Equal(t, ModeOffline, a.currentMode())
}

func TestCheckOnline_UnreachableIsOffline(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, &memStore{}, "")
	b.Close()

	a.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, a.currentMode())
}

func TestStartOnlineStatusWatcher_PingsUntilCancelled(t *testing.T) {
	b := newBackend(t)
	a, _ := newTestApp(t, b, &memStore{}, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return b.pings.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, ModeOnline, a.currentMode())

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestGetStatus(t *testing.T) {
	b := newBackend(t)

	a, _ := newTestApp(t, b, &memStore{}, "")
	a.sessions.Boot(context.Background())
	assert.Equal(t, "/", a.getStatus())

	a.setMode(context.Background(), ModeOnline)
	assert.Equal(t, "(online) /", a.getStatus())

	a2, _ := newTestApp(t, b, signedIn(candidate), "")
	a2.sessions.Boot(context.Background())
	a2.setMode(context.Background(), ModeOffline)
	require.NoError(t, a2.Navigate(context.Background(), "/jobs"))
	assert.Equal(t, "(Ada Candidate offline) /jobs", a2.getStatus())
}

func TestLogin_OpensRoleHome(t *testing.T) {
	b := newBackend(t)
	store := &memStore{}
	a, out := newTestApp(t, b, store, "rita@example.com\n")
	stubPassword(t, "password123")
	ctx := context.Background()
	a.sessions.Boot(ctx)

	require.NoError(t, a.Login(ctx))

	assert.Contains(t, out.String(), "Welcome back, Rita Recruiter!")
	assert.Contains(t, out.String(), "Recruiter dashboard")
	assert.Contains(t, out.String(), "Jobs posted: 2, published: 1")
	assert.Equal(t, "/recruiter/dashboard", a.currentPath())
	require.NotNil(t, store.stored())
	assert.Equal(t, "tok-u2", store.stored().Token)
	assert.Empty(t, a.drainNotices())
}

func TestLogin_WrongPasswordKeepsSignedOut(t *testing.T) {
	b := newBackend(t)
	store := &memStore{}
	a, out := newTestApp(t, b, store, "ada@example.com\n")
	stubPassword(t, "nope-nope")
	ctx := context.Background()
	a.sessions.Boot(ctx)

	require.Error(t, a.Login(ctx))

	assert.Contains(t, out.String(), "Incorrect email or password")
	assert.False(t, a.isLoggedIn())
	assert.Nil(t, store.stored())
}

func TestLogin_MissingPasswordRejectedLocally(t *testing.T) {
	b := newBackend(t)
	a, out := newTestApp(t, b, &memStore{}, "ada@example.com\n")
	stubPassword(t, "")
	a.sessions.Boot(context.Background())

	require.Error(t, a.Login(context.Background()))
	assert.Contains(t, out.String(), "email and password are required")
	assert.False(t, a.isLoggedIn())
}

func TestLogout_NoExpiryNotice(t *testing.T) {
	b := newBackend(t)
	store := signedIn(candidate)
	a, out := newTestApp(t, b, store, "")
	ctx := context.Background()
	a.sessions.Boot(ctx)
	a.sessions.Wait()

	require.NoError(t, a.Logout(ctx))

	assert.False(t, a.isLoggedIn())
	assert.Nil(t, store.stored())
	assert.Contains(t, out.String(), "Logged out.")
	assert.Empty(t, a.drainNotices())
	assert.Equal(t, "/", a.currentPath())
}

// An explicit logout queued behind a slow observer is still explicit when
// it is finally delivered.
func TestLogout_DeliveredLateNoExpiryNotice(t *testing.T) {
	b := newBackend(t)
	stale := candidate
	stale.FullName = "Old Name"
	a, _ := newTestApp(t, b, &memStore{cred: &models.Credential{Token: "tok-" + candidate.ID, User: stale}}, "")
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	a.sessions.Subscribe(func(s models.Session) {
		if s.User != nil && s.User.FullName == candidate.FullName {
			once.Do(func() { close(entered) })
			<-release
		}
	})

	a.sessions.Boot(ctx)
	<-entered
	require.NoError(t, a.Logout(ctx))
	close(release)
	a.sessions.Wait()

	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.drainNotices())
	assert.Equal(t, "/", a.currentPath())
}

func TestRejectedTokenAddsNotice(t *testing.T) {
	b := newBackend(t)
	store := signedIn(candidate)
	a, out := newTestApp(t, b, store, "")
	ctx := context.Background()
	a.sessions.Boot(ctx)
	a.sessions.Wait()
	require.True(t, a.isLoggedIn())

	b.revoked.Store(true)
	require.Error(t, a.Navigate(ctx, "/candidate/dashboard"))

	assert.Contains(t, out.String(), "Could not validate credentials")
	assert.False(t, a.isLoggedIn())
	assert.Nil(t, store.stored())
	assert.Equal(t, []string{"Your session has expired. Please log in again."}, a.drainNotices())
	assert.Empty(t, a.drainNotices())
	assert.Equal(t, "/login", a.currentPath())
}

func TestBoot_ExpiredTokenAddsNotice(t *testing.T) {
	b := newBackend(t)
	b.revoked.Store(true)
	store := signedIn(recruiter)
	a, _ := newTestApp(t, b, store, "")

	a.sessions.Boot(context.Background())
	a.sessions.Wait()

	assert.False(t, a.isLoggedIn())
	assert.Nil(t, store.stored())
	assert.Len(t, a.drainNotices(), 1)
}

func TestWhoAmI(t *testing.T) {
	b := newBackend(t)

	a, out := newTestApp(t, b, &memStore{}, "")
	a.sessions.Boot(context.Background())
	a.WhoAmI()
	assert.Contains(t, out.String(), "Not logged in (unauthenticated).")

	a2, out2 := newTestApp(t, b, signedIn(candidate), "")
	a2.sessions.Boot(context.Background())
	a2.WhoAmI()
	assert.Contains(t, out2.String(), "Ada Candidate <ada@example.com>, candidate")
}

func TestNewApp_UnusableDatabaseFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	a, err := NewApp(context.Background(), &config.Config{
		DatabasePath: filepath.Join(blocker, "hirepad.db"),
		LogLevel:     "error",
	})
	require.Error(t, err)
	assert.Nil(t, a)
}
