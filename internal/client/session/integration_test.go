package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/hirepad/internal/client/api"
	"github.com/dmitrijs2005/hirepad/internal/client/credentials"
	"github.com/dmitrijs2005/hirepad/internal/client/models"
	"github.com/dmitrijs2005/hirepad/internal/client/storage"
	"github.com/dmitrijs2005/hirepad/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authBackend serves /auth/login and /auth/me for a single known user.
type authBackend struct {
	*httptest.Server

	mu  sync.Mutex
	key []byte
}

func (b *authBackend) signingKey() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.key
}

// rotate invalidates every token issued so far.
func (b *authBackend) rotate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.key = []byte("rotated")
}

func (b *authBackend) sign(u models.User, ttl time.Duration) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"exp":  time.Now().Add(ttl).Unix(),
	}).SignedString(b.signingKey())
}

func newAuthBackend(t *testing.T, user models.User, password string) *authBackend {
	t.Helper()
	b := &authBackend{key: []byte("integration-secret")}

	reply := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != user.Email || req.Password != password {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		tok, err := b.sign(user, time.Hour)
		if err != nil {
			reply(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
			return
		}
		reply(w, http.StatusOK, models.AuthResponse{AccessToken: tok, TokenType: "bearer", User: user})
	})
	r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if _, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return b.signingKey(), nil }); err != nil {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		reply(w, http.StatusOK, user)
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

type wiring struct {
	manager *Manager
	store   *credentials.SQLiteStore
	client  *api.Client
}

func wire(t *testing.T, baseURL, dbPath string) wiring {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := credentials.NewSQLiteStore(db, logging.Nop())
	client := api.New(baseURL)
	m := NewManager(store, client, logging.Nop())
	client.SetTokenSource(m.AccessToken)
	client.OnUnauthorized(m.HandleUnauthorized)
	return wiring{manager: m, store: store, client: client}
}

func TestIntegration_LoginSurvivesRestart(t *testing.T) {
	srv := newAuthBackend(t, alice, "secret")
	dbPath := filepath.Join(t.TempDir(), "hirepad.db")
	ctx := context.Background()

	first := wire(t, srv.URL, dbPath)
	first.manager.Boot(ctx)
	require.Equal(t, models.StatusUnauthenticated, first.manager.Session().Status)

	_, err := first.manager.Login(ctx, alice.Email, "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Incorrect email or password", err.Error())

	_, err = first.manager.Login(ctx, alice.Email, "secret")
	require.NoError(t, err)

	second := wire(t, srv.URL, dbPath)
	second.manager.Boot(ctx)
	second.manager.Wait()

	s := second.manager.Session()
	require.Equal(t, models.StatusAuthenticated, s.Status)
	assert.Equal(t, alice, *s.User)
}

func TestIntegration_ExpiredTokenIsDroppedOnBoot(t *testing.T) {
	srv := newAuthBackend(t, alice, "secret")
	dbPath := filepath.Join(t.TempDir(), "hirepad.db")
	ctx := context.Background()

	w := wire(t, srv.URL, dbPath)
	expired, err := srv.sign(alice, -time.Minute)
	require.NoError(t, err)
	require.NoError(t, w.store.Save(ctx, models.Credential{Token: expired, User: alice}))

	var seen []models.Status
	w.manager.Subscribe(func(s models.Session) { seen = append(seen, s.Status) })

	w.manager.Boot(ctx)
	w.manager.Wait()

	assert.Equal(t, models.StatusUnauthenticated, w.manager.Session().Status)
	_, ok := w.store.Load(ctx)
	assert.False(t, ok)
	assert.Equal(t, []models.Status{models.StatusAuthenticated, models.StatusUnauthenticated}, seen)
}

func TestIntegration_UnauthorizedResponseEndsSession(t *testing.T) {
	srv := newAuthBackend(t, alice, "secret")
	ctx := context.Background()

	w := wire(t, srv.URL, filepath.Join(t.TempDir(), "hirepad.db"))
	w.manager.Boot(ctx)
	_, err := w.manager.Login(ctx, alice.Email, "secret")
	require.NoError(t, err)

	srv.rotate()

	_, err = w.client.Me(ctx)
	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, models.StatusUnauthenticated, w.manager.Session().Status)
	_, ok := w.store.Load(ctx)
	assert.False(t, ok)
}
