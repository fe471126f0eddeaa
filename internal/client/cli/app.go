package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/hirepad/internal/client/api"
	"github.com/dmitrijs2005/hirepad/internal/client/config"
	"github.com/dmitrijs2005/hirepad/internal/client/credentials"
	"github.com/dmitrijs2005/hirepad/internal/client/guard"
	"github.com/dmitrijs2005/hirepad/internal/client/models"
	"github.com/dmitrijs2005/hirepad/internal/client/services"
	"github.com/dmitrijs2005/hirepad/internal/client/session"
	"github.com/dmitrijs2005/hirepad/internal/client/storage"
	"github.com/dmitrijs2005/hirepad/internal/logging"
	"github.com/mattn/go-isatty"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	sessions       *session.Manager
	authService    services.AuthService
	jobService     services.JobService
	appService     services.ApplicationService
	profileService services.ProfileService
	companyService services.CompanyService

	reader *bufio.Reader
	out    io.Writer
	color  bool

	mu      sync.Mutex
	mode    Mode
	path    string
	notices []string
}

// NewApp opens the session database and wires the client together.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	store := credentials.NewSQLiteStore(db, logger)
	a := newApp(c, logger, store, os.Stdin, os.Stdout)
	a.db = db
	fd := os.Stdout.Fd()
	a.color = !c.NoColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, store credentials.Store, in io.Reader, out io.Writer) *App {
	client := api.New(c.ServerURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithRateLimit(c.RequestsPerSecond, 1),
		api.WithLogger(logger),
	)
	sessions := session.NewManager(store, client, logger)
	client.SetTokenSource(sessions.AccessToken)
	client.OnUnauthorized(sessions.HandleUnauthorized)

	a := &App{
		config:         c,
		logger:         logger,
		sessions:       sessions,
		authService:    services.NewAuthService(sessions, client),
		jobService:     services.NewJobService(client),
		appService:     services.NewApplicationService(client),
		profileService: services.NewProfileService(client),
		companyService: services.NewCompanyService(client),
		reader:         bufio.NewReader(in),
		out:            out,
	}
	sessions.Subscribe(a.onSession)
	return a
}

// Run restores the session, starts the connectivity watcher and blocks in
// the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	a.sessions.Boot(ctx)

	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	a.printf("Welcome to hirepad (type 'help' for commands)\n")
	_ = a.Navigate(ctx, "/")

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close waits for background session work and releases the database.
func (a *App) Close() {
	a.sessions.Wait()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Session().Authenticated()
}

func (a *App) role() models.Role {
	return a.sessions.Session().Role()
}

// onSession turns a session the backend ended into a notice shown before
// the next prompt.
func (a *App) onSession(s models.Session) {
	if s.Status != models.StatusUnauthenticated || !s.Expired {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.notices = append(a.notices, "Your session has expired. Please log in again.")
	a.path = guard.PathLogin
}

// drainNotices returns and clears pending notices.
func (a *App) drainNotices() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.notices
	a.notices = nil
	return n
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// connectivity mode shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ctx, ModeOffline)
	} else {
		a.setMode(ctx, ModeOnline)
	}
}
