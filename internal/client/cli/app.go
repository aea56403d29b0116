package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/dmitrijs2005/authkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authkeeper/internal/client/services"
	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/client/tokens"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

type App struct {
	authService services.AuthService
	db          *sql.DB
	reader      *bufio.Reader
	logger      logging.Logger

	outMu sync.Mutex
	out   io.Writer

	loggedIn atomic.Bool
	email    atomic.Value
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr, slog.LevelWarn)

	db, err := client.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	a := &App{db: db, reader: bufio.NewReader(os.Stdin), out: os.Stdout, logger: logger}

	cache := tokens.NewCache(metadata.NewSQLiteRepository(db))
	sess := session.New(cache, nil,
		session.WithRefreshTimeout(cfg.RefreshTimeout),
		session.WithOnExpired(a.onSessionExpired),
		session.WithLogger(logger.With("module", "session")),
	)

	apiClient, err := client.New(cfg, sess)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a.authService = services.NewAuthService(apiClient, cache, logger.With("module", "auth_service"))
	if err := a.restoreSession(ctx); err != nil {
		_ = apiClient.Close()
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func newAppWith(svc services.AuthService, in io.Reader, out io.Writer) *App {
	return &App{authService: svc, reader: bufio.NewReader(in), out: out, logger: logging.Nop()}
}

func (a *App) restoreSession(ctx context.Context) error {
	ok, err := a.authService.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	a.loggedIn.Store(ok)
	return nil
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.close(ctx)

	a.println("Welcome to authkeeper (type 'help' for commands)")
	if a.isLoggedIn() {
		a.println("Resuming previous session.")
	}
	runREPL(ctx, a, a.prompt, a.reader)
	return nil
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "close client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "close database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool { return a.loggedIn.Load() }

func (a *App) currentEmail() string {
	if v, ok := a.email.Load().(string); ok {
		return v
	}
	return ""
}

func (a *App) setAnonymous() {
	a.loggedIn.Store(false)
	a.email.Store("")
}

// onSessionExpired runs on the goroutine that performed the failed renewal.
func (a *App) onSessionExpired() {
	if a.loggedIn.Swap(false) {
		a.email.Store("")
		a.println("Session expired, please log in again.")
	}
}

func (a *App) prompt() string {
	if !a.isLoggedIn() {
		return "authkeeper> "
	}
	if e := a.currentEmail(); e != "" {
		return fmt.Sprintf("authkeeper (%s)> ", e)
	}
	return "authkeeper (logged in)> "
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) print(s string) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprint(a.out, s)
}

func (a *App) report(action string, err error) {
	switch {
	case errors.Is(err, session.ErrSessionExpired):
		// onSessionExpired already told the user.
	case errors.Is(err, client.ErrUnavailable):
		a.println(action + " failed: server unavailable")
	default:
		a.println(action+" failed:", err)
	}
}
