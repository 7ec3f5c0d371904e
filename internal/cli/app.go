// Package cli is the terminal view layer. Views never navigate on their
// own: flow controllers and the route guard emit navigation intents, and the
// router loop in Run is the only place that executes them.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akarpovs/authgate/internal/admin"
	"github.com/akarpovs/authgate/internal/api"
	"github.com/akarpovs/authgate/internal/config"
	"github.com/akarpovs/authgate/internal/cryptox"
	"github.com/akarpovs/authgate/internal/guard"
	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
	"github.com/akarpovs/authgate/internal/session"
)

// errQuit signals a user-requested exit up through the router loop.
var errQuit = errors.New("quit")

// App wires the flow controllers, the session store and the route guard to a
// terminal REPL.
type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	sessions session.Store
	client   api.Client
	guard    *guard.RouteGuard
	registry *admin.Registry

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local session database, loads (or creates) the sealing
// key and assembles the application.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := session.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	key, err := cryptox.LoadOrCreateKey(cfg.KeyFilePath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load sealing key: %w", err)
	}

	sessions := session.NewSQLiteStore(db, key)
	tokens := func(ctx context.Context) (string, error) {
		token, err := sessions.Get(ctx)
		if errors.Is(err, session.ErrNoSession) {
			return "", nil
		}
		return token, err
	}
	client := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, tokens, log)

	app := newApp(cfg, client, sessions, log, os.Stdin, os.Stdout)
	app.db = db
	return app, nil
}

// newApp assembles an App from ready-made parts. Tests use it to swap in
// fakes and scripted input.
func newApp(cfg *config.Config, client api.Client, sessions session.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:   cfg,
		log:      log,
		sessions: sessions,
		client:   client,
		guard:    guard.New(sessions, client, log),
		registry: admin.NewRegistry(client, log),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Close releases the session database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run is the router loop. It resumes into the dashboard when a session
// already exists, otherwise starts at the login view, then keeps executing
// the navigation intents views hand back until the user quits.
func (a *App) Run(ctx context.Context) error {
	intent := models.NavigateTo(models.RouteLogin)
	if _, err := a.sessions.Get(ctx); err == nil {
		intent = models.NavigateTo(models.RouteDashboard)
	}

	for {
		next, err := a.enter(ctx, intent)
		if err != nil {
			if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out, "Bye!")
				return nil
			}
			return err
		}
		if next.After > 0 {
			if err := a.pause(ctx, next.After); err != nil {
				return err
			}
			next.After = 0
		}
		intent = next
	}
}

// enter renders the view the intent names. Protected views pass through the
// guard first and render nothing when it redirects.
func (a *App) enter(ctx context.Context, intent models.NavigationIntent) (models.NavigationIntent, error) {
	switch intent.Route {
	case models.RouteLogin:
		return a.loginView(ctx)
	case models.RouteRegister:
		return a.registerView(ctx)
	case models.RouteVerify:
		return a.verifyView(ctx, intent.Email())
	case models.RouteForgot:
		return a.forgotView(ctx)
	case models.RouteReset:
		return a.resetView(ctx, intent.Email())
	case models.RouteDashboard:
		if redirect, err := a.guard.RequireSession(ctx); err != nil {
			return models.NavigationIntent{}, err
		} else if redirect != nil {
			return *redirect, nil
		}
		return a.dashboardView(ctx)
	case models.RouteAdmin:
		if redirect, err := a.guard.RequireRole(ctx, models.RoleAdmin); err != nil {
			return models.NavigationIntent{}, err
		} else if redirect != nil {
			return *redirect, nil
		}
		return a.adminView(ctx)
	default:
		a.log.Warn(ctx, "unknown route", "route", intent.Route)
		return models.NavigateTo(models.RouteLogin), nil
	}
}

// pause waits for d, honoring cancellation.
func (a *App) pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (a *App) printError(err error) {
	fmt.Fprintf(a.out, "Error: %s\n", err)
}
