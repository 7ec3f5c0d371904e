// Package guard decides whether a protected view may render. The decision is
// made before any content is produced: callers run the check first and only
// render on an allow.
package guard

import (
	"context"
	"errors"

	"github.com/akarpovs/authgate/internal/api"
	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
	"github.com/akarpovs/authgate/internal/session"
)

// RouteGuard gates protected views using the session store and, for
// role-restricted views, a live profile check against the service.
type RouteGuard struct {
	sessions session.Store
	client   api.Client
	log      logging.Logger
}

func New(sessions session.Store, client api.Client, log logging.Logger) *RouteGuard {
	return &RouteGuard{sessions: sessions, client: client, log: log}
}

// RequireSession checks that a session exists. A nil intent means the view
// may render; otherwise the caller must execute the returned redirect and
// render nothing.
func (g *RouteGuard) RequireSession(ctx context.Context) (*models.NavigationIntent, error) {
	_, err := g.sessions.Get(ctx)
	if errors.Is(err, session.ErrNoSession) {
		redirect := models.NavigateTo(models.RouteLogin)
		return &redirect, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// RequireRole checks the session and then verifies the caller's role with a
// live profile fetch. The role is re-fetched on every activation: a role
// cached from login may have changed server-side since.
//
// Outcomes:
//   - no session: redirect to login;
//   - invalid/expired token: session cleared, redirect to login;
//   - role mismatch: redirect to the standard dashboard;
//   - any other fetch failure: redirect to login, session kept.
func (g *RouteGuard) RequireRole(ctx context.Context, role string) (*models.NavigationIntent, error) {
	if redirect, err := g.RequireSession(ctx); redirect != nil || err != nil {
		return redirect, err
	}

	profile, err := g.client.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			g.log.Info(ctx, "session token no longer valid, clearing", "error", err)
			if clearErr := g.sessions.Clear(ctx); clearErr != nil {
				g.log.Error(ctx, "failed to clear invalid session", "error", clearErr)
			}
		} else {
			g.log.Warn(ctx, "role check failed", "error", err)
		}
		redirect := models.NavigateTo(models.RouteLogin)
		return &redirect, nil
	}

	if profile.Role != role {
		g.log.Info(ctx, "role mismatch on protected view", "have", profile.Role, "want", role)
		redirect := models.NavigateTo(models.RouteDashboard)
		return &redirect, nil
	}
	return nil, nil
}
