package flows

import (
	"context"

	"github.com/akarpovs/authgate/internal/api"
	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
	"github.com/akarpovs/authgate/internal/session"
)

// LoginFlow drives authentication. On success the issued token is stored,
// the caller's profile is fetched to learn the role, and the flow emits a
// navigation intent: the admin view for role "admin", the standard
// dashboard for anything else.
type LoginFlow struct {
	flow
	client   api.Client
	sessions session.Store
	log      logging.Logger

	role string
}

func NewLoginFlow(client api.Client, sessions session.Store, log logging.Logger) *LoginFlow {
	return &LoginFlow{client: client, sessions: sessions, log: log}
}

// Submit authenticates with the given credentials.
//
// If the profile fetch fails after a successful login, the stored session is
// cleared and the submit fails: a session whose role is unknown must not be
// left silently authenticated-but-unrouted.
func (f *LoginFlow) Submit(ctx context.Context, email, password string) (models.NavigationIntent, error) {
	if err := f.begin(); err != nil {
		return models.NavigationIntent{}, err
	}
	if err := validateLogin(email, password); err != nil {
		return models.NavigationIntent{}, f.fail(err)
	}

	token, err := f.client.Login(ctx, email, password)
	if ctx.Err() != nil {
		return models.NavigationIntent{}, f.fail(ctx.Err())
	}
	if err != nil {
		f.log.Warn(ctx, "login rejected", "email", email, "error", err)
		return models.NavigationIntent{}, f.fail(err)
	}

	if err := f.sessions.Set(ctx, token); err != nil {
		return models.NavigationIntent{}, f.fail(err)
	}

	profile, err := f.client.Profile(ctx)
	if err != nil {
		// Logout-and-report fallback.
		if clearErr := f.sessions.Clear(ctx); clearErr != nil {
			f.log.Error(ctx, "failed to clear session after profile failure", "error", clearErr)
		}
		f.log.Warn(ctx, "profile fetch failed after login", "email", email, "error", err)
		return models.NavigationIntent{}, f.fail(err)
	}

	f.role = profile.Role
	f.state = StateSucceeded
	f.log.Info(ctx, "login succeeded", "email", email, "role", profile.Role)

	route := models.RouteDashboard
	if profile.Role == models.RoleAdmin {
		route = models.RouteAdmin
	}
	return models.NavigateTo(route), nil
}

// Role returns the authenticated role after a successful submit.
func (f *LoginFlow) Role() string { return f.role }
