package flows

import (
	"context"
	"time"

	"github.com/akarpovs/authgate/internal/api"
	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
)

// ResetFlow sets a new password using a reset token. Success navigates back
// to login after redirectDelay so the success message stays visible first.
type ResetFlow struct {
	flow
	client        api.Client
	log           logging.Logger
	redirectDelay time.Duration
}

func NewResetFlow(client api.Client, redirectDelay time.Duration, log logging.Logger) *ResetFlow {
	return &ResetFlow{client: client, redirectDelay: redirectDelay, log: log}
}

// Submit sets newPassword for email using the reset token. All three fields
// are required; a reset view entered without a prior forgot-password request
// fails validation on the empty token.
func (f *ResetFlow) Submit(ctx context.Context, email, token, newPassword string) (models.NavigationIntent, error) {
	if err := f.begin(); err != nil {
		return models.NavigationIntent{}, err
	}
	if err := validateReset(email, token, newPassword); err != nil {
		return models.NavigationIntent{}, f.fail(err)
	}

	err := f.client.ResetPassword(ctx, email, token, newPassword)
	if ctx.Err() != nil {
		return models.NavigationIntent{}, f.fail(ctx.Err())
	}
	if err != nil {
		f.log.Warn(ctx, "password reset rejected", "email", email, "error", err)
		return models.NavigationIntent{}, f.fail(err)
	}

	f.state = StateSucceeded
	f.log.Info(ctx, "password reset", "email", email)
	intent := models.NavigateTo(models.RouteLogin)
	intent.After = f.redirectDelay
	return intent, nil
}
