package flows

import (
	"context"
	"time"

	"github.com/akarpovs/authgate/internal/api"
	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
)

// VerifyFlow completes registration with the emailed verification token.
// Success navigates back to login after redirectDelay, keeping the success
// message visible in between.
type VerifyFlow struct {
	flow
	client        api.Client
	log           logging.Logger
	redirectDelay time.Duration
}

func NewVerifyFlow(client api.Client, redirectDelay time.Duration, log logging.Logger) *VerifyFlow {
	return &VerifyFlow{client: client, redirectDelay: redirectDelay, log: log}
}

// Submit verifies the email/token pair. Both fields are required; a verify
// view entered without a prior registration simply fails validation on the
// empty token.
func (f *VerifyFlow) Submit(ctx context.Context, email, token string) (string, models.NavigationIntent, error) {
	if err := f.begin(); err != nil {
		return "", models.NavigationIntent{}, err
	}
	if err := validateVerification(email, token); err != nil {
		return "", models.NavigationIntent{}, f.fail(err)
	}

	msg, err := f.client.VerifyEmail(ctx, email, token)
	if ctx.Err() != nil {
		return "", models.NavigationIntent{}, f.fail(ctx.Err())
	}
	if err != nil {
		f.log.Warn(ctx, "verification rejected", "email", email, "error", err)
		return "", models.NavigationIntent{}, f.fail(err)
	}

	f.state = StateSucceeded
	f.log.Info(ctx, "email verified", "email", email)
	if msg == "" {
		msg = "Email verified successfully! Redirecting to login..."
	}
	intent := models.NavigateTo(models.RouteLogin)
	intent.After = f.redirectDelay
	return msg, intent, nil
}
