package flows

import (
	"context"

	"github.com/akarpovs/authgate/internal/api"
	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
)

// ForgotFlow requests a password reset. Like registration, the reset token
// arrives embedded in the response message, is held until acknowledged, and
// acknowledgment emits the intent toward the reset view with the email
// prefilled.
type ForgotFlow struct {
	flow
	client  api.Client
	extract TokenExtractor
	log     logging.Logger

	email string
	token string
}

func NewForgotFlow(client api.Client, extract TokenExtractor, log logging.Logger) *ForgotFlow {
	return &ForgotFlow{client: client, extract: extract, log: log}
}

// Submit requests a reset token for email.
func (f *ForgotFlow) Submit(ctx context.Context, email string) error {
	if err := f.begin(); err != nil {
		return err
	}
	if email == "" {
		return f.fail(newValidationError("Email is required"))
	}

	msg, err := f.client.ForgotPassword(ctx, email)
	if ctx.Err() != nil {
		return f.fail(ctx.Err())
	}
	if err != nil {
		f.log.Warn(ctx, "forgot-password rejected", "email", email, "error", err)
		return f.fail(err)
	}

	token, err := f.extract.Extract(msg)
	if err != nil {
		f.log.Error(ctx, "reset token missing from response", "email", email)
		return f.fail(err)
	}

	f.email = email
	f.token = token
	f.state = StateAwaitingAck
	return nil
}

// Token returns the reset challenge to display while awaiting acknowledgment.
func (f *ForgotFlow) Token() string { return f.token }

// Acknowledge emits the intent toward the reset view with the email carried
// forward.
func (f *ForgotFlow) Acknowledge() (models.NavigationIntent, error) {
	if f.state != StateAwaitingAck {
		return models.NavigationIntent{}, ErrNothingToAcknowledge
	}
	f.state = StateSucceeded
	return models.NavigateWithEmail(models.RouteReset, f.email), nil
}
