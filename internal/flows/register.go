package flows

import (
	"context"

	"github.com/akarpovs/authgate/internal/api"
	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
)

// RegisterFlow drives account creation. A successful submit parses the
// verification token out of the service's response message and holds it
// until the user acknowledges having copied it; only then does the flow emit
// the navigation intent toward the verify view, carrying the registered
// email forward.
type RegisterFlow struct {
	flow
	client  api.Client
	extract TokenExtractor
	log     logging.Logger

	email string
	token string
}

func NewRegisterFlow(client api.Client, extract TokenExtractor, log logging.Logger) *RegisterFlow {
	return &RegisterFlow{client: client, extract: extract, log: log}
}

// Submit validates the credentials locally (required fields, confirmation
// match, strength score) and registers the account. Validation failures and
// remote rejections return the flow to Idle for resubmission.
func (f *RegisterFlow) Submit(ctx context.Context, creds models.Credentials) error {
	if err := f.begin(); err != nil {
		return err
	}
	if err := validateRegistration(creds); err != nil {
		return f.fail(err)
	}

	role := creds.Role
	if role == "" {
		role = models.RoleUser
	}

	msg, err := f.client.Register(ctx, creds.Email, creds.Password, role)
	if ctx.Err() != nil {
		// The view was torn down mid-flight; discard the result.
		return f.fail(ctx.Err())
	}
	if err != nil {
		f.log.Warn(ctx, "registration rejected", "email", creds.Email, "error", err)
		return f.fail(err)
	}

	token, err := f.extract.Extract(msg)
	if err != nil {
		// The account may exist server-side, but without the token the
		// flow cannot continue. Surface it, do not pass through silently.
		f.log.Error(ctx, "verification token missing from response", "email", creds.Email)
		return f.fail(err)
	}

	f.email = creds.Email
	f.token = token
	f.state = StateAwaitingAck
	f.log.Info(ctx, "registration accepted", "email", creds.Email)
	return nil
}

// Token returns the verification challenge to display while awaiting
// acknowledgment.
func (f *RegisterFlow) Token() string { return f.token }

// Acknowledge records that the user has seen (and copied) the verification
// token and emits the intent toward the verify view with the email prefilled.
func (f *RegisterFlow) Acknowledge() (models.NavigationIntent, error) {
	if f.state != StateAwaitingAck {
		return models.NavigationIntent{}, ErrNothingToAcknowledge
	}
	f.state = StateSucceeded
	return models.NavigateWithEmail(models.RouteVerify, f.email), nil
}
