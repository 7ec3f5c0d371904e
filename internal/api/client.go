// Package api talks to the remote identity service.
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     service's fixed operations: credential flows, profile lookup, and the
//     admin user endpoints.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that injects the
//     bearer token from a TokenSource, tags every request with an
//     X-Request-Id, retries idempotent reads on transient failures, and
//     normalizes the service's heterogeneous error bodies.
//
// # Error Handling
//
// Transport-level failures surface as ErrUnavailable. Rejected requests
// surface as *APIError carrying one user-facing message resolved from
// whichever error shape the service produced; a 401 additionally matches
// ErrUnauthorized via errors.Is, so callers can react to a dead token.
package api

import (
	"context"

	"github.com/akarpovs/authgate/internal/models"
)

// Client is the contract of the identity service as consumed by the flows,
// the route guard, and the admin registry.
//
// Contract:
//   - Login: exchange credentials for an opaque access token.
//   - Profile: fetch the authenticated caller's account.
//   - Register: create an account; the response message embeds the
//     verification token in free text.
//   - VerifyEmail: complete registration with the emailed token.
//   - ForgotPassword: request a reset; the response message embeds the
//     reset token in free text.
//   - ResetPassword: set a new password using the reset token.
//   - ListUsers / DeleteUser: admin user management.
//   - DeleteAccount: delete the caller's own account.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context) (models.Profile, error)
	Register(ctx context.Context, email, password, role string) (string, error)
	VerifyEmail(ctx context.Context, email, token string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, token, newPassword string) error
	ListUsers(ctx context.Context) ([]models.UserRecord, error)
	DeleteUser(ctx context.Context, email string) error
	DeleteAccount(ctx context.Context) error
}
