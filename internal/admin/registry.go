// Package admin manages the admin view's user list: a fetched cache mutated
// optimistically on successful deletes.
package admin

import (
	"context"
	"errors"

	"github.com/akarpovs/authgate/internal/api"
	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
)

// ErrNotConfirmed is returned by Delete when the confirmation step declines.
var ErrNotConfirmed = errors.New("deletion not confirmed")

// ConfirmFunc asks the user to confirm deleting the named account. The
// request is only issued when it returns true.
type ConfirmFunc func(email string) bool

// Registry holds the admin view's user cache. The cache reflects server
// state as of the last Refresh plus any optimistic removals; it is never
// silently re-fetched.
type Registry struct {
	client api.Client
	log    logging.Logger
	users  []models.UserRecord
}

func NewRegistry(client api.Client, log logging.Logger) *Registry {
	return &Registry{client: client, log: log}
}

// Refresh replaces the cache with the server's current user list.
func (r *Registry) Refresh(ctx context.Context) error {
	users, err := r.client.ListUsers(ctx)
	if err != nil {
		return err
	}
	r.users = users
	return nil
}

// Users returns the cached records.
func (r *Registry) Users() []models.UserRecord {
	return r.users
}

// Delete removes the account with the given email after confirmation.
//
// On success the matching record is removed from the cache by key equality,
// not by position, so the cache stays correct even if entries were reordered
// by concurrent deletes. On failure the cache is left untouched: the record
// stays visible because no deletion actually occurred.
func (r *Registry) Delete(ctx context.Context, email string, confirm ConfirmFunc) error {
	if !confirm(email) {
		return ErrNotConfirmed
	}

	if err := r.client.DeleteUser(ctx, email); err != nil {
		r.log.Warn(ctx, "user deletion failed", "email", email, "error", err)
		return err
	}

	kept := r.users[:0]
	for _, u := range r.users {
		if u.Email != email {
			kept = append(kept, u)
		}
	}
	r.users = kept
	r.log.Info(ctx, "user deleted", "email", email)
	return nil
}
