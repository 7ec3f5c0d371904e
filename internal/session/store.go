// Package session keeps custody of the single bearer token issued by the
// identity service. Presence of a token is the client's only notion of
// "logged in"; the token is destroyed on logout, account deletion, or when
// any guarded call detects it is no longer valid.
package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned by Get when no token is stored.
var ErrNoSession = errors.New("no session")

// Store holds at most one opaque token. Set replaces the whole value
// atomically; last write wins. Implementations must never return a partial
// or stale-then-new mix of two writes.
type Store interface {
	// Get returns the stored token, or ErrNoSession if absent.
	Get(ctx context.Context) (string, error)

	// Set stores the token, replacing any previous value.
	Set(ctx context.Context, token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
