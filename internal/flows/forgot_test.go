package flows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
)

func newForgotFlow(client *fakeClient) *ForgotFlow {
	return NewForgotFlow(client, NewResetTokenExtractor(), logging.NewNopLogger())
}

func TestForgotRequiresEmail(t *testing.T) {
	client := &fakeClient{}
	f := newForgotFlow(client)

	err := f.Submit(context.Background(), "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, client.ForgotCalls)
}

func TestForgotSuccessAndAcknowledge(t *testing.T) {
	client := &fakeClient{ForgotMsg: "Reset link sent with token: T1"}
	f := newForgotFlow(client)

	require.NoError(t, f.Submit(context.Background(), "a@b.com"))

	assert.Equal(t, StateAwaitingAck, f.State())
	assert.Equal(t, "T1", f.Token())
	assert.Equal(t, "a@b.com", client.LastForgotEmail)

	intent, err := f.Acknowledge()
	require.NoError(t, err)
	assert.Equal(t, models.RouteReset, intent.Route)
	assert.Equal(t, "a@b.com", intent.Email(), "reset view must be prefilled with the email")
}

func TestForgotExtractionFailure(t *testing.T) {
	client := &fakeClient{ForgotMsg: "A reset link has been emailed."}
	f := newForgotFlow(client)

	err := f.Submit(context.Background(), "a@b.com")

	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, "reset token", exErr.What)
	assert.Equal(t, StateIdle, f.State())
}

func TestForgotRemoteErrorReturnsToIdle(t *testing.T) {
	client := &fakeClient{ForgotErr: errors.New("Email not found.")}
	f := newForgotFlow(client)

	err := f.Submit(context.Background(), "missing@b.com")
	require.EqualError(t, err, "Email not found.")
	assert.Equal(t, StateIdle, f.State())
}

func TestForgotAcknowledgeWithoutChallenge(t *testing.T) {
	f := newForgotFlow(&fakeClient{})
	_, err := f.Acknowledge()
	require.ErrorIs(t, err, ErrNothingToAcknowledge)
}
