package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpovs/authgate/internal/api"
	"github.com/akarpovs/authgate/internal/config"
	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
	"github.com/akarpovs/authgate/internal/session"
)

// stubClient scripts the service responses for view tests.
type stubClient struct {
	loginToken string
	loginErr   error

	profile    models.Profile
	profileErr error

	registerMsg string
	registerErr error

	verifyMsg string
	verifyErr error

	users   []models.UserRecord
	listErr error

	deleteUserErr    error
	deletedUsers     []string
	deleteAccountErr error
	accountDeleted   bool
}

func (c *stubClient) Login(ctx context.Context, email, password string) (string, error) {
	return c.loginToken, c.loginErr
}

func (c *stubClient) Profile(ctx context.Context) (models.Profile, error) {
	return c.profile, c.profileErr
}

func (c *stubClient) Register(ctx context.Context, email, password, role string) (string, error) {
	return c.registerMsg, c.registerErr
}

func (c *stubClient) VerifyEmail(ctx context.Context, email, token string) (string, error) {
	return c.verifyMsg, c.verifyErr
}

func (c *stubClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	return "", errors.New("not scripted")
}

func (c *stubClient) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	return errors.New("not scripted")
}

func (c *stubClient) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	return c.users, c.listErr
}

func (c *stubClient) DeleteUser(ctx context.Context, email string) error {
	if c.deleteUserErr != nil {
		return c.deleteUserErr
	}
	c.deletedUsers = append(c.deletedUsers, email)
	return nil
}

func (c *stubClient) DeleteAccount(ctx context.Context) error {
	if c.deleteAccountErr != nil {
		return c.deleteAccountErr
	}
	c.accountDeleted = true
	return nil
}

var _ api.Client = (*stubClient)(nil)

type memStore struct {
	token string
	has   bool
}

func (s *memStore) Get(ctx context.Context) (string, error) {
	if !s.has {
		return "", session.ErrNoSession
	}
	return s.token, nil
}

func (s *memStore) Set(ctx context.Context, token string) error {
	s.token, s.has = token, true
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.token, s.has = "", false
	return nil
}

// testApp builds an App with scripted input and a buffer for output. The
// config carries a zero redirect delay so success navigations run instantly.
func testApp(client api.Client, store session.Store, input string) (*App, *bytes.Buffer) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.RedirectDelay = 0

	var out bytes.Buffer
	app := newApp(cfg, client, store, logging.NewNopLogger(), strings.NewReader(input), &out)
	return app, &out
}

// stubPassword replaces the terminal password reader for the duration of
// the test.
func stubPassword(t *testing.T, password string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) {
		return []byte(password), nil
	}
}

func TestLoginViewSuccess(t *testing.T) {
	stubPassword(t, "Password1!")
	client := &stubClient{loginToken: "tok-1", profile: models.Profile{Email: "a@b.com", Role: "user"}}
	store := &memStore{}
	app, _ := testApp(client, store, "login\na@b.com\n")

	intent, err := app.loginView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RouteDashboard, intent.Route)
	assert.Equal(t, "tok-1", store.token)
}

func TestLoginViewAdminRouting(t *testing.T) {
	stubPassword(t, "Password1!")
	client := &stubClient{loginToken: "tok-1", profile: models.Profile{Email: "root@b.com", Role: "admin"}}
	app, _ := testApp(client, &memStore{}, "login\nroot@b.com\n")

	intent, err := app.loginView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RouteAdmin, intent.Route)
}

func TestLoginViewRejectionStaysInView(t *testing.T) {
	stubPassword(t, "wrong")
	client := &stubClient{loginErr: errors.New("Invalid credentials")}
	app, out := testApp(client, &memStore{}, "login\na@b.com\nexit\n")

	_, err := app.loginView(context.Background())
	require.ErrorIs(t, err, errQuit)
	assert.Contains(t, out.String(), "Error: Invalid credentials")
}

func TestRegisterViewChallengeAndAcknowledge(t *testing.T) {
	stubPassword(t, "Str0ng!Pass")
	client := &stubClient{registerMsg: "Verification token sent: XYZ789"}
	// register command, email, role (empty = user), Enter to acknowledge.
	app, out := testApp(client, &memStore{}, "register\nnew@b.com\n\n\n")

	intent, err := app.registerView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RouteVerify, intent.Route)
	assert.Equal(t, "new@b.com", intent.Email())
	assert.Contains(t, out.String(), "XYZ789", "the challenge token must be displayed")
	assert.Contains(t, out.String(), "[#####] Strong")
}

func TestRegisterViewWeakPasswordRejectedLocally(t *testing.T) {
	stubPassword(t, "weak")
	client := &stubClient{registerMsg: "should never be reached"}
	app, out := testApp(client, &memStore{}, "register\nnew@b.com\n\nexit\n")

	_, err := app.registerView(context.Background())
	require.ErrorIs(t, err, errQuit)
	assert.Contains(t, out.String(), "Password is not strong enough")
}

func TestVerifyViewPrefilledEmail(t *testing.T) {
	client := &stubClient{verifyMsg: "Email verified successfully! Redirecting to login..."}
	// verify command, Enter keeps the prefill, then the token.
	app, out := testApp(client, &memStore{}, "verify\n\nXYZ789\n")

	intent, err := app.verifyView(context.Background(), "new@b.com")
	require.NoError(t, err)
	assert.Equal(t, models.RouteLogin, intent.Route)
	assert.Contains(t, out.String(), "Email verified successfully")
}

func TestRunWithoutSessionStartsAtLogin(t *testing.T) {
	app, out := testApp(&stubClient{}, &memStore{}, "exit\n")

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Sign in")
}

func TestRunResumesIntoDashboard(t *testing.T) {
	client := &stubClient{profile: models.Profile{Email: "a@b.com", Role: "user"}}
	store := &memStore{token: "tok", has: true}
	app, out := testApp(client, store, "exit\n")

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Dashboard: a@b.com")
}

func TestRunEOFQuits(t *testing.T) {
	app, _ := testApp(&stubClient{}, &memStore{}, "")

	require.NoError(t, app.Run(context.Background()))
}

func TestDashboardLogout(t *testing.T) {
	client := &stubClient{profile: models.Profile{Email: "a@b.com", Role: "user"}}
	store := &memStore{token: "tok", has: true}
	app, _ := testApp(client, store, "logout\n")

	intent, err := app.dashboardView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RouteLogin, intent.Route)
	assert.False(t, store.has, "logout must drop the session")
}

func TestDashboardDeleteAccount(t *testing.T) {
	client := &stubClient{profile: models.Profile{Email: "a@b.com", Role: "user"}}
	store := &memStore{token: "tok", has: true}
	app, out := testApp(client, store, "delete\ny\n")

	intent, err := app.dashboardView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RouteLogin, intent.Route)
	assert.True(t, client.accountDeleted)
	assert.False(t, store.has)
	assert.Contains(t, out.String(), "Account deleted.")
}

func TestDashboardDeleteAccountDeclined(t *testing.T) {
	client := &stubClient{profile: models.Profile{Email: "a@b.com", Role: "user"}}
	store := &memStore{token: "tok", has: true}
	app, _ := testApp(client, store, "delete\nn\nexit\n")

	_, err := app.dashboardView(context.Background())
	require.ErrorIs(t, err, errQuit)
	assert.False(t, client.accountDeleted)
	assert.True(t, store.has)
}

func TestEnterDashboardWithoutSessionRedirects(t *testing.T) {
	app, out := testApp(&stubClient{}, &memStore{}, "")

	next, err := app.enter(context.Background(), models.NavigateTo(models.RouteDashboard))
	require.NoError(t, err)
	assert.Equal(t, models.RouteLogin, next.Route)
	assert.NotContains(t, out.String(), "Dashboard", "protected content must not render")
}

func TestEnterAdminAsUserRedirectsToDashboard(t *testing.T) {
	client := &stubClient{profile: models.Profile{Email: "a@b.com", Role: "user"}}
	store := &memStore{token: "tok", has: true}
	app, out := testApp(client, store, "")

	next, err := app.enter(context.Background(), models.NavigateTo(models.RouteAdmin))
	require.NoError(t, err)
	assert.Equal(t, models.RouteDashboard, next.Route)
	assert.NotContains(t, out.String(), "Admin", "admin content must not render for a plain user")
}

func TestAdminViewListAndDelete(t *testing.T) {
	client := &stubClient{
		profile: models.Profile{Email: "root@b.com", Role: "admin"},
		users: []models.UserRecord{
			{Email: "u1@b.com", Role: "user", IsVerified: true},
			{Email: "u2@b.com", Role: "user", IsVerified: false},
		},
	}
	store := &memStore{token: "tok", has: true}
	app, out := testApp(client, store, "delete u2@b.com\ny\ndashboard\n")

	intent, err := app.adminView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RouteDashboard, intent.Route)
	assert.Equal(t, []string{"u2@b.com"}, client.deletedUsers)
	assert.Contains(t, out.String(), "u1@b.com")
	assert.Contains(t, out.String(), "User deleted.")
}

func TestAdminViewDeleteDeclined(t *testing.T) {
	client := &stubClient{
		profile: models.Profile{Email: "root@b.com", Role: "admin"},
		users:   []models.UserRecord{{Email: "u1@b.com", Role: "user", IsVerified: true}},
	}
	app, out := testApp(client, &memStore{token: "tok", has: true}, "delete u1@b.com\nn\nexit\n")

	_, err := app.adminView(context.Background())
	require.ErrorIs(t, err, errQuit)
	assert.Empty(t, client.deletedUsers)
	assert.Contains(t, out.String(), "Cancelled.")
}

// io.EOF mid-form aborts the whole app rather than looping forever.
func TestLoginViewEOFMidForm(t *testing.T) {
	app, _ := testApp(&stubClient{}, &memStore{}, "login\n")

	_, err := app.loginView(context.Background())
	require.ErrorIs(t, err, io.EOF)
}
