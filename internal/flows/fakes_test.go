package flows

import (
	"context"

	"github.com/akarpovs/authgate/internal/models"
	"github.com/akarpovs/authgate/internal/session"
)

// fakeClient implements api.Client for flow unit tests. Results and errors
// are configured through fields; Last* fields capture arguments, *Calls
// fields count invocations. Optional Fn hooks run inside the call, which
// lets tests exercise re-entrancy.
type fakeClient struct {
	LoginToken        string
	LoginErr          error
	LoginCalls        int
	LastLoginEmail    string
	LastLoginPassword string
	LoginFn           func()

	ProfileRet   models.Profile
	ProfileErr   error
	ProfileCalls int

	RegisterMsg       string
	RegisterErr       error
	RegisterCalls     int
	LastRegisterEmail string
	LastRegisterRole  string
	RegisterFn        func()

	VerifyMsg       string
	VerifyErr       error
	VerifyCalls     int
	LastVerifyEmail string
	LastVerifyToken string

	ForgotMsg       string
	ForgotErr       error
	ForgotCalls     int
	LastForgotEmail string

	ResetErr          error
	ResetCalls        int
	LastResetEmail    string
	LastResetToken    string
	LastResetPassword string

	ListRet []models.UserRecord
	ListErr error

	DeleteUserErr    error
	DeleteUserCalls  int
	LastDeletedEmail string

	DeleteAccountErr   error
	DeleteAccountCalls int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.LoginCalls++
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	if f.LoginFn != nil {
		f.LoginFn()
	}
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Profile(ctx context.Context) (models.Profile, error) {
	f.ProfileCalls++
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) Register(ctx context.Context, email, password, role string) (string, error) {
	f.RegisterCalls++
	f.LastRegisterEmail = email
	f.LastRegisterRole = role
	if f.RegisterFn != nil {
		f.RegisterFn()
	}
	return f.RegisterMsg, f.RegisterErr
}

func (f *fakeClient) VerifyEmail(ctx context.Context, email, token string) (string, error) {
	f.VerifyCalls++
	f.LastVerifyEmail = email
	f.LastVerifyToken = token
	return f.VerifyMsg, f.VerifyErr
}

func (f *fakeClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	f.ForgotCalls++
	f.LastForgotEmail = email
	return f.ForgotMsg, f.ForgotErr
}

func (f *fakeClient) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	f.ResetCalls++
	f.LastResetEmail = email
	f.LastResetToken = token
	f.LastResetPassword = newPassword
	return f.ResetErr
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	return f.ListRet, f.ListErr
}

func (f *fakeClient) DeleteUser(ctx context.Context, email string) error {
	f.DeleteUserCalls++
	f.LastDeletedEmail = email
	return f.DeleteUserErr
}

func (f *fakeClient) DeleteAccount(ctx context.Context) error {
	f.DeleteAccountCalls++
	return f.DeleteAccountErr
}

// fakeStore implements session.Store in memory.
type fakeStore struct {
	token string
	has   bool

	GetErr   error
	SetErr   error
	ClearErr error

	SetCalls   int
	ClearCalls int
}

func (f *fakeStore) Get(ctx context.Context) (string, error) {
	if f.GetErr != nil {
		return "", f.GetErr
	}
	if !f.has {
		return "", session.ErrNoSession
	}
	return f.token, nil
}

func (f *fakeStore) Set(ctx context.Context, token string) error {
	f.SetCalls++
	if f.SetErr != nil {
		return f.SetErr
	}
	f.token = token
	f.has = true
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.ClearCalls++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.token = ""
	f.has = false
	return nil
}
