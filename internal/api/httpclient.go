package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/akarpovs/authgate/internal/logging"
	"github.com/akarpovs/authgate/internal/models"
)

const (
	// maxErrorBodySize caps how much of an error response is read for
	// normalization.
	maxErrorBodySize = 64 * 1024

	// getRetries is how many extra attempts idempotent reads get when the
	// service is unreachable.
	getRetries = 2

	// retryBaseDelay seeds the exponential backoff between read retries.
	retryBaseDelay = 200 * time.Millisecond
)

// TokenSource supplies the current bearer token for authenticated calls.
// Returning "" with a nil error means "no session"; the request is then sent
// without an Authorization header and the service decides the outcome.
type TokenSource func(ctx context.Context) (string, error)

// HTTPClient implements Client over the service's JSON/HTTP API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPClient builds a client for the service at baseURL. tokens may be nil
// when the client is only used for unauthenticated flows.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	if tokens == nil {
		tokens = func(context.Context) (string, error) { return "", nil }
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	req := map[string]string{"email": email, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp, false); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (models.Profile, error) {
	var resp models.Profile
	if err := c.getWithRetry(ctx, "/auth/me", &resp); err != nil {
		return models.Profile{}, err
	}
	return resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password, role string) (string, error) {
	req := map[string]string{"email": email, "password": password, "role": role}
	var resp struct {
		Msg string `json:"msg"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp, false); err != nil {
		return "", err
	}
	return resp.Msg, nil
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, email, token string) (string, error) {
	req := map[string]string{"email": email, "token": token}
	var resp struct {
		Msg string `json:"msg"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/verify-email", req, &resp, false); err != nil {
		return "", err
	}
	return resp.Msg, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	req := map[string]string{"email": email}
	var resp struct {
		Msg string `json:"msg"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", req, &resp, false); err != nil {
		return "", err
	}
	return resp.Msg, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	req := map[string]string{"email": email, "token": token, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", req, nil, false)
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	var resp []models.UserRecord
	if err := c.getWithRetry(ctx, "/auth/admin/users", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodDelete, "/auth/admin/users/"+url.PathEscape(email), nil, nil, true)
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/auth/me", nil, nil, true)
}

// getWithRetry performs an authenticated GET, retrying a couple of times with
// exponential backoff when the service is unreachable. Rejections (including
// 401s) are never retried.
func (c *HTTPClient) getWithRetry(ctx context.Context, path string, out any) error {
	backoff := retry.WithMaxRetries(getRetries, retry.NewExponential(retryBaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, path, nil, out, true)
		if errors.Is(err, ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// do builds, sends, and decodes one request. body and out may be nil. When
// authed is true, the current token from the TokenSource is attached as a
// bearer header.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	if authed {
		token, err := c.tokens(ctx)
		if err != nil {
			return fmt.Errorf("failed to load token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		apiErr := newAPIError(resp.StatusCode, data)
		c.log.Debug(ctx, "request rejected",
			"method", method, "path", path, "request_id", requestID,
			"status", resp.StatusCode, "message", apiErr.Message())
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
