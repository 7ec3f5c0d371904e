package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

var (
	// ErrUnavailable marks transport-level failures: the service could not
	// be reached at all.
	ErrUnavailable = errors.New("service unavailable")

	// ErrUnauthorized marks rejections caused by a missing, invalid, or
	// expired token. *APIError values with status 401 match it via errors.Is.
	ErrUnauthorized = errors.New("unauthorized")
)

// genericMessage is shown when an error body matches none of the known shapes.
const genericMessage = "An unexpected error occurred."

// ErrorShape tags which of the service's error body layouts produced the
// normalized message.
type ErrorShape int

const (
	// ShapeUnknown: body matched no known layout; message is the generic one.
	ShapeUnknown ErrorShape = iota
	// ShapeArrayDetail: {"detail": [{"msg": ...}, ...]}; first entry wins.
	ShapeArrayDetail
	// ShapeObjectError: {"error": {"message": ...}}.
	ShapeObjectError
	// ShapeStringDetail: {"detail": "..."}.
	ShapeStringDetail
)

// APIError is a rejected request, normalized to a single user-facing message
// regardless of which body layout the service used.
type APIError struct {
	StatusCode int
	Shape      ErrorShape
	message    string
}

func (e *APIError) Error() string { return e.message }

// Message returns the user-facing text for display.
func (e *APIError) Message() string { return e.message }

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// newAPIError resolves a non-success response body into an APIError.
// Shapes are tried in the order the service is known to produce them:
// validation-error arrays, structured errors, plain string details, then
// the generic fallback.
func newAPIError(statusCode int, body []byte) *APIError {
	var probe struct {
		Detail json.RawMessage `json:"detail"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	// A body that is not JSON at all falls through to the generic message.
	_ = json.Unmarshal(body, &probe)

	if len(probe.Detail) > 0 {
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(probe.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
			return &APIError{StatusCode: statusCode, Shape: ShapeArrayDetail, message: items[0].Msg}
		}
	}

	if probe.Error != nil && probe.Error.Message != "" {
		return &APIError{StatusCode: statusCode, Shape: ShapeObjectError, message: probe.Error.Message}
	}

	if len(probe.Detail) > 0 {
		var s string
		if err := json.Unmarshal(probe.Detail, &s); err == nil && s != "" {
			return &APIError{StatusCode: statusCode, Shape: ShapeStringDetail, message: s}
		}
	}

	return &APIError{StatusCode: statusCode, Shape: ShapeUnknown, message: genericMessage}
}
