package flows

import "errors"

var (
	// ErrSubmitInProgress rejects a submission while another one is in
	// flight for the same flow instance.
	ErrSubmitInProgress = errors.New("submission already in progress")

	// ErrAcknowledgmentPending rejects a submission while a challenge token
	// is waiting to be acknowledged.
	ErrAcknowledgmentPending = errors.New("acknowledgment pending")

	// ErrFlowFinished rejects actions on a flow that already succeeded.
	ErrFlowFinished = errors.New("flow already finished")

	// ErrNothingToAcknowledge is returned by Acknowledge when no challenge
	// is pending.
	ErrNothingToAcknowledge = errors.New("nothing to acknowledge")
)

// ValidationError is a local, pre-request rejection: missing fields,
// mismatched passwords, a too-weak password. It blocks the submission
// entirely; nothing reaches the network.
type ValidationError struct {
	msg string
	err error
}

func (e *ValidationError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return e.err.Error()
}

func (e *ValidationError) Unwrap() error { return e.err }

// newValidationError builds a ValidationError with a fixed message.
func newValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// wrapValidationError tags a validation-library error as a ValidationError
// while keeping the original reachable through errors.As/Unwrap.
func wrapValidationError(err error) *ValidationError {
	return &ValidationError{err: err}
}
