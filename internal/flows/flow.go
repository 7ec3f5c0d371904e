// Package flows implements the client-side state machines that drive the
// credential flows of the identity service: register, login, verify-email,
// forgot-password, and reset-password.
//
// Every flow starts Idle, moves to Submitting for the duration of one
// network call, and either advances (AwaitingAck or Succeeded) or returns to
// Idle with an error so the user can resubmit. Local validation runs before
// Submitting and never reaches the network.
//
// Flows do not navigate. Transitions that imply a screen change return a
// models.NavigationIntent for the view layer to execute.
package flows

// State is the position of a flow in its lifecycle.
type State int

const (
	// StateIdle accepts a submission. Failed submissions return here.
	StateIdle State = iota

	// StateSubmitting covers one in-flight network call; re-entrant
	// submission is rejected until it finishes.
	StateSubmitting

	// StateAwaitingAck holds a challenge token the user must acknowledge
	// before the flow emits its navigation intent.
	StateAwaitingAck

	// StateSucceeded is the terminal success state.
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateAwaitingAck:
		return "awaiting-ack"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// flow carries the state shared by every flow controller. Access is
// serialized by the one-flow-at-a-time discipline of the view layer; the
// Submitting guard exists to reject re-entrant submissions, not to make the
// type safe for concurrent use.
type flow struct {
	state State
}

// State returns the flow's current state.
func (f *flow) State() State { return f.state }

// begin moves Idle → Submitting, rejecting re-entry while a submission is
// already in flight or after the flow finished.
func (f *flow) begin() error {
	switch f.state {
	case StateSubmitting:
		return ErrSubmitInProgress
	case StateAwaitingAck:
		return ErrAcknowledgmentPending
	case StateSucceeded:
		return ErrFlowFinished
	}
	f.state = StateSubmitting
	return nil
}

// fail returns the flow to Idle and passes err through, so call sites can
// write "return f.fail(err)".
func (f *flow) fail(err error) error {
	f.state = StateIdle
	return err
}
