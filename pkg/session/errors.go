package session

import (
	"errors"
	"fmt"
)

// ErrNotBound is returned when a submission or result operation is invoked
// before the service reached the Bound state.
var ErrNotBound = errors.New("session not bound; call CreateSession or OpenSession first")

// CreationError reports that the one-time CreateSession RPC failed. The SDK
// never retries session creation; whether to try again is the caller's call.
type CreationError struct {
	Cause error
}

func (e *CreationError) Error() string { return fmt.Sprintf("create session: %v", e.Cause) }
func (e *CreationError) Unwrap() error { return e.Cause }

// SubmissionError reports a batch submission that could not be completed.
// Index is the zero-based position, within the caller's batch, of the first
// payload whose request failed.
type SubmissionError struct {
	SessionID string
	Index     int
	Attempts  int
	Cause     error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit tasks (session %s, payload %d, %d attempts): %v",
		e.SessionID, e.Index, e.Attempts, e.Cause)
}

func (e *SubmissionError) Unwrap() error { return e.Cause }

// ResultError reports a task that reached a failed terminal state.
type ResultError struct {
	SessionID string
	TaskID    string
	Message   string
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("task %s (session %s) failed: %s", e.TaskID, e.SessionID, e.Message)
}

// UnknownTaskError reports a task id the control plane does not recognize.
type UnknownTaskError struct {
	TaskID string
}

func (e *UnknownTaskError) Error() string { return fmt.Sprintf("unknown task id %q", e.TaskID) }
