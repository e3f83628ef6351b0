package adminapi

import (
	"errors"
	"fmt"
)

// Kind says which gateway operation failed.
type Kind string

const (
	KindFetch  Kind = "fetch"
	KindSave   Kind = "save"
	KindDelete Kind = "delete"
)

// Cause distinguishes a backend rejection (non-2xx) from a transport or
// decode failure. Callers branch on this instead of matching message text.
type Cause string

const (
	CauseRejected  Cause = "rejected_response"
	CauseTransport Cause = "transport_failure"
)

// Error is the uniform failure result of a gateway call.
type Error struct {
	Kind   Kind
	Cause  Cause
	Status int // HTTP status for rejected responses, 0 otherwise
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("adminapi: %s failed (%s): %v", e.Kind, e.Cause, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the operator-facing text shown in the console's error slot.
func (e *Error) Message() string {
	switch e.Kind {
	case KindFetch:
		if e.Cause == CauseRejected {
			return "Failed to fetch courses."
		}
		return "Error fetching courses."
	case KindSave:
		if e.Cause == CauseRejected {
			return "Failed to save course."
		}
		return "Error saving course."
	case KindDelete:
		if e.Cause == CauseRejected {
			return fmt.Sprintf("Failed to delete course. Status: %d", e.Status)
		}
		return "Error deleting course."
	}
	return e.Error()
}

// AsError unwraps err into an *Error if there is one in the chain.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
