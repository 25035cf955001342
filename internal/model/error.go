package model

import "fmt"

// ErrorCode identifies the kind of process-level failure behind a blocking
// error. Codes appear in user-facing messages and in serialized reports.
type ErrorCode int

const (
	// CodeLaunchFailed means the command could not be started at all.
	CodeLaunchFailed ErrorCode = iota + 1
	// CodeNonZeroExit means the command ran but returned a non-zero code.
	CodeNonZeroExit
	// CodeTimeout means the command was cut short by the configured timeout.
	CodeTimeout
	// CodeMissingRule means the test has no verification rule attached.
	CodeMissingRule
	// CodeMissingBaseline means a same-output test has no build capture.
	CodeMissingBaseline
	// CodeUnresolvedBuildError means a build run left a blocking error on
	// the test that has not been cleared.
	CodeUnresolvedBuildError
	// CodeAlreadyRun means the test holds captures that must be cleared
	// before it can be built again.
	CodeAlreadyRun
)

// ProcessError is a blocking, process-level failure. It is distinct from a
// failed verification, which is a normal recorded outcome.
type ProcessError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// NewProcessError builds a ProcessError with a formatted message.
func NewProcessError(code ErrorCode, format string, args ...any) *ProcessError {
	return &ProcessError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("E%02d: %s", e.Code, e.Message)
}
