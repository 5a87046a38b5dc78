package errors

import (
	"errors"
	"fmt"
)

// ExitFailure is the exit code of every fatal condition.
const ExitFailure = 1

// UsageError reports arguments or flags the command cannot work with.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// NewUsageError formats a UsageError.
func NewUsageError(format string, args ...interface{}) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// EmptyResultError is returned when a query produced no records at all.
type EmptyResultError struct{}

func (e *EmptyResultError) Error() string {
	return "no data"
}

// CommandError represents a failed command together with the process exit code.
type CommandError struct {
	ExitCode    int
	CommonError string
	Err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with an exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Err:         err,
	}
}

// ExitCode returns the exit code carried by err: 0 for nil, the CommandError
// code when present and ExitFailure otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return ExitFailure
}
