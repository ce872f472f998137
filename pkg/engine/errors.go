package engine

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of an engine error.
type ErrorClass string

const (
	// ErrorClassConfig indicates a declarative misuse: an invalid thread
	// status type, a status override referencing a nonexistent thread or
	// the wrong status kind, a malformed link or argument declaration, or
	// an unregistered process path. Config errors are fatal and raised at
	// the point of misuse, never retried.
	ErrorClassConfig ErrorClass = "config"

	// ErrorClassExecution indicates an error raised inside a process's
	// check, fix or tool method. Execution errors are propagated to the
	// caller after any resolved links have run; never silently swallowed.
	ErrorClassExecution ErrorClass = "execution"

	// ErrorClassInterrupted indicates cooperative interruption: an
	// expected control-flow signal, not a bug. Callers are expected to
	// transition the affected threads to the Aborted status.
	ErrorClassInterrupted ErrorClass = "interrupted"
)

// ErrInterrupted is the sentinel returned from Base.CheckInterruption when
// the caller's context has been cancelled. Processes surface it unchanged
// so runners can distinguish interruption from failure.
var ErrInterrupted = &Error{
	Class:   ErrorClassInterrupted,
	Message: "process execution interrupted by user",
}

// Error is a classified engine error with context.
type Error struct {
	// Class is the error classification.
	Class ErrorClass

	// Message is the human-readable error message.
	Message string

	// Process is the process path involved, if applicable.
	Process string

	// Operation is the operation being performed (check, fix, tool).
	Operation Operation

	// Thread is the thread title involved, if applicable.
	Thread string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Class, e.Message)
	if e.Process != "" {
		msg += fmt.Sprintf(" (process=%s", e.Process)
		if e.Operation != "" {
			msg += fmt.Sprintf(", operation=%s", e.Operation)
		}
		if e.Thread != "" {
			msg += fmt.Sprintf(", thread=%s", e.Thread)
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is. Two engine errors match when
// they share a class; this lets callers test errors.Is(err, ErrInterrupted).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

// NewConfigError creates a fatal configuration error.
func NewConfigError(message string, err error) *Error {
	return &Error{Class: ErrorClassConfig, Message: message, Err: err}
}

// NewExecutionError creates an execution error.
func NewExecutionError(message string, err error) *Error {
	return &Error{Class: ErrorClassExecution, Message: message, Err: err}
}

// WithProcess adds process context to an error.
func (e *Error) WithProcess(process string) *Error {
	e.Process = process
	return e
}

// WithOperation adds operation context to an error.
func (e *Error) WithOperation(op Operation) *Error {
	e.Operation = op
	return e
}

// WithThread adds thread context to an error.
func (e *Error) WithThread(thread string) *Error {
	e.Thread = thread
	return e
}

// IsConfig returns true if the error is classified as a config error.
func IsConfig(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Class == ErrorClassConfig
	}
	return false
}

// IsExecution returns true if the error is classified as an execution
// error.
func IsExecution(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Class == ErrorClassExecution
	}
	return false
}

// IsInterrupted returns true if the error represents cooperative
// interruption.
func IsInterrupted(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Class == ErrorClassInterrupted
	}
	return false
}
