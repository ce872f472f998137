package engine

import (
	"fmt"

	"github.com/prevet/prevet/pkg/status"
)

// Thread represents a single named responsibility within a process.
//
// A thread carries a default and a currently-active fail/success status
// pair. The active pair may be overridden by a blueprint status override;
// overrides are one-directional per processor instantiation, there is no
// reset.
//
// Threads are declared explicitly when building a process Base and are
// referenced by title in blueprint status overrides.
type Thread struct {
	title string

	defaultFailStatus status.Status
	failStatus        status.Status

	defaultSuccessStatus status.Status
	successStatus        status.Status

	documentation string
}

// ThreadOption configures a Thread under construction.
type ThreadOption func(*Thread)

// WithFailStatus sets the default fail status for the thread. Defaults to
// status.Error.
func WithFailStatus(s status.Status) ThreadOption {
	return func(t *Thread) { t.defaultFailStatus = s }
}

// WithSuccessStatus sets the default success status for the thread.
// Defaults to status.Success.
func WithSuccessStatus(s status.Status) ThreadOption {
	return func(t *Thread) { t.defaultSuccessStatus = s }
}

// WithThreadDocumentation attaches a documentation string to the thread.
func WithThreadDocumentation(doc string) ThreadOption {
	return func(t *Thread) { t.documentation = doc }
}

// NewThread creates a thread with the given title. The supplied statuses
// must belong to the matching family; anything else is a config error.
func NewThread(title string, opts ...ThreadOption) (*Thread, error) {
	t := &Thread{
		title:                title,
		defaultFailStatus:    status.Error,
		defaultSuccessStatus: status.Success,
	}
	for _, opt := range opts {
		opt(t)
	}

	if !t.defaultFailStatus.IsFail() {
		return nil, NewConfigError(
			fmt.Sprintf("%s is not a valid fail status", t.defaultFailStatus.Name()), nil,
		).WithThread(title)
	}
	if !t.defaultSuccessStatus.IsSuccess() {
		return nil, NewConfigError(
			fmt.Sprintf("%s is not a valid success status", t.defaultSuccessStatus.Name()), nil,
		).WithThread(title)
	}

	t.failStatus = t.defaultFailStatus
	t.successStatus = t.defaultSuccessStatus
	return t, nil
}

// MustThread is like NewThread but panics on a config error. Intended for
// package level thread declarations where the statuses are known constants.
func MustThread(title string, opts ...ThreadOption) *Thread {
	t, err := NewThread(title, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Title returns the thread title.
func (t *Thread) Title() string { return t.title }

// Documentation returns the thread documentation, if any.
func (t *Thread) Documentation() string { return t.documentation }

// FailStatus returns the currently-active fail status.
func (t *Thread) FailStatus() status.Status { return t.failStatus }

// SuccessStatus returns the currently-active success status.
func (t *Thread) SuccessStatus() status.Status { return t.successStatus }

// DefaultFailStatus returns the fail status the thread was declared with.
func (t *Thread) DefaultFailStatus() status.Status { return t.defaultFailStatus }

// DefaultSuccessStatus returns the success status the thread was declared
// with.
func (t *Thread) DefaultSuccessStatus() status.Status { return t.defaultSuccessStatus }

// OverrideFailStatus replaces the active fail status. The override must be
// a fail status.
func (t *Thread) OverrideFailStatus(s status.Status) error {
	if !s.IsFail() {
		return NewConfigError(
			fmt.Sprintf("fail status override %q must be a fail status, got %s", s.Name(), s.Kind()), nil,
		).WithThread(t.title)
	}
	t.failStatus = s
	return nil
}

// OverrideSuccessStatus replaces the active success status. The override
// must be a success status.
func (t *Thread) OverrideSuccessStatus(s status.Status) error {
	if !s.IsSuccess() {
		return NewConfigError(
			fmt.Sprintf("success status override %q must be a success status, got %s", s.Name(), s.Kind()), nil,
		).WithThread(t.title)
	}
	t.successStatus = s
	return nil
}

// StatusFor maps a boolean check outcome to the thread's active status:
// the success status if state is true, the fail status otherwise. This is
// the single integration point between a check outcome and a status value.
func (t *Thread) StatusFor(state bool) status.Status {
	if state {
		return t.successStatus
	}
	return t.failStatus
}
