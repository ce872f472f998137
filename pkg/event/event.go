package event

import (
	"github.com/rs/zerolog/log"
)

// Callback is a function invoked when an event is emitted.
type Callback func(args ...any)

// Event is a named list of callbacks invoked in registration order.
//
// There is no isolation between callbacks: a panicking callback aborts the
// remaining ones and propagates to the emitter.
type Event struct {
	name      string
	callbacks []Callback
}

// New creates an event with the given name.
func New(name string) *Event {
	return &Event{name: name}
}

// Name returns the event name.
func (e *Event) Name() string { return e.name }

// AddCallback registers a callback. A nil callback is rejected with a
// logged warning and a false return instead of an error.
func (e *Event) AddCallback(cb Callback) bool {
	if cb == nil {
		log.Warn().
			Str("event", e.name).
			Msg("Failed to register callback: callback is nil")
		return false
	}
	e.callbacks = append(e.callbacks, cb)
	return true
}

// Emit invokes all registered callbacks in registration order with the
// provided arguments.
func (e *Event) Emit(args ...any) {
	for _, cb := range e.callbacks {
		cb(args...)
	}
}
