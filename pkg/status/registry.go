package status

import (
	"math"
	"sync"
)

// Registry keeps track of every status constructed through it, enabling
// "all statuses of kind X" and "lowest/highest severity" queries.
//
// A Registry is append-only: statuses are registered once and never
// removed. The zero value is not usable; call NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	statuses []Status
}

// NewRegistry creates an empty status registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewFail constructs a fail status and registers it. Fail levels should be
// greater than zero; the higher the level, the more severe the status.
func (r *Registry) NewFail(name string, color Color, level float64) Status {
	return r.register(Status{name: name, color: color, level: level, kind: KindFail})
}

// NewSuccess constructs a success status and registers it. Success levels
// should be lower than zero; the lower the level, the less severe the
// status.
func (r *Registry) NewSuccess(name string, color Color, level float64) Status {
	return r.register(Status{name: name, color: color, level: level, kind: KindSuccess})
}

// newBuiltIn constructs a framework-reserved status. Creating built-ins is
// reserved for the framework itself.
func (r *Registry) newBuiltIn(name string, color Color, level float64) Status {
	return r.register(Status{name: name, color: color, level: level, kind: KindBuiltIn})
}

func (r *Registry) register(s Status) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s)
	return s
}

// All returns every status registered so far, in registration order.
func (r *Registry) All() []Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Status, len(r.statuses))
	copy(out, r.statuses)
	return out
}

// ByName returns the first status matching the given name. The second
// return value is false when no status matches; a miss is not an error.
func (r *Registry) ByName(name string) (Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.statuses {
		if s.name == name {
			return s, true
		}
	}
	return Status{}, false
}

// Fails returns every registered fail status.
func (r *Registry) Fails() []Status {
	return r.byKind(KindFail)
}

// Successes returns every registered success status.
func (r *Registry) Successes() []Status {
	return r.byKind(KindSuccess)
}

func (r *Registry) byKind(kind Kind) []Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Status
	for _, s := range r.statuses {
		if s.kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// LowestFail returns the least severe fail status. The second return value
// is false when no fail status has been registered.
func (r *Registry) LowestFail() (Status, bool) {
	return r.extremum(KindFail, false)
}

// HighestFail returns the most severe fail status.
func (r *Registry) HighestFail() (Status, bool) {
	return r.extremum(KindFail, true)
}

// LowestSuccess returns the least severe success status.
func (r *Registry) LowestSuccess() (Status, bool) {
	return r.extremum(KindSuccess, false)
}

// HighestSuccess returns the most severe success status.
func (r *Registry) HighestSuccess() (Status, bool) {
	return r.extremum(KindSuccess, true)
}

func (r *Registry) extremum(kind Kind, highest bool) (Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best Status
	found := false
	for _, s := range r.statuses {
		if s.kind != kind || math.IsNaN(s.level) {
			continue
		}
		if !found {
			best = s
			found = true
			continue
		}
		if highest && s.level > best.level {
			best = s
		}
		if !highest && s.level < best.level {
			best = s
		}
	}
	return best, found
}

// DefaultRegistry backs the package level constructors and holds the stock
// statuses declared below. Sessions that want full isolation can construct
// their own Registry instead.
var DefaultRegistry = NewRegistry()

// NewFail constructs a fail status in the DefaultRegistry.
func NewFail(name string, color Color, level float64) Status {
	return DefaultRegistry.NewFail(name, color, level)
}

// NewSuccess constructs a success status in the DefaultRegistry.
func NewSuccess(name string, color Color, level float64) Status {
	return DefaultRegistry.NewSuccess(name, color, level)
}

// Stock statuses. Default is the initial state of every thread container;
// Skipped, Aborted and Exception are the framework-reserved terminal states
// carrying the NaN sentinel level.
var (
	Default   = DefaultRegistry.newBuiltIn("Default", Color{60, 60, 60}, 0)
	Skipped   = DefaultRegistry.newBuiltIn("Skipped", Color{85, 85, 85}, math.NaN())
	Aborted   = DefaultRegistry.newBuiltIn("Aborted", Color{100, 100, 100}, math.NaN())
	Exception = DefaultRegistry.newBuiltIn("Exception", Color{125, 125, 125}, math.NaN())

	Success = DefaultRegistry.NewSuccess("Success", Color{0, 128, 0}, -2)
	Correct = DefaultRegistry.NewSuccess("Correct", Color{22, 194, 15}, -1)
	Warning = DefaultRegistry.NewFail("Warning", Color{196, 98, 16}, 1)
	Error   = DefaultRegistry.NewFail("Error", Color{150, 0, 0}, 2)
)
