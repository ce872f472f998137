package status

import (
	"fmt"
	"math"
)

// Kind partitions statuses into the two user-facing families plus the
// framework-reserved built-ins.
type Kind string

const (
	// KindFail marks statuses reported when a check found problems.
	// Higher levels are more severe.
	KindFail Kind = "fail"

	// KindSuccess marks statuses reported when a check passed.
	// Lower levels are less severe.
	KindSuccess Kind = "success"

	// KindBuiltIn marks framework-reserved statuses (Default, Skipped,
	// Aborted, Exception). Their levels are sentinels and do not take part
	// in severity ordering.
	KindBuiltIn Kind = "builtin"
)

// Validate checks if the kind is valid.
func (k Kind) Validate() error {
	switch k {
	case KindFail, KindSuccess, KindBuiltIn:
		return nil
	default:
		return fmt.Errorf("invalid status kind: %s", k)
	}
}

// Color is an RGB triplet used by user interfaces to render a status.
type Color [3]uint8

// Status is an immutable, severity-ranked result classification.
//
// Two statuses compare equal when their levels are equal, regardless of
// name or color. Statuses are created through a Registry (or the package
// level constructors backed by DefaultRegistry) and live for the lifetime
// of the process.
type Status struct {
	name  string
	color Color
	level float64
	kind  Kind
}

// Name returns the display name of the status.
func (s Status) Name() string { return s.name }

// Color returns the RGB color assigned to the status.
func (s Status) Color() Color { return s.color }

// Level returns the severity level of the status.
func (s Status) Level() float64 { return s.level }

// Kind returns the family the status belongs to.
func (s Status) Kind() Kind { return s.kind }

// IsFail reports whether the status belongs to the fail family.
func (s Status) IsFail() bool { return s.kind == KindFail }

// IsSuccess reports whether the status belongs to the success family.
func (s Status) IsSuccess() bool { return s.kind == KindSuccess }

// IsBuiltIn reports whether the status is framework-reserved.
func (s Status) IsBuiltIn() bool { return s.kind == KindBuiltIn }

// IsZero reports whether the status is the uninitialized zero value, which
// is not a valid status.
func (s Status) IsZero() bool { return s.kind == "" }

// Equal reports whether two statuses have the same level. Name and color
// are deliberately ignored. Statuses carrying a NaN sentinel level never
// compare equal, matching floating point semantics.
func (s Status) Equal(other Status) bool {
	return s.level == other.level
}

// Less reports whether s is strictly less severe than other, ordering by
// level alone.
func (s Status) Less(other Status) bool {
	return s.level < other.level
}

// Orderable reports whether the status level takes part in severity
// ordering. Built-ins using the NaN sentinel are not orderable.
func (s Status) Orderable() bool {
	return !math.IsNaN(s.level)
}

// String returns a readable representation including kind, name and level.
func (s Status) String() string {
	return fmt.Sprintf("<%s: %s (%g)>", s.kind, s.name, s.level)
}
