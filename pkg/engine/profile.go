package engine

import (
	"time"

	"github.com/google/uuid"
)

// ProfileRecord holds the timing data of the most recent profiled run of
// one operation.
type ProfileRecord struct {
	// RunID uniquely identifies the profiled run.
	RunID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is how long the run took, recorded whether or not the run
	// failed.
	Duration time.Duration

	// Runs counts how many profiled runs of the operation happened.
	Runs int

	// Failed reports whether the most recent run returned an error.
	Failed bool
}

// Profile records per-operation execution timings for one processor. It
// replaces a full statistical profiler with the data a UI actually
// displays: when an operation last ran, for how long, and whether it
// failed.
type Profile struct {
	records map[Operation]*ProfileRecord
}

// NewProfile creates an empty profile.
func NewProfile() *Profile {
	return &Profile{records: make(map[Operation]*ProfileRecord)}
}

// Run executes fn, timing it under the given operation. The timing is
// recorded even when fn returns an error, and the error is returned
// unchanged.
func (p *Profile) Run(op Operation, fn func() error) error {
	rec := p.records[op]
	if rec == nil {
		rec = &ProfileRecord{}
		p.records[op] = rec
	}

	rec.RunID = uuid.NewString()
	rec.StartedAt = time.Now()
	rec.Runs++

	err := fn()

	rec.Duration = time.Since(rec.StartedAt)
	rec.Failed = err != nil
	return err
}

// Record returns the timing data for the given operation. The second
// return value is false when the operation has not been profiled yet.
func (p *Profile) Record(op Operation) (ProfileRecord, bool) {
	rec := p.records[op]
	if rec == nil {
		return ProfileRecord{}, false
	}
	return *rec, true
}
