package runner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/prevet/prevet/pkg/engine"
	"github.com/prevet/prevet/pkg/status"
	"github.com/prevet/prevet/pkg/telemetry"
)

// Options controls one batch run.
type Options struct {
	// FixFailures runs fix and a second check on every fixable processor
	// whose first check failed.
	FixFailures bool

	// Profile times every operation through the processor profilers.
	Profile bool
}

// Result captures the outcome of one processor within a run.
type Result struct {
	// Processor is the processor that ran.
	Processor *engine.Processor

	// Status is the processor's resolved outcome.
	Status status.Status

	// Containers holds the feedback containers after the run, nil when
	// the processor was skipped.
	Containers []*engine.Container

	// Err is the execution error, if any.
	Err error

	// Fixed is true when a fix ran and the second check passed.
	Fixed bool

	// Blocking is false for skipped and non-blocking processors.
	Blocking bool

	// Duration is the wall time of the processor's operations.
	Duration time.Duration
}

// Report summarizes one batch run over a blueprint.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string

	// Blueprint is the name of the ran blueprint.
	Blueprint string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is the total wall time of the run.
	Duration time.Duration

	// Results holds one entry per ran processor, in blueprint order.
	Results []Result

	// WorstStatus is the most severe blocking outcome of the run.
	WorstStatus status.Status

	// Interrupted is true when the run was cancelled before completion.
	Interrupted bool
}

// Failed reports whether any blocking processor failed or errored.
func (r *Report) Failed() bool {
	return severityRank(r.WorstStatus) >= rankFail
}

// Runner executes blueprints in batch mode: sequentially, checks only,
// honoring each processor's tags.
type Runner struct {
	tel *telemetry.Telemetry
}

// New creates a runner reporting through the given telemetry stack.
func New(tel *telemetry.Telemetry) *Runner {
	return &Runner{tel: tel}
}

// Run checks every batch-eligible processor of the blueprint in
// declaration order. Disabled processors, processors excluded from batch
// and processors without a runnable check are skipped. Link resolution
// happened at blueprint build; links and driven targets run as declared.
//
// A cancelled context aborts the run after the current processor; the
// partial report is still returned alongside the interruption error.
func (r *Runner) Run(ctx context.Context, blueprint *engine.Blueprint, opts Options) (*Report, error) {
	logger := r.tel.Logger.WithBlueprint(blueprint.Name())

	report := &Report{
		RunID:       uuid.NewString(),
		Blueprint:   blueprint.Name(),
		StartedAt:   time.Now(),
		WorstStatus: status.Default,
	}
	logger = logger.WithRunID(report.RunID)

	processors, err := blueprint.Processors()
	if err != nil {
		return nil, err
	}

	runCtx, span := r.tel.Tracer.StartRunSpan(ctx, report.RunID, blueprint.Name())
	defer span.End()

	r.tel.Metrics.RecordRunStarted(blueprint.Name())
	logger.Infof("Starting run with %d processors", len(processors))

	var runErr error
	for _, proc := range processors {
		if !eligible(proc) {
			logger.WithProcess(proc.Path()).Debug("Processor skipped")
			continue
		}

		result := r.runProcessor(runCtx, logger, proc, opts)
		report.Results = append(report.Results, result)

		if result.Blocking {
			report.WorstStatus = worse(report.WorstStatus, result.Status)
		}

		if errors.Is(result.Err, engine.ErrInterrupted) || runCtx.Err() != nil {
			report.Interrupted = true
			report.WorstStatus = worse(report.WorstStatus, status.Aborted)
			runErr = result.Err
			if runErr == nil {
				runErr = engine.ErrInterrupted
			}
			logger.Warn("Run interrupted")
			break
		}
	}

	report.Duration = time.Since(report.StartedAt)
	r.tel.Metrics.RecordRunCompleted(blueprint.Name(), report.WorstStatus.Name(), report.Duration)
	if runErr != nil {
		telemetry.RecordError(span, runErr)
	} else {
		telemetry.RecordSuccess(span)
	}

	logger.WithField("status", report.WorstStatus.Name()).
		Infof("Run finished in %s", report.Duration)
	return report, runErr
}

// eligible reports whether a processor takes part in a batch run.
func eligible(proc *engine.Processor) bool {
	return proc.IsEnabled() && proc.InBatch() && proc.IsCheckable()
}

func (r *Runner) runProcessor(ctx context.Context, logger *telemetry.Logger, proc *engine.Processor, opts Options) Result {
	procLogger := logger.WithProcess(proc.Path())
	opCtx, span := r.tel.Tracer.StartOperationSpan(ctx, proc.Path(), string(engine.OpCheck))
	defer span.End()

	runOpts := engine.RunOptions{Links: true, Profile: opts.Profile}
	timer := telemetry.NewTimer()

	containers, err := proc.Check(opCtx, runOpts)
	result := Result{
		Processor:  proc,
		Containers: containers,
		Err:        err,
		Blocking:   !proc.IsNonBlocking(),
		Status:     resolveStatus(containers, err),
	}

	if opts.FixFailures && err == nil && result.Status.IsFail() && proc.IsFixable() {
		result = r.fixAndRecheck(opCtx, procLogger, proc, runOpts, result)
	}

	result.Duration = timer.Duration()
	r.tel.Metrics.RecordOperation(proc.Path(), string(engine.OpCheck), result.Status.Name(), result.Duration)
	r.recordFeedback(proc, result.Containers)

	if err != nil {
		telemetry.RecordError(span, err)
		var engineErr *engine.Error
		if errors.As(err, &engineErr) {
			r.tel.Metrics.RecordError(string(engineErr.Class))
		}
		procLogger.WithError(err).Error("Check failed")
	} else {
		telemetry.RecordSuccess(span)
		procLogger.WithField("status", result.Status.Name()).Debug("Check finished")
	}

	return result
}

func (r *Runner) fixAndRecheck(ctx context.Context, logger *telemetry.Logger, proc *engine.Processor, runOpts engine.RunOptions, result Result) Result {
	logger.Info("Check failed, attempting fix")

	if _, err := proc.Fix(ctx, runOpts); err != nil {
		result.Err = err
		result.Status = resolveStatus(result.Containers, err)
		return result
	}

	containers, err := proc.Check(ctx, runOpts)
	result.Containers = containers
	result.Err = err
	result.Status = resolveStatus(containers, err)
	result.Fixed = err == nil && !result.Status.IsFail()
	return result
}

func (r *Runner) recordFeedback(proc *engine.Processor, containers []*engine.Container) {
	for _, container := range containers {
		r.tel.Metrics.SetFeedbackCount(
			proc.Path(),
			container.Thread().Title(),
			float64(len(container.Children())),
		)
	}
}

// resolveStatus folds a processor's containers and error into one status.
// An interruption maps to Aborted and any other error to Exception;
// otherwise the worst container status wins.
func resolveStatus(containers []*engine.Container, err error) status.Status {
	if err != nil {
		if errors.Is(err, engine.ErrInterrupted) {
			return status.Aborted
		}
		return status.Exception
	}

	if len(containers) == 0 {
		return status.Default
	}
	resolved := containers[0].Status()
	for _, container := range containers[1:] {
		resolved = worse(resolved, container.Status())
	}
	return resolved
}

// worse picks the more severe of two statuses. Exception outranks
// everything, then Aborted, then fail statuses by level, then Default,
// then Skipped, then success statuses by level.
func worse(a, b status.Status) status.Status {
	if severityRank(a) != severityRank(b) {
		if severityRank(a) > severityRank(b) {
			return a
		}
		return b
	}

	// Same rank: orderable statuses compare by level, higher is worse.
	if a.Orderable() && b.Orderable() && b.Level() > a.Level() {
		return b
	}
	return a
}

const (
	rankSuccess = iota
	rankSkipped
	rankDefault
	rankFail
	rankAborted
	rankException
)

// severityRank buckets statuses for the worse comparison. Built-ins carry
// NaN levels and never compare equal by level, so they are told apart by
// name.
func severityRank(s status.Status) int {
	if s.IsBuiltIn() {
		switch s.Name() {
		case status.Exception.Name():
			return rankException
		case status.Aborted.Name():
			return rankAborted
		case status.Skipped.Name():
			return rankSkipped
		default:
			return rankDefault
		}
	}
	if s.IsFail() {
		return rankFail
	}
	return rankSuccess
}
