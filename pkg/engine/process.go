package engine

import (
	"context"
	"fmt"

	"github.com/prevet/prevet/pkg/event"
	"github.com/prevet/prevet/pkg/status"
)

// Operation names the three methods a process may implement.
type Operation string

const (
	// OpCheck is the inspection operation.
	OpCheck Operation = "check"

	// OpFix is the automatic repair operation.
	OpFix Operation = "fix"

	// OpTool is the manual tool operation.
	OpTool Operation = "tool"
)

// Validate checks if the operation is valid.
func (o Operation) Validate() error {
	switch o {
	case OpCheck, OpFix, OpTool:
		return nil
	default:
		return fmt.Errorf("invalid operation: %s", o)
	}
}

// Args carries the positional and keyword arguments a blueprint registered
// for one operation of a process.
type Args struct {
	// Positional holds the ordered argument values.
	Positional []any

	// Keyword holds the named argument values.
	Keyword map[string]any
}

// Process is the contract every check plugin implements. The engine only
// requires access to the process Base; the actual capabilities are the
// optional Checker, Fixer and Tooler interfaces.
type Process interface {
	// Base returns the process runtime state: declared threads, feedback
	// containers, parameters, progress plumbing and the cooperative
	// interruption hook.
	Base() *Base
}

// Checker is implemented by processes that support inspection. Check must
// register feedback via the Base and terminate each thread it cares about
// with exactly one of SetSuccess, SetFail or SetSkipped. Threads left
// untouched remain at the Default status.
type Checker interface {
	Process
	Check(ctx context.Context, args Args) error
}

// Fixer is implemented by processes that can automatically resolve issues
// previously surfaced by Check.
type Fixer interface {
	Process
	Fix(ctx context.Context, args Args) error
}

// Tooler is implemented by processes that expose a manual tool. The return
// value is arbitrary, commonly a UI handle; there is no mandated contract
// on feedback or status.
type Tooler interface {
	Process
	Tool(ctx context.Context, args Args) (any, error)
}

// ProgressSink receives progress updates from a running process. Absence
// of a sink is a valid configuration: all progress calls become no-ops.
type ProgressSink interface {
	// SetValue updates the numeric progress value.
	SetValue(value float64)

	// SetText updates the progress display text.
	SetText(text string)
}

// Base holds the runtime state shared by all processes: the explicitly
// declared threads and their feedback containers, declared parameters,
// progress reporting and the cooperative interruption point.
//
// Authors build a Base in their process constructor, declaring threads and
// parameters through options. Threads must be created per process instance
// so blueprint status overrides stay scoped to one processor.
type Base struct {
	name          string
	documentation string

	threads    []*Thread
	containers map[*Thread]*Container

	params     []Parameter
	paramIndex map[string]Parameter

	progress      ProgressSink
	progressValue float64
	progressText  string

	interruption *event.Event
}

// BaseOption configures a Base under construction.
type BaseOption func(*Base)

// WithThreads declares the process threads, in display order.
func WithThreads(threads ...*Thread) BaseOption {
	return func(b *Base) { b.threads = append(b.threads, threads...) }
}

// WithDocumentation attaches user documentation to the process.
func WithDocumentation(doc string) BaseOption {
	return func(b *Base) { b.documentation = doc }
}

// WithParameters declares the process parameters.
func WithParameters(params ...Parameter) BaseOption {
	return func(b *Base) { b.params = append(b.params, params...) }
}

// NewBase creates the runtime state for a process, building one feedback
// container per declared thread, all initialized to the Default status.
func NewBase(name string, opts ...BaseOption) *Base {
	b := &Base{
		name:         name,
		interruption: event.New("ListenForUserInterruption"),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.paramIndex = make(map[string]Parameter, len(b.params))
	for _, p := range b.params {
		b.paramIndex[p.Name()] = p
	}

	b.makeContainers()
	return b
}

func (b *Base) makeContainers() {
	b.containers = make(map[*Thread]*Container, len(b.threads))
	for _, t := range b.threads {
		b.containers[t] = NewContainer(t)
	}
}

// Name returns the process name.
func (b *Base) Name() string { return b.name }

// Documentation returns the process documentation, if any.
func (b *Base) Documentation() string { return b.documentation }

// Threads returns the declared threads in declaration order.
func (b *Base) Threads() []*Thread { return b.threads }

// ThreadByTitle returns the declared thread with the given title, or nil.
func (b *Base) ThreadByTitle(title string) *Thread {
	for _, t := range b.threads {
		if t.Title() == title {
			return t
		}
	}
	return nil
}

// Parameters returns the declared parameters.
func (b *Base) Parameters() []Parameter { return b.params }

// ParameterByName returns the declared parameter with the given name, or
// nil.
func (b *Base) ParameterByName(name string) Parameter {
	return b.paramIndex[name]
}

// Containers returns the feedback container of every declared thread, in
// thread declaration order.
func (b *Base) Containers() []*Container {
	out := make([]*Container, 0, len(b.threads))
	for _, t := range b.threads {
		out = append(out, b.containers[t])
	}
	return out
}

// Container returns the feedback container for the given thread, or nil
// for an undeclared thread.
func (b *Base) Container(t *Thread) *Container {
	return b.containers[t]
}

// ClearFeedback discards all registered feedback by rebuilding a fresh
// container per thread, reset to the Default status. Check implementations
// that want idempotent re-running call this first.
func (b *Base) ClearFeedback() {
	b.makeContainers()
}

// AddFeedback registers a feedback under the given thread's container.
// Referencing an undeclared thread is a config error.
func (b *Base) AddFeedback(t *Thread, f *Feedback) error {
	c := b.containers[t]
	if c == nil {
		return NewConfigError(
			fmt.Sprintf("process %q has no thread %q", b.name, t.Title()), nil,
		).WithThread(t.Title())
	}
	c.Parent(f)
	return nil
}

// HasFeedback reports whether any feedback is registered for the thread.
func (b *Base) HasFeedback(t *Thread) bool {
	c := b.containers[t]
	return c != nil && len(c.Children()) > 0
}

// FeedbackCount returns the number of feedbacks registered for the thread.
func (b *Base) FeedbackCount(t *Thread) int {
	c := b.containers[t]
	if c == nil {
		return 0
	}
	return len(c.Children())
}

// SetSuccess finalizes the thread's container with its active success
// status.
func (b *Base) SetSuccess(t *Thread) {
	if c := b.containers[t]; c != nil {
		c.SetStatus(t.StatusFor(true))
	}
}

// SetFail finalizes the thread's container with its active fail status.
func (b *Base) SetFail(t *Thread) {
	if c := b.containers[t]; c != nil {
		c.SetStatus(t.StatusFor(false))
	}
}

// SetSkipped marks the thread's container with the built-in Skipped
// status.
func (b *Base) SetSkipped(t *Thread) {
	if c := b.containers[t]; c != nil {
		c.SetStatus(status.Skipped)
	}
}

// SetProgressSink attaches the progress sink updates are forwarded to.
func (b *Base) SetProgressSink(sink ProgressSink) {
	b.progress = sink
}

// SetProgress updates the progress value and text in one call. Negative
// values leave the current value unchanged; empty text leaves the current
// text unchanged.
func (b *Base) SetProgress(value float64, text string) {
	if value >= 0 {
		b.SetProgressValue(value)
	}
	if text != "" {
		b.SetProgressText(text)
	}
}

// SetProgressValue forwards a numeric progress update to the sink. A no-op
// without a sink; unchanged values are skipped to avoid redundant UI
// churn.
func (b *Base) SetProgressValue(value float64) {
	if b.progress == nil {
		return
	}
	if value == b.progressValue {
		return
	}
	b.progressValue = value
	b.progress.SetValue(value)
}

// SetProgressText forwards a progress text update to the sink. A no-op
// without a sink; unchanged text is skipped.
func (b *Base) SetProgressText(text string) {
	if b.progress == nil {
		return
	}
	if text == "" || text == b.progressText {
		return
	}
	b.progressText = text
	b.progress.SetText(text)
}

// InterruptionEvent exposes the event fired by CheckInterruption. An
// external event loop (typically a UI) attaches a callback here to pump
// pending input while a long check runs.
func (b *Base) InterruptionEvent() *event.Event {
	return b.interruption
}

// CheckInterruption is the sole cooperative cancellation point. It fires
// the interruption event so an external loop can process pending input,
// then returns ErrInterrupted when the context has been cancelled.
// Processes must call it periodically inside long loops to be cancellable;
// the engine never preempts a running check.
func (b *Base) CheckInterruption(ctx context.Context) error {
	b.interruption.Emit()

	select {
	case <-ctx.Done():
		return ErrInterrupted
	default:
		return nil
	}
}
