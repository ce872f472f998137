package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/prevet/prevet/pkg/status"
)

// DefaultCategory is the fallback category when a description declares
// none.
const DefaultCategory = "Other"

// noDocumentation is the fallback text for processes without any
// documentation.
const noDocumentation = "No documentation available for this process."

// StatusOverride replaces a thread's active fail and/or success status.
// Nil fields leave the corresponding status untouched.
type StatusOverride struct {
	// Fail replaces the thread's active fail status. Must be a fail
	// status.
	Fail *status.Status

	// Success replaces the thread's active success status. Must be a
	// success status.
	Success *status.Status
}

// Description is the declarative metadata a blueprint attaches to one
// process: its catalog path, category, per-operation arguments, tags,
// links, status overrides and arbitrary extra data.
type Description struct {
	// Process is the catalog path of the process.
	Process string

	// Category groups the processor for display. Empty means
	// DefaultCategory.
	Category string

	// Arguments carries the registered arguments per operation.
	Arguments map[Operation]Args

	// Tags narrow the processor's capabilities.
	Tags Tag

	// Links declare cross-processor call chains.
	Links []LinkSpec

	// StatusOverrides replace thread statuses, keyed by thread title.
	StatusOverrides map[string]StatusOverride

	// Extra is arbitrary description data exposed through GetData.
	Extra map[string]any
}

// RunOptions controls one invocation of a processor operation.
type RunOptions struct {
	// Links runs the resolved driven links after the operation, even when
	// the operation failed.
	Links bool

	// Profile times the operation through the processor's profiler.
	Profile bool
}

// DefaultRunOptions runs links without profiling.
var DefaultRunOptions = RunOptions{Links: true}

type linkCall struct {
	target *Processor
	driven Link
}

// Processor is the lazy runtime proxy wrapping one configured process.
//
// Construction resolves the catalog entry and the tags immediately (cheap,
// no instantiation); the process instance, its parameters and its status
// overrides materialize on first use and persist for the processor's
// lifetime. Check, fix and tool calls are never re-instantiated between
// invocations.
type Processor struct {
	id       string
	desc     Description
	category string
	settings map[string]any
	data     map[string]any

	entry *CatalogEntry
	caps  Capabilities

	process Process
	links   map[Link][]linkCall
	profile *Profile
}

// NewProcessor builds a processor from a description. An unregistered
// process path is a fatal config error, surfaced immediately so a broken
// blueprint fails fast.
func NewProcessor(desc Description, catalog *Catalog, settings map[string]any) (*Processor, error) {
	entry, err := catalog.Lookup(desc.Process)
	if err != nil {
		return nil, err
	}

	category := desc.Category
	if category == "" {
		category = DefaultCategory
	}

	data := make(map[string]any, len(desc.Extra))
	for k, v := range desc.Extra {
		data[k] = v
	}

	return &Processor{
		desc:     desc,
		category: category,
		settings: settings,
		data:     data,
		entry:    entry,
		caps:     ResolveTags(desc.Tags, entry.HasCheck, entry.HasFix, entry.HasTool),
		links:    make(map[Link][]linkCall),
		profile:  NewProfile(),
	}, nil
}

// ID returns the id the blueprint registered the processor under,
// falling back to the process name for processors built directly.
func (p *Processor) ID() string {
	if p.id != "" {
		return p.id
	}
	return p.Name()
}

// Path returns the catalog path of the wrapped process.
func (p *Processor) Path() string { return p.desc.Process }

// Name returns the last segment of the catalog path.
func (p *Processor) Name() string {
	if i := strings.LastIndex(p.desc.Process, "."); i >= 0 {
		return p.desc.Process[i+1:]
	}
	return p.desc.Process
}

// NiceName returns the process name split on camel case for display.
func (p *Processor) NiceName() string {
	return camelCaseSplit(p.Name())
}

// Category returns the processor's category.
func (p *Processor) Category() string { return p.category }

// Tags returns the raw tag value from the description.
func (p *Processor) Tags() Tag { return p.desc.Tags }

// IsEnabled reports whether the processor is enabled.
func (p *Processor) IsEnabled() bool { return p.caps.Enabled }

// IsCheckable reports whether the processor can run check.
func (p *Processor) IsCheckable() bool { return p.caps.Checkable }

// IsFixable reports whether the processor can run fix.
func (p *Processor) IsFixable() bool { return p.caps.Fixable }

// HasTool reports whether the processor exposes a tool.
func (p *Processor) HasTool() bool { return p.caps.HasTool }

// IsNonBlocking reports whether the processor's failures are ignorable.
func (p *Processor) IsNonBlocking() bool { return p.caps.NonBlocking }

// InBatch reports whether the processor may run in batch mode.
func (p *Processor) InBatch() bool { return p.caps.InBatch }

// InUI reports whether the processor may run in UI mode.
func (p *Processor) InUI() bool { return p.caps.InUI }

// HasCheckMethod reports whether the process type implements check,
// regardless of tags.
func (p *Processor) HasCheckMethod() bool { return p.entry.HasCheck }

// HasFixMethod reports whether the process type implements fix.
func (p *Processor) HasFixMethod() bool { return p.entry.HasFix }

// HasToolMethod reports whether the process type implements tool.
func (p *Processor) HasToolMethod() bool { return p.entry.HasTool }

// Profile returns the processor's execution profiler.
func (p *Processor) Profile() *Profile { return p.profile }

// Setting returns the blueprint setting for the given name, or the
// fallback when the setting does not exist.
func (p *Processor) Setting(name string, fallback any) any {
	if v, ok := p.settings[name]; ok {
		return v
	}
	return fallback
}

// GetData returns the processor data stored at key, or the fallback.
func (p *Processor) GetData(key string, fallback any) any {
	if v, ok := p.data[key]; ok {
		return v
	}
	return fallback
}

// SetData stores processor data under key.
func (p *Processor) SetData(key string, value any) {
	p.data[key] = value
}

// Documentation returns the wrapped process documentation, falling back
// to a placeholder. Forces instantiation.
func (p *Processor) Documentation() (string, error) {
	proc, err := p.instance()
	if err != nil {
		return "", err
	}
	doc := proc.Base().Documentation()
	if doc == "" {
		doc = noDocumentation
	}
	return fmt.Sprintf("%s\n %s ", doc, p.desc.Process), nil
}

// Process returns the wrapped process instance, creating and configuring
// it on first access.
func (p *Processor) Process() (Process, error) {
	return p.instance()
}

// Parameters returns the parameters declared by the wrapped process.
// Forces instantiation.
func (p *Processor) Parameters() ([]Parameter, error) {
	proc, err := p.instance()
	if err != nil {
		return nil, err
	}
	return proc.Base().Parameters(), nil
}

// GetParameter returns the current value of the named parameter. An
// undeclared parameter name is a config error.
func (p *Processor) GetParameter(name string) (any, error) {
	param, err := p.parameter(name)
	if err != nil {
		return nil, err
	}
	return param.Value(), nil
}

// SetParameter assigns a value to the named parameter and returns the
// value actually stored after cast and validation, which is the previous
// value when the assignment was dropped.
func (p *Processor) SetParameter(name string, value any) (any, error) {
	param, err := p.parameter(name)
	if err != nil {
		return nil, err
	}
	param.Set(value)
	return param.Value(), nil
}

func (p *Processor) parameter(name string) (Parameter, error) {
	proc, err := p.instance()
	if err != nil {
		return nil, err
	}
	param := proc.Base().ParameterByName(name)
	if param == nil {
		return nil, NewConfigError(
			fmt.Sprintf("process %q has no parameter %q", p.desc.Process, name), nil,
		).WithProcess(p.desc.Process)
	}
	return param, nil
}

// SetProgressSink attaches a progress sink to the wrapped process. Forces
// instantiation.
func (p *Processor) SetProgressSink(sink ProgressSink) error {
	proc, err := p.instance()
	if err != nil {
		return err
	}
	proc.Base().SetProgressSink(sink)
	return nil
}

// instance lazily creates the process and applies the status overrides.
func (p *Processor) instance() (Process, error) {
	if p.process != nil {
		return p.process, nil
	}

	proc := p.entry.New()
	if err := p.overrideStatuses(proc); err != nil {
		return nil, err
	}

	p.process = proc
	return proc, nil
}

// overrideStatuses applies the description's status overrides to the
// instantiated process. A nonexistent thread title or a status of the
// wrong kind is a fatal config error.
func (p *Processor) overrideStatuses(proc Process) error {
	for title, override := range p.desc.StatusOverrides {
		thread := proc.Base().ThreadByTitle(title)
		if thread == nil {
			return NewConfigError(
				fmt.Sprintf("process %q has no thread named %q", p.desc.Process, title), nil,
			).WithProcess(p.desc.Process).WithThread(title)
		}

		if override.Fail != nil {
			if err := thread.OverrideFailStatus(*override.Fail); err != nil {
				return err
			}
		}
		if override.Success != nil {
			if err := thread.OverrideSuccessStatus(*override.Success); err != nil {
				return err
			}
		}
	}
	return nil
}

// arguments returns the registered arguments for the operation, defaulting
// to empty.
func (p *Processor) arguments(op Operation) Args {
	if p.desc.Arguments == nil {
		return Args{}
	}
	return p.desc.Arguments[op]
}

// Check runs the wrapped process check. When the process implements no
// check, it returns immediately with no feedback and no instantiation is
// forced. Resolved check-driven links always run after the method, whether
// or not it failed, and the method's error is returned afterwards: a
// deliberate propagate-but-don't-block design for batch pipelines. The
// returned containers are valid and inspectable even on error.
func (p *Processor) Check(ctx context.Context, opts RunOptions) ([]*Container, error) {
	if !p.entry.HasCheck {
		return nil, nil
	}

	proc, err := p.instance()
	if err != nil {
		return nil, err
	}
	checker := proc.(Checker)
	args := p.arguments(OpCheck)

	runErr := p.run(OpCheck, opts, func() error { return checker.Check(ctx, args) })
	if opts.Links {
		p.runLinks(ctx, LinkCheck)
	}

	return proc.Base().Containers(), p.wrapRunError(runErr, OpCheck)
}

// Fix runs the wrapped process fix, following the same shape as Check.
func (p *Processor) Fix(ctx context.Context, opts RunOptions) ([]*Container, error) {
	if !p.entry.HasFix {
		return nil, nil
	}

	proc, err := p.instance()
	if err != nil {
		return nil, err
	}
	fixer := proc.(Fixer)
	args := p.arguments(OpFix)

	runErr := p.run(OpFix, opts, func() error { return fixer.Fix(ctx, args) })
	if opts.Links {
		p.runLinks(ctx, LinkFix)
	}

	return proc.Base().Containers(), p.wrapRunError(runErr, OpFix)
}

// Tool runs the wrapped process tool and returns its arbitrary value,
// following the same shape as Check.
func (p *Processor) Tool(ctx context.Context, opts RunOptions) (any, error) {
	if !p.entry.HasTool {
		return nil, nil
	}

	proc, err := p.instance()
	if err != nil {
		return nil, err
	}
	tooler := proc.(Tooler)
	args := p.arguments(OpTool)

	var value any
	runErr := p.run(OpTool, opts, func() error {
		var toolErr error
		value, toolErr = tooler.Tool(ctx, args)
		return toolErr
	})
	if opts.Links {
		p.runLinks(ctx, LinkTool)
	}

	return value, p.wrapRunError(runErr, OpTool)
}

func (p *Processor) run(op Operation, opts RunOptions, fn func() error) error {
	if opts.Profile {
		return p.profile.Run(op, fn)
	}
	return fn()
}

// wrapRunError classifies a raw method error. Engine errors (notably
// interruption) pass through unchanged; anything else becomes an
// execution error carrying the process and operation context.
func (p *Processor) wrapRunError(err error, op Operation) error {
	if err == nil {
		return nil
	}
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return err
	}
	return NewExecutionError(fmt.Sprintf("%s failed", op), err).
		WithProcess(p.desc.Process).
		WithOperation(op)
}

// ResolveLinks rebuilds the processor's link callables against the sibling
// set. The map must contain every potential target id; a nil value marks a
// sibling excluded from this resolution pass (for instance not applicable
// in batch), and links to it are silently dropped. Resolution is
// batch-wide and must be re-run whenever the exclusion set changes.
func (p *Processor) ResolveLinks(linked map[string]*Processor) {
	p.links = make(map[Link][]linkCall)

	if len(linked) == 0 {
		return
	}

	for _, spec := range p.desc.Links {
		target := linked[spec.Target]
		if target == nil {
			continue
		}
		p.links[spec.Driver] = append(p.links[spec.Driver], linkCall{target: target, driven: spec.Driven})
	}
}

// runLinks invokes every link registered under the given driver. Link
// errors are logged, not propagated: the driver's own result must not be
// masked by a downstream failure.
func (p *Processor) runLinks(ctx context.Context, which Link) {
	for _, call := range p.links[which] {
		var err error
		switch call.driven {
		case LinkCheck:
			_, err = call.target.Check(ctx, DefaultRunOptions)
		case LinkFix:
			_, err = call.target.Fix(ctx, DefaultRunOptions)
		case LinkTool:
			_, err = call.target.Tool(ctx, DefaultRunOptions)
		}
		if err != nil {
			log.Warn().
				Str("driver", p.desc.Process).
				Str("target", call.target.Path()).
				Stringer("driven", call.driven).
				Err(err).
				Msg("Linked processor failed")
		}
	}
}

// camelCaseSplit inserts spaces between the camel case words of a name.
func camelCaseSplit(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
