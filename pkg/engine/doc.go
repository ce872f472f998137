// Package engine provides the core types for the Prevet validation engine.
//
// # Overview
//
// Prevet orchestrates sanity checks over production data. A check author
// writes a process; a pipeline TD declares how processes combine in a
// blueprint; the engine turns those declarations into runnable processors.
// The runtime flows through four layers:
//
//  1. Process - The author's diagnostic logic (Checker, Fixer, Tooler)
//  2. Processor - A lazy proxy binding one process to its configuration
//  3. Blueprint - An ordered set of processors sharing settings and links
//  4. Register - The loaded blueprints of a session, one of them current
//
// # Core Domain Types
//
//   - Thread: One axis of validation with its fail and success statuses
//   - Container: Per-thread feedback root carrying the thread's ran status
//   - Feedback: One collected item, selectable or a parent of children
//   - Parameter: A typed, validated process setting (bool/int/float/string)
//   - Tag: Bit flags narrowing what a processor is allowed to do
//   - Link: A cross-processor call chain (check, fix or tool driven)
//   - Catalog: The registry mapping process paths to factories
//
// # Process Contract
//
// A process embeds Base and implements any subset of the optional
// operation interfaces:
//
//	type Checker interface {
//	    Check(ctx context.Context, args Args) error
//	}
//	type Fixer interface {
//	    Fix(ctx context.Context, args Args) error
//	}
//	type Tooler interface {
//	    Tool(ctx context.Context, args Args) (any, error)
//	}
//
// Capabilities are derived from the type itself at registration, so
// listing a catalog never instantiates anything.
//
// # Execution Model
//
// Processor.Check and Processor.Fix run the wrapped method, then the
// resolved driven links, then return the method's error. Links never mask
// the driver's result and a failed check still leaves its feedback
// containers inspectable. Long-running processes cooperate with
// cancellation by calling Base.CheckInterruption at safe points; an
// interrupted run surfaces ErrInterrupted.
//
// # Error Classification
//
// Errors split into configuration errors (bad blueprint, unknown process,
// invalid status override) and execution errors (the process itself
// failed). Use the helpers to branch:
//
//	if engine.IsConfig(err) {
//	    // The blueprint is broken, not the scene.
//	}
//
// # Thread Safety
//
// Catalog, Register and Blueprint are safe for concurrent use. A single
// Processor and the Base it wraps are not: one processor runs one
// operation at a time.
package engine
