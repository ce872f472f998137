package engine

import (
	"fmt"
	"reflect"

	"github.com/prevet/prevet/pkg/status"
)

// Selector is the per-host selection adapter. Each host application
// provides its own implementation of "select these objects" and "name this
// object". The engine core never calls a Selector itself; it is consumed
// only by author-supplied select actions.
type Selector interface {
	// Select makes item the host application's current selection, either
	// replacing it or adding to it.
	Select(item any, replace bool) error

	// Deselect removes item from the host application's selection.
	Deselect(item any) error

	// Display returns the host's display name for item.
	Display(item any) string
}

// SelectAction is the selection behavior attached to a selectable feedback
// node. The replace flag tells the action whether to replace the current
// host selection or add to it.
type SelectAction func(item any, replace bool)

// DeselectAction is the deselection behavior attached to a selectable
// feedback node.
type DeselectAction func(item any)

// Feedback is a single reported finding holding an arbitrary inspected
// item, organized as a tree.
//
// Equality between feedback nodes considers the carried item only;
// selectability and children are ignored so that deduplication works on
// the inspected data alone.
type Feedback struct {
	item       any
	selectable bool
	children   []*Feedback

	selectAction   SelectAction
	deselectAction DeselectAction
}

// FeedbackOption configures a feedback node under construction.
type FeedbackOption func(*Feedback)

// Selectable marks the node selectable and attaches its selection
// behavior. A selectable node performs its own action and does not cascade
// to children.
func Selectable(sel SelectAction, desel DeselectAction) FeedbackOption {
	return func(f *Feedback) {
		f.selectable = true
		f.selectAction = sel
		f.deselectAction = desel
	}
}

// NewFeedback creates a feedback node carrying the given inspected item.
// Without options the node is non-selectable: selection cascades to its
// children instead.
func NewFeedback(item any, opts ...FeedbackOption) *Feedback {
	f := &Feedback{item: item}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Item returns the inspected data carried by the node.
func (f *Feedback) Item() any { return f.item }

// IsSelectable reports whether the node performs its own selection action.
func (f *Feedback) IsSelectable() bool { return f.selectable }

// Children returns the node's child feedbacks in attach order.
func (f *Feedback) Children() []*Feedback { return f.children }

// Parent appends child feedbacks, building a hierarchy. There is no cycle
// detection; the caller must not construct cycles.
func (f *Feedback) Parent(children ...*Feedback) {
	f.children = append(f.children, children...)
}

// Equal reports whether two feedback nodes carry the same item.
// Selectability and children are not part of node identity.
func (f *Feedback) Equal(other *Feedback) bool {
	if other == nil {
		return false
	}
	return reflect.DeepEqual(f.item, other.item)
}

// Select applies the selection cascade. A selectable node runs its own
// action and does not delegate. A non-selectable node delegates to all
// children: the first child replaces the current host selection (when
// replace is true), subsequent children add to it. Returns the replace
// state left for any following selection.
func (f *Feedback) Select(replace bool) bool {
	if f.selectable {
		if f.selectAction != nil {
			f.selectAction(f.item, replace)
		}
		return false
	}
	for _, child := range f.children {
		replace = child.Select(replace)
	}
	return replace
}

// Deselect applies the deselection cascade, mirroring Select.
func (f *Feedback) Deselect() {
	if f.selectable {
		if f.deselectAction != nil {
			f.deselectAction(f.item)
		}
		return
	}
	for _, child := range f.children {
		child.Deselect()
	}
}

// String returns the string form of the carried item.
func (f *Feedback) String() string {
	return fmt.Sprint(f.item)
}

// Container is the feedback root for one thread. It carries the thread's
// resolved status, which is mutable in place: a deliberate, narrow
// exception so a container's severity can be finalized after all children
// have been attached.
type Container struct {
	thread   *Thread
	status   status.Status
	children []*Feedback
}

// NewContainer creates a container for the given thread, initialized to
// the built-in Default status.
func NewContainer(thread *Thread) *Container {
	return &Container{
		thread: thread,
		status: status.Default,
	}
}

// Thread returns the thread this container collects feedback for.
func (c *Container) Thread() *Thread { return c.thread }

// Status returns the container's current status.
func (c *Container) Status() status.Status { return c.status }

// SetStatus mutates the stored status in place.
func (c *Container) SetStatus(s status.Status) { c.status = s }

// Children returns the feedbacks registered under this container.
func (c *Container) Children() []*Feedback { return c.children }

// Parent appends child feedbacks to the container.
func (c *Container) Parent(children ...*Feedback) {
	c.children = append(c.children, children...)
}

// Select cascades selection to the container's children: the first child
// replaces the current host selection (when replace is true), subsequent
// children add to it. A container has no selection action of its own, so
// it always delegates. Returns the replace state left for any following
// selection.
func (c *Container) Select(replace bool) bool {
	for _, child := range c.children {
		replace = child.Select(replace)
	}
	return replace
}

// Deselect cascades deselection to the container's children.
func (c *Container) Deselect() {
	for _, child := range c.children {
		child.Deselect()
	}
}

// String returns the title of the container's thread.
func (c *Container) String() string {
	return c.thread.Title()
}
