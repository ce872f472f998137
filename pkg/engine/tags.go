package engine

import (
	"fmt"
	"strings"
)

// Tag is a bit-flag set modifying how a wrapped process may run. Tags are
// declared in the blueprint and resolved by the processor; the process
// itself is unaware of its tags.
//
// A tag can only narrow capability: it never grants an operation the
// process does not implement.
type Tag uint32

const (
	// TagDisabled disables the processor (enabled by default).
	TagDisabled Tag = 1 << iota

	// TagNoCheck removes the check capability of the processor.
	TagNoCheck

	// TagNoFix removes the fix capability of the processor.
	TagNoFix

	// TagNoTool removes the tool capability of the processor.
	TagNoTool

	// TagNonBlocking marks the processor's failures as ignorable in batch
	// pipelines.
	TagNonBlocking

	// TagNoBatch restricts the processor to UI execution.
	TagNoBatch

	// TagNoUI restricts the processor to batch execution.
	TagNoUI
)

// NoTag is the default, representing the absence of any tag.
const NoTag Tag = 0

const (
	// TagOptional marks a processor optional: non blocking and disabled
	// by default.
	TagOptional = TagNonBlocking | TagDisabled

	// TagDependant marks a processor that only runs through links from
	// another processor.
	TagDependant = TagNoCheck | TagNoFix | TagNoTool
)

// Has reports whether all bits of flag are set.
func (t Tag) Has(flag Tag) bool {
	return t&flag == flag
}

var tagNames = map[string]Tag{
	"disabled":     TagDisabled,
	"no_check":     TagNoCheck,
	"no_fix":       TagNoFix,
	"no_tool":      TagNoTool,
	"non_blocking": TagNonBlocking,
	"no_batch":     TagNoBatch,
	"no_ui":        TagNoUI,
	"optional":     TagOptional,
	"dependant":    TagDependant,
}

// ParseTags combines named tags into a single flag set. Unknown names are
// a config error.
func ParseTags(names ...string) (Tag, error) {
	var tag Tag
	for _, name := range names {
		flag, ok := tagNames[strings.ToLower(name)]
		if !ok {
			return NoTag, NewConfigError(fmt.Sprintf("unknown tag %q", name), nil)
		}
		tag |= flag
	}
	return tag, nil
}

// Capabilities are the seven booleans a processor derives from its tags
// and from which operations the underlying process actually implements.
type Capabilities struct {
	// Enabled is false when TagDisabled is set.
	Enabled bool

	// Checkable is true when the process implements check and TagNoCheck
	// is not set.
	Checkable bool

	// Fixable is true when the process implements fix and TagNoFix is not
	// set.
	Fixable bool

	// HasTool is true when the process implements tool and TagNoTool is
	// not set.
	HasTool bool

	// NonBlocking is true when TagNonBlocking is set.
	NonBlocking bool

	// InBatch is false when TagNoBatch is set.
	InBatch bool

	// InUI is false when TagNoUI is set.
	InUI bool
}

// ResolveTags computes all seven capability flags from scratch given the
// tag value and whether the process implements each operation. Each flag
// is independently forced false by its corresponding bit; there is no
// partial application.
func ResolveTags(tag Tag, hasCheck, hasFix, hasTool bool) Capabilities {
	caps := Capabilities{
		Enabled:   true,
		Checkable: hasCheck,
		Fixable:   hasFix,
		HasTool:   hasTool,
		InBatch:   true,
		InUI:      true,
	}

	if tag.Has(TagDisabled) {
		caps.Enabled = false
	}
	if tag.Has(TagNoCheck) {
		caps.Checkable = false
	}
	if tag.Has(TagNoFix) {
		caps.Fixable = false
	}
	if tag.Has(TagNoTool) {
		caps.HasTool = false
	}
	if tag.Has(TagNonBlocking) {
		caps.NonBlocking = true
	}
	if tag.Has(TagNoBatch) {
		caps.InBatch = false
	}
	if tag.Has(TagNoUI) {
		caps.InUI = false
	}

	return caps
}
