package engine

import "fmt"

// Link identifies one of the three process operations as the source or
// target of a cross-processor call chain.
type Link int

const (
	// LinkCheck represents the link to or from a process check method.
	LinkCheck Link = iota

	// LinkFix represents the link to or from a process fix method.
	LinkFix

	// LinkTool represents the link to or from a process tool method.
	LinkTool
)

// String returns the operation name for the link.
func (l Link) String() string {
	switch l {
	case LinkCheck:
		return string(OpCheck)
	case LinkFix:
		return string(OpFix)
	case LinkTool:
		return string(OpTool)
	default:
		return fmt.Sprintf("Link(%d)", int(l))
	}
}

// ParseLink maps an operation name to its link sentinel. Unknown names are
// a config error.
func ParseLink(name string) (Link, error) {
	switch Operation(name) {
	case OpCheck:
		return LinkCheck, nil
	case OpFix:
		return LinkFix, nil
	case OpTool:
		return LinkTool, nil
	default:
		return 0, NewConfigError(fmt.Sprintf("unknown link operation %q", name), nil)
	}
}

// LinkSpec declares one cross-processor call chain: when the Driver
// operation of the declaring processor runs, the Driven operation of the
// Target processor is invoked afterwards.
type LinkSpec struct {
	// Target is the blueprint id of the linked processor.
	Target string

	// Driver is the operation of the declaring processor that triggers
	// the chain.
	Driver Link

	// Driven is the operation invoked on the target processor.
	Driven Link
}
