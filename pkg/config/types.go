package config

// BlueprintFile is the top-level structure of a blueprint YAML document.
type BlueprintFile struct {
	// Settings holds the blueprint-wide settings exposed to processors.
	Settings map[string]any `yaml:"settings"`

	// Header lists the processor ids in execution order. Only ids present
	// in both header and descriptions produce a processor.
	Header []string `yaml:"header" validate:"required,min=1,dive,required"`

	// Descriptions maps each processor id to its description.
	Descriptions map[string]ProcessorConfig `yaml:"descriptions" validate:"required,min=1,dive"`
}

// ProcessorConfig describes one processor in a blueprint file.
type ProcessorConfig struct {
	// Process is the catalog path of the process.
	Process string `yaml:"process" validate:"required"`

	// Category groups the processor for display.
	Category string `yaml:"category"`

	// Tags lists tag names narrowing the processor's capabilities.
	Tags []string `yaml:"tags"`

	// Arguments maps operation names (check, fix, tool) to registered
	// arguments.
	Arguments map[string]ArgumentsConfig `yaml:"arguments"`

	// Links declares cross-processor call chains.
	Links []LinkConfig `yaml:"links" validate:"dive"`

	// Statuses replaces thread statuses, keyed by thread title.
	Statuses map[string]StatusOverrideConfig `yaml:"statuses"`

	// Data is arbitrary extra data attached to the processor.
	Data map[string]any `yaml:"data"`
}

// ArgumentsConfig carries the registered arguments for one operation.
type ArgumentsConfig struct {
	// Args holds the ordered positional arguments.
	Args []any `yaml:"args"`

	// Kwargs holds the keyword arguments.
	Kwargs map[string]any `yaml:"kwargs"`
}

// LinkConfig declares one cross-processor call chain.
type LinkConfig struct {
	// Target is the header id of the linked processor within the same
	// blueprint.
	Target string `yaml:"target" validate:"required"`

	// Driver is the operation of the declaring processor that triggers
	// the chain.
	Driver string `yaml:"driver" validate:"required,oneof=check fix tool"`

	// Driven is the operation invoked on the target processor.
	Driven string `yaml:"driven" validate:"required,oneof=check fix tool"`
}

// StatusOverrideConfig replaces a thread's statuses by name. Empty fields
// leave the corresponding status untouched.
type StatusOverrideConfig struct {
	// Fail names the replacement fail status.
	Fail string `yaml:"fail"`

	// Success names the replacement success status.
	Success string `yaml:"success"`
}
