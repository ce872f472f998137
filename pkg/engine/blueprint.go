package engine

import (
	"fmt"
	"sync"
)

// BlueprintData is the parsed content of one blueprint source: the
// ordered header, the processor descriptions keyed by id, and the
// blueprint-wide settings.
type BlueprintData struct {
	// Header lists the processor ids in execution order. Only ids present
	// in both Header and Descriptions produce a processor.
	Header []string

	// Descriptions maps each processor id to its description.
	Descriptions map[string]Description

	// Settings holds the blueprint-wide settings exposed to processors.
	Settings map[string]any
}

// BlueprintSource loads the data of one blueprint. Implementations wrap a
// file, an embedded document or any other backing store.
type BlueprintSource interface {
	// Name identifies the blueprint within a register.
	Name() string

	// Path locates the source. Blueprints from the same path are
	// considered equal.
	Path() string

	// Load parses the source into blueprint data.
	Load() (*BlueprintData, error)
}

// Blueprint is a lazily built set of processors sharing one source and
// one settings map.
//
// Construction is cheap; the first Processors call loads the source,
// builds every processor and resolves the cross-processor links in a
// second pass. Any invalid description aborts the whole build so a broken
// blueprint never yields a partial processor set.
type Blueprint struct {
	source  BlueprintSource
	catalog *Catalog

	mu         sync.Mutex
	built      bool
	processors []*Processor
	byID       map[string]*Processor
	settings   map[string]any
}

// NewBlueprint wraps a source without loading it.
func NewBlueprint(source BlueprintSource, catalog *Catalog) *Blueprint {
	return &Blueprint{source: source, catalog: catalog}
}

// Name returns the blueprint's name.
func (b *Blueprint) Name() string { return b.source.Name() }

// Path returns the blueprint's source path.
func (b *Blueprint) Path() string { return b.source.Path() }

// Source returns the backing source.
func (b *Blueprint) Source() BlueprintSource { return b.source }

// Equal reports whether both blueprints come from the same path.
func (b *Blueprint) Equal(other *Blueprint) bool {
	return other != nil && b.source.Path() == other.source.Path()
}

// Settings returns the blueprint-wide settings, loading the source if
// needed.
func (b *Blueprint) Settings() (map[string]any, error) {
	if err := b.build(); err != nil {
		return nil, err
	}
	return b.settings, nil
}

// Processors returns every processor of the blueprint in declaration
// order, building them on first call.
func (b *Blueprint) Processors() ([]*Processor, error) {
	if err := b.build(); err != nil {
		return nil, err
	}
	return b.processors, nil
}

// ProcessorByName returns the processor registered under the given header
// id, or a config error when the blueprint declares no such processor.
func (b *Blueprint) ProcessorByName(name string) (*Processor, error) {
	if err := b.build(); err != nil {
		return nil, err
	}
	proc, ok := b.byID[name]
	if !ok {
		return nil, NewConfigError(
			fmt.Sprintf("blueprint %q has no processor named %q", b.source.Name(), name), nil,
		)
	}
	return proc, nil
}

func (b *Blueprint) build() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built {
		return nil
	}

	data, err := b.source.Load()
	if err != nil {
		return err
	}

	settings := data.Settings
	if settings == nil {
		settings = make(map[string]any)
	}

	// Only ids present in both header and descriptions produce a
	// processor, in header order.
	processors := make([]*Processor, 0, len(data.Header))
	byID := make(map[string]*Processor, len(data.Header))
	for _, id := range data.Header {
		desc, ok := data.Descriptions[id]
		if !ok {
			continue
		}
		if _, exists := byID[id]; exists {
			return NewConfigError(
				fmt.Sprintf("blueprint %q declares processor id %q twice", b.source.Name(), id), nil,
			)
		}
		proc, err := NewProcessor(desc, b.catalog, settings)
		if err != nil {
			return err
		}
		proc.id = id
		processors = append(processors, proc)
		byID[id] = proc
	}

	// Links resolve in a second pass so a processor can target any
	// sibling regardless of header order. Batch-excluded siblings map to
	// nil so links targeting them are dropped.
	linked := make(map[string]*Processor, len(byID))
	for id, proc := range byID {
		if proc.InBatch() {
			linked[id] = proc
		} else {
			linked[id] = nil
		}
	}
	for _, proc := range processors {
		proc.ResolveLinks(linked)
	}

	b.built = true
	b.processors = processors
	b.byID = byID
	b.settings = settings
	return nil
}
