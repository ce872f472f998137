package engine

import (
	"fmt"
	"sync"
)

// Register holds the blueprints of a session and tracks which one is
// current. Blueprints are identified by source path: loading a blueprint
// whose path is already present replaces it in place, so reloading keeps
// the blueprint order stable.
type Register struct {
	catalog *Catalog

	mu         sync.RWMutex
	blueprints []*Blueprint
	current    *Blueprint
}

// NewRegister creates an empty register resolving processes against the
// given catalog.
func NewRegister(catalog *Catalog) *Register {
	return &Register{catalog: catalog}
}

// Catalog returns the catalog blueprints resolve against.
func (r *Register) Catalog() *Catalog { return r.catalog }

// LoadBlueprint wraps the source in a blueprint and adds it to the
// register. A blueprint with the same path replaces the existing one in
// place; otherwise the blueprint is appended. The loaded blueprint
// becomes current and is returned.
func (r *Register) LoadBlueprint(source BlueprintSource) *Blueprint {
	blueprint := NewBlueprint(source, r.catalog)

	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := false
	for i, existing := range r.blueprints {
		if existing.Equal(blueprint) {
			r.blueprints[i] = blueprint
			replaced = true
			break
		}
	}
	if !replaced {
		r.blueprints = append(r.blueprints, blueprint)
	}

	r.current = blueprint
	return blueprint
}

// Blueprints returns the registered blueprints in load order.
func (r *Register) Blueprints() []*Blueprint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Blueprint, len(r.blueprints))
	copy(out, r.blueprints)
	return out
}

// BlueprintByName returns the registered blueprint with the given name,
// or a config error when none matches.
func (r *Register) BlueprintByName(name string) (*Blueprint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, blueprint := range r.blueprints {
		if blueprint.Name() == name {
			return blueprint, nil
		}
	}
	return nil, NewConfigError(fmt.Sprintf("no blueprint named %q", name), nil)
}

// CurrentBlueprint returns the current blueprint, which may be nil when
// the register is empty.
func (r *Register) CurrentBlueprint() *Blueprint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// SetCurrentBlueprint makes the given blueprint current. The blueprint
// must already be registered.
func (r *Register) SetCurrentBlueprint(blueprint *Blueprint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.blueprints {
		if existing == blueprint {
			r.current = blueprint
			return nil
		}
	}
	return NewConfigError(
		fmt.Sprintf("blueprint %q is not registered", blueprint.Name()), nil,
	)
}

// Reload rebuilds every blueprint from its source, discarding all cached
// processors. The current blueprint is carried over by path.
func (r *Register) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()

	currentPath := ""
	if r.current != nil {
		currentPath = r.current.Path()
	}

	for i, blueprint := range r.blueprints {
		fresh := NewBlueprint(blueprint.Source(), r.catalog)
		r.blueprints[i] = fresh
		if fresh.Path() == currentPath {
			r.current = fresh
		}
	}
}
