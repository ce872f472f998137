package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a fresh process instance.
type Factory func() Process

// CatalogEntry describes one registered process: its dotted path, its
// factory, and which operations its concrete type implements. Capability
// traits are derived at registration time, so a processor can resolve its
// tags without ever instantiating the process.
type CatalogEntry struct {
	// Path is the dotted registration path, e.g. "modeling.FrozenTransforms".
	Path string

	// New creates a fresh process instance.
	New Factory

	// HasCheck reports whether the process type implements Checker.
	HasCheck bool

	// HasFix reports whether the process type implements Fixer.
	HasFix bool

	// HasTool reports whether the process type implements Tooler.
	HasTool bool
}

// Catalog is the explicit registration mechanism replacing dynamic import
// resolution: process packages register their factories under a dotted
// path, and blueprints reference processes by that path.
//
// Registration is append-only and safe for concurrent use from package
// init functions.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]*CatalogEntry
}

// NewCatalog creates an empty process catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]*CatalogEntry)}
}

// RegisterProcess registers a process factory under the given path. The
// capability traits are derived from the concrete type P without calling
// the factory. Registering the same path twice is a config error.
func RegisterProcess[P Process](c *Catalog, path string, factory func() P) error {
	var probe P
	entry := &CatalogEntry{
		Path: path,
		New:  func() Process { return factory() },
	}
	_, entry.HasCheck = any(probe).(Checker)
	_, entry.HasFix = any(probe).(Fixer)
	_, entry.HasTool = any(probe).(Tooler)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[path]; exists {
		return NewConfigError(fmt.Sprintf("process %q already registered", path), nil)
	}
	c.entries[path] = entry
	return nil
}

// MustRegisterProcess is like RegisterProcess but panics on error.
// Intended for package init registration where a duplicate path is a
// programming error.
func MustRegisterProcess[P Process](c *Catalog, path string, factory func() P) {
	if err := RegisterProcess(c, path, factory); err != nil {
		panic(err)
	}
}

// Lookup resolves a process path to its entry. A missing path is a config
// error.
func (c *Catalog) Lookup(path string) (*CatalogEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	if !ok {
		return nil, NewConfigError(fmt.Sprintf("process %q is not registered", path), nil).WithProcess(path)
	}
	return entry, nil
}

// Paths returns all registered process paths, sorted.
func (c *Catalog) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := make([]string, 0, len(c.entries))
	for path := range c.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// DefaultCatalog backs the package level registration helpers. Process
// packages typically register into it from their init functions.
var DefaultCatalog = NewCatalog()

// RegisterDefault registers a process factory in the DefaultCatalog.
func RegisterDefault[P Process](path string, factory func() P) error {
	return RegisterProcess(DefaultCatalog, path, factory)
}

// MustRegisterDefault is like RegisterDefault but panics on error.
func MustRegisterDefault[P Process](path string, factory func() P) {
	MustRegisterProcess(DefaultCatalog, path, factory)
}
