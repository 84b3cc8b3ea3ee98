package module

import (
	"fmt"
	"sync"

	"github.com/kingrea/rollup/rollup"
)

// Registry maintains the modules known to a parent, in registration order.
// Order matters: it is the order their export sets are concatenated when
// the parent rolls up its export list.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	modules map[string]Module
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]Module{}}
}

// Register installs a module. Returns an error if the module is nil, its
// info block fails validation, or the ID is already taken.
func (r *Registry) Register(mod Module) error {
	if mod == nil {
		return fmt.Errorf("module: module is required")
	}
	info := mod.Info()
	if err := info.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[info.ID]; exists {
		return fmt.Errorf("module: %s already registered", info.ID)
	}
	r.order = append(r.order, info.ID)
	r.modules[info.ID] = mod
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(mod Module) {
	if err := r.Register(mod); err != nil {
		panic(err)
	}
}

// Lookup returns the module registered under id.
func (r *Registry) Lookup(id string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mod, ok := r.modules[id]
	return mod, ok
}

// IDs returns the registered module identifiers in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Modules returns the registered modules in registration order.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mods := make([]Module, 0, len(r.order))
	for _, id := range r.order {
		mods = append(mods, r.modules[id])
	}
	return mods
}

// ExportList rolls up the effective export set of every registered module,
// in registration order, into the deduplicated name list the parent should
// publish as its own public API.
func (r *Registry) ExportList() []string {
	mods := r.Modules()
	exporters := make([]rollup.Exporter, len(mods))
	for i, mod := range mods {
		exporters[i] = mod
	}
	return rollup.Rollup(exporters...)
}
