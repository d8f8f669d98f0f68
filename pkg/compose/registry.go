package compose

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores handles by name, providing lookup for manifest composition
// references and CLI template selection. Duplicate names are rejected.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]*Handle
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		handles: make(map[string]*Handle),
	}
}

// Register adds a handle under the given name.
func (r *Registry) Register(name string, h *Handle) error {
	if h == nil {
		return fmt.Errorf("compose: handle is required")
	}
	if name == "" {
		return fmt.Errorf("compose: handle name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handles[name]; exists {
		return fmt.Errorf("compose: handle %q already registered", name)
	}

	r.handles[name] = h
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, h *Handle) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Get retrieves a handle by name.
func (r *Registry) Get(name string) (*Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handles[name]
	if !ok {
		return nil, fmt.Errorf("compose: handle %q not found", name)
	}
	return h, nil
}

// Has reports whether a handle is registered under the given name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.handles[name]
	return ok
}

// List returns a sorted list of registered names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handles))
	for name := range r.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
