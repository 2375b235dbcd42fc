package sections

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores section builders by type.
type Registry struct {
	mu       sync.RWMutex
	builders map[Type]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[Type]Builder)}
}

// DefaultRegistry returns a registry holding the built-in builders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range DefaultBuilders() {
		r.MustRegister(b)
	}
	return r
}

// Register adds a builder under its Type. Duplicate types return an error.
func (r *Registry) Register(b Builder) error {
	if b == nil {
		return fmt.Errorf("sections: builder is required")
	}
	typ := b.Type()
	if typ == "" {
		return fmt.Errorf("sections: builder type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[typ]; exists {
		return fmt.Errorf("sections: builder %q already registered", typ)
	}
	r.builders[typ] = b
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(b Builder) {
	if err := r.Register(b); err != nil {
		panic(err)
	}
}

// Get retrieves the builder for typ.
func (r *Registry) Get(typ Type) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.builders[typ]
	if !ok {
		return nil, fmt.Errorf("sections: no builder for %q", typ)
	}
	return b, nil
}

// Has reports whether a builder is registered for typ.
func (r *Registry) Has(typ Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.builders[typ]
	return ok
}

// List returns the registered types, sorted.
func (r *Registry) List() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Type, 0, len(r.builders))
	for typ := range r.builders {
		out = append(out, typ)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
