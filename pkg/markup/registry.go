package markup

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownRule is returned when a rule name is not registered.
var ErrUnknownRule = errors.New("unknown rule")

// Registry holds named rule factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under name.
// If a factory with the same name already exists, it is replaced.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get retrieves the factory registered under name.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	return factory, ok
}

// Names returns all registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.factories))
	for name := range r.factories {
		result = append(result, name)
	}

	slices.Sort(result)
	return result
}

// Factories resolves names into factories, preserving their order.
func (r *Registry) Factories(names ...string) ([]Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Factory, 0, len(names))
	for _, name := range names {
		factory, ok := r.factories[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
		result = append(result, factory)
	}
	return result, nil
}

// Describe instantiates the named rules with opts, for listing purposes.
func (r *Registry) Describe(opts RuleOptions, names ...string) ([]Rule, error) {
	factories, err := r.Factories(names...)
	if err != nil {
		return nil, err
	}
	return Instantiate(opts, factories...).Rules(), nil
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
