// ABOUTME: Thread-safe registry mapping capability names to implementations.
// ABOUTME: Rejects duplicate names and preserves registration order for listings.

package capability

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrDuplicateCapability indicates a capability with the same name is already registered.
var ErrDuplicateCapability = errors.New("duplicate capability")

// ErrCapabilityNotFound indicates the requested capability is not registered.
var ErrCapabilityNotFound = errors.New("capability not found")

// ErrNoCapabilities indicates the load phase produced an empty registry.
var ErrNoCapabilities = errors.New("no capabilities registered")

// entry binds a descriptor to its implementation.
type entry struct {
	descriptor Descriptor
	impl       Invoker
}

// Registry maintains the mapping from capability name to implementation and
// from category to capability names. It is populated during startup and only
// read afterward; all operations are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	order      []string
	byCategory map[Category][]string
	logger     *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		entries:    make(map[string]*entry),
		byCategory: make(map[Category][]string),
		logger:     logger,
	}
}

// Register adds a capability under its descriptor name.
// Returns ErrDuplicateCapability if the name is already taken; the existing
// registration is never overwritten.
func (r *Registry) Register(desc Descriptor, impl Invoker) error {
	if desc.Name == "" {
		return errors.New("capability name is required")
	}
	if impl == nil {
		return fmt.Errorf("capability %q: implementation is required", desc.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[desc.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCapability, desc.Name)
	}

	r.entries[desc.Name] = &entry{descriptor: desc, impl: impl}
	r.order = append(r.order, desc.Name)
	r.byCategory[desc.Category] = append(r.byCategory[desc.Category], desc.Name)

	r.logger.Info("capability registered",
		"name", desc.Name,
		"category", desc.Category,
		"operations", len(desc.SupportedOperations),
		"total", len(r.entries),
	)
	return nil
}

// Resolve returns the implementation registered under name.
// Returns ErrCapabilityNotFound if absent.
func (r *Registry) Resolve(name string) (Invoker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCapabilityNotFound, name)
	}
	return e.impl, nil
}

// Descriptor returns the descriptor registered under name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Descriptor{}, false
	}
	return e.descriptor, true
}

// ListByCategory returns the names registered in the category, in
// registration order. Returns an empty slice when none are registered.
func (r *Registry) ListByCategory(cat Category) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.byCategory[cat]
	result := make([]string, len(names))
	copy(result, names)
	return result
}

// ListAll returns every registered capability name in registration order.
func (r *Registry) ListAll() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, len(r.order))
	copy(result, r.order)
	return result
}

// Descriptors returns every registered descriptor in registration order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.entries[name].descriptor)
	}
	return result
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
