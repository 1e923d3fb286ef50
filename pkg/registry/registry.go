package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound is returned when no constructor is registered for a type.
var ErrNotFound = errors.New("registry: constructor not found")

// Registry maps editor type names to constructors. It is an explicit value
// passed to list controllers; there is no process-wide default. Names are
// trimmed and lower-cased.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		ctors: make(map[string]Constructor),
	}
}

// Register associates ctor with name. Duplicate names return an error; use a
// Clone when a form needs to override a constructor.
func (r *Registry) Register(name string, ctor Constructor) error {
	key := normalize(name)
	if key == "" {
		return errors.New("registry: type name is required")
	}
	if ctor == nil {
		return fmt.Errorf("registry: constructor for %q is nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ctors[key]; exists {
		return fmt.Errorf("registry: type %q already registered", key)
	}
	r.ctors[key] = ctor
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, ctor Constructor) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Replace registers ctor under name, overriding any existing entry.
func (r *Registry) Replace(name string, ctor Constructor) error {
	key := normalize(name)
	if key == "" {
		return errors.New("registry: type name is required")
	}
	if ctor == nil {
		return fmt.Errorf("registry: constructor for %q is nil", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[key] = ctor
	return nil
}

// Get retrieves the constructor registered for name.
func (r *Registry) Get(name string) (Constructor, error) {
	key := normalize(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	ctor, ok := r.ctors[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return ctor, nil
}

// Has reports whether a constructor is registered for name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.ctors[normalize(name)]
	return ok
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy so callers can override entries without
// affecting other forms.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, ctor := range r.ctors {
		cloned.ctors[name] = ctor
	}
	return cloned
}

// Build resolves cfg.Schema.Type and invokes its constructor.
func (r *Registry) Build(cfg Config) (Child, error) {
	if r == nil {
		return nil, errors.New("registry: registry is nil")
	}
	ctor, err := r.Get(cfg.Schema.Type)
	if err != nil {
		return nil, err
	}
	child, err := ctor(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: build %q: %w", normalize(cfg.Schema.Type), err)
	}
	if child == nil {
		return nil, fmt.Errorf("registry: constructor for %q returned nil", normalize(cfg.Schema.Type))
	}
	return child, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
