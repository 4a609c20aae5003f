package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrRendererNotFound is returned when a lookup names an unregistered
// renderer.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry maps renderer names to implementations. It is safe for concurrent
// use; hosts typically fill it at startup and only read afterwards.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  string
}

// NewRegistry creates a registry holding the given renderers. The first one
// becomes the fallback used by Resolve when a request names no renderer.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a renderer under its Name(). Duplicate names are rejected.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.renderers == nil {
		r.renderers = make(map[string]Renderer)
	}
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	if r.fallback == "" {
		r.fallback = name
	}
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// SetFallback selects the renderer Resolve returns for an empty name.
func (r *Registry) SetFallback(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.renderers[name]; !ok {
		return fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	r.fallback = name
	return nil
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// Resolve returns the named renderer, or the fallback when name is empty.
func (r *Registry) Resolve(name string) (Renderer, error) {
	if name == "" {
		r.mu.RLock()
		name = r.fallback
		r.mu.RUnlock()
	}
	return r.Get(name)
}

// List returns the registered names sorted alphabetically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}
