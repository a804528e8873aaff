package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned by Resolve when no renderer carries the
// requested engine name.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry maps engine names (pongo2, gotemplate) to document renderers.
// Names are matched case-insensitively and keep their registration order;
// the first renderer registered answers Resolve("").
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

func engineKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds renderer under its Name(). An engine name can only be taken
// once.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: register: renderer is nil")
	}
	key := engineKey(renderer.Name())
	if key == "" {
		return errors.New("render: register: renderer has no engine name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[key]; taken {
		return fmt.Errorf("render: register: engine %q already has a renderer", key)
	}
	r.byName[key] = renderer
	r.order = append(r.order, key)
	return nil
}

// MustRegister is Register for wiring that cannot fail at runtime.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Resolve returns the renderer for name, or the first registered renderer
// when name is blank.
func (r *Registry) Resolve(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := engineKey(name)
	if key == "" {
		if len(r.order) == 0 {
			return nil, fmt.Errorf("%w: no renderers registered", ErrUnknownRenderer)
		}
		key = r.order[0]
	}
	renderer, ok := r.byName[key]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownRenderer, key, strings.Join(r.order, ", "))
	}
	return renderer, nil
}

// Names lists engine names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[engineKey(name)]
	return ok
}
