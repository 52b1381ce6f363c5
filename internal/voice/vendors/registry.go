package vendors

import (
	"fmt"
	"sync"
)

// Factory creates a vendor instance from a config map.
type Factory func(config map[string]string) (TTSVendor, error)

// Registry holds named vendor factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// TTS is the global vendor registry; backends register themselves via init().
var TTS = &Registry{factories: make(map[string]Factory)}

// Register adds a named factory to the registry.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create instantiates the named vendor.
func (r *Registry) Create(name string, config map[string]string) (TTSVendor, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown TTS vendor %q", name)
	}
	return factory(config)
}

// List returns all registered vendor names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
