package core

import (
	"sort"
	"sync"
)

// Registry maps capability names to backend handles. It is safe for
// concurrent read access; configuration writes are expected to be rare and
// should be serialized by the host. Overriding an already-configured
// capability is allowed and takes effect for all subsequent resolutions.
type Registry struct {
	mu    sync.RWMutex
	table map[string]Capability
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{table: make(map[string]Capability)}
}

// Configure binds a backend handle under the given capability name,
// replacing any previous binding.
func (r *Registry) Configure(name string, handle Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[name] = handle
}

// Resolve returns the backend handle bound to name.
func (r *Registry) Resolve(name string) (Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handle, ok := r.table[name]
	if !ok {
		return nil, &ConfigurationError{Capability: name, Reason: "capability not configured"}
	}
	return handle, nil
}

// Capabilities returns the sorted set of configured capability names.
func (r *Registry) Capabilities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.table))
	for name := range r.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Command forwards runtime settings to the named capabilities. The special
// name "all" targets every configured capability. Capabilities that do not
// implement Commander are skipped silently.
func (r *Registry) Command(names []string, settings map[string]any) error {
	r.mu.RLock()
	targets := make([]Capability, 0, len(r.table))
	all := len(names) == 1 && names[0] == "all"
	for name, handle := range r.table {
		if all || contains(names, name) {
			targets = append(targets, handle)
		}
	}
	r.mu.RUnlock()

	for _, target := range targets {
		commander, ok := target.(Commander)
		if !ok {
			continue
		}
		if err := commander.Command(settings); err != nil {
			return err
		}
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry instance. It is
// initialized empty and populated at process start from configuration.
func DefaultRegistry() *Registry { return defaultRegistry }
