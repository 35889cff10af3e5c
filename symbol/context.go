package symbol

import (
	"strings"
	"sync"
)

// ContextRegistry holds the dynamic context accumulated at runtime, keyed
// by explicit type tag. All symbols sharing a tag see the same entries; the
// table lives for the lifetime of the process that owns the registry.
//
// Concurrency discipline: reads are safe from multiple goroutines; writes
// are expected from a single writer (or externally serialized by the host).
type ContextRegistry struct {
	mu      sync.RWMutex
	entries map[string][]string
}

// NewContextRegistry constructs an empty context registry.
func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{entries: make(map[string][]string)}
}

// Add appends an instruction line to the dynamic context of the given tag.
// First access by a previously-unseen tag initializes it to empty.
func (r *ContextRegistry) Add(tag, line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[tag] = append(r.entries[tag], line)
}

// Clear removes all dynamic context for the given tag.
func (r *ContextRegistry) Clear(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, tag)
}

// Lines returns a copy of the dynamic context entries for the given tag.
func (r *ContextRegistry) Lines(tag string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines := r.entries[tag]
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// renderDynamic renders the dynamic context section for a tag, or the empty
// string when no entries exist.
func (r *ContextRegistry) renderDynamic(tag string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines := r.entries[tag]
	if len(lines) == 0 {
		return ""
	}
	return "[DYNAMIC CONTEXT]\n" + strings.Join(lines, "\n")
}

// renderStatic renders the static context section, or the empty string.
func renderStatic(static string) string {
	if static == "" {
		return ""
	}
	return "[STATIC CONTEXT]\n" + static
}

// GlobalContext returns the concatenation of the symbol's rendered static
// context and the dynamic context registered under its type tag. Sections
// that are empty are omitted entirely, headers included.
func (d *Dispatcher) GlobalContext(s Symbol) string {
	static := renderStatic(s.static)
	dynamic := d.contexts.renderDynamic(s.typeTag)
	switch {
	case static == "":
		return dynamic
	case dynamic == "":
		return static
	default:
		return static + "\n" + dynamic
	}
}
