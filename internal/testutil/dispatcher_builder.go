package testutil

import (
	"github.com/hupe1980/symgo/core"
	"github.com/hupe1980/symgo/symbol"
)

// DispatcherBuilder helps construct dispatchers wired to test capabilities
// with fluent chaining. Example:
//
//	d := NewDispatcherBuilder().Reasoning(mock).Embedding(RuneEmbedder()).Build()
type DispatcherBuilder struct {
	registry *core.Registry
}

// NewDispatcherBuilder creates a builder over a fresh registry, keeping the
// process-wide default registry untouched.
func NewDispatcherBuilder() *DispatcherBuilder {
	return &DispatcherBuilder{registry: core.NewRegistry()}
}

// Reasoning wires the reasoning capability (chainable).
func (b *DispatcherBuilder) Reasoning(c core.Capability) *DispatcherBuilder {
	b.registry.Configure(core.CapabilityReasoning, c)
	return b
}

// Embedding wires the embedding capability (chainable).
func (b *DispatcherBuilder) Embedding(c core.Capability) *DispatcherBuilder {
	b.registry.Configure(core.CapabilityEmbedding, c)
	return b
}

// Indexing wires the indexing capability (chainable).
func (b *DispatcherBuilder) Indexing(c core.Capability) *DispatcherBuilder {
	b.registry.Configure(core.CapabilityIndexing, c)
	return b
}

// Capability wires an arbitrarily named capability (chainable).
func (b *DispatcherBuilder) Capability(name string, c core.Capability) *DispatcherBuilder {
	b.registry.Configure(name, c)
	return b
}

// Registry returns the underlying registry for direct assertions.
func (b *DispatcherBuilder) Registry() *core.Registry { return b.registry }

// Build returns a dispatcher over the assembled registry.
func (b *DispatcherBuilder) Build() *symbol.Dispatcher {
	return symbol.NewDispatcher(func(o *symbol.DispatcherOptions) { o.Registry = b.registry })
}

// RuneEmbedder returns a deterministic pseudo-embedding capability: identical
// texts map to identical 16-dimensional vectors, so similarity ranking in
// tests is reproducible without a real embedding backend.
func RuneEmbedder() *core.MockCapability {
	mock := core.NewMockCapability()
	mock.Script = func(req core.Request) (core.Response, error) {
		vector := make([]float32, 16)
		for _, r := range req.Text {
			vector[int(r)%16]++
		}
		return core.Response{Data: vector}, nil
	}
	return mock
}
