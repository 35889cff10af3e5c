package core

import (
	"context"
	"strings"
	"sync"
)

// Well-known capability names used by the default wiring. Callers may
// register additional capabilities under arbitrary names.
const (
	CapabilityReasoning = "reasoning"
	CapabilityEmbedding = "embedding"
	CapabilityIndexing  = "indexing"
)

// Request is a single rendered backend invocation. For reasoning backends
// Text carries the live query and System the assembled instruction preamble.
// Non-chat capabilities (embedding, indexing) read Text and the structured
// Overrides and ignore System.
type Request struct {
	// System holds the instruction preamble (contexts, examples). Optional.
	System string
	// Text holds the rendered request text or raw input.
	Text string
	// Stop lists markers at which the backend should stop generating.
	Stop []string
	// Overrides carries backend-specific keyword overrides (temperature,
	// max_tokens, index operation parameters, ...). Reserved keys are
	// validated by the dispatcher before a request is built.
	Overrides map[string]any
}

// Override returns the raw override value for key, or nil.
func (r Request) Override(key string) any {
	if r.Overrides == nil {
		return nil
	}
	return r.Overrides[key]
}

// Response is the raw backend reply. Text is set for textual replies; Data
// carries structured results (embedding vectors, index matches). Exactly one
// of the two is meaningful for a given capability.
type Response struct {
	Text string
	Data any
}

// Capability is the minimal contract every backend handle exposes. Invoke is
// synchronous from the caller's perspective; retries, timeouts and
// cancellation are adapter concerns and must be surfaced as configuration
// overrides, never assumed here.
type Capability interface {
	Invoke(ctx context.Context, req Request) (Response, error)
}

// MaxTokensReporter is an optional interface for capabilities that know the
// context window of their underlying model. Consumers use it for token
// budget control (memory eviction).
type MaxTokensReporter interface {
	MaxTokens() int
}

// Commander is an optional interface for capabilities that accept runtime
// reconfiguration (API keys, model ids, verbosity). Settings take effect for
// all subsequent invocations, never retroactively.
type Commander interface {
	Command(settings map[string]any) error
}

// Embedder is the typed view of the embedding capability.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Match is a single vector index hit, ordered by descending score.
type Match struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

// VectorIndex is the typed view of the indexing capability. Implementations
// must keep entries ordered by insertion so that equal-score query results
// tie-break deterministically.
type VectorIndex interface {
	Register(ctx context.Context, name string, overwrite bool) error
	Exists(ctx context.Context, name string) (bool, error)
	Upsert(ctx context.Context, name string, vector []float32, metadata map[string]string) error
	Query(ctx context.Context, name string, vector []float32, topK int) ([]Match, error)
}

// MockCapability is a lightweight in-memory Capability useful for tests &
// examples. Replies are matched by substring against the request text; an
// optional Script takes precedence over canned replies. Calls counts every
// Invoke, allowing tests to assert that no backend call was made.
type MockCapability struct {
	mu        sync.Mutex
	replies   map[string]string
	fallback  string
	maxTokens int
	calls     int

	// Script, if set, computes the reply for every request.
	Script func(req Request) (Response, error)
}

var (
	_ Capability        = (*MockCapability)(nil)
	_ MaxTokensReporter = (*MockCapability)(nil)
)

// NewMockCapability constructs an empty mock with a generous token window.
func NewMockCapability() *MockCapability {
	return &MockCapability{replies: make(map[string]string), maxTokens: 4096}
}

// AddReply registers a canned reply returned whenever the request text
// contains the given fragment.
func (m *MockCapability) AddReply(fragment, reply string) { m.replies[fragment] = reply }

// SetFallback sets the reply used when no fragment matches.
func (m *MockCapability) SetFallback(reply string) { m.fallback = reply }

// SetMaxTokens overrides the reported context window.
func (m *MockCapability) SetMaxTokens(n int) { m.maxTokens = n }

// Calls returns the number of Invoke calls observed so far.
func (m *MockCapability) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MaxTokens implements MaxTokensReporter.
func (m *MockCapability) MaxTokens() int { return m.maxTokens }

// Invoke implements Capability.
func (m *MockCapability) Invoke(_ context.Context, req Request) (Response, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Script != nil {
		return m.Script(req)
	}
	for fragment, reply := range m.replies {
		if strings.Contains(req.Text, fragment) {
			return Response{Text: reply}, nil
		}
	}
	return Response{Text: m.fallback}, nil
}
