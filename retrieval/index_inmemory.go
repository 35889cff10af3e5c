package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hupe1980/symgo/core"
)

// entry is a single stored (vector, metadata) pair.
type entry struct {
	id       string
	vector   []float32
	metadata map[string]string
}

// InMemoryIndex is a process-local vector index. Entries are kept in
// insertion order so equal-score query results tie-break deterministically.
// Concurrency: protected by RWMutex. Suitable for tests, demos and small
// corpora; swap for the SQLite store or an external vector database for
// durability.
type InMemoryIndex struct {
	mu      sync.RWMutex
	indexes map[string][]entry
}

var (
	_ core.VectorIndex = (*InMemoryIndex)(nil)
	_ core.Capability  = (*InMemoryIndex)(nil)
)

// NewInMemoryIndex creates an empty in-memory vector index capability.
func NewInMemoryIndex() *InMemoryIndex {
	return &InMemoryIndex{indexes: make(map[string][]entry)}
}

// Register creates the named index. An existing index is cleared only when
// overwrite is set; otherwise the call binds to it unchanged.
func (s *InMemoryIndex) Register(_ context.Context, name string, overwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.indexes[name]; exists && !overwrite {
		return nil
	}
	s.indexes[name] = []entry{}
	return nil
}

// Exists reports whether the named index has been registered.
func (s *InMemoryIndex) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.indexes[name]
	return exists, nil
}

// Upsert appends a (vector, metadata) pair to the named index, creating
// the index on first use.
func (s *InMemoryIndex) Upsert(_ context.Context, name string, vector []float32, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	md := make(map[string]string, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	vec := make([]float32, len(vector))
	copy(vec, vector)
	s.indexes[name] = append(s.indexes[name], entry{id: uuid.NewString(), vector: vec, metadata: md})
	return nil
}

// Query returns the topK entries nearest to vector by cosine similarity,
// ordered by descending score with insertion order breaking ties.
func (s *InMemoryIndex) Query(_ context.Context, name string, vector []float32, topK int) ([]core.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, exists := s.indexes[name]
	if !exists {
		return nil, fmt.Errorf("index '%s': %w", name, core.ErrNotFound)
	}
	matches := make([]core.Match, 0, len(entries))
	for _, e := range entries {
		matches = append(matches, core.Match{
			ID:       e.id,
			Score:    CosineSimilarity(vector, e.vector),
			Metadata: e.metadata,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Invoke implements the generic capability contract by routing structured
// index operations to the typed methods.
func (s *InMemoryIndex) Invoke(ctx context.Context, req core.Request) (core.Response, error) {
	return invokeIndex(ctx, s, req)
}

// invokeIndex adapts a structured index request onto a VectorIndex. Shared
// by the in-memory and SQLite stores.
func invokeIndex(ctx context.Context, index core.VectorIndex, req core.Request) (core.Response, error) {
	name, _ := req.Override("index").(string)
	if name == "" {
		name = DefaultIndex
	}
	vector, _ := req.Override("vector").([]float32)
	operation, _ := req.Override("operation").(string)

	switch operation {
	case "index_config":
		overwrite, _ := req.Override("overwrite").(bool)
		return core.Response{}, index.Register(ctx, name, overwrite)
	case "index_add":
		metadata, _ := req.Override("metadata").(map[string]string)
		return core.Response{}, index.Upsert(ctx, name, vector, metadata)
	case "index_search":
		topK, _ := req.Override("top_k").(int)
		matches, err := index.Query(ctx, name, vector, topK)
		if err != nil {
			return core.Response{}, err
		}
		return core.Response{Data: matches}, nil
	default:
		return core.Response{}, fmt.Errorf("unsupported index operation '%s'", operation)
	}
}

// CosineSimilarity computes cosine similarity between two vectors. Length
// mismatches and zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
