package memory

import (
	"context"
	"errors"

	"github.com/hupe1980/symgo/retrieval"
	"github.com/hupe1980/symgo/symbol"
)

// VectorMemory is a long-term memory backed by a named vector index. Store
// embeds the entry and upserts it; Recall embeds the query and returns the
// top-k nearest stored texts. A disabled instance turns both operations
// into no-ops.
type VectorMemory struct {
	dispatcher *symbol.Dispatcher
	indexer    *retrieval.Indexer
	enabled    bool
}

var _ Memory = (*VectorMemory)(nil)

// VectorMemoryOptions configures a VectorMemory.
type VectorMemoryOptions struct {
	Enabled bool
	TopK    int
	Index   string
}

// NewVectorMemory creates a vector memory over the given dispatcher.
func NewVectorMemory(dispatcher *symbol.Dispatcher, optFns ...func(o *VectorMemoryOptions)) (*VectorMemory, error) {
	opts := VectorMemoryOptions{Enabled: true, TopK: 3, Index: retrieval.DefaultIndex}
	for _, fn := range optFns {
		fn(&opts)
	}
	indexer, err := retrieval.NewIndexer(dispatcher, func(o *retrieval.IndexerOptions) {
		o.Name = opts.Index
		o.TopK = opts.TopK
	})
	if err != nil {
		return nil, err
	}
	return &VectorMemory{dispatcher: dispatcher, indexer: indexer, enabled: opts.Enabled}, nil
}

// Store embeds text and upserts it into the index.
func (m *VectorMemory) Store(ctx context.Context, text string) error {
	if !m.enabled {
		return nil
	}
	return m.indexer.Add(ctx, text)
}

// Recall returns the texts of the top-k entries nearest to the query.
func (m *VectorMemory) Recall(ctx context.Context, query string) (symbol.Symbol, error) {
	if !m.enabled {
		return m.dispatcher.Symbol([]any{}), nil
	}
	return m.indexer.Query(ctx, query)
}

// Forget is not supported for the vector variant; stored entries are
// immutable index entries.
func (m *VectorMemory) Forget(_ context.Context, _ string) error {
	return errors.New("vector memory does not support forget")
}
