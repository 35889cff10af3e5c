package retrieval

import (
	"context"

	"github.com/hupe1980/symgo/symbol"
)

// DocumentRetriever ties a source document to a named index: on first use
// the document is chunked, embedded and indexed; subsequent constructions
// against the same index name skip the build entirely and behave as plain
// queries.
type DocumentRetriever struct {
	indexer *Indexer
}

// DocumentRetrieverOptions configures a DocumentRetriever.
type DocumentRetrieverOptions struct {
	Index     string
	TopK      int
	Formatter Formatter
	// Overwrite forces a rebuild even when the index already exists.
	Overwrite bool
}

// NewDocumentRetriever indexes text once under the configured index name.
// When the index already exists and Overwrite is unset, no embedding call
// is made.
func NewDocumentRetriever(ctx context.Context, dispatcher *symbol.Dispatcher, text string, optFns ...func(o *DocumentRetrieverOptions)) (*DocumentRetriever, error) {
	opts := DocumentRetrieverOptions{Index: DefaultIndex, TopK: 5}
	for _, fn := range optFns {
		fn(&opts)
	}
	indexer, err := NewIndexer(dispatcher, func(o *IndexerOptions) {
		o.Name = opts.Index
		o.TopK = opts.TopK
		o.Formatter = opts.Formatter
	})
	if err != nil {
		return nil, err
	}

	exists, err := indexer.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists || opts.Overwrite {
		if err := indexer.Register(ctx, opts.Overwrite); err != nil {
			return nil, err
		}
		if err := indexer.Index(ctx, text); err != nil {
			return nil, err
		}
	}
	return &DocumentRetriever{indexer: indexer}, nil
}

// Query returns the stored chunks nearest to the query text.
func (r *DocumentRetriever) Query(ctx context.Context, query string) (symbol.Symbol, error) {
	return r.indexer.Query(ctx, query)
}
