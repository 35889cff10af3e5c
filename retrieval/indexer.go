package retrieval

import (
	"context"
	"fmt"

	"github.com/hupe1980/symgo/core"
	"github.com/hupe1980/symgo/symbol"
)

// DefaultIndex is the index name used when none is configured.
const DefaultIndex = "dataindex"

// metadataTextKey is the metadata field holding the original text span.
const metadataTextKey = "text"

// IndexerOptions configures an Indexer.
type IndexerOptions struct {
	// Name identifies the vector index.
	Name string
	// TopK bounds query results.
	TopK int
	// Formatter decides chunk boundaries on Index. Defaults to the
	// paragraph formatter.
	Formatter Formatter
}

// Indexer builds and queries a named vector index. Chunks are embedded
// through the embedding capability and stored through the indexing
// capability; both calls are routed through the dispatcher.
type Indexer struct {
	dispatcher *symbol.Dispatcher
	name       string
	topK       int
	formatter  Formatter
}

// NewIndexer creates an indexer bound to the dispatcher's registry.
func NewIndexer(dispatcher *symbol.Dispatcher, optFns ...func(o *IndexerOptions)) (*Indexer, error) {
	if dispatcher == nil {
		return nil, &core.ConfigurationError{Capability: core.CapabilityIndexing, Reason: "indexer requires a dispatcher"}
	}
	opts := IndexerOptions{Name: DefaultIndex, TopK: 5}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Formatter == nil {
		opts.Formatter = NewParagraphFormatter()
	}
	return &Indexer{
		dispatcher: dispatcher,
		name:       opts.Name,
		topK:       opts.TopK,
		formatter:  opts.Formatter,
	}, nil
}

// Name returns the bound index name.
func (ix *Indexer) Name() string { return ix.name }

// Register creates the index. With overwrite false an existing index is
// kept as-is and the call binds to it without re-embedding anything.
func (ix *Indexer) Register(ctx context.Context, overwrite bool) error {
	_, err := ix.dispatcher.Dispatch(ctx, symbol.Call{
		Operation: symbol.OpIndexConfig,
		Index:     symbol.IndexParams{Name: ix.name, Overwrite: overwrite},
	}, ix.dispatcher.Symbol(ix.name))
	return err
}

// Exists reports whether the named index has been registered.
func (ix *Indexer) Exists(ctx context.Context) (bool, error) {
	handle, err := ix.dispatcher.Registry().Resolve(core.CapabilityIndexing)
	if err != nil {
		return false, err
	}
	index, ok := handle.(core.VectorIndex)
	if !ok {
		return false, &core.ConfigurationError{
			Capability: core.CapabilityIndexing,
			Reason:     fmt.Sprintf("handle %T does not implement VectorIndex", handle),
		}
	}
	return index.Exists(ctx, ix.name)
}

// Index chunks the source text, embeds every chunk and upserts the
// (vector, text) pairs. It is the one-time build step for a document.
func (ix *Indexer) Index(ctx context.Context, text string) error {
	for _, chunk := range ix.formatter.Format(text) {
		if err := ix.Add(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

// Add embeds a single text span and upserts it into the index.
func (ix *Indexer) Add(ctx context.Context, text string) error {
	vector, err := ix.dispatcher.Symbol(text).Embed(ctx)
	if err != nil {
		return err
	}
	_, err = ix.dispatcher.Dispatch(ctx, symbol.Call{
		Operation: symbol.OpIndexAdd,
		Index: symbol.IndexParams{
			Name:     ix.name,
			Vector:   vector,
			Metadata: map[string]string{metadataTextKey: text},
		},
	}, ix.dispatcher.Symbol(text))
	return err
}

// Query embeds the query text, asks the index for the top-k nearest
// entries and returns their stored text spans in score order.
func (ix *Indexer) Query(ctx context.Context, query string) (symbol.Symbol, error) {
	vector, err := ix.dispatcher.Symbol(query).Embed(ctx)
	if err != nil {
		return symbol.Symbol{}, err
	}
	result, err := ix.dispatcher.Dispatch(ctx, symbol.Call{
		Operation: symbol.OpIndexSearch,
		Index:     symbol.IndexParams{Name: ix.name, Vector: vector, TopK: ix.topK},
	}, ix.dispatcher.Symbol(query))
	if err != nil {
		return symbol.Symbol{}, err
	}

	matches, ok := result.Payload().([]core.Match)
	if !ok {
		return symbol.Symbol{}, &core.BackendError{
			Capability: core.CapabilityIndexing,
			Err:        fmt.Errorf("index returned %T, expected []core.Match", result.Payload()),
		}
	}
	texts := make([]any, 0, len(matches))
	for _, match := range matches {
		texts = append(texts, match.Metadata[metadataTextKey])
	}
	return ix.dispatcher.Symbol(texts), nil
}
