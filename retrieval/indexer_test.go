package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symgo/core"
	"github.com/hupe1980/symgo/internal/testutil"
	"github.com/hupe1980/symgo/symbol"
)

func newPipeline(t *testing.T) (*symbol.Dispatcher, *core.MockCapability, *InMemoryIndex) {
	t.Helper()
	embedder := testutil.RuneEmbedder()
	index := NewInMemoryIndex()
	dispatcher := testutil.NewDispatcherBuilder().Embedding(embedder).Indexing(index).Build()
	return dispatcher, embedder, index
}

func TestIndexer_RoundTrip(t *testing.T) {
	dispatcher, _, _ := newPipeline(t)
	indexer, err := NewIndexer(dispatcher, func(o *IndexerOptions) {
		o.Name = "docs"
		o.TopK = 3
		o.Formatter = &ParagraphFormatter{MinChunkSize: 10, MaxChunkSize: 600}
	})
	require.NoError(t, err)

	require.NoError(t, indexer.Register(context.Background(), false))
	document := "The first chapter covers lexical conventions in detail.\n\nThe second chapter explains the type system at length.\n\nThe third chapter describes the runtime behavior of programs."
	require.NoError(t, indexer.Index(context.Background(), document))

	result, err := indexer.Query(context.Background(), "The second chapter explains the type system at length.")
	require.NoError(t, err)

	texts, ok := result.Payload().([]any)
	require.True(t, ok)
	require.NotEmpty(t, texts)
	assert.Contains(t, texts, any("The second chapter explains the type system at length."))
	// verbatim chunk text must win the ranking
	assert.Equal(t, "The second chapter explains the type system at length.", texts[0])
}

func TestIndexer_RegisterIsIdempotentWithoutOverwrite(t *testing.T) {
	dispatcher, embedder, _ := newPipeline(t)
	indexer, err := NewIndexer(dispatcher, func(o *IndexerOptions) { o.Name = "docs" })
	require.NoError(t, err)

	require.NoError(t, indexer.Register(context.Background(), false))
	require.NoError(t, indexer.Add(context.Background(), "a stored span of text"))
	callsAfterBuild := embedder.Calls()

	// Re-registering must keep the contents and embed nothing.
	require.NoError(t, indexer.Register(context.Background(), false))
	assert.Equal(t, callsAfterBuild, embedder.Calls())

	exists, err := indexer.Exists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)

	result, err := indexer.Query(context.Background(), "a stored span of text")
	require.NoError(t, err)
	texts := result.Payload().([]any)
	require.Len(t, texts, 1)
}

func TestIndexer_RegisterOverwriteClears(t *testing.T) {
	dispatcher, _, _ := newPipeline(t)
	indexer, err := NewIndexer(dispatcher, func(o *IndexerOptions) { o.Name = "docs" })
	require.NoError(t, err)

	require.NoError(t, indexer.Register(context.Background(), false))
	require.NoError(t, indexer.Add(context.Background(), "old content"))
	require.NoError(t, indexer.Register(context.Background(), true))

	result, err := indexer.Query(context.Background(), "old content")
	require.NoError(t, err)
	assert.Empty(t, result.Payload().([]any))
}

func TestDocumentRetriever_SkipsRebuildWhenIndexExists(t *testing.T) {
	dispatcher, embedder, _ := newPipeline(t)

	document := "A single paragraph that is long enough to become exactly one chunk of the document."
	_, err := NewDocumentRetriever(context.Background(), dispatcher, document, func(o *DocumentRetrieverOptions) {
		o.Index = "book"
		o.Formatter = &ParagraphFormatter{MinChunkSize: 10, MaxChunkSize: 600}
	})
	require.NoError(t, err)
	callsAfterBuild := embedder.Calls()
	require.Greater(t, callsAfterBuild, 0)

	retriever, err := NewDocumentRetriever(context.Background(), dispatcher, document, func(o *DocumentRetrieverOptions) {
		o.Index = "book"
		o.Formatter = &ParagraphFormatter{MinChunkSize: 10, MaxChunkSize: 600}
	})
	require.NoError(t, err)
	// embedding call counter unchanged: second construction was query-only
	assert.Equal(t, callsAfterBuild, embedder.Calls())

	result, err := retriever.Query(context.Background(), "long enough paragraph")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Payload().([]any))
}
