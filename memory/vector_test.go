package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symgo/internal/testutil"
	"github.com/hupe1980/symgo/retrieval"
	"github.com/hupe1980/symgo/symbol"
)

func newVectorDispatcher() *symbol.Dispatcher {
	return testutil.NewDispatcherBuilder().
		Embedding(testutil.RuneEmbedder()).
		Indexing(retrieval.NewInMemoryIndex()).
		Build()
}

func TestVectorMemory_StoreAndRecall(t *testing.T) {
	d := newVectorDispatcher()
	m, err := NewVectorMemory(d, func(o *VectorMemoryOptions) {
		o.Index = "notes"
		o.TopK = 2
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, m.Store(ctx, "the capital of France is Paris"))
	require.NoError(t, m.Store(ctx, "water boils at one hundred degrees"))

	recalled, err := m.Recall(ctx, "the capital of France is Paris")
	require.NoError(t, err)

	texts, ok := recalled.Payload().([]any)
	require.True(t, ok)
	require.NotEmpty(t, texts)
	assert.Equal(t, "the capital of France is Paris", texts[0])
}

func TestVectorMemory_DisabledIsNoOp(t *testing.T) {
	d := newVectorDispatcher()
	m, err := NewVectorMemory(d, func(o *VectorMemoryOptions) { o.Enabled = false })
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, m.Store(ctx, "never indexed"))

	recalled, err := m.Recall(ctx, "never indexed")
	require.NoError(t, err)
	assert.Empty(t, recalled.Payload().([]any))
}

func TestVectorMemory_ForgetUnsupported(t *testing.T) {
	d := newVectorDispatcher()
	m, err := NewVectorMemory(d)
	require.NoError(t, err)

	assert.Error(t, m.Forget(context.Background(), "anything"))
}

func TestVectorMemory_NilDispatcherFails(t *testing.T) {
	_, err := NewVectorMemory(nil)
	assert.Error(t, err)
}
