package symgo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symgo/backend/anthropic"
	"github.com/hupe1980/symgo/backend/openai"
	"github.com/hupe1980/symgo/config"
	"github.com/hupe1980/symgo/core"
	"github.com/hupe1980/symgo/retrieval"
)

func TestNew_WithCustomRegistry(t *testing.T) {
	mock := core.NewMockCapability()
	mock.SetFallback("a fact")
	registry := core.NewRegistry()
	registry.Configure(core.CapabilityReasoning, mock)

	cfg := config.Default()
	s, err := New(func(o *Options) {
		o.Config = &cfg
		o.Registry = registry
	})
	require.NoError(t, err)
	defer s.Close()

	result, err := s.Symbol("the moon").Query(context.Background(), "what is it?")
	require.NoError(t, err)
	assert.Equal(t, "a fact", result.String())
	assert.Equal(t, 1, mock.Calls())
}

func TestWireRegistry_ReasoningModelSelection(t *testing.T) {
	cfg := config.Default()
	cfg.ReasoningEngineModel = "claude-3-5-sonnet-20241022"
	registry, _, err := wireRegistry(cfg)
	require.NoError(t, err)

	handle, err := registry.Resolve(core.CapabilityReasoning)
	require.NoError(t, err)
	assert.IsType(t, (*anthropic.Reasoning)(nil), handle)

	cfg.ReasoningEngineModel = "gpt-4o-mini"
	registry, _, err = wireRegistry(cfg)
	require.NoError(t, err)

	handle, err = registry.Resolve(core.CapabilityReasoning)
	require.NoError(t, err)
	assert.IsType(t, (*openai.Reasoning)(nil), handle)

	embedding, err := registry.Resolve(core.CapabilityEmbedding)
	require.NoError(t, err)
	assert.IsType(t, (*openai.Embedding)(nil), embedding)
}

func TestWireRegistry_IndexSelection(t *testing.T) {
	cfg := config.Default()
	registry, index, err := wireRegistry(cfg)
	require.NoError(t, err)
	assert.Nil(t, index)

	handle, err := registry.Resolve(core.CapabilityIndexing)
	require.NoError(t, err)
	assert.IsType(t, (*retrieval.InMemoryIndex)(nil), handle)

	cfg.IndexingEngine = config.IndexingSQLite
	cfg.IndexingEnginePath = filepath.Join(t.TempDir(), "index.db")
	registry, index, err = wireRegistry(cfg)
	require.NoError(t, err)
	require.NotNil(t, index)
	defer index.Close()

	handle, err = registry.Resolve(core.CapabilityIndexing)
	require.NoError(t, err)
	assert.IsType(t, (*retrieval.SQLiteIndex)(nil), handle)
}
