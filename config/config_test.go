package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv pins every recognized variable to empty so ambient shell state
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"REASONING_ENGINE_API_KEY", "REASONING_ENGINE_MODEL",
		"EMBEDDING_ENGINE_API_KEY", "EMBEDDING_ENGINE_MODEL",
		"INDEXING_ENGINE", "INDEXING_ENGINE_PATH",
		"OPENAI_API_KEY",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".symgo", DefaultFileName)

	cfg, err := Load(func(o *Options) { o.Path = path })
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var stored Config
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, Default(), stored)
}

func TestLoad_EnvOverrideIsWrittenBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("REASONING_ENGINE_MODEL", "claude-3-5-sonnet-20241022")
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Save(path, Default()))

	cfg, err := Load(func(o *Options) { o.Path = path })
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.ReasoningEngineModel)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var stored Config
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, "claude-3-5-sonnet-20241022", stored.ReasoningEngineModel)
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-general")
	path := filepath.Join(t.TempDir(), DefaultFileName)

	cfg, err := Load(func(o *Options) { o.Path = path })
	require.NoError(t, err)
	assert.Equal(t, "sk-general", cfg.ReasoningEngineAPIKey)
	assert.Equal(t, "sk-general", cfg.EmbeddingEngineAPIKey)
}

func TestLoad_SpecificKeyBeatsFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-general")
	t.Setenv("REASONING_ENGINE_API_KEY", "sk-specific")
	path := filepath.Join(t.TempDir(), DefaultFileName)

	cfg, err := Load(func(o *Options) { o.Path = path })
	require.NoError(t, err)
	assert.Equal(t, "sk-specific", cfg.ReasoningEngineAPIKey)
	assert.Equal(t, "sk-general", cfg.EmbeddingEngineAPIKey)
}

func TestLoad_KeepsStoredValuesWithoutEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), DefaultFileName)
	stored := Default()
	stored.ReasoningEngineAPIKey = "sk-stored"
	stored.IndexingEngine = IndexingSQLite
	stored.IndexingEnginePath = "/tmp/index.db"
	require.NoError(t, Save(path, stored))

	cfg, err := Load(func(o *Options) { o.Path = path })
	require.NoError(t, err)
	assert.Equal(t, stored, cfg)
}
