// Package config loads and persists the capability configuration. The
// configuration lives as JSON under ~/.symgo by default; a symgo.config.json
// in the current working directory takes precedence, which keeps local
// experiments away from the home directory file. Environment variables
// override file values and changed values are written back.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/symgo/logging"
)

// DefaultFileName is the configuration file name used in both the working
// directory and the home directory location.
const DefaultFileName = "symgo.config.json"

// Index backend selectors for IndexingEngine.
const (
	IndexingMemory = "memory"
	IndexingSQLite = "sqlite"
)

// Config holds the capability wiring values. JSON keys follow the
// upper-snake convention of the matching environment variables so a file
// entry and its override read identically.
type Config struct {
	ReasoningEngineAPIKey string `json:"REASONING_ENGINE_API_KEY"`
	ReasoningEngineModel  string `json:"REASONING_ENGINE_MODEL"`
	EmbeddingEngineAPIKey string `json:"EMBEDDING_ENGINE_API_KEY"`
	EmbeddingEngineModel  string `json:"EMBEDDING_ENGINE_MODEL"`
	IndexingEngine        string `json:"INDEXING_ENGINE"`
	IndexingEnginePath    string `json:"INDEXING_ENGINE_PATH"`
}

// Default returns the configuration written on first start.
func Default() Config {
	return Config{
		ReasoningEngineModel: "gpt-4o-mini",
		EmbeddingEngineModel: "text-embedding-3-small",
		IndexingEngine:       IndexingMemory,
	}
}

// Options configures Load.
type Options struct {
	// Path overrides the configuration file location.
	Path string
	// Logger receives the missing-key warning. Defaults to a no-op logger.
	Logger logging.Logger
}

// Load reads the configuration, applies environment overrides and writes the
// file back when an override changed a stored value. A missing reasoning key
// logs a warning but never fails: consumers may wire mock capabilities.
func Load(optFns ...func(o *Options)) (Config, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := logging.OrNoOp(opts.Logger)

	path, err := resolvePath(opts.Path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := readOrCreate(path)
	if err != nil {
		return Config{}, err
	}

	before := cfg
	applyEnv(&cfg)
	if cfg != before {
		if err := write(path, cfg); err != nil {
			return Config{}, err
		}
	}

	if cfg.ReasoningEngineAPIKey == "" {
		logger.Warn("reasoning engine has no API key; set OPENAI_API_KEY or REASONING_ENGINE_API_KEY, or configure a backend manually",
			"path", path)
	}
	return cfg, nil
}

// Save persists the configuration to the given path, creating parent
// directories as needed. An empty path resolves like Load.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	return write(resolved, cfg)
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".symgo", DefaultFileName), nil
}

func readOrCreate(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if err := write(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config '%s': %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config '%s': %w", path, err)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory '%s': %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config '%s': %w", path, err)
	}
	return nil
}

// applyEnv overrides file values with environment variables. OPENAI_API_KEY
// fills the reasoning and embedding keys only when no specific variable and
// no stored value is present.
func applyEnv(cfg *Config) {
	setIfEnv := func(target *string, name string) {
		if v := os.Getenv(name); v != "" {
			*target = v
		}
	}
	setIfEnv(&cfg.ReasoningEngineAPIKey, "REASONING_ENGINE_API_KEY")
	setIfEnv(&cfg.ReasoningEngineModel, "REASONING_ENGINE_MODEL")
	setIfEnv(&cfg.EmbeddingEngineAPIKey, "EMBEDDING_ENGINE_API_KEY")
	setIfEnv(&cfg.EmbeddingEngineModel, "EMBEDDING_ENGINE_MODEL")
	setIfEnv(&cfg.IndexingEngine, "INDEXING_ENGINE")
	setIfEnv(&cfg.IndexingEnginePath, "INDEXING_ENGINE_PATH")

	if fallback := os.Getenv("OPENAI_API_KEY"); fallback != "" {
		if cfg.ReasoningEngineAPIKey == "" {
			cfg.ReasoningEngineAPIKey = fallback
		}
		if cfg.EmbeddingEngineAPIKey == "" {
			cfg.EmbeddingEngineAPIKey = fallback
		}
	}
}
