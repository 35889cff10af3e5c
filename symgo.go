// Package symgo provides a high-level façade over the symbolic dispatch
// core. Most applications interact with this package by:
//  1. Creating a SymGo via New() (optionally overriding config, registry or logger)
//  2. Building symbols through Symbol() so operators dispatch to the wired backends
//  3. Layering memory, retrieval or session state on top of the Dispatcher()
//
// New wires the reasoning, embedding and indexing capabilities from the
// persisted configuration: a claude model selects the Anthropic adapter,
// everything else the OpenAI one, and the index store is either in-memory or
// SQLite-backed. All defaults are safe for local development; tests usually
// bypass the façade and configure a registry with mock capabilities instead.
package symgo

import (
	"strings"

	"github.com/hupe1980/symgo/backend/anthropic"
	"github.com/hupe1980/symgo/backend/openai"
	"github.com/hupe1980/symgo/config"
	"github.com/hupe1980/symgo/core"
	"github.com/hupe1980/symgo/logging"
	"github.com/hupe1980/symgo/retrieval"
	"github.com/hupe1980/symgo/symbol"
)

// Options configures the SymGo instance.
type Options struct {
	// Config supplies the capability wiring values. When nil, the persisted
	// configuration is loaded (and created on first run).
	Config *config.Config

	// ConfigPath overrides the configuration file location used when Config
	// is nil.
	ConfigPath string

	// Registry overrides the capability registry entirely. When set, no
	// backends are wired from the configuration.
	Registry *core.Registry

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// SymGo is the high-level façade aggregating configuration, the capability
// registry and the dispatcher.
type SymGo struct {
	cfg        config.Config
	registry   *core.Registry
	dispatcher *symbol.Dispatcher
	index      *retrieval.SQLiteIndex
}

// New creates a new SymGo instance with optional overrides.
func New(optFns ...func(o *Options)) (*SymGo, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := logging.OrNoOp(opts.Logger)

	var cfg config.Config
	if opts.Config != nil {
		cfg = *opts.Config
	} else {
		loaded, err := config.Load(func(o *config.Options) {
			o.Path = opts.ConfigPath
			o.Logger = logger
		})
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	s := &SymGo{cfg: cfg}

	if opts.Registry != nil {
		s.registry = opts.Registry
	} else {
		registry, index, err := wireRegistry(cfg)
		if err != nil {
			return nil, err
		}
		s.registry = registry
		s.index = index
	}

	s.dispatcher = symbol.NewDispatcher(func(o *symbol.DispatcherOptions) {
		o.Registry = s.registry
		o.Logger = logger
	})
	return s, nil
}

// wireRegistry builds a registry from the configuration. The returned
// SQLiteIndex is non-nil only for the sqlite indexing engine and must be
// closed by the caller.
func wireRegistry(cfg config.Config) (*core.Registry, *retrieval.SQLiteIndex, error) {
	registry := core.NewRegistry()

	if strings.HasPrefix(strings.ToLower(cfg.ReasoningEngineModel), "claude") {
		registry.Configure(core.CapabilityReasoning, anthropic.NewReasoning(func(o *anthropic.Options) {
			o.Model = anthropic.Model(cfg.ReasoningEngineModel)
			o.APIKey = cfg.ReasoningEngineAPIKey
		}))
	} else {
		registry.Configure(core.CapabilityReasoning, openai.NewReasoning(func(o *openai.Options) {
			o.Model = cfg.ReasoningEngineModel
			o.APIKey = cfg.ReasoningEngineAPIKey
		}))
	}

	registry.Configure(core.CapabilityEmbedding, openai.NewEmbedding(func(o *openai.EmbeddingOptions) {
		o.Model = cfg.EmbeddingEngineModel
		o.APIKey = cfg.EmbeddingEngineAPIKey
	}))

	if cfg.IndexingEngine == config.IndexingSQLite {
		index, err := retrieval.NewSQLiteIndex(cfg.IndexingEnginePath)
		if err != nil {
			return nil, nil, err
		}
		registry.Configure(core.CapabilityIndexing, index)
		return registry, index, nil
	}
	registry.Configure(core.CapabilityIndexing, retrieval.NewInMemoryIndex())
	return registry, nil, nil
}

// Symbol constructs a Symbol bound to the wired dispatcher.
func (s *SymGo) Symbol(payload any, opts ...symbol.Option) symbol.Symbol {
	return s.dispatcher.Symbol(payload, opts...)
}

// Dispatcher returns the wired dispatcher for memory, retrieval and session
// layers.
func (s *SymGo) Dispatcher() *symbol.Dispatcher { return s.dispatcher }

// Registry returns the capability registry.
func (s *SymGo) Registry() *core.Registry { return s.registry }

// Config returns the effective configuration.
func (s *SymGo) Config() config.Config { return s.cfg }

// Command forwards runtime settings to the named capabilities. The special
// name "all" targets every configured capability.
func (s *SymGo) Command(names []string, settings map[string]any) error {
	return s.registry.Command(names, settings)
}

// Close releases backend resources. Safe to call on a fully in-memory
// instance.
func (s *SymGo) Close() error {
	if s.index != nil {
		return s.index.Close()
	}
	return nil
}
