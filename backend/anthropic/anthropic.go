// Package anthropic provides a reasoning capability adapter for the
// Anthropic Claude Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/symgo/backend"
	"github.com/hupe1980/symgo/core"
)

// Model aliases the SDK model identifier so callers can name models without
// importing the SDK directly.
type Model = anthropic.Model

// Options configure the Anthropic reasoning adapter.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Reasoning wraps the Anthropic Messages API behind core.Capability.
type Reasoning struct {
	mu     sync.Mutex
	client *anthropic.Client
	opts   Options
}

var (
	_ core.Capability        = (*Reasoning)(nil)
	_ core.MaxTokensReporter = (*Reasoning)(nil)
	_ core.Commander         = (*Reasoning)(nil)
)

// NewReasoning creates a reasoning adapter using the official client.
func NewReasoning(optFns ...func(o *Options)) *Reasoning {
	opts := applyOptions(optFns)

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Reasoning{client: &client, opts: opts}
}

// NewReasoningFromClient creates a reasoning adapter from an existing client.
func NewReasoningFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Reasoning {
	return &Reasoning{client: client, opts: applyOptions(optFns)}
}

func applyOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Invoke implements core.Capability. The rendered system preamble becomes
// the system blocks and the request text the sole user message; stop markers
// map to stop sequences.
func (r *Reasoning) Invoke(ctx context.Context, req core.Request) (core.Response, error) {
	r.mu.Lock()
	client := r.client
	opts := r.opts
	r.mu.Unlock()

	if model, ok := req.Override("model").(string); ok {
		opts.Model = anthropic.Model(model)
	}
	if temperature, ok := backend.Float(req.Override("temperature")); ok {
		opts.Temperature = temperature
	}
	if maxTokens, ok := backend.Int(req.Override("max_tokens")); ok {
		opts.MaxTokens = maxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: anthropic.Float(opts.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Text)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if len(req.Stop) > 0 {
		params.StopSequences = req.Stop
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return core.Response{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}
	return core.Response{Text: text.String()}, nil
}

// MaxTokens implements core.MaxTokensReporter.
func (r *Reasoning) MaxTokens() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.opts.MaxTokens)
}

// Command implements core.Commander. Recognized settings: model,
// temperature, max_tokens, api_key. Settings apply to subsequent
// invocations.
func (r *Reasoning) Command(settings map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, value := range settings {
		switch key {
		case "model":
			model, ok := value.(string)
			if !ok {
				return fmt.Errorf("setting 'model': expected string, got %T", value)
			}
			r.opts.Model = anthropic.Model(model)
		case "temperature":
			temperature, ok := backend.Float(value)
			if !ok {
				return fmt.Errorf("setting 'temperature': expected number, got %T", value)
			}
			r.opts.Temperature = temperature
		case "max_tokens":
			maxTokens, ok := backend.Int(value)
			if !ok {
				return fmt.Errorf("setting 'max_tokens': expected number, got %T", value)
			}
			r.opts.MaxTokens = maxTokens
		case "api_key":
			apiKey, ok := value.(string)
			if !ok {
				return fmt.Errorf("setting 'api_key': expected string, got %T", value)
			}
			r.opts.APIKey = apiKey
			client := anthropic.NewClient(option.WithAPIKey(apiKey))
			r.client = &client
		}
	}
	return nil
}

// Info returns metadata describing this adapter.
func (r *Reasoning) Info() backend.Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	return backend.Info{Name: string(r.opts.Model), Provider: "anthropic"}
}
