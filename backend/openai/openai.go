// Package openai provides capability adapters for the OpenAI API: a
// reasoning adapter on Chat Completions and an embedding adapter on the
// Embeddings endpoint.
package openai

import (
	"context"
	"fmt"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hupe1980/symgo/backend"
	"github.com/hupe1980/symgo/core"
)

// Options configure the OpenAI reasoning adapter.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	APIKey              string
}

// Reasoning wraps the OpenAI Chat Completions API behind core.Capability.
type Reasoning struct {
	mu     sync.Mutex
	client *openai.Client
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
	client := openai.NewClient(clientOpts...)

	return &Reasoning{client: &client, opts: opts}
}

// NewReasoningFromClient creates a reasoning adapter from an existing client.
func NewReasoningFromClient(client *openai.Client, optFns ...func(o *Options)) *Reasoning {
	return &Reasoning{client: client, opts: applyOptions(optFns)}
}

func applyOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Invoke implements core.Capability. The rendered system preamble becomes the
// system message and the request text the sole user message; per-call
// overrides shadow the configured model, temperature and token ceiling for
// this invocation only.
func (r *Reasoning) Invoke(ctx context.Context, req core.Request) (core.Response, error) {
	r.mu.Lock()
	client := r.client
	opts := r.opts
	r.mu.Unlock()

	if model, ok := req.Override("model").(string); ok {
		opts.Model = model
	}
	if temperature, ok := backend.Float(req.Override("temperature")); ok {
		opts.Temperature = temperature
	}
	if maxTokens, ok := backend.Int(req.Override("max_tokens")); ok {
		opts.MaxCompletionTokens = maxTokens
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Text))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               opts.Model,
		Temperature:         openai.Float(opts.Temperature),
		MaxCompletionTokens: openai.Int(opts.MaxCompletionTokens),
	}
	if len(req.Stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: req.Stop}
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return core.Response{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return core.Response{}, fmt.Errorf("openai api error: no choices returned")
	}
	return core.Response{Text: resp.Choices[0].Message.Content}, nil
}

// MaxTokens implements core.MaxTokensReporter.
func (r *Reasoning) MaxTokens() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.opts.MaxCompletionTokens)
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
			r.opts.Model = model
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
			r.opts.MaxCompletionTokens = maxTokens
		case "api_key":
			apiKey, ok := value.(string)
			if !ok {
				return fmt.Errorf("setting 'api_key': expected string, got %T", value)
			}
			r.opts.APIKey = apiKey
			client := openai.NewClient(option.WithAPIKey(apiKey))
			r.client = &client
		}
	}
	return nil
}

// Info returns metadata describing this adapter.
func (r *Reasoning) Info() backend.Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	return backend.Info{Name: r.opts.Model, Provider: "openai"}
}
