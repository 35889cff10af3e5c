package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hupe1980/symgo/backend"
	"github.com/hupe1980/symgo/core"
)

// EmbeddingOptions configure the OpenAI embedding adapter.
type EmbeddingOptions struct {
	Model  string
	APIKey string
}

// Embedding wraps the OpenAI Embeddings API behind core.Capability and the
// typed core.Embedder view.
type Embedding struct {
	client *openai.Client
	opts   EmbeddingOptions
}

var (
	_ core.Capability = (*Embedding)(nil)
	_ core.Embedder   = (*Embedding)(nil)
)

// NewEmbedding creates an embedding adapter using the official client.
func NewEmbedding(optFns ...func(o *EmbeddingOptions)) *Embedding {
	opts := EmbeddingOptions{Model: openai.EmbeddingModelTextEmbedding3Small}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := openai.NewClient(clientOpts...)

	return &Embedding{client: &client, opts: opts}
}

// NewEmbeddingFromClient creates an embedding adapter from an existing client.
func NewEmbeddingFromClient(client *openai.Client, optFns ...func(o *EmbeddingOptions)) *Embedding {
	opts := EmbeddingOptions{Model: openai.EmbeddingModelTextEmbedding3Small}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Embedding{client: client, opts: opts}
}

// Embed implements core.Embedder.
func (e *Embedding) Embed(ctx context.Context, text string) ([]float32, error) {
	model := e.opts.Model

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: model,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{text}},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings api error: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings api error: empty response")
	}

	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}

// Invoke implements core.Capability. The request text is embedded and the
// vector returned as structured data.
func (e *Embedding) Invoke(ctx context.Context, req core.Request) (core.Response, error) {
	vector, err := e.Embed(ctx, req.Text)
	if err != nil {
		return core.Response{}, err
	}
	return core.Response{Data: vector}, nil
}

// Info returns metadata describing this adapter.
func (e *Embedding) Info() backend.Info {
	return backend.Info{Name: e.opts.Model, Provider: "openai"}
}
