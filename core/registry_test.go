package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ConfigureAndResolve(t *testing.T) {
	reg := NewRegistry()
	mock := NewMockCapability()
	reg.Configure(CapabilityReasoning, mock)

	handle, err := reg.Resolve(CapabilityReasoning)
	require.NoError(t, err)
	assert.Same(t, Capability(mock), handle)
}

func TestRegistry_ResolveUnconfigured(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve("speech")

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "speech", cfgErr.Capability)
}

func TestRegistry_OverrideTakesEffect(t *testing.T) {
	reg := NewRegistry()
	first := NewMockCapability()
	first.SetFallback("first")
	second := NewMockCapability()
	second.SetFallback("second")

	reg.Configure(CapabilityReasoning, first)
	reg.Configure(CapabilityReasoning, second)

	handle, err := reg.Resolve(CapabilityReasoning)
	require.NoError(t, err)

	resp, err := handle.Invoke(context.Background(), Request{Text: "ping"})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Text)
}

func TestRegistry_Capabilities(t *testing.T) {
	reg := NewRegistry()
	reg.Configure(CapabilityIndexing, NewMockCapability())
	reg.Configure(CapabilityReasoning, NewMockCapability())
	reg.Configure(CapabilityEmbedding, NewMockCapability())

	assert.Equal(t, []string{"embedding", "indexing", "reasoning"}, reg.Capabilities())
}

type commandRecorder struct {
	MockCapability
	settings map[string]any
}

func (c *commandRecorder) Command(settings map[string]any) error {
	c.settings = settings
	return nil
}

func TestRegistry_CommandTargetsAll(t *testing.T) {
	reg := NewRegistry()
	rec := &commandRecorder{}
	reg.Configure(CapabilityReasoning, rec)
	reg.Configure(CapabilityEmbedding, NewMockCapability()) // no Commander, skipped

	err := reg.Command([]string{"all"}, map[string]any{"verbose": true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"verbose": true}, rec.settings)
}

func TestMockCapability_CallsCounter(t *testing.T) {
	mock := NewMockCapability()
	mock.AddReply("hello", "world")

	resp, err := mock.Invoke(context.Background(), Request{Text: "hello there"})
	require.NoError(t, err)
	assert.Equal(t, "world", resp.Text)
	assert.Equal(t, 1, mock.Calls())
}

func TestErrors_Wrapping(t *testing.T) {
	cause := errors.New("boom")
	backendErr := &BackendError{Capability: CapabilityReasoning, Err: cause}
	assert.ErrorIs(t, backendErr, cause)

	attrErr := &AttributeError{Attr: "shape", Cause: cause}
	assert.Contains(t, attrErr.Error(), "shape")
	assert.ErrorIs(t, attrErr, cause)
}
