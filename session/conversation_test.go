package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symgo/core"
)

func TestConversation_AppendAndHistory(t *testing.T) {
	c := NewConversation()
	require.NotEmpty(t, c.ID())

	first := c.Append(RoleUser, "hello")
	second := c.Append(RoleAssistant, "hi there")

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	history := c.History()
	require.Len(t, history, 2)
	assert.Equal(t, "hello", history[0].Text)
	assert.Equal(t, RoleAssistant, history[1].Role)
	assert.Equal(t, 2, c.Len())
}

func TestConversation_Render(t *testing.T) {
	c := NewConversation()
	c.Append(RoleUser, "what is the capital of France?")
	c.Append(RoleAssistant, "Paris")

	assert.Equal(t, "user: what is the capital of France?\nassistant: Paris", c.Render())
}

func TestConversation_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "conversation.json")

	c := NewConversation(func(o *ConversationOptions) { o.ID = "fixed-id" })
	c.Append(RoleUser, "remember this")
	require.NoError(t, c.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", loaded.ID())
	require.Len(t, loaded.History(), 1)
	assert.Equal(t, "remember this", loaded.History()[0].Text)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}
