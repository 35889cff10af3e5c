package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symgo/core"
)

func TestSlidingWindowListMemory_Overflow(t *testing.T) {
	m := NewSlidingWindowListMemory(nil, func(o *SlidingWindowOptions) {
		o.WindowSize = 3
		o.MaxSize = 5
	})
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		require.NoError(t, m.Store(ctx, fmt.Sprintf("entry-%d", i)))
	}

	assert.Equal(t, 5, m.Len())
	assert.Equal(t, []string{"entry-3", "entry-4", "entry-5", "entry-6", "entry-7"}, m.History())
}

func TestSlidingWindowListMemory_RecallReturnsWindow(t *testing.T) {
	m := NewSlidingWindowListMemory(nil, func(o *SlidingWindowOptions) {
		o.WindowSize = 2
		o.MaxSize = 10
	})
	ctx := context.Background()

	for _, entry := range []string{"a", "b", "c", "d"} {
		require.NoError(t, m.Store(ctx, entry))
	}

	recalled, err := m.Recall(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []any{"c", "d"}, recalled.Payload())
}

func TestSlidingWindowListMemory_RecallBelowWindow(t *testing.T) {
	m := NewSlidingWindowListMemory(nil)
	require.NoError(t, m.Store(context.Background(), "only"))

	recalled, err := m.Recall(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []any{"only"}, recalled.Payload())
}

func TestSlidingWindowListMemory_ForgetMissingEntry(t *testing.T) {
	m := NewSlidingWindowListMemory(nil)
	ctx := context.Background()

	require.NoError(t, m.Store(ctx, "keep me"))
	require.NoError(t, m.Forget(ctx, "keep me"))
	assert.Equal(t, 0, m.Len())

	err := m.Forget(ctx, "never stored")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSlidingWindowListMemory_ForgetRemovesFirstOccurrence(t *testing.T) {
	m := NewSlidingWindowListMemory(nil)
	ctx := context.Background()

	require.NoError(t, m.Store(ctx, "dup"))
	require.NoError(t, m.Store(ctx, "mid"))
	require.NoError(t, m.Store(ctx, "dup"))

	require.NoError(t, m.Forget(ctx, "dup"))
	assert.Equal(t, []string{"mid", "dup"}, m.History())
}
