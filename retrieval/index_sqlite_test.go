package retrieval

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symgo/core"
)

func newSQLiteIndex(t *testing.T) *SQLiteIndex {
	t.Helper()
	index, err := NewSQLiteIndex(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })
	return index
}

func TestSQLiteIndex_RoundTrip(t *testing.T) {
	index := newSQLiteIndex(t)
	ctx := context.Background()

	require.NoError(t, index.Register(ctx, "idx", false))

	exists, err := index.Exists(ctx, "idx")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, index.Upsert(ctx, "idx", []float32{1, 0, 0}, map[string]string{"text": "alpha"}))
	require.NoError(t, index.Upsert(ctx, "idx", []float32{0, 1, 0}, map[string]string{"text": "beta"}))
	require.NoError(t, index.Upsert(ctx, "idx", []float32{0.9, 0.1, 0}, map[string]string{"text": "mostly alpha"}))

	matches, err := index.Query(ctx, "idx", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "alpha", matches[0].Metadata["text"])
	assert.Equal(t, "mostly alpha", matches[1].Metadata["text"])
}

func TestSQLiteIndex_TiesBreakByInsertionOrder(t *testing.T) {
	index := newSQLiteIndex(t)
	ctx := context.Background()

	require.NoError(t, index.Upsert(ctx, "idx", []float32{1, 0}, map[string]string{"text": "first"}))
	require.NoError(t, index.Upsert(ctx, "idx", []float32{4, 0}, map[string]string{"text": "second"}))

	matches, err := index.Query(ctx, "idx", []float32{2, 0}, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "first", matches[0].Metadata["text"])
}

func TestSQLiteIndex_RegisterOverwriteSemantics(t *testing.T) {
	index := newSQLiteIndex(t)
	ctx := context.Background()

	require.NoError(t, index.Register(ctx, "idx", false))
	require.NoError(t, index.Upsert(ctx, "idx", []float32{1}, map[string]string{"text": "kept"}))

	require.NoError(t, index.Register(ctx, "idx", false))
	matches, err := index.Query(ctx, "idx", []float32{1}, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	require.NoError(t, index.Register(ctx, "idx", true))
	matches, err = index.Query(ctx, "idx", []float32{1}, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSQLiteIndex_QueryMissingIndex(t *testing.T) {
	index := newSQLiteIndex(t)
	_, err := index.Query(context.Background(), "absent", []float32{1}, 1)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSQLiteIndex_VectorCodec(t *testing.T) {
	in := []float32{0.5, -1.25, 3.75}
	out := decodeVector(encodeVector(in))
	assert.Equal(t, in, out)
}
