package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParagraphFormatter_Empty(t *testing.T) {
	f := NewParagraphFormatter()
	assert.Nil(t, f.Format(""))
	assert.Nil(t, f.Format("   \n\n  "))
}

func TestParagraphFormatter_SplitsOnBlankLines(t *testing.T) {
	f := &ParagraphFormatter{MinChunkSize: 10, MaxChunkSize: 600}
	text := "First paragraph with enough text.\n\nSecond paragraph, also long enough.\n\n\nThird one here as well."

	chunks := f.Format(text)
	require.Len(t, chunks, 3)
	assert.Equal(t, "First paragraph with enough text.", chunks[0])
	assert.Equal(t, "Second paragraph, also long enough.", chunks[1])
	assert.Equal(t, "Third one here as well.", chunks[2])
}

func TestParagraphFormatter_MergesSmallParagraphs(t *testing.T) {
	f := &ParagraphFormatter{MinChunkSize: 40, MaxChunkSize: 600}
	text := "Tiny.\n\nThis second paragraph carries the actual content of the section."

	chunks := f.Format(text)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "Tiny.")
	assert.Contains(t, chunks[0], "actual content")
}

func TestParagraphFormatter_SplitsOversizedParagraphs(t *testing.T) {
	f := &ParagraphFormatter{MinChunkSize: 10, MaxChunkSize: 80}
	sentence := "This sentence is repeated to grow the paragraph beyond the maximum size."
	text := strings.Repeat(sentence+" ", 4)

	chunks := f.Format(text)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 80)
	}
}

func TestParagraphFormatter_Pure(t *testing.T) {
	f := NewParagraphFormatter()
	text := "Alpha paragraph that is long enough to stand on its own as a chunk of text.\n\nBeta paragraph that is also long enough to stand on its own as a chunk."
	first := f.Format(text)
	second := f.Format(text)
	assert.Equal(t, first, second)
}
