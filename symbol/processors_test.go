package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripPostProcessor(t *testing.T) {
	got, err := StripPostProcessor("  'hello world'\n")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	// non-strings pass through
	got, err = StripPostProcessor(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestBoolPostProcessor(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{"True", true},
		{"true", true},
		{"yes", true},
		{"False", false},
		{"no", false},
		{"", false},
		{"Yes, they are equivalent.", true},
		{"These differ.", false},
		{"No, yes-men would disagree.", false},
		{"True: both name the same thing.", true},
		{true, true},
	}
	for _, tt := range tests {
		got, err := BoolPostProcessor(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}

func TestIntPostProcessor(t *testing.T) {
	got, err := IntPostProcessor(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = IntPostProcessor("not a number")
	assert.Error(t, err)
}

func TestListPostProcessor(t *testing.T) {
	got, err := ListPostProcessor("- apples\n- pears\n\n- plums\n")
	require.NoError(t, err)
	assert.Equal(t, []any{"apples", "pears", "plums"}, got)

	got, err = ListPostProcessor("")
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)
}

func TestCodePostProcessor(t *testing.T) {
	got, err := CodePostProcessor("Here you go:\n```go\nfmt.Println(\"hi\")\n```\n")
	require.NoError(t, err)
	assert.Equal(t, "fmt.Println(\"hi\")", got)

	got, err = CodePostProcessor("no fences here")
	require.NoError(t, err)
	assert.Equal(t, "no fences here", got)
}
