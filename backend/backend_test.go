package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat(t *testing.T) {
	for _, v := range []any{0.7, float32(0.7), 1, int64(1)} {
		_, ok := Float(v)
		assert.True(t, ok, "%T", v)
	}
	_, ok := Float("0.7")
	assert.False(t, ok)
	_, ok = Float(nil)
	assert.False(t, ok)
}

func TestInt(t *testing.T) {
	n, ok := Int(4096.0)
	assert.True(t, ok)
	assert.Equal(t, int64(4096), n)

	_, ok = Int("4096")
	assert.False(t, ok)
}
