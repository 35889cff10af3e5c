package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/symgo/core"
)

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(func(o *DispatcherOptions) {
		o.Registry = core.NewRegistry()
	})
}

func TestContextRegistry_UnseenTagIsEmpty(t *testing.T) {
	reg := NewContextRegistry()
	assert.Empty(t, reg.Lines("Fresh"))
	assert.Equal(t, "", reg.renderDynamic("Fresh"))
}

func TestContextRegistry_SharedAcrossInstancesOfSameTag(t *testing.T) {
	d := newTestDispatcher()
	first := d.Symbol("one", WithTypeTag("Judge"))
	second := d.Symbol("two", WithTypeTag("Judge"))

	d.Contexts().Add("Judge", "be strict")

	assert.Contains(t, d.GlobalContext(first), "be strict")
	assert.Contains(t, d.GlobalContext(second), "be strict")
}

func TestGlobalContext_Rendering(t *testing.T) {
	d := newTestDispatcher()

	plain := d.Symbol("x")
	assert.Equal(t, "", d.GlobalContext(plain))

	static := d.Symbol("x", WithTypeTag("Writer"), WithStaticContext("write tersely"))
	assert.Equal(t, "[STATIC CONTEXT]\nwrite tersely", d.GlobalContext(static))

	d.Contexts().Add("Writer", "avoid jargon")
	d.Contexts().Add("Writer", "prefer active voice")
	got := d.GlobalContext(static)
	assert.Equal(t, "[STATIC CONTEXT]\nwrite tersely\n[DYNAMIC CONTEXT]\navoid jargon\nprefer active voice", got)

	d.Contexts().Clear("Writer")
	assert.Equal(t, "[STATIC CONTEXT]\nwrite tersely", d.GlobalContext(static))
}
