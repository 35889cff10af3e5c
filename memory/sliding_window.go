package memory

import (
	"context"
	"fmt"

	"github.com/hupe1980/symgo/core"
	"github.com/hupe1980/symgo/symbol"
)

// SlidingWindowListMemory keeps a bounded sequence of discrete entries.
// Storing beyond the maximum size drops the oldest entries first; Recall
// returns only the last windowSize entries, insertion order preserved.
//
// Unlike TokenBudgetMemory.Forget, Forget on a missing entry returns
// ErrNotFound. Callers choosing this variant must handle value-not-found.
type SlidingWindowListMemory struct {
	dispatcher *symbol.Dispatcher
	entries    []string
	windowSize int
	maxSize    int
}

var _ Memory = (*SlidingWindowListMemory)(nil)

// SlidingWindowOptions configures a SlidingWindowListMemory.
type SlidingWindowOptions struct {
	WindowSize int
	MaxSize    int
}

// NewSlidingWindowListMemory creates a sliding-window memory with a window
// of 10 and a capacity of 1000 entries by default.
func NewSlidingWindowListMemory(dispatcher *symbol.Dispatcher, optFns ...func(o *SlidingWindowOptions)) *SlidingWindowListMemory {
	opts := SlidingWindowOptions{WindowSize: 10, MaxSize: 1000}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &SlidingWindowListMemory{
		dispatcher: dispatcher,
		windowSize: opts.WindowSize,
		maxSize:    opts.MaxSize,
	}
}

// Store appends an entry, dropping the oldest entries once the capacity is
// exceeded.
func (m *SlidingWindowListMemory) Store(_ context.Context, text string) error {
	m.entries = append(m.entries, text)
	if len(m.entries) > m.maxSize {
		m.entries = m.entries[len(m.entries)-m.maxSize:]
	}
	return nil
}

// Recall returns the last windowSize entries in insertion order. The query
// is ignored; windowing is positional for this variant.
func (m *SlidingWindowListMemory) Recall(_ context.Context, _ string) (symbol.Symbol, error) {
	start := len(m.entries) - m.windowSize
	if start < 0 {
		start = 0
	}
	window := make([]any, 0, len(m.entries)-start)
	for _, entry := range m.entries[start:] {
		window = append(window, entry)
	}
	if m.dispatcher != nil {
		return m.dispatcher.Symbol(window), nil
	}
	return symbol.New(window), nil
}

// Forget removes the first exact occurrence of text.
func (m *SlidingWindowListMemory) Forget(_ context.Context, text string) error {
	for i, entry := range m.entries {
		if entry == text {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("memory entry '%s': %w", text, core.ErrNotFound)
}

// Len returns the number of stored entries.
func (m *SlidingWindowListMemory) Len() int { return len(m.entries) }

// History returns a copy of all stored entries in insertion order.
func (m *SlidingWindowListMemory) History() []string {
	out := make([]string, len(m.entries))
	copy(out, m.entries)
	return out
}
