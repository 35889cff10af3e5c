package memory

import (
	"context"
	"strings"

	"github.com/hupe1980/symgo/core"
	"github.com/hupe1980/symgo/internal/tokens"
	"github.com/hupe1980/symgo/symbol"
)

// DefaultMarker separates stored segments inside the character buffer.
const DefaultMarker = "[--++=|=++--]"

// defaultMaxTokens bounds the buffer when the reasoning backend does not
// report a context window.
const defaultMaxTokens = 4096

// TokenBudgetMemory is an append-mostly text buffer kept under a dynamic
// token ceiling. After every Store the total token count is at most
// maxTokens * ratio; eviction removes whole whitespace-delimited units from
// the front of the buffer, never truncating mid-unit.
//
// The ceiling is read from the reasoning capability when it reports a
// context window (MaxTokensReporter); token accounting is consumer-defined
// through CountTokens and defaults to whitespace-delimited counting, which
// matches the eviction granularity.
type TokenBudgetMemory struct {
	dispatcher *symbol.Dispatcher
	buffer     string
	marker     string
	ratio      float64

	// CountTokens reports the buffer's token count. Defaults to
	// whitespace-delimited counting.
	CountTokens func(string) int
	// MaxTokens reports the budget ceiling before the ratio is applied.
	// Defaults to the reasoning backend's reported window.
	MaxTokens func() int
}

var _ Memory = (*TokenBudgetMemory)(nil)

// TokenBudgetOptions configures a TokenBudgetMemory.
type TokenBudgetOptions struct {
	// Ratio is the fraction of the backend's max tokens the buffer may
	// occupy, in (0,1].
	Ratio float64
	// Marker overrides the segment delimiter.
	Marker string
}

// NewTokenBudgetMemory creates a token-budgeted memory with a ratio of 0.6
// by default.
func NewTokenBudgetMemory(dispatcher *symbol.Dispatcher, optFns ...func(o *TokenBudgetOptions)) *TokenBudgetMemory {
	opts := TokenBudgetOptions{Ratio: 0.6, Marker: DefaultMarker}
	for _, fn := range optFns {
		fn(&opts)
	}
	m := &TokenBudgetMemory{
		dispatcher:  dispatcher,
		marker:      opts.Marker,
		ratio:       opts.Ratio,
		CountTokens: tokens.CountWords,
	}
	m.MaxTokens = m.backendMaxTokens
	return m
}

// backendMaxTokens asks the reasoning capability for its context window.
func (m *TokenBudgetMemory) backendMaxTokens() int {
	if m.dispatcher == nil {
		return defaultMaxTokens
	}
	handle, err := m.dispatcher.Registry().Resolve(core.CapabilityReasoning)
	if err != nil {
		return defaultMaxTokens
	}
	if reporter, ok := handle.(core.MaxTokensReporter); ok {
		return reporter.MaxTokens()
	}
	return defaultMaxTokens
}

// Store appends text plus the segment marker, then evicts whole
// whitespace-delimited units from the front until the buffer's token count
// is within maxTokens * ratio. Each iteration strictly reduces the token
// count, so the loop always terminates.
func (m *TokenBudgetMemory) Store(_ context.Context, text string) error {
	m.buffer += text + m.marker
	budget := float64(m.MaxTokens()) * m.ratio
	for float64(m.CountTokens(m.buffer)) > budget {
		fields := strings.Fields(m.buffer)
		if len(fields) <= 1 {
			m.buffer = ""
			break
		}
		m.buffer = strings.Join(fields[1:], " ")
	}
	return nil
}

// Recall concatenates all history segments and answers the query with a
// dispatch-backed lookup over the joined text, not segment-by-segment.
func (m *TokenBudgetMemory) Recall(ctx context.Context, query string) (symbol.Symbol, error) {
	joined := strings.Join(m.History(), "")
	return m.dispatcher.Symbol(joined).Query(ctx, query)
}

// Forget removes the first occurrence of text through a dispatch-backed
// replace-with-empty operation, so approximate matches are honored. A
// missing substring is a no-op, never an error.
func (m *TokenBudgetMemory) Forget(ctx context.Context, text string) error {
	result, err := m.dispatcher.Symbol(m.buffer).Remove(ctx, text)
	if err != nil {
		return err
	}
	m.buffer = result.String()
	return nil
}

// Drop clears the buffer.
func (m *TokenBudgetMemory) Drop() { m.buffer = "" }

// History returns the stored segments in insertion order.
func (m *TokenBudgetMemory) History() []string {
	if m.buffer == "" {
		return nil
	}
	parts := strings.Split(m.buffer, m.marker)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Buffer returns the raw concatenated buffer, markers included.
func (m *TokenBudgetMemory) Buffer() string { return m.buffer }

// TokenCount reports the buffer's current token count.
func (m *TokenBudgetMemory) TokenCount() int { return m.CountTokens(m.buffer) }
