package memory

import (
	"context"

	"github.com/hupe1980/symgo/symbol"
)

// Memory is the common contract of all memory variants. Store appends,
// Recall answers a query over the remembered content and Forget removes an
// entry. The variants differ in their bounding strategy and in their
// behavior on a missing Forget target; see each implementation.
type Memory interface {
	Store(ctx context.Context, text string) error
	Recall(ctx context.Context, query string) (symbol.Symbol, error)
	Forget(ctx context.Context, text string) error
}
