package symbol

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/hupe1980/symgo/core"
)

// Operator sugar. Every method here is a thin call-through to
// Dispatcher.Dispatch with the matching operation kind; none of them embeds
// backend-calling logic. Methods that have a cheap exact fast path (direct
// index or key lookup) take it before falling back to dispatch.

var boolChain = []PostProcessor{StripPostProcessor, BoolPostProcessor}

func (s Symbol) dispatchBool(ctx context.Context, call Call, operands ...Symbol) (bool, error) {
	d, err := s.dispatcherOrErr()
	if err != nil {
		return false, err
	}
	if call.PostProcessors == nil {
		call.PostProcessors = boolChain
	}
	result, err := d.Dispatch(ctx, call, s, operands...)
	if err != nil {
		return false, err
	}
	return result.Bool(), nil
}

func (s Symbol) dispatchText(ctx context.Context, call Call, operands ...Symbol) (Symbol, error) {
	d, err := s.dispatcherOrErr()
	if err != nil {
		return Symbol{}, err
	}
	if call.PostProcessors == nil {
		call.PostProcessors = []PostProcessor{StripPostProcessor}
	}
	return d.Dispatch(ctx, call, s, operands...)
}

// Equals delegates semantic equality to the backend. The tie-break for
// equality-like judgments belongs entirely to the backend; no local string
// comparison second-guesses it.
func (s Symbol) Equals(ctx context.Context, other any) (bool, error) {
	return s.dispatchBool(ctx, Call{Operation: OpEquals}, ToSymbol(other))
}

// NotEquals is the negation of Equals.
func (s Symbol) NotEquals(ctx context.Context, other any) (bool, error) {
	eq, err := s.Equals(ctx, other)
	return !eq, err
}

// Contains reports whether the subject contains other. A direct key or
// element hit on a container payload short-circuits to true; everything
// else is delegated to the backend.
func (s Symbol) Contains(ctx context.Context, other any) (bool, error) {
	operand := ToSymbol(other)
	switch payload := s.payload.(type) {
	case map[string]any:
		if key, ok := operand.payload.(string); ok {
			if _, hit := payload[key]; hit {
				return true, nil
			}
		}
	case map[string]struct{}:
		if key, ok := operand.payload.(string); ok {
			if _, hit := payload[key]; hit {
				return true, nil
			}
		}
	case []any:
		// Non-comparable operand types (maps, slices) skip the fast path.
		if target := operand.payload; target == nil || reflect.TypeOf(target).Comparable() {
			for _, elem := range payload {
				if elem == target {
					return true, nil
				}
			}
		}
	}
	return s.dispatchBool(ctx, Call{Operation: OpContains}, operand)
}

// Combine merges the subject with other into a new symbol.
func (s Symbol) Combine(ctx context.Context, other any) (Symbol, error) {
	return s.dispatchText(ctx, Call{Operation: OpCombine}, ToSymbol(other))
}

// Replace substitutes occurrences of old with new in the subject.
func (s Symbol) Replace(ctx context.Context, old, new any) (Symbol, error) {
	return s.dispatchText(ctx, Call{Operation: OpReplace}, ToSymbol(old), ToSymbol(new))
}

// Remove deletes occurrences of other from the subject. It is Replace with
// an empty substitute, so approximate matches are honored by the backend.
func (s Symbol) Remove(ctx context.Context, other any) (Symbol, error) {
	return s.Replace(ctx, other, "")
}

// Compare orders the subject against other under the given comparison
// operator ("<", "<=", ">", ">=").
func (s Symbol) Compare(ctx context.Context, other any, operator string) (bool, error) {
	return s.dispatchBool(ctx, Call{Operation: OpCompare, Operator: operator}, ToSymbol(other))
}

// GreaterThan is Compare with ">".
func (s Symbol) GreaterThan(ctx context.Context, other any) (bool, error) {
	return s.Compare(ctx, other, ">")
}

// LessThan is Compare with "<".
func (s Symbol) LessThan(ctx context.Context, other any) (bool, error) {
	return s.Compare(ctx, other, "<")
}

// Negate negates the meaning of the subject.
func (s Symbol) Negate(ctx context.Context) (Symbol, error) {
	return s.dispatchText(ctx, Call{Operation: OpNegate})
}

// Invert inverts the relationship expressed by the subject.
func (s Symbol) Invert(ctx context.Context) (Symbol, error) {
	return s.dispatchText(ctx, Call{Operation: OpInvert})
}

// And evaluates the conjunction of the subject and other.
func (s Symbol) And(ctx context.Context, other any) (Symbol, error) {
	return s.dispatchText(ctx, Call{Operation: OpLogic, Operator: "and"}, ToSymbol(other))
}

// Or evaluates the disjunction of the subject and other.
func (s Symbol) Or(ctx context.Context, other any) (Symbol, error) {
	return s.dispatchText(ctx, Call{Operation: OpLogic, Operator: "or"}, ToSymbol(other))
}

// Xor evaluates the exclusive disjunction of the subject and other.
func (s Symbol) Xor(ctx context.Context, other any) (Symbol, error) {
	return s.dispatchText(ctx, Call{Operation: OpLogic, Operator: "xor"}, ToSymbol(other))
}

// Include folds new information into the subject.
func (s Symbol) Include(ctx context.Context, information any) (Symbol, error) {
	return s.dispatchText(ctx, Call{Operation: OpInclude}, ToSymbol(information))
}

// Query answers a free-form question over the subject's payload.
func (s Symbol) Query(ctx context.Context, query string) (Symbol, error) {
	return s.dispatchText(ctx, Call{Operation: OpQuery}, New(query))
}

// IsInstanceOf asks whether the subject is of the described kind.
func (s Symbol) IsInstanceOf(ctx context.Context, kind string) (bool, error) {
	return s.dispatchBool(ctx, Call{Operation: OpIsInstanceOf}, New(kind))
}

// Clean removes typographic artifacts from the subject text.
func (s Symbol) Clean(ctx context.Context) (Symbol, error) {
	return s.dispatchText(ctx, Call{Operation: OpClean})
}

// Item retrieves an element by key or index. Integer indexes into slices
// and string keys into maps resolve directly; any other combination falls
// back to dispatch.
func (s Symbol) Item(ctx context.Context, key any) (Symbol, error) {
	switch payload := s.payload.(type) {
	case []any:
		if i, ok := key.(int); ok {
			if i < 0 || i >= len(payload) {
				return Symbol{}, fmt.Errorf("index %d out of range (len %d): %w", i, len(payload), core.ErrNotFound)
			}
			return s.withResult(copyPayload(payload[i]), ""), nil
		}
	case []string:
		if i, ok := key.(int); ok {
			if i < 0 || i >= len(payload) {
				return Symbol{}, fmt.Errorf("index %d out of range (len %d): %w", i, len(payload), core.ErrNotFound)
			}
			return s.withResult(payload[i], ""), nil
		}
	case map[string]any:
		if k, ok := key.(string); ok {
			value, hit := payload[k]
			if !hit {
				return Symbol{}, fmt.Errorf("key '%s' not found: %w", k, core.ErrNotFound)
			}
			return s.withResult(copyPayload(value), ""), nil
		}
	}
	return s.dispatchText(ctx, Call{Operation: OpGetItem}, ToSymbol(key))
}

// SetItem writes an element by key or index, returning the updated symbol.
// The receiver is never mutated.
func (s Symbol) SetItem(ctx context.Context, key, value any) (Symbol, error) {
	switch payload := s.payload.(type) {
	case []any:
		if i, ok := key.(int); ok {
			if i < 0 || i >= len(payload) {
				return Symbol{}, fmt.Errorf("index %d out of range (len %d): %w", i, len(payload), core.ErrNotFound)
			}
			out := make([]any, len(payload))
			copy(out, payload)
			out[i] = unwrap(value)
			return s.withResult(out, ""), nil
		}
	case map[string]any:
		if k, ok := key.(string); ok {
			out := make(map[string]any, len(payload)+1)
			for mk, mv := range payload {
				out[mk] = mv
			}
			out[k] = unwrap(value)
			return s.withResult(out, ""), nil
		}
	}
	return s.dispatchText(ctx, Call{Operation: OpSetItem}, ToSymbol(key), ToSymbol(value))
}

// DelItem removes an element by key or index, returning the updated symbol.
func (s Symbol) DelItem(ctx context.Context, key any) (Symbol, error) {
	switch payload := s.payload.(type) {
	case []any:
		if i, ok := key.(int); ok {
			if i < 0 || i >= len(payload) {
				return Symbol{}, fmt.Errorf("index %d out of range (len %d): %w", i, len(payload), core.ErrNotFound)
			}
			out := make([]any, 0, len(payload)-1)
			out = append(out, payload[:i]...)
			out = append(out, payload[i+1:]...)
			return s.withResult(out, ""), nil
		}
	case map[string]any:
		if k, ok := key.(string); ok {
			if _, hit := payload[k]; !hit {
				return Symbol{}, fmt.Errorf("key '%s' not found: %w", k, core.ErrNotFound)
			}
			out := make(map[string]any, len(payload))
			for mk, mv := range payload {
				if mk != k {
					out[mk] = mv
				}
			}
			return s.withResult(out, ""), nil
		}
	}
	return s.dispatchText(ctx, Call{Operation: OpDelItem}, ToSymbol(key))
}

// Concat joins the string forms of the subject and other locally, without a
// backend call.
func (s Symbol) Concat(other any) Symbol {
	return s.withResult(s.String()+ToSymbol(other).String(), "")
}

// Split divides the subject's string form on the given separator locally,
// without a backend call.
func (s Symbol) Split(sep string) Symbol {
	parts := strings.Split(s.String(), sep)
	out := make([]any, len(parts))
	for i, part := range parts {
		out[i] = part
	}
	return s.withResult(out, "")
}

// Embed turns the subject's string form into an embedding vector through
// the embedding capability.
func (s Symbol) Embed(ctx context.Context) ([]float32, error) {
	d, err := s.dispatcherOrErr()
	if err != nil {
		return nil, err
	}
	result, err := d.Dispatch(ctx, Call{Operation: OpEmbed}, s)
	if err != nil {
		return nil, err
	}
	vector, ok := result.Payload().([]float32)
	if !ok {
		return nil, &core.BackendError{
			Capability: core.CapabilityEmbedding,
			Err:        fmt.Errorf("backend returned %T, expected []float32", result.Payload()),
		}
	}
	return vector, nil
}
