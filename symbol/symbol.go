package symbol

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hupe1980/symgo/core"
	"github.com/hupe1980/symgo/internal/tokens"
)

// Symbol is an immutable-by-convention wrapper around an arbitrary payload
// (scalar, slice, map, set or nested Symbol). It carries a static context
// associated with its type tag and participates in the dynamic context
// shared process-wide across all symbols of that tag.
//
// Symbols are value types; operators return new symbols and never mutate
// the receiver. Container payloads are copied on construction so that two
// symbols never alias the same mutable container unless explicitly
// documented as shared.
type Symbol struct {
	payload    any
	typeTag    string
	static     string
	metadata   map[string]any
	dispatcher *Dispatcher
}

// Option customizes symbol construction.
type Option func(*Symbol)

// WithTypeTag sets the type tag under which dynamic context is accumulated.
func WithTypeTag(tag string) Option {
	return func(s *Symbol) { s.typeTag = tag }
}

// WithStaticContext sets the fixed instruction text associated with the
// symbol's type.
func WithStaticContext(static string) Option {
	return func(s *Symbol) { s.static = static }
}

// WithMetadata attaches an arbitrary metadata entry.
func WithMetadata(key string, value any) Option {
	return func(s *Symbol) {
		if s.metadata == nil {
			s.metadata = make(map[string]any)
		}
		s.metadata[key] = value
	}
}

// DefaultTypeTag is used when no explicit type tag is provided.
const DefaultTypeTag = "Symbol"

// New constructs a Symbol from payload. Nested symbols are unwrapped to
// their payload on construction, one level deep, recursively through
// supported containers. Unsupported payload kinds are stored as-is.
// Construction never fails.
func New(payload any, opts ...Option) Symbol {
	s := Symbol{typeTag: DefaultTypeTag}
	if inner, ok := payload.(Symbol); ok {
		s.payload = copyPayload(inner.payload)
		s.static = inner.static
		s.typeTag = inner.typeTag
		s.metadata = copyMetadata(inner.metadata)
		s.dispatcher = inner.dispatcher
	} else {
		s.payload = unwrap(payload)
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ToSymbol converts v to a Symbol, passing existing symbols through
// unchanged.
func ToSymbol(v any) Symbol {
	if s, ok := v.(Symbol); ok {
		return s
	}
	return New(v)
}

// unwrap removes one level of Symbol nesting and deep-copies supported
// containers so the new symbol owns its payload.
func unwrap(payload any) any {
	switch v := payload.(type) {
	case Symbol:
		return copyPayload(v.payload)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = unwrap(elem)
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []float32:
		out := make([]float32, len(v))
		copy(out, v)
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = unwrap(elem)
		}
		return out
	case map[string]struct{}:
		out := make(map[string]struct{}, len(v))
		for k := range v {
			out[k] = struct{}{}
		}
		return out
	default:
		return v
	}
}

// copyPayload deep-copies container payloads; scalars are returned as-is.
func copyPayload(payload any) any {
	return unwrap(payload)
}

func copyMetadata(md map[string]any) map[string]any {
	if md == nil {
		return nil
	}
	out := make(map[string]any, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out
}

// Payload returns the wrapped value.
func (s Symbol) Payload() any { return s.payload }

// TypeTag returns the tag under which dynamic context is keyed.
func (s Symbol) TypeTag() string { return s.typeTag }

// StaticContext returns the raw static context text.
func (s Symbol) StaticContext() string { return s.static }

// Metadata returns the metadata entry for key, or nil.
func (s Symbol) Metadata(key string) any {
	if s.metadata == nil {
		return nil
	}
	return s.metadata[key]
}

// IsNil reports whether the symbol wraps no payload at all. An empty string
// payload is not nil; callers distinguish "no result" from "empty result"
// through this check.
func (s Symbol) IsNil() bool { return s.payload == nil }

// Bool coerces the symbol to a boolean: nil payload is false, a literal
// boolean payload is itself, any other non-nil payload is true.
func (s Symbol) Bool() bool {
	switch v := s.payload.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

// Len reports the token count of the rendered string form, not the
// character or element count. Consumers use it for budget control.
func (s Symbol) Len() int { return tokens.Estimate(s.String()) }

// String renders the payload. Containers render as a bracketed sequence of
// the string form of each element, recursively; nil renders as the empty
// string.
func (s Symbol) String() string { return render(s.payload) }

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case Symbol:
		return t.String()
	case []any:
		parts := make([]string, len(t))
		for i, elem := range t {
			parts[i] = render(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []string:
		parts := make([]string, len(t))
		copy(parts, t)
		return "[" + strings.Join(parts, ", ") + "]"
	case []float32:
		parts := make([]string, len(t))
		for i, f := range t {
			parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + render(t[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case map[string]struct{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "{" + strings.Join(keys, ", ") + "}"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Attr resolves an attribute by name using a two-stage lookup: first the
// symbol's own metadata, then the payload (map key lookup). A lookup that
// fails both stages surfaces a single chained error naming the missing
// attribute and the original cause.
func (s Symbol) Attr(name string) (any, error) {
	if s.metadata != nil {
		if v, ok := s.metadata[name]; ok {
			return v, nil
		}
	}
	if m, ok := s.payload.(map[string]any); ok {
		if v, ok := m[name]; ok {
			return v, nil
		}
		return nil, &core.AttributeError{
			Attr:  name,
			Cause: fmt.Errorf("key '%s' not present in payload map", name),
		}
	}
	return nil, &core.AttributeError{
		Attr:  name,
		Cause: fmt.Errorf("payload of type %T has no member '%s'", s.payload, name),
	}
}

func (s Symbol) dispatcherOrErr() (*Dispatcher, error) {
	if s.dispatcher == nil {
		return nil, &core.ConfigurationError{
			Capability: core.CapabilityReasoning,
			Reason:     "symbol is not bound to a dispatcher",
		}
	}
	return s.dispatcher, nil
}

// withResult builds the symbol holding a dispatch result. The subject is
// never mutated; the result inherits tag and static context unless the call
// declared a different return tag.
func (s Symbol) withResult(payload any, returnTag string) Symbol {
	out := Symbol{payload: payload, typeTag: s.typeTag, static: s.static, dispatcher: s.dispatcher}
	if returnTag != "" && returnTag != s.typeTag {
		out.typeTag = returnTag
		out.static = ""
	}
	return out
}
