// Package backend holds the capability adapters that connect the dispatch
// core to concrete vendor APIs. Each adapter lives in its own subpackage and
// implements core.Capability plus the optional interfaces it can honestly
// support (MaxTokensReporter, Commander, Embedder).
package backend

// Info describes a configured backend adapter.
type Info struct {
	Name     string
	Provider string
}

// Float coerces an override value into a float64. Overrides travel through
// map[string]any and may arrive as any numeric kind, including decoded JSON
// numbers.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Int coerces an override value into an int64.
func Int(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	}
	return 0, false
}
