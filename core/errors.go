package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a discrete memory entry or index entry does
// not exist. The character-buffer memory's Forget is the one documented
// exception that swallows it (no-op on a missing substring).
var ErrNotFound = errors.New("entry not found")

// ConfigurationError reports an unresolved or misconfigured capability. It
// is fatal and never retried by the core.
type ConfigurationError struct {
	Capability string
	Reason     string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for capability '%s': %s", e.Capability, e.Reason)
}

// BackendError wraps a transport or semantic failure from a backend. The
// core performs no automatic retry; retry, if desired, is an adapter
// concern.
type BackendError struct {
	Capability string
	Err        error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("backend '%s' failed: %v", e.Capability, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *BackendError) Unwrap() error { return e.Err }

// ReservedKeywordError reports a caller-supplied override that would shadow
// an internal configuration key. It is raised at request-build time, before
// any backend call is made.
type ReservedKeywordError struct {
	Keyword string
}

// Error implements the error interface.
func (e *ReservedKeywordError) Error() string {
	return fmt.Sprintf("override '%s' shadows a reserved keyword", e.Keyword)
}

// AttributeError reports a symbol attribute lookup that failed both on the
// wrapper and on the underlying payload. The original cause is chained so
// callers see a single message naming the missing attribute.
type AttributeError struct {
	Attr  string
	Cause error
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("cascading lookup failed, object has no attribute '%s'", e.Attr)
	}
	return fmt.Sprintf("cascading lookup failed, object has no attribute '%s': %v", e.Attr, e.Cause)
}

// Unwrap exposes the underlying cause.
func (e *AttributeError) Unwrap() error { return e.Cause }
