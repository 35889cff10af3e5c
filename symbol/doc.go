// Package symbol implements the symbolic execution core of symgo: the
// Symbol value type and the operation dispatcher that resolves semantic
// operators (equality, containment, combination, comparison, item access)
// by delegating them to a backend capability instead of evaluating them
// locally.
//
// A Symbol wraps an arbitrary payload together with a static, type-level
// context and a dynamic, run-time context shared across all symbols of the
// same type tag. Operators are exposed as named methods (Equals, Contains,
// Combine, ...) that are thin call-throughs to Dispatcher.Dispatch; no
// backend-calling logic lives inside the sugar itself.
//
// The dispatcher assembles a single textual prompt from the symbol's global
// context, optional few-shot examples and the rendered live query, sends it
// through the capability registry, applies post-processors to the raw reply
// and wraps the result into a new Symbol. It performs no retries and never
// mutates the subject.
package symbol
