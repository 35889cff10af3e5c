// Package memory contains bounded conversational memory implementations
// built on top of the symbol dispatcher: a discrete sliding-window list, a
// token-budgeted character buffer and a vector-index backed long-term
// store. All of them recall through backend dispatch rather than local
// string search, so approximate and semantic matches are honored.
//
// Each memory instance exclusively owns its buffer; nothing is shared
// across instances implicitly.
package memory
