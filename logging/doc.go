// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug
// any structured logger. The core never logs-and-continues on a failed
// dispatch; logging here is for wiring, configuration and diagnostics only.
package logging
