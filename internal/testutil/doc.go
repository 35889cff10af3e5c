// Package testutil contains small fluent builders used across package tests
// to reduce boilerplate when wiring dispatchers against mock capabilities.
// Not part of the public API (internal path).
package testutil
