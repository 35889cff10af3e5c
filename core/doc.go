// Package core defines the shared contracts of the symgo framework: the
// backend capability interface, the process-wide capability registry and the
// error taxonomy used across all packages.
//
// A capability is a named external service (reasoning model, embedding
// model, vector index) reachable through the Registry. All higher-level
// components (symbols, memories, retrieval pipelines) talk to backends
// exclusively through this contract; none of them hard-code a vendor.
//
// Rationale: keeping the contracts centralized avoids dependency cycles and
// lets adapters (OpenAI, Anthropic, local stores) be added without touching
// consumer code.
package core
