// Package session records conversational exchanges and persists them as
// JSON. A Conversation is the durable counterpart of the volatile memory
// variants: exchanges carry stable ids and timestamps so transcripts can be
// saved, reloaded and replayed into a memory or an index later.
package session
