// Package retrieval implements the chunk/embed/index pipeline: a paragraph
// formatter splits a document into chunks, each chunk is embedded through
// the embedding capability and upserted into a named vector index, and
// queries are answered by re-embedding the query text and returning the
// stored spans of the top-k nearest entries.
//
// The pipeline is an ordinary consumer of the symbol dispatcher; it does
// not talk to backends directly. Two index backends ship with the package:
// an in-process store and a durable SQLite store.
package retrieval
