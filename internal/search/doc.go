// Package search builds the catalogue full-text index.
//
// Documents are indexed in memory with bleve using the English analyzer.
// The index serializes to a snapshot holding the inverted index (term,
// field, document, frequency and positions), per-field lengths and a store
// mapping each document id to its title and href.
package search
