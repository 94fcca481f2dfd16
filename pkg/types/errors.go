package types

import "errors"

// Error kinds shared by the indexer, storage and query layers. Callers match
// them with errors.Is; the wrapped error carries the underlying diagnostic.
var (
	// ErrNoDocuments is returned when discovery finds no symbol-graph documents
	ErrNoDocuments = errors.New("no symbol graph documents found")
	// ErrDecode is returned for a malformed symbol-graph document
	ErrDecode = errors.New("decode symbol graph")
	// ErrStoreOpen is returned when the SQLite store cannot be opened
	ErrStoreOpen = errors.New("open store")
	// ErrSchema is returned when the schema cannot be created
	ErrSchema = errors.New("create schema")
	// ErrWrite is returned when an upsert or commit fails
	ErrWrite = errors.New("write store")
	// ErrRead is returned when a query fails
	ErrRead = errors.New("read store")

	// ErrEmptyUSR is returned when a retained symbol has no identifier
	ErrEmptyUSR = errors.New("symbol has empty usr")
)
