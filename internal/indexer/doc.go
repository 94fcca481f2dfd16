// Package indexer ingests exported symbol graphs into the SQLite store.
//
// # Basic Usage
//
//	idx := indexer.New("/path/to/package", indexer.WithLogger(logger))
//
//	stats, err := idx.Index(ctx, ".build/aiq-symbol-graphs", ".aiq/index.sqlite")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Indexed %d symbols from %d documents in %v\n",
//	    stats.RowsWritten, stats.Documents, stats.Duration)
//
// # Indexing Pipeline
//
//  1. Discovery: walk the source directory, skip hidden entries, keep files
//     ending in .symbols.json and sort them by path
//  2. Schema: create the symbols table and indexes if missing
//  3. Parse: decode each document, classify its symbols and keep types and
//     methods, relativize source paths against the project root
//  4. Store: upsert every kept symbol by USR inside one transaction
//
// Documents are processed one at a time in sorted order, so the same input
// always produces the same store contents. Any failure (malformed document,
// a kept symbol with no USR, a write error) rolls the transaction back.
//
// # Concurrency
//
// Index is sequential. Callers that may trigger overlapping runs (the MCP
// server) guard them with IndexLock:
//
//	if !lock.TryAcquire() {
//	    return errIndexingInProgress
//	}
//	defer lock.Release()
//
// Queries may run while an index is in flight; they see the store either
// before or after the commit.
package indexer
