// Package storage provides SQLite-based persistence for indexed symbols.
//
// The store holds a single table keyed by USR:
//
//	symbols(usr, name, kind, subkind, file, line, declaration, doc, parent_usr, module)
//
// kind is "type" or "method". parent_usr links a method to the type that owns
// it and may name a symbol that was never stored. Every column is NOT NULL;
// absent values are stored as the empty string or 0.
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage(".aiq/index.sqlite")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	matches, err := db.FindSymbols(ctx, types.KindType, "Foo")
//
// # Transactions
//
// Indexing writes every symbol inside one transaction so a failed run leaves
// the store as it was:
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	if err := tx.EnsureSchema(ctx); err != nil {
//	    return err
//	}
//	for _, sym := range symbols {
//	    if err := tx.UpsertSymbol(ctx, sym); err != nil {
//	        return err
//	    }
//	}
//	return tx.Commit()
//
// Upserting a USR that already exists overwrites the row in place. Rows whose
// USR is absent from later runs are kept.
//
// # Errors
//
// Failures are returned as *StoreError carrying one of types.ErrStoreOpen,
// types.ErrSchema, types.ErrWrite or types.ErrRead together with the driver
// diagnostic.
//
// # Build Tags
//
// Pure Go build (default):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build ./...
//
// CGO build (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires C compiler
//
//     CGO_ENABLED=1 go build -tags sqlite_cgo ./...
package storage
