package storage

import (
	"context"

	"github.com/dshills/symquery/pkg/types"
)

// schemaDDL creates the symbols table and its indexes. Every statement is
// guarded with IF NOT EXISTS so it can run against an existing store.
//
// idx_symbols_name_kind serves the exact-name lookup; idx_symbols_members is
// a partial index matching the member query's filter and sort order, so the
// member query must keep the literal kind = 'method' predicate.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS symbols (
    usr TEXT PRIMARY KEY NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    kind TEXT NOT NULL DEFAULT '' CHECK (kind IN ('type', 'method')),
    subkind TEXT NOT NULL DEFAULT '',
    file TEXT NOT NULL DEFAULT '',
    line INTEGER NOT NULL DEFAULT 0 CHECK (line >= 0),
    declaration TEXT NOT NULL DEFAULT '',
    doc TEXT NOT NULL DEFAULT '',
    parent_usr TEXT NOT NULL DEFAULT '',
    module TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_symbols_name_kind ON symbols(name, kind);

CREATE INDEX IF NOT EXISTS idx_symbols_members
    ON symbols(parent_usr, name, file, line)
    WHERE kind = 'method';
`

// ensureSchemaWithQuerier is the internal implementation that uses a querier
func ensureSchemaWithQuerier(ctx context.Context, q querier) error {
	if _, err := q.ExecContext(ctx, schemaDDL); err != nil {
		return storeError(types.ErrSchema, "create symbols table", err)
	}
	return nil
}

// EnsureSchema creates the symbols table and indexes if they are missing
func (s *SQLiteStorage) EnsureSchema(ctx context.Context) error {
	return ensureSchemaWithQuerier(ctx, s.querier())
}
