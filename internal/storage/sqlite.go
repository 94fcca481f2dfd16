package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dshills/symquery/pkg/types"
)

// MemoryPath opens a private in-memory store
const MemoryPath = ":memory:"

// busyTimeoutMillis bounds how long a connection waits on a locked store
const busyTimeoutMillis = 5000

const symbolColumns = `usr, name, kind, subkind, file, line, declaration, doc, parent_usr, module`

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// dsn returns the data source name for path. File-backed stores take the
// write lock when a transaction begins rather than on first write.
func dsn(path string) string {
	if path == MemoryPath {
		return path
	}
	return path + "?_txlock=immediate"
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn(dbPath))
	if err != nil {
		return nil, err
	}

	// A single connection keeps one writer and keeps :memory: stores shared
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeoutMillis),
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return db, nil
}

// NewSQLiteStorage opens (creating if necessary) the store at dbPath. The
// schema is not touched; writers call EnsureSchema before their first upsert.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, storeError(types.ErrStoreOpen, dbPath, err)
	}
	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeError(types.ErrWrite, "begin transaction", err)
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Symbol operations

const upsertSymbolQuery = `
	INSERT INTO symbols (` + symbolColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(usr) DO UPDATE SET
		name = excluded.name,
		kind = excluded.kind,
		subkind = excluded.subkind,
		file = excluded.file,
		line = excluded.line,
		declaration = excluded.declaration,
		doc = excluded.doc,
		parent_usr = excluded.parent_usr,
		module = excluded.module
`

// upsertSymbolWithQuerier is the internal implementation that uses a querier
func upsertSymbolWithQuerier(ctx context.Context, q querier, symbol *Symbol) error {
	if symbol.USR == "" {
		return storeError(types.ErrWrite, "upsert symbol "+symbol.Name, types.ErrEmptyUSR)
	}
	_, err := q.ExecContext(ctx, upsertSymbolQuery, symbolArgs(symbol)...)
	if err != nil {
		return storeError(types.ErrWrite, "upsert symbol "+symbol.USR, err)
	}
	return nil
}

func symbolArgs(symbol *Symbol) []interface{} {
	return []interface{}{
		symbol.USR, symbol.Name, symbol.Kind, symbol.Subkind,
		symbol.File, symbol.Line, symbol.Declaration, symbol.Doc,
		symbol.ParentUSR, symbol.Module,
	}
}

func (s *SQLiteStorage) UpsertSymbol(ctx context.Context, symbol *Symbol) error {
	return upsertSymbolWithQuerier(ctx, s.querier(), symbol)
}

// scanner is implemented by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSymbol(row scanner) (*Symbol, error) {
	symbol := &Symbol{}
	err := row.Scan(
		&symbol.USR, &symbol.Name, &symbol.Kind, &symbol.Subkind,
		&symbol.File, &symbol.Line, &symbol.Declaration, &symbol.Doc,
		&symbol.ParentUSR, &symbol.Module,
	)
	if err != nil {
		return nil, err
	}
	return symbol, nil
}

func getSymbolWithQuerier(ctx context.Context, q querier, usr string) (*Symbol, error) {
	query := `SELECT ` + symbolColumns + ` FROM symbols WHERE usr = ?`
	symbol, err := scanSymbol(q.QueryRowContext(ctx, query, usr))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError(types.ErrRead, "get symbol "+usr, err)
	}
	return symbol, nil
}

func (s *SQLiteStorage) GetSymbol(ctx context.Context, usr string) (*Symbol, error) {
	return getSymbolWithQuerier(ctx, s.querier(), usr)
}

// findSymbolsWithQuerier returns every symbol of the given kind whose name
// matches exactly, ordered by file then line with usr as the final tie-break.
func findSymbolsWithQuerier(ctx context.Context, q querier, kind types.SymbolKind, name string) ([]*Symbol, error) {
	query := `
		SELECT ` + symbolColumns + `
		FROM symbols
		WHERE name = ? AND kind = ?
		ORDER BY file, line, usr
	`
	op := fmt.Sprintf("find %s %q", kind, name)
	rows, err := q.QueryContext(ctx, query, name, string(kind))
	if err != nil {
		return nil, storeError(types.ErrRead, op, err)
	}
	defer rows.Close()

	symbols := []*Symbol{}
	for rows.Next() {
		symbol, err := scanSymbol(rows)
		if err != nil {
			return nil, storeError(types.ErrRead, op, err)
		}
		symbols = append(symbols, symbol)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(types.ErrRead, op, err)
	}
	return symbols, nil
}

func (s *SQLiteStorage) FindSymbols(ctx context.Context, kind types.SymbolKind, name string) ([]*Symbol, error) {
	return findSymbolsWithQuerier(ctx, s.querier(), kind, name)
}

// listMemberDeclarationsWithQuerier returns the declarations of up to limit
// methods owned by parentUSR, ordered by name, file and line. Rows with an
// empty declaration are dropped after the limit is applied.
func listMemberDeclarationsWithQuerier(ctx context.Context, q querier, parentUSR string, limit int) ([]string, error) {
	declarations := []string{}
	if limit <= 0 || parentUSR == "" {
		return declarations, nil
	}

	query := `
		SELECT declaration
		FROM symbols
		WHERE parent_usr = ? AND kind = 'method'
		ORDER BY name, file, line
		LIMIT ?
	`
	op := "list members of " + parentUSR
	rows, err := q.QueryContext(ctx, query, parentUSR, limit)
	if err != nil {
		return nil, storeError(types.ErrRead, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var declaration string
		if err := rows.Scan(&declaration); err != nil {
			return nil, storeError(types.ErrRead, op, err)
		}
		if declaration == "" {
			continue
		}
		declarations = append(declarations, declaration)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(types.ErrRead, op, err)
	}
	return declarations, nil
}

func (s *SQLiteStorage) ListMemberDeclarations(ctx context.Context, parentUSR string, limit int) ([]string, error) {
	return listMemberDeclarationsWithQuerier(ctx, s.querier(), parentUSR, limit)
}

// Status operations

func getStatusWithQuerier(ctx context.Context, q querier) (*Status, error) {
	status := &Status{}

	err := q.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(kind = 'type'), 0),
			COALESCE(SUM(kind = 'method'), 0),
			COUNT(DISTINCT NULLIF(file, '')),
			COUNT(DISTINCT NULLIF(module, ''))
		FROM symbols
	`).Scan(&status.TotalSymbols, &status.Types, &status.Methods, &status.Files, &status.Modules)
	if err != nil {
		return nil, storeError(types.ErrRead, "count symbols", err)
	}

	// Calculate database size
	var pageCount, pageSize int64
	err = q.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	if err == nil {
		_ = q.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		status.SizeBytes = pageCount * pageSize
	}

	return status, nil
}

func (s *SQLiteStorage) GetStatus(ctx context.Context) (*Status, error) {
	return getStatusWithQuerier(ctx, s.querier())
}

// sqliteTx wraps a SQL transaction. The upsert statement is prepared once per
// transaction on first use.
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
	upsert  *sql.Stmt
}

func (t *sqliteTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return storeError(types.ErrWrite, "commit", err)
	}
	return nil
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

func (t *sqliteTx) EnsureSchema(ctx context.Context) error {
	return ensureSchemaWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) UpsertSymbol(ctx context.Context, symbol *Symbol) error {
	if symbol.USR == "" {
		return storeError(types.ErrWrite, "upsert symbol "+symbol.Name, types.ErrEmptyUSR)
	}
	if t.upsert == nil {
		stmt, err := t.tx.PrepareContext(ctx, upsertSymbolQuery)
		if err != nil {
			return storeError(types.ErrWrite, "prepare upsert", err)
		}
		t.upsert = stmt
	}
	if _, err := t.upsert.ExecContext(ctx, symbolArgs(symbol)...); err != nil {
		return storeError(types.ErrWrite, "upsert symbol "+symbol.USR, err)
	}
	return nil
}

func (t *sqliteTx) GetSymbol(ctx context.Context, usr string) (*Symbol, error) {
	return getSymbolWithQuerier(ctx, t.querier(), usr)
}

func (t *sqliteTx) FindSymbols(ctx context.Context, kind types.SymbolKind, name string) ([]*Symbol, error) {
	return findSymbolsWithQuerier(ctx, t.querier(), kind, name)
}

func (t *sqliteTx) ListMemberDeclarations(ctx context.Context, parentUSR string, limit int) ([]string, error) {
	return listMemberDeclarationsWithQuerier(ctx, t.querier(), parentUSR, limit)
}

func (t *sqliteTx) GetStatus(ctx context.Context) (*Status, error) {
	return getStatusWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) Close() error {
	return fmt.Errorf("cannot close transaction, use Commit or Rollback")
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	return nil, fmt.Errorf("nested transactions not supported")
}
