package query

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dshills/symquery/internal/storage"
	"github.com/dshills/symquery/pkg/types"
)

// DefaultMembersLimit is the number of member declarations attached to each
// type when the caller does not choose one
const DefaultMembersLimit = 5

// ErrUnsupportedKind is returned for a request whose kind is not type or method
var ErrUnsupportedKind = errors.New("unsupported query kind")

// Request contains parameters for a lookup
type Request struct {
	Kind         types.SymbolKind
	Name         string
	MembersLimit int // type lookups only; <= 0 disables member expansion
}

// Response contains lookup results and metadata
type Response struct {
	Records  []types.Record
	Duration time.Duration
}

// Querier answers exact-name lookups against an indexed store. It holds no
// connection; every call opens the store, reads, and closes it again.
type Querier struct {
	dbPath string
}

// New creates a Querier for the store at dbPath
func New(dbPath string) *Querier {
	return &Querier{dbPath: dbPath}
}

// DBPath returns the store path the querier reads from
func (q *Querier) DBPath() string {
	return q.dbPath
}

// Query performs a lookup based on the request parameters
func (q *Querier) Query(ctx context.Context, req Request) (*Response, error) {
	startTime := time.Now()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	store, err := q.open()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	var records []types.Record
	switch req.Kind {
	case types.KindType:
		records, err = queryType(ctx, store, req.Name, req.MembersLimit)
	default:
		records, err = queryByName(ctx, store, req.Kind, req.Name)
	}
	if err != nil {
		return nil, err
	}

	return &Response{
		Records:  records,
		Duration: time.Since(startTime),
	}, nil
}

// QueryByName returns every symbol of kind whose name is exactly name,
// ordered by file and line. No match is an empty, non-nil slice.
func (q *Querier) QueryByName(ctx context.Context, kind types.SymbolKind, name string) ([]types.Record, error) {
	resp, err := q.Query(ctx, Request{Kind: kind, Name: name})
	if err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// QueryType returns the types named name. When membersLimit is positive each
// type carries up to membersLimit of its method declarations.
func (q *Querier) QueryType(ctx context.Context, name string, membersLimit int) ([]types.Record, error) {
	resp, err := q.Query(ctx, Request{Kind: types.KindType, Name: name, MembersLimit: membersLimit})
	if err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// QueryMethod returns the methods named name
func (q *Querier) QueryMethod(ctx context.Context, name string) ([]types.Record, error) {
	return q.QueryByName(ctx, types.KindMethod, name)
}

// validateRequest ensures the lookup request is valid
func validateRequest(req Request) error {
	if !req.Kind.Retained() {
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, req.Kind)
	}
	return nil
}

// open opens the store for reading. A missing store is reported rather than
// created empty.
func (q *Querier) open() (storage.Storage, error) {
	if q.dbPath != storage.MemoryPath {
		if _, err := os.Stat(q.dbPath); err != nil {
			return nil, &storage.StoreError{Kind: types.ErrStoreOpen, Op: q.dbPath, Err: err}
		}
	}
	return storage.NewSQLiteStorage(q.dbPath)
}

func queryByName(ctx context.Context, store storage.Storage, kind types.SymbolKind, name string) ([]types.Record, error) {
	symbols, err := store.FindSymbols(ctx, kind, name)
	if err != nil {
		return nil, err
	}

	records := make([]types.Record, len(symbols))
	for i, sym := range symbols {
		records[i] = sym.ToRecord()
	}
	return records, nil
}

func queryType(ctx context.Context, store storage.Storage, name string, membersLimit int) ([]types.Record, error) {
	symbols, err := store.FindSymbols(ctx, types.KindType, name)
	if err != nil {
		return nil, err
	}

	records := make([]types.Record, len(symbols))
	for i, sym := range symbols {
		records[i] = sym.ToRecord()
		if membersLimit <= 0 || sym.USR == "" {
			continue
		}

		members, err := store.ListMemberDeclarations(ctx, sym.USR, membersLimit)
		if err != nil {
			return nil, err
		}
		if len(members) > 0 {
			records[i].Members = members
		}
	}
	return records, nil
}
