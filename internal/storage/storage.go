package storage

import (
	"context"

	"github.com/dshills/symquery/pkg/types"
)

// Storage defines the interface for persisting and querying indexed symbols
type Storage interface {
	// Schema operations
	EnsureSchema(ctx context.Context) error

	// Symbol operations
	UpsertSymbol(ctx context.Context, symbol *Symbol) error
	GetSymbol(ctx context.Context, usr string) (*Symbol, error)
	FindSymbols(ctx context.Context, kind types.SymbolKind, name string) ([]*Symbol, error)
	ListMemberDeclarations(ctx context.Context, parentUSR string, limit int) ([]string, error)

	// Status operations
	GetStatus(ctx context.Context) (*Status, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Symbol is one row of the symbols table. No column is nullable.
type Symbol struct {
	USR         string
	Name        string
	Kind        string
	Subkind     string
	File        string
	Line        int
	Declaration string
	Doc         string
	ParentUSR   string
	Module      string
}

// Status contains statistics about an indexed store
type Status struct {
	TotalSymbols int
	Types        int
	Methods      int
	Files        int
	Modules      int
	SizeBytes    int64
}

// ToRecord converts a stored symbol to its query output form
func (s *Symbol) ToRecord() types.Record {
	return types.Record{
		Kind:        s.Kind,
		Name:        s.Name,
		TypeKind:    s.Subkind,
		File:        s.File,
		Line:        s.Line,
		Declaration: s.Declaration,
		Doc:         s.Doc,
	}
}

// FromTypesSymbol converts a parsed symbol to a storage row
func FromTypesSymbol(s types.Symbol) *Symbol {
	return &Symbol{
		USR:         s.USR,
		Name:        s.Name,
		Kind:        string(s.Kind),
		Subkind:     s.Subkind,
		File:        s.File,
		Line:        s.Line,
		Declaration: s.Declaration,
		Doc:         s.Doc,
		ParentUSR:   s.ParentUSR,
		Module:      s.Module,
	}
}
