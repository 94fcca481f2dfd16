package parser

import (
	"fmt"
	"os"

	"github.com/dshills/symquery/pkg/types"
)

// Parser turns symbol-graph documents into classified, storage-ready symbols
type Parser struct {
	projectRoot string
}

// New creates a Parser that relativizes source locations against projectRoot.
// An empty root keeps every location absolute.
func New(projectRoot string) *Parser {
	return &Parser{
		projectRoot: projectRoot,
	}
}

// ParseFile decodes the document at filePath and extracts its type and method symbols
func (p *Parser) ParseFile(filePath string) (*types.ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	result, err := p.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	result.Path = filePath
	return result, nil
}

// Extract classifies every symbol of a decoded document, drops everything that
// is not a type or a method, and resolves method owners from the document's
// own memberOf relationships.
func (p *Parser) Extract(doc *Document) (*types.ParseResult, error) {
	module := doc.ModuleName()
	owners := MemberOf(doc.Relationships)

	result := &types.ParseResult{
		Module:        module,
		FormatVersion: doc.Version(),
		SymbolsSeen:   len(doc.Symbols),
		Symbols:       make([]types.Symbol, 0, len(doc.Symbols)),
	}

	for i := range doc.Symbols {
		raw := &doc.Symbols[i]

		kind, subkind := Classify(raw.Kind.Identifier)
		if !kind.Retained() {
			continue
		}

		sym := types.Symbol{
			USR:         raw.Identifier.Precise,
			Name:        raw.Names.Title,
			Kind:        kind,
			Subkind:     subkind,
			File:        p.sourceFile(raw),
			Line:        raw.SourceLine(),
			Declaration: raw.DeclarationString(),
			Doc:         raw.DocString(),
			Module:      module,
		}
		// Only methods have owners; nested types stay top-level rows
		if kind == types.KindMethod {
			sym.ParentUSR = owners[sym.USR]
		}

		if err := sym.Validate(); err != nil {
			return nil, fmt.Errorf("symbol %q (%s): %w", raw.Names.Title, raw.Kind.Identifier, err)
		}
		result.Symbols = append(result.Symbols, sym)
	}

	return result, nil
}

// sourceFile normalizes a symbol's location URI to a project-relative path
func (p *Parser) sourceFile(s *Symbol) string {
	path := NormalizeURI(s.SourceURI())
	if path == "" {
		return ""
	}
	return Relativize(path, p.projectRoot)
}
