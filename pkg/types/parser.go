package types

import "github.com/Masterminds/semver/v3"

// ParseResult represents the output of parsing one symbol-graph document
type ParseResult struct {
	// Document metadata
	Path          string
	Module        string
	FormatVersion *semver.Version // nil when the document carries no metadata

	// Retained type and method symbols, in document order
	Symbols []Symbol

	// Total symbol descriptors in the document, retained or not
	SymbolsSeen int
}

// Skipped returns the number of descriptors dropped by classification
func (pr *ParseResult) Skipped() int {
	return pr.SymbolsSeen - len(pr.Symbols)
}
