package types

import (
	"errors"
	"slices"
)

// SymbolKind is the normalized classification of a symbol-graph entry
type SymbolKind string

const (
	KindType     SymbolKind = "type"
	KindMethod   SymbolKind = "method"
	KindProperty SymbolKind = "property"
	KindOther    SymbolKind = "other"
)

// SubkindFunc is the fixed subkind recorded for every method
const SubkindFunc = "func"

// SubkindVar is the fixed subkind recorded for properties and variables
const SubkindVar = "var"

// TypeSubkinds lists the structural variants that classify as KindType
var TypeSubkinds = []string{"struct", "class", "enum", "protocol", "actor", "typealias"}

// Retained reports whether symbols of this kind are persisted
func (k SymbolKind) Retained() bool {
	return k == KindType || k == KindMethod
}

// Symbol is one classified entry of a symbol-graph document, ready for storage.
// Absent data is always represented by the zero value, never by a nil pointer.
type Symbol struct {
	// Identification
	USR  string // globally unique symbol identifier
	Name string

	// Classification
	Kind    SymbolKind
	Subkind string

	// Location
	File string // project-root-relative, absolute outside the root, empty if unknown
	Line int    // 0 if unknown

	// Content
	Declaration string
	Doc         string

	// Ownership
	ParentUSR string
	Module    string
}

// Validate checks the invariants a symbol must hold before it is written
func (s *Symbol) Validate() error {
	if s.USR == "" {
		return ErrEmptyUSR
	}

	if !s.Kind.Retained() {
		return errors.New("only type and method symbols can be stored")
	}

	if s.Kind == KindType && !slices.Contains(TypeSubkinds, s.Subkind) {
		return errors.New("invalid type subkind: " + s.Subkind)
	}

	if s.Kind == KindType && s.ParentUSR != "" {
		return errors.New("type symbols have no owner")
	}

	if s.Kind == KindMethod && s.Subkind != SubkindFunc {
		return errors.New("invalid method subkind: " + s.Subkind)
	}

	if s.Line < 0 {
		return errors.New("invalid position: line must not be negative")
	}

	return nil
}
