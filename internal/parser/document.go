package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/dshills/symquery/pkg/types"
)

// Document is the decoded shape of one *.symbols.json export.
// Optional objects are pointers; a nil pointer means the field was absent and
// the accessor methods fall back to the zero value.
type Document struct {
	Metadata      *Metadata      `json:"metadata"`
	Module        *Module        `json:"module"`
	Symbols       []Symbol       `json:"symbols"`
	Relationships []Relationship `json:"relationships"`
}

// Metadata carries the export format version
type Metadata struct {
	FormatVersion *FormatVersion `json:"formatVersion"`
}

// FormatVersion is the symbol-graph format version triple
type FormatVersion struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

// Module names the compilation module the document belongs to
type Module struct {
	Name string `json:"name"`
}

// Symbol is one symbol descriptor
type Symbol struct {
	Kind                 SymbolKind            `json:"kind"`
	Identifier           Identifier            `json:"identifier"`
	Names                Names                 `json:"names"`
	Location             *Location             `json:"location"`
	DeclarationFragments []DeclarationFragment `json:"declarationFragments"`
	DocComment           *DocComment           `json:"docComment"`
}

// SymbolKind is the raw, ecosystem-specific kind label
type SymbolKind struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"displayName"`
}

// Identifier holds the precise (USR) identifier
type Identifier struct {
	Precise           string `json:"precise"`
	InterfaceLanguage string `json:"interfaceLanguage"`
}

// Names holds the display title
type Names struct {
	Title string `json:"title"`
}

// Location is a source location; Position.Character is decoded but unused
type Location struct {
	URI      string   `json:"uri"`
	Position Position `json:"position"`
}

// Position is a line/character pair
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// DeclarationFragment is one token of a declaration
type DeclarationFragment struct {
	Kind     string `json:"kind"`
	Spelling string `json:"spelling"`
}

// DocComment holds the documentation lines
type DocComment struct {
	Lines []DocLine `json:"lines"`
}

// DocLine is one line of documentation
type DocLine struct {
	Text string `json:"text"`
}

// Relationship is a typed edge between two symbols
type Relationship struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// Decode reads one symbol-graph document. Any failure, including a missing
// symbols list, is reported as a types.ErrDecode error.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrDecode, err)
	}
	// A document is exactly one JSON value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: %w", types.ErrDecode, errors.New("unexpected data after document"))
	}
	if doc.Symbols == nil {
		return nil, fmt.Errorf("%w: %w", types.ErrDecode, errors.New("missing symbols list"))
	}
	return &doc, nil
}

// ModuleName returns the declared module name, or "" when undeclared
func (d *Document) ModuleName() string {
	if d.Module == nil {
		return ""
	}
	return d.Module.Name
}

// Version returns the format version, or nil when the document has no metadata
func (d *Document) Version() *semver.Version {
	if d.Metadata == nil || d.Metadata.FormatVersion == nil {
		return nil
	}
	v := d.Metadata.FormatVersion
	return semver.New(v.Major, v.Minor, v.Patch, "", "")
}

// DeclarationString concatenates the fragment spellings verbatim
func (s *Symbol) DeclarationString() string {
	var b strings.Builder
	for _, f := range s.DeclarationFragments {
		b.WriteString(f.Spelling)
	}
	return b.String()
}

// DocString joins the documentation lines with newlines
func (s *Symbol) DocString() string {
	if s.DocComment == nil {
		return ""
	}
	lines := make([]string, len(s.DocComment.Lines))
	for i, l := range s.DocComment.Lines {
		lines[i] = l.Text
	}
	return strings.Join(lines, "\n")
}

// SourceURI returns the location URI, or "" when the location is unknown
func (s *Symbol) SourceURI() string {
	if s.Location == nil {
		return ""
	}
	return s.Location.URI
}

// SourceLine returns the location line, 0 when unknown or negative
func (s *Symbol) SourceLine() int {
	if s.Location == nil || s.Location.Position.Line < 0 {
		return 0
	}
	return s.Location.Position.Line
}
