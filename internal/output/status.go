package output

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dshills/symquery/internal/storage"
)

// Status is the serializable summary of an index
type Status struct {
	DBPath    string `json:"dbPath"`
	Symbols   int    `json:"symbols"`
	Types     int    `json:"types"`
	Methods   int    `json:"methods"`
	Files     int    `json:"files"`
	Modules   int    `json:"modules"`
	SizeBytes int64  `json:"sizeBytes"`
}

// NewStatus builds a Status from store statistics
func NewStatus(dbPath string, s *storage.Status) Status {
	return Status{
		DBPath:    dbPath,
		Symbols:   s.TotalSymbols,
		Types:     s.Types,
		Methods:   s.Methods,
		Files:     s.Files,
		Modules:   s.Modules,
		SizeBytes: s.SizeBytes,
	}
}

// WriteStatus renders an index summary as one JSON line or a table
func WriteStatus(w io.Writer, format Format, status Status) error {
	if format != FormatText {
		return newEncoder(w).Encode(status)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendRows([]table.Row{
		{"Index", status.DBPath},
		{"Symbols", status.Symbols},
		{"Types", status.Types},
		{"Methods", status.Methods},
		{"Files", status.Files},
		{"Modules", status.Modules},
		{"Size", fmt.Sprintf("%.2f MB", float64(status.SizeBytes)/(1024*1024))},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
