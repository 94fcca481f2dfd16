// Package output renders query records for callers: one JSON object per line
// for tools, a single JSON array for MCP responses, or a table for people.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dshills/symquery/pkg/types"
)

// Format selects how records are rendered
type Format string

const (
	FormatJSON Format = "json" // JSON Lines
	FormatText Format = "text" // table
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or text)", s)
	}
}

// Write renders records to w in the given format
func Write(w io.Writer, format Format, records []types.Record) error {
	switch format {
	case FormatText:
		return WriteTable(w, records)
	default:
		return WriteJSONL(w, records)
	}
}

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// WriteJSONL writes each record as one compact JSON object followed by a
// newline. No records writes nothing.
func WriteJSONL(w io.Writer, records []types.Record) error {
	enc := newEncoder(w)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return fmt.Errorf("failed to encode record %q: %w", records[i].Name, err)
		}
	}
	return nil
}

// MarshalArray encodes records as one JSON array. No records encodes as [].
func MarshalArray(records []types.Record) ([]byte, error) {
	if records == nil {
		records = []types.Record{}
	}

	var buf bytes.Buffer
	if err := newEncoder(&buf).Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteTable renders records as a table with members listed under their type
func WriteTable(w io.Writer, records []types.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No matches.")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Kind", "Name", "Type Kind", "Location", "Declaration"})

	for _, r := range records {
		t.AppendRow(table.Row{r.Kind, r.Name, r.TypeKind, location(r), r.Declaration})
		for _, member := range r.Members {
			t.AppendRow(table.Row{"", "", "", "", "  " + member})
		}
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

func location(r types.Record) string {
	if r.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", r.File, r.Line)
}
