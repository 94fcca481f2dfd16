// Package types provides shared type definitions for symquery.
//
// This package defines the domain types used across the parser, indexer,
// storage and query layers.
//
// # Core Types
//
// Symbol is one classified symbol-graph entry, normalized for storage:
//
//	symbol := types.Symbol{
//	    USR:         "s:4Geom5ShapeV",
//	    Name:        "Shape",
//	    Kind:        types.KindType,
//	    Subkind:     "struct",
//	    File:        "Sources/Geom/Shape.swift",
//	    Line:        10,
//	    Declaration: "struct Shape",
//	}
//
// Only KindType and KindMethod symbols are retained; properties and every
// other classification are dropped by the parser.
//
// Record is the query-side view emitted to callers, one JSON object per line:
//
//	{"kind":"type","name":"Shape","typeKind":"struct","file":"Sources/Geom/Shape.swift","line":10,"declaration":"struct Shape","doc":"","members":["func area() -> Double"]}
//
// # Errors
//
// The error kinds (ErrNoDocuments, ErrDecode, ErrStoreOpen, ErrSchema,
// ErrWrite, ErrRead) are matched with errors.Is. An empty query result is
// never an error.
package types
