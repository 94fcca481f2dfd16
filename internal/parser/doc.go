// Package parser decodes symbol-graph export documents (*.symbols.json) and
// normalizes their entries into storage-ready symbols.
//
// # Basic Usage
//
//	p := parser.New("/path/to/package")
//	result, err := p.ParseFile("/path/to/package/.build/graphs/Geom.symbols.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, symbol := range result.Symbols {
//	    fmt.Printf("%s %s (%s)\n", symbol.Kind, symbol.Name, symbol.Subkind)
//	}
//
// # Classification
//
// Raw kind labels are mapped by Classify, first match wins:
//   - labels containing ".func", ".method" or ".init" are methods
//   - "swift." followed by struct, class, enum, protocol, actor or typealias is a type
//   - labels containing "var" or "property" are properties
//   - everything else is "other"
//
// Only types and methods survive extraction.
//
// # Locations
//
// Location URIs are stripped of their file:// scheme, percent-decoded, and
// made relative to the project root. Files outside the root (dependencies)
// keep their absolute path; symbols without a location get an empty path and
// line 0.
//
// # Ownership
//
// A method's parent is resolved from the memberOf relationships declared in
// the same document. There is no cross-document lookup, so a method whose
// owner edge lives in another document has an empty parent.
package parser
