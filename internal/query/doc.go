// Package query answers exact-name lookups for types and methods.
//
// # Basic Usage
//
//	q := query.New(".aiq/index.sqlite")
//
//	records, err := q.QueryType(ctx, "Foo", query.DefaultMembersLimit)
//	for _, r := range records {
//	    fmt.Println(r.File, r.Line, r.Declaration, r.Members)
//	}
//
//	methods, err := q.QueryMethod(ctx, "bar()")
//
// # Matching
//
// Names match exactly and case-sensitively. Results are ordered by file then
// line. An unknown name yields an empty slice, not an error.
//
// # Member Expansion
//
// Type lookups attach up to MembersLimit declarations of methods whose owner
// is the matched type, ordered by method name. A type with no such methods,
// or a limit of zero, yields a record without the members field.
//
// # Store Handles
//
// Every call opens its own store handle and closes it before returning. There
// is no cache, so a lookup issued after an index commit sees the new rows.
package query
