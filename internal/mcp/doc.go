// Package mcp implements the Model Context Protocol (MCP) server for symquery.
//
// The MCP server exposes four tools to AI coding assistants:
//   - query_type: Look up types by exact name, with member method declarations
//   - query_method: Look up methods by exact name
//   - index_symbol_graphs: Ingest exported symbol graphs into the index
//   - get_status: Check whether the project is indexed and what it holds
//
// # Basic Usage
//
// The MCP server is typically started via the serve command:
//
//	symquery serve --root /path/to/package
//
// It then listens on stdin for MCP protocol messages and writes responses to
// stdout. Logs go to stderr.
//
// # Tool: query_type
//
//	Request:
//	{
//	  "name": "query_type",
//	  "arguments": {"name": "Foo", "membersLimit": 5}
//	}
//
//	Response (text content):
//	[
//	  {"kind":"type","name":"Foo","typeKind":"struct","file":"Sources/Foo.swift",
//	   "line":10,"declaration":"struct Foo","doc":"A shape.","members":["func bar()"]}
//	]
//
// members is omitted when the type has no methods or membersLimit is 0.
// The snake_case spelling members_limit is accepted as well.
//
// # Tool: query_method
//
//	Request:
//	{
//	  "name": "query_method",
//	  "arguments": {"name": "bar()"}
//	}
//
// The response has the same shape as query_type, without members. Both query
// tools return [] when nothing matches.
//
// # Tool: index_symbol_graphs
//
//	Request:
//	{
//	  "name": "index_symbol_graphs",
//	  "arguments": {"symbol_graph_dir": "/path/to/package/.build/aiq-symbol-graphs"}
//	}
//
//	Response:
//	{
//	  "indexed": true,
//	  "documents": 3,
//	  "records_written": 412,
//	  "duration_ms": 85
//	}
//
// Only one indexing run proceeds at a time; a concurrent call fails with
// -32002.
//
// # Error Handling
//
// Errors are returned as *MCPError:
//
//	{
//	  "code": -32602,
//	  "message": "name parameter is required",
//	  "data": {"param": "name", "reason": "missing or empty"}
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (decode, database, filesystem)
//   - -32002: Indexing in progress
//   - -32003: Project not indexed
//   - -32004: No symbol graphs found
package mcp
