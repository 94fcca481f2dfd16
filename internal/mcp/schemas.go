package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// queryTypeTool returns the tool definition for query_type
func queryTypeTool(defaultMembersLimit int) mcp.Tool {
	return mcp.Tool{
		Name:        "query_type",
		Description: "Look up types (struct, class, enum, protocol, actor, typealias) by exact name and list some of their methods",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Exact, case-sensitive type name (e.g. 'Foo')",
				},
				"membersLimit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum method declarations attached to each type; 0 disables member expansion (members_limit is accepted too)",
					"default":     defaultMembersLimit,
					"minimum":     0,
				},
			},
			Required: []string{"name"},
		},
	}
}

// queryMethodTool returns the tool definition for query_method
func queryMethodTool() mcp.Tool {
	return mcp.Tool{
		Name:        "query_method",
		Description: "Look up methods, functions and initializers by exact name",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Exact, case-sensitive method title including its argument labels (e.g. 'bar()' or 'move(to:)')",
				},
			},
			Required: []string{"name"},
		},
	}
}

// indexSymbolGraphsTool returns the tool definition for index_symbol_graphs
func indexSymbolGraphsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_symbol_graphs",
		Description: "Ingest exported symbol graph documents (*.symbols.json) into the project's index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbol_graph_dir": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the directory holding the symbol graphs (defaults to the configured directory)",
				},
			},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report whether the project is indexed and how many types and methods the index holds",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
