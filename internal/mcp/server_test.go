package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/suite"

	"github.com/dshills/symquery/internal/config"
	"github.com/dshills/symquery/pkg/types"
)

const geomDocument = `{
  "module": {"name": "Geom"},
  "symbols": [
    {
      "kind": {"identifier": "swift.struct"},
      "identifier": {"precise": "s:Foo"},
      "names": {"title": "Foo"},
      "location": {"uri": "file://ROOT/Sources/Foo.swift", "position": {"line": 10}},
      "declarationFragments": [{"spelling": "struct "}, {"spelling": "Foo"}],
      "docComment": {"lines": [{"text": "A shape."}]}
    },
    {
      "kind": {"identifier": "swift.method"},
      "identifier": {"precise": "s:Foo.bar"},
      "names": {"title": "bar()"},
      "location": {"uri": "file://ROOT/Sources/Foo.swift", "position": {"line": 12}},
      "declarationFragments": [{"spelling": "func "}, {"spelling": "bar"}, {"spelling": "()"}]
    }
  ],
  "relationships": [{"source": "s:Foo.bar", "target": "s:Foo", "kind": "memberOf"}]
}`

// ServerTestSuite exercises the MCP tool handlers against a real store
type ServerTestSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    config.Config
	server *Server
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

// SetupTest creates a fresh project with one symbol graph before each test
func (s *ServerTestSuite) SetupTest() {
	s.ctx = context.Background()

	root := s.T().TempDir()
	s.cfg = config.Default(root)

	s.Require().NoError(os.MkdirAll(s.cfg.SymbolGraphDir, 0755))
	doc := []byte(strings.ReplaceAll(geomDocument, "ROOT", root))
	s.Require().NoError(os.WriteFile(filepath.Join(s.cfg.SymbolGraphDir, "Geom.symbols.json"), doc, 0644))

	server, err := NewServer(s.cfg, nil)
	s.Require().NoError(err)
	s.server = server
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(s *suite.Suite, result *mcp.CallToolResult) string {
	s.Require().NotNil(result)
	s.Require().Len(result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	s.Require().True(ok, "result should be text content")
	return text.Text
}

func (s *ServerTestSuite) requireMCPError(err error, code int) *MCPError {
	s.Require().Error(err)
	var mcpErr *MCPError
	s.Require().ErrorAs(err, &mcpErr)
	s.Equal(code, mcpErr.Code)
	return mcpErr
}

func (s *ServerTestSuite) index() {
	_, err := s.server.handleIndexSymbolGraphs(s.ctx, callRequest("index_symbol_graphs", map[string]interface{}{}))
	s.Require().NoError(err)
}

func (s *ServerTestSuite) TestNewServer() {
	s.NotNil(s.server.mcp)
	s.NotNil(s.server.querier)
	s.Equal(s.cfg.DBPath, s.server.querier.DBPath())

	_, err := NewServer(config.Config{}, nil)
	s.Error(err)

	negative := s.cfg
	negative.MembersLimit = -1
	_, err = NewServer(negative, nil)
	s.Error(err, "a negative default members limit is rejected up front")
}

func (s *ServerTestSuite) TestQueryType() {
	s.index()

	result, err := s.server.handleQueryType(s.ctx, callRequest("query_type", map[string]interface{}{
		"name": "Foo",
	}))
	s.Require().NoError(err)

	var records []types.Record
	s.Require().NoError(json.Unmarshal([]byte(resultText(&s.Suite, result)), &records))
	s.Equal([]types.Record{{
		Kind:        "type",
		Name:        "Foo",
		TypeKind:    "struct",
		File:        "Sources/Foo.swift",
		Line:        10,
		Declaration: "struct Foo",
		Doc:         "A shape.",
		Members:     []string{"func bar()"},
	}}, records)
}

func (s *ServerTestSuite) TestQueryType_MembersLimitZero() {
	s.index()

	result, err := s.server.handleQueryType(s.ctx, callRequest("query_type", map[string]interface{}{
		"name":          "Foo",
		"members_limit": float64(0),
	}))
	s.Require().NoError(err)
	s.NotContains(resultText(&s.Suite, result), "members")
}

func (s *ServerTestSuite) TestQueryType_MembersLimitSpellings() {
	s.index()

	for _, param := range []string{"membersLimit", "members_limit"} {
		s.Run(param, func() {
			result, err := s.server.handleQueryType(s.ctx, callRequest("query_type", map[string]interface{}{
				"name": "Foo",
				param:  float64(0),
			}))
			s.Require().NoError(err)
			s.NotContains(resultText(&s.Suite, result), "members")
		})
	}

	// The camelCase spelling wins when both are present
	result, err := s.server.handleQueryType(s.ctx, callRequest("query_type", map[string]interface{}{
		"name":          "Foo",
		"membersLimit":  float64(1),
		"members_limit": float64(0),
	}))
	s.Require().NoError(err)
	s.Contains(resultText(&s.Suite, result), "func bar()")
}

func (s *ServerTestSuite) TestQueryType_Validation() {
	tests := []struct {
		name string
		args interface{}
	}{
		{"arguments not an object", "Foo"},
		{"missing name", map[string]interface{}{}},
		{"empty name", map[string]interface{}{"name": ""}},
		{"name not a string", map[string]interface{}{"name": 42}},
		{"negative limit", map[string]interface{}{"name": "Foo", "membersLimit": float64(-1)}},
		{"negative snake_case limit", map[string]interface{}{"name": "Foo", "members_limit": float64(-1)}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			request := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: "query_type", Arguments: tt.args}}
			_, err := s.server.handleQueryType(s.ctx, request)
			s.requireMCPError(err, ErrorCodeInvalidParams)
		})
	}
}

func (s *ServerTestSuite) TestQueryMethod() {
	s.index()

	result, err := s.server.handleQueryMethod(s.ctx, callRequest("query_method", map[string]interface{}{
		"name": "bar()",
	}))
	s.Require().NoError(err)

	var records []types.Record
	s.Require().NoError(json.Unmarshal([]byte(resultText(&s.Suite, result)), &records))
	s.Require().Len(records, 1)
	s.Equal("method", records[0].Kind)
	s.Equal("func bar()", records[0].Declaration)
}

func (s *ServerTestSuite) TestQuery_NoMatch() {
	s.index()

	result, err := s.server.handleQueryMethod(s.ctx, callRequest("query_method", map[string]interface{}{
		"name": "missing()",
	}))
	s.Require().NoError(err)
	s.Equal("[]", resultText(&s.Suite, result))
}

func (s *ServerTestSuite) TestQuery_NotIndexed() {
	_, err := s.server.handleQueryType(s.ctx, callRequest("query_type", map[string]interface{}{
		"name": "Foo",
	}))
	s.requireMCPError(err, ErrorCodeNotIndexed)
}

func (s *ServerTestSuite) TestIndexSymbolGraphs() {
	result, err := s.server.handleIndexSymbolGraphs(s.ctx, callRequest("index_symbol_graphs", nil))
	s.Require().NoError(err)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal([]byte(resultText(&s.Suite, result)), &response))
	s.Equal(true, response["indexed"])
	s.Equal(float64(1), response["documents"])
	s.Equal(float64(2), response["records_written"])
	s.False(s.server.indexLock.Busy(), "lock must be released after indexing")
}

func (s *ServerTestSuite) TestIndexSymbolGraphs_InvalidDir() {
	tests := map[string]string{
		"relative":  "graphs",
		"missing":   filepath.Join(s.cfg.ProjectRoot, "nope"),
		"not a dir": filepath.Join(s.cfg.SymbolGraphDir, "Geom.symbols.json"),
	}

	for name, dir := range tests {
		s.Run(name, func() {
			_, err := s.server.handleIndexSymbolGraphs(s.ctx, callRequest("index_symbol_graphs", map[string]interface{}{
				"symbol_graph_dir": dir,
			}))
			s.requireMCPError(err, ErrorCodeInvalidParams)
		})
	}
}

func (s *ServerTestSuite) TestIndexSymbolGraphs_NoDocuments() {
	empty := s.T().TempDir()
	_, err := s.server.handleIndexSymbolGraphs(s.ctx, callRequest("index_symbol_graphs", map[string]interface{}{
		"symbol_graph_dir": empty,
	}))
	s.requireMCPError(err, ErrorCodeNoDocuments)
}

func (s *ServerTestSuite) TestIndexSymbolGraphs_InProgress() {
	s.Require().True(s.server.indexLock.TryAcquire())
	defer s.server.indexLock.Release()

	_, err := s.server.handleIndexSymbolGraphs(s.ctx, callRequest("index_symbol_graphs", nil))
	mcpErr := s.requireMCPError(err, ErrorCodeIndexingInProgress)
	s.Contains(mcpErr.Data.(map[string]interface{}), "started_at")
}

func (s *ServerTestSuite) TestIndexSymbolGraphs_Malformed() {
	bad := filepath.Join(s.cfg.SymbolGraphDir, "Z.symbols.json")
	s.Require().NoError(os.WriteFile(bad, []byte(`{"symbols": [`), 0644))

	_, err := s.server.handleIndexSymbolGraphs(s.ctx, callRequest("index_symbol_graphs", nil))
	mcpErr := s.requireMCPError(err, ErrorCodeInternalError)
	s.Contains(mcpErr.Data.(map[string]interface{})["error"], bad)
}

func (s *ServerTestSuite) TestGetStatus() {
	result, err := s.server.handleGetStatus(s.ctx, callRequest("get_status", nil))
	s.Require().NoError(err)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal([]byte(resultText(&s.Suite, result)), &response))
	s.Equal(false, response["indexed"])

	s.index()

	result, err = s.server.handleGetStatus(s.ctx, callRequest("get_status", nil))
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal([]byte(resultText(&s.Suite, result)), &response))
	s.Equal(true, response["indexed"])
	s.Equal(false, response["indexing"])

	stats := response["statistics"].(map[string]interface{})
	s.Equal(float64(2), stats["symbols_count"])
	s.Equal(float64(1), stats["types_count"])
	s.Equal(float64(1), stats["methods_count"])
	s.Equal(float64(1), stats["modules_count"])
}

func (s *ServerTestSuite) TestToolSchemas() {
	tools := []mcp.Tool{queryTypeTool(5), queryMethodTool(), indexSymbolGraphsTool(), getStatusTool()}
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
		s.Equal("object", tool.InputSchema.Type)
		s.NotEmpty(tool.Description)
	}
	s.Equal([]string{"query_type", "query_method", "index_symbol_graphs", "get_status"}, names)
	s.Equal([]string{"name"}, queryTypeTool(5).InputSchema.Required)

	limit := queryTypeTool(7).InputSchema.Properties["membersLimit"].(map[string]interface{})
	s.Equal(7, limit["default"])
}
