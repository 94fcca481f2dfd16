package mcp

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/symquery/internal/config"
	"github.com/dshills/symquery/internal/indexer"
	"github.com/dshills/symquery/internal/query"
)

const (
	// ServerName is the MCP server name
	ServerName = "symquery"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	cfg     config.Config
	querier *query.Querier
	logger  *log.Logger

	// Only one index_symbol_graphs call runs at a time
	indexLock indexer.IndexLock
}

// NewServer creates a new MCP server instance for the project described by cfg
func NewServer(cfg config.Config, logger *log.Logger) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:     mcpServer,
		cfg:     cfg,
		querier: query.New(cfg.DBPath),
		logger:  logger,
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve runs the MCP protocol over in and out until ctx is cancelled or the
// input is closed
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, in, out)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(queryTypeTool(s.cfg.MembersLimit), s.handleQueryType)
	s.mcp.AddTool(queryMethodTool(), s.handleQueryMethod)
	s.mcp.AddTool(indexSymbolGraphsTool(), s.handleIndexSymbolGraphs)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	return nil
}
