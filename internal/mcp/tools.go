package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/symquery/internal/indexer"
	"github.com/dshills/symquery/internal/output"
	"github.com/dshills/symquery/internal/storage"
	"github.com/dshills/symquery/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeIndexingInProgress = -32002 // Another indexing operation is already running
	ErrorCodeNotIndexed         = -32003 // Project not indexed
	ErrorCodeNoDocuments        = -32004 // No symbol graphs to index
)

// handleQueryType handles the query_type tool invocation
func (s *Server) handleQueryType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	name, err := requireName(args)
	if err != nil {
		return nil, err
	}

	param := "membersLimit"
	if _, ok := args[param]; !ok {
		param = "members_limit"
	}
	limit := getIntDefault(args, param, s.cfg.MembersLimit)
	if limit < 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, param+" must not be negative", map[string]interface{}{
			"param": param,
			"value": limit,
		})
	}

	s.logger.Info("Tool call: query_type", "name", name, "members_limit", limit)

	records, err := s.querier.QueryType(ctx, name, limit)
	if err != nil {
		return nil, s.queryError(err)
	}
	return recordsResult(records)
}

// handleQueryMethod handles the query_method tool invocation
func (s *Server) handleQueryMethod(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	name, err := requireName(args)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tool call: query_method", "name", name)

	records, err := s.querier.QueryMethod(ctx, name)
	if err != nil {
		return nil, s.queryError(err)
	}
	return recordsResult(records)
}

// handleIndexSymbolGraphs handles the index_symbol_graphs tool invocation
func (s *Server) handleIndexSymbolGraphs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	dir := getStringDefault(args, "symbol_graph_dir", s.cfg.SymbolGraphDir)
	if err := validateDir(dir); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid symbol_graph_dir", map[string]interface{}{
			"param":  "symbol_graph_dir",
			"reason": err.Error(),
		})
	}

	if !s.indexLock.TryAcquire() {
		var data map[string]interface{}
		if since, ok := s.indexLock.Since(); ok {
			data = map[string]interface{}{"started_at": since.UTC().Format(time.RFC3339)}
		}
		return nil, newMCPError(ErrorCodeIndexingInProgress, "indexing already in progress", data)
	}
	defer s.indexLock.Release()

	s.logger.Info("Tool call: index_symbol_graphs", "dir", dir)

	idx := indexer.New(s.cfg.ProjectRoot, indexer.WithLogger(s.logger))
	stats, err := idx.Index(ctx, dir, s.cfg.DBPath)
	if errors.Is(err, types.ErrNoDocuments) {
		return nil, newMCPError(ErrorCodeNoDocuments, "no symbol graphs found", map[string]interface{}{
			"symbol_graph_dir": dir,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed":         true,
		"documents":       stats.Documents,
		"symbols_seen":    stats.SymbolsSeen,
		"records_written": stats.RowsWritten,
		"skipped":         stats.Skipped,
		"format_versions": stats.FormatVersions,
		"duration_ms":     stats.Duration.Milliseconds(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Info("Tool call: get_status")

	if _, err := os.Stat(s.cfg.DBPath); errors.Is(err, os.ErrNotExist) {
		response := map[string]interface{}{
			"indexed": false,
			"db_path": s.cfg.DBPath,
			"message": "Project not indexed. Use index_symbol_graphs tool to index this project.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}

	store, err := storage.NewSQLiteStorage(s.cfg.DBPath)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to open index", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer store.Close()

	status, err := store.GetStatus(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed":       true,
		"indexing":      s.indexLock.Busy(),
		"project_root":  s.cfg.ProjectRoot,
		"db_path":       s.cfg.DBPath,
		"index_size_mb": fmt.Sprintf("%.2f", float64(status.SizeBytes)/(1024*1024)),
		"statistics": map[string]interface{}{
			"symbols_count": status.TotalSymbols,
			"types_count":   status.Types,
			"methods_count": status.Methods,
			"files_count":   status.Files,
			"modules_count": status.Modules,
		},
	}
	if since, ok := s.indexLock.Since(); ok {
		response["indexing_started_at"] = since.UTC().Format(time.RFC3339)
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// queryError maps a lookup failure to an MCP error
func (s *Server) queryError(err error) error {
	if errors.Is(err, types.ErrStoreOpen) {
		return newMCPError(ErrorCodeNotIndexed, "project not indexed", map[string]interface{}{
			"db_path": s.cfg.DBPath,
			"hint":    "call index_symbol_graphs first",
		})
	}
	return newMCPError(ErrorCodeInternalError, "query failed", map[string]interface{}{
		"error": err.Error(),
	})
}

// requireName extracts the mandatory name parameter
func requireName(args map[string]interface{}) (string, error) {
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "name parameter is required", map[string]interface{}{
			"param":  "name",
			"reason": "missing or empty",
		})
	}
	return name, nil
}

// recordsResult renders records as one JSON array
func recordsResult(records []types.Record) (*mcp.CallToolResult, error) {
	data, err := output.MarshalArray(records)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to encode results", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return mcp.NewToolResultText(string(data)), nil
}

// validateDir checks that path is an existing, absolute directory
func validateDir(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}
	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
