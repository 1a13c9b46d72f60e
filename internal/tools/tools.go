// Package tools exposes the normalization engine over MCP: parsing
// workspaces or inline source, and inspecting the stored trees.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cppbonsai/cppbonsai/internal/store"
)

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp   *mcp.Server
	store *store.Store
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(s *store.Store) *Server {
	srv := &Server{
		store: s,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "cppbonsai",
				Version: "0.1.0",
			},
			nil,
		),
	}
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) registerTools() {
	// 1. parse_workspace
	s.mcp.AddTool(&mcp.Tool{
		Name:        "parse_workspace",
		Description: "Parse all C++ source files under a directory into normalized syntax trees and store them. Unchanged files (by content hash) are skipped. Returns counts of parsed, skipped and failed files plus any parser warnings.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Absolute path to the workspace directory to parse"
				}
			},
			"required": ["path"]
		}`),
	}, s.handleParseWorkspace)

	// 2. parse_source
	s.mcp.AddTool(&mcp.Tool{
		Name:        "parse_source",
		Description: "Parse a C++ source snippet and return its normalized tree rendering without storing it. Useful for inspecting how a construct normalizes.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"source": {
					"type": "string",
					"description": "C++ source text to parse"
				},
				"name": {
					"type": "string",
					"description": "Translation unit name used in locations (default 'snippet.cpp')"
				}
			},
			"required": ["source"]
		}`),
	}, s.handleParseSource)

	// 3. dump_tree
	s.mcp.AddTool(&mcp.Tool{
		Name:        "dump_tree",
		Description: "Render a stored translation unit's normalized tree in the id-ordered pretty format: one node per line with kind, location and attributes, indented by depth.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"unit": {
					"type": "string",
					"description": "Unit name as reported by list_units (typically the file path relative to the workspace)"
				}
			},
			"required": ["unit"]
		}`),
	}, s.handleDumpTree)

	// 4. list_units
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_units",
		Description: "List all stored translation units with workspace, source hash, parse time and node count.",
		InputSchema: json.RawMessage(`{"type": "object"}`),
	}, s.handleListUnits)

	// 5. unit_stats
	s.mcp.AddTool(&mcp.Tool{
		Name:        "unit_stats",
		Description: "Return node statistics for a stored unit: total node count, per-kind counts, and the source files contributing nodes.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"unit": {
					"type": "string",
					"description": "Unit name as reported by list_units"
				}
			},
			"required": ["unit"]
		}`),
	}, s.handleUnitStats)

	// 6. delete_unit
	s.mcp.AddTool(&mcp.Tool{
		Name:        "delete_unit",
		Description: "Remove a stored translation unit and all its nodes.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"unit": {
					"type": "string",
					"description": "Unit name as reported by list_units"
				}
			},
			"required": ["unit"]
		}`),
	}, s.handleDeleteUnit)
}

// jsonResult marshals data to JSON and returns as tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// textResult returns a plain-text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
