package tools

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cppbonsai/cppbonsai/internal/config"
	"github.com/cppbonsai/cppbonsai/internal/cst/tsfront"
	"github.com/cppbonsai/cppbonsai/internal/extract"
	"github.com/cppbonsai/cppbonsai/internal/pipeline"
)

func (s *Server) handleParseWorkspace(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	path := getStringArg(args, "path")
	if path == "" {
		return errResult("path is required"), nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return errResult(fmt.Sprintf("invalid path: %v", err)), nil
	}

	cfg := config.Load(absPath)
	p := pipeline.New(s.store, cfg, absPath)
	summary, err := p.Run(ctx)
	if err != nil {
		return errResult(fmt.Sprintf("parse failed: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"workspace": p.Workspace,
		"parsed":    summary.Parsed,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
		"nodes":     summary.Nodes,
		"warnings":  summary.Warnings,
	}), nil
}

func (s *Server) handleParseSource(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	source := getStringArg(args, "source")
	if source == "" {
		return errResult("source is required"), nil
	}
	name := getStringArg(args, "name")
	if name == "" {
		name = "snippet.cpp"
	}

	unit, err := tsfront.Parse(name, []byte(source))
	if err != nil {
		return errResult(fmt.Sprintf("parse: %v", err)), nil
	}
	tree, err := extract.Build(unit.Root, extract.Options{Name: name})
	if err != nil {
		return errResult(fmt.Sprintf("normalize: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"name":     name,
		"nodes":    tree.Len(),
		"tree":     tree.PrettyString(),
		"warnings": unit.Warnings,
	}), nil
}
