package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cppbonsai/cppbonsai/internal/store"
)

func (s *Server) handleDumpTree(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	unit := getStringArg(args, "unit")
	if unit == "" {
		return errResult("unit is required"), nil
	}

	tree, err := s.store.LoadAST(unit)
	if errors.Is(err, store.ErrUnitNotFound) {
		return errResult(fmt.Sprintf("unit %q not found; use list_units to see stored units", unit)), nil
	}
	if err != nil {
		return errResult(fmt.Sprintf("load: %v", err)), nil
	}
	return textResult(tree.PrettyString()), nil
}

func (s *Server) handleListUnits(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	units, err := s.store.ListUnits()
	if err != nil {
		return errResult(fmt.Sprintf("list: %v", err)), nil
	}
	return jsonResult(map[string]any{
		"count": len(units),
		"units": units,
	}), nil
}

func (s *Server) handleUnitStats(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	unit := getStringArg(args, "unit")
	if unit == "" {
		return errResult("unit is required"), nil
	}

	stats, err := s.store.GetStats(unit)
	if errors.Is(err, store.ErrUnitNotFound) {
		return errResult(fmt.Sprintf("unit %q not found", unit)), nil
	}
	if err != nil {
		return errResult(fmt.Sprintf("stats: %v", err)), nil
	}
	return jsonResult(stats), nil
}

func (s *Server) handleDeleteUnit(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	unit := getStringArg(args, "unit")
	if unit == "" {
		return errResult("unit is required"), nil
	}

	if _, err := s.store.GetUnit(unit); errors.Is(err, store.ErrUnitNotFound) {
		return errResult(fmt.Sprintf("unit %q not found", unit)), nil
	} else if err != nil {
		return errResult(fmt.Sprintf("get unit: %v", err)), nil
	}
	if err := s.store.DeleteUnit(unit); err != nil {
		return errResult(fmt.Sprintf("delete: %v", err)), nil
	}
	return jsonResult(map[string]any{"deleted": unit}), nil
}
