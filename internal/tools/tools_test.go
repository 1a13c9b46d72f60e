package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cppbonsai/cppbonsai/internal/ast"
	"github.com/cppbonsai/cppbonsai/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewServer(s)
}

func callRequest(t *testing.T, args map[string]any) *mcp.CallToolRequest {
	t.Helper()
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatal(err)
	}
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(raw)},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestParseSourceTool(t *testing.T) {
	srv := testServer(t)
	res, err := srv.handleParseSource(context.Background(), callRequest(t, map[string]any{
		"source": "namespace pkg { int limit = 10; }\n",
	}))
	if err != nil {
		t.Fatalf("handleParseSource: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var out struct {
		Name  string `json:"name"`
		Nodes int    `json:"nodes"`
		Tree  string `json:"tree"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if out.Name != "snippet.cpp" {
		t.Errorf("name = %q, want default snippet.cpp", out.Name)
	}
	if out.Nodes != 4 {
		t.Errorf("nodes = %d, want file, namespace, variable and initializer", out.Nodes)
	}
	if !strings.Contains(out.Tree, "NAMESPACE") || !strings.Contains(out.Tree, "VARIABLE_DECL") {
		t.Errorf("tree rendering missing expected kinds:\n%s", out.Tree)
	}
}

func TestParseSourceToolRequiresSource(t *testing.T) {
	srv := testServer(t)
	res, err := srv.handleParseSource(context.Background(), callRequest(t, map[string]any{}))
	if err != nil {
		t.Fatalf("handleParseSource: %v", err)
	}
	if !res.IsError {
		t.Error("missing source did not produce a tool error")
	}
}

func storeUnit(t *testing.T, srv *Server, name string) {
	t.Helper()
	tree := ast.New(name)
	tree.Root().Attributes[ast.AttrName] = name
	if err := srv.store.SaveAST("/ws", "h", tree); err != nil {
		t.Fatalf("SaveAST: %v", err)
	}
}

func TestDumpTreeTool(t *testing.T) {
	srv := testServer(t)
	storeUnit(t, srv, "a.cpp")

	res, err := srv.handleDumpTree(context.Background(), callRequest(t, map[string]any{"unit": "a.cpp"}))
	if err != nil {
		t.Fatalf("handleDumpTree: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), `name: "a.cpp"`) {
		t.Errorf("rendering missing unit name:\n%s", resultText(t, res))
	}
}

func TestDumpTreeToolUnknownUnit(t *testing.T) {
	srv := testServer(t)
	res, err := srv.handleDumpTree(context.Background(), callRequest(t, map[string]any{"unit": "nope.cpp"}))
	if err != nil {
		t.Fatalf("handleDumpTree: %v", err)
	}
	if !res.IsError {
		t.Error("unknown unit did not produce a tool error")
	}
	if !strings.Contains(resultText(t, res), "list_units") {
		t.Errorf("error %q does not point at list_units", resultText(t, res))
	}
}

func TestListAndDeleteUnitTools(t *testing.T) {
	srv := testServer(t)
	storeUnit(t, srv, "a.cpp")
	storeUnit(t, srv, "b.cpp")

	res, err := srv.handleListUnits(context.Background(), callRequest(t, nil))
	if err != nil {
		t.Fatalf("handleListUnits: %v", err)
	}
	var listed struct {
		Count int              `json:"count"`
		Units []store.UnitInfo `json:"units"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &listed); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if listed.Count != 2 {
		t.Fatalf("count = %d, want 2", listed.Count)
	}

	res, err = srv.handleDeleteUnit(context.Background(), callRequest(t, map[string]any{"unit": "a.cpp"}))
	if err != nil {
		t.Fatalf("handleDeleteUnit: %v", err)
	}
	if res.IsError {
		t.Fatalf("delete error: %s", resultText(t, res))
	}

	res, err = srv.handleUnitStats(context.Background(), callRequest(t, map[string]any{"unit": "a.cpp"}))
	if err != nil {
		t.Fatalf("handleUnitStats: %v", err)
	}
	if !res.IsError {
		t.Error("stats for a deleted unit did not error")
	}
}
