package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cppbonsai/cppbonsai/internal/config"
	"github.com/cppbonsai/cppbonsai/internal/store"
)

func TestWorkspaceName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/home/dev/proj", "home-dev-proj"},
		{"/", "root"},
		{"/a", "a"},
		{"/a/b/../c", "a-c"},
	}
	for _, c := range cases {
		if got := WorkspaceName(c.path); got != c.want {
			t.Errorf("WorkspaceName(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func testPipeline(t *testing.T, dir string) *Pipeline {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s, config.Default(), dir)
}

func TestRunParsesWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.cpp", "int main() { return 0; }\n")
	writeSource(t, dir, "src/util.hpp", "namespace util { int limit = 10; }\n")
	writeSource(t, dir, "notes.txt", "not source\n")

	p := testPipeline(t, dir)
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Parsed != 2 {
		t.Errorf("parsed = %d, want 2", summary.Parsed)
	}
	if summary.Failed != 0 {
		t.Errorf("failed = %d, warnings %v", summary.Failed, summary.Warnings)
	}
	if summary.Nodes == 0 {
		t.Error("no nodes stored")
	}

	units, err := p.Store.ListUnits()
	if err != nil {
		t.Fatalf("ListUnits: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("stored units = %d, want 2", len(units))
	}
	if units[0].Name != "main.cpp" || units[1].Name != "src/util.hpp" {
		t.Errorf("unit names = %q, %q", units[0].Name, units[1].Name)
	}

	tree, err := p.Store.LoadAST("main.cpp")
	if err != nil {
		t.Fatalf("LoadAST: %v", err)
	}
	if tree.Len() < 3 {
		t.Errorf("main.cpp tree has %d nodes, want at least file, function and body", tree.Len())
	}
}

func TestRunSkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.cpp", "int x = 1;\n")

	p := testPipeline(t, dir)
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	second, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if second.Skipped != 1 || second.Parsed != 0 {
		t.Errorf("second run parsed %d skipped %d, want 0/1", second.Parsed, second.Skipped)
	}

	writeSource(t, dir, "a.cpp", "int x = 2;\n")
	third, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("third Run: %v", err)
	}
	if third.Parsed != 1 {
		t.Errorf("third run parsed %d, want 1 after modification", third.Parsed)
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.cpp", "int x;\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testPipeline(t, dir).Run(ctx); err == nil {
		t.Error("Run with a cancelled context succeeded")
	}
}
