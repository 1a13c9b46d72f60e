package discover

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var cppExts = []string{".cpp", ".cc", ".h", ".hpp"}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("// source\n"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func relPaths(files []FileInfo) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	return out
}

func TestDiscoverCollectsByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.cpp"))
	writeFile(t, filepath.Join(dir, "util.h"))
	writeFile(t, filepath.Join(dir, "readme.md"))
	writeFile(t, filepath.Join(dir, "script.py"))

	files, err := Discover(context.Background(), dir, Options{Extensions: cppExts})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	got := relPaths(files)
	if len(got) != 2 {
		t.Fatalf("files = %v, want main.cpp and util.h", got)
	}
	for _, f := range files {
		if !filepath.IsAbs(f.Path) {
			t.Errorf("path %q is not absolute", f.Path)
		}
	}
}

func TestDiscoverSkipsIgnoredDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "a.cpp"))
	writeFile(t, filepath.Join(dir, "build", "gen.cpp"))
	writeFile(t, filepath.Join(dir, ".git", "hook.cpp"))
	writeFile(t, filepath.Join(dir, "third_party", "dep.cpp"))

	files, err := Discover(context.Background(), dir, Options{Extensions: cppExts})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	got := relPaths(files)
	if len(got) != 1 || got[0] != "src/a.cpp" {
		t.Errorf("files = %v, want [src/a.cpp]", got)
	}
}

func TestDiscoverHonorsIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep", "a.cpp"))
	writeFile(t, filepath.Join(dir, "gen", "b.cpp"))
	writeFile(t, filepath.Join(dir, "experimental", "c.cpp"))
	if err := os.WriteFile(filepath.Join(dir, ".cppbonsaiignore"),
		[]byte("# generated code\ngen\nexperim*\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(context.Background(), dir, Options{Extensions: cppExts})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	got := relPaths(files)
	if len(got) != 1 || got[0] != "keep/a.cpp" {
		t.Errorf("files = %v, want [keep/a.cpp]", got)
	}
}

func TestDiscoverSkipsArtifactSuffixes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cpp"))
	writeFile(t, filepath.Join(dir, "a.cpp~"))

	files, err := Discover(context.Background(), dir, Options{Extensions: cppExts})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got := relPaths(files); len(got) != 1 || got[0] != "a.cpp" {
		t.Errorf("files = %v, want [a.cpp]", got)
	}
}

func TestDiscoverCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cpp"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Discover(ctx, dir, Options{Extensions: cppExts})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
