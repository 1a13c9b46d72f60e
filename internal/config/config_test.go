package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg := Load(t.TempDir())
	if cfg.Parse.Workspace != "" {
		t.Errorf("workspace = %q, want empty", cfg.Parse.Workspace)
	}
	if cfg.Parse.Jobs != nil {
		t.Errorf("jobs = %v, want nil", *cfg.Parse.Jobs)
	}
	if cfg.Store.Path != "" {
		t.Errorf("store path = %q, want empty", cfg.Store.Path)
	}
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
parse:
  workspace: src
  extensions: [".cpp", ".hpp"]
  jobs: 2
store:
  path: bonsai.db
`)
	cfg := Load(dir)
	if cfg.Parse.Workspace != "src" {
		t.Errorf("workspace = %q, want %q", cfg.Parse.Workspace, "src")
	}
	if got := cfg.EffectiveExtensions(); len(got) != 2 || got[0] != ".cpp" || got[1] != ".hpp" {
		t.Errorf("extensions = %v, want [.cpp .hpp]", got)
	}
	if got := cfg.EffectiveJobs(8); got != 2 {
		t.Errorf("jobs = %d, want 2", got)
	}
	if cfg.Store.Path != "bonsai.db" {
		t.Errorf("store path = %q, want %q", cfg.Store.Path, "bonsai.db")
	}
}

func TestLoadInvalidYAMLYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "parse: [not: a: mapping")
	cfg := Load(dir)
	if cfg.Parse.Workspace != "" || cfg.Parse.Jobs != nil {
		t.Error("invalid YAML did not fall back to defaults")
	}
}

func TestEffectiveWorkspace(t *testing.T) {
	cfg := Default()
	if got := cfg.EffectiveWorkspace("/proj"); got != "/proj" {
		t.Errorf("unset workspace = %q, want %q", got, "/proj")
	}
	cfg.Parse.Workspace = "src"
	if got := cfg.EffectiveWorkspace("/proj"); got != filepath.Join("/proj", "src") {
		t.Errorf("relative workspace = %q, want %q", got, filepath.Join("/proj", "src"))
	}
	cfg.Parse.Workspace = "/elsewhere"
	if got := cfg.EffectiveWorkspace("/proj"); got != "/elsewhere" {
		t.Errorf("absolute workspace = %q, want %q", got, "/elsewhere")
	}
}

func TestEffectiveExtensionsDefaults(t *testing.T) {
	got := Default().EffectiveExtensions()
	want := map[string]bool{".cpp": true, ".cc": true, ".cxx": true, ".h": true, ".hpp": true, ".hh": true}
	if len(got) != len(want) {
		t.Fatalf("default extensions = %v", got)
	}
	for _, ext := range got {
		if !want[ext] {
			t.Errorf("unexpected default extension %q", ext)
		}
	}
}

func TestEffectiveJobsFallback(t *testing.T) {
	cfg := Default()
	if got := cfg.EffectiveJobs(4); got != 4 {
		t.Errorf("unset jobs = %d, want fallback 4", got)
	}
	zero := 0
	cfg.Parse.Jobs = &zero
	if got := cfg.EffectiveJobs(4); got != 4 {
		t.Errorf("zero jobs = %d, want fallback 4", got)
	}
	n := 3
	cfg.Parse.Jobs = &n
	if got := cfg.EffectiveJobs(4); got != 3 {
		t.Errorf("explicit jobs = %d, want 3", got)
	}
}
