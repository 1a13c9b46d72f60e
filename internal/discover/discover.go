// Package discover walks a workspace and collects the C++ source files
// worth parsing, honoring ignore directories and an optional per-workspace
// ignore file.
package discover

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
)

// ignoreDirs are directory names to skip during discovery.
var ignoreDirs = map[string]bool{
	".cache": true, ".git": true, ".hg": true, ".idea": true,
	".svn": true, ".tmp": true, ".vs": true, ".vscode": true,
	"bin": true, "build": true, "cmake-build-debug": true,
	"cmake-build-release": true, "dist": true, "obj": true,
	"out": true, "target": true, "temp": true, "third_party": true,
	"tmp": true, "vendor": true,
}

// ignoreSuffixes are file suffixes to skip.
var ignoreSuffixes = map[string]bool{
	".tmp": true, "~": true, ".o": true, ".a": true,
	".so": true, ".dll": true, ".obj": true,
}

// FileInfo represents a discovered source file.
type FileInfo struct {
	Path    string // absolute path
	RelPath string // relative to the workspace root
}

// Options configures file discovery.
type Options struct {
	// Extensions are the file extensions to collect (with leading dot).
	Extensions []string
	// IgnoreFile is the path to an ignore-pattern file (optional;
	// defaults to .cppbonsaiignore in the workspace root).
	IgnoreFile string
}

// shouldSkipDir reports whether the directory is excluded from discovery.
func shouldSkipDir(name, rel string, extraIgnore []string) bool {
	if ignoreDirs[name] {
		return true
	}
	for _, pattern := range extraIgnore {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// Discover walks a workspace and returns all matching source files.
func Discover(ctx context.Context, root string, opts Options) ([]FileInfo, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		wanted[ext] = true
	}

	ignPath := opts.IgnoreFile
	if ignPath == "" {
		ignPath = filepath.Join(root, ".cppbonsaiignore")
	}
	extraIgnore, _ := loadIgnoreFile(ignPath)

	var files []FileInfo
	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(root, path)
		if info.IsDir() {
			if rel != "." && shouldSkipDir(info.Name(), rel, extraIgnore) {
				return filepath.SkipDir
			}
			return nil
		}
		for suffix := range ignoreSuffixes {
			if strings.HasSuffix(path, suffix) {
				return nil
			}
		}
		if wanted[filepath.Ext(path)] {
			files = append(files, FileInfo{
				Path:    path,
				RelPath: filepath.ToSlash(rel),
			})
		}
		return nil
	})
	return files, err
}

// loadIgnoreFile reads glob patterns, one per line; # starts a comment.
func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, scanner.Err()
}
