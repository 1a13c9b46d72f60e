// Package pipeline orchestrates parsing a workspace: discover source files,
// parse and normalize them concurrently, and persist the resulting trees.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cppbonsai/cppbonsai/internal/ast"
	"github.com/cppbonsai/cppbonsai/internal/config"
	"github.com/cppbonsai/cppbonsai/internal/cst/tsfront"
	"github.com/cppbonsai/cppbonsai/internal/discover"
	"github.com/cppbonsai/cppbonsai/internal/extract"
	"github.com/cppbonsai/cppbonsai/internal/store"
)

// Pipeline drives the parse-normalize-store cycle for one workspace.
type Pipeline struct {
	Store     *store.Store
	Workspace string
	Jobs      int

	cfg *config.Config
}

// Summary reports what one run did.
type Summary struct {
	Parsed   int
	Skipped  int
	Failed   int
	Nodes    int
	Warnings []string
}

// New creates a Pipeline for the given workspace directory.
func New(s *store.Store, cfg *config.Config, dir string) *Pipeline {
	return &Pipeline{
		Store:     s,
		Workspace: cfg.EffectiveWorkspace(dir),
		Jobs:      cfg.EffectiveJobs(runtime.NumCPU()),
		cfg:       cfg,
	}
}

// WorkspaceName derives a store-friendly name from an absolute path.
func WorkspaceName(absPath string) string {
	cleaned := filepath.ToSlash(filepath.Clean(absPath))
	name := strings.TrimLeft(strings.ReplaceAll(cleaned, "/", "-"), "-")
	if name == "" {
		return "root"
	}
	return name
}

// result is one file's parse outcome, carried from the parallel phase to
// the sequential store phase.
type result struct {
	rel      string
	hash     string
	tree     *ast.AST
	warnings []string
}

// Run parses every discovered source file under the workspace and stores
// the normalized trees. Files whose content hash matches the stored unit
// are skipped.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	files, err := discover.Discover(ctx, p.Workspace, discover.Options{
		Extensions: p.cfg.EffectiveExtensions(),
	})
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	slog.Info("pipeline.discovered", "workspace", p.Workspace, "files", len(files))

	summary, err := p.RunFiles(ctx, files)
	if err != nil {
		return nil, err
	}
	slog.Info("pipeline.done",
		"parsed", summary.Parsed, "skipped", summary.Skipped,
		"failed", summary.Failed, "nodes", summary.Nodes,
		"elapsed", time.Since(start))
	return summary, nil
}

// RunFiles parses the given files. Parsing and normalization fan out across
// Jobs goroutines; stores are serialized afterwards so SQLite sees one
// writer.
func (p *Pipeline) RunFiles(ctx context.Context, files []discover.FileInfo) (*Summary, error) {
	known, err := p.knownHashes()
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		results []result
		summary Summary
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Jobs)
	for _, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, skipped, err := p.parseOne(f, known)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				summary.Failed++
				summary.Warnings = append(summary.Warnings, err.Error())
				slog.Warn("pipeline.parse_failed", "file", f.RelPath, "err", err)
			case skipped:
				summary.Skipped++
			default:
				results = append(results, res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		if err := p.Store.SaveAST(p.Workspace, res.hash, res.tree); err != nil {
			return nil, fmt.Errorf("save %s: %w", res.rel, err)
		}
		summary.Parsed++
		summary.Nodes += res.tree.Len()
		summary.Warnings = append(summary.Warnings, res.warnings...)
	}
	return &summary, nil
}

// parseOne reads, parses and normalizes a single file. skipped is true when
// the stored unit already matches the file's content hash.
func (p *Pipeline) parseOne(f discover.FileInfo, known map[string]string) (result, bool, error) {
	source, err := os.ReadFile(f.Path)
	if err != nil {
		return result{}, false, fmt.Errorf("read %s: %w", f.RelPath, err)
	}
	hash := store.HashSource(source)
	if known[f.RelPath] == hash {
		return result{}, true, nil
	}

	t := time.Now()
	unit, err := tsfront.Parse(f.RelPath, source)
	if err != nil {
		return result{}, false, fmt.Errorf("parse %s: %w", f.RelPath, err)
	}
	tree, err := extract.Build(unit.Root, extract.Options{Name: f.RelPath})
	if err != nil {
		return result{}, false, fmt.Errorf("normalize %s: %w", f.RelPath, err)
	}
	slog.Debug("pipeline.parsed", "file", f.RelPath, "nodes", tree.Len(), "elapsed", time.Since(t))

	return result{rel: f.RelPath, hash: hash, tree: tree, warnings: unit.Warnings}, false, nil
}

// knownHashes maps stored unit names to their source hashes.
func (p *Pipeline) knownHashes() (map[string]string, error) {
	units, err := p.Store.ListUnits()
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	known := make(map[string]string, len(units))
	for _, u := range units {
		known[u.Name] = u.SourceHash
	}
	return known, nil
}
