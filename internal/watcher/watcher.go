// Package watcher polls a workspace for source changes and re-runs the
// parse pipeline when files appear, disappear or change. Polling is
// adaptive: the interval grows with the number of files so large trees are
// not stat-stormed every second.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/cppbonsai/cppbonsai/internal/discover"
)

const (
	baseInterval = 1 * time.Second
	maxInterval  = 60 * time.Second
)

type fileSnapshot struct {
	modTime time.Time
	size    int64
}

// ReparseFunc is the callback invoked when a change is detected.
type ReparseFunc func(ctx context.Context) error

// Watcher polls one workspace and triggers reparses.
type Watcher struct {
	workspace  string
	extensions []string
	reparse    ReparseFunc

	snapshot map[string]fileSnapshot
	interval time.Duration
}

// New creates a Watcher over the workspace directory. extensions selects
// the files worth watching; reparse is called after each detected change.
func New(workspace string, extensions []string, reparse ReparseFunc) *Watcher {
	return &Watcher{
		workspace:  workspace,
		extensions: extensions,
		reparse:    reparse,
		interval:   baseInterval,
	}
}

// Run blocks until ctx is cancelled. The first poll captures a baseline
// without triggering a reparse; the initial full parse is the caller's job.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			w.poll(ctx)
			timer.Reset(w.interval)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	if _, err := os.Stat(w.workspace); err != nil {
		slog.Warn("watcher.workspace_gone", "path", w.workspace)
		w.interval = maxInterval
		return
	}

	snap, err := w.captureSnapshot(ctx)
	if err != nil {
		slog.Warn("watcher.snapshot", "err", err)
		return
	}
	w.interval = pollInterval(len(snap))

	if w.snapshot == nil {
		slog.Debug("watcher.baseline", "workspace", w.workspace, "files", len(snap))
		w.snapshot = snap
		return
	}
	if snapshotsEqual(w.snapshot, snap) {
		return
	}

	slog.Info("watcher.changed", "workspace", w.workspace, "files", len(snap))
	if err := w.reparse(ctx); err != nil {
		slog.Warn("watcher.reparse", "err", err)
		// Keep the old snapshot so the next cycle retries.
		return
	}
	w.snapshot = snap
}

// captureSnapshot records mtime and size for every watched source file.
func (w *Watcher) captureSnapshot(ctx context.Context) (map[string]fileSnapshot, error) {
	files, err := discover.Discover(ctx, w.workspace, discover.Options{Extensions: w.extensions})
	if err != nil {
		return nil, err
	}
	snap := make(map[string]fileSnapshot, len(files))
	for _, f := range files {
		info, statErr := os.Stat(f.Path)
		if statErr != nil {
			continue
		}
		snap[f.RelPath] = fileSnapshot{modTime: info.ModTime(), size: info.Size()}
	}
	return snap, nil
}

func snapshotsEqual(a, b map[string]fileSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for path, as := range a {
		bs, ok := b[path]
		if !ok {
			return false
		}
		if !as.modTime.Equal(bs.modTime) || as.size != bs.size {
			return false
		}
	}
	return true
}

// pollInterval computes the adaptive interval from file count: 1s base plus
// 1s per 500 files, capped at 60s.
func pollInterval(fileCount int) time.Duration {
	ms := 1000 + (fileCount/500)*1000
	if ms > 60000 {
		ms = 60000
	}
	return time.Duration(ms) * time.Millisecond
}
