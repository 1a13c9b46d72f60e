// Package extract normalizes a front end's concrete syntax tree into an
// attributed AST. One extraction strategy exists per normalized construct;
// a dispatch table maps native cursor kinds to strategies; a FIFO builder
// queue assigns node ids in discovery order and assembles the tree.
package extract

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cppbonsai/cppbonsai/internal/ast"
	"github.com/cppbonsai/cppbonsai/internal/cst"
)

// ErrInvalidCursorKind reports that a strategy was invoked on a cursor of
// the wrong native kind. This is a contract violation in the dispatch table,
// not a recoverable input problem: it aborts the whole build.
var ErrInvalidCursorKind = errors.New("invalid cursor kind")

// Strategy extracts one normalized construct from a cursor. Implementations
// are pure over their input: they write attributes into the map they are
// given, return further dependencies in child order, and never touch node
// ids or tree state.
type Strategy interface {
	// NodeKind is the normalized kind of the node being built.
	NodeKind() ast.NodeKind
	// Location is the source position for the node being built.
	Location() ast.SourceLocation
	// Extract validates the cursor, writes attributes, and returns the
	// ordered child strategies to build next.
	Extract(attrs *ast.AttributeMap) ([]Strategy, error)
}

// params carries the build-wide configuration shared by strategies.
// It is immutable for the duration of one build.
type params struct {
	workspace string
}

// locationOf converts a cursor location to the AST form, degrading to the
// zero value when the front end cannot supply one.
func locationOf(c cst.Cursor) ast.SourceLocation {
	loc, ok := c.Location()
	if !ok {
		slog.Debug("extract.location.missing", "kind", c.Kind().String(), "spelling", c.Spelling())
		return ast.SourceLocation{}
	}
	return ast.SourceLocation{File: loc.File, Line: loc.Line, Column: loc.Column}
}

// inWorkspace reports whether file lies within the workspace directory.
// An empty workspace accepts every file; a file with no path never matches.
func inWorkspace(workspace, file string) bool {
	if workspace == "" {
		return true
	}
	if file == "" {
		return false
	}
	rel, err := filepath.Rel(workspace, file)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// scopeSymbol renders an owning-scope string in symbol form. Scopes are
// threaded as bare @N@/@S@ segment chains; a function's USR used as an
// inner scope already carries the c: prefix.
func scopeSymbol(scope string) string {
	if scope == "" || strings.HasPrefix(scope, "c:") {
		return scope
	}
	return "c:" + scope
}

// expectKind returns ErrInvalidCursorKind unless the cursor has one of the
// wanted native kinds.
func expectKind(c cst.Cursor, want ...cst.Kind) error {
	got := c.Kind()
	for _, k := range want {
		if got == k {
			return nil
		}
	}
	return &kindError{got: got, want: want}
}

type kindError struct {
	got  cst.Kind
	want []cst.Kind
}

func (e *kindError) Error() string {
	names := make([]string, len(e.want))
	for i, k := range e.want {
		names[i] = k.String()
	}
	return "invalid cursor kind: got " + e.got.String() + ", want " + strings.Join(names, "|")
}

func (e *kindError) Unwrap() error { return ErrInvalidCursorKind }

// presetStrategy wraps a strategy with attributes written before delegation.
// Used by call extraction to stamp parameter indices onto child nodes.
type presetStrategy struct {
	Strategy
	attrs map[ast.AttrKey]string
}

func (p *presetStrategy) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	for k, v := range p.attrs {
		attrs.Set(k, v)
	}
	return p.Strategy.Extract(attrs)
}

// withAttr stamps one extra attribute onto the node the strategy will build.
func withAttr(s Strategy, key ast.AttrKey, value string) Strategy {
	return &presetStrategy{Strategy: s, attrs: map[ast.AttrKey]string{key: value}}
}
