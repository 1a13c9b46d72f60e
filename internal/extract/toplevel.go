package extract

import (
	"github.com/cppbonsai/cppbonsai/internal/ast"
	"github.com/cppbonsai/cppbonsai/internal/cst"
)

// translationUnit builds the synthetic file root. Direct children are kept
// only when their originating file lies inside the workspace boundary;
// children with no file at all (compiler-synthesized) are dropped.
type translationUnit struct {
	cursor cst.Cursor
	p      *params
}

func newTranslationUnit(c cst.Cursor, p *params) *translationUnit {
	return &translationUnit{cursor: c, p: p}
}

func (t *translationUnit) NodeKind() ast.NodeKind { return ast.File }

func (t *translationUnit) Location() ast.SourceLocation {
	// The unit cursor has no position of its own; its spelling is the file.
	return ast.SourceLocation{File: t.cursor.Spelling()}
}

func (t *translationUnit) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(t.cursor, cst.KindTranslationUnit); err != nil {
		return nil, err
	}
	attrs.Set(ast.AttrName, t.cursor.Spelling())
	return t.dependencies(), nil
}

func (t *translationUnit) dependencies() []Strategy {
	var deps []Strategy
	for _, child := range t.cursor.Children() {
		loc, ok := child.Location()
		if !ok || !inWorkspace(t.p.workspace, loc.File) {
			continue
		}
		if s, ok := dispatch(child, ctxTopLevel, "", t.p); ok {
			deps = append(deps, s)
		}
	}
	return deps
}

// namespace builds a NAMESPACE node and dispatches its children at top
// level, extending the owning scope with an @N@ segment.
type namespace struct {
	cursor cst.Cursor
	scope  string
	p      *params
}

func newNamespace(c cst.Cursor, scope string, p *params) *namespace {
	return &namespace{cursor: c, scope: scope, p: p}
}

func (n *namespace) NodeKind() ast.NodeKind       { return ast.Namespace }
func (n *namespace) Location() ast.SourceLocation { return locationOf(n.cursor) }

func (n *namespace) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(n.cursor, cst.KindNamespace); err != nil {
		return nil, err
	}
	name := n.cursor.Spelling()
	attrs.Set(ast.AttrName, name)
	if usr := n.cursor.USR(); usr != "" {
		attrs.Set(ast.AttrUSR, usr)
	}
	if n.scope != "" {
		attrs.Set(ast.AttrBelongsTo, scopeSymbol(n.scope))
	}

	inner := n.scope + "@N@" + name
	var deps []Strategy
	for _, child := range n.cursor.Children() {
		loc, ok := child.Location()
		if !ok || !inWorkspace(n.p.workspace, loc.File) {
			continue
		}
		if s, ok := dispatch(child, ctxTopLevel, inner, n.p); ok {
			deps = append(deps, s)
		}
	}
	return deps, nil
}
