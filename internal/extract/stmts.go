package extract

import (
	"github.com/cppbonsai/cppbonsai/internal/ast"
	"github.com/cppbonsai/cppbonsai/internal/cst"
)

// compoundStmt builds a COMPOUND_STMT node; every child is a statement.
type compoundStmt struct {
	cursor cst.Cursor
	scope  string
}

func newCompoundStmt(c cst.Cursor, scope string) *compoundStmt {
	return &compoundStmt{cursor: c, scope: scope}
}

func (s *compoundStmt) NodeKind() ast.NodeKind       { return ast.CompoundStmt }
func (s *compoundStmt) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *compoundStmt) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindCompoundStmt); err != nil {
		return nil, err
	}
	return dispatchChildren(s.cursor.Children(), ctxStatement, s.scope, nil), nil
}

// declStmt builds a DECLARATION_STMT node wrapping local declarations.
type declStmt struct {
	cursor cst.Cursor
	scope  string
}

func newDeclStmt(c cst.Cursor, scope string) *declStmt {
	return &declStmt{cursor: c, scope: scope}
}

func (s *declStmt) NodeKind() ast.NodeKind       { return ast.DeclarationStmt }
func (s *declStmt) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *declStmt) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindDeclStmt); err != nil {
		return nil, err
	}
	return dispatchChildren(s.cursor.Children(), ctxStatement, s.scope, nil), nil
}

// branchStmt builds IF_STMT, WHILE_STMT and RETURN_STMT nodes. Children mix
// condition/value expressions with branch statements; both map in statement
// context.
type branchStmt struct {
	cursor cst.Cursor
	scope  string
}

func newBranchStmt(c cst.Cursor, scope string) *branchStmt {
	return &branchStmt{cursor: c, scope: scope}
}

func (s *branchStmt) NodeKind() ast.NodeKind {
	switch s.cursor.Kind() {
	case cst.KindIfStmt:
		return ast.IfStmt
	case cst.KindWhileStmt:
		return ast.WhileStmt
	case cst.KindReturnStmt:
		return ast.ReturnStmt
	}
	return ast.UnknownStmt
}

func (s *branchStmt) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *branchStmt) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindIfStmt, cst.KindWhileStmt, cst.KindReturnStmt); err != nil {
		return nil, err
	}
	return dispatchChildren(s.cursor.Children(), ctxStatement, s.scope, nil), nil
}

// nullStmt builds a NULL_STMT leaf.
type nullStmt struct {
	cursor cst.Cursor
}

func newNullStmt(c cst.Cursor) *nullStmt { return &nullStmt{cursor: c} }

func (s *nullStmt) NodeKind() ast.NodeKind       { return ast.NullStmt }
func (s *nullStmt) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *nullStmt) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindNullStmt); err != nil {
		return nil, err
	}
	return nil, nil
}
