package extract

import (
	"strings"

	"github.com/cppbonsai/cppbonsai/internal/ast"
	"github.com/cppbonsai/cppbonsai/internal/cst"
)

// consumeWhile splits an immutable child snapshot into the maximal prefix
// satisfying pred and the remainder. Staged extraction is expressed as
// successive consumeWhile passes, so strategies keep no mutable stack state
// between calls.
func consumeWhile(children []cst.Cursor, pred func(cst.Cursor) bool) (prefix, rest []cst.Cursor) {
	i := 0
	for i < len(children) && pred(children[i]) {
		i++
	}
	return children[:i], children[i:]
}

// class builds a CLASS_DECL or CLASS_DEF node. Consumption is two-staged:
// stage 1 takes the maximal prefix of base-class specifiers, stage 2
// dispatches the remaining children as members. Access-specifier markers
// carry no content (access is read per member) and destructors have no
// normalized kind; both are dropped by the table.
type class struct {
	cursor cst.Cursor
	scope  string
	p      *params
}

func newClass(c cst.Cursor, scope string, p *params) *class {
	return &class{cursor: c, scope: scope, p: p}
}

func (s *class) NodeKind() ast.NodeKind {
	if s.cursor.IsDefinition() {
		return ast.ClassDef
	}
	return ast.ClassDecl
}

func (s *class) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *class) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindClassDecl, cst.KindStructDecl); err != nil {
		return nil, err
	}
	name := s.cursor.Spelling()
	attrs.Set(ast.AttrName, name)
	if usr := s.cursor.USR(); usr != "" {
		attrs.Set(ast.AttrUSR, usr)
	}
	if s.scope != "" {
		attrs.Set(ast.AttrBelongsTo, scopeSymbol(s.scope))
	}
	if access := s.cursor.Access(); access != cst.AccessNone {
		attrs.Set(ast.AttrAccessSpecifier, access.String())
	}

	bases, members := consumeWhile(s.cursor.Children(), func(c cst.Cursor) bool {
		return c.Kind() == cst.KindBaseSpecifier
	})
	if len(bases) > 0 {
		names := make([]string, 0, len(bases))
		for _, base := range bases {
			names = append(names, baseClassName(base))
		}
		attrs.Set(ast.AttrBaseClasses, strings.Join(names, ", "))
	}

	return dispatchChildren(members, ctxMember, s.scope+"@S@"+name, s.p), nil
}

// baseClassName extracts the plain class name from a base specifier,
// preferring the resolved type spelling over the raw spelling.
func baseClassName(c cst.Cursor) string {
	name := c.TypeSpelling()
	if name == "" {
		name = c.Spelling()
	}
	for _, prefix := range []string{"virtual ", "public ", "protected ", "private ", "class ", "struct "} {
		name = strings.TrimPrefix(name, prefix)
	}
	return name
}

// field builds a FIELD_DECL node; in-class initializers become expression
// children.
type field struct {
	cursor cst.Cursor
	scope  string
}

func newField(c cst.Cursor, scope string) *field { return &field{cursor: c, scope: scope} }

func (s *field) NodeKind() ast.NodeKind       { return ast.FieldDecl }
func (s *field) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *field) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindFieldDecl); err != nil {
		return nil, err
	}
	attrs.Set(ast.AttrName, s.cursor.Spelling())
	if t := s.cursor.TypeSpelling(); t != "" {
		attrs.Set(ast.AttrDataType, t)
	}
	if usr := s.cursor.USR(); usr != "" {
		attrs.Set(ast.AttrUSR, usr)
	}
	if s.scope != "" {
		attrs.Set(ast.AttrBelongsTo, scopeSymbol(s.scope))
	}
	if access := s.cursor.Access(); access != cst.AccessNone {
		attrs.Set(ast.AttrAccessSpecifier, access.String())
	}
	return dispatchChildren(s.cursor.Children(), ctxExpression, s.scope, nil), nil
}

// variable builds a VARIABLE_DECL node for namespace-scope, static member
// and local variables alike; initializers become expression children.
type variable struct {
	cursor cst.Cursor
	scope  string
}

func newVariable(c cst.Cursor, scope string) *variable { return &variable{cursor: c, scope: scope} }

func (s *variable) NodeKind() ast.NodeKind       { return ast.VariableDecl }
func (s *variable) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *variable) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindVarDecl); err != nil {
		return nil, err
	}
	attrs.Set(ast.AttrName, s.cursor.Spelling())
	if t := s.cursor.TypeSpelling(); t != "" {
		attrs.Set(ast.AttrDataType, t)
	}
	if usr := s.cursor.USR(); usr != "" {
		attrs.Set(ast.AttrUSR, usr)
	}
	if s.scope != "" {
		attrs.Set(ast.AttrBelongsTo, scopeSymbol(s.scope))
	}
	if access := s.cursor.Access(); access != cst.AccessNone {
		attrs.Set(ast.AttrAccessSpecifier, access.String())
	}
	return dispatchChildren(s.cursor.Children(), ctxExpression, s.scope, nil), nil
}

// parameter builds a PARAMETER_DECL node; default arguments become
// expression children.
type parameter struct {
	cursor cst.Cursor
	scope  string
}

func newParameter(c cst.Cursor, scope string) *parameter {
	return &parameter{cursor: c, scope: scope}
}

func (s *parameter) NodeKind() ast.NodeKind       { return ast.ParameterDecl }
func (s *parameter) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *parameter) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindParmDecl); err != nil {
		return nil, err
	}
	attrs.Set(ast.AttrName, s.cursor.Spelling())
	if t := s.cursor.TypeSpelling(); t != "" {
		attrs.Set(ast.AttrDataType, t)
	}
	if s.scope != "" {
		attrs.Set(ast.AttrBelongsTo, scopeSymbol(s.scope))
	}
	return dispatchChildren(s.cursor.Children(), ctxExpression, s.scope, nil), nil
}
