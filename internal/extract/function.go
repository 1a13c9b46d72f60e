package extract

import (
	"strings"

	"github.com/cppbonsai/cppbonsai/internal/ast"
	"github.com/cppbonsai/cppbonsai/internal/cst"
)

// functionVariant tags the three function-like constructs. A single staged
// extraction routine serves all of them; the variant selects the node kind,
// the expected native kind and the constructor-only initializer stage.
type functionVariant int

const (
	variantFunction functionVariant = iota
	variantMethod
	variantConstructor
)

// functionLike builds FUNCTION/METHOD/CONSTRUCTOR declarations and
// definitions. Consumption is three-staged over an immutable child
// snapshot: leading compiler attributes, then leading namespace/type
// references forming the qualified owning scope, then parameters and body.
type functionLike struct {
	cursor  cst.Cursor
	scope   string
	p       *params
	variant functionVariant
}

func newFunction(c cst.Cursor, scope string, p *params) *functionLike {
	return &functionLike{cursor: c, scope: scope, p: p, variant: variantFunction}
}

func newMethod(c cst.Cursor, scope string, p *params) *functionLike {
	return &functionLike{cursor: c, scope: scope, p: p, variant: variantMethod}
}

func newConstructor(c cst.Cursor, scope string, p *params) *functionLike {
	return &functionLike{cursor: c, scope: scope, p: p, variant: variantConstructor}
}

func (s *functionLike) NodeKind() ast.NodeKind {
	def := s.cursor.IsDefinition()
	switch s.variant {
	case variantMethod:
		if def {
			return ast.MethodDef
		}
		return ast.MethodDecl
	case variantConstructor:
		if def {
			return ast.ConstructorDef
		}
		return ast.ConstructorDecl
	}
	if def {
		return ast.FunctionDef
	}
	return ast.FunctionDecl
}

func (s *functionLike) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *functionLike) expectedKind() cst.Kind {
	switch s.variant {
	case variantMethod:
		return cst.KindMethod
	case variantConstructor:
		return cst.KindConstructor
	}
	return cst.KindFunctionDecl
}

func (s *functionLike) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, s.expectedKind()); err != nil {
		return nil, err
	}
	name := s.cursor.Spelling()
	attrs.Set(ast.AttrName, name)
	if dn := s.cursor.DisplayName(); dn != "" && dn != name {
		attrs.Set(ast.AttrDisplayName, dn)
	}
	if usr := s.cursor.USR(); usr != "" {
		attrs.Set(ast.AttrUSR, usr)
	}
	if s.variant != variantConstructor {
		if rt := s.cursor.ResultTypeSpelling(); rt != "" {
			attrs.Set(ast.AttrReturnType, rt)
		}
	}
	if access := s.cursor.Access(); access != cst.AccessNone {
		attrs.Set(ast.AttrAccessSpecifier, access.String())
	}

	children := s.cursor.Children()

	// Stage 1: leading compiler attributes.
	attrCursors, children := consumeWhile(children, func(c cst.Cursor) bool {
		return c.Kind() == cst.KindAnnotateAttr
	})
	if len(attrCursors) > 0 {
		spellings := make([]string, 0, len(attrCursors))
		for _, c := range attrCursors {
			spellings = append(spellings, c.Spelling())
		}
		attrs.Set(ast.AttrAttributes, strings.Join(spellings, ","))
	}

	// Stage 2: leading namespace/type references qualify out-of-class
	// definitions. Their segments form a synthetic owning-scope symbol
	// when the front end does not supply one through the inherited scope.
	refCursors, children := consumeWhile(children, func(c cst.Cursor) bool {
		return c.Kind() == cst.KindNamespaceRef || c.Kind() == cst.KindTypeRef
	})
	belongsTo := s.scope
	if len(refCursors) > 0 {
		var b strings.Builder
		for _, ref := range refCursors {
			if ref.Kind() == cst.KindNamespaceRef {
				b.WriteString("@N@")
			} else {
				b.WriteString("@S@")
			}
			b.WriteString(refName(ref))
		}
		belongsTo = "c:" + b.String()
	}
	if belongsTo != "" {
		attrs.Set(ast.AttrBelongsTo, scopeSymbol(belongsTo))
	}

	// Stage 3: parameters, body and (constructors only) member
	// initializers, which pair a member marker with the next expression.
	inner := s.cursor.USR()
	if inner == "" {
		inner = s.scope
	}
	var deps []Strategy
	for i := 0; i < len(children); i++ {
		child := children[i]
		if s.variant == variantConstructor && child.Kind() == cst.KindMemberRef &&
			i+1 < len(children) && isExpressionKind(children[i+1].Kind()) {
			deps = append(deps, newMemberInit(child, children[i+1], inner))
			i++
			continue
		}
		if st, ok := dispatch(child, ctxSignature, inner, s.p); ok {
			deps = append(deps, st)
		}
	}
	return deps, nil
}

// refName strips elaboration keywords from a namespace/type reference.
func refName(c cst.Cursor) string {
	name := c.Spelling()
	for _, prefix := range []string{"class ", "struct ", "enum ", "union "} {
		name = strings.TrimPrefix(name, prefix)
	}
	return name
}

// isExpressionKind reports whether a native kind is expression-shaped,
// used to pair member initializer markers with their value.
func isExpressionKind(k cst.Kind) bool {
	switch k {
	case cst.KindIntegerLiteral, cst.KindFloatingLiteral, cst.KindImaginaryLiteral,
		cst.KindCharacterLiteral, cst.KindStringLiteral, cst.KindBoolLiteral,
		cst.KindUnaryOperator, cst.KindBinaryOperator, cst.KindCallExpr,
		cst.KindDeclRefExpr, cst.KindMemberRefExpr, cst.KindThisExpr,
		cst.KindUnexposedExpr:
		return true
	}
	return false
}

// memberInit is the synthetic HELPER node combining a constructor's
// member-initializer marker with the initializing expression.
type memberInit struct {
	member cst.Cursor
	value  cst.Cursor
	scope  string
}

func newMemberInit(member, value cst.Cursor, scope string) *memberInit {
	return &memberInit{member: member, value: value, scope: scope}
}

func (s *memberInit) NodeKind() ast.NodeKind       { return ast.Helper }
func (s *memberInit) Location() ast.SourceLocation { return locationOf(s.member) }

func (s *memberInit) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.member, cst.KindMemberRef); err != nil {
		return nil, err
	}
	attrs.Set(ast.AttrName, s.member.Spelling())
	if usr := s.member.USR(); usr != "" {
		attrs.Set(ast.AttrUSR, usr)
	}
	if s.scope != "" {
		attrs.Set(ast.AttrBelongsTo, scopeSymbol(s.scope))
	}
	if st, ok := dispatch(s.value, ctxExpression, s.scope, nil); ok {
		return []Strategy{st}, nil
	}
	return nil, nil
}
