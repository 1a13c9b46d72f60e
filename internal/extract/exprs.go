package extract

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cppbonsai/cppbonsai/internal/ast"
	"github.com/cppbonsai/cppbonsai/internal/cst"
)

// literal builds one of the literal expression leaves.
type literal struct {
	cursor cst.Cursor
}

func newLiteral(c cst.Cursor) *literal { return &literal{cursor: c} }

var literalKinds = map[cst.Kind]ast.NodeKind{
	cst.KindIntegerLiteral:   ast.IntegerLiteral,
	cst.KindFloatingLiteral:  ast.FloatLiteral,
	cst.KindImaginaryLiteral: ast.ImaginaryLiteral,
	cst.KindCharacterLiteral: ast.CharacterLiteral,
	cst.KindStringLiteral:    ast.StringLiteral,
	cst.KindBoolLiteral:      ast.BooleanLiteral,
}

func (s *literal) NodeKind() ast.NodeKind {
	if k, ok := literalKinds[s.cursor.Kind()]; ok {
		return k
	}
	return ast.UnknownExpr
}

func (s *literal) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *literal) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if _, ok := literalKinds[s.cursor.Kind()]; !ok {
		return nil, expectKind(s.cursor, cst.KindIntegerLiteral, cst.KindFloatingLiteral,
			cst.KindImaginaryLiteral, cst.KindCharacterLiteral, cst.KindStringLiteral,
			cst.KindBoolLiteral)
	}
	value := s.cursor.Spelling()
	if value == "" {
		// Older feature sets leave literal spellings empty; the token
		// stream still has the lexeme.
		for _, tok := range s.cursor.Tokens() {
			if tok.Kind == cst.TokenLiteral || tok.Kind == cst.TokenKeyword {
				value = tok.Spelling
				break
			}
		}
	}
	if value != "" {
		attrs.Set(ast.AttrValue, value)
	}
	if t := s.cursor.TypeSpelling(); t != "" {
		attrs.Set(ast.AttrDataType, t)
	}
	return nil, nil
}

// operator builds UNARY_OPERATOR and BINARY_OPERATOR nodes. The concrete
// operator token comes from the structured opcode when the front end has
// one; otherwise the token stream is scanned past the first operand's span
// for the next punctuation token.
type operator struct {
	cursor cst.Cursor
	scope  string
}

func newOperator(c cst.Cursor, scope string) *operator {
	return &operator{cursor: c, scope: scope}
}

func (s *operator) NodeKind() ast.NodeKind {
	if s.cursor.Kind() == cst.KindUnaryOperator {
		return ast.UnaryOperator
	}
	return ast.BinaryOperator
}

func (s *operator) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *operator) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindUnaryOperator, cst.KindBinaryOperator); err != nil {
		return nil, err
	}
	if op := s.operatorSpelling(); op != "" {
		attrs.Set(ast.AttrName, op)
		attrs.Set(ast.AttrDisplayName, "operator"+op)
	}
	if t := s.cursor.TypeSpelling(); t != "" {
		attrs.Set(ast.AttrDataType, t)
	}
	return dispatchChildren(s.cursor.Children(), ctxExpression, s.scope, nil), nil
}

func (s *operator) operatorSpelling() string {
	if op := s.cursor.Opcode(); op != "" {
		return op
	}
	children := s.cursor.Children()
	if len(children) == 0 {
		return ""
	}
	// Fallback: the operator token follows the first operand's tokens.
	skip := len(children[0].Tokens())
	tokens := s.cursor.Tokens()
	for i := skip; i < len(tokens); i++ {
		if tokens[i].Kind == cst.TokenPunctuation {
			return tokens[i].Spelling
		}
	}
	return ""
}

// call builds a FUNCTION_CALL node. The cursor's own ordered argument list
// is captured up front; each visited child is identity-matched against the
// head of the remaining arguments. Matches take the next 0-based parameter
// index; non-arguments (e.g. the callee reference) take the sentinel -1.
type call struct {
	cursor cst.Cursor
	scope  string
}

func newCall(c cst.Cursor, scope string) *call { return &call{cursor: c, scope: scope} }

func (s *call) NodeKind() ast.NodeKind       { return ast.FunctionCall }
func (s *call) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *call) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindCallExpr); err != nil {
		return nil, err
	}
	name := s.cursor.Spelling()
	attrs.Set(ast.AttrName, name)
	if dn := s.cursor.DisplayName(); dn != "" && dn != name {
		attrs.Set(ast.AttrDisplayName, dn)
	}
	if t := s.cursor.TypeSpelling(); t != "" {
		attrs.Set(ast.AttrDataType, t)
	}

	args := s.cursor.Arguments()
	nextIndex := 0

	var deps []Strategy
	for _, child := range s.cursor.Children() {
		st, ok := dispatch(child, ctxExpression, s.scope, nil)
		if !ok {
			continue
		}
		index := -1
		if len(args) > 0 && sameExpr(child, args[0]) {
			index = nextIndex
			nextIndex++
			args = args[1:]
		}
		deps = append(deps, withAttr(st, ast.AttrParameterIndex, strconv.Itoa(index)))
	}

	if len(args) > 0 {
		// Consumption-order mismatch between the declared argument list
		// and the children actually visited; extraction completes with
		// the partial indices assigned so far.
		diag := fmt.Sprintf("call arguments not matched by child order: %d of %d unconsumed",
			len(args), len(s.cursor.Arguments()))
		attrs.Set(ast.AttrDiagnostic, diag)
		slog.Warn("extract.call.argument_mismatch",
			"callee", name, "unconsumed", len(args), "declared", len(s.cursor.Arguments()))
	}
	return deps, nil
}

// sameExpr compares two cursors by stable id, unwrapping single-child
// wrapper nodes (implicit conversions) on both sides first so that an
// argument wrapped in an invisible conversion still matches.
func sameExpr(a, b cst.Cursor) bool {
	if a.ID() == b.ID() {
		return true
	}
	return unwrapExpr(a).ID() == unwrapExpr(b).ID()
}

func unwrapExpr(c cst.Cursor) cst.Cursor {
	for c.Kind() == cst.KindUnexposedExpr {
		children := c.Children()
		if len(children) != 1 {
			break
		}
		c = children[0]
	}
	return c
}

// reference builds DECL_REFERENCE and MEMBER_REFERENCE nodes. Preceding
// namespace/type references accumulate into a qualified display name, and
// the front end's definition lookup optionally attaches the referenced
// definition's symbol.
type reference struct {
	cursor cst.Cursor
	scope  string
}

func newReference(c cst.Cursor, scope string) *reference {
	return &reference{cursor: c, scope: scope}
}

func (s *reference) NodeKind() ast.NodeKind {
	if s.cursor.Kind() == cst.KindMemberRefExpr {
		return ast.MemberReference
	}
	return ast.DeclReference
}

func (s *reference) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *reference) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindDeclRefExpr, cst.KindMemberRefExpr); err != nil {
		return nil, err
	}
	name := s.cursor.Spelling()
	attrs.Set(ast.AttrName, name)
	if t := s.cursor.TypeSpelling(); t != "" {
		attrs.Set(ast.AttrDataType, t)
	}

	qualifiers, rest := consumeWhile(s.cursor.Children(), func(c cst.Cursor) bool {
		return c.Kind() == cst.KindNamespaceRef || c.Kind() == cst.KindTypeRef
	})
	if len(qualifiers) > 0 {
		parts := make([]string, 0, len(qualifiers)+1)
		for _, q := range qualifiers {
			parts = append(parts, refName(q))
		}
		parts = append(parts, name)
		attrs.Set(ast.AttrDisplayName, strings.Join(parts, "::"))
	}

	if def := s.cursor.Definition(); def != nil {
		symbol := def.USR()
		if symbol == "" {
			symbol = def.Spelling()
		}
		if symbol != "" {
			attrs.Set(ast.AttrDefinition, symbol)
		}
	}

	return dispatchChildren(rest, ctxExpression, s.scope, nil), nil
}

// this builds a THIS_REFERENCE leaf.
type this struct {
	cursor cst.Cursor
}

func newThis(c cst.Cursor) *this { return &this{cursor: c} }

func (s *this) NodeKind() ast.NodeKind       { return ast.ThisReference }
func (s *this) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *this) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindThisExpr); err != nil {
		return nil, err
	}
	if t := s.cursor.TypeSpelling(); t != "" {
		attrs.Set(ast.AttrDataType, t)
	}
	return nil, nil
}

// unknownExpr builds an UNKNOWN_EXPR node for wrapper expressions the front
// end does not expose structurally; children are still normalized.
type unknownExpr struct {
	cursor cst.Cursor
	scope  string
}

func newUnknownExpr(c cst.Cursor, scope string) *unknownExpr {
	return &unknownExpr{cursor: c, scope: scope}
}

func (s *unknownExpr) NodeKind() ast.NodeKind       { return ast.UnknownExpr }
func (s *unknownExpr) Location() ast.SourceLocation { return locationOf(s.cursor) }

func (s *unknownExpr) Extract(attrs *ast.AttributeMap) ([]Strategy, error) {
	if err := expectKind(s.cursor, cst.KindUnexposedExpr); err != nil {
		return nil, err
	}
	if t := s.cursor.TypeSpelling(); t != "" {
		attrs.Set(ast.AttrDataType, t)
	}
	return dispatchChildren(s.cursor.Children(), ctxExpression, s.scope, nil), nil
}
