package extract

import "github.com/cppbonsai/cppbonsai/internal/cst"

// buildContext is the syntactic position a child cursor was found in. The
// same native kind can normalize differently depending on position, e.g. a
// compound statement is tried as a statement before the generic expression
// fallback.
type buildContext int

const (
	// ctxTopLevel covers translation unit and namespace children.
	ctxTopLevel buildContext = iota
	// ctxMember covers class member children.
	ctxMember
	// ctxSignature covers function parameter/body children.
	ctxSignature
	// ctxStatement covers statement positions (function bodies, branches).
	ctxStatement
	// ctxExpression covers expression positions (operands, arguments).
	ctxExpression
)

// dispatchRule maps one native kind, in the given contexts, to a strategy.
type dispatchRule struct {
	kind cst.Kind
	in   []buildContext
	make func(c cst.Cursor, scope string, p *params) Strategy
}

// dispatchTable is the single place where native constructs are mapped to
// extraction strategies. Rules are ordered most-specific first; the first
// rule matching (kind, context) wins. A kind with no matching rule is
// dropped — see droppedKinds for the kinds dropped on purpose.
var dispatchTable = []dispatchRule{
	// Declarations
	{cst.KindNamespace, []buildContext{ctxTopLevel},
		func(c cst.Cursor, scope string, p *params) Strategy { return newNamespace(c, scope, p) }},
	{cst.KindClassDecl, []buildContext{ctxTopLevel, ctxMember},
		func(c cst.Cursor, scope string, p *params) Strategy { return newClass(c, scope, p) }},
	{cst.KindStructDecl, []buildContext{ctxTopLevel, ctxMember},
		func(c cst.Cursor, scope string, p *params) Strategy { return newClass(c, scope, p) }},
	{cst.KindFunctionDecl, []buildContext{ctxTopLevel},
		func(c cst.Cursor, scope string, p *params) Strategy { return newFunction(c, scope, p) }},
	{cst.KindMethod, []buildContext{ctxTopLevel, ctxMember},
		func(c cst.Cursor, scope string, p *params) Strategy { return newMethod(c, scope, p) }},
	{cst.KindConstructor, []buildContext{ctxTopLevel, ctxMember},
		func(c cst.Cursor, scope string, p *params) Strategy { return newConstructor(c, scope, p) }},
	{cst.KindFieldDecl, []buildContext{ctxMember},
		func(c cst.Cursor, scope string, p *params) Strategy { return newField(c, scope) }},
	{cst.KindVarDecl, []buildContext{ctxTopLevel, ctxMember, ctxStatement},
		func(c cst.Cursor, scope string, p *params) Strategy { return newVariable(c, scope) }},
	{cst.KindParmDecl, []buildContext{ctxSignature},
		func(c cst.Cursor, scope string, p *params) Strategy { return newParameter(c, scope) }},

	// Statements
	{cst.KindCompoundStmt, []buildContext{ctxSignature, ctxStatement},
		func(c cst.Cursor, scope string, p *params) Strategy { return newCompoundStmt(c, scope) }},
	{cst.KindDeclStmt, []buildContext{ctxStatement},
		func(c cst.Cursor, scope string, p *params) Strategy { return newDeclStmt(c, scope) }},
	{cst.KindIfStmt, []buildContext{ctxStatement},
		func(c cst.Cursor, scope string, p *params) Strategy { return newBranchStmt(c, scope) }},
	{cst.KindWhileStmt, []buildContext{ctxStatement},
		func(c cst.Cursor, scope string, p *params) Strategy { return newBranchStmt(c, scope) }},
	{cst.KindReturnStmt, []buildContext{ctxStatement},
		func(c cst.Cursor, scope string, p *params) Strategy { return newBranchStmt(c, scope) }},
	{cst.KindNullStmt, []buildContext{ctxStatement},
		func(c cst.Cursor, scope string, p *params) Strategy { return newNullStmt(c) }},

	// Expressions (valid in statement position too)
	{cst.KindIntegerLiteral, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newLiteral(c) }},
	{cst.KindFloatingLiteral, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newLiteral(c) }},
	{cst.KindImaginaryLiteral, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newLiteral(c) }},
	{cst.KindCharacterLiteral, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newLiteral(c) }},
	{cst.KindStringLiteral, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newLiteral(c) }},
	{cst.KindBoolLiteral, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newLiteral(c) }},
	{cst.KindUnaryOperator, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newOperator(c, scope) }},
	{cst.KindBinaryOperator, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newOperator(c, scope) }},
	{cst.KindCallExpr, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newCall(c, scope) }},
	{cst.KindDeclRefExpr, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newReference(c, scope) }},
	{cst.KindMemberRefExpr, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newReference(c, scope) }},
	{cst.KindThisExpr, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newThis(c) }},
	{cst.KindUnexposedExpr, []buildContext{ctxStatement, ctxExpression},
		func(c cst.Cursor, scope string, p *params) Strategy { return newUnknownExpr(c, scope) }},
}

// droppedKinds are native kinds with an explicit "drop" decision: they are
// consumed structurally by their parent strategy (base specifiers, member
// initializer markers, attributes, scope prefixes), act as markers only
// (access specifiers), or have no normalized counterpart (destructors).
var droppedKinds = map[cst.Kind]bool{
	cst.KindUnknown:         true,
	cst.KindTranslationUnit: true, // only ever the build root, never a child
	cst.KindBaseSpecifier:   true,
	cst.KindAccessSpecifier: true,
	cst.KindMemberRef:       true,
	cst.KindAnnotateAttr:    true,
	cst.KindNamespaceRef:    true,
	cst.KindTypeRef:         true,
	cst.KindDestructor:      true,
}

// dispatch selects the strategy for a cursor found in the given context.
// ok is false when the construct has no mapping there and must be silently
// dropped — the designed tolerance for unfamiliar constructs.
func dispatch(c cst.Cursor, ctx buildContext, scope string, p *params) (Strategy, bool) {
	kind := c.Kind()
	for _, rule := range dispatchTable {
		if rule.kind != kind {
			continue
		}
		for _, rc := range rule.in {
			if rc == ctx {
				return rule.make(c, scope, p), true
			}
		}
	}
	return nil, false
}

// dispatchChildren runs dispatch over a child list, keeping mapped children
// in order and dropping the rest.
func dispatchChildren(children []cst.Cursor, ctx buildContext, scope string, p *params) []Strategy {
	deps := make([]Strategy, 0, len(children))
	for _, child := range children {
		if s, ok := dispatch(child, ctx, scope, p); ok {
			deps = append(deps, s)
		}
	}
	return deps
}
