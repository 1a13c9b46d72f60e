// Package cst is the boundary to the external compiler front end. A front
// end hands the builder a tree of Cursor values exposing native kind,
// spelling, type, tokens, ordered children and symbol resolution; the
// normalization engine consumes nothing else.
package cst

// Kind is the native cursor kind reported by the front end. The set is open
// on the front-end side; unrecognized kinds simply have no dispatch mapping
// and the constructs are dropped during normalization.
type Kind int

const (
	KindUnknown Kind = iota
	KindTranslationUnit
	KindNamespace
	KindNamespaceRef
	KindTypeRef

	KindClassDecl
	KindStructDecl
	KindFieldDecl
	KindFunctionDecl
	KindMethod
	KindConstructor
	KindDestructor
	KindParmDecl
	KindVarDecl

	KindBaseSpecifier
	KindAccessSpecifier
	KindMemberRef
	KindAnnotateAttr

	KindCompoundStmt
	KindDeclStmt
	KindIfStmt
	KindWhileStmt
	KindReturnStmt
	KindNullStmt

	KindIntegerLiteral
	KindFloatingLiteral
	KindImaginaryLiteral
	KindCharacterLiteral
	KindStringLiteral
	KindBoolLiteral
	KindUnaryOperator
	KindBinaryOperator
	KindCallExpr
	KindDeclRefExpr
	KindMemberRefExpr
	KindThisExpr
	KindUnexposedExpr
)

var kindNames = map[Kind]string{
	KindUnknown:          "UNKNOWN",
	KindTranslationUnit:  "TRANSLATION_UNIT",
	KindNamespace:        "NAMESPACE",
	KindNamespaceRef:     "NAMESPACE_REF",
	KindTypeRef:          "TYPE_REF",
	KindClassDecl:        "CLASS_DECL",
	KindStructDecl:       "STRUCT_DECL",
	KindFieldDecl:        "FIELD_DECL",
	KindFunctionDecl:     "FUNCTION_DECL",
	KindMethod:           "CXX_METHOD",
	KindConstructor:      "CONSTRUCTOR",
	KindDestructor:       "DESTRUCTOR",
	KindParmDecl:         "PARM_DECL",
	KindVarDecl:          "VAR_DECL",
	KindBaseSpecifier:    "CXX_BASE_SPECIFIER",
	KindAccessSpecifier:  "CXX_ACCESS_SPEC_DECL",
	KindMemberRef:        "MEMBER_REF",
	KindAnnotateAttr:     "ANNOTATE_ATTR",
	KindCompoundStmt:     "COMPOUND_STMT",
	KindDeclStmt:         "DECL_STMT",
	KindIfStmt:           "IF_STMT",
	KindWhileStmt:        "WHILE_STMT",
	KindReturnStmt:       "RETURN_STMT",
	KindNullStmt:         "NULL_STMT",
	KindIntegerLiteral:   "INTEGER_LITERAL",
	KindFloatingLiteral:  "FLOATING_LITERAL",
	KindImaginaryLiteral: "IMAGINARY_LITERAL",
	KindCharacterLiteral: "CHARACTER_LITERAL",
	KindStringLiteral:    "STRING_LITERAL",
	KindBoolLiteral:      "CXX_BOOL_LITERAL",
	KindUnaryOperator:    "UNARY_OPERATOR",
	KindBinaryOperator:   "BINARY_OPERATOR",
	KindCallExpr:         "CALL_EXPR",
	KindDeclRefExpr:      "DECL_REF_EXPR",
	KindMemberRefExpr:    "MEMBER_REF_EXPR",
	KindThisExpr:         "CXX_THIS_EXPR",
	KindUnexposedExpr:    "UNEXPOSED_EXPR",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Access is the member access level reported by the front end.
// AccessNone means the cursor has no meaningful access specifier.
type Access int

const (
	AccessNone Access = iota
	AccessPublic
	AccessPrivate
	AccessProtected
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessPrivate:
		return "private"
	case AccessProtected:
		return "protected"
	}
	return ""
}

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenPunctuation TokenKind = iota
	TokenKeyword
	TokenIdentifier
	TokenLiteral
	TokenComment
)

// Token is one lexical token in a cursor's extent.
type Token struct {
	Kind     TokenKind
	Spelling string
}

// Location is a (file, line, column) source position from the front end.
type Location struct {
	File   string
	Line   int
	Column int
}

// Cursor is one node of the front end's concrete syntax tree.
//
// Identity: ID must be stable for a given underlying CST node, so that the
// same child observed through Children and through Arguments compares equal.
// Two Cursors denote the same node iff their IDs match.
type Cursor interface {
	// ID is the front end's stable identity for the underlying node.
	ID() uint64
	// Kind is the native cursor kind.
	Kind() Kind
	// Spelling is the node's short name (e.g. an identifier).
	Spelling() string
	// DisplayName is the long display form (e.g. a function signature).
	DisplayName() string
	// TypeSpelling is the canonical spelling of the node's type, or "".
	TypeSpelling() string
	// ResultTypeSpelling is the return type spelling for function-like
	// cursors, or "".
	ResultTypeSpelling() string
	// USR is the unique symbol reference, or "" when the front end cannot
	// resolve one.
	USR() string
	// Access is the member access specifier, AccessNone when inapplicable.
	Access() Access
	// IsDefinition reports whether the cursor is a full definition rather
	// than a forward declaration.
	IsDefinition() bool
	// Location returns the source position. ok is false when the front end
	// cannot supply one (e.g. compiler-synthesized constructs).
	Location() (loc Location, ok bool)
	// Children returns the ordered child cursors. The iteration order is
	// the front end's own and is significant for staged extraction.
	Children() []Cursor
	// Tokens returns the lexical tokens covering the cursor's extent.
	Tokens() []Token
	// Arguments returns the ordered argument cursors for call-like nodes,
	// nil otherwise.
	Arguments() []Cursor
	// Definition resolves the cursor to the cursor of the entity it
	// references, or nil when unresolved. This is the one capability
	// beyond plain tree walking that extraction consults.
	Definition() Cursor
	// Opcode is the structured operator spelling for unary/binary operator
	// cursors, or "" when the front end does not expose one (older feature
	// sets fall back to token scanning).
	Opcode() string
}
