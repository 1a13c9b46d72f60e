package ast

// NodeKind is the closed taxonomy of normalized AST node kinds.
// Every kind belongs to exactly one coarse category (file, namespace,
// declaration, definition, statement, expression, helper); cross-cutting
// predicates such as IsFunction overlap categories. Adding a kind requires
// updating every predicate below — this is a closed-world design.
type NodeKind int

const (
	Unknown NodeKind = iota
	File
	Namespace

	// Declarations and definitions
	ClassDecl
	ClassDef
	FieldDecl
	FunctionDecl
	FunctionDef
	MethodDecl
	MethodDef
	ConstructorDecl
	ConstructorDef
	ParameterDecl
	VariableDecl

	// Statements
	NullStmt
	CompoundStmt
	DeclarationStmt
	IfStmt
	WhileStmt
	ReturnStmt
	UnknownStmt

	// Expressions
	IntegerLiteral
	FloatLiteral
	ImaginaryLiteral
	CharacterLiteral
	StringLiteral
	BooleanLiteral
	UnaryOperator
	BinaryOperator
	FunctionCall
	DeclReference
	MemberReference
	ThisReference
	UnknownExpr

	// Helper nodes (synthetic constructs such as member initializers)
	Helper
)

var kindNames = map[NodeKind]string{
	Unknown:          "UNKNOWN",
	File:             "FILE",
	Namespace:        "NAMESPACE",
	ClassDecl:        "CLASS_DECL",
	ClassDef:         "CLASS_DEF",
	FieldDecl:        "FIELD_DECL",
	FunctionDecl:     "FUNCTION_DECL",
	FunctionDef:      "FUNCTION_DEF",
	MethodDecl:       "METHOD_DECL",
	MethodDef:        "METHOD_DEF",
	ConstructorDecl:  "CONSTRUCTOR_DECL",
	ConstructorDef:   "CONSTRUCTOR_DEF",
	ParameterDecl:    "PARAMETER_DECL",
	VariableDecl:     "VARIABLE_DECL",
	NullStmt:         "NULL_STMT",
	CompoundStmt:     "COMPOUND_STMT",
	DeclarationStmt:  "DECLARATION_STMT",
	IfStmt:           "IF_STMT",
	WhileStmt:        "WHILE_STMT",
	ReturnStmt:       "RETURN_STMT",
	UnknownStmt:      "UNKNOWN_STMT",
	IntegerLiteral:   "INTEGER_LITERAL",
	FloatLiteral:     "FLOAT_LITERAL",
	ImaginaryLiteral: "IMAGINARY_LITERAL",
	CharacterLiteral: "CHARACTER_LITERAL",
	StringLiteral:    "STRING_LITERAL",
	BooleanLiteral:   "BOOLEAN_LITERAL",
	UnaryOperator:    "UNARY_OPERATOR",
	BinaryOperator:   "BINARY_OPERATOR",
	FunctionCall:     "FUNCTION_CALL",
	DeclReference:    "DECL_REFERENCE",
	MemberReference:  "MEMBER_REFERENCE",
	ThisReference:    "THIS_REFERENCE",
	UnknownExpr:      "UNKNOWN_EXPR",
	Helper:           "HELPER",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

var kindsByName = func() map[string]NodeKind {
	m := make(map[string]NodeKind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// KindFromName maps a rendered kind name back to its NodeKind. Unrecognized
// names map to Unknown.
func KindFromName(name string) (NodeKind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// IsFile reports whether the kind is the synthetic file root.
func (k NodeKind) IsFile() bool { return k == File }

// IsNamespace reports whether the kind is a namespace.
func (k NodeKind) IsNamespace() bool { return k == Namespace }

// IsDeclaration reports whether the kind declares a symbol without defining it.
func (k NodeKind) IsDeclaration() bool {
	switch k {
	case ClassDecl, FieldDecl, FunctionDecl, MethodDecl, ConstructorDecl, ParameterDecl, VariableDecl:
		return true
	}
	return false
}

// IsDefinition reports whether the kind carries a full definition body.
func (k NodeKind) IsDefinition() bool {
	switch k {
	case ClassDef, FunctionDef, MethodDef, ConstructorDef:
		return true
	}
	return false
}

// IsFunction reports whether the kind is function-like, declaration or
// definition. Overlaps IsDeclaration and IsDefinition.
func (k NodeKind) IsFunction() bool {
	switch k {
	case FunctionDecl, FunctionDef, MethodDecl, MethodDef, ConstructorDecl, ConstructorDef:
		return true
	}
	return false
}

// IsStatement reports whether the kind is a statement.
func (k NodeKind) IsStatement() bool {
	switch k {
	case NullStmt, CompoundStmt, DeclarationStmt, IfStmt, WhileStmt, ReturnStmt, UnknownStmt:
		return true
	}
	return false
}

// IsExpression reports whether the kind is an expression.
func (k NodeKind) IsExpression() bool {
	switch k {
	case IntegerLiteral, FloatLiteral, ImaginaryLiteral, CharacterLiteral,
		StringLiteral, BooleanLiteral, UnaryOperator, BinaryOperator,
		FunctionCall, DeclReference, MemberReference, ThisReference, UnknownExpr:
		return true
	}
	return false
}

// IsReference reports whether the kind refers to a declaration elsewhere.
func (k NodeKind) IsReference() bool {
	switch k {
	case DeclReference, MemberReference, ThisReference:
		return true
	}
	return false
}

// IsHelper reports whether the kind is a synthetic helper node.
func (k NodeKind) IsHelper() bool { return k == Helper }
