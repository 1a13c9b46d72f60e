package tsfront

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cppbonsai/cppbonsai/internal/cst"
)

// expr converts one expression node.
func (c *converter) expr(n *tree_sitter.Node, scopes []string) *cst.Node {
	switch n.Kind() {
	case "parenthesized_expression":
		if n.NamedChildCount() > 0 {
			return c.expr(n.NamedChild(0), scopes)
		}
		return nil
	case "number_literal":
		return c.at(c.numberLiteral(n), n)
	case "true", "false":
		node := cst.NewNode(cst.KindBoolLiteral, c.text(n)).WithType("bool")
		return c.at(node, n)
	case "string_literal", "raw_string_literal", "concatenated_string":
		node := cst.NewNode(cst.KindStringLiteral, c.text(n)).WithType("const char *")
		return c.at(node, n)
	case "char_literal":
		node := cst.NewNode(cst.KindCharacterLiteral, c.text(n)).WithType("char")
		return c.at(node, n)
	case "this":
		return c.at(cst.NewNode(cst.KindThisExpr, "this"), n)
	case "identifier":
		return c.declRef(n, nil, scopes)
	case "qualified_identifier":
		qualifiers, leaf := splitQualifiers(n)
		if leaf == nil {
			return c.unexposed(n, scopes)
		}
		return c.declRef(leaf, qualifiers, scopes)
	case "field_expression":
		return c.memberRef(n, scopes)
	case "call_expression":
		return c.call(n, scopes)
	case "binary_expression", "assignment_expression":
		return c.binaryOp(n, scopes)
	case "unary_expression", "update_expression", "pointer_expression":
		return c.unaryOp(n, scopes)
	case "comment":
		return nil
	}
	return c.unexposed(n, scopes)
}

// isExpressionNodeKind reports whether a grammar node kind converts through
// expr, used when expressions appear in statement position.
func isExpressionNodeKind(kind string) bool {
	switch kind {
	case "parenthesized_expression", "number_literal", "true", "false",
		"string_literal", "raw_string_literal", "concatenated_string",
		"char_literal", "this", "identifier",
		"qualified_identifier", "field_expression", "call_expression",
		"binary_expression", "assignment_expression", "unary_expression",
		"update_expression", "pointer_expression":
		return true
	}
	return false
}

// numberLiteral classifies a numeric token by its spelling.
func (c *converter) numberLiteral(n *tree_sitter.Node) *cst.Node {
	spelling := c.text(n)
	lower := strings.ToLower(spelling)
	switch {
	case strings.HasSuffix(lower, "i") && !strings.HasPrefix(lower, "0x"):
		return cst.NewNode(cst.KindImaginaryLiteral, spelling)
	case !strings.HasPrefix(lower, "0x") && strings.ContainsAny(lower, ".e"):
		return cst.NewNode(cst.KindFloatingLiteral, spelling).WithType("double")
	}
	return cst.NewNode(cst.KindIntegerLiteral, spelling).WithType("int")
}

// declRef builds a reference cursor for a plain or qualified name. The
// definition link is filled in by resolvePending once the unit is fully
// indexed.
func (c *converter) declRef(leaf *tree_sitter.Node, qualifiers []*tree_sitter.Node, scopes []string) *cst.Node {
	name := c.text(leaf)
	node := cst.NewNode(cst.KindDeclRefExpr, name)
	c.at(node, leaf)

	refScopes := scopes
	if len(qualifiers) > 0 {
		// An explicit qualifier replaces lexical scoping.
		refScopes = nil
		for _, q := range qualifiers {
			qname := c.text(q)
			kind := cst.KindNamespaceRef
			if c.syms.isClass(qname) {
				kind = cst.KindTypeRef
			}
			node.AddChild(c.at(cst.NewNode(kind, qname), q))
			refScopes = append(refScopes, qname)
		}
		refScopes = []string{strings.Join(refScopes, "::")}
	}
	c.pending = append(c.pending, pendingRef{node: node, name: name, scopes: refScopes})
	return node
}

// memberRef converts a field access like x.f or p->f.
func (c *converter) memberRef(n *tree_sitter.Node, scopes []string) *cst.Node {
	name := ""
	var fieldNode *tree_sitter.Node
	if fieldNode = n.ChildByFieldName("field"); fieldNode != nil {
		name = c.text(fieldNode)
	}
	node := cst.NewNode(cst.KindMemberRefExpr, name)
	if fieldNode != nil {
		c.at(node, fieldNode)
	} else {
		c.at(node, n)
	}
	if base := n.ChildByFieldName("argument"); base != nil {
		if converted := c.expr(base, scopes); converted != nil {
			node.AddChild(converted)
		}
	}
	c.pending = append(c.pending, pendingRef{node: node, name: name, scopes: scopes})
	return node
}

// call converts a call expression. The argument cursors are the same values
// that appear among the children, which is what lets argument positions be
// recovered downstream by identity.
func (c *converter) call(n *tree_sitter.Node, scopes []string) *cst.Node {
	fn := n.ChildByFieldName("function")
	name := ""
	if fn != nil {
		switch fn.Kind() {
		case "identifier":
			name = c.text(fn)
		case "field_expression":
			if field := fn.ChildByFieldName("field"); field != nil {
				name = c.text(field)
			}
		case "qualified_identifier":
			if _, leaf := splitQualifiers(fn); leaf != nil {
				name = c.text(leaf)
			}
		default:
			name = truncate(c.text(fn), 20)
		}
	}

	node := cst.NewNode(cst.KindCallExpr, name)
	c.at(node, n)
	if fn != nil {
		if callee := c.expr(fn, scopes); callee != nil {
			node.AddChild(callee)
		}
	}
	var args []cst.Cursor
	if list := n.ChildByFieldName("arguments"); list != nil {
		for i := uint(0); i < list.NamedChildCount(); i++ {
			if arg := c.expr(list.NamedChild(i), scopes); arg != nil {
				node.AddChild(arg)
				args = append(args, arg)
			}
		}
	}
	return node.WithArguments(args...)
}

func (c *converter) binaryOp(n *tree_sitter.Node, scopes []string) *cst.Node {
	opcode := ""
	if op := n.ChildByFieldName("operator"); op != nil {
		opcode = c.text(op)
	}
	node := cst.NewNode(cst.KindBinaryOperator, opcode).WithOpcode(opcode)
	c.at(node, n)
	if left := n.ChildByFieldName("left"); left != nil {
		if converted := c.expr(left, scopes); converted != nil {
			node.AddChild(converted)
		}
	}
	if right := n.ChildByFieldName("right"); right != nil {
		if converted := c.expr(right, scopes); converted != nil {
			node.AddChild(converted)
		}
	}
	return node
}

func (c *converter) unaryOp(n *tree_sitter.Node, scopes []string) *cst.Node {
	opcode := ""
	if op := n.ChildByFieldName("operator"); op != nil {
		opcode = c.text(op)
	} else if n.ChildCount() > 0 {
		opcode = c.text(n.Child(0))
	}
	node := cst.NewNode(cst.KindUnaryOperator, opcode).WithOpcode(opcode)
	c.at(node, n)
	if arg := n.ChildByFieldName("argument"); arg != nil {
		if converted := c.expr(arg, scopes); converted != nil {
			node.AddChild(converted)
		}
	}
	return node
}

// unexposed wraps a construct the taxonomy has no direct kind for, keeping
// any convertible children reachable.
func (c *converter) unexposed(n *tree_sitter.Node, scopes []string) *cst.Node {
	node := cst.NewNode(cst.KindUnexposedExpr, "")
	c.at(node, n)
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if child := c.expr(n.NamedChild(i), scopes); child != nil {
			node.AddChild(child)
		}
	}
	return node
}
