package tsfront

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cppbonsai/cppbonsai/internal/cst"
)

// stmt converts one statement node. Statement forms the taxonomy does not
// model yield nil and the construct is dropped.
func (c *converter) stmt(n *tree_sitter.Node, scopes []string) *cst.Node {
	switch n.Kind() {
	case "compound_statement":
		block := cst.NewNode(cst.KindCompoundStmt, "")
		c.at(block, n)
		for i := uint(0); i < n.NamedChildCount(); i++ {
			for _, child := range c.blockItem(n.NamedChild(i), scopes) {
				block.AddChild(child)
			}
		}
		return block
	case "if_statement":
		node := cst.NewNode(cst.KindIfStmt, "")
		c.at(node, n)
		if cond := c.conditionValue(n.ChildByFieldName("condition"), scopes); cond != nil {
			node.AddChild(cond)
		}
		if cons := n.ChildByFieldName("consequence"); cons != nil {
			if body := c.stmt(cons, scopes); body != nil {
				node.AddChild(body)
			}
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			// alternative is an else_clause wrapping the actual statement
			for i := uint(0); i < alt.NamedChildCount(); i++ {
				if body := c.stmt(alt.NamedChild(i), scopes); body != nil {
					node.AddChild(body)
				}
			}
		}
		return node
	case "while_statement":
		node := cst.NewNode(cst.KindWhileStmt, "")
		c.at(node, n)
		if cond := c.conditionValue(n.ChildByFieldName("condition"), scopes); cond != nil {
			node.AddChild(cond)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			if converted := c.stmt(body, scopes); converted != nil {
				node.AddChild(converted)
			}
		}
		return node
	case "return_statement":
		node := cst.NewNode(cst.KindReturnStmt, "")
		c.at(node, n)
		if n.NamedChildCount() > 0 {
			if value := c.expr(n.NamedChild(0), scopes); value != nil {
				node.AddChild(value)
			}
		}
		return node
	case "expression_statement":
		if n.NamedChildCount() == 0 {
			return c.at(cst.NewNode(cst.KindNullStmt, ""), n)
		}
		return c.expr(n.NamedChild(0), scopes)
	case "comment":
		return nil
	}
	if isExpressionNodeKind(n.Kind()) {
		return c.expr(n, scopes)
	}
	return nil
}

// blockItem converts one child of a compound statement. Declarations expand
// to a declaration-statement wrapper around their variables.
func (c *converter) blockItem(n *tree_sitter.Node, scopes []string) []cst.Cursor {
	if n.Kind() == "declaration" {
		ds := cst.NewNode(cst.KindDeclStmt, "")
		c.at(ds, n)
		for _, decl := range c.declaration(n, nil, cst.AccessNone, "", true) {
			ds.AddChild(decl)
		}
		return []cst.Cursor{ds}
	}
	if converted := c.stmt(n, scopes); converted != nil {
		return []cst.Cursor{converted}
	}
	return nil
}

// conditionValue unwraps a condition_clause to its value expression.
func (c *converter) conditionValue(n *tree_sitter.Node, scopes []string) *cst.Node {
	if n == nil {
		return nil
	}
	if n.Kind() == "condition_clause" {
		if value := n.ChildByFieldName("value"); value != nil {
			return c.expr(value, scopes)
		}
		if n.NamedChildCount() > 0 {
			return c.expr(n.NamedChild(0), scopes)
		}
		return nil
	}
	return c.expr(n, scopes)
}
