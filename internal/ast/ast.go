// Package ast defines the normalized, attributed abstract syntax tree
// produced from a front end's concrete syntax tree: integer node identities,
// explicit parent/child links, a typed attribute map per node, and a
// deterministic text rendering suitable for golden-file tests.
package ast

import (
	"fmt"
	"sort"
	"strings"
)

// NodeID identifies a node within one AST. IDs are assigned in discovery
// order during construction, so a parent's id is always strictly less than
// the ids of its children.
type NodeID int

// NullID is the reserved sentinel id of the synthetic file root. It is never
// minted for a content node.
const NullID NodeID = 0

// SourceLocation is a (file, line, column) position. All fields default to
// empty/zero when the front end cannot supply one — never absent.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// String renders the location as file:line:column.
func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Node is one finalized AST node. Parent, children, attributes and location
// are populated at construction time and never mutated afterward.
type Node struct {
	ID         NodeID
	Kind       NodeKind
	Parent     NodeID
	Children   []NodeID
	Attributes map[AttrKey]string
	Location   SourceLocation
}

// IsRoot reports whether the node is the sentinel file root.
func (n *Node) IsRoot() bool { return n.ID == NullID }

// Equal compares nodes by identity (id, kind) only, matching the data model:
// parent, children, attributes and location are not part of node identity.
func (n *Node) Equal(other *Node) bool {
	if other == nil {
		return false
	}
	return n.ID == other.ID && n.Kind == other.Kind
}

// Attr returns the attribute value for key, or "" when unset.
func (n *Node) Attr(key AttrKey) string { return n.Attributes[key] }

// PrettyString renders the node's fields, one per line, with the given indent.
func (n *Node) PrettyString(indent int) string {
	ws := strings.Repeat(" ", indent)
	var b strings.Builder
	fmt.Fprintf(&b, "%stype: %s\n", ws, n.Kind)
	fmt.Fprintf(&b, "%sparent: %d\n", ws, n.Parent)
	fmt.Fprintf(&b, "%schildren: %v\n", ws, n.Children)
	fmt.Fprintf(&b, "%slocation: %s\n", ws, n.Location)
	if len(n.Attributes) == 0 {
		fmt.Fprintf(&b, "%sattributes: {}", ws)
		return b.String()
	}
	fmt.Fprintf(&b, "%sattributes:", ws)
	for _, key := range AllAttrKeys() {
		if v, ok := n.Attributes[key]; ok {
			fmt.Fprintf(&b, "\n%s  %s: %s", ws, key, v)
		}
	}
	return b.String()
}

// AST is a translation unit name plus the id-to-node table. It always
// contains at least the sentinel root. The builder owns it exclusively
// during construction; afterwards it is read-only.
type AST struct {
	Name  string
	Nodes map[NodeID]*Node
}

// New returns an AST containing only the sentinel file root.
func New(name string) *AST {
	return &AST{
		Name: name,
		Nodes: map[NodeID]*Node{
			NullID: {ID: NullID, Kind: File, Parent: NullID, Attributes: map[AttrKey]string{}},
		},
	}
}

// Root returns the sentinel root node.
func (a *AST) Root() *Node { return a.Nodes[NullID] }

// Len returns the number of nodes, sentinel root included.
func (a *AST) Len() int { return len(a.Nodes) }

// Traverse walks the tree from start in pre-order, depth-first, calling fn
// for each node. Traversal is finite and restartable: it follows child links
// only, so it terminates on any tree satisfying the construction invariants.
func (a *AST) Traverse(start NodeID, fn func(*Node) bool) {
	node, ok := a.Nodes[start]
	if !ok {
		return
	}
	stack := []*Node{node}
	for len(stack) > 0 {
		node = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(node) {
			return
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			if child, ok := a.Nodes[node.Children[i]]; ok {
				stack = append(stack, child)
			}
		}
	}
}

// PrettyString renders the whole tree with stable key ordering by numeric id,
// so two structurally identical ASTs render byte-identically.
func (a *AST) PrettyString() string {
	ids := make([]NodeID, 0, len(a.Nodes))
	for id := range a.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	b.WriteString("AST:\n")
	fmt.Fprintf(&b, "  name: %q", a.Name)
	for _, id := range ids {
		fmt.Fprintf(&b, "\n  %d:\n", id)
		b.WriteString(a.Nodes[id].PrettyString(4))
	}
	return b.String()
}
