package ast

import (
	"strings"
	"testing"
)

func TestNewSeedsRoot(t *testing.T) {
	tree := New("main.cpp")
	if tree.Len() != 1 {
		t.Fatalf("expected 1 node, got %d", tree.Len())
	}
	root := tree.Root()
	if root == nil {
		t.Fatal("expected sentinel root")
	}
	if !root.IsRoot() {
		t.Error("root.IsRoot() = false")
	}
	if root.Kind != File {
		t.Errorf("root kind = %s, want FILE", root.Kind)
	}
	if root.Parent != NullID {
		t.Errorf("root parent = %d, want %d", root.Parent, NullID)
	}
}

func TestNodeEqualIdentityOnly(t *testing.T) {
	a := &Node{ID: 3, Kind: VariableDecl, Parent: 1, Attributes: map[AttrKey]string{AttrName: "x"}}
	b := &Node{ID: 3, Kind: VariableDecl, Parent: 2, Attributes: map[AttrKey]string{AttrName: "y"}}
	if !a.Equal(b) {
		t.Error("nodes with same (id, kind) should be equal")
	}
	c := &Node{ID: 3, Kind: FieldDecl}
	if a.Equal(c) {
		t.Error("nodes with different kinds should not be equal")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
}

func buildTestTree() *AST {
	// 0 -> 1 -> {2, 3}, 3 -> 4
	tree := New("t.cpp")
	tree.Nodes[NullID].Children = []NodeID{1}
	tree.Nodes[1] = &Node{ID: 1, Kind: Namespace, Parent: 0, Children: []NodeID{2, 3},
		Attributes: map[AttrKey]string{AttrName: "ns"}}
	tree.Nodes[2] = &Node{ID: 2, Kind: ClassDef, Parent: 1,
		Attributes: map[AttrKey]string{AttrName: "C"}}
	tree.Nodes[3] = &Node{ID: 3, Kind: FunctionDef, Parent: 1, Children: []NodeID{4},
		Attributes: map[AttrKey]string{AttrName: "f"}}
	tree.Nodes[4] = &Node{ID: 4, Kind: CompoundStmt, Parent: 3,
		Attributes: map[AttrKey]string{}}
	return tree
}

func TestTraversePreOrder(t *testing.T) {
	tree := buildTestTree()
	var order []NodeID
	tree.Traverse(NullID, func(n *Node) bool {
		order = append(order, n.ID)
		return true
	})
	want := []NodeID{0, 1, 2, 3, 4}
	if len(order) != len(want) {
		t.Fatalf("visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("visited %v, want %v", order, want)
		}
	}
}

func TestTraverseEarlyStop(t *testing.T) {
	tree := buildTestTree()
	count := 0
	tree.Traverse(NullID, func(n *Node) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("visited %d nodes after stop, want 2", count)
	}
}

func TestTraverseFromSubtree(t *testing.T) {
	tree := buildTestTree()
	var order []NodeID
	tree.Traverse(3, func(n *Node) bool {
		order = append(order, n.ID)
		return true
	})
	if len(order) != 2 || order[0] != 3 || order[1] != 4 {
		t.Errorf("subtree visit = %v, want [3 4]", order)
	}
}

func TestTraverseMissingStart(t *testing.T) {
	tree := buildTestTree()
	called := false
	tree.Traverse(99, func(n *Node) bool { called = true; return true })
	if called {
		t.Error("callback invoked for missing start id")
	}
}

func TestPrettyStringStable(t *testing.T) {
	a := buildTestTree()
	b := buildTestTree()
	if a.PrettyString() != b.PrettyString() {
		t.Error("identical trees should render byte-identically")
	}
}

func TestPrettyStringOrdering(t *testing.T) {
	tree := buildTestTree()
	out := tree.PrettyString()

	// Nodes render in ascending id order.
	last := -1
	for _, id := range []string{"\n  0:", "\n  1:", "\n  2:", "\n  3:", "\n  4:"} {
		pos := strings.Index(out, id)
		if pos < 0 {
			t.Fatalf("missing %q in rendering", id)
		}
		if pos < last {
			t.Fatalf("node %q rendered out of order", id)
		}
		last = pos
	}
	if !strings.Contains(out, `name: "t.cpp"`) {
		t.Error("missing tree name in rendering")
	}
	if !strings.Contains(out, "type: NAMESPACE") {
		t.Error("missing namespace node in rendering")
	}
}

func TestNodePrettyStringEmptyAttributes(t *testing.T) {
	n := &Node{ID: 4, Kind: CompoundStmt, Parent: 3}
	out := n.PrettyString(0)
	if !strings.Contains(out, "attributes: {}") {
		t.Errorf("empty attributes should render {}, got:\n%s", out)
	}
}

func TestSourceLocationString(t *testing.T) {
	loc := SourceLocation{File: "a.cpp", Line: 3, Column: 7}
	if got := loc.String(); got != "a.cpp:3:7" {
		t.Errorf("String() = %q", got)
	}
	var zero SourceLocation
	if got := zero.String(); got != ":0:0" {
		t.Errorf("zero String() = %q", got)
	}
}
