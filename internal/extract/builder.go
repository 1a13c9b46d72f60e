package extract

import (
	"fmt"
	"log/slog"

	"github.com/cppbonsai/cppbonsai/internal/ast"
	"github.com/cppbonsai/cppbonsai/internal/cst"
)

// Options configures one AST build.
type Options struct {
	// Name is the translation unit identifier stored on the AST.
	Name string
	// Workspace restricts top-level extraction to constructs whose file
	// lies under this directory. Empty means no boundary.
	Workspace string
}

// idGenerator mints sequential node ids. It is owned by the builder and
// threaded through explicitly; there is no process-wide counter.
type idGenerator struct {
	next ast.NodeID
}

func (g *idGenerator) get() ast.NodeID {
	id := g.next
	g.next++
	return id
}

// pendingNode is one queued build task: an id reserved for a node whose
// strategy has not run yet.
type pendingNode struct {
	id       ast.NodeID
	parent   ast.NodeID
	strategy Strategy
}

// Builder drives the FIFO queue that turns strategies into finalized nodes.
// Processing is strictly first-in-first-out, which guarantees that a parent
// id is always smaller than its children's ids and yields a breadth-first
// id ordering that is stable for a given CST.
type Builder struct {
	ids   idGenerator
	queue []pendingNode
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// Build normalizes the CST rooted at root into an AST. The root cursor must
// be a translation unit. A strategy contract violation aborts the build; no
// partial tree is returned.
func Build(root cst.Cursor, opts Options) (*ast.AST, error) {
	return NewBuilder().Build(root, opts)
}

// Build runs one full build. The builder resets its id counter first, so a
// builder value may be reused across translation units.
func (b *Builder) Build(root cst.Cursor, opts Options) (*ast.AST, error) {
	b.ids = idGenerator{next: ast.NullID}
	b.queue = b.queue[:0]

	name := opts.Name
	if name == "" {
		name = root.Spelling()
	}
	tree := ast.New(name)

	p := &params{workspace: opts.Workspace}
	b.enqueue(newTranslationUnit(root, p), ast.NullID)
	if err := b.drain(tree); err != nil {
		return nil, err
	}
	slog.Debug("build.done", "unit", name, "nodes", tree.Len())
	return tree, nil
}

// enqueue mints the next sequential id, stores a pending task and returns
// the id immediately, so callers can record it as a child reference before
// the child itself is built.
func (b *Builder) enqueue(s Strategy, parent ast.NodeID) ast.NodeID {
	id := b.ids.get()
	b.queue = append(b.queue, pendingNode{id: id, parent: parent, strategy: s})
	return id
}

// drain processes the queue FIFO until empty, finalizing one node per task.
func (b *Builder) drain(tree *ast.AST) error {
	for len(b.queue) > 0 {
		task := b.queue[0]
		b.queue = b.queue[1:]

		attrs := ast.NewAttributeMap()
		deps, err := task.strategy.Extract(attrs)
		if err != nil {
			return fmt.Errorf("build node %d: %w", task.id, err)
		}

		children := make([]ast.NodeID, 0, len(deps))
		for _, dep := range deps {
			children = append(children, b.enqueue(dep, task.id))
		}

		tree.Nodes[task.id] = &ast.Node{
			ID:         task.id,
			Kind:       task.strategy.NodeKind(),
			Parent:     task.parent,
			Children:   children,
			Attributes: attrs.Snapshot(),
			Location:   task.strategy.Location(),
		}
	}
	return nil
}
