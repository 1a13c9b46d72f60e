package cst

import "sync/atomic"

var nodeIDs atomic.Uint64

// Node is a value-backed Cursor implementation. Front ends that materialize
// their tree into memory build Node values (see tsfront); tests build CST
// fixtures from them directly. Setters return the receiver so trees read
// top-down.
type Node struct {
	id           uint64
	kind         Kind
	spelling     string
	displayName  string
	typeSpelling string
	resultType   string
	usr          string
	opcode       string
	access       Access
	isDefinition bool
	loc          *Location
	children     []Cursor
	tokens       []Token
	args         []Cursor
	definition   Cursor
}

// NewNode returns a node cursor with a fresh stable id.
func NewNode(kind Kind, spelling string) *Node {
	return &Node{
		id:       nodeIDs.Add(1),
		kind:     kind,
		spelling: spelling,
	}
}

func (n *Node) WithDisplayName(name string) *Node  { n.displayName = name; return n }
func (n *Node) WithType(spelling string) *Node     { n.typeSpelling = spelling; return n }
func (n *Node) WithResultType(sp string) *Node     { n.resultType = sp; return n }
func (n *Node) WithUSR(usr string) *Node           { n.usr = usr; return n }
func (n *Node) WithOpcode(op string) *Node         { n.opcode = op; return n }
func (n *Node) WithAccess(a Access) *Node          { n.access = a; return n }
func (n *Node) AsDefinition() *Node                { n.isDefinition = true; return n }
func (n *Node) WithDefinition(d Cursor) *Node      { n.definition = d; return n }
func (n *Node) WithTokens(tokens ...Token) *Node   { n.tokens = tokens; return n }
func (n *Node) WithChildren(cs ...Cursor) *Node    { n.children = cs; return n }
func (n *Node) WithArguments(args ...Cursor) *Node { n.args = args; return n }

// AddChild appends one child and returns the receiver.
func (n *Node) AddChild(c Cursor) *Node {
	n.children = append(n.children, c)
	return n
}

// At sets the source location.
func (n *Node) At(file string, line, column int) *Node {
	n.loc = &Location{File: file, Line: line, Column: column}
	return n
}

func (n *Node) ID() uint64                 { return n.id }
func (n *Node) Kind() Kind                 { return n.kind }
func (n *Node) Spelling() string           { return n.spelling }
func (n *Node) TypeSpelling() string       { return n.typeSpelling }
func (n *Node) ResultTypeSpelling() string { return n.resultType }
func (n *Node) USR() string                { return n.usr }
func (n *Node) Access() Access             { return n.access }
func (n *Node) IsDefinition() bool         { return n.isDefinition }
func (n *Node) Children() []Cursor         { return n.children }
func (n *Node) Tokens() []Token            { return n.tokens }
func (n *Node) Arguments() []Cursor        { return n.args }
func (n *Node) Definition() Cursor         { return n.definition }
func (n *Node) Opcode() string             { return n.opcode }

func (n *Node) DisplayName() string {
	if n.displayName != "" {
		return n.displayName
	}
	return n.spelling
}

func (n *Node) Location() (Location, bool) {
	if n.loc == nil {
		return Location{}, false
	}
	return *n.loc, true
}
