package tsfront

import "github.com/cppbonsai/cppbonsai/internal/cst"

// symbolTable indexes declarations seen during conversion so that
// declaration references can be resolved lexically afterwards. Keys are
// ::-joined qualified names; the first definition for a name wins.
type symbolTable struct {
	decls   map[string]*cst.Node
	classes map[string]bool
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		decls:   make(map[string]*cst.Node),
		classes: make(map[string]bool),
	}
}

// declare records a declaration under its qualified name. Definitions
// replace forward declarations; nothing replaces a definition.
func (t *symbolTable) declare(qname string, node *cst.Node) {
	if existing, ok := t.decls[qname]; ok && existing.IsDefinition() {
		return
	}
	t.decls[qname] = node
}

// declareClass additionally marks the name as type-like, which drives the
// namespace-ref vs type-ref classification of qualifier segments.
func (t *symbolTable) declareClass(qname string, node *cst.Node) {
	t.declare(qname, node)
	t.classes[qname] = true
}

// isClass reports whether name (qualified or bare) names a known type.
func (t *symbolTable) isClass(name string) bool {
	if t.classes[name] {
		return true
	}
	for qname := range t.classes {
		if tailMatches(qname, name) {
			return true
		}
	}
	return false
}

// resolve looks a name up innermost scope first. scopes is the chain of
// enclosing scope names, outermost first.
func (t *symbolTable) resolve(name string, scopes []string) *cst.Node {
	for i := len(scopes); i >= 0; i-- {
		qname := joinScopes(scopes[:i], name)
		if node, ok := t.decls[qname]; ok {
			return node
		}
	}
	return nil
}

func joinScopes(scopes []string, name string) string {
	qname := ""
	for _, s := range scopes {
		if s == "" {
			continue
		}
		qname += s + "::"
	}
	return qname + name
}

func tailMatches(qname, name string) bool {
	if len(qname) == len(name) {
		return qname == name
	}
	n := len(qname) - len(name)
	return n > 2 && qname[n:] == name && qname[n-2:n] == "::"
}

// scopeSegment is one element of the enclosing scope chain, tagged as a
// namespace or a type so symbol references render as @N@ / @S@ segments.
type scopeSegment struct {
	name   string
	isType bool
}

// usrPrefix renders the scope chain in unique-symbol-reference form.
func usrPrefix(scope []scopeSegment) string {
	out := ""
	for _, seg := range scope {
		if seg.name == "" {
			continue
		}
		if seg.isType {
			out += "@S@" + seg.name
		} else {
			out += "@N@" + seg.name
		}
	}
	return out
}

// scopeNames returns the plain name chain, outermost first.
func scopeNames(scope []scopeSegment) []string {
	names := make([]string, 0, len(scope))
	for _, seg := range scope {
		if seg.name != "" {
			names = append(names, seg.name)
		}
	}
	return names
}

func usrNamespace(scope []scopeSegment, name string) string {
	return "c:" + usrPrefix(scope) + "@N@" + name
}

func usrClass(scope []scopeSegment, name string) string {
	return "c:" + usrPrefix(scope) + "@S@" + name
}

func usrFunction(scope []scopeSegment, name string) string {
	return "c:" + usrPrefix(scope) + "@F@" + name + "#"
}

func usrField(scope []scopeSegment, name string) string {
	return "c:" + usrPrefix(scope) + "@FI@" + name
}
