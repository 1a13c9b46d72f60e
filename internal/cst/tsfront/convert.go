package tsfront

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cppbonsai/cppbonsai/internal/cst"
)

const maxWarnings = 20

// converter materializes a tree-sitter parse tree into cst.Node cursors.
// Declarations are indexed in a symbol table as they are converted;
// references are resolved in a second pass once the whole unit is known,
// so forward references inside a class still resolve.
type converter struct {
	file     string
	source   []byte
	syms     *symbolTable
	pending  []pendingRef
	warnings []string
}

// pendingRef is a reference cursor awaiting definition resolution.
type pendingRef struct {
	node   *cst.Node
	name   string
	scopes []string
}

func newConverter(file string, source []byte) *converter {
	return &converter{file: file, source: source, syms: newSymbolTable()}
}

func (c *converter) text(n *tree_sitter.Node) string {
	return string(c.source[n.StartByte():n.EndByte()])
}

// at stamps the tree-sitter node's position onto a cursor (1-based).
func (c *converter) at(node *cst.Node, n *tree_sitter.Node) *cst.Node {
	pos := n.StartPosition()
	return node.At(c.file, int(pos.Row)+1, int(pos.Column)+1)
}

func (c *converter) warn(n *tree_sitter.Node, format string, args ...any) {
	if len(c.warnings) >= maxWarnings {
		return
	}
	pos := n.StartPosition()
	prefix := fmt.Sprintf("%s:%d:%d: ", c.file, pos.Row+1, pos.Column+1)
	c.warnings = append(c.warnings, prefix+fmt.Sprintf(format, args...))
}

// resolvePending attaches definitions to reference cursors, innermost
// scope first.
func (c *converter) resolvePending() {
	for _, ref := range c.pending {
		if def := c.syms.resolve(ref.name, ref.scopes); def != nil && def != ref.node {
			ref.node.WithDefinition(def)
		}
	}
}

// translationUnit converts the parse tree root.
func (c *converter) translationUnit(root *tree_sitter.Node) *cst.Node {
	c.collectSyntaxWarnings(root)

	tu := cst.NewNode(cst.KindTranslationUnit, c.file)
	for i := uint(0); i < root.NamedChildCount(); i++ {
		for _, child := range c.topLevel(root.NamedChild(i), nil) {
			tu.AddChild(child)
		}
	}
	return tu
}

func (c *converter) collectSyntaxWarnings(n *tree_sitter.Node) {
	if n == nil || len(c.warnings) >= maxWarnings {
		return
	}
	if n.IsError() {
		c.warn(n, "syntax error near %q", truncate(c.text(n), 40))
	} else if n.IsMissing() {
		c.warn(n, "missing %s", n.Kind())
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c.collectSyntaxWarnings(n.Child(i))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// topLevel converts one translation-unit or namespace child. Constructs the
// grammar exposes but the taxonomy has no counterpart for yield nothing.
func (c *converter) topLevel(n *tree_sitter.Node, scope []scopeSegment) []cst.Cursor {
	switch n.Kind() {
	case "namespace_definition":
		return []cst.Cursor{c.namespaceDef(n, scope)}
	case "class_specifier", "struct_specifier":
		return []cst.Cursor{c.classSpec(n, scope, cst.AccessNone)}
	case "function_definition":
		return []cst.Cursor{c.functionLike(n, scope, cst.AccessNone, "")}
	case "declaration":
		return c.declaration(n, scope, cst.AccessNone, "", false)
	case "linkage_specification":
		var out []cst.Cursor
		if body := n.ChildByFieldName("body"); body != nil {
			for i := uint(0); i < body.NamedChildCount(); i++ {
				out = append(out, c.topLevel(body.NamedChild(i), scope)...)
			}
		}
		return out
	case "template_declaration":
		// Templates are normalized as their underlying declaration; the
		// parameter list itself has no taxonomy counterpart.
		var out []cst.Cursor
		for i := uint(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			switch child.Kind() {
			case "class_specifier", "struct_specifier", "function_definition", "declaration":
				out = append(out, c.topLevel(child, scope)...)
			}
		}
		return out
	}
	return nil
}

func (c *converter) namespaceDef(n *tree_sitter.Node, scope []scopeSegment) *cst.Node {
	name := ""
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name = c.text(nameNode)
	}
	node := cst.NewNode(cst.KindNamespace, name).
		WithUSR(usrNamespace(scope, name)).
		AsDefinition()
	c.at(node, n)
	c.syms.declare(joinScopes(scopeNames(scope), name), node)

	inner := append(append([]scopeSegment{}, scope...), scopeSegment{name: name})
	if body := n.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.NamedChildCount(); i++ {
			for _, child := range c.topLevel(body.NamedChild(i), inner) {
				node.AddChild(child)
			}
		}
	}
	return node
}

func (c *converter) classSpec(n *tree_sitter.Node, scope []scopeSegment, access cst.Access) *cst.Node {
	kind := cst.KindClassDecl
	defaultAccess := cst.AccessPrivate
	if n.Kind() == "struct_specifier" {
		kind = cst.KindStructDecl
		defaultAccess = cst.AccessPublic
	}
	name := ""
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name = c.text(nameNode)
	}

	node := cst.NewNode(kind, name).
		WithUSR(usrClass(scope, name)).
		WithType(joinScopes(scopeNames(scope), name)).
		WithAccess(access)
	c.at(node, n)

	body := n.ChildByFieldName("body")
	if body != nil {
		node.AsDefinition()
	}
	c.syms.declareClass(joinScopes(scopeNames(scope), name), node)

	// Base specifiers come first, mirroring the semantic child order of a
	// class cursor.
	for i := uint(0); i < n.NamedChildCount(); i++ {
		clause := n.NamedChild(i)
		if clause.Kind() != "base_class_clause" {
			continue
		}
		for j := uint(0); j < clause.NamedChildCount(); j++ {
			base := clause.NamedChild(j)
			if base.Kind() == "access_specifier" {
				continue
			}
			spec := cst.NewNode(cst.KindBaseSpecifier, c.text(base)).WithType(c.text(base))
			node.AddChild(c.at(spec, base))
		}
	}

	if body == nil {
		return node
	}

	inner := append(append([]scopeSegment{}, scope...), scopeSegment{name: name, isType: true})
	current := defaultAccess
	for i := uint(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(i)
		switch member.Kind() {
		case "access_specifier":
			current = parseAccess(c.text(member))
			marker := cst.NewNode(cst.KindAccessSpecifier, c.text(member))
			node.AddChild(c.at(marker, member))
		case "field_declaration":
			for _, m := range c.fieldMember(member, inner, current, name) {
				node.AddChild(m)
			}
		case "function_definition":
			node.AddChild(c.functionLike(member, inner, current, name))
		case "declaration":
			for _, m := range c.declaration(member, inner, current, name, false) {
				node.AddChild(m)
			}
		case "class_specifier", "struct_specifier":
			node.AddChild(c.classSpec(member, inner, current))
		}
	}
	return node
}

func parseAccess(s string) cst.Access {
	switch strings.TrimSuffix(strings.TrimSpace(s), ":") {
	case "public":
		return cst.AccessPublic
	case "protected":
		return cst.AccessProtected
	case "private":
		return cst.AccessPrivate
	}
	return cst.AccessNone
}

// fieldMember converts one field_declaration inside a class body: a data
// member, or a method/constructor declaration when the declarator is
// function-shaped.
func (c *converter) fieldMember(n *tree_sitter.Node, scope []scopeSegment, access cst.Access, className string) []cst.Cursor {
	if findFunctionDeclarator(n) != nil {
		return []cst.Cursor{c.functionLike(n, scope, access, className)}
	}

	typeNode := n.ChildByFieldName("type")
	typeText := ""
	if typeNode != nil {
		typeText = c.text(typeNode)
	}

	var out []cst.Cursor
	for i := uint(0); i < n.NamedChildCount(); i++ {
		decl := n.NamedChild(i)
		if typeNode != nil && decl.Id() == typeNode.Id() {
			continue
		}
		nameNode := declaratorName(decl)
		if nameNode == nil {
			continue
		}
		name := c.text(nameNode)
		node := cst.NewNode(cst.KindFieldDecl, name).
			WithType(decorateType(typeText, decl)).
			WithUSR(usrField(scope, name)).
			WithAccess(access)
		c.at(node, nameNode)
		c.syms.declare(joinScopes(scopeNames(scope), name), node)

		if value := n.ChildByFieldName("default_value"); value != nil {
			if init := c.expr(value, scopeNames(scope)); init != nil {
				node.AddChild(init)
			}
		}
		out = append(out, node)
	}
	return out
}

// declaration converts a declaration node outside a function body: a
// variable, or a function/method/constructor prototype. local marks
// block-scope variables, which get no symbol reference.
func (c *converter) declaration(n *tree_sitter.Node, scope []scopeSegment, access cst.Access, className string, local bool) []cst.Cursor {
	if findFunctionDeclarator(n) != nil {
		return []cst.Cursor{c.functionLike(n, scope, access, className)}
	}

	typeText := ""
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		typeText = c.text(typeNode)
	}

	var out []cst.Cursor
	for i := uint(0); i < n.NamedChildCount(); i++ {
		decl := n.NamedChild(i)
		if typeNode := n.ChildByFieldName("type"); typeNode != nil && decl.Id() == typeNode.Id() {
			continue
		}
		nameNode := declaratorName(decl)
		if nameNode == nil {
			continue
		}
		name := c.text(nameNode)
		node := cst.NewNode(cst.KindVarDecl, name).
			WithType(decorateType(typeText, decl)).
			WithAccess(access)
		c.at(node, nameNode)
		if !local {
			node.WithUSR("c:" + usrPrefix(scope) + "@" + name)
			c.syms.declare(joinScopes(scopeNames(scope), name), node)
		}
		if decl.Kind() == "init_declarator" {
			if value := decl.ChildByFieldName("value"); value != nil {
				if init := c.expr(value, scopeNames(scope)); init != nil {
					node.AddChild(init)
				}
			}
		}
		out = append(out, node)
	}
	return out
}

// functionLike converts function_definition, and declaration /
// field_declaration nodes whose declarator is function-shaped, into a
// function, method, constructor or destructor cursor. Child order mirrors a
// semantic cursor: qualifier references, parameters, constructor member
// initializers, body.
func (c *converter) functionLike(n *tree_sitter.Node, scope []scopeSegment, access cst.Access, className string) *cst.Node {
	fdecl := findFunctionDeclarator(n)
	if fdecl == nil {
		return c.at(cst.NewNode(cst.KindUnknown, truncate(c.text(n), 20)), n)
	}

	nameNode := fdecl.ChildByFieldName("declarator")
	qualifiers, nameLeaf := splitQualifiers(nameNode)
	name := ""
	if nameLeaf != nil {
		name = c.text(nameLeaf)
	}

	// Effective scope: in-class members inherit scope directly;
	// out-of-class definitions reconstruct it from the qualifiers.
	effScope := append([]scopeSegment{}, scope...)
	var qualifierNodes []*cst.Node
	for _, q := range qualifiers {
		qname := c.text(q)
		isType := c.syms.isClass(joinScopes(append(scopeNames(scope), qualifierTexts(c, qualifiers, q)...), qname)) ||
			c.syms.isClass(qname)
		kind := cst.KindNamespaceRef
		if isType {
			kind = cst.KindTypeRef
		}
		ref := cst.NewNode(kind, qname)
		qualifierNodes = append(qualifierNodes, c.at(ref, q))
		effScope = append(effScope, scopeSegment{name: qname, isType: isType})
	}

	kind := cst.KindFunctionDecl
	switch {
	case nameLeaf != nil && nameLeaf.Kind() == "destructor_name":
		kind = cst.KindDestructor
	case className != "" && name == className:
		kind = cst.KindConstructor
	case className != "":
		kind = cst.KindMethod
	case len(qualifiers) > 0 && c.syms.isClass(c.text(qualifiers[len(qualifiers)-1])):
		if name == c.text(qualifiers[len(qualifiers)-1]) {
			kind = cst.KindConstructor
		} else {
			kind = cst.KindMethod
		}
	}

	resultType := ""
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		resultType = c.text(typeNode)
	}

	node := cst.NewNode(kind, name).
		WithResultType(resultType).
		WithAccess(access).
		WithUSR(usrFunction(effScope, name))
	if nameLeaf != nil {
		c.at(node, nameLeaf)
	} else {
		c.at(node, n)
	}

	body := childByKind(n, "compound_statement")
	if body != nil {
		node.AsDefinition()
	}
	c.syms.declare(joinScopes(scopeNames(effScope), name), node)

	for _, q := range qualifierNodes {
		node.AddChild(q)
	}

	// Parameters; the display name carries the signature form.
	var paramTypes []string
	if params := fdecl.ChildByFieldName("parameters"); params != nil {
		innerScopes := scopeNames(effScope)
		for i := uint(0); i < params.NamedChildCount(); i++ {
			p := params.NamedChild(i)
			if p.Kind() != "parameter_declaration" && p.Kind() != "optional_parameter_declaration" {
				continue
			}
			param, typeText := c.parameter(p, innerScopes)
			paramTypes = append(paramTypes, typeText)
			node.AddChild(param)
		}
	}
	node.WithDisplayName(name + "(" + strings.Join(paramTypes, ", ") + ")")

	if kind == cst.KindConstructor {
		if inits := childByKind(n, "field_initializer_list"); inits != nil {
			c.memberInitializers(inits, node, effScope)
		}
	}

	if body != nil {
		node.AddChild(c.stmt(body, scopeNames(effScope)))
	}
	return node
}

func qualifierTexts(c *converter, all []*tree_sitter.Node, upto *tree_sitter.Node) []string {
	var out []string
	for _, q := range all {
		if q.Id() == upto.Id() {
			break
		}
		out = append(out, c.text(q))
	}
	return out
}

func (c *converter) parameter(n *tree_sitter.Node, scopes []string) (*cst.Node, string) {
	typeText := ""
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		typeText = c.text(typeNode)
	}
	name := ""
	var nameNode *tree_sitter.Node
	if decl := n.ChildByFieldName("declarator"); decl != nil {
		typeText = decorateType(typeText, decl)
		if nameNode = declaratorName(decl); nameNode != nil {
			name = c.text(nameNode)
		}
	}
	param := cst.NewNode(cst.KindParmDecl, name).WithType(typeText)
	if nameNode != nil {
		c.at(param, nameNode)
	} else {
		c.at(param, n)
	}
	if value := n.ChildByFieldName("default_value"); value != nil {
		if init := c.expr(value, scopes); init != nil {
			param.AddChild(init)
		}
	}
	return param, typeText
}

// memberInitializers flattens a constructor initializer list into pairs of
// member-reference markers followed by their initializing expression.
func (c *converter) memberInitializers(list *tree_sitter.Node, fn *cst.Node, scope []scopeSegment) {
	scopes := scopeNames(scope)
	for i := uint(0); i < list.NamedChildCount(); i++ {
		init := list.NamedChild(i)
		if init.Kind() != "field_initializer" {
			continue
		}
		var memberNode, argsNode *tree_sitter.Node
		for j := uint(0); j < init.NamedChildCount(); j++ {
			child := init.NamedChild(j)
			switch child.Kind() {
			case "field_identifier", "identifier":
				if memberNode == nil {
					memberNode = child
				}
			case "argument_list", "initializer_list":
				argsNode = child
			}
		}
		if memberNode == nil {
			continue
		}
		member := cst.NewNode(cst.KindMemberRef, c.text(memberNode)).
			WithUSR(usrField(scope, c.text(memberNode)))
		fn.AddChild(c.at(member, memberNode))
		if argsNode != nil && argsNode.NamedChildCount() > 0 {
			if value := c.expr(argsNode.NamedChild(0), scopes); value != nil {
				fn.AddChild(value)
			}
		}
	}
}

// childByKind returns the first direct named child of the given kind.
func childByKind(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if child := n.NamedChild(i); child.Kind() == kind {
			return child
		}
	}
	return nil
}

// innerDeclarator steps into a wrapping declarator. Some wrappers in the
// grammar name the inner declarator with a field, some do not, so fall back
// to the first named child.
func innerDeclarator(n *tree_sitter.Node) *tree_sitter.Node {
	if inner := n.ChildByFieldName("declarator"); inner != nil {
		return inner
	}
	if n.NamedChildCount() > 0 {
		return n.NamedChild(0)
	}
	return nil
}

// findFunctionDeclarator descends declarator wrappers looking for a
// function_declarator.
func findFunctionDeclarator(n *tree_sitter.Node) *tree_sitter.Node {
	decl := n.ChildByFieldName("declarator")
	for decl != nil {
		switch decl.Kind() {
		case "function_declarator":
			return decl
		case "pointer_declarator", "reference_declarator", "parenthesized_declarator", "init_declarator":
			decl = innerDeclarator(decl)
		default:
			return nil
		}
	}
	return nil
}

// declaratorName descends a declarator to its defining identifier.
func declaratorName(n *tree_sitter.Node) *tree_sitter.Node {
	for n != nil {
		switch n.Kind() {
		case "identifier", "field_identifier", "type_identifier", "destructor_name", "operator_name":
			return n
		case "qualified_identifier":
			n = n.ChildByFieldName("name")
		case "init_declarator", "pointer_declarator", "reference_declarator",
			"function_declarator", "array_declarator", "parenthesized_declarator":
			n = innerDeclarator(n)
		default:
			return nil
		}
	}
	return nil
}

// splitQualifiers unwinds a qualified_identifier into its leading scope
// segments and the final name leaf.
func splitQualifiers(n *tree_sitter.Node) (qualifiers []*tree_sitter.Node, leaf *tree_sitter.Node) {
	for n != nil {
		switch n.Kind() {
		case "qualified_identifier":
			if scope := n.ChildByFieldName("scope"); scope != nil {
				qualifiers = append(qualifiers, scope)
			}
			n = n.ChildByFieldName("name")
		case "pointer_declarator", "reference_declarator", "function_declarator",
			"init_declarator", "parenthesized_declarator":
			n = innerDeclarator(n)
		default:
			return qualifiers, n
		}
	}
	return qualifiers, nil
}

// decorateType appends pointer/reference markers found in the declarator
// chain to the base type spelling.
func decorateType(typeText string, decl *tree_sitter.Node) string {
	for decl != nil {
		switch decl.Kind() {
		case "pointer_declarator":
			typeText += " *"
		case "reference_declarator":
			typeText += " &"
		case "init_declarator", "function_declarator", "array_declarator", "parenthesized_declarator":
		default:
			return typeText
		}
		decl = innerDeclarator(decl)
	}
	return typeText
}
