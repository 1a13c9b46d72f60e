package tsfront

import (
	"strings"
	"testing"

	"github.com/cppbonsai/cppbonsai/internal/cst"
)

func parse(t *testing.T, source string) *Unit {
	t.Helper()
	unit, err := Parse("test.cpp", []byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return unit
}

// findAll walks the cursor tree collecting every cursor of the given kind.
func findAll(c cst.Cursor, kind cst.Kind) []cst.Cursor {
	var out []cst.Cursor
	if c.Kind() == kind {
		out = append(out, c)
	}
	for _, child := range c.Children() {
		out = append(out, findAll(child, kind)...)
	}
	return out
}

func findOne(t *testing.T, c cst.Cursor, kind cst.Kind, spelling string) cst.Cursor {
	t.Helper()
	for _, found := range findAll(c, kind) {
		if found.Spelling() == spelling {
			return found
		}
	}
	t.Fatalf("no %s cursor spelled %q", kind, spelling)
	return nil
}

func TestParseEmptySource(t *testing.T) {
	unit := parse(t, "")
	if unit.Root.Kind() != cst.KindTranslationUnit {
		t.Errorf("root kind = %v, want TranslationUnit", unit.Root.Kind())
	}
	if unit.Root.Spelling() != "test.cpp" {
		t.Errorf("root spelling = %q, want %q", unit.Root.Spelling(), "test.cpp")
	}
	if len(unit.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", unit.Warnings)
	}
}

func TestParseFunction(t *testing.T) {
	unit := parse(t, `int add(int a, int b) {
  return a + b;
}
`)
	fn := findOne(t, unit.Root, cst.KindFunctionDecl, "add")
	if !fn.IsDefinition() {
		t.Error("function with a body is not a definition")
	}
	if got := fn.ResultTypeSpelling(); got != "int" {
		t.Errorf("result type = %q, want %q", got, "int")
	}
	if got := fn.DisplayName(); got != "add(int, int)" {
		t.Errorf("display name = %q, want %q", got, "add(int, int)")
	}

	params := findAll(fn, cst.KindParmDecl)
	if len(params) != 2 {
		t.Fatalf("parameter count = %d, want 2", len(params))
	}
	if params[0].Spelling() != "a" || params[1].Spelling() != "b" {
		t.Errorf("parameters = %q, %q, want a, b", params[0].Spelling(), params[1].Spelling())
	}

	loc, ok := fn.Location()
	if !ok {
		t.Fatal("function has no location")
	}
	if loc.File != "test.cpp" || loc.Line != 1 {
		t.Errorf("location = %+v, want test.cpp line 1", loc)
	}

	ops := findAll(fn, cst.KindBinaryOperator)
	if len(ops) != 1 {
		t.Fatalf("binary operator count = %d, want 1", len(ops))
	}
	if got := ops[0].Opcode(); got != "+" {
		t.Errorf("opcode = %q, want %q", got, "+")
	}
}

func TestParseNamespaceAndClass(t *testing.T) {
	unit := parse(t, `namespace pkg {
class Counter {
  int count;
public:
  void tick();
};
}
`)
	ns := findOne(t, unit.Root, cst.KindNamespace, "pkg")
	if got := ns.USR(); got != "c:@N@pkg" {
		t.Errorf("namespace USR = %q, want %q", got, "c:@N@pkg")
	}

	class := findOne(t, unit.Root, cst.KindClassDecl, "Counter")
	if got := class.USR(); got != "c:@N@pkg@S@Counter" {
		t.Errorf("class USR = %q, want %q", got, "c:@N@pkg@S@Counter")
	}
	if !class.IsDefinition() {
		t.Error("class with a body is not a definition")
	}

	field := findOne(t, class, cst.KindFieldDecl, "count")
	if got := field.Access(); got != cst.AccessPrivate {
		t.Errorf("field access = %v, want private before the specifier", got)
	}
	if got := field.TypeSpelling(); got != "int" {
		t.Errorf("field type = %q, want %q", got, "int")
	}

	method := findOne(t, class, cst.KindMethod, "tick")
	if got := method.Access(); got != cst.AccessPublic {
		t.Errorf("method access = %v, want public after the specifier", got)
	}
	if method.IsDefinition() {
		t.Error("method prototype reported as a definition")
	}
}

func TestParseStructDefaultsPublic(t *testing.T) {
	unit := parse(t, "struct Point { int x; };\n")
	st := findOne(t, unit.Root, cst.KindStructDecl, "Point")
	field := findOne(t, st, cst.KindFieldDecl, "x")
	if got := field.Access(); got != cst.AccessPublic {
		t.Errorf("struct field access = %v, want public", got)
	}
}

func TestParseBaseClauses(t *testing.T) {
	unit := parse(t, `class Base {};
class Derived : public Base {};
`)
	derived := findOne(t, unit.Root, cst.KindClassDecl, "Derived")
	bases := findAll(derived, cst.KindBaseSpecifier)
	if len(bases) != 1 {
		t.Fatalf("base specifier count = %d, want 1", len(bases))
	}
	if got := bases[0].TypeSpelling(); got != "Base" {
		t.Errorf("base type = %q, want %q", got, "Base")
	}
}

func TestParseConstructorAndInitializers(t *testing.T) {
	unit := parse(t, `class Counter {
  int count;
public:
  Counter() : count(0) {}
};
`)
	ctors := findAll(unit.Root, cst.KindConstructor)
	if len(ctors) != 1 {
		t.Fatalf("constructor count = %d, want 1", len(ctors))
	}
	ctor := ctors[0]
	if !ctor.IsDefinition() {
		t.Error("constructor with a body is not a definition")
	}
	inits := findAll(ctor, cst.KindMemberRef)
	if len(inits) != 1 || inits[0].Spelling() != "count" {
		t.Errorf("member initializers = %v, want one for count", inits)
	}
}

func TestParseOutOfClassDefinition(t *testing.T) {
	unit := parse(t, `namespace pkg {
class Counter {
public:
  void tick();
};
}
void pkg::Counter::tick() {}
`)
	var def cst.Cursor
	for _, m := range findAll(unit.Root, cst.KindMethod) {
		if m.IsDefinition() {
			def = m
		}
	}
	if def == nil {
		t.Fatal("no out-of-class method definition found")
	}

	nsRefs := findAll(def, cst.KindNamespaceRef)
	typeRefs := findAll(def, cst.KindTypeRef)
	if len(nsRefs) != 1 || nsRefs[0].Spelling() != "pkg" {
		t.Errorf("namespace refs = %v, want [pkg]", nsRefs)
	}
	if len(typeRefs) != 1 || typeRefs[0].Spelling() != "Counter" {
		t.Errorf("type refs = %v, want [Counter]", typeRefs)
	}
}

func TestParseCallArguments(t *testing.T) {
	unit := parse(t, `int max(int a, int b);
int f(int x) {
  return max(x, 2);
}
`)
	calls := findAll(unit.Root, cst.KindCallExpr)
	if len(calls) != 1 {
		t.Fatalf("call count = %d, want 1", len(calls))
	}
	call := calls[0]
	if got := call.Spelling(); got != "max" {
		t.Errorf("callee = %q, want %q", got, "max")
	}
	args := call.Arguments()
	if len(args) != 2 {
		t.Fatalf("argument count = %d, want 2", len(args))
	}
	// Arguments share identity with the call's children.
	children := call.Children()
	matched := 0
	for _, arg := range args {
		for _, child := range children {
			if arg.ID() == child.ID() {
				matched++
			}
		}
	}
	if matched != 2 {
		t.Errorf("arguments matched to children = %d, want 2", matched)
	}
}

func TestParseReferenceResolution(t *testing.T) {
	unit := parse(t, `int limit = 10;
int f() {
  return limit;
}
`)
	refs := findAll(unit.Root, cst.KindDeclRefExpr)
	var ref cst.Cursor
	for _, r := range refs {
		if r.Spelling() == "limit" {
			ref = r
		}
	}
	if ref == nil {
		t.Fatal("no reference to limit")
	}
	def := ref.Definition()
	if def == nil {
		t.Fatal("reference did not resolve to a definition")
	}
	if def.Kind() != cst.KindVarDecl || def.Spelling() != "limit" {
		t.Errorf("definition = %v %q, want the limit variable", def.Kind(), def.Spelling())
	}
}

func TestParseBrokenSourceWarns(t *testing.T) {
	unit := parse(t, "int f( {\n")
	if unit.Root == nil {
		t.Fatal("broken source yielded no tree")
	}
	if len(unit.Warnings) == 0 {
		t.Error("broken source produced no warnings")
	}
	for _, w := range unit.Warnings {
		if !strings.Contains(w, "test.cpp") {
			t.Errorf("warning %q does not name the file", w)
		}
	}
}

func TestParseLiterals(t *testing.T) {
	unit := parse(t, `void f() {
  int i = 42;
  double d = 1.5;
  bool b = true;
  const char *s = "hi";
  char c = 'x';
}
`)
	cases := []struct {
		kind     cst.Kind
		spelling string
	}{
		{cst.KindIntegerLiteral, "42"},
		{cst.KindFloatingLiteral, "1.5"},
		{cst.KindBoolLiteral, "true"},
		{cst.KindStringLiteral, `"hi"`},
		{cst.KindCharacterLiteral, "'x'"},
	}
	for _, c := range cases {
		found := findAll(unit.Root, c.kind)
		if len(found) != 1 {
			t.Errorf("kind %v count = %d, want 1", c.kind, len(found))
			continue
		}
		if got := found[0].Spelling(); got != c.spelling {
			t.Errorf("kind %v spelling = %q, want %q", c.kind, got, c.spelling)
		}
	}
}
