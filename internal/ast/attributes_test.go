package ast

import "testing"

func TestAttributeMapWriteOnce(t *testing.T) {
	m := NewAttributeMap()
	if !m.Set(AttrName, "first") {
		t.Fatal("first Set should succeed")
	}
	if m.Set(AttrName, "second") {
		t.Fatal("second Set for same key should be ignored")
	}
	if v, _ := m.Get(AttrName); v != "first" {
		t.Errorf("value = %q, want first", v)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestAttributeMapGetOr(t *testing.T) {
	m := NewAttributeMap()
	if got := m.GetOr(AttrValue, "fallback"); got != "fallback" {
		t.Errorf("GetOr on unset key = %q", got)
	}
	m.Set(AttrValue, "42")
	if got := m.GetOr(AttrValue, "fallback"); got != "42" {
		t.Errorf("GetOr on set key = %q", got)
	}
	if m.Has(AttrName) {
		t.Error("Has should be false for unset key")
	}
}

func TestAttributeMapSnapshotIsCopy(t *testing.T) {
	m := NewAttributeMap()
	m.Set(AttrName, "x")
	snap := m.Snapshot()
	snap[AttrName] = "mutated"
	if v, _ := m.Get(AttrName); v != "x" {
		t.Error("mutating the snapshot must not affect the map")
	}
}

func TestAllAttrKeysCoversEveryKey(t *testing.T) {
	keys := AllAttrKeys()
	seen := make(map[AttrKey]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key %s", k)
		}
		seen[k] = true
	}
	for _, k := range []AttrKey{
		AttrName, AttrUSR, AttrDisplayName, AttrDataType, AttrReturnType,
		AttrAccessSpecifier, AttrBaseClasses, AttrBelongsTo, AttrAttributes,
		AttrValue, AttrParameterIndex, AttrDefinition, AttrDiagnostic,
	} {
		if !seen[k] {
			t.Errorf("AllAttrKeys missing %s", k)
		}
	}
}

func TestKindRoundTrip(t *testing.T) {
	for k := Unknown; k <= Helper; k++ {
		back, ok := KindFromName(k.String())
		if !ok {
			t.Errorf("KindFromName(%s) not found", k)
			continue
		}
		if back != k {
			t.Errorf("round trip %s -> %s", k, back)
		}
	}
	if _, ok := KindFromName("NOT_A_KIND"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestKindPredicates(t *testing.T) {
	cases := []struct {
		kind       NodeKind
		file       bool
		decl       bool
		def        bool
		fn         bool
		stmt       bool
		expr       bool
		ref        bool
		helper     bool
	}{
		{kind: File, file: true},
		{kind: Namespace},
		{kind: ClassDecl, decl: true},
		{kind: ClassDef, def: true},
		{kind: FunctionDecl, decl: true, fn: true},
		{kind: FunctionDef, def: true, fn: true},
		{kind: MethodDef, def: true, fn: true},
		{kind: ConstructorDecl, decl: true, fn: true},
		{kind: ParameterDecl, decl: true},
		{kind: CompoundStmt, stmt: true},
		{kind: ReturnStmt, stmt: true},
		{kind: IntegerLiteral, expr: true},
		{kind: FunctionCall, expr: true},
		{kind: DeclReference, expr: true, ref: true},
		{kind: MemberReference, expr: true, ref: true},
		{kind: ThisReference, expr: true, ref: true},
		{kind: Helper, helper: true},
	}
	for _, tc := range cases {
		if got := tc.kind.IsFile(); got != tc.file {
			t.Errorf("%s.IsFile() = %v", tc.kind, got)
		}
		if got := tc.kind.IsDeclaration(); got != tc.decl {
			t.Errorf("%s.IsDeclaration() = %v", tc.kind, got)
		}
		if got := tc.kind.IsDefinition(); got != tc.def {
			t.Errorf("%s.IsDefinition() = %v", tc.kind, got)
		}
		if got := tc.kind.IsFunction(); got != tc.fn {
			t.Errorf("%s.IsFunction() = %v", tc.kind, got)
		}
		if got := tc.kind.IsStatement(); got != tc.stmt {
			t.Errorf("%s.IsStatement() = %v", tc.kind, got)
		}
		if got := tc.kind.IsExpression(); got != tc.expr {
			t.Errorf("%s.IsExpression() = %v", tc.kind, got)
		}
		if got := tc.kind.IsReference(); got != tc.ref {
			t.Errorf("%s.IsReference() = %v", tc.kind, got)
		}
		if got := tc.kind.IsHelper(); got != tc.helper {
			t.Errorf("%s.IsHelper() = %v", tc.kind, got)
		}
	}
}
