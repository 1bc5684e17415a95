package types

import (
	"testing"

	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/primitive"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPrimitive, "primitive"},
		{KindProduct, "product"},
		{KindSum, "sum"},
		{KindExternal, "external"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
	if KindPrimitive.IsComposite() || !KindSum.IsComposite() {
		t.Error("IsComposite mismatch")
	}
}

func TestCompiledTypeFixed(t *testing.T) {
	tests := []struct {
		name string
		ct   CompiledType
		want bool
	}{
		{"fixed", CompiledType{MinSize: 4, MaxSize: 4}, true},
		{"range", CompiledType{MinSize: 1, MaxSize: 4}, false},
		{"unbounded", CompiledType{MinSize: 0, MaxSize: Unbounded}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ct.Fixed(); got != tt.want {
				t.Errorf("Fixed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookups(t *testing.T) {
	ct := &CompiledType{
		Kind:   KindProduct,
		Fields: []Field{{Name: "x"}, {Name: "y"}},
	}
	if i, ok := ct.FieldIndex("y"); !ok || i != 1 {
		t.Errorf("FieldIndex(y) = %d, %v", i, ok)
	}

	sum := &CompiledType{
		Kind: KindSum,
		Cases: []Case{
			{Name: "a", Shape: descriptor.ShapeUnit},
			{Name: "b", Shape: descriptor.ShapeNamed, Fields: []Field{{Name: "z"}}},
		},
	}
	if i, ok := sum.CaseIndex("b"); !ok || i != 1 {
		t.Errorf("CaseIndex(b) = %d, %v", i, ok)
	}
	if _, ok := sum.CaseIndex("c"); ok {
		t.Error("CaseIndex(c) should fail")
	}
	if !sum.Cases[1].Named() || sum.Cases[0].Named() {
		t.Error("Case.Named mismatch")
	}
	if i, ok := sum.Cases[1].FieldIndex("z"); !ok || i != 0 {
		t.Errorf("Case.FieldIndex(z) = %d, %v", i, ok)
	}
}

func TestWireName(t *testing.T) {
	if got := (&CompiledType{Kind: KindPrimitive, Primitive: primitive.U16}).WireName(); got != "u16" {
		t.Errorf("primitive WireName = %q", got)
	}
	if got := (&CompiledType{Kind: KindExternal, External: primitive.S8}).WireName(); got != "s8" {
		t.Errorf("external WireName = %q", got)
	}
	if got := (&CompiledType{Kind: KindSum, Name: "Op"}).WireName(); got != "Op" {
		t.Errorf("sum WireName = %q", got)
	}
}
