package descriptor

import (
	"strconv"
	"strings"
	"testing"

	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/primitive"
	"github.com/wippyai/bytecode/tag"
)

func manyVariants(n int) []Variant {
	vs := make([]Variant, n)
	for i := range vs {
		vs[i] = UnitVariant("v" + strconv.Itoa(i))
	}
	return vs
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		wantErr string
	}{
		{
			name: "tuple product",
			typ:  TupleProduct("Pair", U16, U32, U8),
		},
		{
			name: "named product",
			typ:  Product("Point", F("x", S32), F("y", S32)),
		},
		{
			name: "sum with every shape",
			typ: Sum("Basic",
				UnitVariant("t1"),
				TupleVariant("t2", U8, U8),
				NamedVariant("t3", F("x", U8), F("y", U8)),
			),
		},
		{
			name: "empty tuple variant",
			typ:  Sum("S", TupleVariant("empty")),
		},
		{
			name: "max variants",
			typ:  Sum("Max", manyVariants(tag.MaxVariants)...),
		},
		{
			name:    "no name",
			typ:     TupleProduct("", U8),
			wantErr: "type name is empty",
		},
		{
			name:    "unit product",
			typ:     Product("Unit"),
			wantErr: "product has no fields",
		},
		{
			name:    "empty sum",
			typ:     Sum("Never"),
			wantErr: "invalid variant count",
		},
		{
			name:    "too many variants",
			typ:     Sum("Huge", manyVariants(tag.MaxVariants+1)...),
			wantErr: "invalid variant count",
		},
		{
			name:    "duplicate variant",
			typ:     Sum("Dup", UnitVariant("a"), UnitVariant("a")),
			wantErr: `duplicate variant "a"`,
		},
		{
			name:    "unnamed variant",
			typ:     Sum("Anon", UnitVariant("")),
			wantErr: "variant 0 has no name",
		},
		{
			name:    "unit with fields",
			typ:     Sum("S", Variant{Name: "a", Shape: ShapeUnit, Fields: []Field{{Type: U8}}}),
			wantErr: "unit variant has fields",
		},
		{
			name:    "mixed product names",
			typ:     Product("Mixed", F("x", U8), Field{Type: U8}),
			wantErr: "field 1 has no name",
		},
		{
			name:    "named field in tuple",
			typ:     Product("Mixed", Field{Type: U8}, F("y", U8)),
			wantErr: `tuple field 1 is named "y"`,
		},
		{
			name:    "duplicate field",
			typ:     Sum("S", NamedVariant("a", F("x", U8), F("x", U16))),
			wantErr: `duplicate field "x"`,
		},
		{
			name:    "unset ref",
			typ:     TupleProduct("P", Ref{}),
			wantErr: "field type is not set",
		},
		{
			name:    "ambiguous ref",
			typ:     TupleProduct("P", Ref{Primitive: primitive.KindU8, ID: 3}),
			wantErr: "more than one",
		},
		{
			name:    "bad primitive",
			typ:     TupleProduct("P", Ref{Primitive: primitive.Kind(99)}),
			wantErr: "unknown primitive",
		},
		{
			name:    "product with variants",
			typ:     Type{Name: "P", Kind: KindProduct, Fields: []Field{{Type: U8}}, Variants: []Variant{UnitVariant("a")}},
			wantErr: "product declares variants",
		},
		{
			name:    "unknown kind",
			typ:     Type{Name: "K", Kind: Kind(7)},
			wantErr: "unknown type kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate succeeded, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate = %v, want %q", err, tt.wantErr)
			}
			if errors.KindOf(err) != errors.KindOther {
				t.Errorf("kind = %v, want other", errors.KindOf(err))
			}
		})
	}
}

func TestValidate_FieldPath(t *testing.T) {
	typ := Sum("Op", NamedVariant("jump", F("offset", Ref{})))
	err := typ.Validate()
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("err = %T, want *errors.Error", err)
	}
	if strings.Join(e.Path, ".") != "jump.offset" {
		t.Errorf("Path = %v, want [jump offset]", e.Path)
	}
	if e.WireType != "Op" {
		t.Errorf("WireType = %q, want Op", e.WireType)
	}
}

func TestClone(t *testing.T) {
	orig := Sum("S", TupleVariant("a", U8), NamedVariant("b", F("x", U16)))
	c := orig.Clone()

	c.Variants[0].Fields[0].Type = U64
	c.Variants[1].Name = "renamed"

	if orig.Variants[0].Fields[0].Type != U8 {
		t.Error("Clone shares field slices")
	}
	if orig.Variants[1].Name != "b" {
		t.Error("Clone shares variant slice")
	}
}

func TestRefs(t *testing.T) {
	typ := Sum("S", TupleVariant("a", U8, To(4)), UnitVariant("b"), NamedVariant("c", F("x", S16)))

	var got []string
	typ.Refs(func(r Ref) { got = append(got, r.String()) })

	want := "u8,#4,s16"
	if strings.Join(got, ",") != want {
		t.Errorf("Refs = %v, want %s", got, want)
	}
}

func TestVariantIndex(t *testing.T) {
	typ := Sum("S", UnitVariant("a"), UnitVariant("b"))
	if i, ok := typ.VariantIndex("b"); !ok || i != 1 {
		t.Errorf("VariantIndex(b) = %d, %v", i, ok)
	}
	if _, ok := typ.VariantIndex("z"); ok {
		t.Error("VariantIndex(z) should fail")
	}
}

func TestRefString(t *testing.T) {
	tests := []struct {
		ref  Ref
		want string
	}{
		{U32, "u32"},
		{To(12), "#12"},
		{External(primitive.U16), "u16"},
		{Ref{}, "none"},
	}
	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindAndShapeString(t *testing.T) {
	if KindProduct.String() != "product" || KindSum.String() != "sum" || Kind(9).String() != "unknown" {
		t.Error("Kind.String mismatch")
	}
	if ShapeUnit.String() != "unit" || ShapeTuple.String() != "tuple" || ShapeNamed.String() != "named" {
		t.Error("Shape.String mismatch")
	}
}
