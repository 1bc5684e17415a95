package witdesc

import (
	"testing"

	"github.com/go-quicktest/qt"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/codec"
	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/errors"
)

func named(name string, kind wit.TypeDefKind) *wit.TypeDef {
	return &wit.TypeDef{Name: &name, Kind: kind}
}

func TestRecord(t *testing.T) {
	a := New(codec.NewRegistry())
	point := named("point", &wit.Record{Fields: []wit.Field{
		{Name: "x", Type: wit.S32{}},
		{Name: "y", Type: wit.S32{}},
	}})

	c, err := a.Codec(point)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(c.Name(), "point"))
	qt.Assert(t, qt.DeepEquals(c.Fields(), []string{"x", "y"}))

	got, err := c.Encode(map[string]any{"x": 1, "y": -1})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, []byte{1, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}))

	// The same definition is registered once.
	again, err := a.Register(point)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(again, c.ID()))
	qt.Assert(t, qt.Equals(a.Registry().Len(), 1))
}

func TestVariantAndEnum(t *testing.T) {
	a := New(codec.NewRegistry())
	op := named("op", &wit.Enum{Cases: []wit.EnumCase{{Name: "add"}, {Name: "sub"}}})
	instr := named("instr", &wit.Variant{Cases: []wit.Case{
		{Name: "halt"},
		{Name: "push", Type: wit.U8{}},
		{Name: "arith", Type: op},
		{Name: "pair", Type: &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.U16{}}}}},
	}})

	c, err := a.Codec(instr)
	qt.Assert(t, qt.IsNil(err))

	vs := c.Variants()
	qt.Assert(t, qt.HasLen(vs, 4))
	qt.Assert(t, qt.Equals(vs[0].Shape, descriptor.ShapeUnit))
	qt.Assert(t, qt.DeepEquals(vs[2].Types, []string{"op"}))
	qt.Assert(t, qt.DeepEquals(vs[3].Types, []string{"tuple<u8, u16>"}))

	tests := []struct {
		value any
		want  []byte
	}{
		{"halt", []byte{0}},
		{bytecode.Of("push", 9), []byte{1, 9}},
		{map[string]any{"arith": "sub"}, []byte{2, 1}},
		{map[string]any{"pair": []any{1, 2}}, []byte{3, 1, 2, 0}},
	}
	for _, test := range tests {
		got, err := c.Encode(test.value)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.DeepEquals(got, test.want), qt.Commentf("value %v", test.value))
	}

	_, _, err = c.Decode([]byte{2, 2})
	qt.Assert(t, qt.Equals(err, error(errors.ErrInvalidInstruction)))
}

func TestOptionAndResult(t *testing.T) {
	a := New(codec.NewRegistry())
	opt := &wit.TypeDef{Kind: &wit.Option{Type: wit.U16{}}}
	res := &wit.TypeDef{Kind: &wit.Result{OK: wit.U32{}}}

	oc, err := a.Codec(opt)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(oc.Name(), "option<u16>"))

	got, err := oc.Encode("none")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, []byte{0}))
	got, err = oc.Encode(map[string]any{"some": 0x0102})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, []byte{1, 2, 1}))

	rc, err := a.Codec(res)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(rc.Name(), "result<u32, _>"))
	got, err = rc.Encode("err")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, []byte{1}))

	// Structurally equal anonymous definitions share one type.
	other := &wit.TypeDef{Kind: &wit.Option{Type: wit.U16{}}}
	id, err := a.Register(other)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(id, oc.ID()))
}

func TestNameCollision(t *testing.T) {
	a := New(codec.NewRegistry())
	first := named("error", &wit.Enum{Cases: []wit.EnumCase{{Name: "a"}}})
	second := named("error", &wit.Enum{Cases: []wit.EnumCase{{Name: "b"}, {Name: "c"}}})

	c1, err := a.Codec(first)
	qt.Assert(t, qt.IsNil(err))
	c2, err := a.Codec(second)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(c1.Name(), "error"))
	qt.Assert(t, qt.Equals(c2.Name(), "error-2"))
}

func TestAlias(t *testing.T) {
	a := New(codec.NewRegistry())
	target := named("target", &wit.Record{Fields: []wit.Field{{Name: "v", Type: wit.U8{}}}})
	alias := named("alias", target)

	id, err := a.Register(alias)
	qt.Assert(t, qt.IsNil(err))
	tid, err := a.Register(target)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(id, tid))

	ref, err := a.Ref(named("count", wit.U32{}))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ref.Primitive, descriptor.U32.Primitive))

	_, err = a.Register(named("count", wit.U32{}))
	qt.Assert(t, qt.ErrorMatches(err, `.*alias of a primitive.*`))
}

func TestUnsupported(t *testing.T) {
	tests := []struct {
		name string
		typ  wit.Type
		want string
	}{
		{"string", wit.String{}, `.*unsupported: WIT type wit.String`},
		{"float", wit.F64{}, `.*unsupported: WIT type wit.F64`},
		{"list", &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}, `.*unsupported: WIT \*wit.List`},
		{
			"nested string",
			named("msg", &wit.Record{Fields: []wit.Field{{Name: "text", Type: wit.String{}}}}),
			`\[adapt\] other at msg.text: unsupported: WIT type wit.String`,
		},
		{"empty tuple", &wit.TypeDef{Kind: &wit.Tuple{}}, `.*unsupported: empty tuple`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := New(codec.NewRegistry())
			_, err := a.Ref(test.typ)
			qt.Assert(t, qt.ErrorMatches(err, test.want))
			qt.Assert(t, qt.ErrorIs(err, &errors.Error{Phase: errors.PhaseAdapt, Kind: errors.KindOther}))
			qt.Assert(t, qt.Equals(a.Registry().Len(), 0))
		})
	}
}
