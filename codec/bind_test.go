package codec

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/errors"
)

type point struct {
	X uint8
	Y uint8
}

// basicInstr binds Basic: one pointer field per variant.
type basicInstr struct {
	T1 *struct{}
	T2 *[2]uint8
	T3 *point
}

type outerPayload struct {
	Inner basicInstr
	N     uint8
	note  string
}

type outerInstr struct {
	O1 *struct{}
	O2 *uint8
	O3 *outerPayload
}

type header struct {
	OpCode  uint8  // op_code by snake case
	Flags   uint16 // flags by case-insensitive match
	Ignored string `bytecode:"-"`
	Len     uint32 `bytecode:"body"`
}

func headerCodec(t *testing.T) *Codec {
	t.Helper()
	reg := NewRegistry()
	id := reg.MustRegister(descriptor.Product("Header",
		descriptor.F("op_code", descriptor.U8),
		descriptor.F("flags", descriptor.U16),
		descriptor.F("body", descriptor.U32),
	))
	c, err := reg.Codec(id)
	if err != nil {
		t.Fatalf("Codec() error = %v", err)
	}
	return c
}

func TestEncodeStruct(t *testing.T) {
	set := newInstructionSet(t)

	tests := []struct {
		name  string
		codec *Codec
		value any
		want  []byte
	}{
		{"unit case", set.basic, basicInstr{T1: &struct{}{}}, []byte{0}},
		{"tuple case", set.basic, basicInstr{T2: &[2]uint8{5, 10}}, []byte{1, 5, 10}},
		{"named case", set.basic, &basicInstr{T3: &point{X: 7, Y: 5}}, []byte{2, 7, 5}},
		{"single field case", set.outer, outerInstr{O2: ptr(uint8(9))}, []byte{1, 9}},
		{
			"nested struct",
			set.outer,
			outerInstr{O3: &outerPayload{Inner: basicInstr{T3: &point{X: 7, Y: 5}}, N: 12, note: "skipped"}},
			[]byte{2, 2, 7, 5, 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.codec.Encode(tt.value)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeStructErrors(t *testing.T) {
	set := newInstructionSet(t)

	if _, err := set.basic.Encode(basicInstr{}); err == nil {
		t.Error("Encode(no case set) should fail")
	}
	if _, err := set.basic.Encode(basicInstr{T1: &struct{}{}, T3: &point{}}); err == nil {
		t.Error("Encode(two cases set) should fail")
	}

	type unrelated struct{ A, B *int }
	_, err := set.basic.Encode(unrelated{})
	if err == nil {
		t.Fatal("Encode(unrelated) should fail")
	}
	if e, ok := err.(*errors.Error); !ok || e.Phase != errors.PhaseBind {
		t.Errorf("Encode(unrelated) error = %v, want bind phase", err)
	}
}

func TestNamedProductStruct(t *testing.T) {
	c := headerCodec(t)

	h := header{OpCode: 3, Flags: 0x0102, Ignored: "x", Len: 9}
	got, err := c.Encode(h)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := []byte{3, 0x02, 0x01, 9, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = %v, want %v", got, want)
	}

	var back header
	n, err := c.DecodeInto(want, &back)
	if err != nil {
		t.Fatalf("DecodeInto() error = %v", err)
	}
	if n != len(want) {
		t.Errorf("DecodeInto() consumed %d, want %d", n, len(want))
	}
	h.Ignored = ""
	if back != h {
		t.Errorf("DecodeInto() = %+v, want %+v", back, h)
	}

	var m map[string]any
	if _, err := c.DecodeInto(want, &m); err == nil {
		t.Error("DecodeInto(map) should fail")
	}
}

func TestTupleProductStruct(t *testing.T) {
	reg := NewRegistry()
	id := reg.MustRegister(descriptor.TupleProduct("Triple", descriptor.U16, descriptor.U32, descriptor.U8))
	c, err := reg.Codec(id)
	if err != nil {
		t.Fatalf("Codec() error = %v", err)
	}

	type triple struct {
		A      uint16
		hidden int
		B      uint32
		C      uint8
	}
	src := []byte{1, 0, 2, 0, 0, 0, 3}

	got, err := c.Encode(triple{A: 1, B: 2, C: 3})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Errorf("Encode() = %v, want %v", got, src)
	}

	var tr triple
	if _, err := c.DecodeInto(src, &tr); err != nil {
		t.Fatalf("DecodeInto() error = %v", err)
	}
	if tr.A != 1 || tr.B != 2 || tr.C != 3 {
		t.Errorf("DecodeInto() = %+v", tr)
	}

	var arr [3]uint64
	if _, err := c.DecodeInto(src, &arr); err != nil {
		t.Fatalf("DecodeInto(array) error = %v", err)
	}
	if arr != [3]uint64{1, 2, 3} {
		t.Errorf("DecodeInto(array) = %v", arr)
	}

	var short [2]uint64
	if _, err := c.DecodeInto(src, &short); err == nil {
		t.Error("DecodeInto(short array) should fail")
	}

	var vals []any
	if _, err := c.DecodeInto(src, &vals); err != nil {
		t.Fatalf("DecodeInto(slice) error = %v", err)
	}
	if diff := cmp.Diff([]any{uint16(1), uint32(2), uint8(3)}, vals); diff != "" {
		t.Errorf("DecodeInto(slice) mismatch (-want +got):\n%s", diff)
	}

	var narrow [3]uint8
	_, err = c.DecodeInto([]byte{1, 1, 2, 0, 0, 0, 3}, &narrow)
	if err == nil {
		t.Fatal("DecodeInto(narrow) should fail")
	}
	if e, ok := err.(*errors.Error); !ok || e.Phase != errors.PhaseBind {
		t.Errorf("DecodeInto(narrow) error = %v, want bind phase", err)
	}
}

func TestDecodeIntoSum(t *testing.T) {
	set := newInstructionSet(t)

	var in basicInstr
	if _, err := set.basic.DecodeInto([]byte{1, 5, 10}, &in); err != nil {
		t.Fatalf("DecodeInto() error = %v", err)
	}
	if in.T1 != nil || in.T3 != nil || in.T2 == nil || *in.T2 != [2]uint8{5, 10} {
		t.Errorf("DecodeInto() = %+v", in)
	}

	// Reuse clears the previously selected case.
	if _, err := set.basic.DecodeInto([]byte{2, 7, 5}, &in); err != nil {
		t.Fatalf("DecodeInto() error = %v", err)
	}
	if in.T2 != nil || in.T3 == nil || *in.T3 != (point{X: 7, Y: 5}) {
		t.Errorf("DecodeInto() = %+v", in)
	}

	var out outerInstr
	n, err := set.outer.DecodeInto([]byte{2, 2, 7, 5, 12, 0xFF}, &out)
	if err != nil {
		t.Fatalf("DecodeInto() error = %v", err)
	}
	if n != 5 {
		t.Errorf("DecodeInto() consumed %d, want 5", n)
	}
	if out.O3 == nil || out.O3.N != 12 || out.O3.Inner.T3 == nil || out.O3.Inner.T3.X != 7 {
		t.Errorf("DecodeInto() = %+v", out)
	}

	if _, err := set.outer.DecodeInto([]byte{1, 42}, &out); err != nil {
		t.Fatalf("DecodeInto() error = %v", err)
	}
	if out.O3 != nil || out.O2 == nil || *out.O2 != 42 {
		t.Errorf("DecodeInto() = %+v", out)
	}
}

func TestDecodeIntoUnitTargets(t *testing.T) {
	set := newInstructionSet(t)

	var idx int
	if _, err := set.basic.DecodeInto([]byte{0}, &idx); err != nil || idx != 0 {
		t.Errorf("DecodeInto(int) = %d, %v", idx, err)
	}
	var name string
	if _, err := set.basic.DecodeInto([]byte{0}, &name); err != nil || name != "t1" {
		t.Errorf("DecodeInto(string) = %q, %v", name, err)
	}
	if _, err := set.basic.DecodeInto([]byte{1, 5, 10}, &name); err == nil {
		t.Error("DecodeInto(string) for a variant with fields should fail")
	}
}

func TestDecodeIntoDynamic(t *testing.T) {
	set := newInstructionSet(t)
	want := bytecode.Variant{Index: 1, Name: "t2", Fields: []any{uint8(5), uint8(10)}}

	var v any
	if _, err := set.basic.DecodeInto([]byte{1, 5, 10}, &v); err != nil {
		t.Fatalf("DecodeInto(any) error = %v", err)
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("DecodeInto(any) mismatch (-want +got):\n%s", diff)
	}

	var vr bytecode.Variant
	if _, err := set.basic.DecodeInto([]byte{1, 5, 10}, &vr); err != nil {
		t.Fatalf("DecodeInto(Variant) error = %v", err)
	}
	if diff := cmp.Diff(want, vr); diff != "" {
		t.Errorf("DecodeInto(Variant) mismatch (-want +got):\n%s", diff)
	}

	var p *basicInstr
	if _, err := set.basic.DecodeInto([]byte{0}, &p); err != nil {
		t.Fatalf("DecodeInto(**T) error = %v", err)
	}
	if p == nil || p.T1 == nil {
		t.Errorf("DecodeInto(**T) = %+v", p)
	}
}

func TestDecodeIntoErrors(t *testing.T) {
	set := newInstructionSet(t)

	var in basicInstr
	if _, err := set.basic.DecodeInto([]byte{1, 5}, &in); err != errors.ErrIncompleteInstruction {
		t.Errorf("DecodeInto(truncated) error = %v, want incomplete", err)
	}
	if _, err := set.basic.DecodeInto([]byte{7}, &in); err != errors.ErrInvalidInstruction {
		t.Errorf("DecodeInto(bad tag) error = %v, want invalid", err)
	}

	var out outerInstr
	if _, err := set.outer.DecodeInto([]byte{2, 2, 7}, &out); err != errors.ErrIncompleteInstruction {
		t.Errorf("DecodeInto(nested truncated) error = %v, want incomplete", err)
	}

	if _, err := set.basic.DecodeInto([]byte{0}, in); err == nil {
		t.Error("DecodeInto(non-pointer) should fail")
	}
	if _, err := set.basic.DecodeInto([]byte{0}, nil); err == nil {
		t.Error("DecodeInto(nil) should fail")
	}

	var f float64
	_, err := set.basic.DecodeInto([]byte{0}, &f)
	if e, ok := err.(*errors.Error); !ok || e.Phase != errors.PhaseBind {
		t.Errorf("DecodeInto(float) error = %v, want bind phase", err)
	}
}

func TestDecodeIntoLeavesTargetOnError(t *testing.T) {
	c := headerCodec(t)

	h := header{OpCode: 9, Flags: 9, Len: 9}
	if _, err := c.DecodeInto([]byte{1, 2, 0, 3}, &h); err != errors.ErrIncompleteInstruction {
		t.Fatalf("DecodeInto(truncated) error = %v, want incomplete", err)
	}
	if want := (header{OpCode: 9, Flags: 9, Len: 9}); h != want {
		t.Errorf("DecodeInto(truncated) left %+v, want %+v", h, want)
	}

	s := []uint32{9, 9, 9}
	alias := s
	if _, err := c.DecodeInto([]byte{1, 2, 0, 3}, &s); err != errors.ErrIncompleteInstruction {
		t.Fatalf("DecodeInto(slice) error = %v, want incomplete", err)
	}
	if alias[0] != 9 || alias[1] != 9 || &s[0] != &alias[0] {
		t.Errorf("DecodeInto(slice) left %v", s)
	}

	set := newInstructionSet(t)

	p := &point{X: 1, Y: 1}
	in := basicInstr{T3: p}
	if _, err := set.basic.DecodeInto([]byte{1, 5}, &in); err != errors.ErrIncompleteInstruction {
		t.Fatalf("DecodeInto(sum) error = %v, want incomplete", err)
	}
	if in.T3 != p || *p != (point{X: 1, Y: 1}) || in.T2 != nil {
		t.Errorf("DecodeInto(sum) left %+v", in)
	}

	prev := &outerPayload{N: 4, Inner: basicInstr{T1: &struct{}{}}}
	out := outerInstr{O3: prev}
	if _, err := set.outer.DecodeInto([]byte{2, 2, 7}, &out); err != errors.ErrIncompleteInstruction {
		t.Fatalf("DecodeInto(nested) error = %v, want incomplete", err)
	}
	if out.O3 != prev || prev.N != 4 || prev.Inner.T1 == nil || prev.Inner.T3 != nil {
		t.Errorf("DecodeInto(nested) left %+v", out)
	}

	hp := &header{OpCode: 9, Flags: 9, Len: 9}
	orig := hp
	if _, err := c.DecodeInto([]byte{1, 2, 0, 3}, &hp); err != errors.ErrIncompleteInstruction {
		t.Fatalf("DecodeInto(**header) error = %v, want incomplete", err)
	}
	if hp != orig || hp.OpCode != 9 || hp.Flags != 9 {
		t.Errorf("DecodeInto(**header) left %+v", *hp)
	}
}

func TestToKebabCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"OpCode", "op-code"},
		{"X", "x"},
		{"lower", "lower"},
		{"TargetReg", "target-reg"},
	}
	for _, tt := range tests {
		if got := toKebabCase(tt.in); got != tt.want {
			t.Errorf("toKebabCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func ptr[T any](v T) *T { return &v }
