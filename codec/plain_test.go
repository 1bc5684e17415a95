package codec

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/descriptor"
)

func TestPlain(t *testing.T) {
	set := newInstructionSet(t)

	tests := []struct {
		name  string
		codec *Codec
		src   []byte
		want  any
	}{
		{"unit", set.basic, []byte{0}, "t1"},
		{"tuple", set.basic, []byte{1, 5, 10}, Map{{Key: "t2", Value: []any{uint8(5), uint8(10)}}}},
		{
			"named",
			set.basic,
			[]byte{2, 7, 5},
			Map{{Key: "t3", Value: Map{{Key: "x", Value: uint8(7)}, {Key: "y", Value: uint8(5)}}}},
		},
		{"single field", set.outer, []byte{1, 9}, Map{{Key: "o2", Value: uint8(9)}}},
		{
			"nested",
			set.outer,
			[]byte{2, 2, 7, 5, 12},
			Map{{Key: "o3", Value: []any{
				Map{{Key: "t3", Value: Map{{Key: "x", Value: uint8(7)}, {Key: "y", Value: uint8(5)}}}},
				uint8(12),
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _, err := tt.codec.Decode(tt.src)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			got, err := tt.codec.Plain(v)
			if err != nil {
				t.Fatalf("Plain() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Plain() mismatch (-want +got):\n%s", diff)
			}

			enc, err := tt.codec.Encode(got)
			if err != nil {
				t.Fatalf("Encode(Plain()) error = %v", err)
			}
			if !bytes.Equal(enc, tt.src) {
				t.Errorf("Encode(Plain()) = %v, want %v", enc, tt.src)
			}
		})
	}
}

func TestPlainProduct(t *testing.T) {
	set := newInstructionSet(t)
	reg := set.reg
	id := reg.MustRegister(descriptor.Product("Frame",
		descriptor.F("op", descriptor.External(set.basic)),
		descriptor.F("seq", descriptor.U16),
	))
	c, err := reg.Codec(id)
	if err != nil {
		t.Fatalf("Codec() error = %v", err)
	}

	src := []byte{1, 5, 10, 3, 0}
	v, _, err := c.Decode(src)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := c.Plain(v)
	if err != nil {
		t.Fatalf("Plain() error = %v", err)
	}
	want := Map{
		{Key: "op", Value: Map{{Key: "t2", Value: []any{uint8(5), uint8(10)}}}},
		{Key: "seq", Value: uint16(3)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Plain() mismatch (-want +got):\n%s", diff)
	}
	if keys := got.(Map).Keys(); len(keys) != 2 || keys[0] != "op" || keys[1] != "seq" {
		t.Errorf("Keys() = %v", keys)
	}
	if seq, ok := got.(Map).Get("seq"); !ok || seq != uint16(3) {
		t.Errorf("Get(seq) = %v, %v", seq, ok)
	}
	if _, ok := got.(Map).Get("missing"); ok {
		t.Error("Get(missing) found a value")
	}
}

func TestPlainRejectsForeignValues(t *testing.T) {
	set := newInstructionSet(t)

	bad := []any{
		nil,
		bytecode.Record{},
		bytecode.Variant{Index: 5, Name: "t9"},
		bytecode.Variant{Index: 1, Name: "t2", Fields: []any{uint8(1)}},
	}
	for _, v := range bad {
		if _, err := set.basic.Plain(v); err == nil {
			t.Errorf("Plain(%v) should fail", v)
		}
	}
}
