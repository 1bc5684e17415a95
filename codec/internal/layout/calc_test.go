package layout

import (
	"math"
	"testing"

	"github.com/wippyai/bytecode/codec/internal/types"
)

type fixedSizer struct{}

func (fixedSizer) Size() int { return 3 }

type bounded struct{}

func (bounded) MinSize() int { return 2 }
func (bounded) MaxSize() int { return 9 }

func prim(n int) *types.CompiledType {
	return &types.CompiledType{Kind: types.KindPrimitive, MinSize: n, MaxSize: n}
}

func open() *types.CompiledType {
	return &types.CompiledType{Kind: types.KindExternal, MinSize: 1, MaxSize: types.Unbounded}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []types.Field
		want   Info
	}{
		{"empty", nil, Info{0, 0}},
		{"u16 u32 u8", []types.Field{{Type: prim(2)}, {Type: prim(4)}, {Type: prim(1)}}, Info{7, 7}},
		{"unbounded", []types.Field{{Type: prim(2)}, {Type: open()}}, Info{3, types.Unbounded}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fields(tt.fields); got != tt.want {
				t.Errorf("Fields = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name  string
		cases []types.Case
		want  Info
	}{
		{
			name: "basic",
			cases: []types.Case{
				{Tag: []byte{0}},
				{Tag: []byte{1}, Fields: []types.Field{{Type: prim(1)}, {Type: prim(1)}}},
			},
			want: Info{1, 3},
		},
		{
			name: "two byte tag",
			cases: []types.Case{
				{Tag: []byte{5}, Fields: []types.Field{{Type: prim(8)}}},
				{Tag: []byte{0x80, 0x80}},
			},
			want: Info{2, 9},
		},
		{
			name: "unbounded case",
			cases: []types.Case{
				{Tag: []byte{0}, Fields: []types.Field{{Type: open()}}},
				{Tag: []byte{1}, Fields: []types.Field{{Type: prim(4)}}},
			},
			want: Info{2, types.Unbounded},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sum(tt.cases); got != tt.want {
				t.Errorf("Sum = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExternal(t *testing.T) {
	if got := External(fixedSizer{}); got != (Info{3, 3}) {
		t.Errorf("External(sizer) = %+v", got)
	}
	if got := External(bounded{}); got != (Info{2, 9}) {
		t.Errorf("External(bounder) = %+v", got)
	}
	if got := External(struct{}{}); got != (Info{0, types.Unbounded}) {
		t.Errorf("External(plain) = %+v", got)
	}
	if got := Primitive(8); got != (Info{8, 8}) {
		t.Errorf("Primitive(8) = %+v", got)
	}
}

func TestAddSaturates(t *testing.T) {
	got := add(Info{Min: math.MaxInt, Max: math.MaxInt}, Info{Min: 1, Max: 1})
	if got.Max != types.Unbounded {
		t.Errorf("overflowing max = %d, want Unbounded", got.Max)
	}
	if got.Min != math.MaxInt {
		t.Errorf("overflowing min = %d, want MaxInt", got.Min)
	}
}
