package layout

import (
	"github.com/wippyai/bytecode/codec/internal/types"
	"github.com/wippyai/bytecode/internal/abi"
)

// Info holds the static wire size bounds of a type.
type Info struct {
	Min int
	Max int // types.Unbounded when no static limit exists
}

// Sizer is implemented by external codecs with a fixed wire size.
type Sizer interface {
	Size() int
}

// Bounder is implemented by external codecs with known size bounds.
type Bounder interface {
	MinSize() int
	MaxSize() int
}

// Primitive returns the bounds of a fixed-width primitive.
func Primitive(size int) Info {
	return Info{Min: size, Max: size}
}

// External returns the bounds advertised by an outside codec, or
// [0, Unbounded] when it advertises none.
func External(c any) Info {
	switch v := c.(type) {
	case Bounder:
		return Info{Min: v.MinSize(), Max: v.MaxSize()}
	case Sizer:
		return Info{Min: v.Size(), Max: v.Size()}
	}
	return Info{Min: 0, Max: types.Unbounded}
}

// Fields returns the bounds of a field sequence.
func Fields(fields []types.Field) Info {
	info := Info{}
	for _, f := range fields {
		info = add(info, Info{Min: f.Type.MinSize, Max: f.Type.MaxSize})
	}
	return info
}

// Sum returns the bounds of a sum: the tag plus the fields of whichever case
// is smallest or largest.
func Sum(cases []types.Case) Info {
	var info Info
	for i := range cases {
		c := &cases[i]
		ci := add(Info{Min: len(c.Tag), Max: len(c.Tag)}, Fields(c.Fields))
		if i == 0 {
			info = ci
			continue
		}
		if ci.Min < info.Min {
			info.Min = ci.Min
		}
		if info.Max != types.Unbounded && (ci.Max == types.Unbounded || ci.Max > info.Max) {
			info.Max = ci.Max
		}
	}
	return info
}

func add(a, b Info) Info {
	out := Info{Max: types.Unbounded}
	if m, ok := abi.SafeAddInt(a.Min, b.Min); ok {
		out.Min = m
	} else {
		out.Min = a.Min
	}
	if a.Max != types.Unbounded && b.Max != types.Unbounded {
		if m, ok := abi.SafeAddInt(a.Max, b.Max); ok {
			out.Max = m
		}
	}
	return out
}
