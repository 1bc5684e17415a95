package codec

import (
	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/codec/internal/types"
	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/tag"
)

// Codec encodes and decodes one registered type. It is immutable and safe
// for concurrent use.
type Codec struct {
	ct     *types.CompiledType
	binder *binder
}

var (
	_ bytecode.Codec = (*Codec)(nil)
	_ bytecode.Named = (*Codec)(nil)
)

// VariantInfo describes one variant of a sum codec.
type VariantInfo struct {
	Name   string
	Tag    []byte
	Fields []string // names, or "" for tuple fields
	Types  []string // wire names of the field types
	Index  int
	Shape  descriptor.Shape
}

// ID returns the TypeID the codec was compiled from.
func (c *Codec) ID() descriptor.TypeID { return c.ct.ID }

// Name returns the registered type name.
func (c *Codec) Name() string { return c.ct.Name }

// WireName implements bytecode.Named.
func (c *Codec) WireName() string { return c.ct.Name }

// Kind reports whether the codec is a product or a sum.
func (c *Codec) Kind() descriptor.Kind {
	if c.ct.Kind == types.KindSum {
		return descriptor.KindSum
	}
	return descriptor.KindProduct
}

// MinSize returns the smallest encoded size of any value.
func (c *Codec) MinSize() int { return c.ct.MinSize }

// MaxSize returns the largest encoded size of any value, or -1 when an
// external field codec has no static limit.
func (c *Codec) MaxSize() int { return c.ct.MaxSize }

// Fixed reports whether every value encodes to the same size.
func (c *Codec) Fixed() bool { return c.ct.Fixed() }

// TagWidth returns the smallest and largest tag size of a sum codec, or
// 0, 0 for a product.
func (c *Codec) TagWidth() (lo, hi int) {
	if c.ct.Kind != types.KindSum {
		return 0, 0
	}
	return tag.SizeRange(len(c.ct.Cases))
}

// Fields returns the product field names, or "" for each unnamed field.
func (c *Codec) Fields() []string {
	names := make([]string, len(c.ct.Fields))
	for i, f := range c.ct.Fields {
		names[i] = f.Name
	}
	return names
}

// Variants describes the variants of a sum codec in tag order.
func (c *Codec) Variants() []VariantInfo {
	out := make([]VariantInfo, len(c.ct.Cases))
	for i := range c.ct.Cases {
		cs := &c.ct.Cases[i]
		vi := VariantInfo{
			Index:  i,
			Name:   cs.Name,
			Tag:    append([]byte(nil), cs.Tag...),
			Shape:  cs.Shape,
			Fields: make([]string, len(cs.Fields)),
			Types:  make([]string, len(cs.Fields)),
		}
		for j, f := range cs.Fields {
			vi.Fields[j] = f.Name
			vi.Types[j] = f.Type.WireName()
		}
		out[i] = vi
	}
	return out
}

// Encode returns the wire form of v.
func (c *Codec) Encode(v any) ([]byte, error) {
	return c.Append(nil, v)
}

// Append appends the wire form of v to dst. On error dst is returned
// unchanged.
func (c *Codec) Append(dst []byte, v any) ([]byte, error) {
	out, err := c.binder.appendValue(dst, c.ct, v, nil)
	if err != nil {
		return dst, err
	}
	return out, nil
}

// Decode parses one value from the front of src. It returns the value as
// bytecode.Record or bytecode.Variant and the number of bytes consumed.
// Bytes after the value are not read.
//
// Failures are errors.ErrIncompleteInstruction or
// errors.ErrInvalidInstruction, returned unmodified from whichever nested
// component failed first.
func (c *Codec) Decode(src []byte) (any, int, error) {
	return decodeValue(src, c.ct)
}
