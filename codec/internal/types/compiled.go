package types

import (
	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/primitive"
)

// Unbounded marks a MaxSize that has no static limit.
const Unbounded = -1

type CompiledType struct {
	External  bytecode.Codec
	Name      string
	Fields    []Field // product
	Cases     []Case  // sum
	MinSize   int
	MaxSize   int // Unbounded if any component has no static limit
	Primitive primitive.Codec
	ID        descriptor.TypeID
	Kind      Kind
	Named     bool // product fields carry names
}

type Field struct {
	Type *CompiledType
	Name string
}

type Case struct {
	Name   string
	Tag    []byte // precomputed tag bytes
	Fields []Field
	Shape  descriptor.Shape
}

// Fixed reports whether every value of ct has the same wire size.
func (ct *CompiledType) Fixed() bool {
	return ct.MaxSize != Unbounded && ct.MinSize == ct.MaxSize
}

// CaseIndex returns the index of the named case.
func (ct *CompiledType) CaseIndex(name string) (int, bool) {
	for i := range ct.Cases {
		if ct.Cases[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// FieldIndex returns the index of the named product field.
func (ct *CompiledType) FieldIndex(name string) (int, bool) {
	return fieldIndex(ct.Fields, name)
}

// Named reports whether the case fields carry names.
func (c *Case) Named() bool {
	return c.Shape == descriptor.ShapeNamed
}

// FieldIndex returns the index of the named case field.
func (c *Case) FieldIndex(name string) (int, bool) {
	return fieldIndex(c.Fields, name)
}

func fieldIndex(fields []Field, name string) (int, bool) {
	for i := range fields {
		if fields[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// WireName returns the name used in errors and fingerprints.
func (ct *CompiledType) WireName() string {
	switch ct.Kind {
	case KindPrimitive:
		return ct.Primitive.WireName()
	case KindExternal:
		if n, ok := ct.External.(bytecode.Named); ok {
			return n.WireName()
		}
		return "external"
	}
	return ct.Name
}
