package descriptor

import (
	"strconv"

	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/primitive"
)

// TypeID is a stable handle of a type registered in a registry arena.
// Handles start at 1; NoType never names a type.
type TypeID uint32

// NoType is the zero TypeID.
const NoType TypeID = 0

// Ref points at the codec of one field: a primitive, a registered type, or a
// codec defined outside the registry. Exactly one must be set.
type Ref struct {
	External  bytecode.Codec
	ID        TypeID
	Primitive primitive.Kind // Non-zero if primitive
}

var (
	Bool = Ref{Primitive: primitive.KindBool}
	U8   = Ref{Primitive: primitive.KindU8}
	S8   = Ref{Primitive: primitive.KindS8}
	U16  = Ref{Primitive: primitive.KindU16}
	S16  = Ref{Primitive: primitive.KindS16}
	U32  = Ref{Primitive: primitive.KindU32}
	S32  = Ref{Primitive: primitive.KindS32}
	U64  = Ref{Primitive: primitive.KindU64}
	S64  = Ref{Primitive: primitive.KindS64}
)

// To returns a reference to a registered type.
func To(id TypeID) Ref {
	return Ref{ID: id}
}

// External returns a reference to a codec defined outside the registry.
func External(c bytecode.Codec) Ref {
	return Ref{External: c}
}

// IsPrimitive returns true if this is a primitive reference
func (r Ref) IsPrimitive() bool {
	return r.Primitive != primitive.Invalid
}

// IsExternal returns true if this references an outside codec
func (r Ref) IsExternal() bool {
	return r.External != nil
}

// set counts how many of the three alternatives are populated.
func (r Ref) set() int {
	n := 0
	if r.IsPrimitive() {
		n++
	}
	if r.IsExternal() {
		n++
	}
	if r.ID != NoType {
		n++
	}
	return n
}

func (r Ref) String() string {
	switch {
	case r.IsPrimitive():
		return r.Primitive.String()
	case r.IsExternal():
		if n, ok := r.External.(bytecode.Named); ok {
			return n.WireName()
		}
		return "external"
	case r.ID != NoType:
		return "#" + strconv.FormatUint(uint64(r.ID), 10)
	}
	return "none"
}

// Kind distinguishes products from sums.
type Kind uint8

const (
	KindProduct Kind = iota
	KindSum
)

func (k Kind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindSum:
		return "sum"
	}
	return "unknown"
}

// Shape is the payload form of a sum variant.
type Shape uint8

const (
	ShapeUnit  Shape = iota // tag only
	ShapeTuple              // unnamed fields
	ShapeNamed              // named fields
)

func (s Shape) String() string {
	switch s {
	case ShapeUnit:
		return "unit"
	case ShapeTuple:
		return "tuple"
	case ShapeNamed:
		return "named"
	}
	return "unknown"
}

// Field is one positional component of a product or variant. Name is empty
// for tuple-shaped fields.
type Field struct {
	Name string
	Type Ref
}

// Variant is one alternative of a sum. Its position in Type.Variants is its
// tag index.
type Variant struct {
	Name   string
	Fields []Field
	Shape  Shape
}

// Type describes one product or sum.
type Type struct {
	Name     string
	Fields   []Field   // product only
	Variants []Variant // sum only
	Kind     Kind
}

// Product describes a product with the given fields. Fields are either all
// named or all unnamed.
func Product(name string, fields ...Field) Type {
	return Type{Name: name, Kind: KindProduct, Fields: fields}
}

// TupleProduct describes a product with unnamed fields.
func TupleProduct(name string, types ...Ref) Type {
	return Product(name, unnamed(types)...)
}

// Sum describes a sum whose variants are tagged in the given order.
func Sum(name string, variants ...Variant) Type {
	return Type{Name: name, Kind: KindSum, Variants: variants}
}

// UnitVariant describes a variant without payload.
func UnitVariant(name string) Variant {
	return Variant{Name: name, Shape: ShapeUnit}
}

// TupleVariant describes a variant with unnamed fields.
func TupleVariant(name string, types ...Ref) Variant {
	return Variant{Name: name, Shape: ShapeTuple, Fields: unnamed(types)}
}

// NamedVariant describes a variant with named fields.
func NamedVariant(name string, fields ...Field) Variant {
	return Variant{Name: name, Shape: ShapeNamed, Fields: fields}
}

// F is shorthand for a named field.
func F(name string, t Ref) Field {
	return Field{Name: name, Type: t}
}

func unnamed(types []Ref) []Field {
	fields := make([]Field, len(types))
	for i, t := range types {
		fields[i].Type = t
	}
	return fields
}

// NamedFields reports whether the product's fields carry names.
func (t *Type) NamedFields() bool {
	return len(t.Fields) > 0 && t.Fields[0].Name != ""
}

// VariantIndex returns the tag index of the named variant.
func (t *Type) VariantIndex(name string) (int, bool) {
	for i := range t.Variants {
		if t.Variants[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// Refs calls fn for every field reference of t in declaration order.
func (t *Type) Refs(fn func(Ref)) {
	for _, f := range t.Fields {
		fn(f.Type)
	}
	for _, v := range t.Variants {
		for _, f := range v.Fields {
			fn(f.Type)
		}
	}
}

// Clone returns a deep copy of t. Registries store clones so that callers
// cannot mutate a registered type.
func (t Type) Clone() Type {
	out := Type{Name: t.Name, Kind: t.Kind}
	if t.Fields != nil {
		out.Fields = append([]Field(nil), t.Fields...)
	}
	if t.Variants != nil {
		out.Variants = make([]Variant, len(t.Variants))
		for i, v := range t.Variants {
			out.Variants[i] = Variant{Name: v.Name, Shape: v.Shape}
			if v.Fields != nil {
				out.Variants[i].Fields = append([]Field(nil), v.Fields...)
			}
		}
	}
	return out
}
