package bytecode

// Codec encodes and decodes one wire type.
//
// Append appends the encoding of v to dst and returns the extended slice.
// Decode parses one value from the front of src and returns it with the
// number of bytes consumed; bytes after that are ignored.
type Codec interface {
	Append(dst []byte, v any) ([]byte, error)
	Decode(src []byte) (any, int, error)
}

// Named is implemented by codecs that have a stable wire name. Fingerprints
// use it for codecs defined outside a registry.
type Named interface {
	WireName() string
}

// Record is the dynamic form of a product value. Fields are in declaration
// order.
type Record struct {
	Fields []any
}

// Variant is the dynamic form of a sum value.
//
// On encode, Index selects the variant; a negative Index selects by Name
// instead. Decoders always fill both.
type Variant struct {
	Name   string
	Fields []any
	Index  int
}

// Unit returns a Variant without payload selected by name.
func Unit(name string) Variant {
	return Variant{Index: -1, Name: name}
}

// Of returns a Variant selected by name with the given payload.
func Of(name string, fields ...any) Variant {
	return Variant{Index: -1, Name: name, Fields: fields}
}
