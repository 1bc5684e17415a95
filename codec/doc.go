// Package codec compiles type descriptors into encoders and decoders.
//
// # Registry
//
// A Registry is an arena of descriptor.Type values addressed by TypeID.
// Register validates a descriptor and fails fast on anything that could not
// be encoded. Fields reference earlier registrations by TypeID, so nesting is
// expressed without pointers between descriptors and cycles cannot occur.
//
//	reg := codec.NewRegistry(codec.WithLogger(log))
//	basic := reg.MustRegister(descriptor.Sum("Basic",
//		descriptor.UnitVariant("t1"),
//		descriptor.TupleVariant("t2", descriptor.U8, descriptor.U8),
//	))
//	c, err := reg.Codec(basic)
//
// # Values
//
// Decode produces bytecode.Record for products and bytecode.Variant for
// sums; primitives decode to the Go integer of the same width. Encode accepts
// those forms and several others:
//
//	Product   bytecode.Record, []any, slices, arrays, structs,
//	          map[string]any and Map for named fields
//	Sum       bytecode.Variant, a variant name or Go integer index for
//	          variants without fields, map[string]any{name: payload},
//	          structs with one pointer field per variant
//
// Struct fields are matched by the bytecode:"name" tag, then
// case-insensitively, then by kebab-case or snake_case name. DecodeInto
// binds the same forms in the other direction. Plain renders a decoded value
// as nested Map, []any and strings for display.
//
// # Errors
//
// Decode never wraps. The first failing component returns
// errors.ErrIncompleteInstruction or errors.ErrInvalidInstruction and that
// exact value reaches the caller. Encode and bind errors carry the field
// path.
package codec
