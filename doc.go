// Package bytecode is a compact binary codec for sum types (tagged unions) and
// product types (fixed-order field aggregates).
//
// Types are described at runtime with descriptors and registered in an arena.
// The engine turns each descriptor into a codec that writes a deterministic
// byte form and parses it back, reporting truncated input separately from
// input that can never be valid.
//
// # Architecture Overview
//
//	bytecode/            Root package with the Codec interface and dynamic values
//	├── primitive/       Fixed-width little-endian integer and bool codecs
//	├── tag/             Variant tag allocation (1 or 2 bytes)
//	├── descriptor/      Type descriptors and build-time validation
//	├── codec/           Registry arena, compiler, encoder and decoder
//	├── schema/          YAML, TOML, JSON and CBOR schema files
//	├── witdesc/         WIT types to descriptors
//	├── errors/          Structured error types
//	└── cmd/bytecode/    Command line tool and interactive explorer
//
// # Wire Format
//
// Primitives are little-endian and fixed width: bool and u8/s8 take one byte,
// u16/s16 two, u32/s32 four and u64/s64 eight. A product is its fields
// concatenated in declaration order. A sum is a tag followed by the fields of
// the selected variant. Variant i is tagged with the single byte i when
// i < 128 and with the two bytes (i>>8)|0x80, i&0xFF otherwise, so a sum holds
// at most 32768 variants. Nothing carries a length prefix or terminator.
//
// # Quick Start
//
//	reg := codec.NewRegistry()
//	operand, _ := reg.Register(descriptor.Product("Operand",
//	    descriptor.Field{Type: descriptor.U8},
//	    descriptor.Field{Type: descriptor.U16},
//	))
//	op, _ := reg.Register(descriptor.Sum("Op",
//	    descriptor.UnitVariant("nop"),
//	    descriptor.TupleVariant("load", descriptor.Ref{ID: operand}),
//	))
//
//	c, _ := reg.Codec(op)
//	data, _ := c.Encode(bytecode.Of("load", bytecode.Record{Fields: []any{uint8(2), uint16(300)}}))
//	// data = [1 2 44 1]
//
//	v, n, err := c.Decode(append(data, 0xFF))
//	// v is bytecode.Variant{Index: 1, Name: "load", ...}, n = 4
//
// # Errors
//
// Decoding fails with errors.ErrIncompleteInstruction when the input is too
// short and errors.ErrInvalidInstruction when a tag is out of range. The
// first failure inside a nested value is returned as is.
//
// # Thread Safety
//
// Codecs are immutable once compiled and safe for concurrent use. A Registry
// may be shared; registration and lazy compilation are synchronized.
package bytecode
