// Package descriptor defines the runtime description of wire types.
//
// A Type is either a product (fields in declaration order) or a sum (variants
// in tag order, each Unit, Tuple or Named). Fields reference their codec
// through a Ref: a primitive kind, the TypeID of a registered type, or an
// external bytecode.Codec.
//
//	op := descriptor.Sum("Op",
//		descriptor.UnitVariant("halt"),
//		descriptor.TupleVariant("push", descriptor.U32),
//		descriptor.NamedVariant("jump",
//			descriptor.F("offset", descriptor.S16),
//			descriptor.F("cond", descriptor.Bool),
//		),
//	)
//
// Validate rejects descriptors that cannot be encoded: sums with no variants
// or more than tag.MaxVariants, and products without fields.
package descriptor
