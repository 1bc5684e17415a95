// Package types defines the compiled type structures for fast encoding.
//
// CompiledType holds what the encoder and decoder need at run time: resolved
// field codecs, precomputed tag bytes per sum case and static size bounds.
// Descriptors are compiled once, so the hot paths never resolve TypeIDs or
// recompute tags.
//
// # Key Types
//
//   - CompiledType: Resolved type with size bounds
//   - Kind: Type discriminator (primitive, product, sum, external)
//
// This package is internal to the codec.
package types
