// Package primitive implements the fixed-width wire codecs.
//
// Unsigned integers of 1, 2, 4 and 8 bytes are little-endian. Signed
// integers reuse the unsigned codec of the same width through two's
// complement. A bool is one byte: 1 or 0 on encode, any nonzero byte decodes
// as true.
//
// Decoders read only the leading bytes they need and ignore the rest. When
// fewer bytes are available they fail with errors.ErrIncompleteInstruction.
package primitive
