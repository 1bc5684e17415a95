// Package tag allocates and parses variant tags.
//
// Variant i of a sum is tagged with one byte when i < 128. Larger indices use
// two bytes: (i>>8)|0x80 followed by i&0xFF, where the high bit of the first
// byte marks the continuation. This caps a sum at 32768 variants.
//
// A sum with at most 128 variants only ever sees one-byte tags, so any first
// byte at or above the variant count is rejected without looking further.
package tag
