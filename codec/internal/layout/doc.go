// Package layout computes static wire size bounds for compiled types.
//
// # Size Rules
//
//   - Primitives: fixed width (bool/u8/s8=1, u16/s16=2, u32/s32=4, u64/s64=8)
//   - Products: sum of the field bounds
//   - Sums: tag size plus fields, minimized and maximized over the cases
//   - External codecs: whatever they advertise through Sizer or Bounder,
//     otherwise unbounded
//
// This package is internal to the codec.
package layout
