package tag

import (
	"github.com/wippyai/bytecode/errors"
)

const (
	// SingleByteLimit is the first variant index that needs two tag bytes.
	SingleByteLimit = 1 << 7
	// MaxVariants is the largest variant count a sum may declare.
	MaxVariants = 1 << 15

	continuation = 0x80
)

// Size returns the number of tag bytes for variant index i.
func Size(i int) int {
	if i < SingleByteLimit {
		return 1
	}
	return 2
}

// SizeRange returns the smallest and largest tag size used by a sum of n
// variants.
func SizeRange(n int) (lo, hi int) {
	if n <= SingleByteLimit {
		return 1, 1
	}
	return 1, 2
}

// Append appends the tag of variant index i. The index must be in
// [0, MaxVariants).
func Append(dst []byte, i int) []byte {
	if i < SingleByteLimit {
		return append(dst, byte(i))
	}
	return append(dst, byte(i>>8)|continuation, byte(i))
}

// Encode returns the tag bytes of variant index i.
func Encode(i int) []byte {
	return Append(make([]byte, 0, 2), i)
}

// Decode reads the tag of a sum with n variants from the front of src and
// returns the variant index and the number of tag bytes.
//
// An empty src, or a two-byte tag missing its second byte, fails with
// errors.ErrIncompleteInstruction. An index that is not below n fails with
// errors.ErrInvalidInstruction.
func Decode(src []byte, n int) (int, int, error) {
	if len(src) == 0 {
		return 0, 0, errors.ErrIncompleteInstruction
	}
	b0 := int(src[0])

	if n <= SingleByteLimit {
		if b0 >= n {
			return 0, 0, errors.ErrInvalidInstruction
		}
		return b0, 1, nil
	}

	if b0 < SingleByteLimit {
		return b0, 1, nil
	}
	if len(src) < 2 {
		return 0, 0, errors.ErrIncompleteInstruction
	}
	i := (b0&0x7F)<<8 | int(src[1])
	if i >= n {
		return 0, 0, errors.ErrInvalidInstruction
	}
	return i, 2, nil
}

// ValidateCount checks that n is a usable variant count.
func ValidateCount(n int) error {
	if n < 1 {
		return errors.Other(errors.PhaseBuild, "sum type needs at least one variant")
	}
	if n > MaxVariants {
		return errors.Other(errors.PhaseBuild, "sum type has %d variants, at most %d are encodable", n, MaxVariants)
	}
	return nil
}

// Table returns the tag bytes of every variant of a sum with n variants.
func Table(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = Encode(i)
	}
	return out
}
