package primitive

import (
	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/internal/abi"
)

// Codec is the bytecode.Codec of one primitive kind. Decoded values have the
// Go type of the same width and signedness (uint8, int16, bool, ...).
type Codec struct {
	kind Kind
}

var (
	Bool = Codec{KindBool}
	U8   = Codec{KindU8}
	S8   = Codec{KindS8}
	U16  = Codec{KindU16}
	S16  = Codec{KindS16}
	U32  = Codec{KindU32}
	S32  = Codec{KindS32}
	U64  = Codec{KindU64}
	S64  = Codec{KindS64}
)

var (
	_ bytecode.Codec = Codec{}
	_ bytecode.Named = Codec{}
)

// For returns the codec of k.
func For(k Kind) (Codec, bool) {
	if !k.Valid() {
		return Codec{}, false
	}
	return Codec{k}, true
}

func (c Codec) Kind() Kind       { return c.kind }
func (c Codec) Size() int        { return c.kind.Size() }
func (c Codec) WireName() string { return c.kind.String() }

// Append encodes v, which may be any Go integer (or bool for KindBool) that
// fits the wire width.
func (c Codec) Append(dst []byte, v any) ([]byte, error) {
	if c.kind == KindBool {
		b, ok := abi.CoerceToBool(v)
		if !ok {
			return dst, errors.TypeMismatch(errors.PhaseEncode, nil, abi.TypeName(v), "bool")
		}
		return AppendBool(dst, b), nil
	}
	if !c.kind.Valid() {
		return dst, errors.Unsupported(errors.PhaseEncode, "invalid primitive kind")
	}

	if c.kind.Signed() {
		x, ok := abi.CoerceToSigned(v, c.kind.Bits())
		if !ok {
			return dst, c.mismatch(v)
		}
		return c.appendBits(dst, uint64(x)), nil
	}
	x, ok := abi.CoerceToUnsigned(v, c.kind.Bits())
	if !ok {
		return dst, c.mismatch(v)
	}
	return c.appendBits(dst, x), nil
}

func (c Codec) appendBits(dst []byte, x uint64) []byte {
	switch c.kind.Size() {
	case Size8:
		return AppendU8(dst, uint8(x))
	case Size16:
		return AppendU16(dst, uint16(x))
	case Size32:
		return AppendU32(dst, uint32(x))
	default:
		return AppendU64(dst, x)
	}
}

func (c Codec) mismatch(v any) error {
	if _, ok := abi.CoerceToInt64(v); ok {
		return errors.Overflow(errors.PhaseEncode, nil, v, c.kind.String())
	}
	if _, ok := abi.CoerceToUint64(v); ok {
		return errors.Overflow(errors.PhaseEncode, nil, v, c.kind.String())
	}
	return errors.TypeMismatch(errors.PhaseEncode, nil, abi.TypeName(v), c.kind.String())
}

// Decode reads one value of the codec's kind.
func (c Codec) Decode(src []byte) (any, int, error) {
	switch c.kind {
	case KindBool:
		return decodeAny(DecodeBool(src))
	case KindU8:
		return decodeAny(DecodeU8(src))
	case KindS8:
		return decodeAny(DecodeS8(src))
	case KindU16:
		return decodeAny(DecodeU16(src))
	case KindS16:
		return decodeAny(DecodeS16(src))
	case KindU32:
		return decodeAny(DecodeU32(src))
	case KindS32:
		return decodeAny(DecodeS32(src))
	case KindU64:
		return decodeAny(DecodeU64(src))
	case KindS64:
		return decodeAny(DecodeS64(src))
	}
	return nil, 0, errors.Unsupported(errors.PhaseDecode, "invalid primitive kind")
}

func decodeAny[T any](v T, n int, err error) (any, int, error) {
	if err != nil {
		return nil, 0, err
	}
	return v, n, nil
}
