package primitive

import (
	"encoding/binary"

	"github.com/wippyai/bytecode/errors"
)

// Fixed wire widths in bytes.
const (
	Size8  = 1
	Size16 = 2
	Size32 = 4
	Size64 = 8
)

// AppendU8 appends v as one byte.
func AppendU8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

// AppendU16 appends v as two little-endian bytes.
func AppendU16(dst []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, v)
}

// AppendU32 appends v as four little-endian bytes.
func AppendU32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// AppendU64 appends v as eight little-endian bytes.
func AppendU64(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

func AppendS8(dst []byte, v int8) []byte   { return AppendU8(dst, uint8(v)) }
func AppendS16(dst []byte, v int16) []byte { return AppendU16(dst, uint16(v)) }
func AppendS32(dst []byte, v int32) []byte { return AppendU32(dst, uint32(v)) }
func AppendS64(dst []byte, v int64) []byte { return AppendU64(dst, uint64(v)) }

// AppendBool appends 1 for true and 0 for false.
func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// DecodeU8 reads one byte.
func DecodeU8(src []byte) (uint8, int, error) {
	if len(src) < Size8 {
		return 0, 0, errors.ErrIncompleteInstruction
	}
	return src[0], Size8, nil
}

// DecodeU16 reads two little-endian bytes.
func DecodeU16(src []byte) (uint16, int, error) {
	if len(src) < Size16 {
		return 0, 0, errors.ErrIncompleteInstruction
	}
	return binary.LittleEndian.Uint16(src), Size16, nil
}

// DecodeU32 reads four little-endian bytes.
func DecodeU32(src []byte) (uint32, int, error) {
	if len(src) < Size32 {
		return 0, 0, errors.ErrIncompleteInstruction
	}
	return binary.LittleEndian.Uint32(src), Size32, nil
}

// DecodeU64 reads eight little-endian bytes.
func DecodeU64(src []byte) (uint64, int, error) {
	if len(src) < Size64 {
		return 0, 0, errors.ErrIncompleteInstruction
	}
	return binary.LittleEndian.Uint64(src), Size64, nil
}

func DecodeS8(src []byte) (int8, int, error) {
	v, n, err := DecodeU8(src)
	return int8(v), n, err
}

func DecodeS16(src []byte) (int16, int, error) {
	v, n, err := DecodeU16(src)
	return int16(v), n, err
}

func DecodeS32(src []byte) (int32, int, error) {
	v, n, err := DecodeU32(src)
	return int32(v), n, err
}

func DecodeS64(src []byte) (int64, int, error) {
	v, n, err := DecodeU64(src)
	return int64(v), n, err
}

// DecodeBool reads one byte; any nonzero value is true.
func DecodeBool(src []byte) (bool, int, error) {
	v, n, err := DecodeU8(src)
	return v != 0, n, err
}

// EncodeU16 returns the two-byte encoding of v.
func EncodeU16(v uint16) []byte { return AppendU16(make([]byte, 0, Size16), v) }

// EncodeU32 returns the four-byte encoding of v.
func EncodeU32(v uint32) []byte { return AppendU32(make([]byte, 0, Size32), v) }

// EncodeU64 returns the eight-byte encoding of v.
func EncodeU64(v uint64) []byte { return AppendU64(make([]byte, 0, Size64), v) }
