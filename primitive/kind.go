package primitive

// Kind identifies a primitive wire type. The zero value is Invalid.
type Kind uint8

const (
	Invalid Kind = iota
	KindBool
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
)

var kindNames = [...]string{
	Invalid:  "invalid",
	KindBool: "bool",
	KindU8:   "u8",
	KindS8:   "s8",
	KindU16:  "u16",
	KindS16:  "s16",
	KindU32:  "u32",
	KindS32:  "s32",
	KindU64:  "u64",
	KindS64:  "s64",
}

var kindSizes = [...]int{
	KindBool: Size8,
	KindU8:   Size8,
	KindS8:   Size8,
	KindU16:  Size16,
	KindS16:  Size16,
	KindU32:  Size32,
	KindS32:  Size32,
	KindU64:  Size64,
	KindS64:  Size64,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k names a primitive.
func (k Kind) Valid() bool {
	return k > Invalid && int(k) < len(kindNames)
}

// Size returns the wire width in bytes, or 0 for an invalid kind.
func (k Kind) Size() int {
	if int(k) < len(kindSizes) {
		return kindSizes[k]
	}
	return 0
}

// Signed reports whether k is a two's-complement integer.
func (k Kind) Signed() bool {
	switch k {
	case KindS8, KindS16, KindS32, KindS64:
		return true
	}
	return false
}

// Bits returns the integer width in bits.
func (k Kind) Bits() int {
	return k.Size() * 8
}

// ParseKind maps a wire name such as "u16" to its Kind. Go spellings
// ("uint16", "int8") and Rust-style "i8".."i64" are accepted as aliases.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "bool":
		return KindBool, true
	case "u8", "uint8", "byte":
		return KindU8, true
	case "s8", "i8", "int8":
		return KindS8, true
	case "u16", "uint16":
		return KindU16, true
	case "s16", "i16", "int16":
		return KindS16, true
	case "u32", "uint32":
		return KindU32, true
	case "s32", "i32", "int32":
		return KindS32, true
	case "u64", "uint64":
		return KindU64, true
	case "s64", "i64", "int64":
		return KindS64, true
	}
	return Invalid, false
}
