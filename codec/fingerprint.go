package codec

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/wippyai/bytecode/codec/internal/types"
	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/primitive"
)

// Fingerprint is a 32-byte BLAKE3 digest of a type's wire shape.
//
// Names do not contribute: two types with equal fingerprints read and write
// the same bytes for the same field values.
type Fingerprint [32]byte

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 8 bytes in hex.
func (f Fingerprint) Short() string {
	return hex.EncodeToString(f[:8])
}

// shapeDomainKey is the BLAKE3 key for shape hashing. Changing it changes
// every fingerprint.
var shapeDomainKey = [32]byte{
	'b', 'y', 't', 'e', 'c', 'o', 'd', 'e', '.', 's', 'h', 'a', 'p', 'e', '.', 'v',
	'1', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Shape markers in the canonical encoding.
const (
	shapePrimitive byte = iota + 1
	shapeProduct
	shapeSum
	shapeExternal
)

// Fingerprint returns the shape fingerprint of the type registered as id.
func (r *Registry) Fingerprint(id descriptor.TypeID) (Fingerprint, error) {
	ct, err := r.compiled(id)
	if err != nil {
		return Fingerprint{}, err
	}
	return fingerprintOf(ct), nil
}

// Fingerprint returns the shape fingerprint of the codec's type.
func (c *Codec) Fingerprint() Fingerprint {
	return fingerprintOf(c.ct)
}

func fingerprintOf(ct *types.CompiledType) Fingerprint {
	hasher, err := blake3.NewKeyed(shapeDomainKey[:])
	if err != nil {
		panic("codec: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(appendShape(nil, ct))

	var fp Fingerprint
	copy(fp[:], hasher.Sum(nil))
	return fp
}

// appendShape writes the canonical, name-free shape of ct.
func appendShape(dst []byte, ct *types.CompiledType) []byte {
	switch ct.Kind {
	case types.KindPrimitive:
		return append(dst, shapePrimitive, byte(ct.Primitive.Kind()))
	case types.KindProduct:
		dst = append(dst, shapeProduct)
		return appendFieldShapes(dst, ct.Fields)
	case types.KindSum:
		dst = append(dst, shapeSum)
		dst = primitive.AppendU32(dst, uint32(len(ct.Cases)))
		for i := range ct.Cases {
			dst = appendFieldShapes(dst, ct.Cases[i].Fields)
		}
		return dst
	}

	if ec, ok := ct.External.(*Codec); ok {
		return appendShape(dst, ec.ct)
	}
	if p, ok := ct.External.(primitive.Codec); ok {
		return append(dst, shapePrimitive, byte(p.Kind()))
	}
	name := ct.WireName()
	dst = append(dst, shapeExternal)
	dst = primitive.AppendU32(dst, uint32(len(name)))
	return append(dst, name...)
}

func appendFieldShapes(dst []byte, fields []types.Field) []byte {
	dst = primitive.AppendU32(dst, uint32(len(fields)))
	for i := range fields {
		dst = appendShape(dst, fields[i].Type)
	}
	return dst
}
