package codec

import (
	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/codec/internal/types"
	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/tag"
)

// decodeValue reads one value of ct from the front of src. Errors from
// nested components are returned as is.
func decodeValue(src []byte, ct *types.CompiledType) (any, int, error) {
	switch ct.Kind {
	case types.KindPrimitive:
		return ct.Primitive.Decode(src)
	case types.KindExternal:
		v, n, err := ct.External.Decode(src)
		if err != nil {
			return nil, 0, err
		}
		if n < 0 || n > len(src) {
			return nil, 0, errors.New(errors.PhaseDecode, errors.KindOther).
				WireType(ct.WireName()).
				Detail("external codec consumed %d of %d bytes", n, len(src)).
				Build()
		}
		return v, n, nil
	case types.KindProduct:
		fields, n, err := decodeFields(src, ct.Fields)
		if err != nil {
			return nil, 0, err
		}
		return bytecode.Record{Fields: fields}, n, nil
	case types.KindSum:
		return decodeSum(src, ct)
	}
	return nil, 0, errors.Unsupported(errors.PhaseDecode, "type kind "+ct.Kind.String())
}

func decodeSum(src []byte, ct *types.CompiledType) (any, int, error) {
	idx, n, err := tag.Decode(src, len(ct.Cases))
	if err != nil {
		return nil, 0, err
	}
	cs := &ct.Cases[idx]
	if len(cs.Fields) == 0 {
		return bytecode.Variant{Index: idx, Name: cs.Name}, n, nil
	}
	fields, m, err := decodeFields(src[n:], cs.Fields)
	if err != nil {
		return nil, 0, err
	}
	return bytecode.Variant{Index: idx, Name: cs.Name, Fields: fields}, n + m, nil
}

func decodeFields(src []byte, fields []types.Field) ([]any, int, error) {
	out := make([]any, len(fields))
	offset := 0
	for i := range fields {
		v, n, err := decodeValue(src[offset:], fields[i].Type)
		if err != nil {
			return nil, 0, err
		}
		out[i] = v
		offset += n
	}
	return out, offset, nil
}

// skipValue advances past one value of ct without building it.
func skipValue(src []byte, ct *types.CompiledType) (int, error) {
	switch ct.Kind {
	case types.KindPrimitive:
		if len(src) < ct.MinSize {
			return 0, errors.ErrIncompleteInstruction
		}
		return ct.MinSize, nil
	case types.KindProduct:
		return skipFields(src, ct.Fields)
	case types.KindSum:
		idx, n, err := tag.Decode(src, len(ct.Cases))
		if err != nil {
			return 0, err
		}
		m, err := skipFields(src[n:], ct.Cases[idx].Fields)
		if err != nil {
			return 0, err
		}
		return n + m, nil
	}
	_, n, err := decodeValue(src, ct)
	return n, err
}

func skipFields(src []byte, fields []types.Field) (int, error) {
	offset := 0
	for i := range fields {
		n, err := skipValue(src[offset:], fields[i].Type)
		if err != nil {
			return 0, err
		}
		offset += n
	}
	return offset, nil
}

// Measure returns the length of the value at the front of src without
// building it. It fails the same way Decode would.
func (c *Codec) Measure(src []byte) (int, error) {
	return skipValue(src, c.ct)
}
