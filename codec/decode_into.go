package codec

import (
	"reflect"

	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/codec/internal/types"
	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/tag"
)

var (
	recordType  = reflect.TypeOf(bytecode.Record{})
	variantType = reflect.TypeOf(bytecode.Variant{})
)

// DecodeInto decodes one value from the front of src into the Go value that
// target points to and returns the number of bytes consumed.
//
// Products bind to structs (named fields by name, unnamed fields by
// exported field order), slices and arrays. Sums bind to structs with one
// pointer field per variant, and payload-free variants also to integers
// (the tag index) and strings (the variant name). Interface targets and
// bytecode.Record or bytecode.Variant receive the dynamic form.
//
// Input errors are returned exactly as Decode returns them. Binding errors
// are reported in errors.PhaseBind. On any error the target is left as it
// was.
func (c *Codec) DecodeInto(src []byte, target any) (int, error) {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return 0, errors.New(errors.PhaseBind, errors.KindOther).
			GoType(typeName(target)).
			Detail("target must be a non-nil pointer").
			Build()
	}
	dst := rv.Elem()
	scratch := reflect.New(dst.Type()).Elem()
	scratch.Set(dst)
	n, err := c.binder.decodeInto(src, c.ct, scratch, []string{c.ct.Name})
	if err != nil {
		return 0, err
	}
	dst.Set(scratch)
	return n, nil
}

func (b *binder) decodeInto(src []byte, ct *types.CompiledType, rv reflect.Value, path []string) (int, error) {
	switch rv.Kind() {
	case reflect.Ptr:
		// Pointees may be shared with the caller, so decode into a copy.
		p := reflect.New(rv.Type().Elem())
		if !rv.IsNil() {
			p.Elem().Set(rv.Elem())
		}
		n, err := b.decodeInto(src, ct, p.Elem(), path)
		if err != nil {
			return 0, err
		}
		rv.Set(p)
		return n, nil
	case reflect.Interface:
		return decodeDynamic(src, ct, rv, path)
	}

	switch ct.Kind {
	case types.KindPrimitive, types.KindExternal:
		return decodeDynamic(src, ct, rv, path)
	case types.KindProduct:
		if rv.Type() == recordType {
			return decodeDynamic(src, ct, rv, path)
		}
		return b.decodeFieldsInto(src, ct, ct.Fields, ct.Named, rv, path)
	case types.KindSum:
		return b.decodeSumInto(src, ct, rv, path)
	}
	return 0, errors.Unsupported(errors.PhaseDecode, "type kind "+ct.Kind.String())
}

func (b *binder) decodeFieldsInto(src []byte, owner any, fields []types.Field, named bool, rv reflect.Value, path []string) (int, error) {
	var targets []reflect.Value

	switch rv.Kind() {
	case reflect.Struct:
		idx, err := b.structFields(rv.Type(), owner, fields, named, path)
		if err != nil {
			return 0, err
		}
		targets = make([]reflect.Value, len(idx))
		for i, fi := range idx {
			targets[i] = rv.Field(fi)
		}
	case reflect.Slice:
		fresh := reflect.MakeSlice(rv.Type(), len(fields), len(fields))
		if rv.Len() == len(fields) {
			reflect.Copy(fresh, rv)
		}
		rv.Set(fresh)
		targets = elems(rv, len(fields))
	case reflect.Array:
		if rv.Len() != len(fields) {
			return 0, bindMismatch(path, rv.Type(), "array length differs from field count")
		}
		targets = elems(rv, len(fields))
	default:
		return 0, bindMismatch(path, rv.Type(), shapeName(named))
	}

	offset := 0
	for i := range fields {
		n, err := b.decodeInto(src[offset:], fields[i].Type, targets[i], childPath(path, fieldLabel(fields[i].Name, i)))
		if err != nil {
			return 0, err
		}
		offset += n
	}
	return offset, nil
}

func (b *binder) decodeSumInto(src []byte, ct *types.CompiledType, rv reflect.Value, path []string) (int, error) {
	if rv.Type() == variantType {
		return decodeDynamic(src, ct, rv, path)
	}

	var caseFields []int
	switch rv.Kind() {
	case reflect.Struct:
		idx, err := b.structCases(rv.Type(), ct, path)
		if err != nil {
			return 0, err
		}
		caseFields = idx
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
	default:
		return 0, bindMismatch(path, rv.Type(), "variant")
	}

	idx, n, err := tag.Decode(src, len(ct.Cases))
	if err != nil {
		return 0, err
	}
	cs := &ct.Cases[idx]
	casePath := childPath(path, cs.Name)

	if caseFields == nil {
		if len(cs.Fields) > 0 {
			return 0, bindMismatch(casePath, rv.Type(), "variant with fields")
		}
		if rv.Kind() == reflect.String {
			rv.SetString(cs.Name)
			return n, nil
		}
		if err := setInt(rv, int64(idx), casePath); err != nil {
			return 0, err
		}
		return n, nil
	}

	target := -1
	for fi, ci := range caseFields {
		if ci == idx {
			target = fi
			break
		}
	}
	if target < 0 {
		return 0, bindMismatch(casePath, rv.Type(), "field for variant "+cs.Name)
	}
	for fi, ci := range caseFields {
		if ci >= 0 {
			f := rv.Field(fi)
			f.Set(reflect.Zero(f.Type()))
		}
	}

	field := rv.Field(target)
	var payload reflect.Value
	if field.Kind() == reflect.Interface {
		payload = reflect.New(field.Type()).Elem()
	} else {
		payload = reflect.New(field.Type().Elem()).Elem()
	}

	var m int
	switch {
	case len(cs.Fields) == 0:
	case len(cs.Fields) == 1 && !cs.Named():
		m, err = b.decodeInto(src[n:], cs.Fields[0].Type, payload, childPath(casePath, "#0"))
	default:
		if payload.Kind() == reflect.Interface {
			var vals []any
			vals, m, err = decodeFields(src[n:], cs.Fields)
			if err == nil {
				payload.Set(reflect.ValueOf(bytecode.Record{Fields: vals}))
			}
		} else {
			m, err = b.decodeFieldsInto(src[n:], cs, cs.Fields, cs.Named(), payload, casePath)
		}
	}
	if err != nil {
		return 0, err
	}

	if field.Kind() == reflect.Interface {
		field.Set(payload)
	} else {
		field.Set(payload.Addr())
	}
	return n + m, nil
}

// decodeDynamic decodes the dynamic form and stores it in rv.
func decodeDynamic(src []byte, ct *types.CompiledType, rv reflect.Value, path []string) (int, error) {
	v, n, err := decodeValue(src, ct)
	if err != nil {
		return 0, err
	}
	if err := assign(rv, v, path); err != nil {
		return 0, err
	}
	return n, nil
}

func assign(rv reflect.Value, v any, path []string) error {
	if v == nil {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	val := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Bool:
		if val.Kind() == reflect.Bool {
			rv.SetBool(val.Bool())
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch val.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return setInt(rv, val.Int(), path)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := val.Uint()
			if u > 1<<63-1 || rv.OverflowInt(int64(u)) {
				return errors.Overflow(errors.PhaseBind, path, v, rv.Type().String())
			}
			rv.SetInt(int64(u))
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch val.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if rv.OverflowUint(val.Uint()) {
				return errors.Overflow(errors.PhaseBind, path, v, rv.Type().String())
			}
			rv.SetUint(val.Uint())
			return nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			i := val.Int()
			if i < 0 || rv.OverflowUint(uint64(i)) {
				return errors.Overflow(errors.PhaseBind, path, v, rv.Type().String())
			}
			rv.SetUint(uint64(i))
			return nil
		}
	}

	if val.Type().AssignableTo(rv.Type()) {
		rv.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(rv.Type()) && rv.Kind() != reflect.String {
		rv.Set(val.Convert(rv.Type()))
		return nil
	}
	return bindMismatch(path, rv.Type(), typeName(v))
}

func setInt(rv reflect.Value, i int64, path []string) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(i) {
			return errors.Overflow(errors.PhaseBind, path, i, rv.Type().String())
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return errors.Overflow(errors.PhaseBind, path, i, rv.Type().String())
		}
		rv.SetUint(uint64(i))
		return nil
	}
	return bindMismatch(path, rv.Type(), "integer")
}

func elems(rv reflect.Value, n int) []reflect.Value {
	out := make([]reflect.Value, n)
	for i := range out {
		out[i] = rv.Index(i)
	}
	return out
}

func bindMismatch(path []string, goType reflect.Type, want string) error {
	return errors.New(errors.PhaseBind, errors.KindOther).
		Path(path...).
		GoType(goType.String()).
		Detail("cannot bind %s", want).
		Build()
}
