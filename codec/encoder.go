package codec

import (
	"reflect"

	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/codec/internal/types"
	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/internal/abi"
)

var typeName = abi.TypeName

func (b *binder) appendValue(dst []byte, ct *types.CompiledType, v any, path []string) ([]byte, error) {
	switch ct.Kind {
	case types.KindPrimitive:
		out, err := ct.Primitive.Append(dst, v)
		return out, withPath(err, path)

	case types.KindExternal:
		out, err := ct.External.Append(dst, v)
		return out, withPath(err, path)

	case types.KindProduct:
		if path == nil {
			path = []string{ct.Name}
		}
		vals, err := b.fieldValues(ct, ct.Fields, ct.Named, v, path)
		if err != nil {
			return dst, err
		}
		return b.appendFields(dst, ct.Fields, vals, path)

	case types.KindSum:
		if path == nil {
			path = []string{ct.Name}
		}
		idx, vals, err := b.selectCase(ct, v, path)
		if err != nil {
			return dst, err
		}
		cs := &ct.Cases[idx]
		dst = append(dst, cs.Tag...)
		return b.appendFields(dst, cs.Fields, vals, childPath(path, cs.Name))
	}

	return dst, errors.Unsupported(errors.PhaseEncode, "type kind "+ct.Kind.String())
}

func (b *binder) appendFields(dst []byte, fields []types.Field, vals []any, path []string) ([]byte, error) {
	var err error
	for i := range fields {
		dst, err = b.appendValue(dst, fields[i].Type, vals[i], childPath(path, fieldLabel(fields[i].Name, i)))
		if err != nil {
			return dst, err
		}
	}
	return dst, nil
}

// fieldValues extracts one value per wire field from v. Accepted forms are
// bytecode.Record, []any and other slices or arrays (positional), Go structs,
// and for named fields map[string]any and Map.
func (b *binder) fieldValues(owner any, fields []types.Field, named bool, v any, path []string) ([]any, error) {
	switch x := v.(type) {
	case bytecode.Record:
		return positional(x.Fields, len(fields), path)
	case *bytecode.Record:
		if x == nil {
			return nil, errors.InvalidInput(errors.PhaseEncode, "nil *bytecode.Record")
		}
		return positional(x.Fields, len(fields), path)
	case []any:
		return positional(x, len(fields), path)
	case map[string]any:
		if !named && len(fields) > 0 {
			return nil, errors.TypeMismatch(errors.PhaseEncode, path, typeName(v), "tuple")
		}
		return keyed(fields, len(x), func(k string) (any, bool) { val, ok := x[k]; return val, ok }, x, path)
	case Map:
		if !named && len(fields) > 0 {
			return nil, errors.TypeMismatch(errors.PhaseEncode, path, typeName(v), "tuple")
		}
		return keyed(fields, len(x), x.Get, x.Keys(), path)
	case nil:
		return nil, errors.TypeMismatch(errors.PhaseEncode, path, "nil", shapeName(named))
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, errors.TypeMismatch(errors.PhaseEncode, path, typeName(v), shapeName(named))
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		idx, err := b.structFields(rv.Type(), owner, fields, named, path)
		if err != nil {
			return nil, err
		}
		vals := make([]any, len(idx))
		for i, fi := range idx {
			vals[i] = rv.Field(fi).Interface()
		}
		return vals, nil
	case reflect.Slice, reflect.Array:
		if rv.Len() != len(fields) {
			return nil, arity(path, rv.Len(), len(fields))
		}
		vals := make([]any, rv.Len())
		for i := range vals {
			vals[i] = rv.Index(i).Interface()
		}
		return vals, nil
	case reflect.Map:
		if named && rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[iter.Key().String()] = iter.Value().Interface()
			}
			return b.fieldValues(owner, fields, named, m, path)
		}
	}

	return nil, errors.TypeMismatch(errors.PhaseEncode, path, typeName(v), shapeName(named))
}

func positional(vals []any, want int, path []string) ([]any, error) {
	if len(vals) != want {
		return nil, arity(path, len(vals), want)
	}
	return vals, nil
}

func keyed(fields []types.Field, size int, get func(string) (any, bool), keys any, path []string) ([]any, error) {
	vals := make([]any, len(fields))
	for i, f := range fields {
		val, ok := get(f.Name)
		if !ok {
			return nil, errors.FieldMissing(errors.PhaseEncode, path, f.Name)
		}
		vals[i] = val
	}
	if size != len(fields) {
		return nil, errors.New(errors.PhaseEncode, errors.KindOther).
			Path(path...).
			Value(keys).
			Detail("%d keys given, %d fields declared", size, len(fields)).
			Build()
	}
	return vals, nil
}

// selectCase picks the variant of a sum value and extracts its field values.
//
// Accepted forms are bytecode.Variant (by Index, or by Name when Index is
// negative), a variant name for payload-free variants, a Go integer index
// for payload-free variants, a single-entry map from variant name to payload,
// and a struct with one pointer field per variant of which exactly one is set.
func (b *binder) selectCase(ct *types.CompiledType, v any, path []string) (int, []any, error) {
	switch x := v.(type) {
	case bytecode.Variant:
		return b.variantValue(ct, x, path)
	case *bytecode.Variant:
		if x == nil {
			return 0, nil, errors.InvalidInput(errors.PhaseEncode, "nil *bytecode.Variant")
		}
		return b.variantValue(ct, *x, path)
	case string:
		idx, ok := ct.CaseIndex(x)
		if !ok {
			return 0, nil, errors.UnknownVariant(errors.PhaseEncode, path, x, ct.Name)
		}
		return idx, nil, payloadFree(ct, idx, path)
	case map[string]any:
		if len(x) != 1 {
			return 0, nil, oneEntry(path, len(x))
		}
		for name, payload := range x {
			return b.namedCase(ct, name, payload, path)
		}
	case Map:
		if len(x) != 1 {
			return 0, nil, oneEntry(path, len(x))
		}
		return b.namedCase(ct, x[0].Key, x[0].Value, path)
	case nil:
		return 0, nil, errors.TypeMismatch(errors.PhaseEncode, path, "nil", "variant")
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return 0, nil, errors.TypeMismatch(errors.PhaseEncode, path, typeName(v), "variant")
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := abi.CoerceToInt64(rv.Interface())
		if !ok || i < 0 || i >= int64(len(ct.Cases)) {
			return 0, nil, errors.UnknownVariant(errors.PhaseEncode, path, rv.Interface(), ct.Name)
		}
		return int(i), nil, payloadFree(ct, int(i), path)
	case reflect.String:
		return b.selectCase(ct, rv.String(), path)
	case reflect.Struct:
		return b.structCase(ct, rv, path)
	}

	return 0, nil, errors.TypeMismatch(errors.PhaseEncode, path, typeName(v), "variant")
}

func (b *binder) variantValue(ct *types.CompiledType, v bytecode.Variant, path []string) (int, []any, error) {
	idx := v.Index
	if idx < 0 {
		var ok bool
		if idx, ok = ct.CaseIndex(v.Name); !ok {
			return 0, nil, errors.UnknownVariant(errors.PhaseEncode, path, v.Name, ct.Name)
		}
	} else if idx >= len(ct.Cases) {
		return 0, nil, errors.UnknownVariant(errors.PhaseEncode, path, idx, ct.Name)
	} else if v.Name != "" && v.Name != ct.Cases[idx].Name {
		return 0, nil, errors.New(errors.PhaseEncode, errors.KindOther).
			Path(path...).
			WireType(ct.Name).
			Detail("variant index %d is %q, not %q", idx, ct.Cases[idx].Name, v.Name).
			Build()
	}

	cs := &ct.Cases[idx]
	vals, err := positional(v.Fields, len(cs.Fields), childPath(path, cs.Name))
	if err != nil {
		return 0, nil, err
	}
	return idx, vals, nil
}

func (b *binder) namedCase(ct *types.CompiledType, name string, payload any, path []string) (int, []any, error) {
	idx, ok := ct.CaseIndex(name)
	if !ok {
		return 0, nil, errors.UnknownVariant(errors.PhaseEncode, path, name, ct.Name)
	}
	vals, err := b.caseValues(&ct.Cases[idx], payload, childPath(path, name))
	if err != nil {
		return 0, nil, err
	}
	return idx, vals, nil
}

// caseValues interprets the payload of one variant. A variant with a single
// unnamed field takes that field's value directly.
func (b *binder) caseValues(cs *types.Case, payload any, path []string) ([]any, error) {
	switch {
	case len(cs.Fields) == 0:
		if payload == nil {
			return nil, nil
		}
		return b.fieldValues(cs, nil, cs.Named(), payload, path)
	case len(cs.Fields) == 1 && !cs.Named():
		return []any{payload}, nil
	}
	return b.fieldValues(cs, cs.Fields, cs.Named(), payload, path)
}

func (b *binder) structCase(ct *types.CompiledType, rv reflect.Value, path []string) (int, []any, error) {
	idx, err := b.structCases(rv.Type(), ct, path)
	if err != nil {
		return 0, nil, err
	}

	selected, field := -1, reflect.Value{}
	for fi, ci := range idx {
		if ci < 0 {
			continue
		}
		f := rv.Field(fi)
		if f.IsNil() {
			continue
		}
		if selected >= 0 {
			return 0, nil, errors.New(errors.PhaseEncode, errors.KindOther).
				Path(path...).
				GoType(rv.Type().String()).
				Detail("variants %q and %q are both set", ct.Cases[selected].Name, ct.Cases[ci].Name).
				Build()
		}
		selected, field = ci, f
	}
	if selected < 0 {
		return 0, nil, errors.New(errors.PhaseEncode, errors.KindOther).
			Path(path...).
			GoType(rv.Type().String()).
			Detail("no variant is set").
			Build()
	}

	vals, err := b.caseValues(&ct.Cases[selected], field.Elem().Interface(), childPath(path, ct.Cases[selected].Name))
	if err != nil {
		return 0, nil, err
	}
	return selected, vals, nil
}

func payloadFree(ct *types.CompiledType, idx int, path []string) error {
	if n := len(ct.Cases[idx].Fields); n > 0 {
		return errors.New(errors.PhaseEncode, errors.KindOther).
			Path(childPath(path, ct.Cases[idx].Name)...).
			WireType(ct.Name).
			Detail("variant has %d fields, none given", n).
			Build()
	}
	return nil
}

func oneEntry(path []string, n int) error {
	return errors.New(errors.PhaseEncode, errors.KindOther).
		Path(path...).
		Detail("variant map needs exactly one entry, got %d", n).
		Build()
}

func arity(path []string, got, want int) error {
	return errors.New(errors.PhaseEncode, errors.KindOther).
		Path(path...).
		Value(got).
		Detail("%d values given, %d fields declared", got, want).
		Build()
}

func shapeName(named bool) string {
	if named {
		return "named fields"
	}
	return "tuple"
}

// withPath attaches path to a structured error that has none.
func withPath(err error, path []string) error {
	if err == nil || len(path) == 0 {
		return err
	}
	e, ok := err.(*errors.Error)
	if !ok || e.Path != nil {
		return err
	}
	cp := *e
	cp.Path = path
	return &cp
}
