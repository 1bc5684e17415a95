package codec

import (
	"github.com/wippyai/bytecode"
	"github.com/wippyai/bytecode/codec/internal/types"
	"github.com/wippyai/bytecode/errors"
)

// Entry is one key of a Map.
type Entry struct {
	Value any
	Key   string
}

// Map is an ordered string-keyed map. Plain uses it for named fields so that
// declaration order survives rendering.
type Map []Entry

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Plain converts a decoded value into a form that reads naturally in YAML or
// JSON and that Encode accepts back:
//
//   - named products become Map, tuple products []any
//   - variants without fields become their name
//   - other variants become a one-entry Map from name to payload, where a
//     single unnamed field is the payload itself
//
// Primitive and external values are returned unchanged.
func (c *Codec) Plain(v any) (any, error) {
	return plainValue(c.ct, v, []string{c.ct.Name})
}

func plainValue(ct *types.CompiledType, v any, path []string) (any, error) {
	switch ct.Kind {
	case types.KindProduct:
		rec, ok := asRecord(v)
		if !ok || len(rec.Fields) != len(ct.Fields) {
			return nil, errors.TypeMismatch(errors.PhaseDecode, path, typeName(v), "bytecode.Record")
		}
		return plainFields(ct.Fields, ct.Named, rec.Fields, path)

	case types.KindSum:
		vr, ok := asVariant(v)
		if !ok || vr.Index < 0 || vr.Index >= len(ct.Cases) {
			return nil, errors.TypeMismatch(errors.PhaseDecode, path, typeName(v), "bytecode.Variant")
		}
		cs := &ct.Cases[vr.Index]
		if len(vr.Fields) != len(cs.Fields) {
			return nil, arity(path, len(vr.Fields), len(cs.Fields))
		}
		casePath := childPath(path, cs.Name)
		switch {
		case len(cs.Fields) == 0:
			return cs.Name, nil
		case len(cs.Fields) == 1 && !cs.Named():
			inner, err := plainValue(cs.Fields[0].Type, vr.Fields[0], childPath(casePath, "#0"))
			if err != nil {
				return nil, err
			}
			return Map{{Key: cs.Name, Value: inner}}, nil
		}
		inner, err := plainFields(cs.Fields, cs.Named(), vr.Fields, casePath)
		if err != nil {
			return nil, err
		}
		return Map{{Key: cs.Name, Value: inner}}, nil

	case types.KindExternal:
		if ec, ok := ct.External.(*Codec); ok {
			return plainValue(ec.ct, v, path)
		}
	}
	return v, nil
}

func plainFields(fields []types.Field, named bool, vals []any, path []string) (any, error) {
	if named {
		out := make(Map, len(fields))
		for i, f := range fields {
			pv, err := plainValue(f.Type, vals[i], childPath(path, f.Name))
			if err != nil {
				return nil, err
			}
			out[i] = Entry{Key: f.Name, Value: pv}
		}
		return out, nil
	}
	out := make([]any, len(fields))
	for i, f := range fields {
		pv, err := plainValue(f.Type, vals[i], childPath(path, fieldLabel("", i)))
		if err != nil {
			return nil, err
		}
		out[i] = pv
	}
	return out, nil
}

func asRecord(v any) (bytecode.Record, bool) {
	switch x := v.(type) {
	case bytecode.Record:
		return x, true
	case *bytecode.Record:
		if x != nil {
			return *x, true
		}
	}
	return bytecode.Record{}, false
}

func asVariant(v any) (bytecode.Variant, bool) {
	switch x := v.(type) {
	case bytecode.Variant:
		return x, true
	case *bytecode.Variant:
		if x != nil {
			return *x, true
		}
	}
	return bytecode.Variant{}, false
}
