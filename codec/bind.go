package codec

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/wippyai/bytecode/codec/internal/types"
	"github.com/wippyai/bytecode/errors"
)

// binder caches how Go struct types map onto compiled field lists and sum
// cases. One binder is shared by every codec of a registry.
type binder struct {
	cache sync.Map // bindKey -> []int
}

type bindKey struct {
	goType reflect.Type
	owner  any // *types.CompiledType or *types.Case
	cases  bool
}

// structFields returns, for each wire field, the index of the Go struct
// field that holds it. Named fields are matched by name; unnamed fields take
// the exported struct fields in declaration order.
func (b *binder) structFields(goType reflect.Type, owner any, fields []types.Field, named bool, path []string) ([]int, error) {
	key := bindKey{goType: goType, owner: owner}
	if cached, ok := b.cache.Load(key); ok {
		return cached.([]int), nil
	}

	idx := make([]int, len(fields))
	if named {
		for i, f := range fields {
			sf, ok := findGoField(goType, f.Name)
			if !ok {
				return nil, errors.New(errors.PhaseBind, errors.KindOther).
					Path(path...).
					GoType(goType.String()).
					Detail("no struct field for %q", f.Name).
					Build()
			}
			idx[i] = sf.Index[0]
		}
	} else {
		exported := tupleFields(goType)
		if len(exported) != len(fields) {
			return nil, errors.New(errors.PhaseBind, errors.KindOther).
				Path(path...).
				GoType(goType.String()).
				Detail("struct has %d usable fields, want %d", len(exported), len(fields)).
				Build()
		}
		copy(idx, exported)
	}

	b.cache.Store(key, idx)
	return idx, nil
}

// structCases maps each struct field of a pointer-per-case struct to the
// case it represents, or -1.
func (b *binder) structCases(goType reflect.Type, ct *types.CompiledType, path []string) ([]int, error) {
	key := bindKey{goType: goType, owner: ct, cases: true}
	if cached, ok := b.cache.Load(key); ok {
		return cached.([]int), nil
	}

	idx := make([]int, goType.NumField())
	matched := 0
	for i := range idx {
		idx[i] = -1
		f := goType.Field(i)
		if !f.IsExported() || (f.Type.Kind() != reflect.Ptr && f.Type.Kind() != reflect.Interface) {
			continue
		}
		for j := range ct.Cases {
			if fieldMatches(f, ct.Cases[j].Name) {
				idx[i] = j
				matched++
				break
			}
		}
	}
	if matched == 0 {
		return nil, errors.New(errors.PhaseBind, errors.KindOther).
			Path(path...).
			GoType(goType.String()).
			WireType(ct.Name).
			Detail("struct has no pointer field named after a variant").
			Build()
	}

	b.cache.Store(key, idx)
	return idx, nil
}

// findGoField matches by: 1) bytecode:"name" tag, 2) case-insensitive,
// 3) kebab-case or snake_case of the Go name.
func findGoField(goType reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() {
			continue
		}
		if fieldMatches(field, name) {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

func fieldMatches(field reflect.StructField, name string) bool {
	if tag := field.Tag.Get("bytecode"); tag != "" {
		tag, _, _ = strings.Cut(tag, ",")
		if tag == "-" {
			return false
		}
		if tag == name {
			return true
		}
	}
	if strings.EqualFold(field.Name, name) {
		return true
	}
	kebab := toKebabCase(field.Name)
	return kebab == name || strings.ReplaceAll(kebab, "-", "_") == name
}

// tupleFields returns the exported fields not tagged bytecode:"-".
func tupleFields(goType reflect.Type) []int {
	var idx []int
	for i := 0; i < goType.NumField(); i++ {
		f := goType.Field(i)
		if !f.IsExported() || f.Tag.Get("bytecode") == "-" {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

func toKebabCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteByte('-')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func childPath(path []string, name string) []string {
	return append(append([]string{}, path...), name)
}
