package descriptor

import (
	"strconv"

	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/tag"
)

// Validate checks the rules that hold for a type on its own. Reference
// targets are checked by the registry.
//
// A product needs at least one field, and its fields are either all named or
// all unnamed. A sum needs between 1 and tag.MaxVariants variants with
// distinct, non-empty names. Field names within one product or variant must
// be distinct.
func (t *Type) Validate() error {
	if t.Name == "" {
		return errors.InvalidDescriptor("", "type name is empty")
	}

	switch t.Kind {
	case KindProduct:
		if len(t.Variants) > 0 {
			return errors.InvalidDescriptor(t.Name, "product declares variants")
		}
		if len(t.Fields) == 0 {
			return errors.InvalidDescriptor(t.Name, "product has no fields; use a unit variant of a sum instead")
		}
		return validateFields(t.Name, nil, t.Fields, t.NamedFields())

	case KindSum:
		if len(t.Fields) > 0 {
			return errors.InvalidDescriptor(t.Name, "sum declares product fields")
		}
		if err := tag.ValidateCount(len(t.Variants)); err != nil {
			return errors.New(errors.PhaseBuild, errors.KindOther).
				WireType(t.Name).
				Detail("invalid variant count").
				Cause(err).
				Build()
		}
		seen := make(map[string]struct{}, len(t.Variants))
		for i := range t.Variants {
			v := &t.Variants[i]
			if v.Name == "" {
				return errors.InvalidDescriptor(t.Name, "variant %d has no name", i)
			}
			if _, dup := seen[v.Name]; dup {
				return errors.InvalidDescriptor(t.Name, "duplicate variant %q", v.Name)
			}
			seen[v.Name] = struct{}{}
			if err := validateVariant(t.Name, v); err != nil {
				return err
			}
		}
		return nil
	}

	return errors.InvalidDescriptor(t.Name, "unknown type kind %d", t.Kind)
}

func validateVariant(typeName string, v *Variant) error {
	switch v.Shape {
	case ShapeUnit:
		if len(v.Fields) > 0 {
			return errors.New(errors.PhaseBuild, errors.KindOther).
				Path(v.Name).
				WireType(typeName).
				Detail("unit variant has fields").
				Build()
		}
		return nil
	case ShapeTuple:
		return validateFields(typeName, []string{v.Name}, v.Fields, false)
	case ShapeNamed:
		return validateFields(typeName, []string{v.Name}, v.Fields, true)
	}
	return errors.New(errors.PhaseBuild, errors.KindOther).
		Path(v.Name).
		WireType(typeName).
		Detail("unknown variant shape %d", v.Shape).
		Build()
}

func validateFields(typeName string, path []string, fields []Field, named bool) error {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		fieldPath := append(append([]string{}, path...), fieldLabel(f, i))
		fail := func(msg string, args ...any) error {
			return errors.New(errors.PhaseBuild, errors.KindOther).
				Path(fieldPath...).
				WireType(typeName).
				Detail(msg, args...).
				Build()
		}

		if named {
			if f.Name == "" {
				return fail("field %d has no name", i)
			}
			if _, dup := seen[f.Name]; dup {
				return fail("duplicate field %q", f.Name)
			}
			seen[f.Name] = struct{}{}
		} else if f.Name != "" {
			return fail("tuple field %d is named %q", i, f.Name)
		}

		switch f.Type.set() {
		case 0:
			return fail("field type is not set")
		case 1:
		default:
			return fail("field type sets more than one of primitive, id and external")
		}
		if f.Type.IsPrimitive() && !f.Type.Primitive.Valid() {
			return fail("unknown primitive %d", f.Type.Primitive)
		}
	}
	return nil
}

func fieldLabel(f Field, i int) string {
	if f.Name != "" {
		return f.Name
	}
	return "#" + strconv.Itoa(i)
}
