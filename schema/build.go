package schema

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/bytecode/codec"
	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/primitive"
)

// Build registers every declaration of f in reg. Declarations are
// registered after the types they reference, whatever their order in the
// file. It returns the TypeIDs in declaration order. If any declaration is
// rejected, reg is left unchanged.
func Build(f *File, reg *codec.Registry) ([]descriptor.TypeID, error) {
	index := make(map[string]int, len(f.Types))
	for i := range f.Types {
		d := &f.Types[i]
		if d.Name == "" {
			return nil, schemaError(nil, "type %d has no name", i)
		}
		if _, ok := primitive.ParseKind(d.Name); ok {
			return nil, schemaError([]string{d.Name}, "type name shadows a primitive")
		}
		if _, dup := index[d.Name]; dup {
			return nil, schemaError([]string{d.Name}, "duplicate type")
		}
		index[d.Name] = i
	}

	order, err := topoSort(f, index)
	if err != nil {
		return nil, err
	}

	// A scratch registry catches invalid declarations before reg is touched.
	if _, err := register(f, order, index, codec.NewRegistry(codec.WithLogger(zap.NewNop()))); err != nil {
		return nil, err
	}
	for i := range f.Types {
		if _, dup := reg.Lookup(f.Types[i].Name); dup {
			return nil, errors.InvalidDescriptor(f.Types[i].Name, "type already registered")
		}
	}
	ids, err := register(f, order, index, reg)
	if err != nil {
		return nil, err
	}

	Logger().Debug("built schema", zap.Int("types", len(ids)))
	return ids, nil
}

func register(f *File, order []int, index map[string]int, reg *codec.Registry) ([]descriptor.TypeID, error) {
	ids := make([]descriptor.TypeID, len(f.Types))
	for _, i := range order {
		t, err := declToType(&f.Types[i], index, ids)
		if err != nil {
			return nil, err
		}
		id, err := reg.Register(t)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// LoadRegistry loads a schema file and builds a new registry from it.
func LoadRegistry(path string, opts ...codec.Option) (*codec.Registry, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	reg := codec.NewRegistry(opts...)
	if _, err := Build(f, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

const (
	unvisited = iota
	visiting
	done
)

// topoSort orders declarations so that every type follows its
// dependencies. Ties keep file order.
func topoSort(f *File, index map[string]int) ([]int, error) {
	state := make([]int, len(f.Types))
	order := make([]int, 0, len(f.Types))
	var stack []string

	var visit func(i int) error
	visit = func(i int) error {
		d := &f.Types[i]
		switch state[i] {
		case done:
			return nil
		case visiting:
			cycle := append(append([]string{}, stack[indexOf(stack, d.Name):]...), d.Name)
			return schemaError([]string{d.Name}, "reference cycle %s", strings.Join(cycle, " -> "))
		}

		state[i] = visiting
		stack = append(stack, d.Name)
		for _, ref := range d.refs() {
			if _, ok := primitive.ParseKind(ref); ok {
				continue
			}
			j, ok := index[ref]
			if !ok {
				return schemaError([]string{d.Name}, "unknown type %q", ref)
			}
			if err := visit(j); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[i] = done
		order = append(order, i)
		return nil
	}

	for i := range f.Types {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}

func declToType(d *TypeDecl, index map[string]int, ids []descriptor.TypeID) (descriptor.Type, error) {
	ref := func(name string) descriptor.Ref {
		if k, ok := primitive.ParseKind(name); ok {
			return descriptor.Ref{Primitive: k}
		}
		return descriptor.To(ids[index[name]])
	}

	switch {
	case len(d.Product) > 0 && len(d.Sum) > 0:
		return descriptor.Type{}, schemaError([]string{d.Name}, "declares both product and sum")
	case len(d.Product) > 0:
		fields := make([]descriptor.Field, len(d.Product))
		for i, f := range d.Product {
			fields[i] = descriptor.F(f.Name, ref(f.Type))
		}
		return descriptor.Product(d.Name, fields...), nil
	case len(d.Sum) > 0:
		variants := make([]descriptor.Variant, len(d.Sum))
		for i, v := range d.Sum {
			switch {
			case len(v.Tuple) > 0 && len(v.Fields) > 0:
				return descriptor.Type{}, schemaError([]string{d.Name, v.Name}, "variant declares both tuple and fields")
			case len(v.Tuple) > 0:
				refs := make([]descriptor.Ref, len(v.Tuple))
				for j, name := range v.Tuple {
					refs[j] = ref(name)
				}
				variants[i] = descriptor.TupleVariant(v.Name, refs...)
			case len(v.Fields) > 0:
				fields := make([]descriptor.Field, len(v.Fields))
				for j, f := range v.Fields {
					fields[j] = descriptor.F(f.Name, ref(f.Type))
				}
				variants[i] = descriptor.NamedVariant(v.Name, fields...)
			default:
				variants[i] = descriptor.UnitVariant(v.Name)
			}
		}
		return descriptor.Sum(d.Name, variants...), nil
	}
	return descriptor.Type{}, schemaError([]string{d.Name}, "declares neither product nor sum")
}

// FromRegistry renders every type of reg as a schema file in registration
// order. Types that reference codecs from outside the registry cannot be
// expressed and are reported as errors.
func FromRegistry(reg *codec.Registry) (*File, error) {
	ids := reg.IDs()
	f := &File{Types: make([]TypeDecl, 0, len(ids))}

	names := make(map[descriptor.TypeID]string, len(ids))
	for _, id := range ids {
		t, _ := reg.Type(id)
		names[id] = t.Name
	}

	for _, id := range ids {
		t, _ := reg.Type(id)
		d := TypeDecl{Name: t.Name}

		typeName := func(r descriptor.Ref, path ...string) (string, error) {
			switch {
			case r.IsPrimitive():
				return r.Primitive.String(), nil
			case r.IsExternal():
				return "", errors.New(errors.PhaseSchema, errors.KindOther).
					Path(append([]string{t.Name}, path...)...).
					Detail("external codec %s has no schema form", r).
					Build()
			}
			return names[r.ID], nil
		}

		for i, fld := range t.Fields {
			tn, err := typeName(fld.Type, fieldPath(fld.Name, i))
			if err != nil {
				return nil, err
			}
			d.Product = append(d.Product, FieldDecl{Name: fld.Name, Type: tn})
		}
		for _, v := range t.Variants {
			vd := VariantDecl{Name: v.Name}
			for i, fld := range v.Fields {
				tn, err := typeName(fld.Type, v.Name, fieldPath(fld.Name, i))
				if err != nil {
					return nil, err
				}
				if v.Shape == descriptor.ShapeNamed {
					vd.Fields = append(vd.Fields, FieldDecl{Name: fld.Name, Type: tn})
				} else {
					vd.Tuple = append(vd.Tuple, tn)
				}
			}
			d.Sum = append(d.Sum, vd)
		}
		f.Types = append(f.Types, d)
	}
	return f, nil
}

func fieldPath(name string, i int) string {
	if name != "" {
		return name
	}
	return "#" + strconv.Itoa(i)
}

func schemaError(path []string, format string, args ...any) error {
	return errors.New(errors.PhaseSchema, errors.KindOther).
		Path(path...).
		Detail(format, args...).
		Build()
}
