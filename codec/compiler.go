package codec

import (
	"strconv"

	"github.com/wippyai/bytecode/codec/internal/layout"
	"github.com/wippyai/bytecode/codec/internal/types"
	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/primitive"
	"github.com/wippyai/bytecode/tag"
)

func (r *Registry) compile(e *entry) (*types.CompiledType, error) {
	d := &e.desc
	ct := &types.CompiledType{
		Name: d.Name,
		ID:   e.id,
	}

	switch d.Kind {
	case descriptor.KindProduct:
		fields, err := r.compileFields(d.Fields, []string{d.Name})
		if err != nil {
			return nil, err
		}
		ct.Kind = types.KindProduct
		ct.Fields = fields
		ct.Named = d.NamedFields()
		info := layout.Fields(fields)
		ct.MinSize, ct.MaxSize = info.Min, info.Max

	case descriptor.KindSum:
		cases := make([]types.Case, len(d.Variants))
		for i, v := range d.Variants {
			fields, err := r.compileFields(v.Fields, []string{d.Name, v.Name})
			if err != nil {
				return nil, err
			}
			cases[i] = types.Case{
				Name:   v.Name,
				Tag:    tag.Encode(i),
				Fields: fields,
				Shape:  v.Shape,
			}
		}
		ct.Kind = types.KindSum
		ct.Cases = cases
		info := layout.Sum(cases)
		ct.MinSize, ct.MaxSize = info.Min, info.Max

	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindOther).
			WireType(d.Name).
			Detail("unknown type kind %d", d.Kind).
			Build()
	}

	return ct, nil
}

func (r *Registry) compileFields(fields []descriptor.Field, path []string) ([]types.Field, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]types.Field, len(fields))
	for i, f := range fields {
		ft, err := r.compileRef(f.Type, append(append([]string{}, path...), fieldLabel(f.Name, i)))
		if err != nil {
			return nil, err
		}
		out[i] = types.Field{Name: f.Name, Type: ft}
	}
	return out, nil
}

func (r *Registry) compileRef(ref descriptor.Ref, path []string) (*types.CompiledType, error) {
	switch {
	case ref.IsPrimitive():
		return primitiveType(ref.Primitive, path)
	case ref.IsExternal():
		info := layout.External(ref.External)
		return &types.CompiledType{
			Kind:     types.KindExternal,
			External: ref.External,
			MinSize:  info.Min,
			MaxSize:  info.Max,
		}, nil
	default:
		return r.compiled(ref.ID)
	}
}

var primitiveCache = func() map[primitive.Kind]*types.CompiledType {
	m := make(map[primitive.Kind]*types.CompiledType)
	for k := primitive.KindBool; k <= primitive.KindS64; k++ {
		c, _ := primitive.For(k)
		info := layout.Primitive(k.Size())
		m[k] = &types.CompiledType{
			Kind:      types.KindPrimitive,
			Primitive: c,
			MinSize:   info.Min,
			MaxSize:   info.Max,
		}
	}
	return m
}()

func primitiveType(k primitive.Kind, path []string) (*types.CompiledType, error) {
	if ct, ok := primitiveCache[k]; ok {
		return ct, nil
	}
	return nil, errors.New(errors.PhaseCompile, errors.KindOther).
		Path(path...).
		Detail("unknown primitive %d", k).
		Build()
}

func fieldLabel(name string, i int) string {
	if name != "" {
		return name
	}
	return "#" + strconv.Itoa(i)
}
