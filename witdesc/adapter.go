package witdesc

import (
	"strconv"
	"strings"
	"sync"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/bytecode/codec"
	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/errors"
)

// Adapter registers WIT type definitions as descriptors in a registry.
//
// Each *wit.TypeDef is registered at most once. Anonymous definitions such as
// option<u8> are named after their structure and shared between definitions
// with the same structure.
type Adapter struct {
	reg   *codec.Registry
	cache map[*wit.TypeDef]descriptor.TypeID
	mu    sync.Mutex
}

// New creates an adapter that registers into reg.
func New(reg *codec.Registry) *Adapter {
	return &Adapter{
		reg:   reg,
		cache: make(map[*wit.TypeDef]descriptor.TypeID),
	}
}

// Registry returns the registry the adapter registers into.
func (a *Adapter) Registry() *codec.Registry { return a.reg }

// Register adapts td and every definition it references.
func (a *Adapter) Register(td *wit.TypeDef) (descriptor.TypeID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ref, err := a.typeDef(td, nil)
	if err != nil {
		return descriptor.NoType, err
	}
	if ref.ID == descriptor.NoType {
		return descriptor.NoType, errors.New(errors.PhaseAdapt, errors.KindOther).
			WireType(ref.String()).
			Detail("alias of a primitive has no type of its own").
			Build()
	}
	return ref.ID, nil
}

// Ref adapts any WIT type to a field reference.
func (a *Adapter) Ref(t wit.Type) (descriptor.Ref, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ref(t, nil)
}

// Codec adapts td and returns its codec.
func (a *Adapter) Codec(td *wit.TypeDef) (*codec.Codec, error) {
	id, err := a.Register(td)
	if err != nil {
		return nil, err
	}
	return a.reg.Codec(id)
}

func (a *Adapter) ref(t wit.Type, path []string) (descriptor.Ref, error) {
	switch t := t.(type) {
	case wit.Bool:
		return descriptor.Bool, nil
	case wit.U8:
		return descriptor.U8, nil
	case wit.S8:
		return descriptor.S8, nil
	case wit.U16:
		return descriptor.U16, nil
	case wit.S16:
		return descriptor.S16, nil
	case wit.U32:
		return descriptor.U32, nil
	case wit.S32:
		return descriptor.S32, nil
	case wit.U64:
		return descriptor.U64, nil
	case wit.S64:
		return descriptor.S64, nil
	case *wit.TypeDef:
		return a.typeDef(t, path)
	case nil:
		return descriptor.Ref{}, errors.New(errors.PhaseAdapt, errors.KindOther).
			Path(path...).
			Detail("missing WIT type").
			Build()
	}
	return descriptor.Ref{}, unsupported(path, "WIT type %T", t)
}

func (a *Adapter) typeDef(td *wit.TypeDef, path []string) (descriptor.Ref, error) {
	if id, ok := a.cache[td]; ok {
		return descriptor.To(id), nil
	}
	if td.Name != nil {
		path = append(append([]string{}, path...), *td.Name)
	}

	var (
		t   descriptor.Type
		err error
	)
	switch kind := td.Kind.(type) {
	case *wit.Record:
		t, err = a.record(kind, path)
	case *wit.Tuple:
		t, err = a.tuple(kind, path)
	case *wit.Variant:
		t, err = a.variant(kind, path)
	case *wit.Enum:
		t, err = a.enum(kind, path)
	case *wit.Option:
		t, err = a.option(kind, path)
	case *wit.Result:
		t, err = a.result(kind, path)
	case *wit.List, *wit.Flags, *wit.Own, *wit.Borrow:
		return descriptor.Ref{}, unsupported(path, "WIT %T", kind)
	case wit.Type:
		return a.ref(kind, path)
	default:
		return descriptor.Ref{}, unsupported(path, "WIT type definition %T", kind)
	}
	if err != nil {
		return descriptor.Ref{}, err
	}

	id, err := a.register(td, t)
	if err != nil {
		return descriptor.Ref{}, err
	}
	a.cache[td] = id
	return descriptor.To(id), nil
}

// register names t and adds it to the registry. Derived names describe the
// whole structure, so an existing type with the same derived name is reused.
func (a *Adapter) register(td *wit.TypeDef, t descriptor.Type) (descriptor.TypeID, error) {
	if td.Name == nil {
		if id, ok := a.reg.Lookup(t.Name); ok {
			return id, nil
		}
	} else {
		base := *td.Name
		t.Name = base
		for n := 2; ; n++ {
			if _, taken := a.reg.Lookup(t.Name); !taken {
				break
			}
			t.Name = base + "-" + strconv.Itoa(n)
		}
	}

	id, err := a.reg.Register(t)
	if err != nil {
		return descriptor.NoType, err
	}
	Logger().Debug("adapted WIT type",
		zap.String("type", t.Name),
		zap.Uint32("id", uint32(id)),
		zap.Stringer("kind", t.Kind))
	return id, nil
}

func (a *Adapter) record(r *wit.Record, path []string) (descriptor.Type, error) {
	if len(r.Fields) == 0 {
		return descriptor.Type{}, unsupported(path, "empty record")
	}
	fields := make([]descriptor.Field, len(r.Fields))
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		ref, err := a.ref(f.Type, childPath(path, f.Name))
		if err != nil {
			return descriptor.Type{}, err
		}
		fields[i] = descriptor.F(f.Name, ref)
		names[i] = f.Name + ": " + a.refName(ref)
	}
	return descriptor.Product(derived("record", names...), fields...), nil
}

func (a *Adapter) tuple(tp *wit.Tuple, path []string) (descriptor.Type, error) {
	if len(tp.Types) == 0 {
		return descriptor.Type{}, unsupported(path, "empty tuple")
	}
	refs, names, err := a.refs(tp.Types, path)
	if err != nil {
		return descriptor.Type{}, err
	}
	return descriptor.TupleProduct(derived("tuple", names...), refs...), nil
}

func (a *Adapter) variant(v *wit.Variant, path []string) (descriptor.Type, error) {
	variants := make([]descriptor.Variant, len(v.Cases))
	names := make([]string, len(v.Cases))
	for i, c := range v.Cases {
		if c.Type == nil {
			variants[i] = descriptor.UnitVariant(c.Name)
			names[i] = c.Name
			continue
		}
		ref, err := a.ref(c.Type, childPath(path, c.Name))
		if err != nil {
			return descriptor.Type{}, err
		}
		variants[i] = descriptor.TupleVariant(c.Name, ref)
		names[i] = c.Name + "(" + a.refName(ref) + ")"
	}
	return descriptor.Sum(derived("variant", names...), variants...), nil
}

func (a *Adapter) enum(e *wit.Enum, path []string) (descriptor.Type, error) {
	variants := make([]descriptor.Variant, len(e.Cases))
	names := make([]string, len(e.Cases))
	for i, c := range e.Cases {
		variants[i] = descriptor.UnitVariant(c.Name)
		names[i] = c.Name
	}
	return descriptor.Sum(derived("enum", names...), variants...), nil
}

func (a *Adapter) option(o *wit.Option, path []string) (descriptor.Type, error) {
	ref, err := a.ref(o.Type, childPath(path, "some"))
	if err != nil {
		return descriptor.Type{}, err
	}
	return descriptor.Sum(derived("option", a.refName(ref)),
		descriptor.UnitVariant("none"),
		descriptor.TupleVariant("some", ref),
	), nil
}

func (a *Adapter) result(r *wit.Result, path []string) (descriptor.Type, error) {
	ok, okName, err := a.payload("ok", r.OK, path)
	if err != nil {
		return descriptor.Type{}, err
	}
	fail, errName, err := a.payload("err", r.Err, path)
	if err != nil {
		return descriptor.Type{}, err
	}
	return descriptor.Sum(derived("result", okName, errName), ok, fail), nil
}

func (a *Adapter) payload(name string, t wit.Type, path []string) (descriptor.Variant, string, error) {
	if t == nil {
		return descriptor.UnitVariant(name), "_", nil
	}
	ref, err := a.ref(t, childPath(path, name))
	if err != nil {
		return descriptor.Variant{}, "", err
	}
	return descriptor.TupleVariant(name, ref), a.refName(ref), nil
}

func (a *Adapter) refs(types []wit.Type, path []string) ([]descriptor.Ref, []string, error) {
	refs := make([]descriptor.Ref, len(types))
	names := make([]string, len(types))
	for i, t := range types {
		ref, err := a.ref(t, childPath(path, "#"+strconv.Itoa(i)))
		if err != nil {
			return nil, nil, err
		}
		refs[i] = ref
		names[i] = a.refName(ref)
	}
	return refs, names, nil
}

// refName is the name a reference contributes to a derived type name.
func (a *Adapter) refName(ref descriptor.Ref) string {
	if ref.ID != descriptor.NoType {
		if t, ok := a.reg.Type(ref.ID); ok {
			return t.Name
		}
	}
	return ref.String()
}

func derived(kind string, args ...string) string {
	return kind + "<" + strings.Join(args, ", ") + ">"
}

func childPath(path []string, name string) []string {
	return append(append([]string{}, path...), name)
}

func unsupported(path []string, format string, args ...any) error {
	return errors.New(errors.PhaseAdapt, errors.KindOther).
		Path(path...).
		Detail("unsupported: "+format, args...).
		Build()
}
