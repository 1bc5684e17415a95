package codec

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/bytecode/codec/internal/types"
	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/errors"
)

// Registry is an arena of type descriptors addressed by TypeID.
//
// A type may only reference types registered before it, so the descriptor
// graph is acyclic by construction. Codecs are compiled lazily, once per
// type, on first use. A Registry is safe for concurrent use.
type Registry struct {
	logger  *zap.Logger
	binder  *binder
	byName  map[string]descriptor.TypeID
	entries []*entry
	mu      sync.RWMutex
}

type entry struct {
	ct   *types.CompiledType
	err  error
	desc descriptor.Type
	once sync.Once
	id   descriptor.TypeID
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration and compilation events.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		logger: Logger(),
		binder: &binder{},
		byName: make(map[string]descriptor.TypeID),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Register validates t and adds a copy of it to the arena.
//
// Registration fails when t is invalid on its own (see descriptor.Type.Validate),
// when its name is taken, or when a field references a TypeID that is not
// registered yet.
func (r *Registry) Register(t descriptor.Type) (descriptor.TypeID, error) {
	if err := t.Validate(); err != nil {
		r.logger.Warn("rejected type", zap.String("type", t.Name), zap.Error(err))
		return descriptor.NoType, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byName[t.Name]; dup {
		err := errors.InvalidDescriptor(t.Name, "type already registered")
		r.logger.Warn("rejected type", zap.String("type", t.Name), zap.Error(err))
		return descriptor.NoType, err
	}

	var refErr error
	t.Refs(func(ref descriptor.Ref) {
		if refErr != nil || ref.ID == descriptor.NoType {
			return
		}
		if int(ref.ID) > len(r.entries) {
			refErr = errors.InvalidDescriptor(t.Name, "reference to unregistered type %s", ref)
		}
	})
	if refErr != nil {
		r.logger.Warn("rejected type", zap.String("type", t.Name), zap.Error(refErr))
		return descriptor.NoType, refErr
	}

	id := descriptor.TypeID(len(r.entries) + 1)
	r.entries = append(r.entries, &entry{id: id, desc: t.Clone()})
	r.byName[t.Name] = id

	r.logger.Debug("registered type",
		zap.String("type", t.Name),
		zap.Uint32("id", uint32(id)),
		zap.Stringer("kind", t.Kind),
		zap.Int("variants", len(t.Variants)),
		zap.Int("fields", len(t.Fields)))

	return id, nil
}

// MustRegister is like Register but panics on error. It is meant for
// package-level type tables.
func (r *Registry) MustRegister(t descriptor.Type) descriptor.TypeID {
	id, err := r.Register(t)
	if err != nil {
		panic(err)
	}
	return id
}

// Lookup returns the TypeID registered under name.
func (r *Registry) Lookup(name string) (descriptor.TypeID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	return id, ok
}

// Type returns a copy of the descriptor registered as id.
func (r *Registry) Type(id descriptor.TypeID) (descriptor.Type, bool) {
	e, ok := r.entry(id)
	if !ok {
		return descriptor.Type{}, false
	}
	return e.desc.Clone(), true
}

// IDs returns every registered TypeID in registration order.
func (r *Registry) IDs() []descriptor.TypeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]descriptor.TypeID, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.id
	}
	return ids
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Codec returns the codec of the type registered as id, compiling it on
// first use.
func (r *Registry) Codec(id descriptor.TypeID) (*Codec, error) {
	ct, err := r.compiled(id)
	if err != nil {
		return nil, err
	}
	return &Codec{ct: ct, binder: r.binder}, nil
}

// CodecByName returns the codec of the type registered under name.
func (r *Registry) CodecByName(name string) (*Codec, error) {
	id, ok := r.Lookup(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseCompile, "type", name)
	}
	return r.Codec(id)
}

func (r *Registry) entry(id descriptor.TypeID) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id == descriptor.NoType || int(id) > len(r.entries) {
		return nil, false
	}
	return r.entries[id-1], true
}

func (r *Registry) compiled(id descriptor.TypeID) (*types.CompiledType, error) {
	e, ok := r.entry(id)
	if !ok {
		return nil, errors.New(errors.PhaseCompile, errors.KindOther).
			Value(id).
			Detail("unknown type id %d", id).
			Build()
	}
	e.once.Do(func() {
		e.ct, e.err = r.compile(e)
		if e.err != nil {
			r.logger.Warn("compile failed", zap.String("type", e.desc.Name), zap.Error(e.err))
			return
		}
		r.logger.Debug("compiled type",
			zap.String("type", e.desc.Name),
			zap.Int("min_size", e.ct.MinSize),
			zap.Int("max_size", e.ct.MaxSize))
	})
	return e.ct, e.err
}
