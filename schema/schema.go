package schema

// File is a schema document: a list of type declarations in any order.
type File struct {
	Types []TypeDecl `yaml:"types" toml:"types" json:"types" cbor:"types"`
}

// TypeDecl declares one product or sum. Exactly one of Product and Sum is
// set.
type TypeDecl struct {
	Name    string        `yaml:"name" toml:"name" json:"name" cbor:"name"`
	Doc     string        `yaml:"doc,omitempty" toml:"doc,omitempty" json:"doc,omitempty" cbor:"doc,omitempty"`
	Product []FieldDecl   `yaml:"product,omitempty" toml:"product,omitempty" json:"product,omitempty" cbor:"product,omitempty"`
	Sum     []VariantDecl `yaml:"sum,omitempty" toml:"sum,omitempty" json:"sum,omitempty" cbor:"sum,omitempty"`
}

// VariantDecl declares one variant. Tuple lists unnamed field types, Fields
// named fields; a variant with neither carries no payload.
type VariantDecl struct {
	Name   string      `yaml:"name" toml:"name" json:"name" cbor:"name"`
	Tuple  []string    `yaml:"tuple,omitempty" toml:"tuple,omitempty" json:"tuple,omitempty" cbor:"tuple,omitempty"`
	Fields []FieldDecl `yaml:"fields,omitempty" toml:"fields,omitempty" json:"fields,omitempty" cbor:"fields,omitempty"`
}

// FieldDecl declares one field. Type is a primitive name (u8, s32, bool,
// ...) or the name of another declared type. Name is empty for tuple
// products.
type FieldDecl struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty" cbor:"name,omitempty"`
	Type string `yaml:"type" toml:"type" json:"type" cbor:"type"`
}

// Lookup returns the declaration with the given name.
func (f *File) Lookup(name string) (*TypeDecl, bool) {
	for i := range f.Types {
		if f.Types[i].Name == name {
			return &f.Types[i], true
		}
	}
	return nil, false
}

// IsSum reports whether the declaration is a sum.
func (d *TypeDecl) IsSum() bool { return len(d.Sum) > 0 }

// refs returns the declared-type names d depends on, in field order.
func (d *TypeDecl) refs() []string {
	var out []string
	for _, f := range d.Product {
		out = append(out, f.Type)
	}
	for _, v := range d.Sum {
		out = append(out, v.Tuple...)
		for _, f := range v.Fields {
			out = append(out, f.Type)
		}
	}
	return out
}
