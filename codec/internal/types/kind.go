package types

type Kind uint8

const (
	KindPrimitive Kind = iota
	KindProduct
	KindSum
	KindExternal
)

var kindNames = [...]string{
	KindPrimitive: "primitive",
	KindProduct:   "product",
	KindSum:       "sum",
	KindExternal:  "external",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsComposite reports whether values of k are built from fields.
func (k Kind) IsComposite() bool {
	return k == KindProduct || k == KindSum
}
