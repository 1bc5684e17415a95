// Package witdesc adapts WIT (WebAssembly Interface Type) definitions to
// descriptors.
//
// The mapping follows the shape of each definition:
//
//	bool, u8 ... s64   primitive field
//	record             product with named fields
//	tuple<...>         product with unnamed fields
//	variant            sum; cases with a payload become one-field tuple variants
//	enum               sum of unit variants
//	option<T>          sum none | some(T)
//	result<T, E>       sum ok(T) | err(E); a missing type gives a unit variant
//	type alias         the aliased type
//
// Strings, floats, chars, lists, flags and resource handles have no
// fixed-layout wire form here and are reported as unsupported in
// errors.PhaseAdapt.
package witdesc
