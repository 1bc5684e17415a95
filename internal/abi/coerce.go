package abi

import (
	"math"
	"reflect"
)

// CoerceToUint64 handles JSON and YAML decoded numbers (float64, int) and
// every Go integer type. Negative and fractional inputs are rejected.
func CoerceToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		// 2^64 is the first float64 above MaxUint64
		if v >= 0 && v < 18446744073709551616.0 && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < 18446744073709551616.0 && f == math.Trunc(f) {
			return uint64(f), true
		}
	}
	return coerceReflectUint(value)
}

// CoerceToInt64 is the signed counterpart of CoerceToUint64.
func CoerceToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= -9223372036854775808.0 && v < 9223372036854775808.0 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= -9223372036854775808.0 && f < 9223372036854775808.0 && f == math.Trunc(f) {
			return int64(f), true
		}
	}
	return coerceReflectInt(value)
}

// CoerceToUnsigned coerces value into an unsigned integer of the given bit
// width.
func CoerceToUnsigned(value any, bits int) (uint64, bool) {
	v, ok := CoerceToUint64(value)
	if !ok {
		return 0, false
	}
	if bits < 64 && v > (uint64(1)<<bits)-1 {
		return 0, false
	}
	return v, true
}

// CoerceToSigned coerces value into a signed integer of the given bit width.
func CoerceToSigned(value any, bits int) (int64, bool) {
	v, ok := CoerceToInt64(value)
	if !ok {
		return 0, false
	}
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if v < -limit || v >= limit {
			return 0, false
		}
	}
	return v, true
}

// CoerceToBool accepts bool and named bool types.
func CoerceToBool(value any) (bool, bool) {
	if b, ok := value.(bool); ok {
		return b, true
	}
	rv := reflect.ValueOf(value)
	if rv.IsValid() && rv.Kind() == reflect.Bool {
		return rv.Bool(), true
	}
	return false, false
}

// named integer types such as `type Reg uint8`
func coerceReflectUint(value any) (uint64, bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i := rv.Int(); i >= 0 {
			return uint64(i), true
		}
	}
	return 0, false
}

func coerceReflectInt(value any) (int64, bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return int64(u), true
		}
	}
	return 0, false
}
