package buffer

import (
	"math"
	"reflect"
)

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

// recordDims returns the array dimensions of t, outermost first, and whether
// the innermost element is numeric. Scalars have no dimensions.
func recordDims(t reflect.Type) ([]int, bool) {
	var dims []int
	for t.Kind() == reflect.Array {
		dims = append(dims, t.Len())
		t = t.Elem()
	}
	return dims, isNumericKind(t.Kind())
}

// fillValue is NaN for float scalars and the zero value for everything else.
func fillValue[E any](t reflect.Type) E {
	var v E
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		reflect.ValueOf(&v).Elem().SetFloat(math.NaN())
	}
	return v
}

func fill[E any](buf []E, v E) {
	for i := range buf {
		buf[i] = v
	}
}
