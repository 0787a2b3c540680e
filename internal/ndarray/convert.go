package ndarray

import (
	"fmt"
	"reflect"
)

// AsFloat converts a value into a float64 array.
//
// Accepted values are Go numbers and bools, *Array of any element type, and
// arbitrarily nested slices or arrays of those. Nested input must be
// rectangular; otherwise ErrRagged is returned. Strings and other values
// return ErrNotNumeric.
func AsFloat(v any) (*Array[float64], error) {
	switch x := v.(type) {
	case *Array[float64]:
		return x, nil
	case *Array[int64]:
		return mapArray(x, func(n int64) float64 { return float64(n) }), nil
	case *Array[bool]:
		return mapArray(x, func(b bool) float64 {
			if b {
				return 1
			}
			return 0
		}), nil
	case float64:
		return Scalar(x), nil
	case []float64:
		return &Array[float64]{shape: []int{len(x)}, data: x}, nil
	}

	rv := reflect.ValueOf(v)
	shape, err := inferShape(rv)
	if err != nil {
		return nil, err
	}
	data := make([]float64, 0, Size(shape))
	data = flatten(rv, data)
	return &Array[float64]{shape: shape, data: data}, nil
}

// AsInt converts a value into an int64 array. Floats must be integral.
func AsInt(v any) (*Array[int64], error) {
	if x, ok := v.(*Array[int64]); ok {
		return x, nil
	}
	f, err := AsFloat(v)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(f.data))
	for i, x := range f.data {
		n := int64(x)
		if float64(n) != x {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrNotNumeric, x)
		}
		out[i] = n
	}
	return &Array[int64]{shape: f.Shape(), data: out}, nil
}

func mapArray[S, T Elem](a *Array[S], fn func(S) T) *Array[T] {
	out := make([]T, len(a.data))
	for i, x := range a.data {
		out[i] = fn(x)
	}
	return &Array[T]{shape: a.Shape(), data: out}
}

func inferShape(rv reflect.Value) ([]int, error) {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil value", ErrNotNumeric)
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Float64, reflect.Float32,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Bool:
		return []int{}, nil
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		if n == 0 {
			return []int{0}, nil
		}
		first, err := inferShape(rv.Index(0))
		if err != nil {
			return nil, err
		}
		for i := 1; i < n; i++ {
			s, err := inferShape(rv.Index(i))
			if err != nil {
				return nil, err
			}
			if !equalShape(first, s) {
				return nil, ErrRagged
			}
		}
		return append([]int{n}, first...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotNumeric, rv.Type())
	}
}

func flatten(rv reflect.Value, out []float64) []float64 {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Float64, reflect.Float32:
		return append(out, rv.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return append(out, float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return append(out, float64(rv.Uint()))
	case reflect.Bool:
		if rv.Bool() {
			return append(out, 1)
		}
		return append(out, 0)
	default:
		for i := 0; i < rv.Len(); i++ {
			out = flatten(rv.Index(i), out)
		}
		return out
	}
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ShapeOf returns the shape v would have as an array. Values AsFloat
// rejects report false.
func ShapeOf(v any) ([]int, bool) {
	switch x := v.(type) {
	case *Array[float64]:
		return x.Shape(), true
	case *Array[int64]:
		return x.Shape(), true
	case *Array[bool]:
		return x.Shape(), true
	case string, nil:
		return nil, false
	}
	a, err := AsFloat(v)
	if err != nil {
		return nil, false
	}
	return a.Shape(), true
}
