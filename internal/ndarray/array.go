// Package ndarray provides the small dense N-d array needed to broadcast
// routine arguments: row-major storage, reshaping, right-aligned
// broadcasting and conversion from nested Go values.
package ndarray

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Elem is the set of element types an Array can hold.
type Elem interface {
	~float64 | ~int64 | ~bool
}

var (
	// ErrRagged is returned when nested input has inconsistent lengths.
	ErrRagged = errors.New("ndarray: ragged input")
	// ErrNotNumeric is returned for values that cannot become floats.
	ErrNotNumeric = errors.New("ndarray: not numeric")
	// ErrShape is returned for impossible reshapes or broadcasts.
	ErrShape = errors.New("ndarray: shape mismatch")
)

// Array is a dense row-major N-d array. A rank-0 array holds one element.
type Array[T Elem] struct {
	shape []int
	data  []T
}

// New wraps data with the given shape. The data is not copied.
func New[T Elem](data []T, shape ...int) (*Array[T], error) {
	if Size(shape) != len(data) {
		return nil, fmt.Errorf("%w: %d elements for shape %s", ErrShape, len(data), FormatShape(shape))
	}
	return &Array[T]{shape: slices.Clone(shape), data: data}, nil
}

// MustNew is like New but panics on error.
func MustNew[T Elem](data []T, shape ...int) *Array[T] {
	a, err := New(data, shape...)
	if err != nil {
		panic(err)
	}
	return a
}

// Zeros returns a zero-filled array.
func Zeros[T Elem](shape ...int) *Array[T] {
	return &Array[T]{shape: slices.Clone(shape), data: make([]T, Size(shape))}
}

// Scalar returns a rank-0 array.
func Scalar[T Elem](v T) *Array[T] {
	return &Array[T]{shape: []int{}, data: []T{v}}
}

// Shape returns a copy of the shape.
func (a *Array[T]) Shape() []int { return slices.Clone(a.shape) }

// Rank returns the number of axes.
func (a *Array[T]) Rank() int { return len(a.shape) }

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.data) }

// Data returns the backing slice.
func (a *Array[T]) Data() []T { return a.data }

// At returns the element at the given index.
func (a *Array[T]) At(idx ...int) T {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: %d indices for rank %d", len(idx), len(a.shape)))
	}
	off := 0
	for i, n := range idx {
		if n < 0 || n >= a.shape[i] {
			panic(fmt.Sprintf("ndarray: index %d out of range for axis %d", n, i))
		}
		off = off*a.shape[i] + n
	}
	return a.data[off]
}

// Item returns the only element of a size-1 array.
func (a *Array[T]) Item() T {
	if len(a.data) != 1 {
		panic(fmt.Sprintf("ndarray: Item on array of shape %s", FormatShape(a.shape)))
	}
	return a.data[0]
}

// Reshape returns a view with a new shape. One axis may be -1.
func (a *Array[T]) Reshape(shape ...int) (*Array[T], error) {
	out := slices.Clone(shape)
	infer := -1
	known := 1
	for i, d := range out {
		switch {
		case d == -1 && infer < 0:
			infer = i
		case d < 0:
			return nil, fmt.Errorf("%w: cannot reshape %s to %s", ErrShape, FormatShape(a.shape), FormatShape(shape))
		default:
			known *= d
		}
	}
	if infer >= 0 {
		if known == 0 {
			out[infer] = 0
		} else {
			if len(a.data)%known != 0 {
				return nil, fmt.Errorf("%w: cannot reshape %s to %s", ErrShape, FormatShape(a.shape), FormatShape(shape))
			}
			out[infer] = len(a.data) / known
		}
	}
	if Size(out) != len(a.data) {
		return nil, fmt.Errorf("%w: cannot reshape %s to %s", ErrShape, FormatShape(a.shape), FormatShape(shape))
	}
	return &Array[T]{shape: out, data: a.data}, nil
}

// Copy returns a deep copy.
func (a *Array[T]) Copy() *Array[T] {
	return &Array[T]{shape: slices.Clone(a.shape), data: slices.Clone(a.data)}
}

// Nested converts the array into nested []any for encoding. A rank-0 array
// becomes its element.
func (a *Array[T]) Nested() any {
	if len(a.shape) == 0 {
		return a.data[0]
	}
	return nest(a.shape, a.data)
}

// MarshalJSON encodes the array as nested JSON lists.
func (a *Array[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Nested())
}

func nest[T Elem](shape []int, data []T) any {
	out := make([]any, shape[0])
	if len(shape) == 1 {
		for i := range out {
			out[i] = data[i]
		}
		return out
	}
	step := Size(shape[1:])
	for i := range out {
		out[i] = nest(shape[1:], data[i*step:(i+1)*step])
	}
	return out
}

func (a *Array[T]) String() string {
	return fmt.Sprintf("array%s%v", FormatShape(a.shape), a.data)
}

// Size returns the number of elements of a shape.
func Size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// FormatShape renders a shape as a tuple: "()", "(3,)" or "(2, 4)".
func FormatShape(shape []int) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return "(" + strconv.Itoa(shape[0]) + ",)"
	}
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FormatShapes renders a list of shapes separated by ", ".
func FormatShapes(shapes [][]int) string {
	parts := make([]string, len(shapes))
	for i, s := range shapes {
		parts[i] = FormatShape(s)
	}
	return strings.Join(parts, ", ")
}

// AllOnes reports whether every axis has length one. True for rank 0.
func AllOnes(shape []int) bool {
	for _, d := range shape {
		if d != 1 {
			return false
		}
	}
	return true
}
