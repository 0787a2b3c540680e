package ndarray

import (
	"fmt"
	"slices"
)

// BroadcastShapes combines shapes with right-aligned broadcasting rules.
// Axes must be equal or one of them must be 1.
func BroadcastShapes(shapes ...[]int) ([]int, error) {
	rank := 0
	for _, s := range shapes {
		rank = max(rank, len(s))
	}
	out := make([]int, rank)
	for i := range out {
		out[i] = 1
	}
	for _, s := range shapes {
		off := rank - len(s)
		for i, d := range s {
			cur := out[off+i]
			switch {
			case d == cur || d == 1:
			case cur == 1:
				out[off+i] = d
			default:
				return nil, fmt.Errorf("%w: %s", ErrShape, FormatShapes(shapes))
			}
		}
	}
	return out, nil
}

// BroadcastTo returns a contiguous copy of a expanded to shape.
func BroadcastTo[T Elem](a *Array[T], shape []int) (*Array[T], error) {
	if len(shape) < len(a.shape) {
		return nil, fmt.Errorf("%w: cannot broadcast %s to %s", ErrShape, FormatShape(a.shape), FormatShape(shape))
	}
	off := len(shape) - len(a.shape)
	strides := make([]int, len(shape))
	stride := 1
	for i := len(a.shape) - 1; i >= 0; i-- {
		d := a.shape[i]
		switch {
		case d == shape[off+i]:
			strides[off+i] = stride
		case d == 1:
			strides[off+i] = 0
		default:
			return nil, fmt.Errorf("%w: cannot broadcast %s to %s", ErrShape, FormatShape(a.shape), FormatShape(shape))
		}
		stride *= d
	}

	out := make([]T, Size(shape))
	if len(out) == 0 {
		return &Array[T]{shape: slices.Clone(shape), data: out}, nil
	}
	idx := make([]int, len(shape))
	src := 0
	for k := range out {
		out[k] = a.data[src]
		// Odometer increment over the output index.
		for ax := len(shape) - 1; ax >= 0; ax-- {
			idx[ax]++
			src += strides[ax]
			if idx[ax] < shape[ax] {
				break
			}
			src -= strides[ax] * idx[ax]
			idx[ax] = 0
		}
	}
	return &Array[T]{shape: slices.Clone(shape), data: out}, nil
}
