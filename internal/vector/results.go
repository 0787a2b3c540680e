package vector

import (
	"slices"

	"github.com/roach88/vecwrap/internal/ndarray"
)

// FloatResult copies an output buffer into a result value. dims[0] is the
// leading vector dimension; 0 means the call was not vectorized and the
// result is a single item. A single rank-0 item is returned as float64.
func FloatResult(data []float64, dims ...int) any {
	if dims[0] == 0 {
		item := dims[1:]
		if len(item) == 0 {
			return data[0]
		}
		return ndarray.MustNew(slices.Clone(data[:ndarray.Size(item)]), item...)
	}
	return ndarray.MustNew(slices.Clone(data[:ndarray.Size(dims)]), dims...)
}

// Clone copies input data that a routine may overwrite in place.
func Clone(data []float64) []float64 {
	return slices.Clone(data)
}

// IntResult is FloatResult for integer outputs.
func IntResult(data []int64, dim1 int) any {
	if dim1 == 0 {
		return data[0]
	}
	return ndarray.MustNew(slices.Clone(data[:dim1]), dim1)
}

// BoolResult is FloatResult for boolean outputs.
func BoolResult(data []bool, dim1 int) any {
	if dim1 == 0 {
		return data[0]
	}
	return ndarray.MustNew(slices.Clone(data[:dim1]), dim1)
}
