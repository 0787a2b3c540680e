package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/ndarray"
	"github.com/roach88/vecwrap/internal/native"
)

var vnormSig = &ir.Signature{
	Name:    "vnorm",
	Inputs:  []ir.ArgDesc{{Name: "v1", Kind: ir.KindNumeric, Type: "float[3]", ItemShape: []int{3}}},
	Outputs: []ir.ArgDesc{{Name: "value", Kind: ir.KindNumeric, Type: "float"}},
}

func recordingFunc(seen *[]any) Func {
	return func(args []any) ([]any, error) {
		*seen = append([]any{}, args...)
		return []any{1.0}, nil
	}
}

func TestScalarOfSqueezesUnitAxes(t *testing.T) {
	resetNative(t)

	var seen []any
	fn := ScalarOf("vnorm", vnormSig, recordingFunc(&seen))

	_, err := fn([]any{[][]float64{{1, 2, 3}}})
	require.NoError(t, err)
	a, ok := seen[0].(*ndarray.Array[float64])
	require.True(t, ok)
	assert.Equal(t, []int{3}, a.Shape())
}

func TestScalarOfRejectsArrays(t *testing.T) {
	resetNative(t)

	var seen []any
	fn := ScalarOf("vnorm", vnormSig, recordingFunc(&seen))

	_, err := fn([]any{[][]float64{{1, 2, 3}, {4, 5, 6}}})
	assert.ErrorIs(t, err, native.ErrFailed)
	assert.Nil(t, seen)
	assert.Equal(t, `Invalid array shape (2, 3) for input "v1" in module vnorm: (3) is required`, native.Getmsg(native.Long))
}

func TestCheckedValidatesFixedAxes(t *testing.T) {
	resetNative(t)

	var seen []any
	fn := Checked("vnorm_vector", vnormSig, recordingFunc(&seen))

	_, err := fn([]any{[][]float64{{1, 2, 3, 4}}})
	assert.ErrorIs(t, err, native.ErrFailed)
	assert.Equal(t, `Invalid array shape (1, 4) for input "v1" in module vnorm_vector: (_,3) is required`, native.Getmsg(native.Long))
	native.Reset()

	_, err = fn([]any{[][]float64{{1, 2, 3}, {4, 5, 6}}})
	require.NoError(t, err)
	require.Len(t, seen, 1)
}

func TestCheckedWildcard(t *testing.T) {
	resetNative(t)

	sig := &ir.Signature{
		Name:   "vnormg",
		Inputs: []ir.ArgDesc{{Name: "v1", Kind: ir.KindNumeric, Type: "float[*]", ItemShape: []int{0}}},
	}
	var seen []any
	fn := Checked("vnormg_vector", sig, recordingFunc(&seen))

	_, err := fn([]any{[][]float64{{1, 2, 3, 4, 5}}})
	require.NoError(t, err)

	_, err = fn([]any{2.0})
	assert.ErrorIs(t, err, native.ErrFailed)
	assert.Equal(t, `Invalid array shape () for input "v1" in module vnormg_vector: (_,*) is required`, native.Getmsg(native.Long))
}

func TestShapeWrappersCountArgs(t *testing.T) {
	var seen []any
	_, err := ScalarOf("vnorm", vnormSig, recordingFunc(&seen))(nil)
	assert.True(t, IsArgError(err))
	_, err = Checked("vnorm_vector", vnormSig, recordingFunc(&seen))(nil)
	assert.True(t, IsArgError(err))
}
