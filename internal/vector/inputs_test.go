package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vecwrap/internal/ndarray"
	"github.com/roach88/vecwrap/internal/native"
)

func resetNative(t *testing.T) {
	t.Helper()
	native.Reset()
	t.Cleanup(func() {
		assert.Equal(t, 0, native.Trcdep())
		native.Reset()
	})
}

func TestNewInputsCount(t *testing.T) {
	_, err := NewInputs("vadd_vector", []any{1.0}, 2)
	require.Error(t, err)
	assert.True(t, IsArgError(err))
	assert.Equal(t, "vadd_vector: expected 2 arguments, got 1", err.Error())
}

func TestInputsFloat(t *testing.T) {
	resetNative(t)

	in, err := NewInputs("vnorm_vector", []any{
		[]float64{1, 2, 3},
		[][]float64{{1, 0, 0}, {0, 1, 0}},
		2.0,
	}, 3)
	require.NoError(t, err)

	data, dims, err := in.Float(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, dims)
	assert.Equal(t, []float64{1, 2, 3}, data)

	data, dims, err = in.Float(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, dims)
	assert.Len(t, data, 6)

	_, dims, err = in.Float(2, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, dims)
}

func TestInputsFloatBadRank(t *testing.T) {
	resetNative(t)

	in, err := NewInputs("vnorm_vector", []any{ndarray.Zeros[float64](2, 2, 3)}, 1)
	require.NoError(t, err)

	_, _, err = in.Float(0, 2)
	assert.ErrorIs(t, err, native.ErrFailed)
	assert.Equal(t, "SPICE(INVALIDARRAYSHAPE)", native.Getmsg(native.Short))
	assert.Equal(t, "Invalid array shape (2, 2, 3) for input 1 of vnorm_vector: rank 1 or 2 is required", native.Getmsg(native.Long))
}

func TestInputsFloatEmpty(t *testing.T) {
	resetNative(t)

	in, err := NewInputs("vnorm_vector", []any{ndarray.Zeros[float64](0, 3)}, 1)
	require.NoError(t, err)

	_, _, err = in.Float(0, 2)
	assert.ErrorIs(t, err, native.ErrFailed)
	assert.Contains(t, native.Getmsg(native.Long), "Empty input array")
}

func TestInputsFloatRaggedAndText(t *testing.T) {
	resetNative(t)

	in, err := NewInputs("vnorm_vector", []any{[][]float64{{1, 2, 3}, {1}}, "abc"}, 2)
	require.NoError(t, err)

	_, _, err = in.Float(0, 2)
	assert.ErrorIs(t, err, native.ErrFailed)
	assert.Equal(t, "Ragged input array for input 1 of vnorm_vector", native.Getmsg(native.Long))
	native.Reset()

	_, _, err = in.Float(1, 2)
	assert.ErrorIs(t, err, native.ErrFailed)
	assert.False(t, IsArgError(err))
	assert.Equal(t, "SPICE(INVALIDARRAYSHAPE)", native.Getmsg(native.Short))
	assert.Equal(t, "Ragged input array for input 2 of vnorm_vector", native.Getmsg(native.Long))
}

func TestInputsScalars(t *testing.T) {
	in, err := NewInputs("convrt", []any{3, "km", true, 2.0, 2.5}, 5)
	require.NoError(t, err)

	n, err := in.Int(0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	s, err := in.String(1)
	require.NoError(t, err)
	assert.Equal(t, "km", s)

	b, err := in.Bool(2)
	require.NoError(t, err)
	assert.True(t, b)

	n, err = in.Int(3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = in.Int(4)
	assert.True(t, IsArgError(err))
	_, err = in.String(0)
	assert.True(t, IsArgError(err))
	_, err = in.Bool(1)
	assert.EqualError(t, err, "convrt: argument 2: expected bool, got string")
}
