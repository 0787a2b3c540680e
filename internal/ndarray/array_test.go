package ndarray

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatShape(t *testing.T) {
	assert.Equal(t, "()", FormatShape(nil))
	assert.Equal(t, "(3,)", FormatShape([]int{3}))
	assert.Equal(t, "(2, 4)", FormatShape([]int{2, 4}))
	assert.Equal(t, "(3,), (4,)", FormatShapes([][]int{{3}, {4}}))
}

func TestNewChecksSize(t *testing.T) {
	_, err := New([]float64{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, ErrShape)

	a, err := New([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, 2, a.Rank())
	assert.Equal(t, 6.0, a.At(1, 2))
	assert.Equal(t, 2.0, a.At(0, 1))
}

func TestReshape(t *testing.T) {
	a := MustNew([]float64{1, 2, 3, 4, 5, 6}, 6)

	b, err := a.Reshape(-1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, b.Shape())

	c, err := b.Reshape(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, c.At(1, 1))

	_, err = a.Reshape(4, -1)
	assert.ErrorIs(t, err, ErrShape)

	_, err = a.Reshape(-1, -1)
	assert.ErrorIs(t, err, ErrShape)

	empty := Zeros[float64](0, 3)
	d, err := empty.Reshape(-1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, d.Shape())
}

func TestScalarAndItem(t *testing.T) {
	s := Scalar(2.5)
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, 2.5, s.Item())
	assert.Equal(t, 2.5, s.At())
	assert.Equal(t, 2.5, s.Nested())
}

func TestNested(t *testing.T) {
	a := MustNew([]int64{1, 2, 3, 4}, 2, 2)
	assert.Equal(t, []any{[]any{int64(1), int64(2)}, []any{int64(3), int64(4)}}, a.Nested())
}

func TestCopyIsDeep(t *testing.T) {
	a := MustNew([]float64{1, 2}, 2)
	b := a.Copy()
	b.Data()[0] = 9
	assert.Equal(t, 1.0, a.Data()[0])
}

func TestAllOnes(t *testing.T) {
	assert.True(t, AllOnes(nil))
	assert.True(t, AllOnes([]int{1, 1}))
	assert.False(t, AllOnes([]int{1, 2}))
	assert.False(t, AllOnes([]int{0}))
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(MustNew([]float64{1, 2, 3, 4.5}, 2, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `[[1,2],[3,4.5]]`, string(data))

	data, err = json.Marshal(Scalar(true))
	require.NoError(t, err)
	assert.Equal(t, `true`, string(data))
}
