package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsFloatShapes(t *testing.T) {
	tests := []struct {
		name  string
		input any
		shape []int
		data  []float64
	}{
		{"float", 1.5, []int{}, []float64{1.5}},
		{"int", 2, []int{}, []float64{2}},
		{"bool", true, []int{}, []float64{1}},
		{"float slice", []float64{1, 2, 3}, []int{3}, []float64{1, 2, 3}},
		{"int slice", []int{1, 2}, []int{2}, []float64{1, 2}},
		{"nested", [][]float64{{1, 2, 3}, {4, 5, 6}}, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6}},
		{"any nested", []any{[]any{1, 2.5}, []any{3, 4}}, []int{2, 2}, []float64{1, 2.5, 3, 4}},
		{"go array", [3]float64{7, 8, 9}, []int{3}, []float64{7, 8, 9}},
		{"empty", []float64{}, []int{0}, []float64{}},
		{"empty rows", [][]float64{{}}, []int{1, 0}, []float64{}},
		{"int array", MustNew([]int64{1, 2}, 2), []int{2}, []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := AsFloat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, a.Shape())
			assert.Equal(t, tt.data, a.Data())
		})
	}
}

func TestAsFloatReturnsSameArray(t *testing.T) {
	a := MustNew([]float64{1, 2}, 2)
	b, err := AsFloat(a)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestAsFloatRagged(t *testing.T) {
	_, err := AsFloat([][]float64{{1, 2, 3}, {4, 5}})
	assert.ErrorIs(t, err, ErrRagged)

	_, err = AsFloat([]any{1.0, []float64{2, 3}})
	assert.ErrorIs(t, err, ErrRagged)
}

func TestAsFloatNotNumeric(t *testing.T) {
	_, err := AsFloat("abc")
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = AsFloat([]any{1.0, "x"})
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = AsFloat(nil)
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestAsInt(t *testing.T) {
	a, err := AsInt([]any{1, 2.0, int64(3)})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, a.Data())

	_, err = AsInt(1.5)
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestShapeOf(t *testing.T) {
	shape, ok := ShapeOf([][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.True(t, ok)
	assert.Equal(t, []int{2, 3}, shape)

	shape, ok = ShapeOf(int64(7))
	assert.True(t, ok)
	assert.Empty(t, shape)

	_, ok = ShapeOf("KM")
	assert.False(t, ok)
	_, ok = ShapeOf([][]float64{{1}, {2, 3}})
	assert.False(t, ok)
}
