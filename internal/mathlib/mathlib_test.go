package mathlib

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vecwrap/internal/codegen"
	"github.com/roach88/vecwrap/internal/ndarray"
	"github.com/roach88/vecwrap/internal/native"
	"github.com/roach88/vecwrap/internal/registry"
	"github.com/roach88/vecwrap/internal/vector"
)

const tol = 1e-12

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	native.Reset()
	t.Cleanup(func() {
		assert.Equal(t, 0, native.Trcdep())
		native.Reset()
	})
	reg, err := NewRegistry(registry.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return reg
}

func call(t *testing.T, reg *registry.Registry, name string, args ...any) ([]any, error) {
	t.Helper()
	v, err := reg.Lookup(name)
	require.NoError(t, err)
	return v.Call(context.Background(), args...)
}

func floats(t *testing.T, v any) *ndarray.Array[float64] {
	t.Helper()
	a, ok := v.(*ndarray.Array[float64])
	require.True(t, ok, "expected float array, got %T", v)
	return a
}

func TestNatives(t *testing.T) {
	assert.Equal(t, 5.0, vnorm([]float64{3, 4, 0}))
	assert.Equal(t, 32.0, vdot([]float64{1, 2, 3}, []float64{4, 5, 6}))

	out := make([]float64, 3)
	vcrss([]float64{1, 0, 0}, []float64{0, 1, 0}, out)
	assert.Equal(t, []float64{0, 0, 1}, out)
	vsub([]float64{5, 5, 5}, []float64{1, 2, 3}, out)
	assert.Equal(t, []float64{4, 3, 2}, out)
	vscl(2, []float64{1, 2, 3}, out)
	assert.Equal(t, []float64{2, 4, 6}, out)

	assert.InDelta(t, math.Pi/2, vsep([]float64{1, 0, 0}, []float64{0, 0, 3}), tol)
	assert.InDelta(t, math.Pi, vsep([]float64{1, 0, 0}, []float64{-2, 0, 0}), tol)
	assert.Zero(t, vsep([]float64{0, 0, 0}, []float64{1, 0, 0}))

	m := []float64{2, 0, 0, 0, 4, 0, 0, 0, 8}
	inv := make([]float64, 9)
	invert(m, inv)
	assert.Equal(t, []float64{0.5, 0, 0, 0, 0.25, 0, 0, 0, 0.125}, inv)
	invert(make([]float64, 9), inv)
	assert.Equal(t, make([]float64, 9), inv)

	var r, colat, slon float64
	recsph([]float64{0, 3, 4}, &r, &colat, &slon)
	back := make([]float64, 3)
	sphrec(r, colat, slon, back)
	assert.InDeltaSlice(t, []float64{0, 3, 4}, back, tol)

	rot := make([]float64, 9)
	axisar([]float64{0, 0, 2}, math.Pi/2, rot)
	assert.True(t, isrot(rot, 1e-9, 1e-9))
	v := make([]float64, 3)
	mxv(rot, []float64{1, 0, 0}, v)
	assert.InDeltaSlice(t, []float64{0, 1, 0}, v, tol)

	assert.Equal(t, 3.0, vnormg([]float64{1, 2, 2, 0}, 4))
	assert.InDelta(t, math.Pi/180, rpd(), tol)
}

func TestUnitsAndBodies(t *testing.T) {
	native.Reset()
	defer native.Reset()

	assert.Equal(t, 1000.0, convrt(1, "km", "METERS"))
	assert.InDelta(t, math.Pi, convrt(180, "DEGREES", "RADIANS"), tol)
	assert.False(t, native.Failed())

	code, ok := bodn2c("  earth ")
	assert.True(t, ok)
	assert.Equal(t, int64(399), code)
	name, ok := bodc2n(301)
	assert.True(t, ok)
	assert.Equal(t, "MOON", name)
	_, ok = bodc2n(-999)
	assert.False(t, ok)
}

func TestCatalogMatchesVectors(t *testing.T) {
	cat, err := Catalog()
	require.NoError(t, err)
	require.Len(t, cat.Routines, 20)

	vecs := Vectors()
	for _, r := range cat.Routines {
		_, hasVec := vecs[r.Name]
		_, hasScalar := scalars[r.Name]
		assert.Equal(t, r.Vectorized(), hasVec, r.Name)
		assert.NotEqual(t, hasVec, hasScalar, r.Name)
	}
}

func TestGeneratedSourceIsCurrent(t *testing.T) {
	cat, err := Catalog()
	require.NoError(t, err)
	src, err := codegen.New("mathlib").Generate(cat)
	require.NoError(t, err)
	onDisk, err := os.ReadFile("vectorize_gen.go")
	require.NoError(t, err)
	assert.Equal(t, string(onDisk), string(src), "run go generate ./internal/mathlib")
}

func TestScalarAndArrayCalls(t *testing.T) {
	reg := newRegistry(t)

	out, err := call(t, reg, "vnorm", []float64{3, 4, 0})
	require.NoError(t, err)
	assert.Equal(t, 5.0, out[0])

	out, err = call(t, reg, "vnorm", [][]float64{{3, 4, 0}, {0, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 1}, floats(t, out[0]).Data())

	out, err = call(t, reg, "vscl", []float64{1, 2}, []float64{1, 1, 1})
	require.NoError(t, err)
	a := floats(t, out[0])
	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2}, a.Data())

	out, err = call(t, reg, "recsph", [][]float64{{0, 0, 2}, {1, 0, 0}})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []float64{2, 1}, floats(t, out[0]).Data())

	out, err = call(t, reg, "convrt", []float64{1, 2}, "KM", "M")
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 2000}, floats(t, out[0]).Data())

	out, err = call(t, reg, "rpd")
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/180, out[0], tol)
}

func TestWildcardRoutines(t *testing.T) {
	reg := newRegistry(t)

	out, err := call(t, reg, "vnormg", [][]float64{{3, 4}, {0, 2}})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 2}, floats(t, out[0]).Data())

	out, err = call(t, reg, "vaddg", []float64{1, 2, 3, 4}, []float64{1, 1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4, 5}, floats(t, out[0]).Data())

	_, err = call(t, reg, "vaddg", []float64{1, 2, 3}, []float64{1, 2, 3, 4})
	var nerr *native.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "SPICE(ARRAYSHAPEMISMATCH)", nerr.Short)
	assert.Equal(t, "Vector lengths 3 and 4 differ", nerr.Long)
	assert.Equal(t, "vaddg_array --> VADDG", nerr.Traceback)
}

func TestNativeFailureTraceback(t *testing.T) {
	reg := newRegistry(t)

	_, err := call(t, reg, "convrt", []float64{1, 2}, "FURLONGS", "M")
	var nerr *native.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "SPICE(UNITSNOTREC)", nerr.Short)
	assert.Equal(t, `The input unit "FURLONGS" is not recognized.`, nerr.Long)
	assert.Equal(t, "convrt_array --> CONVRT", nerr.Traceback)

	_, err = call(t, reg, "convrt", 1.0, "KM", "SECONDS")
	assert.True(t, native.IsCondition(err, "SPICE(INCOMPATIBLEUNITS)"))

	_, err = call(t, reg, "isrot", ndarray.Zeros[float64](3, 3), -1.0, 0.0)
	assert.True(t, native.IsCondition(err, "SPICE(VALUEOUTOFRANGE)"))
}

func TestErrorVariants(t *testing.T) {
	reg := newRegistry(t)

	_, err := call(t, reg, "invert", ndarray.Zeros[float64](3, 3))
	var nerr *native.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "SPICE(SINGULARMATRIX)", nerr.Short)
	assert.Equal(t, "singular matrix encountered; inverse failed", nerr.Long)
	assert.Equal(t, "invert_array_error --> invert_error", nerr.Traceback)

	out, err := call(t, reg, "invert_flag", ndarray.Zeros[float64](2, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 3}, floats(t, out[0]).Shape())

	_, err = call(t, reg, "bodn2c", "PLUTO-X")
	assert.EqualError(t, err, `SPICE(BODYNAMENOTFOUND) -- body name "PLUTO-X" not found in kernel pool`)
	_, err = call(t, reg, "bodc2n", 12345)
	assert.EqualError(t, err, `SPICE(BODYIDNOTFOUND) -- body code 12345 not found in kernel pool`)

	out, err = call(t, reg, "bodn2c_flag", "Moon")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(301), true}, out)
}

func TestOutputBuffersAreReleased(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer vector.SetAllocator(mem)()
	reg := newRegistry(t)

	_, err := call(t, reg, "vcrss", [][]float64{{1, 0, 0}, {0, 1, 0}}, []float64{0, 0, 1})
	require.NoError(t, err)
	_, err = call(t, reg, "unorm", [][]float64{{3, 4, 0}, {0, 0, 0}})
	require.NoError(t, err)
	_, err = call(t, reg, "convrt", []float64{1, 2}, "FURLONGS", "M")
	require.Error(t, err)
	mem.AssertSize(t, 0)
}

func TestAllocationFailure(t *testing.T) {
	defer vector.SetAllocator(vector.NewLimitAllocator(memory.NewGoAllocator(), 0))()
	reg := newRegistry(t)

	_, err := call(t, reg, "vnorm", [][]float64{{3, 4, 0}, {0, 0, 1}})
	var nerr *native.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "SPICE(MALLOCFAILURE)", nerr.Short)
	assert.Equal(t, "vnorm_array --> vnorm_vector", nerr.Traceback)
}
