package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vecwrap/internal/mathlib"
)

func runDescribeCmd(t *testing.T, format, name string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewDescribeCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{name})
	err := cmd.Execute()
	return buf.String(), err
}

func variantNames(vs []VariantInfo) []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	return names
}

func defaultVariant(t *testing.T, vs []VariantInfo) VariantInfo {
	t.Helper()
	var found []VariantInfo
	for _, v := range vs {
		if v.Default {
			found = append(found, v)
		}
	}
	require.Len(t, found, 1, "exactly one default")
	return found[0]
}

func TestDescribeVectorizedRoutine(t *testing.T) {
	reg, err := mathlib.NewRegistry()
	require.NoError(t, err)

	result, err := Describe(reg, "vnorm")
	require.NoError(t, err)
	assert.Equal(t, "vnorm", result.Routine)
	assert.Equal(t, "VECTORIZE_dX__RETURN_d", result.Vectorize)
	assert.Empty(t, result.Condition)
	assert.Equal(t, []string{"vnorm", "vnorm_vector", "vnorm_array"}, variantNames(result.Variants))

	def := defaultVariant(t, result.Variants)
	assert.Equal(t, "vnorm_array", def.Name)
	assert.Equal(t, "flag", def.Mode)
	assert.Equal(t, "array", def.Form)
	assert.Equal(t, "vnorm_array(v1: float[...,3]) -> (vnorm: float[...])", def.Signature)
	assert.Equal(t, "vnorm_vector(v1: float[_,3]) -> (vnorm: float[_])", result.Variants[1].Signature)
	assert.Equal(t, "vnorm(v1: float[3]) -> (vnorm: float)", result.Variants[0].Signature)
}

func TestDescribeErrorRoutine(t *testing.T) {
	reg, err := mathlib.NewRegistry()
	require.NoError(t, err)

	result, err := Describe(reg, "invert")
	require.NoError(t, err)
	assert.Equal(t, "SPICE(SINGULARMATRIX)", result.Condition)
	assert.Equal(t, []string{
		"invert", "invert_vector", "invert_array",
		"invert_error", "invert_vector_error", "invert_array_error",
	}, variantNames(result.Variants))
	assert.Equal(t, "invert_array_error", defaultVariant(t, result.Variants).Name)
}

func TestDescribeScalarOnlyRoutine(t *testing.T) {
	reg, err := mathlib.NewRegistry()
	require.NoError(t, err)

	// A suffixed name describes its base routine.
	result, err := Describe(reg, "bodn2c_flag")
	require.NoError(t, err)
	assert.Equal(t, "bodn2c", result.Routine)
	require.Len(t, result.Variants, 2)
	assert.Equal(t, "bodn2c(name: body_name) -> (code: body_code, found: bool)", result.Variants[0].Signature)
	assert.Equal(t, "bodn2c_error(name: body_name) -> (code: body_code)", result.Variants[1].Signature)
	assert.True(t, result.Variants[1].Default)
}

func TestDescribeCommandText(t *testing.T) {
	out, err := runDescribeCmd(t, "text", "vnorm")
	require.NoError(t, err)
	assert.Contains(t, out, "vnorm - Magnitude of a 3-vector\n")
	assert.Contains(t, out, "  macro: VECTORIZE_dX__RETURN_d\n")
	assert.Contains(t, out, "* vnorm_array ")
	assert.NotContains(t, out, "raises:")
}

func TestDescribeCommandJSON(t *testing.T) {
	out, err := runDescribeCmd(t, "json", "bodn2c")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   DescribeResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "SPICE(BODYNAMENOTFOUND)", resp.Data.Condition)
	assert.Len(t, resp.Data.Variants, 2)
}

func TestDescribeUnknownRoutine(t *testing.T) {
	out, err := runDescribeCmd(t, "text", "nosuch")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E008]")
	assert.Contains(t, out, `unknown routine "nosuch"`)
}
