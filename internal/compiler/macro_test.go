package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vecwrap/internal/ir"
)

func TestParseMacroReturn(t *testing.T) {
	sig, err := ParseMacro("VECTORIZE_dX__RETURN_d")
	require.NoError(t, err)

	assert.True(t, sig.Return)
	assert.Equal(t, "dX__RETURN_d", sig.Family())
	require.Len(t, sig.Inputs, 1)
	assert.Equal(t, "in21", sig.Inputs[0].Name)
	assert.Equal(t, 2, sig.Inputs[0].Rank)
	assert.Equal(t, []string{"in21Dim1", "in21Dim2"}, sig.Inputs[0].DimNames)
	require.Len(t, sig.Outputs, 1)
	assert.Equal(t, "out11", sig.Outputs[0].Name)
	assert.Equal(t, []string{"maxdim"}, sig.Outputs[0].DimValues)
	assert.Empty(t, sig.Params)
}

func TestParseMacroRepeatAndCounters(t *testing.T) {
	sig, err := ParseMacro("VECTORIZE_3d_dX_2s__dN")
	require.NoError(t, err)

	var names []string
	for _, in := range sig.Inputs {
		names = append(names, in.Name)
	}
	assert.Equal(t, []string{"in11", "in12", "in13", "in21", "str1", "str2"}, names)
	assert.Equal(t, []string{"N"}, sig.Params)
	assert.Equal(t, []string{"maxdim", "N"}, sig.Outputs[0].DimValues)
	assert.Len(t, sig.Sizers(), 4)
}

func TestParseMacroMutableInputsGetDistinctNames(t *testing.T) {
	sig, err := ParseMacro("VECTORIZE_dX_eX__dN")
	require.NoError(t, err)

	assert.Equal(t, "in21", sig.Inputs[0].Name)
	assert.Equal(t, "in22", sig.Inputs[1].Name)
	assert.False(t, sig.Inputs[0].Mutable)
	assert.True(t, sig.Inputs[1].Mutable)
}

func TestParseMacroVariableDims(t *testing.T) {
	sig, err := ParseMacro("VECTORIZE_di_di__di")
	require.NoError(t, err)

	assert.True(t, sig.Inputs[0].Variable)
	// The last input defining a letter wins.
	assert.Equal(t, []string{"maxdim", "in22Dim2"}, sig.Outputs[0].DimValues)
	assert.Empty(t, sig.Params)
}

func TestParseMacroScalarTokens(t *testing.T) {
	sig, err := ParseMacro("VECTORIZE_dX_i_b__i_b")
	require.NoError(t, err)

	assert.Equal(t, "k1", sig.Inputs[1].Name)
	assert.Equal(t, 0, sig.Inputs[1].Rank)
	assert.Equal(t, "b1", sig.Inputs[2].Name)
	assert.Equal(t, "int1", sig.Outputs[0].Name)
	assert.Equal(t, "bool1", sig.Outputs[1].Name)
	assert.Equal(t, 1, sig.Outputs[1].Rank)
	assert.Len(t, sig.Sizers(), 1)
}

func TestParseMacroParamsDeduplicated(t *testing.T) {
	sig, err := ParseMacro("VECTORIZE_dXY__dMN_dN")
	require.NoError(t, err)
	assert.Equal(t, []string{"M", "N"}, sig.Params)

	sig, err = ParseMacro("VECTORIZE_dXY__dNN")
	require.NoError(t, err)
	assert.Equal(t, []string{"N"}, sig.Params)
	assert.Equal(t, []string{"maxdim", "N", "N"}, sig.Outputs[0].DimValues)
}

func TestParseMacroErrors(t *testing.T) {
	tests := []struct {
		name  string
		macro string
		want  string
	}{
		{"prefix", "VEC_dX__d", "must start with"},
		{"no separator", "VECTORIZE_dX_d", "exactly one"},
		{"two separators", "VECTORIZE_dX__d__d", "exactly one"},
		{"empty token", "VECTORIZE_dX___d", "empty token"},
		{"bad input", "VECTORIZE_q__d", "unrecognized input"},
		{"bad output", "VECTORIZE_dX__s", "unrecognized output"},
		{"mixed case", "VECTORIZE_dXy__d", "mixed case"},
		{"undefined letter", "VECTORIZE_dX__dj", "not defined"},
		{"fixed letter", "VECTORIZE_dX__dX", "must be one of"},
		{"unsorted", "VECTORIZE_dX__dN_dM", "not sorted"},
		{"no numeric input", "VECTORIZE_s__d", "floating-point input"},
		{"return arity", "VECTORIZE_dX__RETURN_d_d", "RETURN"},
		{"return rank", "VECTORIZE_dX__RETURN_dN", "RETURN"},
		{"bare repeat", "VECTORIZE_2__d", "repeat count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMacro(tt.macro)
			require.Error(t, err)
			var me *MacroError
			require.ErrorAs(t, err, &me)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseMacroFullReturnRemainder(t *testing.T) {
	sig, err := ParseMacro("VECTORIZE_d_2s__RETURN_d")
	require.NoError(t, err)
	assert.True(t, sig.Return)
	assert.Equal(t, []ir.MacroArg{{
		Key:       "d",
		Name:      "out11",
		Rank:      1,
		DimNames:  []string{"out11Dim1"},
		DimValues: []string{"maxdim"},
	}}, sig.Outputs)
}
