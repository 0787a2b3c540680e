package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vecwrap/internal/native"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]string{"routine": "vnorm"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"routine": "vnorm"}, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("SPICE(UNITSNOTREC)", "unit FURLONGS not recognized", []string{"convrt_array --> CONVRT"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SPICE(UNITSNOTREC)", resp.Error.Code)
	assert.Equal(t, "unit FURLONGS not recognized", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Success("All routines valid"))
	assert.Equal(t, "All routines valid\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Error("E005", "catalog directory not found", map[string]string{"dir": "x"}))
	assert.Contains(t, buf.String(), "Error [E005]: catalog directory not found")
	assert.NotContains(t, buf.String(), "Details:")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	require.NoError(t, formatter.Error("E001", "compilation failed", map[string]string{"file": "catalog.cue"}))
	assert.Contains(t, buf.String(), "Error [E001]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: errOut,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Compiling routine: %s", "vnorm")

			assert.Empty(t, out.String())
			if tt.wantLog {
				assert.Equal(t, "Compiling routine: vnorm\n", errOut.String())
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestGetErrWriterFallsBackToWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Writer: buf}
	assert.Same(t, buf, formatter.GetErrWriter())
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"exit_error", NewExitError(ExitCommandError, "bad dir"), ExitCommandError},
		{"wrapped", fmt.Errorf("outer: %w", NewExitError(ExitFailure, "scenario failed")), ExitFailure},
		{"plain", errors.New("boom"), ExitFailure},
		{"nil", nil, ExitSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestWrapExitError(t *testing.T) {
	inner := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to open database", inner)

	assert.Equal(t, "failed to open database: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "no cause", NewExitError(ExitFailure, "no cause").Error())
}

func TestOutputFormatter_ConditionText(t *testing.T) {
	nerr := &native.Error{
		Short:     "SPICE(UNITSNOTREC)",
		Long:      `The input unit "FURLONGS" is not recognized.`,
		Explain:   "A unit name was not recognized.",
		Traceback: "convrt_array --> CONVRT",
	}

	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}
	require.NoError(t, formatter.Condition(nerr, "s1"))
	assert.Equal(t, "Error [SPICE(UNITSNOTREC)]: The input unit \"FURLONGS\" is not recognized.\n"+
		"Traceback: convrt_array --> CONVRT\n"+
		"journaled in session s1\n", buf.String())

	buf.Reset()
	formatter.Verbose = true
	require.NoError(t, formatter.Condition(nerr, ""))
	assert.Contains(t, buf.String(), "Explanation: A unit name was not recognized.\n")
	assert.NotContains(t, buf.String(), "journaled")
}

func TestOutputFormatter_ConditionJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}
	require.NoError(t, formatter.Condition(&native.Error{
		Short:     "SPICE(BODYNAMENOTFOUND)",
		Long:      `body name "PLUTO-X" not found in kernel pool`,
		Traceback: "bodn2c_error",
	}, "s2"))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "s2", resp.Session)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SPICE(BODYNAMENOTFOUND)", resp.Error.Code)
	assert.Equal(t, map[string]any{"traceback": "bodn2c_error"}, resp.Error.Details)
}

func TestOutputFormatter_ResultCarriesSession(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}
	require.NoError(t, formatter.Result(map[string]string{"routine": "vnorm"}, "s3"))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "s3", resp.Session)
}
