package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vecwrap/internal/store"
)

func runInvokeCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewInvokeCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestInvokeSingleItem(t *testing.T) {
	out, err := runInvokeCmd(t, "text", "vnorm", "--args", "[[3, 4, 0]]")
	require.NoError(t, err)
	assert.Equal(t, "vnorm () = 5\n", out)
}

func TestInvokeBatchJSON(t *testing.T) {
	out, err := runInvokeCmd(t, "json", "vnorm_vector", "--args", "[[[3, 4, 0], [0, 0, 2]]]")
	require.NoError(t, err)

	var resp struct {
		Status  string       `json:"status"`
		Data    InvokeResult `json:"data"`
		Session string       `json:"session"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Session)
	assert.Equal(t, "vnorm", resp.Data.Routine)
	assert.Equal(t, "vnorm_vector", resp.Data.Variant)
	require.Len(t, resp.Data.Outputs, 1)
	assert.Equal(t, "vnorm", resp.Data.Outputs[0].Name)
	assert.Equal(t, "(2,)", resp.Data.Outputs[0].Shape)
	assert.Equal(t, []any{5.0, 2.0}, resp.Data.Outputs[0].Value)
}

func TestInvokeNamedArguments(t *testing.T) {
	out, err := runInvokeCmd(t, "text", "convrt",
		"--args", "[[1, 2]]",
		"--named", `{"in": "KM", "out": "M"}`)
	require.NoError(t, err)
	assert.Equal(t, "y (2,) = [1000,2000]\n", out)
}

func TestInvokeFlagVariant(t *testing.T) {
	out, err := runInvokeCmd(t, "text", "bodn2c_flag", "--args", `["EARTH"]`)
	require.NoError(t, err)
	assert.Contains(t, out, "code () = 399\n")
	assert.Contains(t, out, "found ")
}

func TestInvokeNativeFailure(t *testing.T) {
	out, err := runInvokeCmd(t, "text", "convrt", "--args", `[[1, 2], "FURLONGS", "M"]`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `Error [SPICE(UNITSNOTREC)]: The input unit "FURLONGS" is not recognized.`)
	assert.Contains(t, out, "convrt_array --> CONVRT")
}

func TestInvokeNativeFailureJSON(t *testing.T) {
	out, err := runInvokeCmd(t, "json", "bodn2c", "--args", `["PLUTO-X"]`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SPICE(BODYNAMENOTFOUND)", resp.Error.Code)
	assert.Equal(t, `body name "PLUTO-X" not found in kernel pool`, resp.Error.Message)
}

func TestInvokeCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		code    string
		message string
	}{
		{"missing argument", []string{"vnorm"}, ErrCodeInvalidArgs, `missing argument "v1"`},
		{"unexpected named", []string{"vnorm", "--args", "[[1,0,0]]", "--named", `{"v2": 1}`}, ErrCodeInvalidArgs, `unexpected argument "v2"`},
		{"invalid args JSON", []string{"vnorm", "--args", "[1,"}, ErrCodeInvalidArgs, "invalid --args JSON"},
		{"invalid named JSON", []string{"vnorm", "--named", "{"}, ErrCodeInvalidArgs, "invalid --named JSON"},
		{"unknown routine", []string{"nosuch"}, ErrCodeUnknownRoutine, "unknown routine"},
		{"bad suffix", []string{"vnorm_sideways"}, ErrCodeUnknownRoutine, "invalid variant suffix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runInvokeCmd(t, "text", tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
			assert.Contains(t, out, tt.message)
		})
	}
}

func TestInvokeJournalsCalls(t *testing.T) {
	db := filepath.Join(t.TempDir(), "vecwrap.db")

	out, err := runInvokeCmd(t, "text", "vnorm", "--args", "[[[3, 4, 0], [0, 0, 2]]]", "--db", db, "--session", "s1")
	require.NoError(t, err)
	assert.Contains(t, out, "journaled as seq 1 in session s1\n")

	// Failures are journaled too.
	_, err = runInvokeCmd(t, "text", "convrt", "--args", `[[1, 2], "FURLONGS", "M"]`, "--db", db, "--session", "s1")
	require.Error(t, err)
	_, err = runInvokeCmd(t, "text", "vnorm", "--db", db, "--session", "s1")
	require.Error(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	calls, err := st.ReadCalls(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, calls, 3)

	assert.Equal(t, int64(1), calls[0].Seq)
	assert.Equal(t, "vnorm_array", calls[0].Variant)
	assert.Equal(t, store.StatusOK, calls[0].Status)
	assert.Equal(t, []string{"(2, 3)"}, calls[0].InputShapes)
	assert.Equal(t, []string{"(2,)"}, calls[0].OutputShapes)

	assert.Equal(t, int64(2), calls[1].Seq)
	assert.Equal(t, store.StatusFailed, calls[1].Status)
	assert.Equal(t, "SPICE(UNITSNOTREC)", calls[1].ShortMsg)
	assert.Equal(t, "convrt_array --> CONVRT", calls[1].Traceback)

	assert.Equal(t, store.StatusArgError, calls[2].Status)
	assert.Contains(t, calls[2].LongMsg, `missing argument "v1"`)
}

func TestInvokeJournalJSONCarriesSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "vecwrap.db")

	out, err := runInvokeCmd(t, "json", "rpd", "--db", db)
	require.NoError(t, err)

	var resp struct {
		Data    InvokeResult `json:"data"`
		Session string       `json:"session"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp.Session)
	assert.NotEmpty(t, resp.Data.CallID)
	assert.Equal(t, int64(1), resp.Data.Seq)
	assert.Equal(t, "rpd", resp.Data.Variant)
}
