package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	scenarioDir = "../harness/testdata/scenarios"
	goldenDir   = "../harness/testdata/golden"
)

const passingScenario = `name: single_norm
description: One vnorm call
session: cli-session
steps:
  - call: vnorm
    args: [[3, 4, 0]]
    expect:
      scalar: true
      values: [5]
`

const failingScenario = `name: wrong_norm
description: Expects the wrong magnitude
session: cli-session
steps:
  - call: vnorm
    args: [[3, 4, 0]]
    expect:
      values: [6]
`

func runTestCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeScenario(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	out, err := runTestCmd(t, "text", scenarioDir, "--golden-dir", goldenDir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ arguments\n")
	assert.Contains(t, out, "✓ error_variants\n")
	assert.Contains(t, out, "✓ vnorm_broadcast\n")
	assert.Contains(t, out, "Test Summary: 3 passed, 0 failed, 3 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandJSONReportsGoldenStatus(t *testing.T) {
	out, err := runTestCmd(t, "json", scenarioDir, "--golden-dir", goldenDir, "--filter", "vnorm*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "vnorm_broadcast", resp.Data.Scenarios[0].Name)
	assert.Equal(t, "match", resp.Data.Scenarios[0].Golden)
}

func TestTestCommandUpdateThenMatch(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "single_norm.yaml", passingScenario)

	out, err := runTestCmd(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ single_norm (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "single_norm.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"session":"cli-session"`)

	// The golden directory is not scanned for scenarios.
	out, err = runTestCmd(t, "json", dir)
	require.NoError(t, err)
	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "match", resp.Data.Scenarios[0].Golden)
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "single_norm.yaml", passingScenario)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "single_norm.golden"), []byte("{}\n"), 0o644))

	out, err := runTestCmd(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ single_norm")
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "single_norm.yaml", passingScenario)
	writeScenario(t, dir, "wrong_norm.yml", failingScenario)

	out, err := runTestCmd(t, "json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Error  *CLIError  `json:"error"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	assert.Equal(t, "missing", resp.Data.Scenarios[0].Golden)
	assert.NotEmpty(t, resp.Data.Scenarios[1].Errors)
}

func TestTestCommandEmptyAndMissingDirs(t *testing.T) {
	out, err := runTestCmd(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)

	_, err = runTestCmd(t, "text", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFindScenarioFilesInvalidFilter(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.yaml", passingScenario)

	_, err := findScenarioFiles(dir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}
