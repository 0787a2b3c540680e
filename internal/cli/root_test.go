package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/roach88/vecwrap/internal/mathlib"
)

// writeCatalog writes src as catalog.cue into a fresh directory.
func writeCatalog(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.cue"), []byte(src), 0o644))
	return dir
}

// mathlibCatalogDir holds a copy of the built-in catalog.
func mathlibCatalogDir(t *testing.T) string {
	t.Helper()
	return writeCatalog(t, string(mathlib.CatalogSource()))
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "vecwrap", cmd.Use)
	assert.Contains(t, cmd.Long, "broadcasting")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"compile", "validate", "generate", "describe", "invoke", "trace", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	otelFlag := cmd.PersistentFlags().Lookup("otel")
	require.NotNil(t, otelFlag)
	assert.Equal(t, "false", otelFlag.DefValue)
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		command string
		flags   []string
	}{
		{"compile", []string{"output"}},
		{"generate", []string{"pkg", "output"}},
		{"invoke", []string{"args", "named", "db", "session"}},
		{"trace", []string{"db", "session", "routine"}},
		{"test", []string{"update", "filter", "golden-dir"}},
	}

	cmd := NewRootCommand()
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)
			for _, name := range tt.flags {
				assert.NotNil(t, sub.Flags().Lookup(name), "flag --%s", name)
			}
		})
	}
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("yaml"))
	assert.False(t, isValidFormat(""))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "yaml", "describe", "vnorm"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestRootVerboseLogsToStderr(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--verbose", "invoke", "vnorm", "--args", "[[3, 4, 0]]"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "vnorm () = 5")
	assert.Contains(t, errOut.String(), "Resolved vnorm to vnorm_array")
}

func TestRootOTelExportsBroadcastSpans(t *testing.T) {
	prevTraces, prevMetrics := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTraces)
		otel.SetMeterProvider(prevMetrics)
	})

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--otel", "invoke", "vnorm", "--args", "[[[3, 4, 0], [0, 0, 2]]]"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "vnorm (2,) = [5,2]")
	// The span is exported when it ends; metrics are flushed on shutdown.
	assert.Contains(t, errOut.String(), "broadcast vnorm")
	assert.Contains(t, errOut.String(), "vecwrap")
}

func TestLoggerWithoutSetup(t *testing.T) {
	opts := &RootOptions{}
	require.NotNil(t, opts.Logger())
	assert.NoError(t, opts.shutdown(context.Background()))
}
