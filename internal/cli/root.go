package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/vecwrap/internal/broadcast"
	"github.com/roach88/vecwrap/internal/mathlib"
	"github.com/roach88/vecwrap/internal/registry"
	"github.com/roach88/vecwrap/internal/telemetry"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	OTel    bool   // export spans and metrics to stderr

	logger    *slog.Logger
	telemetry *telemetry.Provider
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the vecwrap CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vecwrap",
		Short: "vecwrap - vectorized wrappers for scalar native routines",
		Long: `Compile routine catalogs, generate vector entry points and call
routines with NumPy-style broadcasting over their leading axes.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return opts.shutdown(ctx)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.OTel, "otel", false, "write OpenTelemetry spans and metrics to stderr")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewDescribeCommand(opts))
	cmd.AddCommand(NewInvokeCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Execute runs the CLI with os.Args. Telemetry started by --otel is flushed
// even when the command fails.
func Execute(ctx context.Context) error {
	opts := &RootOptions{}
	err := newRootCommand(opts).ExecuteContext(ctx)
	if serr := opts.shutdown(ctx); err == nil {
		err = serr
	}
	return err
}

// setup configures logging and, with --otel, the telemetry provider.
func (o *RootOptions) setup(stderr io.Writer) error {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if o.OTel && o.telemetry == nil {
		p, err := telemetry.New(stderr, telemetry.WithServiceName("vecwrap"))
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		p.Install()
		o.telemetry = p
	}
	return nil
}

func (o *RootOptions) shutdown(ctx context.Context) error {
	if o.telemetry == nil {
		return nil
	}
	p := o.telemetry
	o.telemetry = nil
	return p.Shutdown(ctx)
}

// Logger returns the command logger. Commands built without the root
// command log nothing.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

// newRegistry builds a registry over the stand-in routine library, wired to
// the command logger and, with --otel, to the tracer and meter.
func (o *RootOptions) newRegistry() (*registry.Registry, error) {
	engine := []broadcast.Option{broadcast.WithLogger(o.Logger())}
	if o.telemetry != nil {
		engine = append(engine,
			broadcast.WithTracer(o.telemetry.Tracer()),
			broadcast.WithMeter(o.telemetry.Meter()))
	}
	return mathlib.NewRegistry(
		registry.WithLogger(o.Logger()),
		registry.WithEngineOptions(engine...),
	)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
