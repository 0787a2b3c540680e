package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vecwrap/internal/codegen"
	"github.com/roach88/vecwrap/internal/compiler"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Package string
	Output  string
}

// GenerateResult summarizes a generator run.
type GenerateResult struct {
	Package  string   `json:"package"`
	Output   string   `json:"output,omitempty"`
	Families []string `json:"families"`
	Bytes    int      `json:"bytes"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <catalog-dir>",
		Short: "Generate vector entry points for a catalog",
		Long: `Generate Go source for the vector form of every vectorized routine.

One wrapper and loop pair is emitted per macro family. Without --output
the source is written to stdout.

Examples:
  vecwrap generate ./internal/mathlib --pkg mathlib -o vectorize_gen.go`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Package, "pkg", "main", "package name of the generated file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default stdout)")

	return cmd
}

func runGenerate(opts *GenerateOptions, catalogDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadCatalog(catalogDir, LoadModeFailFast)
	if len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputCompileError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCompileError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	src, err := codegen.New(opts.Package).Generate(loadResult.Catalog)
	if err != nil {
		code, message := parseCompileError(err)
		return outputCompileError(formatter, code, message, nil)
	}

	sigs, err := codegen.Families(loadResult.Catalog)
	if err != nil {
		return outputCompileError(formatter, compiler.ErrInvalidMacro, err.Error(), nil)
	}
	result := GenerateResult{
		Package:  opts.Package,
		Output:   opts.Output,
		Families: make([]string, len(sigs)),
		Bytes:    len(src),
	}
	for i, sig := range sigs {
		result.Families[i] = sig.Family()
		formatter.VerboseLog("Generated family: %s", sig.Family())
	}

	if opts.Output == "" {
		if opts.Format == "json" {
			return formatter.Success(map[string]any{"result": result, "source": string(src)})
		}
		_, err := cmd.OutOrStdout().Write(src)
		return err
	}

	if err := os.WriteFile(opts.Output, src, 0o644); err != nil {
		return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Generated %d macro family(ies) into %s\n", len(sigs), opts.Output)
	return nil
}
