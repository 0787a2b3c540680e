package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vecwrap/internal/compiler"
	"github.com/roach88/vecwrap/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompilationResult holds the compiled catalog and its identity.
type CompilationResult struct {
	IRVersion string      `json:"ir_version"`
	Hash      string      `json:"hash"`
	Catalog   *ir.Catalog `json:"catalog"`
}

// CompilationStats holds summary statistics.
type CompilationStats struct {
	RoutineCount    int
	VectorizedCount int
	ErrorVariants   int
	MacroFamilies   int
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <catalog-dir>",
		Short: "Compile a CUE routine catalog to canonical IR",
		Long: `Compile the CUE routine declarations of a directory to IR.

Each routine's argument types are parsed into kinds and item shapes and
its vectorization macro is checked against the signature. The catalog
hash identifies the compiled result in journaled calls.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, catalogDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadCatalog(catalogDir, LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputCompileError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCompileError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, catalogDir)
	for _, r := range loadResult.Catalog.Routines {
		formatter.VerboseLog("Compiled routine: %s", r.Name)
	}

	if len(loadErrors) > 0 {
		return outputCompileErrors(formatter, loadErrors)
	}

	// Macro agreement is part of compilation; a catalog whose macros do not
	// match their signatures has no IR.
	if verrs := compiler.Validate(loadResult.Catalog); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i := range verrs {
			errs[i] = verrs[i]
		}
		return outputCompileErrors(formatter, errs)
	}

	hash, err := ir.CatalogHash(loadResult.Catalog)
	if err != nil {
		return outputCompileError(formatter, ErrCodeGeneric, err.Error(), nil)
	}
	result := &CompilationResult{
		IRVersion: ir.IRVersion,
		Hash:      hash,
		Catalog:   loadResult.Catalog,
	}

	if opts.Output != "" {
		if err := writeIRToFile(result, opts.Output); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	return outputCompileSuccess(formatter, result, calculateStats(loadResult.Catalog), opts.Output)
}

// calculateStats computes summary statistics for a compiled catalog.
func calculateStats(cat *ir.Catalog) CompilationStats {
	stats := CompilationStats{
		RoutineCount:  len(cat.Routines),
		MacroFamilies: len(cat.Macros()),
	}
	for _, r := range cat.Routines {
		if r.Vectorized() {
			stats.VectorizedCount++
		}
		if r.Error != nil {
			stats.ErrorVariants++
		}
	}
	return stats
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, stats CompilationStats, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Compiled %d routine(s), %d vectorized, %d macro family(ies)\n\n",
		stats.RoutineCount, stats.VectorizedCount, stats.MacroFamilies)

	fmt.Fprintln(w, "Routines:")
	for _, r := range result.Catalog.Routines {
		macro := "scalar only"
		if r.Vectorized() {
			macro = r.Vectorize
		}
		fmt.Fprintf(w, "  %s: %d input(s), %d output(s), %s", r.Name,
			len(r.Signature.Inputs), len(r.Signature.Outputs), macro)
		if r.Error != nil {
			fmt.Fprintf(w, ", raises %s", r.Error.Condition)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Catalog hash: %s\n", result.Hash)

	if outputFile != "" {
		fmt.Fprintf(w, "Wrote canonical IR to %s\n", outputFile)
	}

	return nil
}

// outputCompileError outputs a single compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	// Compilation errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputCompileErrors outputs multiple compilation errors.
func outputCompileErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseCompileError(err)
			cliErrors[i] = CLIError{
				Code:    code,
				Message: message,
			}
		}

		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors, // Include all errors in data
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		code, message := parseCompileError(err)
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				loadErr.Pos.Filename(),
				loadErr.Pos.Line(),
				loadErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}

	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// parseCompileError extracts error code and message from an error.
func parseCompileError(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	var verr compiler.ValidationError
	if errors.As(err, &verr) {
		return verr.Code, fmt.Sprintf("%s: %s", verr.Field, verr.Message)
	}
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return MapFieldToErrorCode(compileErr.Field), compileErr.Message
	}
	return ErrCodeGeneric, err.Error()
}

// writeIRToFile writes the compilation result to a file.
func writeIRToFile(result *CompilationResult, filename string) error {
	// Indented for review; ir.CatalogHash hashes the canonical form.
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling IR: %w", err)
	}

	if err := os.WriteFile(filename, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
