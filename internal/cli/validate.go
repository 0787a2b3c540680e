package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
	"github.com/spf13/cobra"

	"github.com/roach88/vecwrap/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                       `json:"valid"`
	Routines int                        `json:"routines"`
	Errors   []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog-dir>",
		Short: "Validate a routine catalog without writing IR",
		Long: `Validate the CUE routine declarations of a directory.

Every routine is compiled and checked, and all errors are reported:
argument types, error variant descriptions and agreement between each
vectorization macro and its routine signature.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, catalogDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	validationErrors, routines, err := ValidateCatalogDir(catalogDir, formatter)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputValidateError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, validationErrors, routines)
	}

	return outputValidateSuccess(formatter, routines)
}

// ValidateCatalogDir compiles and validates every routine in dir. It
// returns the validation errors, the number of routines that compiled and
// an error when the directory could not be loaded at all.
func ValidateCatalogDir(dir string, formatter *OutputFormatter) ([]compiler.ValidationError, int, error) {
	loadResult, loadErrors := LoadCatalog(dir, LoadModeCollectAll)
	if loadResult == nil && len(loadErrors) > 0 {
		return nil, 0, loadErrors[0]
	}
	if formatter != nil {
		formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, dir)
	}

	var all []compiler.ValidationError
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			all = append(all, compiler.ValidationError{
				Field:   "load",
				Message: loadErr.Message,
				Code:    loadErr.Code,
				Line:    lineOf(loadErr.Pos),
			})
			continue
		}
		all = append(all, compiler.ValidationError{Field: "load", Message: err.Error(), Code: ErrCodeGeneric})
	}

	for _, r := range loadResult.Catalog.Routines {
		if formatter != nil {
			formatter.VerboseLog("Validating routine: %s", r.Name)
		}
	}
	all = append(all, compiler.Validate(loadResult.Catalog)...)

	return all, len(loadResult.Catalog.Routines), nil
}

// lineOf extracts the line number from a CUE position.
func lineOf(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, routines int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Routines: routines})
	}

	fmt.Fprintf(formatter.Writer, "✓ All %d routine(s) valid\n", routines)
	return nil
}

// outputValidateError outputs a single validation error.
func outputValidateError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	// Validation errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError, routines int) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:    false,
				Routines: routines,
				Errors:   errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
