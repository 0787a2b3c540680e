package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/vecwrap/internal/compiler"
	"github.com/roach88/vecwrap/internal/ir"
)

// LoadMode controls how errors are handled during catalog loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading a catalog directory.
type LoadResult struct {
	Catalog   *ir.Catalog
	CUEValue  cue.Value // The raw CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// LoadError represents an error that occurred during catalog loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadCatalog loads the CUE files of dir and compiles every routine under
// the top-level "routine" field.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadCatalog(dir string, mode LoadMode) (*LoadResult, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{
		Catalog:   &ir.Catalog{},
		CUEValue:  value,
		FileCount: len(cueFiles),
	}

	routines := value.LookupPath(cue.ParsePath("routine"))
	if routines.Exists() {
		iter, iterErr := routines.Fields()
		if iterErr != nil {
			return result, append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating routines: %v", iterErr)})
		}
		for iter.Next() {
			spec, compileErr := compiler.CompileRoutine(iter.Value())
			if compileErr != nil {
				errs = append(errs, convertCompileError(compileErr, "routine."+iter.Selector().String()))
				if mode == LoadModeFailFast {
					return result, errs
				}
				continue
			}
			result.Catalog.Routines = append(result.Catalog.Routines, *spec)
		}
	}

	if len(result.Catalog.Routines) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no routines found in catalog"})
	}

	return result, errs
}

// FindCUEFiles returns the .cue files directly inside dir. Subdirectories
// are separate CUE packages and are not loaded.
func FindCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: fmt.Sprintf("%s: %s", context, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Error code constants - unified across all CLI commands.
// Catalog rule violations reuse the compiler's E1xx codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error

	ErrCodeUnknownRoutine = "E008" // No routine or variant with that name
	ErrCodeInvalidArgs    = "E009" // --args is not a JSON array
	ErrCodeDatabase       = "E010" // Journal database error
)

// MapFieldToErrorCode maps a compiler error field to an error code.
// Fields may be qualified ("inputs[0].type", "vnorm.error.flag").
func MapFieldToErrorCode(field string) string {
	last := field
	if i := strings.LastIndexByte(field, '.'); i >= 0 {
		last = field[i+1:]
	}
	switch {
	case field == "outputs":
		return compiler.ErrRoutineNoOutputs
	case last == "type", strings.HasPrefix(field, "inputs"), strings.HasPrefix(field, "outputs"):
		return compiler.ErrInvalidArgType
	case strings.Contains(field, "error"):
		return compiler.ErrInvalidErrorSpec
	case last == "vectorize":
		return compiler.ErrInvalidMacro
	case last == "params":
		return compiler.ErrMacroParams
	default:
		return ErrCodeGeneric
	}
}
