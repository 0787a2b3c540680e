package compiler

import (
	"fmt"
	"go/token"
	"regexp"
	"strings"

	"github.com/roach88/vecwrap/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrUnsupportedIRType = "E100" // unsupported IR type for validation

	// RoutineSpec errors (E101-E109)
	ErrInvalidRoutineName = "E101" // name must be a Go identifier
	ErrRoutineNoOutputs   = "E102" // at least one output required
	ErrInvalidArgType     = "E103" // invalid kind or item shape
	ErrDuplicateName      = "E104" // duplicate argument or routine name
	ErrInvalidErrorSpec   = "E105" // flag, trigger or condition invalid

	// Macro errors (E110-E119)
	ErrInvalidMacro     = "E110" // macro name does not parse
	ErrMacroArity       = "E111" // argument counts differ from the signature
	ErrMacroKind        = "E112" // token kind or rank differs from the argument
	ErrMacroAxis        = "E113" // fixed or variable axis differs from the item shape
	ErrMacroParams      = "E114" // params do not bind every macro letter
	ErrParamsWithoutVec = "E115" // params given without a macro
)

// ValidationError represents a catalog validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

var conditionPattern = regexp.MustCompile(`^SPICE\([A-Z0-9_]+\)$`)

// Validate validates compiled IR against catalog rules.
// Returns all errors found (does not fail-fast).
func Validate(v any) []ValidationError {
	switch x := v.(type) {
	case *ir.RoutineSpec:
		return validateRoutine(x)
	case ir.RoutineSpec:
		return validateRoutine(&x)
	case *ir.Catalog:
		return validateCatalog(x)
	case ir.Catalog:
		return validateCatalog(&x)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported IR type: %T", v),
			Code:    ErrUnsupportedIRType,
		}}
	}
}

func validateCatalog(cat *ir.Catalog) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for i := range cat.Routines {
		r := &cat.Routines[i]
		if seen[r.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("routines[%d].name", i),
				Message: fmt.Sprintf("duplicate routine name: %q", r.Name),
				Code:    ErrDuplicateName,
			})
		}
		seen[r.Name] = true
		errs = append(errs, validateRoutine(r)...)
	}
	return errs
}

func validateRoutine(r *ir.RoutineSpec) []ValidationError {
	var errs []ValidationError
	add := func(field, code, format string, args ...any) {
		errs = append(errs, ValidationError{
			Field:   r.Name + "." + field,
			Message: fmt.Sprintf(format, args...),
			Code:    code,
		})
	}

	// E101: the name doubles as the Go identifier of the native function
	if !token.IsIdentifier(r.Name) || strings.ContainsRune(r.Name, '_') {
		add("name", ErrInvalidRoutineName, "%q is not a plain identifier", r.Name)
	}

	// E102
	if len(r.Signature.Outputs) == 0 {
		add("outputs", ErrRoutineNoOutputs, "at least one output is required")
	}

	names := make(map[string]bool)
	for _, group := range []struct {
		field string
		args  []ir.ArgDesc
	}{{"inputs", r.Signature.Inputs}, {"outputs", r.Signature.Outputs}} {
		for i, arg := range group.args {
			field := fmt.Sprintf("%s[%d]", group.field, i)
			if names[arg.Name] {
				add(field, ErrDuplicateName, "duplicate argument name: %q", arg.Name)
			}
			names[arg.Name] = true
			switch arg.Kind {
			case ir.KindInt, ir.KindBool, ir.KindText:
				if len(arg.ItemShape) > 0 {
					add(field, ErrInvalidArgType, "%s argument cannot have an item shape", arg.Kind)
				}
			case ir.KindNumeric:
			default:
				add(field, ErrInvalidArgType, "unknown kind %q", arg.Kind)
			}
		}
	}

	if r.Error != nil {
		errs = append(errs, validateErrorSpec(r)...)
	}

	if !r.Vectorized() {
		if len(r.Params) > 0 {
			add("params", ErrParamsWithoutVec, "params require a vectorize macro")
		}
		return errs
	}

	sig, err := ParseMacro(r.Vectorize)
	if err != nil {
		add("vectorize", ErrInvalidMacro, "%v", err)
		return errs
	}
	return append(errs, validateMacro(r, sig)...)
}

func validateErrorSpec(r *ir.RoutineSpec) []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{
			Field:   r.Name + ".error." + field,
			Message: fmt.Sprintf(format, args...),
			Code:    ErrInvalidErrorSpec,
		})
	}

	k, ok := r.Signature.Output(r.Error.Flag)
	switch {
	case !ok:
		add("flag", "%q is not an output", r.Error.Flag)
	case r.Error.Trigger == ir.TriggerZero:
		if !r.Signature.Outputs[k].IsNumeric() {
			add("flag", "zero trigger needs a numeric output, %q is %s", r.Error.Flag, r.Signature.Outputs[k].Kind)
		}
	case r.Error.Trigger == ir.TriggerFalse || r.Error.Trigger == ir.TriggerTrue:
		if r.Signature.Outputs[k].Kind != ir.KindBool {
			add("flag", "%q must be a bool output", r.Error.Flag)
		}
	default:
		add("trigger", "unknown trigger %q", r.Error.Trigger)
	}
	if !conditionPattern.MatchString(r.Error.Condition) {
		add("condition", "%q is not of the form SPICE(NAME)", r.Error.Condition)
	}
	if strings.TrimSpace(r.Error.Message) == "" {
		add("message", "message is required")
	}
	return errs
}

// validateMacro checks that the expanded macro tokens line up with the
// declared signature one to one.
func validateMacro(r *ir.RoutineSpec, sig *ir.MacroSig) []ValidationError {
	var errs []ValidationError
	add := func(field, code, format string, args ...any) {
		errs = append(errs, ValidationError{
			Field:   r.Name + "." + field,
			Message: fmt.Sprintf(format, args...),
			Code:    code,
		})
	}

	if len(sig.Inputs) != len(r.Signature.Inputs) || len(sig.Outputs) != len(r.Signature.Outputs) {
		add("vectorize", ErrMacroArity, "%s takes %d inputs and %d outputs, signature has %d and %d",
			sig.Name, len(sig.Inputs), len(sig.Outputs), len(r.Signature.Inputs), len(r.Signature.Outputs))
		return errs
	}

	for i, tok := range sig.Inputs {
		arg := r.Signature.Inputs[i]
		field := fmt.Sprintf("inputs[%d]", i)
		want := ir.KindNumeric
		switch tok.Key {
		case "s":
			want = ir.KindText
		case "i":
			want = ir.KindInt
		case "b":
			want = ir.KindBool
		}
		if arg.Kind != want {
			add(field, ErrMacroKind, "token %q needs a %s argument, %q is %s", tok.Key, want, arg.Name, arg.Kind)
			continue
		}
		if tok.Numeric() {
			errs = append(errs, checkAxes(r.Name, field, tok, arg, nil)...)
		}
	}

	bound := make(map[string]int)
	if len(r.Params) != len(sig.Params) {
		add("params", ErrMacroParams, "%s needs %d params %v, got %d", sig.Name, len(sig.Params), sig.Params, len(r.Params))
	} else {
		for i, p := range sig.Params {
			bound[p] = r.Params[i]
		}
	}

	for i, tok := range sig.Outputs {
		arg := r.Signature.Outputs[i]
		field := fmt.Sprintf("outputs[%d]", i)
		want := ir.KindNumeric
		switch tok.Key {
		case "i":
			want = ir.KindInt
		case "b":
			want = ir.KindBool
		}
		if arg.Kind != want {
			add(field, ErrMacroKind, "token %q needs a %s argument, %q is %s", tok.Key, want, arg.Name, arg.Kind)
			continue
		}
		if tok.Numeric() {
			errs = append(errs, checkAxes(r.Name, field, tok, arg, bound)...)
		}
	}
	return errs
}

// checkAxes compares the item axes of a token with the declared item shape.
// Variable axes must be wildcards; fixed axes must be sized, and output
// axes bound to params must match the bound value.
func checkAxes(routine, field string, tok ir.MacroArg, arg ir.ArgDesc, bound map[string]int) []ValidationError {
	var errs []ValidationError
	add := func(code, format string, args ...any) {
		errs = append(errs, ValidationError{
			Field:   routine + "." + field,
			Message: fmt.Sprintf(format, args...),
			Code:    code,
		})
	}

	if tok.Rank-1 != arg.ItemRank() {
		add(ErrMacroKind, "token %q has item rank %d, %q has %d", tok.Key, tok.Rank-1, arg.Name, arg.ItemRank())
		return errs
	}
	for j, d := range arg.ItemShape {
		letter := tok.Key[j+1 : j+2]
		switch {
		case tok.Variable && d != 0:
			add(ErrMacroAxis, "axis %d of %q is variable in %q but declared as %d", j+1, arg.Name, tok.Key, d)
		case !tok.Variable && d == 0:
			add(ErrMacroAxis, "axis %d of %q is fixed in %q but declared as *", j+1, arg.Name, tok.Key)
		case !tok.Variable && bound != nil:
			if v, ok := bound[letter]; ok && v != d {
				add(ErrMacroParams, "param %s is %d but axis %d of %q is %d", letter, v, j+1, arg.Name, d)
			}
		}
	}
	return errs
}
