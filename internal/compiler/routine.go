// Package compiler turns CUE routine declarations into the catalog IR and
// checks that each vectorization macro agrees with its routine signature.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/vecwrap/internal/ir"
)

// CompileRoutine parses one routine struct into a RoutineSpec.
//
// The CUE value is the routine struct itself, e.g.:
//
//	routine: vnorm: {
//		inputs: [{name: "v1", type: "float[3]"}]
//		outputs: [{name: "vnorm", type: "float"}]
//		vectorize: "VECTORIZE_dX__RETURN_d"
//	}
func CompileRoutine(v cue.Value) (*ir.RoutineSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.RoutineSpec{}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}
	spec.Signature.Name = spec.Name

	var err error
	if spec.Abstract, err = optionalString(v, "abstract"); err != nil {
		return nil, err
	}

	spec.Signature.Inputs, err = parseArgs(v, "inputs")
	if err != nil {
		return nil, err
	}
	spec.Signature.Outputs, err = parseArgs(v, "outputs")
	if err != nil {
		return nil, err
	}
	if len(spec.Signature.Outputs) == 0 {
		return nil, &CompileError{
			Field:   "outputs",
			Message: "at least one output is required",
			Pos:     v.Pos(),
		}
	}

	if spec.Vectorize, err = optionalString(v, "vectorize"); err != nil {
		return nil, err
	}

	paramsVal := v.LookupPath(cue.ParsePath("params"))
	if paramsVal.Exists() {
		iter, err := paramsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			n, err := iter.Value().Int64()
			if err != nil {
				return nil, formatCUEError(err)
			}
			spec.Params = append(spec.Params, int(n))
		}
	}

	errVal := v.LookupPath(cue.ParsePath("error"))
	if errVal.Exists() {
		spec.Error, err = parseErrorSpec(errVal)
		if err != nil {
			return nil, err
		}
	}

	return spec, nil
}

// CompileCatalog compiles every field under "routine" in declaration order.
func CompileCatalog(v cue.Value) (*ir.Catalog, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	routines := v.LookupPath(cue.ParsePath("routine"))
	if !routines.Exists() {
		return nil, &CompileError{Field: "routine", Message: "no routines declared", Pos: v.Pos()}
	}
	iter, err := routines.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	cat := &ir.Catalog{}
	for iter.Next() {
		spec, err := CompileRoutine(iter.Value())
		if err != nil {
			return nil, err
		}
		cat.Routines = append(cat.Routines, *spec)
	}
	return cat, nil
}

// CompileSource compiles catalog source text. filename is only used in
// error positions.
func CompileSource(src []byte, filename string) (*ir.Catalog, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	return CompileCatalog(v)
}

func parseArgs(v cue.Value, field string) ([]ir.ArgDesc, error) {
	listVal := v.LookupPath(cue.ParsePath(field))
	if !listVal.Exists() {
		return nil, nil
	}
	iter, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var args []ir.ArgDesc
	for i := 0; iter.Next(); i++ {
		item := iter.Value()
		name, err := requiredString(item, "name", fmt.Sprintf("%s[%d].name", field, i))
		if err != nil {
			return nil, err
		}
		typ, err := requiredString(item, "type", fmt.Sprintf("%s[%d].type", field, i))
		if err != nil {
			return nil, err
		}
		desc, err := ParseArgType(name, typ)
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("%s[%d].type", field, i),
				Message: err.Error(),
				Pos:     item.Pos(),
			}
		}
		args = append(args, desc)
	}
	return args, nil
}

func parseErrorSpec(v cue.Value) (*ir.ErrorSpec, error) {
	spec := &ir.ErrorSpec{Trigger: ir.TriggerFalse}
	var err error
	if spec.Flag, err = requiredString(v, "flag", "error.flag"); err != nil {
		return nil, err
	}
	if spec.Condition, err = requiredString(v, "condition", "error.condition"); err != nil {
		return nil, err
	}
	if spec.Message, err = requiredString(v, "message", "error.message"); err != nil {
		return nil, err
	}
	trigger, err := optionalString(v, "trigger")
	if err != nil {
		return nil, err
	}
	if trigger != "" {
		spec.Trigger = trigger
	}
	return spec, nil
}

func requiredString(v cue.Value, path, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(path))
	if !fv.Exists() {
		return "", &CompileError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalString(v cue.Value, path string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(path))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// CompileError is a catalog error with an optional source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
