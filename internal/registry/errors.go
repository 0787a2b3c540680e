package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/ndarray"
	"github.com/roach88/vecwrap/internal/native"
	"github.com/roach88/vecwrap/internal/vector"
)

// errorSignature removes the flag output when the error spec drops it.
func errorSignature(sig *ir.Signature, spec *ir.ErrorSpec) *ir.Signature {
	if !spec.DropsFlag() {
		return sig
	}
	k, _ := sig.Output(spec.Flag)
	out := &ir.Signature{
		Name:    sig.Name,
		Inputs:  sig.Inputs,
		Outputs: slices.Delete(slices.Clone(sig.Outputs), k, k+1),
	}
	return out
}

// deriveError wraps a flag-mode form so that a raised flag signals the
// spec's condition from the frame name.
func deriveError(name string, sig *ir.Signature, spec *ir.ErrorSpec, flag vector.Func) vector.Func {
	k, _ := sig.Output(spec.Flag)
	itemRank := sig.Outputs[k].ItemRank()
	return func(args []any) ([]any, error) {
		out, err := flag(args)
		if err != nil {
			return nil, err
		}
		if native.Failed() {
			return nil, native.ErrFailed
		}
		raised, err := triggered(spec.Trigger, out[k], itemRank)
		if err != nil {
			return nil, &vector.ArgError{Routine: name, Index: -1, Message: err.Error()}
		}
		if raised {
			native.Signal(name, spec.Condition, "%s", errorMessage(spec.Message, args))
			return nil, native.ErrFailed
		}
		if spec.DropsFlag() {
			out = slices.Delete(out, k, k+1)
		}
		return out, nil
	}
}

// errorMessage formats the message with the call's arguments when it
// carries verbs.
func errorMessage(msg string, args []any) string {
	if !strings.Contains(msg, "%") {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// triggered reports whether any element of the flag output raises the
// condition.
func triggered(trigger string, flag any, itemRank int) (bool, error) {
	switch trigger {
	case ir.TriggerFalse, ir.TriggerTrue:
		want := trigger == ir.TriggerTrue
		switch f := flag.(type) {
		case bool:
			return f == want, nil
		case *ndarray.Array[bool]:
			return slices.Contains(f.Data(), want), nil
		}
		return false, fmt.Errorf("flag output is %T, not bool", flag)
	case ir.TriggerZero:
		a, err := ndarray.AsFloat(flag)
		if err != nil {
			return false, fmt.Errorf("flag output: %w", err)
		}
		return anyZeroItem(a, itemRank), nil
	}
	return false, fmt.Errorf("unknown trigger %q", trigger)
}

// anyZeroItem reports whether any item of a is all zeros. An array with
// more than itemRank axes holds one item per leading index.
func anyZeroItem(a *ndarray.Array[float64], itemRank int) bool {
	shape := a.Shape()
	size := 1
	if len(shape) >= itemRank {
		size = ndarray.Size(shape[len(shape)-itemRank:])
	}
	data := a.Data()
	if size == 0 {
		return false
	}
	for i := 0; i+size <= len(data); i += size {
		zero := true
		for _, x := range data[i : i+size] {
			if x != 0 {
				zero = false
				break
			}
		}
		if zero {
			return true
		}
	}
	return false
}
