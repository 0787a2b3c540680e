package vector

import (
	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/ndarray"
	"github.com/roach88/vecwrap/internal/native"
)

// ScalarOf derives the single-item form of a routine from its vectorized
// form. Numeric arguments must have exactly the item rank after dropping
// leading unit axes; anything larger is signalled as an invalid shape in
// module name.
func ScalarOf(name string, sig *ir.Signature, vec Func) Func {
	return func(args []any) ([]any, error) {
		if len(args) != len(sig.Inputs) {
			return nil, &ArgError{Routine: name, Index: -1, Message: "wrong number of arguments"}
		}
		squeezed := make([]any, len(args))
		copy(squeezed, args)
		for _, k := range sig.NumericInputs() {
			desc := sig.Inputs[k]
			a, err := checkItem(name, desc, args[k], false)
			if err != nil {
				return nil, err
			}
			if a.Rank() > desc.ItemRank() {
				a, _ = a.Reshape(a.Shape()[a.Rank()-desc.ItemRank():]...)
			}
			squeezed[k] = a
		}
		return vec(squeezed)
	}
}

// Checked validates item shapes before calling a vectorized form, so
// fixed-size axes are reported against the declared signature.
func Checked(name string, sig *ir.Signature, vec Func) Func {
	return func(args []any) ([]any, error) {
		if len(args) != len(sig.Inputs) {
			return nil, &ArgError{Routine: name, Index: -1, Message: "wrong number of arguments"}
		}
		for _, k := range sig.NumericInputs() {
			if _, err := checkItem(name, sig.Inputs[k], args[k], true); err != nil {
				return nil, err
			}
		}
		return vec(args)
	}
}

func checkItem(name string, desc ir.ArgDesc, arg any, vectorized bool) (*ndarray.Array[float64], error) {
	a, err := ndarray.AsFloat(arg)
	if err != nil {
		native.Signal(name, "SPICE(INVALIDARRAYSHAPE)", "Ragged input array for %q: ", desc.Name)
		return nil, native.ErrFailed
	}
	shape := a.Shape()
	rank := desc.ItemRank()
	lead := len(shape) - rank
	ok := lead >= 0
	if ok {
		if vectorized {
			ok = lead <= 1
		} else {
			ok = ndarray.AllOnes(shape[:lead])
		}
	}
	if ok {
		for i, d := range desc.ItemShape {
			if d != 0 && shape[lead+i] != d {
				ok = false
			}
		}
	}
	if !ok {
		prefix := "("
		if vectorized {
			prefix = "(_,"
		}
		native.Signal(name, "SPICE(INVALIDARRAYSHAPE)",
			"Invalid array shape %s for input %q in module %s: %s%s is required",
			ndarray.FormatShape(shape), desc.Name, name, prefix, desc.Pattern())
		return nil, native.ErrFailed
	}
	return a, nil
}
