package broadcast

import (
	"fmt"

	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/vector"
)

// Bind orders arguments by the signature's inputs: positional values first,
// then named values for the remaining inputs.
func Bind(sig *ir.Signature, positional []any, named map[string]any) ([]any, error) {
	if len(positional) > len(sig.Inputs) {
		return nil, &vector.ArgError{
			Routine: sig.Name,
			Index:   -1,
			Message: fmt.Sprintf("takes %d arguments, got %d", len(sig.Inputs), len(positional)),
		}
	}
	args := make([]any, len(sig.Inputs))
	set := make([]bool, len(sig.Inputs))
	for i, v := range positional {
		args[i] = v
		set[i] = true
	}
	for name, v := range named {
		k, ok := sig.Input(name)
		if !ok {
			return nil, &vector.ArgError{Routine: sig.Name, Index: -1, Message: fmt.Sprintf("unexpected argument %q", name)}
		}
		if set[k] {
			return nil, &vector.ArgError{Routine: sig.Name, Index: k, Message: fmt.Sprintf("%q given twice", name)}
		}
		args[k] = v
		set[k] = true
	}
	for k, ok := range set {
		if !ok {
			return nil, &vector.ArgError{Routine: sig.Name, Index: k, Message: fmt.Sprintf("missing argument %q", sig.Inputs[k].Name)}
		}
	}
	return args, nil
}
