package vector

import (
	"errors"
	"fmt"

	"github.com/roach88/vecwrap/internal/ndarray"
	"github.com/roach88/vecwrap/internal/native"
)

// ArgError reports a call with the wrong number or type of arguments.
// It is a programming error and never goes through the native boundary.
type ArgError struct {
	Routine string
	Index   int
	Message string
}

func (e *ArgError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Routine, e.Message)
	}
	return fmt.Sprintf("%s: argument %d: %s", e.Routine, e.Index+1, e.Message)
}

// IsArgError reports whether err is an *ArgError.
func IsArgError(err error) bool {
	var ae *ArgError
	return errors.As(err, &ae)
}

// Inputs unpacks positional arguments for a vectorized entry point.
type Inputs struct {
	name string
	args []any
}

// NewInputs checks the argument count for the named entry point.
func NewInputs(name string, args []any, want int) (Inputs, error) {
	if len(args) != want {
		return Inputs{}, &ArgError{
			Routine: name,
			Index:   -1,
			Message: fmt.Sprintf("expected %d arguments, got %d", want, len(args)),
		}
	}
	return Inputs{name: name, args: args}, nil
}

// Float returns argument k as flat data plus one dimension per axis of a
// rank-rank token. An argument one axis short is a single item and gets a
// leading dimension of 0.
func (in Inputs) Float(k, rank int) ([]float64, []int, error) {
	a, err := ndarray.AsFloat(in.args[k])
	if err != nil {
		native.Signal(in.name, "SPICE(INVALIDARRAYSHAPE)", "Ragged input array for input %d of %s", k+1, in.name)
		return nil, nil, native.ErrFailed
	}
	shape := a.Shape()
	switch len(shape) {
	case rank:
		if shape[0] == 0 {
			native.Signal(in.name, "SPICE(INVALIDARRAYSHAPE)", "Empty input array for input %d of %s", k+1, in.name)
			return nil, nil, native.ErrFailed
		}
		return a.Data(), shape, nil
	case rank - 1:
		return a.Data(), append([]int{0}, shape...), nil
	default:
		native.Signal(in.name, "SPICE(INVALIDARRAYSHAPE)",
			"Invalid array shape %s for input %d of %s: rank %d or %d is required",
			ndarray.FormatShape(shape), k+1, in.name, rank-1, rank)
		return nil, nil, native.ErrFailed
	}
}

// Int returns argument k as an integer.
func (in Inputs) Int(k int) (int64, error) {
	switch v := in.args[k].(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case float64:
		if float64(int64(v)) == v {
			return int64(v), nil
		}
	case *ndarray.Array[int64]:
		if v.Len() == 1 {
			return v.Item(), nil
		}
	}
	return 0, &ArgError{Routine: in.name, Index: k, Message: fmt.Sprintf("expected int, got %T", in.args[k])}
}

// Bool returns argument k as a bool.
func (in Inputs) Bool(k int) (bool, error) {
	if v, ok := in.args[k].(bool); ok {
		return v, nil
	}
	return false, &ArgError{Routine: in.name, Index: k, Message: fmt.Sprintf("expected bool, got %T", in.args[k])}
}

// String returns argument k as a string.
func (in Inputs) String(k int) (string, error) {
	if v, ok := in.args[k].(string); ok {
		return v, nil
	}
	return "", &ArgError{Routine: in.name, Index: k, Message: fmt.Sprintf("expected string, got %T", in.args[k])}
}
