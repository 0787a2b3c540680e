package ir

import (
	"strconv"
	"strings"
)

// ArgKind classifies an argument of a native routine.
type ArgKind string

const (
	KindInt     ArgKind = "int"
	KindBool    ArgKind = "bool"
	KindText    ArgKind = "string"
	KindNumeric ArgKind = "numeric"
)

// ArgDesc describes one input or output of a native routine.
//
// ItemShape is the shape of a single element as seen by the native routine.
// A dimension of 0 is a wildcard and matches any length. Only numeric
// arguments carry an item shape; rank-0 numerics are plain floats.
type ArgDesc struct {
	Name      string  `json:"name"`
	Kind      ArgKind `json:"kind"`
	Type      string  `json:"type"`
	ItemShape []int   `json:"item_shape,omitempty"`
}

// ItemRank returns the number of item axes.
func (a ArgDesc) ItemRank() int {
	return len(a.ItemShape)
}

// IsNumeric reports whether the argument takes part in broadcasting.
func (a ArgDesc) IsNumeric() bool {
	return a.Kind == KindNumeric
}

// Pattern renders the item shape as it appears in shape error messages,
// e.g. "3)" for a 3-vector or "*, 3)" for a wildcard leading axis.
func (a ArgDesc) Pattern() string {
	dims := make([]string, len(a.ItemShape))
	for i, d := range a.ItemShape {
		if d == 0 {
			dims[i] = "*"
		} else {
			dims[i] = strconv.Itoa(d)
		}
	}
	return strings.Join(dims, ", ") + ")"
}

// VectorType renders the declared type with a leading vector axis, the way
// it is documented for the vectorized form ("float[_,3]").
func (a ArgDesc) VectorType(leading string) string {
	if !a.IsNumeric() {
		return a.Type
	}
	base := a.Type
	if i := strings.IndexByte(base, '['); i >= 0 {
		return base[:i] + "[" + leading + "," + base[i+1:]
	}
	return base + "[" + leading + "]"
}

// Signature is the ordered list of inputs and outputs of a native routine.
// Shared read-only by every variant of the routine.
type Signature struct {
	Name    string    `json:"name"`
	Inputs  []ArgDesc `json:"inputs"`
	Outputs []ArgDesc `json:"outputs"`
}

// Input returns the index of the named input.
func (s *Signature) Input(name string) (int, bool) {
	for i, arg := range s.Inputs {
		if arg.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Output returns the index of the named output.
func (s *Signature) Output(name string) (int, bool) {
	for i, arg := range s.Outputs {
		if arg.Name == name {
			return i, true
		}
	}
	return -1, false
}

// NumericInputs returns the indices of inputs that take part in broadcasting.
func (s *Signature) NumericInputs() []int {
	var idx []int
	for i, arg := range s.Inputs {
		if arg.IsNumeric() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Error trigger modes for derived error variants.
const (
	// TriggerFalse signals when the flag output is false. The flag is dropped.
	TriggerFalse = "false"
	// TriggerTrue signals when the flag output is true. The flag is dropped.
	TriggerTrue = "true"
	// TriggerZero signals when the named output is all zeros. It is kept.
	TriggerZero = "zero"
)

// ErrorSpec describes how the raise-on-error variant of a routine is derived
// from its flag-returning form.
type ErrorSpec struct {
	Flag      string `json:"flag"`
	Trigger   string `json:"trigger"`
	Condition string `json:"condition"`
	Message   string `json:"message"`
}

// DropsFlag reports whether the flag output is removed from the results.
func (e *ErrorSpec) DropsFlag() bool {
	return e.Trigger != TriggerZero
}

// RoutineSpec is one compiled catalog entry.
type RoutineSpec struct {
	Name      string     `json:"name"`
	Abstract  string     `json:"abstract,omitempty"`
	Signature Signature  `json:"signature"`
	Vectorize string     `json:"vectorize,omitempty"`
	Params    []int      `json:"params,omitempty"`
	Error     *ErrorSpec `json:"error,omitempty"`
}

// Vectorized reports whether the routine has a generated vector form.
func (r *RoutineSpec) Vectorized() bool {
	return r.Vectorize != ""
}

// Catalog is the compiled set of routines in declaration order.
type Catalog struct {
	Routines []RoutineSpec `json:"routines"`
}

// Lookup returns the routine with the given base name.
func (c *Catalog) Lookup(name string) (*RoutineSpec, bool) {
	for i := range c.Routines {
		if c.Routines[i].Name == name {
			return &c.Routines[i], true
		}
	}
	return nil, false
}

// Macros returns the distinct macro names used by the catalog.
func (c *Catalog) Macros() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range c.Routines {
		if r.Vectorize == "" || seen[r.Vectorize] {
			continue
		}
		seen[r.Vectorize] = true
		names = append(names, r.Vectorize)
	}
	return names
}
