package registry

import (
	"context"
	"errors"
	"sync"

	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/native"
	"github.com/roach88/vecwrap/internal/vector"
)

// Mode selects how a variant reports a native condition.
type Mode int

const (
	// Flag variants return the condition as an output.
	Flag Mode = iota
	// Error variants signal it and fail.
	Error
)

func (m Mode) String() string {
	if m == Error {
		return "error"
	}
	return "flag"
}

// Form selects what shapes a variant accepts.
type Form int

const (
	// Scalar variants take single items.
	Scalar Form = iota
	// Vector variants take single items or one leading axis.
	Vector
	// Array variants broadcast over any leading shape.
	Array
)

func (f Form) String() string {
	switch f {
	case Vector:
		return "vector"
	case Array:
		return "array"
	default:
		return "scalar"
	}
}

// Kind is a (mode, form) pair, the coordinates of a slot in a row.
type Kind struct {
	Mode Mode
	Form Form
}

// DefaultKind is what a bare routine name resolves to until repointed.
var DefaultKind = Kind{Mode: Error, Form: Array}

// Slot names a link from one variant to a sibling.
type Slot int

const (
	SlotFlag Slot = iota
	SlotError
	SlotScalar
	SlotVector
	SlotArray
)

// VariantID indexes the registry arena.
type VariantID int

// callFunc is the resolved body of a variant.
type callFunc func(ctx context.Context, args []any) ([]any, error)

// variant is one arena entry. Array variants are built on first use.
type variant struct {
	name string
	base string
	kind Kind
	sig  *ir.Signature
	row  int

	once  sync.Once
	build func() (callFunc, error)
	call  callFunc
	err   error
}

func (v *variant) resolve() (callFunc, error) {
	v.once.Do(func() {
		if v.build != nil {
			v.call, v.err = v.build()
			v.build = nil
		}
	})
	return v.call, v.err
}

// Variant is a handle to one callable of a routine.
type Variant struct {
	reg *Registry
	id  VariantID
}

func (v *Variant) entry() *variant { return v.reg.arena[v.id] }

// ID returns the arena index.
func (v *Variant) ID() VariantID { return v.id }

// Name returns the canonical name, such as "vnorm" or "invert_vector_error".
func (v *Variant) Name() string { return v.entry().name }

// Base returns the routine name.
func (v *Variant) Base() string { return v.entry().base }

// Kind returns the variant's own mode and form.
func (v *Variant) Kind() Kind { return v.entry().kind }

// Signature returns the signature callers see. Error variants that drop
// their flag output do not list it.
func (v *Variant) Signature() *ir.Signature { return v.entry().sig }

// Flag returns the flag-mode sibling of the same form.
func (v *Variant) Flag() *Variant { return v.reg.link(v.id, SlotFlag) }

// Error returns the error-mode sibling of the same form.
func (v *Variant) Error() *Variant { return v.reg.link(v.id, SlotError) }

// Scalar returns the scalar sibling of the same mode.
func (v *Variant) Scalar() *Variant { return v.reg.link(v.id, SlotScalar) }

// Vector returns the vector sibling of the same mode.
func (v *Variant) Vector() *Variant { return v.reg.link(v.id, SlotVector) }

// Array returns the array sibling of the same mode.
func (v *Variant) Array() *Variant { return v.reg.link(v.id, SlotArray) }

// Call invokes the variant with the native library locked for the whole
// call. A signalled condition is returned as a *native.Error and the
// library is reset; argument mistakes come back as *vector.ArgError.
func (v *Variant) Call(ctx context.Context, args ...any) ([]any, error) {
	fn, err := v.entry().resolve()
	if err != nil {
		return nil, err
	}

	native.Lock()
	defer native.Unlock()

	out, err := fn(ctx, args)
	if nerr := native.Take(); nerr != nil {
		return nil, nerr
	}
	if err != nil {
		if errors.Is(err, native.ErrFailed) {
			return nil, &native.Error{Short: "SPICE(UNKNOWN)"}
		}
		return nil, err
	}
	return out, nil
}

// Func returns the variant in the positional calling convention, without
// taking the lock.
func (v *Variant) Func() (vector.Func, error) {
	fn, err := v.entry().resolve()
	if err != nil {
		return nil, err
	}
	return func(args []any) ([]any, error) {
		return fn(context.Background(), args)
	}, nil
}

// canonicalName joins a base name with its form and mode suffixes.
func canonicalName(base string, k Kind) string {
	name := base
	switch k.Form {
	case Vector:
		name += "_vector"
	case Array:
		name += "_array"
	}
	if k.Mode == Error {
		name += "_error"
	}
	return name
}
