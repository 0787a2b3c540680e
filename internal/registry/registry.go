// Package registry resolves the variants of every wrapped routine.
//
// Each routine has up to six callables: flag or error mode crossed with
// scalar, vector or array form. They live in one arena and are grouped by
// routine into rows of fixed slots, so a link from any variant to a
// sibling is a slot lookup in its row and links are symmetric.
//
// Slots collapse when a form does not exist. Without a vectorized form the
// vector and array slots hold the scalar variant; without an error spec
// the error slots hold the flag variants.
//
// A bare routine name resolves through a defaults table, initially
// (error, array). UseErrors, UseFlags, UseScalars, UseVectors and UseArrays
// rewrite that table only; variants and links never change after Build.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/roach88/vecwrap/internal/broadcast"
	"github.com/roach88/vecwrap/internal/compiler"
	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/vector"
)

var (
	// ErrUnknownRoutine is returned for a name with no registered routine.
	ErrUnknownRoutine = errors.New("unknown routine")
	// ErrBadSuffix is returned for a name with an unrecognized or repeated
	// suffix.
	ErrBadSuffix = errors.New("invalid variant suffix")
	// ErrFrozen is returned by Add after Build.
	ErrFrozen = errors.New("registry is built")
	// ErrNotBuilt is returned by lookups before Build.
	ErrNotBuilt = errors.New("registry is not built")
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithEngineOptions passes options to every broadcast engine.
func WithEngineOptions(opts ...broadcast.Option) Option {
	return func(r *Registry) { r.engineOpts = append(r.engineOpts, opts...) }
}

type pending struct {
	spec   ir.RoutineSpec
	scalar vector.Func
	vec    vector.Func
}

type row struct {
	base  string
	spec  *ir.RoutineSpec
	slots [2][3]VariantID
}

// Registry holds the variant graph.
type Registry struct {
	logger     *slog.Logger
	engineOpts []broadcast.Option

	pending []pending
	built   bool

	arena []*variant
	rows  []row
	index map[string]int

	mu       sync.RWMutex
	defaults map[string]Kind
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		index:    make(map[string]int),
		defaults: make(map[string]Kind),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Add registers a routine. A vectorized routine needs vec; scalar may then
// be nil and is derived from vec. Other routines need scalar only.
func (r *Registry) Add(spec ir.RoutineSpec, scalar, vec vector.Func) error {
	if r.built {
		return fmt.Errorf("add %s: %w", spec.Name, ErrFrozen)
	}
	if spec.Name == "" || strings.Contains(spec.Name, "_") {
		return fmt.Errorf("add %q: routine names must be non-empty and contain no '_'", spec.Name)
	}
	if _, dup := r.index[spec.Name]; dup {
		return fmt.Errorf("add %s: already registered", spec.Name)
	}
	if spec.Vectorized() && vec == nil {
		return fmt.Errorf("add %s: vectorized routine has no vector form", spec.Name)
	}
	if !spec.Vectorized() && scalar == nil {
		return fmt.Errorf("add %s: no scalar form", spec.Name)
	}
	if spec.Error != nil {
		if _, ok := spec.Signature.Output(spec.Error.Flag); !ok {
			return fmt.Errorf("add %s: error flag %q is not an output", spec.Name, spec.Error.Flag)
		}
	}
	r.index[spec.Name] = len(r.pending)
	r.pending = append(r.pending, pending{spec: spec, scalar: scalar, vec: vec})
	return nil
}

// Build creates every variant and freezes the graph.
func (r *Registry) Build() error {
	if r.built {
		return ErrFrozen
	}
	r.rows = make([]row, 0, len(r.pending))
	for i := range r.pending {
		r.buildRow(&r.pending[i])
	}
	r.built = true
	r.pending = nil
	r.logger.Debug("registry built", "routines", len(r.rows), "variants", len(r.arena))
	return nil
}

func (r *Registry) add(v *variant) VariantID {
	id := VariantID(len(r.arena))
	r.arena = append(r.arena, v)
	return id
}

func (r *Registry) buildRow(p *pending) {
	spec := &p.spec
	base := spec.Name
	sig := &spec.Signature
	ri := len(r.rows)
	rw := row{base: base, spec: spec}

	scalar, vec := p.scalar, p.vec
	var macro *ir.MacroSig
	if spec.Vectorized() {
		m, err := compiler.ParseMacro(spec.Vectorize)
		if err != nil {
			r.logger.Warn("registry: macro not parsed", "routine", base, "error", err)
		} else {
			macro = m
		}
		if scalar == nil {
			scalar = vector.ScalarOf(base, sig, vec)
		}
		vec = vector.Checked(base+"_vector", sig, vec)
	}

	newVariant := func(k Kind, s *ir.Signature, fn vector.Func) VariantID {
		return r.add(&variant{
			name: canonicalName(base, k),
			base: base,
			kind: k,
			sig:  s,
			row:  ri,
			call: plain(fn),
		})
	}
	newArray := func(k Kind, s *ir.Signature, v, sc vector.Func) VariantID {
		name := canonicalName(base, k)
		opts := []broadcast.Option{broadcast.WithLogger(r.logger), broadcast.WithFrame(name)}
		if m := macroFor(macro, sig, s); m != nil {
			opts = append(opts, broadcast.WithMacro(m))
		}
		opts = append(opts, r.engineOpts...)
		return r.add(&variant{
			name: name,
			base: base,
			kind: k,
			sig:  s,
			row:  ri,
			build: func() (callFunc, error) {
				e, err := broadcast.New(base, s, v, sc, opts...)
				if err != nil {
					return nil, err
				}
				return e.Call, nil
			},
		})
	}

	fill := func(m Mode, s *ir.Signature, sc, v vector.Func) {
		rw.slots[m][Scalar] = newVariant(Kind{m, Scalar}, s, sc)
		if v == nil {
			rw.slots[m][Vector] = rw.slots[m][Scalar]
			rw.slots[m][Array] = rw.slots[m][Scalar]
			return
		}
		rw.slots[m][Vector] = newVariant(Kind{m, Vector}, s, v)
		rw.slots[m][Array] = newArray(Kind{m, Array}, s, v, sc)
	}

	fill(Flag, sig, scalar, vec)
	if spec.Error == nil {
		rw.slots[Error] = rw.slots[Flag]
	} else {
		esig := errorSignature(sig, spec.Error)
		escalar := deriveError(canonicalName(base, Kind{Error, Scalar}), sig, spec.Error, scalar)
		var evec vector.Func
		if vec != nil {
			evec = deriveError(canonicalName(base, Kind{Error, Vector}), sig, spec.Error, vec)
		}
		fill(Error, esig, escalar, evec)
	}

	r.rows = append(r.rows, rw)
	r.defaults[base] = DefaultKind
}

// macroFor lines the macro's outputs up with s, which is sig or its error
// form with the flag output dropped. Outputs pair with sig's by position.
func macroFor(m *ir.MacroSig, sig, s *ir.Signature) *ir.MacroSig {
	if m == nil || len(m.Outputs) != len(sig.Outputs) {
		return nil
	}
	out := *m
	out.Outputs = make([]ir.MacroArg, 0, len(s.Outputs))
	for _, arg := range s.Outputs {
		j, ok := sig.Output(arg.Name)
		if !ok {
			return nil
		}
		out.Outputs = append(out.Outputs, m.Outputs[j])
	}
	return &out
}

func plain(fn vector.Func) callFunc {
	return func(_ context.Context, args []any) ([]any, error) {
		return fn(args)
	}
}

// Link returns the sibling of id in the given slot.
func (r *Registry) Link(id VariantID, slot Slot) VariantID {
	v := r.arena[id]
	slots := &r.rows[v.row].slots
	switch slot {
	case SlotFlag:
		return slots[Flag][v.kind.Form]
	case SlotError:
		return slots[Error][v.kind.Form]
	case SlotScalar:
		return slots[v.kind.Mode][Scalar]
	case SlotVector:
		return slots[v.kind.Mode][Vector]
	default:
		return slots[v.kind.Mode][Array]
	}
}

func (r *Registry) link(id VariantID, slot Slot) *Variant {
	return &Variant{reg: r, id: r.Link(id, slot)}
}

// Variant returns the handle for an arena index.
func (r *Registry) Variant(id VariantID) *Variant {
	return &Variant{reg: r, id: id}
}

// Routines returns the registered routine names in registration order.
func (r *Registry) Routines() []string {
	names := make([]string, len(r.rows))
	for i, rw := range r.rows {
		names[i] = rw.base
	}
	return names
}

// Spec returns the catalog entry of a routine.
func (r *Registry) Spec(base string) (*ir.RoutineSpec, bool) {
	i, ok := r.index[base]
	if !ok || !r.built {
		return nil, false
	}
	return r.rows[i].spec, true
}

// Resolve returns the variant of base in slot k.
func (r *Registry) Resolve(base string, k Kind) (*Variant, error) {
	if !r.built {
		return nil, ErrNotBuilt
	}
	i, ok := r.index[base]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoutine, base)
	}
	return &Variant{reg: r, id: r.rows[i].slots[k.Mode][k.Form]}, nil
}

// Lookup resolves a name such as "vnorm", "vnorm_vector", "bodn2c_flag" or
// "invert_scalar_error". Parts the name leaves out come from the defaults
// table.
func (r *Registry) Lookup(name string) (*Variant, error) {
	parts := strings.Split(name, "_")
	base := parts[0]
	k, err := r.Default(base)
	if err != nil {
		return nil, err
	}
	var haveMode, haveForm bool
	for _, p := range parts[1:] {
		switch p {
		case "flag", "error":
			if haveMode {
				return nil, fmt.Errorf("%w: %s", ErrBadSuffix, name)
			}
			haveMode = true
			k.Mode = Flag
			if p == "error" {
				k.Mode = Error
			}
		case "scalar", "vector", "array":
			if haveForm {
				return nil, fmt.Errorf("%w: %s", ErrBadSuffix, name)
			}
			haveForm = true
			switch p {
			case "scalar":
				k.Form = Scalar
			case "vector":
				k.Form = Vector
			default:
				k.Form = Array
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrBadSuffix, name)
		}
	}
	return r.Resolve(base, k)
}

// Default returns the kind a bare routine name currently resolves to.
func (r *Registry) Default(base string) (Kind, error) {
	if !r.built {
		return Kind{}, ErrNotBuilt
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.defaults[base]
	if !ok {
		return Kind{}, fmt.Errorf("%w: %s", ErrUnknownRoutine, base)
	}
	return k, nil
}

// Versions returns every distinct variant of a routine, flag mode first.
func (r *Registry) Versions(base string) ([]*Variant, error) {
	if !r.built {
		return nil, ErrNotBuilt
	}
	i, ok := r.index[base]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoutine, base)
	}
	var ids []VariantID
	for _, m := range r.rows[i].slots {
		for _, id := range m {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	out := make([]*Variant, len(ids))
	for j, id := range ids {
		out[j] = &Variant{reg: r, id: id}
	}
	return out, nil
}

// UseErrors makes the named routines, or all when none are named, default
// to error mode.
func (r *Registry) UseErrors(names ...string) error {
	return r.repoint(names, func(k *Kind) { k.Mode = Error })
}

// UseFlags makes the named routines default to flag mode.
func (r *Registry) UseFlags(names ...string) error {
	return r.repoint(names, func(k *Kind) { k.Mode = Flag })
}

// UseScalars makes the named routines default to the scalar form.
func (r *Registry) UseScalars(names ...string) error {
	return r.repoint(names, func(k *Kind) { k.Form = Scalar })
}

// UseVectors makes the named routines default to the vector form.
func (r *Registry) UseVectors(names ...string) error {
	return r.repoint(names, func(k *Kind) { k.Form = Vector })
}

// UseArrays makes the named routines default to the array form.
func (r *Registry) UseArrays(names ...string) error {
	return r.repoint(names, func(k *Kind) { k.Form = Array })
}

func (r *Registry) repoint(names []string, set func(*Kind)) error {
	if !r.built {
		return ErrNotBuilt
	}
	if len(names) == 0 {
		names = r.Routines()
	}
	for _, n := range names {
		if _, ok := r.index[n]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRoutine, n)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		k := r.defaults[n]
		set(&k)
		r.defaults[n] = k
	}
	return nil
}
