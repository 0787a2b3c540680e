// Package broadcast lifts a routine's vectorized form to arguments of any
// leading shape using elementwise broadcasting rules.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/ndarray"
	"github.com/roach88/vecwrap/internal/native"
	"github.com/roach88/vecwrap/internal/vector"
)

const instrumentationName = "github.com/roach88/vecwrap/internal/broadcast"

// Call paths recorded on spans and metrics.
const (
	PathScalar    = "scalar"
	PathBroadcast = "broadcast"
	PathEmpty     = "empty"
)

// Engine wraps one routine. It is immutable after New and safe to reuse;
// callers serialize access to the native library with native.Lock.
type Engine struct {
	name   string
	frame  string
	sig    *ir.Signature
	macro  *ir.MacroSig
	vector vector.Func
	scalar vector.Func

	logger   *slog.Logger
	tracer   trace.Tracer
	calls    metric.Int64Counter
	elements metric.Int64Histogram
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	frame  string
	macro  *ir.MacroSig
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
}

// WithFrame sets the trace frame name. Defaults to name + "_array".
func WithFrame(frame string) Option {
	return func(c *engineConfig) { c.frame = frame }
}

// WithMacro gives the engine the parsed macro of the vector form. Its
// outputs must line up with the signature's. Without it, wildcard output
// axes of an empty broadcast are sized 0.
func WithMacro(m *ir.MacroSig) Option {
	return func(c *engineConfig) { c.macro = m }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *engineConfig) { c.logger = l }
}

// WithTracer sets the tracer. Defaults to the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *engineConfig) { c.tracer = t }
}

// WithMeter sets the meter. Defaults to the global provider.
func WithMeter(m metric.Meter) Option {
	return func(c *engineConfig) { c.meter = m }
}

// New builds the broadcasting form of the named routine from its vector and
// scalar forms.
func New(name string, sig *ir.Signature, vec, scalar vector.Func, opts ...Option) (*Engine, error) {
	if vec == nil || scalar == nil {
		return nil, fmt.Errorf("broadcast %s: vector and scalar forms are required", name)
	}
	cfg := engineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.frame == "" {
		cfg.frame = name + "_array"
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(instrumentationName)
	}
	if cfg.meter == nil {
		cfg.meter = otel.Meter(instrumentationName)
	}

	calls, err := cfg.meter.Int64Counter("vecwrap.broadcast.calls",
		metric.WithDescription("Broadcasting calls by routine, path and outcome"),
		metric.WithUnit("{call}"))
	if err != nil {
		return nil, fmt.Errorf("broadcast %s: %w", name, err)
	}
	elements, err := cfg.meter.Int64Histogram("vecwrap.broadcast.elements",
		metric.WithDescription("Items per vectorized call"),
		metric.WithUnit("{item}"))
	if err != nil {
		return nil, fmt.Errorf("broadcast %s: %w", name, err)
	}

	return &Engine{
		name:     name,
		frame:    cfg.frame,
		sig:      sig,
		macro:    cfg.macro,
		vector:   vec,
		scalar:   scalar,
		logger:   cfg.logger,
		tracer:   cfg.tracer,
		calls:    calls,
		elements: elements,
	}, nil
}

// Name returns the routine name.
func (e *Engine) Name() string { return e.name }

// Frame returns the trace frame pushed by Call.
func (e *Engine) Frame() string { return e.frame }

// Func adapts the engine to the shared calling convention.
func (e *Engine) Func() vector.Func {
	return func(args []any) ([]any, error) {
		return e.Call(context.Background(), args)
	}
}

// operand is one numeric argument split into leading and item axes.
type operand struct {
	index int
	arr   *ndarray.Array[float64]
	lead  []int
	item  []int
}

// Call runs the routine over args. On a native failure the results are nil,
// the error is native.ErrFailed and the message stays readable through
// native.Getmsg.
func (e *Engine) Call(ctx context.Context, args []any) (results []any, err error) {
	ctx, span := e.tracer.Start(ctx, "broadcast "+e.name,
		trace.WithAttributes(attribute.String("vecwrap.routine", e.name)))
	defer span.End()

	path := PathBroadcast
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			msg := err.Error()
			if errors.Is(err, native.ErrFailed) {
				msg = native.Getmsg(native.Short)
			}
			span.SetStatus(codes.Error, msg)
		}
		span.SetAttributes(attribute.String("vecwrap.path", path))
		e.calls.Add(ctx, 1, metric.WithAttributes(
			attribute.String("vecwrap.routine", e.name),
			attribute.String("vecwrap.path", path),
			attribute.String("vecwrap.outcome", outcome),
		))
	}()

	if len(args) != len(e.sig.Inputs) {
		return nil, &vector.ArgError{
			Routine: e.frame,
			Index:   -1,
			Message: fmt.Sprintf("expected %d arguments, got %d", len(e.sig.Inputs), len(args)),
		}
	}

	g := native.Enter(e.frame)
	defer g.Leave()

	var ops []operand
	for _, k := range e.sig.NumericInputs() {
		op, err := e.split(g, k, args[k])
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	var active []operand
	for _, op := range ops {
		if !ndarray.AllOnes(op.lead) {
			active = append(active, op)
		}
	}
	if len(active) == 0 {
		path = PathScalar
		e.logger.DebugContext(ctx, "broadcast call", "routine", e.name, "path", path)
		return e.scalar(args)
	}

	leads := make([][]int, len(active))
	for i, op := range active {
		leads[i] = op.lead
	}
	bshape, err := ndarray.BroadcastShapes(leads...)
	if err != nil {
		return nil, g.Fail("SPICE(ARRAYSHAPEMISMATCH)",
			"Incompatible shapes for broadcasting: %s", ndarray.FormatShapes(leads))
	}
	n := ndarray.Size(bshape)
	span.SetAttributes(
		attribute.String("vecwrap.broadcast_shape", ndarray.FormatShape(bshape)),
		attribute.Int("vecwrap.elements", n),
	)
	e.logger.DebugContext(ctx, "broadcast call",
		"routine", e.name, "shape", ndarray.FormatShape(bshape), "elements", n)

	if n == 0 {
		path = PathEmpty
		return e.empty(bshape, ops), nil
	}

	flat := slices.Clone(args)
	for _, op := range ops {
		a, err := flatten(op, bshape)
		if err != nil {
			return nil, g.Fail("SPICE(ARRAYSHAPEMISMATCH)", "%v", err)
		}
		flat[op.index] = a
	}

	e.elements.Record(ctx, int64(n), metric.WithAttributes(attribute.String("vecwrap.routine", e.name)))
	out, err := e.vector(flat)
	if err != nil {
		return nil, err
	}
	if native.Failed() {
		return nil, native.ErrFailed
	}
	return reshapeResults(out, bshape)
}

// split converts argument k and checks its item shape.
func (e *Engine) split(g *native.Guard, k int, arg any) (operand, error) {
	desc := e.sig.Inputs[k]
	a, err := ndarray.AsFloat(arg)
	if err != nil {
		// Ragged and non-numeric values are both conversion failures.
		return operand{}, g.Fail("SPICE(INVALIDARRAYSHAPE)", "Ragged input array for %q: ", desc.Name)
	}

	shape := a.Shape()
	rank := desc.ItemRank()
	ok := len(shape) >= rank
	if ok {
		for i, d := range desc.ItemShape {
			if d != 0 && shape[len(shape)-rank+i] != d {
				ok = false
			}
		}
	}
	if !ok {
		return operand{}, g.Fail("SPICE(INVALIDARRAYSHAPE)",
			"Invalid array shape %s for input %q in module %s: (...,%s is required",
			ndarray.FormatShape(shape), desc.Name, e.name, desc.Pattern())
	}
	cut := len(shape) - rank
	return operand{index: k, arr: a, lead: shape[:cut], item: shape[cut:]}, nil
}

// flatten expands op to the broadcast shape when needed and packs it as
// (n,)+item for the vectorized form. Operands with an all-ones leading
// shape are passed as a single item and reused for every iteration.
// Counts are explicit because a wildcard item axis may be 0.
func flatten(op operand, bshape []int) (*ndarray.Array[float64], error) {
	if ndarray.AllOnes(op.lead) {
		return op.arr.Reshape(append([]int{1}, op.item...)...)
	}
	a := op.arr
	// Leading unit axes never change the broadcast result.
	lead := op.lead
	for len(lead) > 0 && lead[0] == 1 {
		lead = lead[1:]
	}
	if !slices.Equal(lead, bshape) {
		full := append(slices.Clone(bshape), op.item...)
		var err error
		if a, err = ndarray.BroadcastTo(a, full); err != nil {
			return nil, err
		}
	}
	return a.Reshape(append([]int{ndarray.Size(bshape)}, op.item...)...)
}

// empty builds zero-length results for a broadcast shape with no elements.
// A wildcard output axis takes the runtime size of the input axis its macro
// letter names, as the vectorized loop would; without a macro it is 0.
func (e *Engine) empty(bshape []int, ops []operand) []any {
	sizes := e.dimSizes(ops)
	out := make([]any, len(e.sig.Outputs))
	for i, desc := range e.sig.Outputs {
		shape := append(slices.Clone(bshape), e.outputItem(i, desc, sizes)...)
		switch desc.Kind {
		case ir.KindInt:
			out[i] = ndarray.Zeros[int64](shape...)
		case ir.KindBool:
			out[i] = ndarray.Zeros[bool](shape...)
		case ir.KindText:
			out[i] = []string{}
		default:
			out[i] = ndarray.Zeros[float64](shape...)
		}
	}
	return out
}

// dimSizes maps the macro's input axis names to the operands' item sizes.
func (e *Engine) dimSizes(ops []operand) map[string]int {
	sizes := map[string]int{}
	if e.macro == nil {
		return sizes
	}
	for _, op := range ops {
		if op.index >= len(e.macro.Inputs) {
			continue
		}
		names := e.macro.Inputs[op.index].DimNames
		for j, n := range op.item {
			if j+1 < len(names) {
				sizes[names[j+1]] = n
			}
		}
	}
	return sizes
}

func (e *Engine) outputItem(i int, desc ir.ArgDesc, sizes map[string]int) []int {
	item := slices.Clone(desc.ItemShape)
	if e.macro == nil || i >= len(e.macro.Outputs) {
		return item
	}
	values := e.macro.Outputs[i].DimValues
	for j, d := range item {
		if d != 0 || j+1 >= len(values) {
			continue
		}
		if n, ok := sizes[values[j+1]]; ok {
			item[j] = n
		}
	}
	return item
}

func reshapeResults(out []any, bshape []int) ([]any, error) {
	res := make([]any, len(out))
	for i, r := range out {
		var err error
		switch a := r.(type) {
		case *ndarray.Array[float64]:
			res[i], err = a.Reshape(append(slices.Clone(bshape), a.Shape()[1:]...)...)
		case *ndarray.Array[int64]:
			res[i], err = a.Reshape(append(slices.Clone(bshape), a.Shape()[1:]...)...)
		case *ndarray.Array[bool]:
			res[i], err = a.Reshape(append(slices.Clone(bshape), a.Shape()[1:]...)...)
		default:
			res[i] = r
		}
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
