package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/roach88/vecwrap/internal/broadcast"
	"github.com/roach88/vecwrap/internal/ndarray"
	"github.com/roach88/vecwrap/internal/native"
	"github.com/roach88/vecwrap/internal/registry"
	"github.com/roach88/vecwrap/internal/store"
	"github.com/roach88/vecwrap/internal/testutil"
)

const defaultTolerance = 1e-9

// Harness is the test execution engine.
// It runs scenarios against a registry with a deterministic clock and a
// fixed session token.
type Harness struct {
	reg     *registry.Registry
	store   *store.Store
	journal *store.Journal
	logger  *slog.Logger
}

type config struct {
	logger      *slog.Logger
	catalogHash string
}

// Option configures Run.
type Option func(*config)

// WithLogger sets the harness logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithCatalogHash stamps journaled calls with hash.
func WithCatalogHash(hash string) Option {
	return func(c *config) { c.catalogHash = hash }
}

// Run executes a test scenario against reg and returns the result.
//
// Each scenario journals into a fresh in-memory database. Use steps
// change reg's defaults, so callers should hand every scenario its own
// registry.
//
// The returned error reports a scenario that could not be executed (an
// unknown routine, a journal failure). Failed expectations are recorded in
// the result instead.
func Run(reg *registry.Registry, scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := config{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		catalogHash: "test-catalog-hash",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	session := testutil.NewFixedSessionGenerator(scenario.Session).Generate()
	clock := testutil.NewScenarioClock()
	journal, err := store.NewJournal(ctx, st, session, cfg.catalogHash, store.WithClock(clock))
	if err != nil {
		return nil, err
	}

	h := &Harness{
		reg:     reg,
		store:   st,
		journal: journal,
		logger:  cfg.logger,
	}

	native.Reset()
	result := NewResult(session)
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}
	result.Depth = native.Trcdep()
	h.logger.Debug("scenario steps done", "scenario", scenario.Name, "journaled", clock.Calls())

	actx := &AssertionContext{
		Store:   st,
		Session: session,
		Ctx:     ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSteps runs all steps and validates expect clauses.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		if step.Use != "" {
			if err := h.use(step); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			h.logger.Debug("defaults switched", "step", i, "use", step.Use, "routines", step.Routines)
			continue
		}
		if err := h.executeCall(ctx, i, step, result); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (h *Harness) use(step Step) error {
	switch step.Use {
	case "errors":
		return h.reg.UseErrors(step.Routines...)
	case "flags":
		return h.reg.UseFlags(step.Routines...)
	case "scalars":
		return h.reg.UseScalars(step.Routines...)
	case "vectors":
		return h.reg.UseVectors(step.Routines...)
	case "arrays":
		return h.reg.UseArrays(step.Routines...)
	}
	return fmt.Errorf("invalid use %q", step.Use)
}

// executeCall performs one call, journals it and checks its expect clause.
func (h *Harness) executeCall(ctx context.Context, i int, step Step, result *Result) error {
	v, err := h.reg.Lookup(step.Call)
	if err != nil {
		return err
	}

	args, err := convertArgs(step.Args)
	if err != nil {
		return fmt.Errorf("args: %w", err)
	}
	named := make(map[string]any, len(step.Named))
	for k, val := range step.Named {
		if named[k], err = convertValue(val); err != nil {
			return fmt.Errorf("named %q: %w", k, err)
		}
	}

	var out []any
	bound, callErr := broadcast.Bind(v.Signature(), args, named)
	if callErr == nil {
		out, callErr = v.Call(ctx, bound...)
	} else {
		bound = args
	}

	call, err := h.journal.Record(ctx, store.Entry{
		Routine: v.Base(),
		Variant: v.Name(),
		Args:    bound,
		Results: out,
		Err:     callErr,
	})
	if err != nil {
		return err
	}

	result.AddTrace(TraceEvent{
		Seq:          call.Seq,
		Call:         step.Call,
		Variant:      call.Variant,
		Status:       call.Status,
		InputShapes:  call.InputShapes,
		OutputShapes: call.OutputShapes,
		Short:        call.ShortMsg,
		Traceback:    call.Traceback,
	})

	if step.Expect != nil {
		for _, msg := range checkExpect(step.Expect, call, out) {
			result.AddError(fmt.Sprintf("step %d (%s): %s", i, step.Call, msg))
		}
	}

	h.logger.Debug("step completed",
		"step", i,
		"call", step.Call,
		"variant", call.Variant,
		"call_id", call.ID,
		"status", call.Status,
	)
	return nil
}

// checkExpect compares a journaled call with its expect clause and returns
// one message per mismatch.
func checkExpect(e *ExpectClause, call store.Call, out []any) []string {
	var errs []string

	want := e.Status
	if want == "" {
		want = store.StatusOK
		if e.Error != "" {
			want = store.StatusFailed
		}
	}
	if call.Status != want {
		msg := fmt.Sprintf("expected status %s, got %s", want, call.Status)
		if call.LongMsg != "" {
			msg += ": " + call.LongMsg
		}
		return append(errs, msg)
	}

	if e.Error != "" && call.ShortMsg != e.Error {
		errs = append(errs, fmt.Sprintf("expected error %s, got %s", e.Error, call.ShortMsg))
	}
	if e.Message != "" && !strings.Contains(call.LongMsg, e.Message) {
		errs = append(errs, fmt.Sprintf("expected message containing %q, got %q", e.Message, call.LongMsg))
	}
	if e.Traceback != "" && call.Traceback != e.Traceback {
		errs = append(errs, fmt.Sprintf("expected traceback %q, got %q", e.Traceback, call.Traceback))
	}
	if call.Status != store.StatusOK {
		return errs
	}

	if e.Shapes != nil && !slices.Equal(e.Shapes, call.OutputShapes) {
		errs = append(errs, fmt.Sprintf("expected output shapes %v, got %v", e.Shapes, call.OutputShapes))
	}
	if e.Shape == nil && e.Values == nil && e.Scalar == nil {
		return errs
	}
	if len(out) == 0 {
		return append(errs, "call returned no outputs")
	}
	first := out[0]

	if e.Scalar != nil && *e.Scalar != !isArray(first) {
		errs = append(errs, fmt.Sprintf("expected scalar=%t, got %T", *e.Scalar, first))
	}
	if e.Shape != nil {
		shape, ok := ndarray.ShapeOf(first)
		if !ok || !slices.Equal(e.Shape, shape) {
			errs = append(errs, fmt.Sprintf("expected shape %s, got %s",
				ndarray.FormatShape(e.Shape), ndarray.FormatShape(shape)))
		}
	}
	if e.Values != nil {
		if msg := compareValues(e.Values, first, e.Tolerance); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

func compareValues(want []float64, got any, tol float64) string {
	if tol == 0 {
		tol = defaultTolerance
	}
	a, err := ndarray.AsFloat(got)
	if err != nil {
		return fmt.Sprintf("expected numeric output, got %T", got)
	}
	data := a.Data()
	if len(data) != len(want) {
		return fmt.Sprintf("expected %d values, got %d", len(want), len(data))
	}
	for i := range want {
		if math.Abs(data[i]-want[i]) > tol {
			return fmt.Sprintf("value %d: expected %g, got %g", i, want[i], data[i])
		}
	}
	return ""
}

func isArray(v any) bool {
	switch v.(type) {
	case *ndarray.Array[float64], *ndarray.Array[int64], *ndarray.Array[bool]:
		return true
	}
	return false
}

// convertArgs converts YAML-parsed arguments into call arguments.
func convertArgs(args []any) ([]any, error) {
	out := make([]any, len(args))
	for i, val := range args {
		v, err := convertValue(val)
		if err != nil {
			return nil, fmt.Errorf("arg %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// convertValue checks a YAML-parsed value. Nested lists are left for the
// broadcast engine to pack.
func convertValue(val any) (any, error) {
	switch v := val.(type) {
	case nil:
		return nil, fmt.Errorf("null values are not valid arguments")
	case string, bool, int, int64, float64:
		return v, nil
	case []any:
		for i, elem := range v {
			if _, err := convertValue(elem); err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", val)
	}
}
