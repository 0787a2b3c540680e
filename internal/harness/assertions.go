package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/vecwrap/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s -> %s %s\n", i+1, event.Call, event.Variant, event.Status)
		}
	}

	return buf.String()
}

// AssertionContext gives assertions access to the journal.
type AssertionContext struct {
	Store   *store.Store
	Session string
	Ctx     context.Context
}

// EvaluateAssertions checks every assertion and returns the messages of
// those that fail.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertCallCount:
			err = assertCallCount(result.Trace, a)
		case AssertStatusOrder:
			err = assertStatusOrder(result.Trace, a)
		case AssertTraceDepth:
			err = assertTraceDepth(result, a)
		case AssertJournal:
			err = assertJournal(actx, result.Trace, a)
		default:
			err = fmt.Errorf("unknown assertion type: %s", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// assertCallCount checks that calls resolving to the variant, or to any
// variant of the routine, appear exactly Count times.
func assertCallCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if assertion.Variant != "" && event.Variant != assertion.Variant {
			continue
		}
		if assertion.Routine != "" && baseName(event.Variant) != assertion.Routine {
			continue
		}
		count++
	}

	if count != assertion.Count {
		target := assertion.Variant
		if target == "" {
			target = assertion.Routine
		}
		return &AssertionError{
			Type:     AssertCallCount,
			Expected: fmt.Sprintf("%d calls of %s", assertion.Count, target),
			Actual:   fmt.Sprintf("%d calls", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertStatusOrder checks the exact sequence of call statuses.
func assertStatusOrder(trace []TraceEvent, assertion Assertion) error {
	got := make([]string, len(trace))
	for i, event := range trace {
		got[i] = event.Status
	}
	if !slices.Equal(got, assertion.Statuses) {
		return &AssertionError{
			Type:     AssertStatusOrder,
			Expected: strings.Join(assertion.Statuses, ", "),
			Actual:   strings.Join(got, ", "),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceDepth checks the native trace depth left after the run. Every
// frame entered by a call must have been left again.
func assertTraceDepth(result *Result, assertion Assertion) error {
	if result.Depth != assertion.Depth {
		return &AssertionError{
			Type:     AssertTraceDepth,
			Expected: fmt.Sprintf("depth %d", assertion.Depth),
			Actual:   fmt.Sprintf("depth %d", result.Depth),
		}
	}
	return nil
}

// assertJournal checks the number of journaled calls of the session,
// filtered by status when one is given.
func assertJournal(actx *AssertionContext, trace []TraceEvent, assertion Assertion) error {
	if actx == nil || actx.Store == nil {
		return fmt.Errorf("journal assertion requires a store")
	}
	calls, err := actx.Store.ReadCalls(actx.Ctx, actx.Session)
	if err != nil {
		return &AssertionError{
			Type:     AssertJournal,
			Expected: fmt.Sprintf("read session %s", actx.Session),
			Actual:   fmt.Sprintf("read error: %v", err),
		}
	}
	count := 0
	for _, c := range calls {
		if assertion.Status == "" || c.Status == assertion.Status {
			count++
		}
	}
	if count != assertion.Count {
		what := "calls"
		if assertion.Status != "" {
			what = assertion.Status + " calls"
		}
		return &AssertionError{
			Type:     AssertJournal,
			Expected: fmt.Sprintf("%d journaled %s", assertion.Count, what),
			Actual:   fmt.Sprintf("%d journaled %s", count, what),
			Trace:    trace,
		}
	}
	return nil
}

func baseName(variant string) string {
	base, _, _ := strings.Cut(variant, "_")
	return base
}
