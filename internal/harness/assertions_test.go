package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Call: "invert", Variant: "invert_array_error", Status: "ok"},
		{Seq: 2, Call: "invert", Variant: "invert_array_error", Status: "failed"},
		{Seq: 3, Call: "invert_flag", Variant: "invert_array", Status: "ok"},
		{Seq: 4, Call: "rpd", Variant: "rpd", Status: "arg_error"},
	}
}

func TestAssertCallCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertCallCount(trace, Assertion{Routine: "invert", Count: 3}))
	assert.NoError(t, assertCallCount(trace, Assertion{Variant: "invert_array", Count: 1}))
	assert.NoError(t, assertCallCount(trace, Assertion{Routine: "invert", Variant: "invert_array_error", Count: 2}))
	assert.NoError(t, assertCallCount(trace, Assertion{Routine: "vnorm", Count: 0}))

	err := assertCallCount(trace, Assertion{Routine: "rpd", Count: 2})
	var aerr *AssertionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, AssertCallCount, aerr.Type)
	assert.Equal(t, "2 calls of rpd", aerr.Expected)
	assert.Equal(t, "1 calls", aerr.Actual)
}

func TestAssertStatusOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertStatusOrder(trace, Assertion{Statuses: []string{"ok", "failed", "ok", "arg_error"}}))

	err := assertStatusOrder(trace, Assertion{Statuses: []string{"ok", "ok"}})
	var aerr *AssertionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "ok, ok", aerr.Expected)
	assert.Equal(t, "ok, failed, ok, arg_error", aerr.Actual)
}

func TestAssertTraceDepth(t *testing.T) {
	assert.NoError(t, assertTraceDepth(&Result{Depth: 0}, Assertion{}))
	assert.Error(t, assertTraceDepth(&Result{Depth: 2}, Assertion{}))
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertCallCount,
		Expected: "2 calls of rpd",
		Actual:   "1 calls",
		Trace:    sampleTrace()[:2],
	}

	assert.Equal(t, `Assertion failed: call_count
  Expected: 2 calls of rpd
  Actual: 1 calls

Full trace:
  [1] invert -> invert_array_error ok
  [2] invert -> invert_array_error failed
`, err.Error())
}

func TestEvaluateAssertions_CollectsFailures(t *testing.T) {
	result := NewResult("s")
	result.Trace = sampleTrace()

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertCallCount, Routine: "invert", Count: 3},
		{Type: AssertCallCount, Routine: "rpd", Count: 5},
		{Type: AssertTraceDepth, Depth: 1},
		{Type: "bogus"},
	}, nil)

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "5 calls of rpd")
	assert.Contains(t, errs[1], "depth 1")
	assert.Equal(t, "unknown assertion type: bogus", errs[2])
}
