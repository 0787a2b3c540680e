package harness

// TraceEvent is one executed call as seen by the trace. It carries shapes
// and messages but never numeric values, so traces stay canonical.
type TraceEvent struct {
	Seq          int64    `json:"seq"`
	Call         string   `json:"call"`    // name as written in the scenario
	Variant      string   `json:"variant"` // canonical variant it resolved to
	Status       string   `json:"status"`  // "ok", "failed" or "arg_error"
	InputShapes  []string `json:"input_shapes"`
	OutputShapes []string `json:"output_shapes,omitempty"`
	Short        string   `json:"short,omitempty"`
	Traceback    string   `json:"traceback,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses and assertions match.
	Pass bool `json:"pass"`

	// Session is the journal session the calls were recorded under.
	Session string `json:"session"`

	// Trace contains every executed call in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Depth is the native trace depth after the last step.
	Depth int `json:"depth"`
}

// NewResult creates a new passing result.
func NewResult(session string) *Result {
	return &Result{
		Pass:    true,
		Session: session,
		Trace:   []TraceEvent{},
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a call to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
