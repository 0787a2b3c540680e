package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a sequence of routine
// calls, the outcome each one must have, and assertions over the whole
// trace.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Session is an optional fixed journal session token.
	// If empty, defaults to "test-session-default".
	Session string `yaml:"session,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and journal.
	// Supported types: call_count, status_order, trace_depth, journal
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is either a routine call or a switch of the registry defaults.
type Step struct {
	// Call is the routine or variant name, e.g. "vnorm" or "bodn2c_flag".
	Call string `yaml:"call,omitempty"`

	// Args are positional arguments. Nested lists become arrays.
	Args []any `yaml:"args,omitempty"`

	// Named are keyword arguments bound after Args.
	Named map[string]any `yaml:"named,omitempty"`

	// Use switches defaults: errors, flags, scalars, vectors or arrays.
	Use string `yaml:"use,omitempty"`

	// Routines limits Use to the named routines. Empty means all.
	Routines []string `yaml:"routines,omitempty"`

	// Expect specifies the expected outcome.
	// If nil, no validation is performed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected call behavior. Every field is optional;
// only the fields given are checked.
type ExpectClause struct {
	// Status is "ok", "failed" or "arg_error". Error implies "failed".
	Status string `yaml:"status,omitempty"`

	// Error is the short message of the signalled condition.
	Error string `yaml:"error,omitempty"`

	// Message must be contained in the long message.
	Message string `yaml:"message,omitempty"`

	// Traceback is the exact failure traceback.
	Traceback string `yaml:"traceback,omitempty"`

	// Shape is the shape of the first output.
	Shape []int `yaml:"shape,omitempty"`

	// Shapes are the rendered shapes of all outputs, e.g. "(2, 3)", "()", "str".
	Shapes []string `yaml:"shapes,omitempty"`

	// Values are the flattened elements of the first output.
	Values []float64 `yaml:"values,omitempty"`

	// Tolerance applies to Values. Defaults to 1e-9.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Scalar asserts that the first output is (or is not) a plain value
	// rather than an array.
	Scalar *bool `yaml:"scalar,omitempty"`
}

// Assertion validates the trace or the journal.
type Assertion struct {
	// Type specifies the assertion type:
	// - "call_count": calls resolving to Variant (or routine Routine) happen Count times
	// - "status_order": the call statuses are exactly Statuses
	// - "trace_depth": the native trace depth after the run is Depth
	// - "journal": the journal holds Count calls with Status (all when empty)
	Type string `yaml:"type"`

	// Routine is a base routine name (used by call_count).
	Routine string `yaml:"routine,omitempty"`

	// Variant is a canonical variant name (used by call_count).
	Variant string `yaml:"variant,omitempty"`

	// Count is the expected number of calls (used by call_count and journal).
	Count int `yaml:"count,omitempty"`

	// Statuses is the expected status sequence (used by status_order).
	Statuses []string `yaml:"statuses,omitempty"`

	// Status filters journal rows (used by journal).
	Status string `yaml:"status,omitempty"`

	// Depth is the expected native trace depth (used by trace_depth).
	Depth int `yaml:"depth,omitempty"`
}

// Assertion type constants.
const (
	AssertCallCount   = "call_count"
	AssertStatusOrder = "status_order"
	AssertTraceDepth  = "trace_depth"
	AssertJournal     = "journal"
)

var (
	assertionTypes = []string{AssertCallCount, AssertStatusOrder, AssertTraceDepth, AssertJournal}
	useModes       = []string{"errors", "flags", "scalars", "vectors", "arrays"}
	statuses       = []string{"ok", "failed", "arg_error"}
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml and *.yml file in dir, sorted by file
// name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario dir: %w", err)
	}
	var out []*Scenario
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		s, err := LoadScenario(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, s)
	}
	return out, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
	}

	return nil
}

func validateStep(step Step) error {
	switch {
	case step.Call == "" && step.Use == "":
		return fmt.Errorf("one of call or use is required")
	case step.Call != "" && step.Use != "":
		return fmt.Errorf("call and use are exclusive")
	}

	if step.Use != "" {
		if !slices.Contains(useModes, step.Use) {
			return fmt.Errorf("invalid use %q: must be one of %s", step.Use, strings.Join(useModes, ", "))
		}
		if len(step.Args) > 0 || len(step.Named) > 0 || step.Expect != nil {
			return fmt.Errorf("use step takes no args or expect")
		}
		return nil
	}

	if len(step.Routines) > 0 {
		return fmt.Errorf("routines is only valid with use")
	}
	if e := step.Expect; e != nil {
		if e.Status != "" && !slices.Contains(statuses, e.Status) {
			return fmt.Errorf("invalid status %q", e.Status)
		}
		if e.Error != "" && e.Status != "" && e.Status != "failed" {
			return fmt.Errorf("error requires status failed, got %q", e.Status)
		}
	}
	return nil
}

func validateAssertion(a Assertion) error {
	if !slices.Contains(assertionTypes, a.Type) {
		return fmt.Errorf("invalid type %q: must be one of %s", a.Type, strings.Join(assertionTypes, ", "))
	}
	switch a.Type {
	case AssertCallCount:
		if a.Routine == "" && a.Variant == "" {
			return fmt.Errorf("call_count requires routine or variant")
		}
	case AssertStatusOrder:
		if len(a.Statuses) == 0 {
			return fmt.Errorf("status_order requires statuses")
		}
		for _, st := range a.Statuses {
			if !slices.Contains(statuses, st) {
				return fmt.Errorf("invalid status %q", st)
			}
		}
	case AssertJournal:
		if a.Status != "" && !slices.Contains(statuses, a.Status) {
			return fmt.Errorf("invalid status %q", a.Status)
		}
	}
	return nil
}
