// Package harness runs conformance scenarios against a routine registry.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	session: test-session-001
//	steps:
//	  - call: vnorm
//	    args: [[[3, 4, 0], [0, 0, 1]]]
//	    expect:
//	      shape: [2]
//	      values: [5, 1]
//	  - use: flags
//	    routines: [invert]
//	  - call: convrt
//	    args: [1, "FURLONGS", "M"]
//	    expect:
//	      error: SPICE(UNITSNOTREC)
//	      traceback: convrt_array --> CONVRT
//	assertions:
//	  - type: status_order
//	    statuses: [ok, failed]
//	  - type: trace_depth
//	    depth: 0
//
// A step either calls a routine (by base name or by a suffixed variant
// name) or switches the registry defaults with use.
//
// # Assertion Types
//
//   - call_count: calls resolving to a variant, or any variant of a routine, happen N times
//   - status_order: the statuses of all calls, in order
//   - trace_depth: the native trace depth after the last step
//   - journal: the number of journaled calls, optionally by status
//
// # Deterministic Testing
//
// Every run journals into a private in-memory SQLite store, with seq
// numbers from testutil.ScenarioClock and a fixed session token.
// Traces record shapes, statuses and messages but no numeric values, so
// they serialize as canonical JSON for golden comparison.
package harness
