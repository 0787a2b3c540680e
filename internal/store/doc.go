// Package store is the SQLite call journal.
//
// Every public variant call made by the CLI or the harness can be recorded
// as one row of the calls table: the routine and variant, the shapes of its
// arguments and results, the outcome with any native message, and a
// zstd-compressed JSON payload of the values themselves.
//
// # Ordering
//
// Rows carry a seq from a logical clock, never a timestamp. Reads order by
// seq ASC, id ASC COLLATE BINARY so that repeated runs list identically.
//
// # Identity
//
// A call's id is ir.CallID(session, variant, seq). Writing the same id twice
// is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
