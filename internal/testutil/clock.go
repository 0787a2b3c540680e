package testutil

import "sync/atomic"

// ScenarioClock numbers the journaled calls of one harness run from 1.
// It satisfies store.Sequencer. Unlike store.Clock it never resumes from a
// store's max seq, so a scenario's golden trace does not depend on what
// else the database holds, and Rewind lets one clock number reruns alike.
type ScenarioClock struct {
	seq atomic.Int64
}

// NewScenarioClock returns a clock whose first Next is 1.
func NewScenarioClock() *ScenarioClock {
	return &ScenarioClock{}
}

// Next returns the seq for the next journaled call.
func (c *ScenarioClock) Next() int64 {
	return c.seq.Add(1)
}

// Calls reports how many calls this run has journaled.
func (c *ScenarioClock) Calls() int64 {
	return c.seq.Load()
}

// Rewind starts a new run at seq 1.
func (c *ScenarioClock) Rewind() {
	c.seq.Store(0)
}
