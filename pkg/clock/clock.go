// Package clock implements a Lamport logical clock.
//
// From Lamport (1978), two implementation rules govern the clock:
//
//	IR1 (internal event): Before any internal event, increment the clock.
//	IR2 (message receipt): On receiving a message with timestamp t,
//	     set the clock to max(own, t) + 1.
//
// The total order function TotalOrderLess breaks ties deterministically
// using process IDs, giving every participant the same ordering without
// coordination.
//
// Note: Clock is not goroutine-safe. In this architecture each Clock
// instance is owned by exactly one simulated process and advanced only
// by that process's operations, matching Lamport's no-shared-clock
// assumption.
package clock

// Clock is a Lamport logical clock. Not goroutine-safe; see package doc.
type Clock struct {
	ts int64
}

// Tick implements IR1: increment the clock before an internal event.
// Returns the new timestamp.
func (c *Clock) Tick() int64 {
	c.ts++
	return c.ts
}

// Observe implements IR2: on witnessing a remote timestamp, set the
// clock to max(own, remote) + 1. The returned timestamp is strictly
// greater than both the prior local value and the remote one.
func (c *Clock) Observe(remote int64) int64 {
	if remote > c.ts {
		c.ts = remote
	}
	c.ts++
	return c.ts
}

// Value returns the current clock value without advancing it.
func (c *Clock) Value() int64 { return c.ts }

// Set initializes the clock to a specific value. Used by tests to
// start a clock mid-run.
func (c *Clock) Set(v int64) { c.ts = v }

// TotalOrderLess defines a deterministic total order over events.
// Given two events with timestamps tsA and tsB from processes pidA and
// pidB, event A is "less" (comes first) if:
//
//	tsA < tsB, or
//	tsA == tsB and pidA < pidB (lexicographic)
//
// This is the standard Lamport total order; the global history sort
// uses it so every run of the same schedule produces the same merge.
func TotalOrderLess(tsA int64, pidA string, tsB int64, pidB string) bool {
	if tsA != tsB {
		return tsA < tsB
	}
	return pidA < pidB
}
