// Package frontier computes the stability cut of a simulation run.
//
// A pending message with send timestamp s can still produce a receive
// event at any timestamp greater than s. The stable bound of a run is
// therefore the minimum send timestamp across pending messages: every
// event at or below it already holds its final place in the global
// history, no matter how the remaining deliveries are ordered. With
// nothing pending, the whole history is stable.
//
// This is the scalar-clock form of progress-frontier tracking: instead
// of an antichain of incomplete pointstamps, a single timestamp bound
// separates committed history from tentative history.
package frontier

import "github.com/copyleftdev/lamportsim/pkg/model"

// Cut partitions a global history at the stable bound. Stable events
// can no longer be preceded by any future receive; Tentative events
// still can. Closed reports whether the history is fully stable
// (nothing pending), in which case Bound is meaningless.
type Cut struct {
	Bound     int64         `json:"bound"`
	Closed    bool          `json:"closed"`
	Stable    []model.Event `json:"stable"`
	Tentative []model.Event `json:"tentative"`
}

// StableBound returns the minimum send timestamp among pending
// messages. The second return is false when nothing is pending.
func StableBound(pending []model.Message) (int64, bool) {
	if len(pending) == 0 {
		return 0, false
	}
	min := pending[0].SendTS
	for _, m := range pending[1:] {
		if m.SendTS < min {
			min = m.SendTS
		}
	}
	return min, true
}

// ComputeCut splits history at the stable bound implied by pending.
// history must be in Lamport total order (as GlobalHistory returns it);
// the split is then a prefix/suffix partition.
func ComputeCut(history []model.Event, pending []model.Message) Cut {
	bound, open := StableBound(pending)
	if !open {
		return Cut{Closed: true, Stable: history}
	}
	cut := Cut{Bound: bound}
	for i, e := range history {
		if e.Timestamp > bound {
			cut.Stable = history[:i]
			cut.Tentative = history[i:]
			return cut
		}
	}
	cut.Stable = history
	return cut
}
