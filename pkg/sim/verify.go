package sim

import (
	"fmt"

	"github.com/copyleftdev/lamportsim/pkg/model"
)

// VerifyCausality cross-checks every delivered message: the receive
// event's timestamp must be strictly greater than the send event's.
// Findings are collected and returned, never raised; this is a
// diagnostic probe over committed state, and an empty slice means full
// causal consistency.
//
// Observe's max+1 rule makes a violation unreachable through the
// public API, so a non-empty result always means a clock or
// receive-path bug. The check stays at full strength as a regression
// guard for exactly that case.
func (c *Coordinator) VerifyCausality() []string {
	violations := []string{}
	for _, msg := range c.delivered {
		sendLog, _ := c.ProcessLog(msg.Sender)
		recvLog, _ := c.ProcessLog(msg.Receiver)
		if v, bad := checkDelivery(msg, sendLog, recvLog); bad {
			violations = append(violations, v)
		}
	}
	return violations
}

// checkDelivery locates the send/receive event pair for one delivered
// message and reports a violation string when the receive timestamp
// does not strictly exceed the send timestamp. Messages whose pair
// cannot be located (e.g. a deliberately misrouted delivery) are
// skipped: there is no pair to compare.
func checkDelivery(msg model.Message, sendLog, recvLog []model.Event) (string, bool) {
	send, okS := findEvent(sendLog, msg.ID, model.EventSend)
	recv, okR := findEvent(recvLog, msg.ID, model.EventReceive)
	if !okS || !okR {
		return "", false
	}
	if recv.Timestamp <= send.Timestamp {
		return fmt.Sprintf("causality violation: send@%d -> receive@%d",
			send.Timestamp, recv.Timestamp), true
	}
	return "", false
}

func findEvent(log []model.Event, messageID string, kind model.EventKind) (model.Event, bool) {
	for _, e := range log {
		if e.MessageID == messageID && e.Kind == kind {
			return e, true
		}
	}
	return model.Event{}, false
}
