// Package model defines the core domain types for lamportsim.
//
// The simulator models a set of logical processes exchanging messages
// under Lamport clock rules. Every clock advance produces an Event;
// every send produces a Message. Both are plain immutable value
// records: created once, appended to a log or a pool, never mutated.
package model

import "fmt"

// EventKind enumerates the three kinds of events a process can record.
type EventKind string

const (
	EventLocal   EventKind = "local"
	EventSend    EventKind = "send"
	EventReceive EventKind = "receive"
)

// Event is a single entry in a process's append-only log.
// MessageID is set only for send and receive events, correlating the
// event to the message it produced or consumed.
type Event struct {
	ProcessID   string    `json:"process_id"`
	Kind        EventKind `json:"kind"`
	Timestamp   int64     `json:"timestamp"`
	Description string    `json:"description"`
	MessageID   string    `json:"message_id,omitempty"`
}

// String renders the event as "[A@2] send: Send to B: hi".
func (e Event) String() string {
	return fmt.Sprintf("[%s@%d] %s: %s", e.ProcessID, e.Timestamp, e.Kind, e.Description)
}

// Message is a message in flight between two processes. SendTS is the
// sender's clock value at send time; the receiver observes it on
// delivery. IDs are deterministic ("<sender>-<send_ts>") and unique
// because a sender's clock strictly increases.
type Message struct {
	ID       string `json:"id"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	SendTS   int64  `json:"send_ts"`
	Content  string `json:"content"`
}

// MessageID builds the deterministic message ID for a sender and
// send timestamp.
func MessageID(sender string, sendTS int64) string {
	return fmt.Sprintf("%s-%d", sender, sendTS)
}

// Report is the structured form of a finished run: the global history
// in Lamport total order plus any causality violations the verifier
// found. Suitable for JSON output or journal recording.
type Report struct {
	Events     []Event  `json:"events"`
	Violations []string `json:"violations"`
}
