// Package process models one logical process in the simulation: a
// Lamport clock it owns exclusively, plus an append-only event log.
//
// A Process performs three operations — local event, send, receive —
// each advancing the clock by the matching Lamport rule and appending
// exactly one event. The log's insertion order is the process's causal
// local order; timestamps within it strictly increase.
//
// A Process knows nothing about message routing. Whether a message was
// addressed to it is the coordinator's concern; keeping that check out
// of here keeps the process a minimal, reusable unit.
package process

import (
	"fmt"
	"slices"

	"github.com/copyleftdev/lamportsim/pkg/clock"
	"github.com/copyleftdev/lamportsim/pkg/model"
)

// Process is one simulated process. Not goroutine-safe: the simulation
// is driven by a single caller, and each Process is owned by exactly
// one coordinator.
type Process struct {
	id    string
	clock clock.Clock
	log   []model.Event
}

// New creates a process with the given ID and a zeroed clock.
func New(id string) *Process {
	return &Process{id: id}
}

// ID returns the process identifier.
func (p *Process) ID() string { return p.id }

// ClockValue returns the current clock value without advancing it.
func (p *Process) ClockValue() int64 { return p.clock.Value() }

// Log returns a copy of the process's event log in insertion order.
func (p *Process) Log() []model.Event { return slices.Clone(p.log) }

// LocalEvent records an internal event: IR1 tick, then append.
func (p *Process) LocalEvent(description string) model.Event {
	ts := p.clock.Tick()
	e := model.Event{
		ProcessID:   p.id,
		Kind:        model.EventLocal,
		Timestamp:   ts,
		Description: description,
	}
	p.log = append(p.log, e)
	return e
}

// Send records a send event and builds the outgoing message. The
// message's send timestamp always equals the send event's timestamp;
// both are the clock value after the IR1 tick.
func (p *Process) Send(receiver, content string) (model.Event, model.Message) {
	ts := p.clock.Tick()
	msg := model.Message{
		ID:       model.MessageID(p.id, ts),
		Sender:   p.id,
		Receiver: receiver,
		SendTS:   ts,
		Content:  content,
	}
	e := model.Event{
		ProcessID:   p.id,
		Kind:        model.EventSend,
		Timestamp:   ts,
		Description: fmt.Sprintf("Send to %s: %s", receiver, content),
		MessageID:   msg.ID,
	}
	p.log = append(p.log, e)
	return e, msg
}

// Receive records the receipt of a message: IR2 observe, then append.
// The resulting timestamp is strictly greater than the message's send
// timestamp and than every prior timestamp in this log; both follow
// from Observe's max+1 rule.
func (p *Process) Receive(msg model.Message) model.Event {
	ts := p.clock.Observe(msg.SendTS)
	e := model.Event{
		ProcessID:   p.id,
		Kind:        model.EventReceive,
		Timestamp:   ts,
		Description: fmt.Sprintf("Receive from %s: %s", msg.Sender, msg.Content),
		MessageID:   msg.ID,
	}
	p.log = append(p.log, e)
	return e
}
