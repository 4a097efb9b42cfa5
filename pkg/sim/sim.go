// Package sim drives a deterministic Lamport clock simulation.
//
// A Coordinator owns a fixed registry of processes, a pool of pending
// messages, and an append-only log of delivered messages. Every
// message is in exactly one of the two collections from the moment it
// is created: created -> pending -> delivered, one way only.
//
// Execution is single-threaded and strictly synchronous. The one
// deliberate source of nondeterminism is the delivery order drawn in
// DeliverAllPending, which comes from a random source seeded at
// construction so a fixed seed reproduces an identical run.
package sim

import (
	"math/rand"
	"slices"

	"github.com/copyleftdev/lamportsim/pkg/clock"
	"github.com/copyleftdev/lamportsim/pkg/model"
	"github.com/copyleftdev/lamportsim/pkg/process"
)

// Coordinator orchestrates message flow between simulated processes.
// Not goroutine-safe; one Coordinator per run, driven by one caller.
// Independent runs share no state.
type Coordinator struct {
	processes map[string]*process.Process
	ids       []string // registration order, for deterministic iteration
	pending   []model.Message
	delivered []model.Message
	created   int
	rng       *rand.Rand
	checkAddr bool
}

// New creates a coordinator for the given process IDs with a delivery
// random source seeded by seed. The ID set must be non-empty and free
// of duplicates; otherwise a ConfigurationError is returned.
func New(ids []string, seed int64) (*Coordinator, error) {
	if len(ids) == 0 {
		return nil, &ConfigurationError{Reason: "no process IDs"}
	}
	procs := make(map[string]*process.Process, len(ids))
	for _, id := range ids {
		if _, dup := procs[id]; dup {
			return nil, &ConfigurationError{Reason: "duplicate process ID " + id}
		}
		procs[id] = process.New(id)
	}
	return &Coordinator{
		processes: procs,
		ids:       slices.Clone(ids),
		rng:       rand.New(rand.NewSource(seed)),
		checkAddr: true,
	}, nil
}

// SetAddressCheck toggles receiver validation in DeliverTo. Enabled by
// default; disabling it lets a run deliberately misroute messages.
func (c *Coordinator) SetAddressCheck(on bool) { c.checkAddr = on }

// ProcessIDs returns the registered process IDs sorted lexicographically.
func (c *Coordinator) ProcessIDs() []string {
	ids := slices.Clone(c.ids)
	slices.Sort(ids)
	return ids
}

// LocalEvent records an internal event on the named process.
func (c *Coordinator) LocalEvent(processID, description string) (model.Event, error) {
	p, ok := c.processes[processID]
	if !ok {
		return model.Event{}, &UnknownProcessError{ID: processID}
	}
	return p.LocalEvent(description), nil
}

// Send records a send on the sender and places the resulting message
// in the pending pool. Self-addressed messages are ordinary loopback;
// nothing in the clock rules forbids them.
func (c *Coordinator) Send(sender, receiver, content string) (model.Message, error) {
	p, ok := c.processes[sender]
	if !ok {
		return model.Message{}, &UnknownProcessError{ID: sender}
	}
	if _, ok := c.processes[receiver]; !ok {
		return model.Message{}, &UnknownProcessError{ID: receiver}
	}
	_, msg := p.Send(receiver, content)
	c.pending = append(c.pending, msg)
	c.created++
	return msg, nil
}

// Deliver removes the identified message from the pending pool,
// appends it to the delivered log, and hands it to its declared
// receiver. Returns the receive event.
func (c *Coordinator) Deliver(messageID string) (model.Event, error) {
	i := c.findPending(messageID)
	if i < 0 {
		return model.Event{}, &MessageNotPendingError{MessageID: messageID}
	}
	return c.deliverAt(i, c.pending[i].Receiver), nil
}

// DeliverTo delivers the identified message to an explicit target
// process. With address checking enabled (the default) the target must
// be the message's declared receiver; with it disabled the message
// lands wherever the caller says, simulating misrouting.
func (c *Coordinator) DeliverTo(target, messageID string) (model.Event, error) {
	if _, ok := c.processes[target]; !ok {
		return model.Event{}, &UnknownProcessError{ID: target}
	}
	i := c.findPending(messageID)
	if i < 0 {
		return model.Event{}, &MessageNotPendingError{MessageID: messageID}
	}
	if c.checkAddr && c.pending[i].Receiver != target {
		return model.Event{}, &AddressMismatchError{
			MessageID: messageID,
			Declared:  c.pending[i].Receiver,
			Target:    target,
		}
	}
	return c.deliverAt(i, target), nil
}

// DeliverAllPending drains the pending pool in seeded random order,
// simulating network reordering while staying reproducible. Returns
// the receive events in delivery order. Terminates because the pool
// strictly shrinks and delivery never enqueues new messages.
func (c *Coordinator) DeliverAllPending() []model.Event {
	var events []model.Event
	for len(c.pending) > 0 {
		i := c.rng.Intn(len(c.pending))
		events = append(events, c.deliverAt(i, c.pending[i].Receiver))
	}
	return events
}

// deliverAt commits the pending message at index i: swap-to-end
// removal from pending, append to delivered, receive on target.
// Swap-to-end keeps removal O(1); pool order is immaterial because
// draws are random.
func (c *Coordinator) deliverAt(i int, target string) model.Event {
	msg := c.pending[i]
	c.pending[i] = c.pending[len(c.pending)-1]
	c.pending = c.pending[:len(c.pending)-1]
	c.delivered = append(c.delivered, msg)
	return c.processes[target].Receive(msg)
}

func (c *Coordinator) findPending(messageID string) int {
	for i, m := range c.pending {
		if m.ID == messageID {
			return i
		}
	}
	return -1
}

// Pending returns a copy of the pending pool. Order is incidental.
func (c *Coordinator) Pending() []model.Message { return slices.Clone(c.pending) }

// Delivered returns a copy of the delivered log in delivery order.
func (c *Coordinator) Delivered() []model.Message { return slices.Clone(c.delivered) }

// PendingCount returns the number of messages awaiting delivery.
func (c *Coordinator) PendingCount() int { return len(c.pending) }

// DeliveredCount returns the number of delivered messages.
func (c *Coordinator) DeliveredCount() int { return len(c.delivered) }

// CreatedCount returns the number of messages ever created. At every
// observable point CreatedCount() == PendingCount() + DeliveredCount().
func (c *Coordinator) CreatedCount() int { return c.created }

// ProcessLog returns a copy of one process's event log.
func (c *Coordinator) ProcessLog(processID string) ([]model.Event, error) {
	p, ok := c.processes[processID]
	if !ok {
		return nil, &UnknownProcessError{ID: processID}
	}
	return p.Log(), nil
}

// GlobalHistory merges every process's log and sorts it by
// (timestamp, process_id). The result is a total order consistent with
// happened-before; it respects causality, not wall-clock simultaneity.
func (c *Coordinator) GlobalHistory() []model.Event {
	var all []model.Event
	for _, id := range c.ids {
		all = append(all, c.processes[id].Log()...)
	}
	slices.SortFunc(all, func(a, b model.Event) int {
		if clock.TotalOrderLess(a.Timestamp, a.ProcessID, b.Timestamp, b.ProcessID) {
			return -1
		}
		if clock.TotalOrderLess(b.Timestamp, b.ProcessID, a.Timestamp, a.ProcessID) {
			return 1
		}
		return 0
	})
	return all
}

// Report builds the structured report for the run so far: the global
// history plus the verifier's findings.
func (c *Coordinator) Report() model.Report {
	return model.Report{
		Events:     c.GlobalHistory(),
		Violations: c.VerifyCausality(),
	}
}
