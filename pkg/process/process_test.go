package process

import (
	"testing"

	"github.com/copyleftdev/lamportsim/pkg/model"
)

func TestLocalEventTicksAndAppends(t *testing.T) {
	p := New("A")
	e := p.LocalEvent("start")
	if e.Timestamp != 1 {
		t.Fatalf("first local event: got ts %d, want 1", e.Timestamp)
	}
	if e.Kind != model.EventLocal || e.ProcessID != "A" || e.Description != "start" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.MessageID != "" {
		t.Fatalf("local event should have no message ID, got %q", e.MessageID)
	}
	if got := len(p.Log()); got != 1 {
		t.Fatalf("log length: got %d, want 1", got)
	}
}

func TestSendTimestampMatchesMessage(t *testing.T) {
	p := New("A")
	p.LocalEvent("start")
	e, msg := p.Send("B", "hi")

	if e.Timestamp != msg.SendTS {
		t.Fatalf("send event ts %d != message send ts %d", e.Timestamp, msg.SendTS)
	}
	if msg.ID != "A-2" {
		t.Fatalf("message ID: got %q, want A-2", msg.ID)
	}
	if e.MessageID != msg.ID {
		t.Fatalf("send event message ID %q != %q", e.MessageID, msg.ID)
	}
	if msg.Sender != "A" || msg.Receiver != "B" || msg.Content != "hi" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if e.Description != "Send to B: hi" {
		t.Fatalf("send description: got %q", e.Description)
	}
}

func TestReceiveStrictlyAfterSend(t *testing.T) {
	sender := New("A")
	receiver := New("B")

	sender.LocalEvent("work")
	_, msg := sender.Send("B", "hi") // A@2

	receiver.LocalEvent("init") // B@1
	e := receiver.Receive(msg)

	if e.Timestamp <= msg.SendTS {
		t.Fatalf("receive ts %d, want > send ts %d", e.Timestamp, msg.SendTS)
	}
	if e.Timestamp != 3 { // max(1, 2) + 1
		t.Fatalf("receive ts: got %d, want 3", e.Timestamp)
	}
	if e.Kind != model.EventReceive || e.MessageID != msg.ID {
		t.Fatalf("unexpected receive event: %+v", e)
	}
	if e.Description != "Receive from A: hi" {
		t.Fatalf("receive description: got %q", e.Description)
	}
}

func TestReceiveWithAheadLocalClock(t *testing.T) {
	sender := New("A")
	receiver := New("B")

	_, msg := sender.Send("B", "hi") // A@1
	for i := 0; i < 5; i++ {
		receiver.LocalEvent("work") // B@1..5
	}
	e := receiver.Receive(msg)
	if e.Timestamp != 6 { // max(5, 1) + 1
		t.Fatalf("receive ts: got %d, want 6", e.Timestamp)
	}
}

func TestLogTimestampsStrictlyIncrease(t *testing.T) {
	p := New("A")
	q := New("B")

	p.LocalEvent("a")
	p.Send("B", "x")
	_, msg := q.Send("A", "y")
	p.Receive(msg)
	p.LocalEvent("b")

	log := p.Log()
	for i := 1; i < len(log); i++ {
		if log[i].Timestamp <= log[i-1].Timestamp {
			t.Fatalf("log not strictly increasing at %d: %d then %d",
				i, log[i-1].Timestamp, log[i].Timestamp)
		}
	}
}

func TestLogReturnsCopy(t *testing.T) {
	p := New("A")
	p.LocalEvent("start")
	log := p.Log()
	log[0].Description = "mutated"
	if got := p.Log()[0].Description; got != "start" {
		t.Fatalf("log mutation leaked into process: %q", got)
	}
}
