// Package script parses and applies line-oriented operation scripts
// for the simulator. One operation per line; blank lines and lines
// starting with '#' are skipped:
//
//	local   <process> <description...>
//	send    <from> <to> <content...>
//	deliver <message_id>
//	deliver-all
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/copyleftdev/lamportsim/pkg/sim"
)

// Verb is a script operation name.
type Verb string

const (
	VerbLocal      Verb = "local"
	VerbSend       Verb = "send"
	VerbDeliver    Verb = "deliver"
	VerbDeliverAll Verb = "deliver-all"
)

// Op is one parsed script operation. The fields used depend on the
// verb: local uses Process+Arg, send uses Process+Target+Arg, deliver
// uses Arg (the message ID), deliver-all uses nothing.
type Op struct {
	Verb    Verb
	Process string
	Target  string
	Arg     string
	Line    int
}

// Parse reads a script, returning the operations in order. Errors
// carry the offending line number.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		op := Op{Verb: Verb(fields[0]), Line: line}
		switch op.Verb {
		case VerbLocal:
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: usage: local <process> <description>", line)
			}
			op.Process = fields[1]
			op.Arg = strings.Join(fields[2:], " ")
		case VerbSend:
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: usage: send <from> <to> <content>", line)
			}
			op.Process = fields[1]
			op.Target = fields[2]
			op.Arg = strings.Join(fields[3:], " ")
		case VerbDeliver:
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: usage: deliver <message_id>", line)
			}
			op.Arg = fields[1]
		case VerbDeliverAll:
			if len(fields) != 1 {
				return nil, fmt.Errorf("line %d: deliver-all takes no arguments", line)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown operation %q", line, fields[0])
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ops, nil
}

// Processes returns the distinct process IDs the operations mention,
// in first-appearance order. Delivery targets are implied by message
// IDs and do not contribute.
func Processes(ops []Op) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, op := range ops {
		add(op.Process)
		add(op.Target)
	}
	return ids
}

// Apply runs the operations against a coordinator in order, stopping
// at the first failure.
func Apply(ops []Op, c *sim.Coordinator) error {
	for _, op := range ops {
		var err error
		switch op.Verb {
		case VerbLocal:
			_, err = c.LocalEvent(op.Process, op.Arg)
		case VerbSend:
			_, err = c.Send(op.Process, op.Target, op.Arg)
		case VerbDeliver:
			_, err = c.Deliver(op.Arg)
		case VerbDeliverAll:
			c.DeliverAllPending()
		}
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", op.Line, op.Verb, err)
		}
	}
	return nil
}
