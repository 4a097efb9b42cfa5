package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/copyleftdev/lamportsim/pkg/sim"
)

// cmdDemo runs the classic three-process exchange: A starts work and
// messages B; B works, receives, and forwards to C; C boots, receives,
// and responds to A. Every delivery is explicit, so the run is fully
// deterministic regardless of seed.
func cmdDemo(args []string) int {
	flags := flag.NewFlagSet("demo", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	recordDB := flags.String("record", "", "journal database to append the report to")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	c, err := buildDemo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lamport: demo: %v\n", err)
		return 1
	}
	return emitRun(c, 1, *jsonOut, *recordDB)
}

// buildDemo constructs and executes the demo scenario.
func buildDemo() (*sim.Coordinator, error) {
	c, err := sim.New([]string{"A", "B", "C"}, 1)
	if err != nil {
		return nil, err
	}

	if _, err := c.LocalEvent("A", "Start computation"); err != nil {
		return nil, err
	}
	msg1, err := c.Send("A", "B", "Hello B")
	if err != nil {
		return nil, err
	}
	if _, err := c.LocalEvent("B", "Initialize"); err != nil {
		return nil, err
	}
	if _, err := c.LocalEvent("B", "Process data"); err != nil {
		return nil, err
	}
	if _, err := c.Deliver(msg1.ID); err != nil {
		return nil, err
	}
	msg2, err := c.Send("B", "C", "Forward to C")
	if err != nil {
		return nil, err
	}
	if _, err := c.LocalEvent("C", "Startup"); err != nil {
		return nil, err
	}
	if _, err := c.Deliver(msg2.ID); err != nil {
		return nil, err
	}
	msg3, err := c.Send("C", "A", "Response to A")
	if err != nil {
		return nil, err
	}
	if _, err := c.LocalEvent("A", "Continue processing"); err != nil {
		return nil, err
	}
	if _, err := c.Deliver(msg3.ID); err != nil {
		return nil, err
	}
	return c, nil
}
