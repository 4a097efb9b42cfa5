package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/copyleftdev/lamportsim/pkg/frontier"
	"github.com/copyleftdev/lamportsim/pkg/journal"
	"github.com/copyleftdev/lamportsim/pkg/model"
	"github.com/copyleftdev/lamportsim/pkg/report"
	"github.com/copyleftdev/lamportsim/pkg/sim"
)

// runOutput is the JSON shape every simulation command emits.
type runOutput struct {
	Seed       int64         `json:"seed"`
	Processes  []string      `json:"processes"`
	Events     []model.Event `json:"events"`
	Violations []string      `json:"violations"`
	Pending    int           `json:"pending"`
	Delivered  int           `json:"delivered"`
	Stability  frontier.Cut  `json:"stability"`
	RunID      string        `json:"run_id,omitempty"`
}

// emitRun prints a finished (or paused) run and optionally records it.
// Returns the process exit code: 2 when the verifier reported
// violations, 0 otherwise. Recording failures are fatal; a requested
// journal write that silently vanished would defeat its purpose.
func emitRun(c *sim.Coordinator, seed int64, jsonOut bool, recordDB string) int {
	rep := c.Report()
	cut := frontier.ComputeCut(rep.Events, c.Pending())

	var runID string
	if recordDB != "" {
		j, err := journal.Open(recordDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lamport: open journal %q: %v\n", recordDB, err)
			return 1
		}
		defer j.Close()
		runID, err = recordRun(j, c, seed, rep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lamport: record run: %v\n", err)
			return 1
		}
	}

	if jsonOut {
		printJSON(runOutput{
			Seed:       seed,
			Processes:  c.ProcessIDs(),
			Events:     rep.Events,
			Violations: rep.Violations,
			Pending:    c.PendingCount(),
			Delivered:  c.DeliveredCount(),
			Stability:  cut,
			RunID:      runID,
		})
	} else {
		fmt.Print(report.Timeline(rep.Events, c.ProcessIDs()))
		fmt.Println()
		fmt.Println("Event history (Lamport order):")
		fmt.Print(report.FormatHistory(rep.Events))
		fmt.Println()
		if !cut.Closed {
			fmt.Printf("stability: %d event(s) stable through ts=%d, %d tentative, %d message(s) pending\n",
				len(cut.Stable), cut.Bound, len(cut.Tentative), c.PendingCount())
		}
		fmt.Print(report.FormatViolations(rep.Violations))
		if runID != "" {
			fmt.Printf("recorded run %s\n", runID)
		}
	}

	if len(rep.Violations) > 0 {
		return 2
	}
	return 0
}

// recordRun writes the run to a journal: every message ever created
// (pending + delivered) goes in, flagged by where it ended up.
func recordRun(rec journal.Recorder, c *sim.Coordinator, seed int64, rep model.Report) (string, error) {
	delivered := make(map[string]bool, c.DeliveredCount())
	msgs := c.Delivered()
	for _, m := range msgs {
		delivered[m.ID] = true
	}
	msgs = append(msgs, c.Pending()...)
	return rec.RecordRun(seed, c.ProcessIDs(), rep, msgs, delivered)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
