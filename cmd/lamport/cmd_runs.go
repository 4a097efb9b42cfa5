package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/copyleftdev/lamportsim/pkg/journal"
	"github.com/copyleftdev/lamportsim/pkg/report"
)

// cmdRuns inspects the journal: lists recorded runs, or with --show
// reprints one recorded report.
func cmdRuns(args []string) int {
	flags := flag.NewFlagSet("runs", flag.ContinueOnError)
	dbPath := flags.String("db", envOr("LAMPORTSIM_DB", defaultDB), "journal database path")
	limit := flags.Int("limit", 20, "max runs to list")
	show := flags.String("show", "", "print the recorded report for a run ID")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if _, err := os.Stat(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "lamport: runs: no journal at %q\n", *dbPath)
		return 1
	}
	j, err := journal.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lamport: runs: %v\n", err)
		return 1
	}
	defer j.Close()

	if *show != "" {
		return showRun(j, *show, *jsonOut)
	}

	runs, err := j.ListRuns(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lamport: runs: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(map[string]interface{}{"runs": runs, "count": len(runs)})
		return 0
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return 0
	}
	for _, r := range runs {
		fmt.Printf("%s  seed=%-6d procs=%-12s events=%-4d violations=%-2d %s\n",
			r.ID, r.Seed, strings.Join(r.Processes, ","), r.Events, r.Violations,
			r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return 0
}

func showRun(j journal.Recorder, runID string, jsonOut bool) int {
	rep, err := j.RunReport(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lamport: runs: %v\n", err)
		return 1
	}
	if jsonOut {
		printJSON(rep)
		return 0
	}
	fmt.Println("Event history (Lamport order):")
	fmt.Print(report.FormatHistory(rep.Events))
	fmt.Println()
	fmt.Print(report.FormatViolations(rep.Violations))
	return 0
}
