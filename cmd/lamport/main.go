// Command lamport is a deterministic Lamport clock simulator: logical
// processes advance integer timestamps under Lamport's rules, exchange
// messages through an in-memory pending pool, and expose a verifiable
// global causal ordering.
package main

import (
	"fmt"
	"os"
)

const version = "1.0.0"

const defaultDB = "lamportsim.db"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		printUsage()
		return
	case "--version", "-v", "version":
		fmt.Println("lamport", version)
		return

	case "demo":
		os.Exit(cmdDemo(os.Args[2:]))
	case "simulate":
		os.Exit(cmdSimulate(os.Args[2:]))
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "runs":
		os.Exit(cmdRuns(os.Args[2:]))

	default:
		fmt.Fprintf(os.Stderr, "lamport: unknown command %q\n", os.Args[1])
		fmt.Fprintln(os.Stderr, "Run 'lamport --help' for usage.")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(usageText)
}

const usageText = `lamport — deterministic Lamport clock simulator

Logical processes, integer clocks, causal ordering you can verify.

Usage:
  lamport <command> [flags]

Commands:
  demo                      Classic three-process message exchange
  simulate <procs> <events> Seeded random workload, then deliver all
  run [--script FILE]       Execute an operation script (default stdin)
  runs                      List runs recorded in the journal

Script format (one operation per line, # comments):
  local   <process> <description>
  send    <from> <to> <content>
  deliver <message_id>
  deliver-all

Flags:
  --seed N       Random seed for delivery order (default 1)
  --record DB    Append the finished report to a journal database
                 (recording is off unless a path is given)
  --json         Machine-readable output

Environment:
  LAMPORTSIM_DB  Journal path the runs command reads by default
                 (default: lamportsim.db)

Exit codes:
  0  success
  1  error
  2  causality violations reported
`

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
