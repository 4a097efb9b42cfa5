// Package report renders simulation results for terminal output: the
// per-process timeline table, the totally ordered event history, and
// the causality findings. Rendering is pure string building so the
// cmd layer can decide where it goes.
package report

import (
	"fmt"
	"strings"

	"github.com/copyleftdev/lamportsim/pkg/model"
)

// Markers used in timeline cells, one per event kind.
const (
	markerLocal   = "●"
	markerSend    = "→"
	markerReceive = "←"
)

const minColWidth = 6

// Timeline renders the history as a table: one row per logical time
// step, one column per process, a kind marker in the cell when that
// process has an event at that step. events must be a global history
// (every event of the run); processIDs fixes the column order.
func Timeline(events []model.Event, processIDs []string) string {
	var b strings.Builder

	widths := make([]int, len(processIDs))
	for i, pid := range processIDs {
		widths[i] = max(len(pid), minColWidth)
	}

	b.WriteString("Time |")
	for i, pid := range processIDs {
		fmt.Fprintf(&b, " %s |", center(pid, widths[i]))
	}
	b.WriteString("\n")
	rule := 6 + len(processIDs)*3
	for _, w := range widths {
		rule += w
	}
	b.WriteString(strings.Repeat("-", rule))
	b.WriteString("\n")

	// Index events by (timestamp, process). At most one event per cell:
	// a process's log has strictly increasing timestamps.
	type cell struct {
		ts  int64
		pid string
	}
	byCell := make(map[cell]model.EventKind, len(events))
	var maxTS int64
	for _, e := range events {
		byCell[cell{e.Timestamp, e.ProcessID}] = e.Kind
		if e.Timestamp > maxTS {
			maxTS = e.Timestamp
		}
	}

	for t := int64(1); t <= maxTS; t++ {
		fmt.Fprintf(&b, " %3d |", t)
		for i, pid := range processIDs {
			mark := ""
			if kind, ok := byCell[cell{t, pid}]; ok {
				mark = marker(kind)
			}
			fmt.Fprintf(&b, " %s |", center(mark, widths[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nLegend: ● local, → send, ← receive\n")
	return b.String()
}

// FormatHistory renders the global history one event per line.
func FormatHistory(events []model.Event) string {
	var b strings.Builder
	for _, e := range events {
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	return b.String()
}

// FormatViolations renders the verifier's findings, or a clean bill.
func FormatViolations(violations []string) string {
	if len(violations) == 0 {
		return "no causality violations\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d causality violation(s):\n", len(violations))
	for _, v := range violations {
		fmt.Fprintf(&b, "  - %s\n", v)
	}
	return b.String()
}

func marker(kind model.EventKind) string {
	switch kind {
	case model.EventLocal:
		return markerLocal
	case model.EventSend:
		return markerSend
	case model.EventReceive:
		return markerReceive
	}
	return "?"
}

// center pads s to width w. Marker runes are multi-byte, single-width;
// pad on rune count so columns line up.
func center(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return s
	}
	left := (w - n) / 2
	right := w - n - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
