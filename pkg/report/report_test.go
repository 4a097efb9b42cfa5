package report

import (
	"strings"
	"testing"

	"github.com/copyleftdev/lamportsim/pkg/model"
)

func testHistory() []model.Event {
	return []model.Event{
		{ProcessID: "A", Kind: model.EventLocal, Timestamp: 1, Description: "start"},
		{ProcessID: "B", Kind: model.EventLocal, Timestamp: 1, Description: "init"},
		{ProcessID: "A", Kind: model.EventSend, Timestamp: 2, Description: "Send to B: hi", MessageID: "A-2"},
		{ProcessID: "B", Kind: model.EventReceive, Timestamp: 3, Description: "Receive from A: hi", MessageID: "A-2"},
	}
}

func TestTimeline_RowsAndMarkers(t *testing.T) {
	out := Timeline(testHistory(), []string{"A", "B"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// header + rule + 3 time rows + blank + legend
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Time |") || !strings.Contains(lines[0], "A") {
		t.Fatalf("header: %q", lines[0])
	}

	// Row 1: local events on both processes.
	if got := strings.Count(lines[2], "●"); got != 2 {
		t.Fatalf("row 1: %d local markers, want 2: %q", got, lines[2])
	}
	// Row 2: A sends.
	if !strings.Contains(lines[3], "→") {
		t.Fatalf("row 2 missing send marker: %q", lines[3])
	}
	// Row 3: B receives.
	if !strings.Contains(lines[4], "←") {
		t.Fatalf("row 3 missing receive marker: %q", lines[4])
	}
}

func TestTimeline_BlankCells(t *testing.T) {
	out := Timeline(testHistory(), []string{"A", "B"})
	lines := strings.Split(out, "\n")
	// Row 2 (ts=2) has a send on A and nothing on B: exactly one marker.
	row := lines[3]
	marks := strings.Count(row, "●") + strings.Count(row, "→") + strings.Count(row, "←")
	if marks != 1 {
		t.Fatalf("row 2: %d markers, want 1: %q", marks, row)
	}
}

func TestTimeline_Empty(t *testing.T) {
	out := Timeline(nil, []string{"A"})
	if !strings.Contains(out, "Time |") {
		t.Fatalf("empty timeline should still have a header:\n%s", out)
	}
}

func TestFormatHistory(t *testing.T) {
	out := FormatHistory(testHistory())
	if !strings.Contains(out, "[A@1] local: start") {
		t.Fatalf("missing first event:\n%s", out)
	}
	if !strings.Contains(out, "[B@3] receive: Receive from A: hi") {
		t.Fatalf("missing receive event:\n%s", out)
	}
}

func TestFormatViolations(t *testing.T) {
	if got := FormatViolations(nil); !strings.Contains(got, "no causality violations") {
		t.Fatalf("clean report: %q", got)
	}
	out := FormatViolations([]string{"causality violation: send@5 -> receive@5"})
	if !strings.Contains(out, "1 causality violation(s):") || !strings.Contains(out, "send@5") {
		t.Fatalf("violation report: %q", out)
	}
}
