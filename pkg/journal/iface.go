// iface.go defines the Recorder interface for dependency injection.
//
// The concrete *Journal type satisfies this interface. The cmd layer
// accepts Recorder instead of *Journal so tests can inject a mock and
// assert on what a command recorded without touching a database file.
package journal

import "github.com/copyleftdev/lamportsim/pkg/model"

// Recorder is the set of journal operations the cmd layer uses.
type Recorder interface {
	// RecordRun appends one finished run and returns its run ID.
	RecordRun(seed int64, processIDs []string, rep model.Report, messages []model.Message, delivered map[string]bool) (string, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]RunSummary, error)

	// RunReport reconstructs the recorded report for one run.
	RunReport(runID string) (model.Report, error)

	// CountRuns returns the number of recorded runs.
	CountRuns() int64

	// Close closes the archive.
	Close() error
}

var _ Recorder = (*Journal)(nil)
