// Package journal records finished simulation runs to SQLite.
//
// The journal is a write-only sink: a run executes entirely in memory,
// and once its report is built the whole thing is appended here in one
// transaction. Nothing is ever read back into a simulation; the tables
// exist for later inspection (the `runs` command, ad-hoc SQL).
//
// WAL mode plus a busy timeout lets parallel CLI invocations record
// into the same database file.
package journal

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/copyleftdev/lamportsim/pkg/model"

	_ "modernc.org/sqlite"
)

// Journal manages the SQLite run archive.
type Journal struct {
	db *sql.DB
}

// RunSummary is one row of the run archive listing.
type RunSummary struct {
	ID         string    `json:"id"`
	Seed       int64     `json:"seed"`
	Processes  []string  `json:"processes"`
	Events     int       `json:"events"`
	Violations int       `json:"violations"`
	CreatedAt  time.Time `json:"created_at"`
}

// Open opens (or creates) the journal database and initializes the
// schema.
func Open(path string) (*Journal, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error { return j.db.Close() }

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id         TEXT PRIMARY KEY,
		seed       INTEGER NOT NULL,
		processes  TEXT NOT NULL,
		events     INTEGER NOT NULL,
		violations INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_events (
		run_id      TEXT NOT NULL REFERENCES runs(id),
		seq         INTEGER NOT NULL,
		process_id  TEXT NOT NULL,
		kind        TEXT NOT NULL,
		ts          INTEGER NOT NULL,
		description TEXT NOT NULL,
		message_id  TEXT,
		PRIMARY KEY (run_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_run_events_ts ON run_events(run_id, ts);

	CREATE TABLE IF NOT EXISTS run_messages (
		run_id    TEXT NOT NULL REFERENCES runs(id),
		id        TEXT NOT NULL,
		sender    TEXT NOT NULL,
		receiver  TEXT NOT NULL,
		send_ts   INTEGER NOT NULL,
		content   TEXT NOT NULL,
		delivered INTEGER NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS run_violations (
		run_id TEXT NOT NULL REFERENCES runs(id),
		seq    INTEGER NOT NULL,
		detail TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);
	`
	_, err := j.db.Exec(schema)
	return err
}

// retryOnContention wraps retryOp from retry.go with the default
// config. All journal writes go through this to absorb transient
// SQLite errors under concurrent recording.
func retryOnContention(fn func() error) error {
	return retryOp(defaultRetryConfig, fn)
}

// RecordRun appends one finished run: its report (global history plus
// violations) and every message it created, flagged delivered or
// still pending. Events are numbered by their position in the global
// history, so re-recording an identical run yields identical rows
// apart from the returned run ID.
func (j *Journal) RecordRun(seed int64, processIDs []string, rep model.Report, messages []model.Message, delivered map[string]bool) (string, error) {
	runID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	err := retryOnContention(func() error {
		tx, err := j.db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if _, err := tx.Exec(
			`INSERT INTO runs (id, seed, processes, events, violations, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, seed, strings.Join(processIDs, ","),
			len(rep.Events), len(rep.Violations), now,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for i, e := range rep.Events {
			if _, err := tx.Exec(
				`INSERT INTO run_events (run_id, seq, process_id, kind, ts, description, message_id)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				runID, i, e.ProcessID, string(e.Kind), e.Timestamp, e.Description, e.MessageID,
			); err != nil {
				return fmt.Errorf("insert event %d: %w", i, err)
			}
		}

		for _, m := range messages {
			if _, err := tx.Exec(
				`INSERT INTO run_messages (run_id, id, sender, receiver, send_ts, content, delivered)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				runID, m.ID, m.Sender, m.Receiver, m.SendTS, m.Content,
				boolToInt(delivered[m.ID]),
			); err != nil {
				return fmt.Errorf("insert message %s: %w", m.ID, err)
			}
		}

		for i, v := range rep.Violations {
			if _, err := tx.Exec(
				`INSERT INTO run_violations (run_id, seq, detail) VALUES (?, ?, ?)`,
				runID, i, v,
			); err != nil {
				return fmt.Errorf("insert violation %d: %w", i, err)
			}
		}

		return tx.Commit()
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (j *Journal) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.Query(
		`SELECT id, seed, processes, events, violations, created_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var procs, createdStr string
		if err := rows.Scan(&r.ID, &r.Seed, &procs, &r.Events, &r.Violations, &createdStr); err != nil {
			return nil, err
		}
		r.Processes = strings.Split(procs, ",")
		var parseErr error
		r.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parse created_at for run %s: %w", r.ID, parseErr)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunReport reconstructs the recorded report for one run.
func (j *Journal) RunReport(runID string) (model.Report, error) {
	rep := model.Report{Violations: []string{}}

	var exists int
	if err := j.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return rep, err
	}
	if exists == 0 {
		return rep, fmt.Errorf("run %q not found", runID)
	}

	rows, err := j.db.Query(
		`SELECT process_id, kind, ts, description, COALESCE(message_id, '')
		 FROM run_events WHERE run_id = ? ORDER BY seq`, runID,
	)
	if err != nil {
		return rep, err
	}
	defer rows.Close()
	for rows.Next() {
		var e model.Event
		var kindStr string
		if err := rows.Scan(&e.ProcessID, &kindStr, &e.Timestamp, &e.Description, &e.MessageID); err != nil {
			return rep, err
		}
		e.Kind = model.EventKind(kindStr)
		rep.Events = append(rep.Events, e)
	}
	if err := rows.Err(); err != nil {
		return rep, err
	}

	vrows, err := j.db.Query(
		`SELECT detail FROM run_violations WHERE run_id = ? ORDER BY seq`, runID,
	)
	if err != nil {
		return rep, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var v string
		if err := vrows.Scan(&v); err != nil {
			return rep, err
		}
		rep.Violations = append(rep.Violations, v)
	}
	return rep, vrows.Err()
}

// CountRuns returns the number of recorded runs.
func (j *Journal) CountRuns() int64 {
	var n int64
	if err := j.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0
	}
	return n
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
