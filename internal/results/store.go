package results

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/andrew-r96/avalanche/internal/metrics"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS eval_runs (
	run_id       TEXT PRIMARY KEY,
	stream       TEXT NOT NULL,
	description  TEXT,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS metric_values (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	origin      TEXT NOT NULL,
	name        TEXT NOT NULL,
	value       REAL NOT NULL,
	position    INTEGER NOT NULL,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES eval_runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_metric_values_lookup
ON metric_values(run_id, name);
`

// #endregion schema

// #region store-struct
// Store persists emitted metric values in SQLite, grouped by evaluation run.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region begin-run
// BeginRun registers a new evaluation run and returns its record.
func (s *Store) BeginRun(stream, description string) (RunRecord, error) {
	rec := RunRecord{
		RunID:       uuid.New().String(),
		Stream:      stream,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO eval_runs (run_id, stream, description, created_at)
		 VALUES (?, ?, ?, ?)`,
		rec.RunID, rec.Stream, nullIfEmpty(rec.Description),
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", err)
	}
	return rec, nil
}

// #endregion begin-run

// #region record-value
// RecordValue persists one metric value under the given run.
func (s *Store) RecordValue(runID string, v metrics.MetricValue) error {
	_, err := s.db.Exec(
		`INSERT INTO metric_values (run_id, origin, name, value, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, v.Origin, v.Name, v.Value, v.Position,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert value: %w", err)
	}
	return nil
}

// #endregion record-value

// #region list-runs
// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, stream, description, created_at
		 FROM eval_runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var description sql.NullString
		var createdStr string
		if err := rows.Scan(&rec.RunID, &rec.Stream, &description, &createdStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if description.Valid {
			rec.Description = description.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-runs

// #region list-values
// ListValues returns every value recorded under a run, in emission order.
func (s *Store) ListValues(runID string) ([]ValueRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, origin, name, value, position, created_at
		 FROM metric_values WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list values: %w", err)
	}
	defer rows.Close()

	var records []ValueRecord
	for rows.Next() {
		var rec ValueRecord
		var createdStr string
		if err := rows.Scan(&rec.RunID, &rec.Origin, &rec.Name, &rec.Value, &rec.Position, &createdStr); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-values

// #region series
// Series returns the (position, value) history of one named metric within a
// run, ordered by position. Useful for plotting forgetting over time.
func (s *Store) Series(runID, name string) ([]ValueRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, origin, name, value, position, created_at
		 FROM metric_values WHERE run_id = ? AND name = ? ORDER BY position`,
		runID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("series: %w", err)
	}
	defer rows.Close()

	var records []ValueRecord
	for rows.Next() {
		var rec ValueRecord
		var createdStr string
		if err := rows.Scan(&rec.RunID, &rec.Origin, &rec.Name, &rec.Value, &rec.Position, &createdStr); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion series

// #region recorder
// Recorder binds a store to one run and satisfies the loop's Sink interface.
type Recorder struct {
	store *Store
	runID string
}

// NewRecorder starts a run on the store and returns a sink recording into it.
func NewRecorder(store *Store, stream, description string) (*Recorder, error) {
	run, err := store.BeginRun(stream, description)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store, runID: run.RunID}, nil
}

// RunID returns the run this recorder writes to.
func (r *Recorder) RunID() string {
	return r.runID
}

// Emit persists one metric value under the recorder's run.
func (r *Recorder) Emit(v metrics.MetricValue) error {
	return r.store.RecordValue(r.runID, v)
}

// #endregion recorder

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
