package results

import "time"

// #region run-record
// RunRecord identifies one recorded evaluation run.
type RunRecord struct {
	RunID       string
	Stream      string
	Description string
	CreatedAt   time.Time
}

// #endregion run-record

// #region value-record
// ValueRecord is a single persisted metric value row.
type ValueRecord struct {
	RunID     string
	Origin    string
	Name      string
	Value     float64
	Position  int64
	CreatedAt time.Time
}

// #endregion value-record
