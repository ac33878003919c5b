package domain

import "time"

// RunKind identifies the pipeline stage a run belongs to.
type RunKind string

const (
	RunClean RunKind = "clean"
	RunJoin  RunKind = "join"
)

// Run records one batch execution for later audit.
type Run struct {
	ID         string
	Kind       RunKind
	Input      string
	Output     string
	Kept       int
	Dropped    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Total is the number of records seen by the run.
func (r Run) Total() int {
	return r.Kept + r.Dropped
}

// StoredRecord is a joined FlatRecord persisted under a run.
type StoredRecord struct {
	RunID  string
	ID     string
	Record FlatRecord
}
