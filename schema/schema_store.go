package schema

import "time"

// ScoreLogStatus has status information about the score log store.
type ScoreLogStatus struct {
	Backend    DatabaseBackend `json:"backend"`
	EntryCount int             `json:"entry_count"`
	LatestRun  *time.Time      `json:"latest_run,omitempty"`
}
