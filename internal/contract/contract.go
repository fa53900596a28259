// Package contract provides interfaces and shared utilities for the
// capaimpact CLI's internal architecture.
package contract

import (
	"github.com/plantops/capaimpact/schema"
)

// SnapshotSource supplies the read-only record snapshots the engine
// consumes. Implementations must never hand out records they later mutate.
type SnapshotSource interface {
	// Actions returns all action records with their subtasks attached.
	Actions() ([]schema.ActionRecord, error)

	// ProductionDays returns the production series for all lines/projects.
	ProductionDays() ([]schema.ProductionDayRecord, error)
}

// ScoreLogStore persists the append-only ranking audit trail.
// Entries are insert-only: never updated, never deleted.
// This allows mocking the store for testing.
type ScoreLogStore interface {
	// Append inserts one score log entry per champion per ranking run.
	Append(entry schema.ScoreLogEntry) error

	// List returns all entries ordered by run timestamp, then champion ID.
	List() ([]schema.ScoreLogEntry, error)

	// GetStatus returns status information about the score log store.
	GetStatus() (schema.ScoreLogStatus, error)

	// Close closes the underlying connection.
	Close() error
}
