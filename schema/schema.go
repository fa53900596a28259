// Package schema has configs, models and shared constants for all parts of capaimpact.
package schema

import "time"

// ActionRecord is a read-only snapshot of a corrective action and its subtasks.
// All date fields carry date precision only; the engine never mutates a record.
type ActionRecord struct {
	ID            string          // Unique action identifier
	Title         string          // Short human-readable title
	Line          string          // Production line the action targets
	Project       string          // Project/family the action belongs to
	Owner         string          // Person executing the action
	ChampionID    string          // Champion accountable for the action
	Status        ActionStatus    // Current lifecycle status
	ImplementedAt *time.Time      // Date the countermeasure went live (nil = not yet)
	DueDate       *time.Time      // Target closure date (nil = none set)
	ClosedAt      *time.Time      // Actual closure date (nil = still open)
	InternalHours float64         // Internal labor spent, in hours
	ExternalCost  float64         // External spend in currency units
	MaterialCost  float64         // Material spend in currency units
	Subtasks      []SubtaskRecord // Ordered subtasks, possibly empty
}

// Closed reports whether the action has a closed status.
func (a *ActionRecord) Closed() bool {
	return a.Status == StatusClosed
}

// SubtaskRecord is a read-only snapshot of a single subtask of an action.
type SubtaskRecord struct {
	ID       string       // Unique subtask identifier
	DueDate  *time.Time   // Target closure date (nil = none set)
	ClosedAt *time.Time   // Actual closure date (nil = still open)
	Status   ActionStatus // Current lifecycle status
}

// ProductionDayRecord is one day of production output for a line/project pair.
// At most one record may exist per (date, line, project); violations are
// surfaced as a data-quality flag, never averaged away.
type ProductionDayRecord struct {
	Date            time.Time // Production date (date precision)
	Line            string    // Production line
	Project         string    // Project/family
	ProducedQty     float64   // Units produced
	ScrapQty        float64   // Units scrapped
	ScrapCost       float64   // Scrap cost in currency units
	DowntimeMinutes float64   // Unplanned downtime in minutes
	OEE             *float64  // Optional OEE fraction in [0,1]
}

// SeriesKey identifies the production series a record belongs to.
type SeriesKey struct {
	Line    string
	Project string
}

// Key returns the series key of a production day record.
func (p *ProductionDayRecord) Key() SeriesKey {
	return SeriesKey{Line: p.Line, Project: p.Project}
}
