package schema

import "time"

// RankingEntry is one champion's row in the ranking. WeightedSavings is the
// confidence-weighted sum of action savings; ActionIDs enable drill-down.
type RankingEntry struct {
	ChampionID      string   `json:"champion_id"`
	WeightedSavings float64  `json:"weighted_savings"`
	TotalSavings    float64  `json:"total_savings"`
	OpenCount       int      `json:"open_count"`
	ClosedCount     int      `json:"closed_count"`
	OverdueCount    int      `json:"overdue_count"`
	AvgTimeToClose  Metric   `json:"avg_time_to_close_days"`
	ActionIDs       []string `json:"action_ids"`
}

// SkippedAction records why an action was excluded from a batch run.
type SkippedAction struct {
	ActionID string `json:"action_id"`
	Reason   string `json:"reason"`
}

// ScoreLogEntry is the immutable audit record of one ranking computation.
// Entries are append-only: created once per run, never mutated or deleted,
// keyed by run timestamp plus champion identifier.
type ScoreLogEntry struct {
	RunAt          time.Time       `json:"run_at"`
	ChampionID     string          `json:"champion_id"`
	FormulaVersion string          `json:"formula_version"`
	Score          float64         `json:"score"` // weighted savings at run time
	Inputs         []ImpactResult  `json:"inputs"`
	Skipped        []SkippedAction `json:"skipped,omitempty"`
}
