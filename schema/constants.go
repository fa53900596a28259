package schema

// Custom string types for type safety.
type (
	// ActionStatus represents the lifecycle status of an action or subtask.
	ActionStatus string

	// Flag names a data-quality condition attached to a computed result.
	Flag string

	// PenaltyKey represents keys used in confidence penalty breakdowns.
	PenaltyKey string

	// MetricKind distinguishes numeric metrics from their sentinel states.
	MetricKind string

	// ScrapBasis selects the scrap savings formulation.
	ScrapBasis string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the score log.
	DatabaseBackend string
)

// All action statuses supported.
const (
	StatusOpen       ActionStatus = "open"
	StatusInProgress ActionStatus = "in-progress"
	StatusClosed     ActionStatus = "closed"
	StatusCancelled  ActionStatus = "cancelled"
)

// Data-quality flags attached to computed results. Flags always propagate
// upward into ImpactResult and the ranking drill-down.
const (
	FlagMissingDueDate     Flag = "missing-due-date"
	FlagInsufficientBefore Flag = "insufficient-before-window"
	FlagInsufficientAfter  Flag = "insufficient-after-window"
	FlagOverlapDetected    Flag = "overlap-detected"
	FlagDuplicateDay       Flag = "duplicate-production-day"
	FlagScrapRegression    Flag = "scrap-regression"
	FlagDowntimeRegression Flag = "downtime-regression"
	FlagNoVolume           Flag = "no-production-volume"
)

// Penalty keys used in the confidence breakdown.
const (
	PenaltyBeforeShortfall PenaltyKey = "before_shortfall"
	PenaltyAfterShortfall  PenaltyKey = "after_shortfall"
	PenaltyInterference    PenaltyKey = "interference"
	PenaltyInstability     PenaltyKey = "instability"
)

// All metric kinds supported.
const (
	MetricValue     MetricKind = "value"
	MetricInfinite  MetricKind = "undefined-infinite"
	MetricNoData    MetricKind = "no-data"
	MetricUndefined MetricKind = "undefined"
)

// All scrap savings formulations supported.
const (
	ScrapPerUnit   ScrapBasis = "per-unit" // default: cost-per-unit delta x after volume
	ScrapTotalCost ScrapBasis = "total-cost"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All score log backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// FormulaVersionV1 tags the initial confidence heuristic coefficients.
// Bump on any retuning so historical scores stay reproducible.
const FormulaVersionV1 = "fi-v1"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidScrapBases lists all valid scrap savings formulations.
var ValidScrapBases = map[ScrapBasis]struct{}{
	ScrapPerUnit:   {},
	ScrapTotalCost: {},
}

// ValidLogBackends lists all valid score log backends.
var ValidLogBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
