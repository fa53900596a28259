package schema

// Metric is a numeric result that may legitimately have no value.
// Zero-denominator conditions produce a sentinel kind, never a raw
// division result or a fabricated zero.
type Metric struct {
	Kind  MetricKind `json:"kind"`
	Value float64    `json:"value,omitempty"`
}

// MetricOf wraps a concrete numeric value.
func MetricOf(v float64) Metric {
	return Metric{Kind: MetricValue, Value: v}
}

// MetricInf returns the undefined-infinite sentinel (savings with zero cost).
func MetricInf() Metric {
	return Metric{Kind: MetricInfinite}
}

// MetricNone returns the no-data sentinel.
func MetricNone() Metric {
	return Metric{Kind: MetricNoData}
}

// MetricUndef returns the undefined sentinel (e.g. payback with no daily savings).
func MetricUndef() Metric {
	return Metric{Kind: MetricUndefined}
}

// Defined reports whether the metric carries a numeric value.
func (m Metric) Defined() bool {
	return m.Kind == MetricValue
}

// ActionMetrics holds the per-action time metrics.
// DaysLate is nil when the action (or all of its subtasks) has no due date;
// that condition is flagged, not treated as on-time.
type ActionMetrics struct {
	ActionID        string `json:"action_id"`
	DaysLate        *int   `json:"days_late"`
	TimeToCloseDays *int   `json:"time_to_close_days"`
	OnTime          *bool  `json:"on_time"`
	Flags           []Flag `json:"flags,omitempty"`
}

// DaysLateBasis is the tagged choice for the days-late computation,
// resolved once per action before any metric is computed.
type DaysLateBasis string

// All days-late bases supported.
const (
	PerSubtask DaysLateBasis = "per-subtask" // sum of subtask overdue days
	PerAction  DaysLateBasis = "per-action"  // action-level due/closed dates
)

// ActionsKPI is the aggregate rollup over a set of actions.
type ActionsKPI struct {
	TotalActions    int    `json:"total_actions"`
	OpenCount       int    `json:"open_count"`
	OverdueCount    int    `json:"overdue_count"`
	SumDaysLate     int    `json:"sum_days_late"`
	AvgTimeToClose  Metric `json:"avg_time_to_close_days"`
	OnTimeCloseRate Metric `json:"on_time_close_rate"` // percentage 0-100
	MissingDueDates int    `json:"missing_due_dates"`
}

// KPIRow is one day of the KPI timeline, grouped by implementation date.
type KPIRow struct {
	Date string     `json:"date"` // ISO date
	KPI  ActionsKPI `json:"kpi"`
}
