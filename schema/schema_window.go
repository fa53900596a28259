package schema

import "time"

// DateRange is a closed date interval [Start, End].
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls inside the range (inclusive on both ends).
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps reports whether two ranges share at least one day.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.End.Before(o.Start) && !o.End.Before(r.Start)
}

// BaselineWindow is the before/after measurement frame around an action's
// implementation date. Day counts reflect distinct production dates actually
// present, not calendar length; sparse coverage stays visible.
type BaselineWindow struct {
	ActionID     string `json:"action_id"`
	Before       DateRange
	After        DateRange
	BeforeDays   int  `json:"before_days"`
	AfterDays    int  `json:"after_days"`
	Interference bool `json:"interference"` // another action's after-window intersects ours

	// Deduplicated record subsets inside each side, ordered by date.
	BeforeRecords []ProductionDayRecord `json:"-"`
	AfterRecords  []ProductionDayRecord `json:"-"`

	Flags []Flag `json:"flags,omitempty"`
}
