package core

import (
	"sort"
	"time"

	"github.com/plantops/capaimpact/schema"
)

// ResolveDaysLateBasis picks the days-late formula for an action: per-subtask
// when any subtasks exist, per-action otherwise. Resolved once per action so
// the choice is explicit rather than buried in the computation.
func ResolveDaysLateBasis(a *schema.ActionRecord) schema.DaysLateBasis {
	if len(a.Subtasks) > 0 {
		return schema.PerSubtask
	}
	return schema.PerAction
}

// overdueDays returns the whole days past due as of closure, or as of the
// reference date while still open. Zero once closed on or before the due date.
func overdueDays(due time.Time, closed *time.Time, asOf time.Time) int {
	ref := asOf
	if closed != nil {
		ref = *closed
	}
	if d := schema.DaysBetween(due, ref); d > 0 {
		return d
	}
	return 0
}

// ComputeActionMetrics calculates days-late, time-to-close and the on-time
// flag for a single action as of the given reference date.
//
// Days-late is nil when no due date exists to measure against; the condition
// is flagged rather than reported as zero. A closed action whose closure date
// is on or before its due date always reports zero days late, regardless of
// subtask residue.
func ComputeActionMetrics(a *schema.ActionRecord, asOf time.Time) (schema.ActionMetrics, error) {
	if err := ValidateAction(a); err != nil {
		return schema.ActionMetrics{}, err
	}

	m := schema.ActionMetrics{ActionID: a.ID}
	asOf = schema.DateOnly(asOf)

	// Closure override: a properly closed action is never late for reporting.
	closedOnTime := a.Closed() && a.ClosedAt != nil && a.DueDate != nil &&
		!schema.DateOnly(*a.ClosedAt).After(schema.DateOnly(*a.DueDate))

	switch {
	case closedOnTime:
		zero := 0
		m.DaysLate = &zero
	case ResolveDaysLateBasis(a) == schema.PerSubtask:
		total := 0
		counted := 0
		for i := range a.Subtasks {
			s := &a.Subtasks[i]
			if s.DueDate == nil {
				m.Flags = appendFlag(m.Flags, schema.FlagMissingDueDate)
				continue
			}
			total += overdueDays(*s.DueDate, s.ClosedAt, asOf)
			counted++
		}
		if counted > 0 {
			m.DaysLate = &total
		}
	default: // per-action
		if a.DueDate == nil {
			m.Flags = appendFlag(m.Flags, schema.FlagMissingDueDate)
		} else {
			late := overdueDays(*a.DueDate, a.ClosedAt, asOf)
			m.DaysLate = &late
		}
	}

	if a.ClosedAt != nil && a.ImplementedAt != nil {
		ttc := schema.DaysBetween(*a.ImplementedAt, *a.ClosedAt)
		m.TimeToCloseDays = &ttc
	}

	if a.ClosedAt != nil && a.DueDate != nil {
		onTime := !schema.DateOnly(*a.ClosedAt).After(schema.DateOnly(*a.DueDate))
		m.OnTime = &onTime
	}

	return m, nil
}

// OnTimeCloseRate returns the percentage of closed actions that closed on or
// before their due date, over closed actions that have a due date at all.
// An empty denominator yields the no-data sentinel, never a fabricated rate.
func OnTimeCloseRate(actions []schema.ActionRecord) schema.Metric {
	closedWithDue := 0
	onTime := 0
	for i := range actions {
		a := &actions[i]
		if a.ClosedAt == nil || a.DueDate == nil {
			continue
		}
		closedWithDue++
		if !schema.DateOnly(*a.ClosedAt).After(schema.DateOnly(*a.DueDate)) {
			onTime++
		}
	}
	if closedWithDue == 0 {
		return schema.MetricNone()
	}
	return schema.MetricOf(float64(onTime) / float64(closedWithDue) * 100)
}

// BuildActionsKPI aggregates the time metrics of an action set: open and
// overdue counts, cumulative days late, average time-to-close and the
// on-time close rate. Invalid actions are skipped; the KPI reflects the
// records that could be measured.
func BuildActionsKPI(actions []schema.ActionRecord, asOf time.Time) schema.ActionsKPI {
	kpi := schema.ActionsKPI{TotalActions: len(actions)}
	asOf = schema.DateOnly(asOf)

	var ttcSum int
	var ttcCount int

	for i := range actions {
		a := &actions[i]
		if !a.Closed() {
			kpi.OpenCount++
			if a.DueDate != nil && schema.DateOnly(*a.DueDate).Before(asOf) {
				kpi.OverdueCount++
			}
		}
		m, err := ComputeActionMetrics(a, asOf)
		if err != nil {
			continue
		}
		if m.DaysLate != nil {
			kpi.SumDaysLate += *m.DaysLate
		}
		if hasFlag(m.Flags, schema.FlagMissingDueDate) {
			kpi.MissingDueDates++
		}
		if m.TimeToCloseDays != nil {
			ttcSum += *m.TimeToCloseDays
			ttcCount++
		}
	}

	if ttcCount > 0 {
		kpi.AvgTimeToClose = schema.MetricOf(float64(ttcSum) / float64(ttcCount))
	} else {
		kpi.AvgTimeToClose = schema.MetricNone()
	}
	kpi.OnTimeCloseRate = OnTimeCloseRate(actions)

	return kpi
}

// BuildKPITimeline groups actions by implementation date and emits one KPI
// rollup per day, oldest first. Actions without an implementation date are
// not representable on the timeline and are left out.
func BuildKPITimeline(actions []schema.ActionRecord) []schema.KPIRow {
	byDay := make(map[time.Time][]schema.ActionRecord)
	for i := range actions {
		a := actions[i]
		if a.ImplementedAt == nil {
			continue
		}
		day := schema.DateOnly(*a.ImplementedAt)
		byDay[day] = append(byDay[day], a)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	rows := make([]schema.KPIRow, 0, len(days))
	for _, day := range days {
		rows = append(rows, schema.KPIRow{
			Date: schema.FormatDate(day),
			KPI:  BuildActionsKPI(byDay[day], day),
		})
	}
	return rows
}

// appendFlag adds a flag once, preserving order of first appearance.
func appendFlag(flags []schema.Flag, f schema.Flag) []schema.Flag {
	if hasFlag(flags, f) {
		return flags
	}
	return append(flags, f)
}

func hasFlag(flags []schema.Flag, f schema.Flag) bool {
	for _, have := range flags {
		if have == f {
			return true
		}
	}
	return false
}
