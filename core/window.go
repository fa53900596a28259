package core

import (
	"sort"
	"time"

	"github.com/plantops/capaimpact/schema"
)

// ComputeBaselineWindow builds the before/after measurement frame for one
// action from the production series of its line/project.
//
// The before window is the closed interval [implemented-at - length,
// implemented-at - 1]; the after window is [implemented-at, implemented-at +
// length]. Day counts are the distinct production dates actually present on
// each side. Sparse coverage is flagged, never interpolated, and duplicate
// (date, line, project) records keep their first occurrence with a flag.
func ComputeBaselineWindow(a *schema.ActionRecord, series []schema.ProductionDayRecord, cfg schema.EngineConfig) (schema.BaselineWindow, error) {
	if err := ValidateAction(a); err != nil {
		return schema.BaselineWindow{}, err
	}
	if a.ImplementedAt == nil {
		return schema.BaselineWindow{}, schema.NewInputError(a.ID, "implemented_at",
			"implementation date is required to anchor a baseline window")
	}

	impl := schema.DateOnly(*a.ImplementedAt)
	w := schema.BaselineWindow{
		ActionID: a.ID,
		Before:   schema.DateRange{Start: impl.AddDate(0, 0, -cfg.WindowDays), End: impl.AddDate(0, 0, -1)},
		After:    schema.DateRange{Start: impl, End: impl.AddDate(0, 0, cfg.WindowDays)},
	}

	key := schema.SeriesKey{Line: a.Line, Project: a.Project}
	seen := make(map[time.Time]bool)
	for i := range series {
		rec := &series[i]
		if rec.Key() != key {
			continue
		}
		if err := ValidateProductionDay(rec); err != nil {
			return schema.BaselineWindow{}, err
		}
		day := schema.DateOnly(rec.Date)
		if !w.Before.Contains(day) && !w.After.Contains(day) {
			continue
		}
		if seen[day] {
			w.Flags = appendFlag(w.Flags, schema.FlagDuplicateDay)
			continue // first record wins; never averaged
		}
		seen[day] = true

		norm := *rec
		norm.Date = day
		if w.Before.Contains(day) {
			w.BeforeRecords = append(w.BeforeRecords, norm)
		} else {
			w.AfterRecords = append(w.AfterRecords, norm)
		}
	}

	sortByDate(w.BeforeRecords)
	sortByDate(w.AfterRecords)
	w.BeforeDays = len(w.BeforeRecords)
	w.AfterDays = len(w.AfterRecords)

	if w.BeforeDays < cfg.MinWindowDays {
		w.Flags = appendFlag(w.Flags, schema.FlagInsufficientBefore)
	}
	if w.AfterDays < cfg.MinWindowDays {
		w.Flags = appendFlag(w.Flags, schema.FlagInsufficientAfter)
	}

	return w, nil
}

// ComputeBaselineWindows builds windows for a whole action set and marks
// interference: an action is interfered with when another action on the same
// line/project has an after-window intersecting either of its windows.
// Interference lowers confidence downstream but never blocks computation.
// Actions whose window cannot be built are reported as skipped.
func ComputeBaselineWindows(actions []schema.ActionRecord, series []schema.ProductionDayRecord, cfg schema.EngineConfig) (map[string]schema.BaselineWindow, []schema.SkippedAction) {
	windows := make(map[string]schema.BaselineWindow, len(actions))
	var skipped []schema.SkippedAction

	keys := make(map[string]schema.SeriesKey, len(actions))
	for i := range actions {
		a := &actions[i]
		w, err := ComputeBaselineWindow(a, series, cfg)
		if err != nil {
			skipped = append(skipped, schema.SkippedAction{ActionID: a.ID, Reason: err.Error()})
			continue
		}
		windows[a.ID] = w
		keys[a.ID] = schema.SeriesKey{Line: a.Line, Project: a.Project}
	}

	for id, w := range windows {
		for otherID, other := range windows {
			if otherID == id || keys[otherID] != keys[id] {
				continue
			}
			if other.After.Overlaps(w.Before) || other.After.Overlaps(w.After) {
				w.Interference = true
				w.Flags = appendFlag(w.Flags, schema.FlagOverlapDetected)
				windows[id] = w
				break
			}
		}
	}

	sort.Slice(skipped, func(i, j int) bool { return skipped[i].ActionID < skipped[j].ActionID })
	return windows, skipped
}

func sortByDate(records []schema.ProductionDayRecord) {
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
}
