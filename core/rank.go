package core

import (
	"sort"
	"time"

	"github.com/plantops/capaimpact/schema"
)

// UnassignedChampion buckets actions that have no champion attributed.
const UnassignedChampion = "unassigned"

// championOf normalizes the champion attribution of an action.
func championOf(a *schema.ActionRecord) string {
	if a.ChampionID == "" {
		return UnassignedChampion
	}
	return a.ChampionID
}

// ComputeChampionRanking folds one champion's scored impacts into a ranking
// entry and the score log entry that makes the run replayable. Impacts and
// actions belonging to other champions are ignored, and inputs are ordered
// by action ID so two runs over identical data produce identical entries.
func ComputeChampionRanking(championID string, actions []schema.ActionRecord, impacts []schema.ImpactResult, skipped []schema.SkippedAction, runAt time.Time, cfg schema.EngineConfig) (schema.RankingEntry, schema.ScoreLogEntry) {
	entry := schema.RankingEntry{ChampionID: championID}
	asOf := schema.DateOnly(runAt)

	var ttcSum int
	var ttcCount int
	skippedIDs := make(map[string]bool, len(skipped))
	for _, s := range skipped {
		skippedIDs[s.ActionID] = true
	}

	for i := range actions {
		a := &actions[i]
		if championOf(a) != championID {
			continue
		}
		if a.Closed() {
			entry.ClosedCount++
		} else {
			entry.OpenCount++
			if a.DueDate != nil && schema.DateOnly(*a.DueDate).Before(asOf) {
				entry.OverdueCount++
			}
		}
		if skippedIDs[a.ID] {
			continue
		}
		if m, err := ComputeActionMetrics(a, asOf); err == nil && m.TimeToCloseDays != nil {
			ttcSum += *m.TimeToCloseDays
			ttcCount++
		}
	}
	if ttcCount > 0 {
		entry.AvgTimeToClose = schema.MetricOf(float64(ttcSum) / float64(ttcCount))
	} else {
		entry.AvgTimeToClose = schema.MetricNone()
	}

	inputs := make([]schema.ImpactResult, 0, len(impacts))
	for i := range impacts {
		r := impacts[i]
		if r.ChampionID == "" {
			r.ChampionID = UnassignedChampion
		}
		if r.ChampionID != championID {
			continue
		}
		inputs = append(inputs, r)
	}
	sort.Slice(inputs, func(i, j int) bool { return inputs[i].ActionID < inputs[j].ActionID })

	for i := range inputs {
		entry.TotalSavings += inputs[i].TotalSavings
		entry.WeightedSavings += inputs[i].TotalSavings * float64(inputs[i].Confidence) / 100
		entry.ActionIDs = append(entry.ActionIDs, inputs[i].ActionID)
	}

	logEntry := schema.ScoreLogEntry{
		RunAt:          runAt,
		ChampionID:     championID,
		FormulaVersion: cfg.FormulaVersion,
		Score:          entry.WeightedSavings,
		Inputs:         inputs,
		Skipped:        append([]schema.SkippedAction(nil), skipped...),
	}

	return entry, logEntry
}

// RankImpacts orders impact results by confidence-weighted savings
// descending, raw savings descending, action identifier ascending, and
// truncates to limit. The input slice is not modified.
func RankImpacts(results []schema.ImpactResult, limit int) []schema.ImpactResult {
	ranked := append([]schema.ImpactResult(nil), results...)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		wa := a.TotalSavings * float64(a.Confidence) / 100
		wb := b.TotalSavings * float64(b.Confidence) / 100
		if wa != wb {
			return wa > wb
		}
		if a.TotalSavings != b.TotalSavings {
			return a.TotalSavings > b.TotalSavings
		}
		return a.ActionID < b.ActionID
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RankChampions orders ranking entries into a deterministic total order:
// confidence-weighted savings descending, raw savings descending, champion
// identifier ascending. No tie survives unbroken.
func RankChampions(entries []schema.RankingEntry) []schema.RankingEntry {
	ranked := append([]schema.RankingEntry(nil), entries...)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.WeightedSavings != b.WeightedSavings {
			return a.WeightedSavings > b.WeightedSavings
		}
		if a.TotalSavings != b.TotalSavings {
			return a.TotalSavings > b.TotalSavings
		}
		return a.ChampionID < b.ChampionID
	})
	return ranked
}
