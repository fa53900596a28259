package core

import (
	"sort"
	"time"

	"github.com/plantops/capaimpact/schema"
)

// ComputeImpacts runs the whole pipeline over an action set: validation,
// baseline windows with pairwise interference, savings and confidence per
// action. An invalid action aborts only its own computation; the batch
// continues and reports which actions were skipped and why. Results are
// ordered by action ID for deterministic output.
func ComputeImpacts(actions []schema.ActionRecord, series []schema.ProductionDayRecord, cfg schema.EngineConfig) ([]schema.ImpactResult, []schema.SkippedAction) {
	valid := make([]schema.ActionRecord, 0, len(actions))
	var skipped []schema.SkippedAction

	for i := range actions {
		a := actions[i]
		if err := ValidateAction(&a); err != nil {
			skipped = append(skipped, schema.SkippedAction{ActionID: a.ID, Reason: err.Error()})
			continue
		}
		valid = append(valid, a)
	}

	windows, windowSkips := ComputeBaselineWindows(valid, series, cfg)
	skipped = append(skipped, windowSkips...)

	results := make([]schema.ImpactResult, 0, len(windows))
	for i := range valid {
		a := &valid[i]
		w, ok := windows[a.ID]
		if !ok {
			continue
		}
		r, err := ComputeImpact(a, w, cfg)
		if err != nil {
			skipped = append(skipped, schema.SkippedAction{ActionID: a.ID, Reason: err.Error()})
			continue
		}
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ActionID < results[j].ActionID })
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].ActionID < skipped[j].ActionID })
	return results, skipped
}

// BuildChampionRankings aggregates per-action impacts into the ranked
// champion table plus one score log entry per champion. Skipped actions are
// attributed to their champion's log entry so the audit trail explains every
// exclusion.
func BuildChampionRankings(actions []schema.ActionRecord, impacts []schema.ImpactResult, skipped []schema.SkippedAction, runAt time.Time, cfg schema.EngineConfig) ([]schema.RankingEntry, []schema.ScoreLogEntry) {
	champions := make(map[string]bool)
	for i := range actions {
		champions[championOf(&actions[i])] = true
	}

	championBySkippedID := make(map[string]string, len(actions))
	for i := range actions {
		championBySkippedID[actions[i].ID] = championOf(&actions[i])
	}
	skippedByChampion := make(map[string][]schema.SkippedAction)
	for _, s := range skipped {
		ch, ok := championBySkippedID[s.ActionID]
		if !ok {
			ch = UnassignedChampion
		}
		skippedByChampion[ch] = append(skippedByChampion[ch], s)
	}

	ids := make([]string, 0, len(champions))
	for ch := range champions {
		ids = append(ids, ch)
	}
	sort.Strings(ids)

	entries := make([]schema.RankingEntry, 0, len(ids))
	logEntries := make([]schema.ScoreLogEntry, 0, len(ids))
	for _, ch := range ids {
		entry, logEntry := ComputeChampionRanking(ch, actions, impacts, skippedByChampion[ch], runAt, cfg)
		entries = append(entries, entry)
		logEntries = append(logEntries, logEntry)
	}

	return RankChampions(entries), logEntries
}
