package core

import (
	"math"

	"github.com/plantops/capaimpact/schema"
)

// scoreConfidence rates a baseline window's trustworthiness from 0 to 100
// with a fixed, documented heuristic. Base 100, minus:
//   - a graduated deduction per production day short of the minimum on each
//     window side (proportional to the shortfall, not a flat flag),
//   - a fixed deduction when another action's window interferes,
//   - a deduction proportional to the coefficient of variation of the
//     before-window daily scrap cost and downtime series (capped at 1.0).
//
// The penalty breakdown is returned alongside the score for explain mode.
// Coefficients live in EngineConfig and are tagged by its FormulaVersion.
func scoreConfidence(w *schema.BaselineWindow, cfg schema.EngineConfig) (int, map[schema.PenaltyKey]float64) {
	penalties := make(map[schema.PenaltyKey]float64)

	if shortfall := cfg.MinWindowDays - w.BeforeDays; shortfall > 0 {
		penalties[schema.PenaltyBeforeShortfall] = float64(shortfall) * cfg.Weights.MissingDayPenalty
	}
	if shortfall := cfg.MinWindowDays - w.AfterDays; shortfall > 0 {
		penalties[schema.PenaltyAfterShortfall] = float64(shortfall) * cfg.Weights.MissingDayPenalty
	}
	if w.Interference {
		penalties[schema.PenaltyInterference] = cfg.Weights.InterferencePenalty
	}
	if instability := beforeInstability(w); instability > 0 {
		penalties[schema.PenaltyInstability] = instability * cfg.Weights.InstabilityPenalty
	}

	score := 100.0
	for _, p := range penalties {
		score -= p
	}
	score = math.Min(math.Max(score, 0), 100)

	return int(math.Round(score)), penalties
}

// beforeInstability measures how noisy the baseline is: the mean coefficient
// of variation of the before-window daily scrap cost and downtime series,
// capped at 1.0. An unstable baseline reduces trust in any delta against it.
func beforeInstability(w *schema.BaselineWindow) float64 {
	scrap := make([]float64, 0, len(w.BeforeRecords))
	downtime := make([]float64, 0, len(w.BeforeRecords))
	for i := range w.BeforeRecords {
		scrap = append(scrap, w.BeforeRecords[i].ScrapCost)
		downtime = append(downtime, w.BeforeRecords[i].DowntimeMinutes)
	}
	instability := (cv(scrap) + cv(downtime)) / 2
	return math.Min(instability, 1)
}

// cv calculates the coefficient of variation (population standard deviation
// over mean) of a series. Series with fewer than two points or a non-positive
// mean contribute no instability signal.
func cv(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	if mean <= 0 {
		return 0
	}

	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	stddev := math.Sqrt(sqDiff / float64(n))

	return stddev / mean
}
