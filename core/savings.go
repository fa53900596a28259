package core

import (
	"github.com/plantops/capaimpact/schema"
)

// ComputeImpact converts an action's baseline window into monetary terms:
// scrap and downtime savings, total cost, ROI, payback, and a confidence
// score. Savings are floored at zero; a regression is reported as zero
// savings plus a flag, never as a negative "saving". Window flags propagate
// into the result untouched.
func ComputeImpact(a *schema.ActionRecord, w schema.BaselineWindow, cfg schema.EngineConfig) (schema.ImpactResult, error) {
	if err := ValidateAction(a); err != nil {
		return schema.ImpactResult{}, err
	}

	r := schema.ImpactResult{
		ActionID:       a.ID,
		ChampionID:     a.ChampionID,
		FormulaVersion: cfg.FormulaVersion,
		BeforeDays:     w.BeforeDays,
		AfterDays:      w.AfterDays,
		Interference:   w.Interference,
		Flags:          append([]schema.Flag(nil), w.Flags...),
	}

	scrap, scrapFlag := scrapSavings(&w, cfg)
	if scrapFlag != "" {
		r.Flags = appendFlag(r.Flags, scrapFlag)
	}
	r.ScrapSavings = scrap

	downtime, downtimeFlag := downtimeSavings(&w, cfg)
	if downtimeFlag != "" {
		r.Flags = appendFlag(r.Flags, downtimeFlag)
	}
	r.DowntimeSavings = downtime

	r.TotalSavings = r.ScrapSavings + r.DowntimeSavings
	r.TotalCost = a.InternalHours*cfg.HourlyRate + a.ExternalCost + a.MaterialCost

	r.ROI = roiMetric(r.TotalSavings, r.TotalCost)
	r.PaybackDays = paybackMetric(r.TotalSavings, r.TotalCost, w.AfterDays)

	r.Confidence, r.Penalties = scoreConfidence(&w, cfg)

	return r, nil
}

// scrapSavings computes the scrap component under the configured basis.
//
// per-unit (default): (before cost-per-unit - after cost-per-unit) x after
// produced volume. total-cost: (before avg daily scrap cost - after avg
// daily scrap cost) x after day count.
func scrapSavings(w *schema.BaselineWindow, cfg schema.EngineConfig) (float64, schema.Flag) {
	switch cfg.ScrapBasis {
	case schema.ScrapTotalCost:
		if w.BeforeDays == 0 || w.AfterDays == 0 {
			return 0, ""
		}
		beforeAvg := sumScrapCost(w.BeforeRecords) / float64(w.BeforeDays)
		afterAvg := sumScrapCost(w.AfterRecords) / float64(w.AfterDays)
		return floorSavings((beforeAvg - afterAvg) * float64(w.AfterDays), schema.FlagScrapRegression)

	default: // per-unit
		beforeQty := sumProduced(w.BeforeRecords)
		afterQty := sumProduced(w.AfterRecords)
		if beforeQty <= 0 || afterQty <= 0 {
			return 0, schema.FlagNoVolume
		}
		beforeRate := sumScrapCost(w.BeforeRecords) / beforeQty
		afterRate := sumScrapCost(w.AfterRecords) / afterQty
		return floorSavings((beforeRate - afterRate) * afterQty, schema.FlagScrapRegression)
	}
}

// downtimeSavings computes (before avg minutes/day - after avg minutes/day)
// x after day count x cost per minute, floored at zero.
func downtimeSavings(w *schema.BaselineWindow, cfg schema.EngineConfig) (float64, schema.Flag) {
	if w.BeforeDays == 0 || w.AfterDays == 0 {
		return 0, ""
	}
	beforeAvg := sumDowntime(w.BeforeRecords) / float64(w.BeforeDays)
	afterAvg := sumDowntime(w.AfterRecords) / float64(w.AfterDays)
	saved := (beforeAvg - afterAvg) * float64(w.AfterDays) * cfg.DowntimeCostPerMinute
	return floorSavings(saved, schema.FlagDowntimeRegression)
}

// floorSavings clamps a negative saving to zero and names the regression.
func floorSavings(v float64, regression schema.Flag) (float64, schema.Flag) {
	if v < 0 {
		return 0, regression
	}
	return v, ""
}

// roiMetric applies the sentinel rules: cost>0 yields savings/cost exactly;
// zero cost with positive savings is undefined-infinite; both zero is no-data.
func roiMetric(savings, cost float64) schema.Metric {
	switch {
	case cost > 0:
		return schema.MetricOf(savings / cost)
	case savings > 0:
		return schema.MetricInf()
	default:
		return schema.MetricNone()
	}
}

// paybackMetric is cost divided by savings-per-day over the after window.
// Zero-cost and zero-savings sentinels mirror ROI; additionally payback is
// undefined (not infinite) when savings-per-day is not positive.
func paybackMetric(savings, cost float64, afterDays int) schema.Metric {
	if cost == 0 {
		if savings > 0 {
			return schema.MetricInf()
		}
		return schema.MetricNone()
	}
	if afterDays <= 0 || savings <= 0 {
		return schema.MetricUndef()
	}
	perDay := savings / float64(afterDays)
	return schema.MetricOf(cost / perDay)
}

func sumProduced(records []schema.ProductionDayRecord) float64 {
	var total float64
	for i := range records {
		total += records[i].ProducedQty
	}
	return total
}

func sumScrapCost(records []schema.ProductionDayRecord) float64 {
	var total float64
	for i := range records {
		total += records[i].ScrapCost
	}
	return total
}

func sumDowntime(records []schema.ProductionDayRecord) float64 {
	var total float64
	for i := range records {
		total += records[i].DowntimeMinutes
	}
	return total
}
