package schema

// ImpactResult is the monetary effect of one action, with a confidence score
// and the data-quality flags accumulated on the way up. Savings are floored
// at zero; a regression is reported as zero savings plus a flag.
type ImpactResult struct {
	ActionID   string `json:"action_id"`
	ChampionID string `json:"champion_id"`

	ScrapSavings    float64 `json:"scrap_savings"`
	DowntimeSavings float64 `json:"downtime_savings"`
	TotalSavings    float64 `json:"total_savings"`
	TotalCost       float64 `json:"total_cost"`

	ROI         Metric `json:"roi"`
	PaybackDays Metric `json:"payback_days"`

	Confidence     int                    `json:"confidence"` // 0-100
	Penalties      map[PenaltyKey]float64 `json:"penalties,omitempty"`
	FormulaVersion string                 `json:"formula_version"`

	// Window metadata carried for drill-down and confidence replay.
	BeforeDays   int  `json:"before_days"`
	AfterDays    int  `json:"after_days"`
	Interference bool `json:"interference"`

	Flags []Flag `json:"flags,omitempty"`
}

// HasFlag reports whether the result carries the named flag.
func (r *ImpactResult) HasFlag(f Flag) bool {
	for _, have := range r.Flags {
		if have == f {
			return true
		}
	}
	return false
}
