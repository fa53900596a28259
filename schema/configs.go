package schema

import "fmt"

// Default engine tuning. Kept as named constants so the defaults are
// greppable next to the config struct they feed.
const (
	DefaultWindowDays            = 30
	DefaultMinWindowDays         = 3
	DefaultHourlyRate            = 35.0
	DefaultDowntimeCostPerMinute = 1.5
	DefaultMissingDayPenalty     = 5.0
	DefaultInterferencePenalty   = 15.0
	DefaultInstabilityPenalty    = 25.0
)

// ConfidenceWeights holds the coefficients of the confidence heuristic.
// The coefficients are versioned via EngineConfig.FormulaVersion so that
// historical scores remain reproducible after retuning.
type ConfidenceWeights struct {
	// MissingDayPenalty is deducted per production day short of the minimum,
	// on each window side. Graduated, not a flat flag.
	MissingDayPenalty float64 `json:"missing_day_penalty"`

	// InterferencePenalty is a fixed deduction when another action's window
	// overlaps this one on the same line/project.
	InterferencePenalty float64 `json:"interference_penalty"`

	// InstabilityPenalty scales with the coefficient of variation of the
	// before-window daily series, capped at 1.0.
	InstabilityPenalty float64 `json:"instability_penalty"`
}

// EngineConfig is the explicit tuning surface passed into every scoring call.
// Two runs with different tuning are fully reproducible side by side; there
// is no process-wide singleton.
type EngineConfig struct {
	WindowDays            int               `json:"window_days"`
	MinWindowDays         int               `json:"min_window_days"`
	HourlyRate            float64           `json:"hourly_rate"`
	DowntimeCostPerMinute float64           `json:"downtime_cost_per_minute"`
	ScrapBasis            ScrapBasis        `json:"scrap_basis"`
	Weights               ConfidenceWeights `json:"weights"`
	FormulaVersion        string            `json:"formula_version"`
}

// DefaultEngineConfig returns the fi-v1 tuning.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		WindowDays:            DefaultWindowDays,
		MinWindowDays:         DefaultMinWindowDays,
		HourlyRate:            DefaultHourlyRate,
		DowntimeCostPerMinute: DefaultDowntimeCostPerMinute,
		ScrapBasis:            ScrapPerUnit,
		Weights: ConfidenceWeights{
			MissingDayPenalty:   DefaultMissingDayPenalty,
			InterferencePenalty: DefaultInterferencePenalty,
			InstabilityPenalty:  DefaultInstabilityPenalty,
		},
		FormulaVersion: FormulaVersionV1,
	}
}

// Validate checks the tuning values for basic sanity.
func (c EngineConfig) Validate() error {
	if c.WindowDays <= 0 {
		return fmt.Errorf("window days must be greater than 0 (received %d)", c.WindowDays)
	}
	if c.MinWindowDays < 0 || c.MinWindowDays > c.WindowDays {
		return fmt.Errorf("min window days must be in [0, %d] (received %d)", c.WindowDays, c.MinWindowDays)
	}
	if c.HourlyRate < 0 {
		return fmt.Errorf("hourly rate cannot be negative (received %.2f)", c.HourlyRate)
	}
	if c.DowntimeCostPerMinute < 0 {
		return fmt.Errorf("downtime cost per minute cannot be negative (received %.2f)", c.DowntimeCostPerMinute)
	}
	if _, ok := ValidScrapBases[c.ScrapBasis]; !ok {
		return fmt.Errorf("invalid scrap basis %q. must be per-unit or total-cost", c.ScrapBasis)
	}
	if c.Weights.MissingDayPenalty < 0 || c.Weights.InterferencePenalty < 0 || c.Weights.InstabilityPenalty < 0 {
		return fmt.Errorf("confidence penalties cannot be negative")
	}
	if c.FormulaVersion == "" {
		return fmt.Errorf("formula version is required")
	}
	return nil
}
