package cmd

import (
	"time"

	"github.com/plantops/capaimpact/core"
	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/internal/outwriter"
	"github.com/spf13/cobra"
)

// impactCmd scores the monetary impact of implemented actions.
var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Score monetary savings, ROI and confidence per action.",
	Long: `Compare production before and after each action's implementation date
and score the monetary effect.

For each implemented action this computes:
- Scrap and downtime savings over symmetric baseline windows
- Total implementation cost (internal hours, external and material cost)
- ROI and payback period, with explicit inf/n-a/undef sentinels
- A 0-100 confidence score reflecting window coverage, interference
  from overlapping actions, and before-window stability

Actions that cannot be scored (no implementation date, not enough
observed days) are skipped and reported with a reason rather than
failing the run. Savings are floored at zero; a regression shows up
as a flag, never as negative savings.

Examples:
  # Score all implemented actions
  capaimpact impact --actions actions.csv --production production.csv

  # Shorter windows for fast-moving lines
  capaimpact impact --actions actions.csv --production production.csv --window-days 14

  # Show the penalty breakdown behind each confidence score
  capaimpact impact --actions actions.csv --production production.csv --explain

  # Export for further analysis
  capaimpact impact --actions actions.csv --production production.csv --output parquet --output-file impacts.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runImpact(); err != nil {
			contract.LogFatal("Cannot score action impacts", err)
		}
	},
}

// runImpact loads the snapshot, scores every action and writes the results.
func runImpact() error {
	start := time.Now()

	source := newSnapshotSource()
	actions, err := source.Actions()
	if err != nil {
		return err
	}
	series, err := source.ProductionDays()
	if err != nil {
		return err
	}

	contract.LogRunHeader(cfg, "Impact")

	results, skipped := core.ComputeImpacts(actions, series, cfg.Engine)
	ranked := core.RankImpacts(results, cfg.ResultLimit)
	duration := time.Since(start)

	return outwriter.WriteImpactResults(ranked, skipped, cfg, duration)
}
