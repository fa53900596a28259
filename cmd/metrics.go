package cmd

import (
	"github.com/plantops/capaimpact/core"
	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/internal/outwriter"
	"github.com/plantops/capaimpact/schema"
	"github.com/spf13/cobra"
)

// metricsCmd computes per-action time KPIs and the portfolio rollup.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show time KPIs for all corrective actions.",
	Long: `Compute per-action time metrics and the portfolio KPI rollup.

For each action this reports:
- Days late, against the due date or the actual closure date
- Time to close for closed actions
- On-time closure, with subtask due dates summed into the lateness total

The rollup aggregates open/overdue counts, average time to close and the
on-time close rate across the whole snapshot.

Open actions accrue lateness up to the evaluation date, so pin --as-of to
make runs reproducible.

Examples:
  # KPI rollup for the current export
  capaimpact metrics --actions actions.csv

  # Include subtask lateness and the per-date KPI timeline
  capaimpact metrics --actions actions.csv --subtasks subtasks.csv --detail

  # Reproduce last month's report
  capaimpact metrics --actions actions.csv --as-of 2026-07-31 --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runMetrics(); err != nil {
			contract.LogFatal("Cannot compute action metrics", err)
		}
	},
}

// runMetrics loads the snapshot, computes KPIs and writes them out.
func runMetrics() error {
	source := newSnapshotSource()
	actions, err := source.Actions()
	if err != nil {
		return err
	}

	contract.LogRunHeader(cfg, "Metrics")

	rows := make([]schema.ActionMetrics, 0, len(actions))
	for i := range actions {
		m, err := core.ComputeActionMetrics(&actions[i], cfg.AsOf)
		if err != nil {
			return err
		}
		rows = append(rows, m)
	}

	kpi := core.BuildActionsKPI(actions, cfg.AsOf)

	var timeline []schema.KPIRow
	if cfg.Detail {
		timeline = core.BuildKPITimeline(actions)
	}

	return outwriter.WriteActionMetricsResults(rows, kpi, timeline, cfg)
}
