package cmd

import (
	"time"

	"github.com/plantops/capaimpact/core"
	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/internal/iocache"
	"github.com/plantops/capaimpact/internal/outwriter"
	"github.com/spf13/cobra"
)

// rankCmd ranks champions by confidence-weighted savings.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank champions by confidence-weighted savings.",
	Long: `Aggregate scored impacts per champion and rank them.

Each champion entry reports:
- Confidence-weighted savings (the ranking key) and raw savings
- Open, closed and overdue action counts
- Average time to close across their closed actions

Every run appends one score log entry per champion to the configured
backend, capturing the full scored inputs so past rankings can be
replayed and audited. Use --log-backend none to skip the audit trail.

Ties are broken deterministically: raw savings, then champion ID.
Actions without a champion are bucketed under "unassigned".

Examples:
  # Monthly champion review
  capaimpact rank --actions actions.csv --production production.csv

  # Top five only, without touching the score log
  capaimpact rank --actions actions.csv --production production.csv --limit 5 --log-backend none

  # Shared audit trail on MySQL
  capaimpact rank --actions actions.csv --production production.csv \
    --log-backend mysql --log-db-connect "user:pass@tcp(db:3306)/capa"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runRank(); err != nil {
			contract.LogFatal("Cannot rank champions", err)
		}
	},
}

// runRank scores the snapshot, appends the score log and writes the ranking.
func runRank() error {
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

	contract.LogRunHeader(cfg, "Ranking")

	impacts, skipped := core.ComputeImpacts(actions, series, cfg.Engine)
	runAt := time.Now().UTC()
	entries, logEntries := core.BuildChampionRankings(actions, impacts, skipped, runAt, cfg.Engine)

	store, err := iocache.NewScoreLogStore(cfg.LogBackend, cfg.LogDBConnect)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			contract.LogWarn("Failed to close score log store", err)
		}
	}()
	for _, logEntry := range logEntries {
		if err := store.Append(logEntry); err != nil {
			return err
		}
	}

	if cfg.ResultLimit > 0 && len(entries) > cfg.ResultLimit {
		entries = entries[:cfg.ResultLimit]
	}
	duration := time.Since(start)

	return outwriter.WriteRankingResults(entries, skipped, cfg, duration)
}
