package cmd

import (
	"fmt"

	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/internal/iocache"
	"github.com/plantops/capaimpact/internal/outwriter"
	"github.com/plantops/capaimpact/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scorelogSetup loads minimal configuration needed for score log operations.
// This is used by commands that need store access without full shared setup,
// avoiding snapshot file validation for simple audit-trail queries.
func scorelogSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("log-backend"))
	connStr := viper.GetString("log-db-connect")

	if _, ok := schema.ValidLogBackends[backend]; !ok {
		return fmt.Errorf("invalid log backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.LogBackend = backend
	cfg.LogDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = viper.GetInt("precision")
	cfg.Width = viper.GetInt("width")

	return nil
}

// scorelogSetupWrapper wraps scorelogSetup to provide PreRunE for scorelog commands.
func scorelogSetupWrapper(_ *cobra.Command, _ []string) error {
	return scorelogSetup()
}

// withScoreLogStore opens the configured store, runs fn and closes the store.
func withScoreLogStore(fn func(store contract.ScoreLogStore) error) error {
	store, err := iocache.NewScoreLogStore(cfg.LogBackend, cfg.LogDBConnect)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			contract.LogWarn("Failed to close score log store", err)
		}
	}()
	return fn(store)
}

// scorelogCmd focused on score log audit-trail management.
var scorelogCmd = &cobra.Command{
	Use:   "scorelog",
	Short: "Inspect and manage the score log audit trail",
	Long: `Manage the append-only score log written by ranking runs.

Every 'capaimpact rank' run appends one entry per champion, storing:
- Run timestamp and formula version
- The champion's confidence-weighted score
- The full scored inputs and skipped actions behind the score

This makes past rankings replayable: an auditor can re-derive any
historical score from its logged inputs.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show all logged ranking runs
  status  - Show backend and entry statistics
  migrate - Run database schema migrations

Examples:
  # Review the audit trail
  capaimpact scorelog list

  # Export the trail for analytics
  capaimpact scorelog list --output parquet --output-file scorelog.parquet`,
}

// scorelogListCmd lists all score log entries.
var scorelogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all score log entries in run order",
	Long: `List every score log entry the configured backend holds.

Entries are shown oldest first, one row per champion per ranking run.
Use --output json to inspect the full scored inputs behind each score,
or --output parquet with --output-file for analytics tooling.

Examples:
  # Audit recent ranking runs
  capaimpact scorelog list

  # Full replay data for one run
  capaimpact scorelog list --output json`,
	PreRunE: scorelogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withScoreLogStore(func(store contract.ScoreLogStore) error {
			entries, err := store.List()
			if err != nil {
				return err
			}
			return outwriter.WriteScoreLogEntries(entries, cfg)
		})
		if err != nil {
			contract.LogFatal("Failed to list score log entries", err)
		}
	},
}

// scorelogStatusCmd shows score log store status.
var scorelogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display score log statistics and connection details",
	Long: `Show the configured backend, total entry count and latest run time.

Use this to:
- Verify the audit trail is enabled and reachable
- Check when a ranking was last recorded

Examples:
  # Check the audit trail health
  capaimpact scorelog status`,
	PreRunE: scorelogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withScoreLogStore(func(store contract.ScoreLogStore) error {
			status, err := store.GetStatus()
			if err != nil {
				return err
			}
			return outwriter.WriteScoreLogStatus(status, cfg)
		})
		if err != nil {
			contract.LogFatal("Failed to get score log status", err)
		}
	},
}

// scorelogMigrateCmd runs database migrations for the score log store.
var scorelogMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the score log store.

By default, migrates to the latest version. Use --target-version for
specific versions; 0 rolls back to the initial (empty) state.

Examples:
  # Migrate to latest version (default)
  capaimpact scorelog migrate

  # Rollback everything
  capaimpact scorelog migrate --target-version 0`,
	PreRunE: scorelogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		connStr := cfg.LogDBConnect
		if cfg.LogBackend == schema.SQLiteBackend && connStr == "" {
			connStr = contract.GetScoreLogDBFilePath()
		}
		if err := iocache.MigrateScoreLog(cfg.LogBackend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
