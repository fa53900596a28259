// Package cmd defines the command-line interface for capaimpact.
package cmd

import (
	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(scorelogCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the scorelog subcommands to the parent scorelog command
	scorelogCmd.AddCommand(scorelogListCmd)
	scorelogCmd.AddCommand(scorelogStatusCmd)
	scorelogCmd.AddCommand(scorelogMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("actions", "a", "", "Path to the actions CSV export")
	rootCmd.PersistentFlags().StringP("subtasks", "s", "", "Optional path to the subtasks CSV export")
	rootCmd.PersistentFlags().StringP("production", "p", "", "Optional path to the production days CSV export")
	rootCmd.PersistentFlags().String("as-of", "", "Evaluation date in ISO8601 (defaults to today, UTC)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-action window metadata and data-quality flags")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("log-backend", string(schema.SQLiteBackend), "Score log backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("log-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("window-days", schema.DefaultWindowDays, "Baseline window length in days on each side of the implementation date")
	rootCmd.PersistentFlags().Int("min-window-days", schema.DefaultMinWindowDays, "Minimum observed days required on each side of the window")
	rootCmd.PersistentFlags().Float64("hourly-rate", schema.DefaultHourlyRate, "Labor rate used to price internal hours")
	rootCmd.PersistentFlags().Float64("downtime-cost", schema.DefaultDowntimeCostPerMinute, "Cost per minute of line downtime")
	rootCmd.PersistentFlags().String("scrap-basis", string(schema.ScrapPerUnit), "Scrap savings basis: per-unit or total-cost")
	rootCmd.PersistentFlags().Float64("missing-day-penalty", schema.DefaultMissingDayPenalty, "Confidence penalty per missing production day")
	rootCmd.PersistentFlags().Float64("interference-penalty", schema.DefaultInterferencePenalty, "Confidence penalty when another action overlaps the window")
	rootCmd.PersistentFlags().Float64("instability-penalty", schema.DefaultInstabilityPenalty, "Confidence penalty scale for unstable before-windows")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of impactCmd to Viper
	impactCmd.Flags().Bool("explain", false, "Print per-action confidence penalty breakdown")
	if err := viper.BindPFlags(impactCmd.Flags()); err != nil {
		contract.LogFatal("Error binding impact flags", err)
	}

	// Bind all flags of scorelogMigrateCmd to Viper
	scorelogMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(scorelogMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding scorelog migrate flags", err)
	}
}
