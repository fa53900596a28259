package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/plantops/capaimpact/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	ActionsFile    string
	SubtasksFile   string
	ProductionFile string

	AsOf        time.Time
	ResultLimit int
	Detail      bool
	Explain     bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	LogBackend   schema.DatabaseBackend
	LogDBConnect string // Please use env var as this is plaintext

	Engine schema.EngineConfig

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Actions      string `mapstructure:"actions"`
	Subtasks     string `mapstructure:"subtasks"`
	Production   string `mapstructure:"production"`
	AsOf         string `mapstructure:"as-of"`
	Limit        int    `mapstructure:"limit"`
	Precision    int    `mapstructure:"precision"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Detail       bool   `mapstructure:"detail"`
	Width        int    `mapstructure:"width"`
	LogBackend   string `mapstructure:"log-backend"`
	LogDBConnect string `mapstructure:"log-db-connect"`
	Emoji        string `mapstructure:"emoji"`
	Color        string `mapstructure:"color"`

	// --- Fields from impactCmd.Flags() ---
	Explain bool `mapstructure:"explain"`

	// --- Engine settings from flags or config file ---
	WindowDays          int     `mapstructure:"window-days"`
	MinWindowDays       int     `mapstructure:"min-window-days"`
	HourlyRate          float64 `mapstructure:"hourly-rate"`
	DowntimeCost        float64 `mapstructure:"downtime-cost"`
	ScrapBasis          string  `mapstructure:"scrap-basis"`
	MissingDayPenalty   float64 `mapstructure:"missing-day-penalty"`
	InterferencePenalty float64 `mapstructure:"interference-penalty"`
	InstabilityPenalty  float64 `mapstructure:"instability-penalty"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAsOf(cfg, input); err != nil {
		return err
	}
	if err := processEngineSettings(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("log-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("log-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-engine fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ActionsFile = input.Actions
	cfg.SubtasksFile = input.Subtasks
	cfg.ProductionFile = input.Production
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width

	if cfg.ActionsFile == "" {
		return fmt.Errorf("an actions file is required (set --actions)")
	}

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 0 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 3. Backend Validation ---
	cfg.LogBackend = schema.DatabaseBackend(strings.ToLower(input.LogBackend))
	if _, ok := schema.ValidLogBackends[cfg.LogBackend]; !ok {
		return fmt.Errorf("invalid log backend '%s'. must be sqlite, mysql, postgresql, none", input.LogBackend)
	}
	cfg.LogDBConnect = input.LogDBConnect
	if err := ValidateDatabaseConnectionString(cfg.LogBackend, cfg.LogDBConnect); err != nil {
		return err
	}

	return nil
}

// processAsOf resolves the evaluation date. Open actions accrue lateness up
// to this date, so pinning it makes runs reproducible.
func processAsOf(cfg *Config, input *ConfigRawInput) error {
	if input.AsOf == "" {
		now := time.Now().UTC()
		cfg.AsOf = schema.DateOnly(now)
		return nil
	}

	t, err := schema.ParseDate(input.AsOf)
	if err != nil {
		return fmt.Errorf("invalid --as-of date '%s'. Expected %s: %w", input.AsOf, schema.DateFormat, err)
	}
	cfg.AsOf = t
	return nil
}

// processEngineSettings assembles the engine configuration from raw values
// and delegates range checks to the schema validator.
func processEngineSettings(cfg *Config, input *ConfigRawInput) error {
	basis := schema.ScrapBasis(strings.ToLower(input.ScrapBasis))
	if _, ok := schema.ValidScrapBases[basis]; !ok {
		return fmt.Errorf("invalid scrap basis '%s'. must be per-unit, total-cost", input.ScrapBasis)
	}

	cfg.Engine = schema.EngineConfig{
		WindowDays:            input.WindowDays,
		MinWindowDays:         input.MinWindowDays,
		HourlyRate:            input.HourlyRate,
		DowntimeCostPerMinute: input.DowntimeCost,
		ScrapBasis:            basis,
		Weights: schema.ConfidenceWeights{
			MissingDayPenalty:   input.MissingDayPenalty,
			InterferencePenalty: input.InterferencePenalty,
			InstabilityPenalty:  input.InstabilityPenalty,
		},
		FormulaVersion: schema.FormulaVersionV1,
	}

	return cfg.Engine.Validate()
}
