package contract

import (
	"testing"
	"time"

	"github.com/plantops/capaimpact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validRawInput returns a raw input that passes validation, mirroring the
// defaults the CLI seeds through viper.
func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Actions:             "actions.csv",
		Production:          "production.csv",
		Limit:               DefaultResultLimit,
		Precision:           DefaultPrecision,
		Output:              "text",
		LogBackend:          "sqlite",
		Emoji:               "yes",
		Color:               "yes",
		WindowDays:          schema.DefaultWindowDays,
		MinWindowDays:       schema.DefaultMinWindowDays,
		HourlyRate:          schema.DefaultHourlyRate,
		DowntimeCost:        schema.DefaultDowntimeCostPerMinute,
		ScrapBasis:          string(schema.ScrapPerUnit),
		MissingDayPenalty:   schema.DefaultMissingDayPenalty,
		InterferencePenalty: schema.DefaultInterferencePenalty,
		InstabilityPenalty:  schema.DefaultInstabilityPenalty,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(in *ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "missing actions file",
			mutate:      func(in *ConfigRawInput) { in.Actions = "" },
			expectError: true,
		},
		{
			name:        "invalid limit (zero)",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: true,
		},
		{
			name:        "invalid limit (too large)",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "invalid output format",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "invalid precision",
			mutate:      func(in *ConfigRawInput) { in.Precision = 9 },
			expectError: true,
		},
		{
			name:        "invalid backend",
			mutate:      func(in *ConfigRawInput) { in.LogBackend = "oracle" },
			expectError: true,
		},
		{
			name:        "invalid emoji value",
			mutate:      func(in *ConfigRawInput) { in.Emoji = "maybe" },
			expectError: true,
		},
		{
			name:        "invalid as-of date",
			mutate:      func(in *ConfigRawInput) { in.AsOf = "15.01.2024" },
			expectError: true,
		},
		{
			name:        "invalid scrap basis",
			mutate:      func(in *ConfigRawInput) { in.ScrapBasis = "weight" },
			expectError: true,
		},
		{
			name:        "invalid window days",
			mutate:      func(in *ConfigRawInput) { in.WindowDays = 0 },
			expectError: true,
		},
		{
			name:        "min window larger than window",
			mutate:      func(in *ConfigRawInput) { in.MinWindowDays = 60 },
			expectError: true,
		},
		{
			name:        "negative hourly rate",
			mutate:      func(in *ConfigRawInput) { in.HourlyRate = -1 },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidatePopulatesConfig(t *testing.T) {
	input := validRawInput()
	input.AsOf = "2024-02-10"
	input.Output = "json"
	input.Detail = true

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "actions.csv", cfg.ActionsFile)
	assert.Equal(t, "production.csv", cfg.ProductionFile)
	assert.Equal(t, schema.Date(2024, time.February, 10), cfg.AsOf)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.True(t, cfg.Detail)
	assert.Equal(t, schema.SQLiteBackend, cfg.LogBackend)
	assert.Equal(t, schema.FormulaVersionV1, cfg.Engine.FormulaVersion)
	assert.Equal(t, schema.DefaultWindowDays, cfg.Engine.WindowDays)
}

func TestProcessAsOfDefaultsToToday(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, processAsOf(cfg, &ConfigRawInput{}))

	today := schema.DateOnly(time.Now().UTC())
	assert.Equal(t, today, cfg.AsOf)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{name: "sqlite allows empty", backend: schema.SQLiteBackend, connStr: "", expectError: false},
		{name: "none allows empty", backend: schema.NoneBackend, connStr: "", expectError: false},
		{name: "mysql empty", backend: schema.MySQLBackend, connStr: "", expectError: true},
		{name: "mysql missing tcp", backend: schema.MySQLBackend, connStr: "user:pass/db", expectError: true},
		{name: "mysql valid", backend: schema.MySQLBackend, connStr: "user:pass@tcp(localhost:3306)/capaimpact", expectError: false},
		{name: "postgres empty", backend: schema.PostgreSQLBackend, connStr: "", expectError: true},
		{name: "postgres missing dbname", backend: schema.PostgreSQLBackend, connStr: "host=localhost", expectError: true},
		{name: "postgres valid", backend: schema.PostgreSQLBackend, connStr: "host=localhost dbname=capaimpact", expectError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
