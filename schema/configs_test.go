package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EngineConfig)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*EngineConfig) {}},
		{name: "zero window days", mutate: func(c *EngineConfig) { c.WindowDays = 0 }, wantErr: "window days"},
		{name: "min window exceeds window", mutate: func(c *EngineConfig) { c.MinWindowDays = c.WindowDays + 1 }, wantErr: "min window days"},
		{name: "negative min window", mutate: func(c *EngineConfig) { c.MinWindowDays = -1 }, wantErr: "min window days"},
		{name: "negative hourly rate", mutate: func(c *EngineConfig) { c.HourlyRate = -1 }, wantErr: "hourly rate"},
		{name: "negative downtime cost", mutate: func(c *EngineConfig) { c.DowntimeCostPerMinute = -0.5 }, wantErr: "downtime cost"},
		{name: "bad scrap basis", mutate: func(c *EngineConfig) { c.ScrapBasis = "weight" }, wantErr: "scrap basis"},
		{name: "negative penalty", mutate: func(c *EngineConfig) { c.Weights.InterferencePenalty = -5 }, wantErr: "penalties"},
		{name: "missing formula version", mutate: func(c *EngineConfig) { c.FormulaVersion = "" }, wantErr: "formula version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	assert.Equal(t, DefaultWindowDays, cfg.WindowDays)
	assert.Equal(t, ScrapPerUnit, cfg.ScrapBasis)
	assert.Equal(t, FormulaVersionV1, cfg.FormulaVersion)
}
