package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/plantops/capaimpact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleImpacts() []schema.ImpactResult {
	return []schema.ImpactResult{
		{
			ActionID:        "ACT-1",
			ChampionID:      "alice",
			ScrapSavings:    5000,
			DowntimeSavings: 562.5,
			TotalSavings:    5562.5,
			TotalCost:       2000,
			ROI:             schema.MetricOf(2.78),
			PaybackDays:     schema.MetricOf(9),
			Confidence:      100,
			FormulaVersion:  schema.FormulaVersionV1,
			BeforeDays:      20,
			AfterDays:       25,
		},
		{
			ActionID:       "ACT-2",
			ChampionID:     "bob",
			TotalSavings:   1200,
			ROI:            schema.MetricInf(),
			PaybackDays:    schema.MetricInf(),
			Confidence:     55,
			FormulaVersion: schema.FormulaVersionV1,
			Flags:          []schema.Flag{schema.FlagInsufficientBefore},
		},
	}
}

func TestWriteJSONResultsForImpacts(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForImpacts(&buf, sampleImpacts(), []schema.SkippedAction{
		{ActionID: "ACT-9", Reason: "implementation date is required"},
	})
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	results := result["results"].([]any)
	require.Len(t, results, 2)

	first := results[0].(map[string]any)
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, "ACT-1", first["action_id"])
	assert.Equal(t, "Strong", first["label"])

	second := results[1].(map[string]any)
	assert.Equal(t, "Poor", second["label"])
	roi := second["roi"].(map[string]any)
	assert.Equal(t, "undefined-infinite", roi["kind"])

	skipped := result["skipped"].([]any)
	require.Len(t, skipped, 1)
}

func TestWriteCSVResultsForImpacts(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	err := writeCSVResultsForImpacts(&buf, sampleImpacts(), fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Contains(t, lines[0], "action_id")
	assert.Contains(t, lines[0], "roi")
	assert.Contains(t, lines[1], "ACT-1")
	assert.Contains(t, lines[1], "5562.50")
	// Sentinel metrics render as their sentinel token, never zero.
	assert.Contains(t, lines[2], "inf")
	assert.Contains(t, lines[2], "insufficient-before-window")
}

func TestWriteCSVResultsForImpactsEmpty(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	require.NoError(t, writeCSVResultsForImpacts(&buf, nil, fmtFloat))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "rank")
}
