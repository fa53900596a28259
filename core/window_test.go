package core

import (
	"testing"
	"time"

	"github.com/plantops/capaimpact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productionDays builds count consecutive daily records starting at start.
func productionDays(start time.Time, count int, line, project string, produced, scrapCost, downtime float64) []schema.ProductionDayRecord {
	records := make([]schema.ProductionDayRecord, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, schema.ProductionDayRecord{
			Date:            start.AddDate(0, 0, i),
			Line:            line,
			Project:         project,
			ProducedQty:     produced,
			ScrapCost:       scrapCost,
			DowntimeMinutes: downtime,
		})
	}
	return records
}

func anchoredAction(id string, implemented time.Time) schema.ActionRecord {
	return schema.ActionRecord{
		ID:            id,
		Line:          "L1",
		Project:       "P1",
		Status:        schema.StatusOpen,
		ImplementedAt: schema.DatePtr(implemented),
	}
}

func TestComputeBaselineWindowRanges(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	a := anchoredAction("ACT-1", schema.Date(2024, time.January, 15))

	w, err := ComputeBaselineWindow(&a, nil, cfg)
	require.NoError(t, err)

	assert.Equal(t, schema.Date(2023, time.December, 16), w.Before.Start)
	assert.Equal(t, schema.Date(2024, time.January, 14), w.Before.End)
	assert.Equal(t, schema.Date(2024, time.January, 15), w.After.Start)
	assert.Equal(t, schema.Date(2024, time.February, 14), w.After.End)
}

// TestComputeBaselineWindowDayCounts checks that day counts reflect distinct
// production dates present, not calendar length.
func TestComputeBaselineWindowDayCounts(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	a := anchoredAction("ACT-1", schema.Date(2024, time.January, 15))

	series := productionDays(schema.Date(2024, time.January, 5), 5, "L1", "P1", 100, 500, 30)
	series = append(series, productionDays(schema.Date(2024, time.January, 15), 8, "L1", "P1", 100, 300, 20)...)
	// Records from another line never count.
	series = append(series, productionDays(schema.Date(2024, time.January, 5), 10, "L2", "P1", 100, 500, 30)...)

	w, err := ComputeBaselineWindow(&a, series, cfg)
	require.NoError(t, err)

	assert.Equal(t, 5, w.BeforeDays)
	assert.Equal(t, 8, w.AfterDays)
	assert.NotContains(t, w.Flags, schema.FlagInsufficientBefore)
	assert.NotContains(t, w.Flags, schema.FlagInsufficientAfter)
}

// TestComputeBaselineWindowDuplicates ensures duplicates keep the first
// occurrence and get flagged, never averaged.
func TestComputeBaselineWindowDuplicates(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	a := anchoredAction("ACT-1", schema.Date(2024, time.January, 15))

	day := schema.Date(2024, time.January, 10)
	series := []schema.ProductionDayRecord{
		{Date: day, Line: "L1", Project: "P1", ProducedQty: 100, ScrapCost: 500},
		{Date: day, Line: "L1", Project: "P1", ProducedQty: 999, ScrapCost: 999},
	}

	w, err := ComputeBaselineWindow(&a, series, cfg)
	require.NoError(t, err)

	assert.Contains(t, w.Flags, schema.FlagDuplicateDay)
	require.Equal(t, 1, w.BeforeDays)
	assert.InDelta(t, 500.0, w.BeforeRecords[0].ScrapCost, 0.001)
}

func TestComputeBaselineWindowInsufficientSides(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	a := anchoredAction("ACT-1", schema.Date(2024, time.January, 15))

	// Two before days, zero after days; both under the minimum of three.
	series := productionDays(schema.Date(2024, time.January, 13), 2, "L1", "P1", 100, 500, 30)

	w, err := ComputeBaselineWindow(&a, series, cfg)
	require.NoError(t, err)

	assert.Contains(t, w.Flags, schema.FlagInsufficientBefore)
	assert.Contains(t, w.Flags, schema.FlagInsufficientAfter)
	assert.Equal(t, 2, w.BeforeDays)
	assert.Equal(t, 0, w.AfterDays)
}

func TestComputeBaselineWindowMissingImplementation(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	a := schema.ActionRecord{ID: "ACT-1", Line: "L1", Project: "P1", Status: schema.StatusOpen}

	_, err := ComputeBaselineWindow(&a, nil, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "implemented_at")
}

func TestComputeBaselineWindowInvalidProduction(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	a := anchoredAction("ACT-1", schema.Date(2024, time.January, 15))

	series := []schema.ProductionDayRecord{
		{Date: schema.Date(2024, time.January, 10), Line: "L1", Project: "P1", ProducedQty: -5},
	}

	_, err := ComputeBaselineWindow(&a, series, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "produced_qty")
}

// TestComputeBaselineWindowsInterference covers the two-action overlap
// scenario: overlapping after-windows on the same line flag both actions.
func TestComputeBaselineWindowsInterference(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	actions := []schema.ActionRecord{
		anchoredAction("ACT-1", schema.Date(2024, time.January, 15)),
		anchoredAction("ACT-2", schema.Date(2024, time.January, 25)),
	}

	windows, skipped := ComputeBaselineWindows(actions, nil, cfg)
	require.Empty(t, skipped)
	require.Len(t, windows, 2)

	assert.True(t, windows["ACT-1"].Interference)
	assert.True(t, windows["ACT-2"].Interference)
	assert.Contains(t, windows["ACT-1"].Flags, schema.FlagOverlapDetected)
	assert.Contains(t, windows["ACT-2"].Flags, schema.FlagOverlapDetected)
}

// TestComputeBaselineWindowsNoCrossLineInterference checks that actions on
// different lines never interfere.
func TestComputeBaselineWindowsNoCrossLineInterference(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	a1 := anchoredAction("ACT-1", schema.Date(2024, time.January, 15))
	a2 := anchoredAction("ACT-2", schema.Date(2024, time.January, 25))
	a2.Line = "L2"

	windows, skipped := ComputeBaselineWindows([]schema.ActionRecord{a1, a2}, nil, cfg)
	require.Empty(t, skipped)

	assert.False(t, windows["ACT-1"].Interference)
	assert.False(t, windows["ACT-2"].Interference)
}

// TestComputeBaselineWindowsSkipsUnanchored reports actions without an
// implementation date instead of failing the batch.
func TestComputeBaselineWindowsSkipsUnanchored(t *testing.T) {
	cfg := schema.DefaultEngineConfig()
	actions := []schema.ActionRecord{
		anchoredAction("ACT-1", schema.Date(2024, time.January, 15)),
		{ID: "ACT-2", Line: "L1", Project: "P1", Status: schema.StatusOpen},
	}

	windows, skipped := ComputeBaselineWindows(actions, nil, cfg)

	require.Len(t, windows, 1)
	require.Len(t, skipped, 1)
	assert.Equal(t, "ACT-2", skipped[0].ActionID)
	assert.Contains(t, skipped[0].Reason, "implemented_at")
}
