package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRanking() []schema.RankingEntry {
	return []schema.RankingEntry{
		{
			ChampionID:      "alice",
			WeightedSavings: 2800,
			TotalSavings:    5000,
			OpenCount:       1,
			ClosedCount:     1,
			OverdueCount:    1,
			AvgTimeToClose:  schema.MetricOf(10),
			ActionIDs:       []string{"ACT-1", "ACT-2"},
		},
		{
			ChampionID:     "bob",
			AvgTimeToClose: schema.MetricNone(),
			ActionIDs:      []string{"ACT-3"},
		},
	}
}

func TestWriteJSONResultsForRanking(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForRanking(&buf, sampleRanking(), nil)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	ranking := result["ranking"].([]any)
	require.Len(t, ranking, 2)

	first := ranking[0].(map[string]any)
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, "alice", first["champion_id"])
	assert.Equal(t, 2800.0, first["weighted_savings"])
}

func TestWriteCSVResultsForRanking(t *testing.T) {
	fmtFloat, _ := createFormatters(1)

	var buf bytes.Buffer
	err := writeCSVResultsForRanking(&buf, sampleRanking(), fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "champion_id")
	assert.Contains(t, lines[1], "alice")
	assert.Contains(t, lines[1], "ACT-1|ACT-2")
	// Champions with no closed actions show the sentinel, not zero.
	assert.Contains(t, lines[2], "n/a")
}

func TestWriteRankingTable(t *testing.T) {
	cfg := &contract.Config{
		Precision:  1,
		Width:      120,
		Detail:     true,
		LogBackend: schema.SQLiteBackend,
		Engine:     schema.DefaultEngineConfig(),
	}
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	skipped := []schema.SkippedAction{{ActionID: "ACT-9", Reason: "implementation date is required"}}
	err := writeRankingTable(sampleRanking(), skipped, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "Showing 2 champions")
	assert.Contains(t, out, "skipped ACT-9")
	assert.Contains(t, out, schema.FormulaVersionV1)
}
