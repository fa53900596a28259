package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/plantops/capaimpact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry(championID string, runAt time.Time, score float64) schema.ScoreLogEntry {
	return schema.ScoreLogEntry{
		RunAt:          runAt,
		ChampionID:     championID,
		FormulaVersion: schema.FormulaVersionV1,
		Score:          score,
		Inputs: []schema.ImpactResult{
			{
				ActionID:       "ACT-1",
				ChampionID:     championID,
				TotalSavings:   score,
				Confidence:     90,
				ROI:            schema.MetricOf(2.5),
				PaybackDays:    schema.MetricOf(12),
				Penalties:      map[schema.PenaltyKey]float64{schema.PenaltyInterference: 15},
				FormulaVersion: schema.FormulaVersionV1,
			},
		},
		Skipped: []schema.SkippedAction{
			{ActionID: "ACT-9", Reason: "implementation date is required"},
		},
	}
}

func TestScoreLogStoreSQLiteRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scorelog.db")
	store, err := NewScoreLogStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	first := sampleEntry("alice", schema.Date(2024, time.March, 1), 2800)
	second := sampleEntry("bob", schema.Date(2024, time.April, 1), 1200)

	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "alice", entries[0].ChampionID)
	assert.True(t, entries[0].RunAt.Equal(first.RunAt))
	assert.Equal(t, schema.FormulaVersionV1, entries[0].FormulaVersion)
	assert.InDelta(t, 2800.0, entries[0].Score, 0.001)
	require.Len(t, entries[0].Inputs, 1)
	assert.Equal(t, "ACT-1", entries[0].Inputs[0].ActionID)
	assert.Equal(t, schema.MetricValue, entries[0].Inputs[0].ROI.Kind)
	assert.InDelta(t, 15.0, entries[0].Inputs[0].Penalties[schema.PenaltyInterference], 0.001)
	require.Len(t, entries[0].Skipped, 1)
	assert.Equal(t, "ACT-9", entries[0].Skipped[0].ActionID)

	assert.Equal(t, "bob", entries[1].ChampionID)
}

func TestScoreLogStoreStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scorelog.db")
	store, err := NewScoreLogStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, 0, status.EntryCount)
	assert.Nil(t, status.LatestRun)

	runAt := schema.Date(2024, time.March, 1)
	require.NoError(t, store.Append(sampleEntry("alice", runAt, 2800)))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.EntryCount)
	require.NotNil(t, status.LatestRun)
	assert.True(t, status.LatestRun.Equal(runAt))
}

func TestScoreLogStoreNoneBackend(t *testing.T) {
	store, err := NewScoreLogStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Append(sampleEntry("alice", schema.Date(2024, time.March, 1), 2800)))

	entries, err := store.List()
	require.NoError(t, err)
	assert.Nil(t, entries)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.Equal(t, 0, status.EntryCount)
}

func TestScoreLogStoreUnsupportedBackend(t *testing.T) {
	_, err := NewScoreLogStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestScoreLogStoreAppendOnlySurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scorelog.db")

	store, err := NewScoreLogStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Append(sampleEntry("alice", schema.Date(2024, time.March, 1), 2800)))
	require.NoError(t, store.Close())

	reopened, err := NewScoreLogStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	entries, err := reopened.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].ChampionID)
}
