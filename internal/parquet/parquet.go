// Package parquet exports impact, ranking and score log data to Parquet
// files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/plantops/capaimpact/schema"
)

// ImpactRow is the flat Parquet representation of one impact result.
// Sentinel metrics split into a kind column plus an optional value column
// so downstream tooling never confuses "no data" with zero.
type ImpactRow struct {
	ActionID   string `parquet:"action_id,snappy"`
	ChampionID string `parquet:"champion_id,snappy"`

	ScrapSavings    float64 `parquet:"scrap_savings,snappy"`
	DowntimeSavings float64 `parquet:"downtime_savings,snappy"`
	TotalSavings    float64 `parquet:"total_savings,snappy"`
	TotalCost       float64 `parquet:"total_cost,snappy"`

	ROIKind      string   `parquet:"roi_kind,snappy"`
	ROI          *float64 `parquet:"roi,optional,snappy"`
	PaybackKind  string   `parquet:"payback_kind,snappy"`
	PaybackDays  *float64 `parquet:"payback_days,optional,snappy"`
	Confidence   int32    `parquet:"confidence,snappy"`
	BeforeDays   int32    `parquet:"before_days,snappy"`
	AfterDays    int32    `parquet:"after_days,snappy"`
	Interference bool     `parquet:"interference,snappy"`

	// Flags is a pipe-joined list of data-quality flags (nullable)
	Flags *string `parquet:"flags,optional,snappy"`

	FormulaVersion string `parquet:"formula_version,snappy"`
}

// RankingRow is the flat Parquet representation of one champion ranking entry.
type RankingRow struct {
	Rank            int32   `parquet:"rank,snappy"`
	ChampionID      string  `parquet:"champion_id,snappy"`
	WeightedSavings float64 `parquet:"weighted_savings,snappy"`
	TotalSavings    float64 `parquet:"total_savings,snappy"`
	OpenCount       int32   `parquet:"open_count,snappy"`
	ClosedCount     int32   `parquet:"closed_count,snappy"`
	OverdueCount    int32   `parquet:"overdue_count,snappy"`

	// AvgTimeToCloseDays is nil when the champion has no closed actions
	AvgTimeToCloseDays *float64 `parquet:"avg_time_to_close_days,optional,snappy"`

	// ActionIDs is a pipe-joined list for drill-down
	ActionIDs string `parquet:"action_ids,snappy"`
}

// ScoreLogRow is the flat Parquet representation of one score log entry.
// Inputs stay JSON-encoded; the parquet export is for analytics over the
// top-level audit trail, not the per-action drill-down.
type ScoreLogRow struct {
	RunAt          time.Time `parquet:"run_at,snappy"`
	ChampionID     string    `parquet:"champion_id,snappy"`
	FormulaVersion string    `parquet:"formula_version,snappy"`
	Score          float64   `parquet:"score,snappy"`
	InputCount     int32     `parquet:"input_count,snappy"`
	SkippedCount   int32     `parquet:"skipped_count,snappy"`
	InputsJSON     string    `parquet:"inputs_json,snappy"`
}

// FromImpacts converts impact results to their flat Parquet rows.
func FromImpacts(results []schema.ImpactResult) []ImpactRow {
	rows := make([]ImpactRow, 0, len(results))
	for _, r := range results {
		row := ImpactRow{
			ActionID:        r.ActionID,
			ChampionID:      r.ChampionID,
			ScrapSavings:    r.ScrapSavings,
			DowntimeSavings: r.DowntimeSavings,
			TotalSavings:    r.TotalSavings,
			TotalCost:       r.TotalCost,
			ROIKind:         string(r.ROI.Kind),
			PaybackKind:     string(r.PaybackDays.Kind),
			Confidence:      int32(r.Confidence),
			BeforeDays:      int32(r.BeforeDays),
			AfterDays:       int32(r.AfterDays),
			Interference:    r.Interference,
			FormulaVersion:  r.FormulaVersion,
		}
		if r.ROI.Defined() {
			v := r.ROI.Value
			row.ROI = &v
		}
		if r.PaybackDays.Defined() {
			v := r.PaybackDays.Value
			row.PaybackDays = &v
		}
		if len(r.Flags) > 0 {
			joined := joinFlags(r.Flags)
			row.Flags = &joined
		}
		rows = append(rows, row)
	}
	return rows
}

// FromRanking converts ranking entries to their flat Parquet rows.
func FromRanking(entries []schema.RankingEntry) []RankingRow {
	rows := make([]RankingRow, 0, len(entries))
	for i, e := range entries {
		row := RankingRow{
			Rank:            int32(i + 1),
			ChampionID:      e.ChampionID,
			WeightedSavings: e.WeightedSavings,
			TotalSavings:    e.TotalSavings,
			OpenCount:       int32(e.OpenCount),
			ClosedCount:     int32(e.ClosedCount),
			OverdueCount:    int32(e.OverdueCount),
			ActionIDs:       strings.Join(e.ActionIDs, "|"),
		}
		if e.AvgTimeToClose.Defined() {
			v := e.AvgTimeToClose.Value
			row.AvgTimeToCloseDays = &v
		}
		rows = append(rows, row)
	}
	return rows
}

// FromScoreLog converts score log entries to their flat Parquet rows.
// The inputs JSON is produced by the caller so the encoding matches the
// database representation byte for byte.
func FromScoreLog(entries []schema.ScoreLogEntry, inputsJSON []string) []ScoreLogRow {
	rows := make([]ScoreLogRow, 0, len(entries))
	for i, e := range entries {
		row := ScoreLogRow{
			RunAt:          e.RunAt,
			ChampionID:     e.ChampionID,
			FormulaVersion: e.FormulaVersion,
			Score:          e.Score,
			InputCount:     int32(len(e.Inputs)),
			SkippedCount:   int32(len(e.Skipped)),
		}
		if i < len(inputsJSON) {
			row.InputsJSON = inputsJSON[i]
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteImpactsParquet writes impact rows to a Parquet file.
func WriteImpactsParquet(data []ImpactRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRankingParquet writes ranking rows to a Parquet file.
func WriteRankingParquet(data []RankingRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteScoreLogParquet writes score log rows to a Parquet file.
func WriteScoreLogParquet(data []ScoreLogRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes a slice of flat rows to a Parquet file using struct
// schema inference from the row type's tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

func joinFlags(flags []schema.Flag) string {
	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		parts = append(parts, string(f))
	}
	return strings.Join(parts, "|")
}
