package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/internal/parquet"
	"github.com/plantops/capaimpact/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRankingResults outputs the champion ranking, dispatching based on the output format configured.
func WriteRankingResults(entries []schema.RankingEntry, skipped []schema.SkippedAction, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForRanking(w, entries, skipped)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForRanking(w, entries, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteRankingParquet(parquet.FromRanking(entries), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingTable(entries, skipped, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeRankingTable generates and writes the human-readable ranking table.
func writeRankingTable(entries []schema.RankingEntry, skipped []schema.SkippedAction, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Champion", "Weighted", "Savings", "Open", "Closed", "Overdue", "Avg TTC"}
	if cfg.Detail {
		headers = append(headers, "Actions")
	}
	table.Header(headers)

	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, e := range entries {
		row := []string{
			strconv.Itoa(i + 1),
			e.ChampionID,
			fmtFloat(e.WeightedSavings),
			fmtFloat(e.TotalSavings),
			strconv.Itoa(e.OpenCount),
			strconv.Itoa(e.ClosedCount),
			strconv.Itoa(e.OverdueCount),
			formatMetric(e.AvgTimeToClose, fmtFloat),
		}
		if cfg.Detail {
			row = append(row, TruncateText(strings.Join(e.ActionIDs, "|"), GetMaxTableTitleWidth(cfg)))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d champions (skipped actions: %d)\n", len(entries), len(skipped)); err != nil {
		return err
	}
	for _, s := range skipped {
		if _, err := fmt.Fprintf(writer, "  skipped %s: %s\n", s.ActionID, s.Reason); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Ranking completed in %v. Formula: %s. Log backend: %s\n", duration, cfg.Engine.FormulaVersion, cfg.LogBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForRanking writes the ranking in CSV format.
func writeCSVResultsForRanking(w io.Writer, entries []schema.RankingEntry, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"champion_id",
		"weighted_savings",
		"total_savings",
		"open_count",
		"closed_count",
		"overdue_count",
		"avg_time_to_close_days",
		"action_ids",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, e := range entries {
			rec := []string{
				strconv.Itoa(i + 1),
				e.ChampionID,
				fmtFloat(e.WeightedSavings),
				fmtFloat(e.TotalSavings),
				strconv.Itoa(e.OpenCount),
				strconv.Itoa(e.ClosedCount),
				strconv.Itoa(e.OverdueCount),
				formatMetric(e.AvgTimeToClose, fmtFloat),
				strings.Join(e.ActionIDs, "|"),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForRanking writes the ranking in JSON format.
func writeJSONResultsForRanking(w io.Writer, entries []schema.RankingEntry, skipped []schema.SkippedAction) error {
	type JSONRankingEntry struct {
		Rank int `json:"rank"`
		schema.RankingEntry
	}

	ranked := make([]JSONRankingEntry, len(entries))
	for i, e := range entries {
		ranked[i] = JSONRankingEntry{Rank: i + 1, RankingEntry: e}
	}

	output := struct {
		Ranking []JSONRankingEntry     `json:"ranking"`
		Skipped []schema.SkippedAction `json:"skipped,omitempty"`
	}{Ranking: ranked, Skipped: skipped}

	return writeJSON(w, output)
}
