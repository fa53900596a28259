package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/internal/parquet"
	"github.com/plantops/capaimpact/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteImpactResults outputs impact results, dispatching based on the output format configured.
func WriteImpactResults(results []schema.ImpactResult, skipped []schema.SkippedAction, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForImpacts(w, results, skipped)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForImpacts(w, results, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteImpactsParquet(parquet.FromImpacts(results), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImpactTable(results, skipped, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeImpactTable generates and writes the human-readable table.
func writeImpactTable(results []schema.ImpactResult, skipped []schema.SkippedAction, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Action", "Champion", "Savings", "Cost", "ROI", "Payback", "Conf", "Label"}
	if cfg.Detail {
		headers = append(headers, "Scrap", "Downtime", "Before", "After", "Flags")
	}
	if cfg.Explain {
		headers = append(headers, "Penalties")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}

	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			r.ActionID,
			r.ChampionID,
			fmtFloat(r.TotalSavings),
			fmtFloat(r.TotalCost),
			formatMetric(r.ROI, fmtFloat),
			formatMetric(r.PaybackDays, fmtFloat),
			strconv.Itoa(r.Confidence),
			label(r.Confidence),
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloat(r.ScrapSavings),
				fmtFloat(r.DowntimeSavings),
				strconv.Itoa(r.BeforeDays),
				strconv.Itoa(r.AfterDays),
				TruncateText(formatFlags(r.Flags), GetMaxTableTitleWidth(cfg)),
			)
		}
		if cfg.Explain {
			row = append(row, formatPenalties(r.Penalties, fmtFloat))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	totalSavings := 0.0
	for _, r := range results {
		totalSavings += r.TotalSavings
	}
	if _, err := fmt.Fprintf(writer, "Showing %d actions (total savings: %s, skipped: %d)\n", len(results), fmtFloat(totalSavings), len(skipped)); err != nil {
		return err
	}
	for _, s := range skipped {
		if _, err := fmt.Fprintf(writer, "  skipped %s: %s\n", s.ActionID, s.Reason); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Scoring completed in %v. Formula: %s. Log backend: %s\n", duration, cfg.Engine.FormulaVersion, cfg.LogBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForImpacts writes the impact results in CSV format.
func writeCSVResultsForImpacts(w io.Writer, results []schema.ImpactResult, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"action_id",
		"champion_id",
		"scrap_savings",
		"downtime_savings",
		"total_savings",
		"total_cost",
		"roi",
		"payback_days",
		"confidence",
		"label",
		"before_days",
		"after_days",
		"interference",
		"flags",
		"formula_version",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.ActionID,
				r.ChampionID,
				fmtFloat(r.ScrapSavings),
				fmtFloat(r.DowntimeSavings),
				fmtFloat(r.TotalSavings),
				fmtFloat(r.TotalCost),
				formatMetric(r.ROI, fmtFloat),
				formatMetric(r.PaybackDays, fmtFloat),
				strconv.Itoa(r.Confidence),
				contract.GetPlainLabel(r.Confidence),
				strconv.Itoa(r.BeforeDays),
				strconv.Itoa(r.AfterDays),
				strconv.FormatBool(r.Interference),
				formatFlags(r.Flags),
				r.FormulaVersion,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForImpacts writes the impact results in JSON format.
func writeJSONResultsForImpacts(w io.Writer, results []schema.ImpactResult, skipped []schema.SkippedAction) error {
	// Prepare the data structure for JSON with rank and label added
	type JSONImpactResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.ImpactResult
	}

	ranked := make([]JSONImpactResult, len(results))
	for i, r := range results {
		ranked[i] = JSONImpactResult{
			Rank:         i + 1,
			Label:        contract.GetPlainLabel(r.Confidence),
			ImpactResult: r,
		}
	}

	output := struct {
		Results []JSONImpactResult     `json:"results"`
		Skipped []schema.SkippedAction `json:"skipped,omitempty"`
	}{Results: ranked, Skipped: skipped}

	return writeJSON(w, output)
}
