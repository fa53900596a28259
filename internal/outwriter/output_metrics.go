package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteActionMetricsResults outputs per-action time metrics plus the KPI
// rollup, dispatching based on the output format configured.
func WriteActionMetricsResults(rows []schema.ActionMetrics, kpi schema.ActionsKPI, timeline []schema.KPIRow, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForMetrics(w, rows, kpi, timeline, cfg.Detail)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForMetrics(w, rows)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for metrics; use impact or rank")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsTable(rows, kpi, timeline, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeMetricsTable generates and writes the human-readable metrics table.
func writeMetricsTable(rows []schema.ActionMetrics, kpi schema.ActionsKPI, timeline []schema.KPIRow, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Action", "Days Late", "TTC", "On Time", "Flags"})
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, m := range rows {
		data = append(data, []string{
			m.ActionID,
			formatOptionalInt(m.DaysLate),
			formatOptionalInt(m.TimeToCloseDays),
			formatOptionalBool(m.OnTime),
			TruncateText(formatFlags(m.Flags), GetMaxTableTitleWidth(cfg)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Actions: %d total, %d open, %d overdue, %d missing due dates\n",
		kpi.TotalActions, kpi.OpenCount, kpi.OverdueCount, kpi.MissingDueDates); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Sum days late: %d. Avg time to close: %s. On-time close rate: %s%%\n",
		kpi.SumDaysLate, formatMetric(kpi.AvgTimeToClose, fmtFloat), formatMetric(kpi.OnTimeCloseRate, fmtFloat)); err != nil {
		return err
	}

	if cfg.Detail && len(timeline) > 0 {
		return writeTimelineTable(timeline, fmtFloat, writer)
	}
	return nil
}

// writeTimelineTable renders the KPI timeline grouped by implementation date.
func writeTimelineTable(timeline []schema.KPIRow, fmtFloat func(float64) string, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, "\nKPI timeline by implementation date:"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Date", "Actions", "Open", "Overdue", "Days Late", "Avg TTC", "On-Time %"})
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range timeline {
		data = append(data, []string{
			row.Date,
			fmt.Sprintf("%d", row.KPI.TotalActions),
			fmt.Sprintf("%d", row.KPI.OpenCount),
			fmt.Sprintf("%d", row.KPI.OverdueCount),
			fmt.Sprintf("%d", row.KPI.SumDaysLate),
			formatMetric(row.KPI.AvgTimeToClose, fmtFloat),
			formatMetric(row.KPI.OnTimeCloseRate, fmtFloat),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForMetrics writes the per-action metrics in CSV format.
func writeCSVResultsForMetrics(w io.Writer, rows []schema.ActionMetrics) error {
	header := []string{"action_id", "days_late", "time_to_close_days", "on_time", "flags"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, m := range rows {
			rec := []string{
				m.ActionID,
				formatOptionalInt(m.DaysLate),
				formatOptionalInt(m.TimeToCloseDays),
				formatOptionalBool(m.OnTime),
				formatFlags(m.Flags),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForMetrics writes metrics, rollup and optional timeline in JSON format.
func writeJSONResultsForMetrics(w io.Writer, rows []schema.ActionMetrics, kpi schema.ActionsKPI, timeline []schema.KPIRow, detail bool) error {
	output := struct {
		Actions  []schema.ActionMetrics `json:"actions"`
		KPI      schema.ActionsKPI      `json:"kpi"`
		Timeline []schema.KPIRow        `json:"timeline,omitempty"`
	}{Actions: rows, KPI: kpi}

	if detail {
		output.Timeline = timeline
	}

	return writeJSON(w, output)
}
