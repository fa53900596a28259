package outwriter

import (
	"encoding/csv"
	"encoding/json"
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

// WriteScoreLogEntries outputs the score log audit trail, dispatching based
// on the output format configured.
func WriteScoreLogEntries(entries []schema.ScoreLogEntry, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForScoreLog(w, entries, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		inputsJSON := make([]string, len(entries))
		for i, e := range entries {
			encoded, err := json.Marshal(e.Inputs)
			if err != nil {
				return fmt.Errorf("failed to marshal score log inputs: %w", err)
			}
			inputsJSON[i] = string(encoded)
		}
		if err := parquet.WriteScoreLogParquet(parquet.FromScoreLog(entries, inputsJSON), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreLogTable(entries, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeScoreLogTable generates and writes the human-readable score log table.
func writeScoreLogTable(entries []schema.ScoreLogEntry, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run At", "Champion", "Formula", "Score", "Inputs", "Skipped"})
	table.Configure(func(tblCfg *tablewriter.Config) {
		tblCfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range entries {
		data = append(data, []string{
			e.RunAt.Format(time.RFC3339),
			e.ChampionID,
			e.FormulaVersion,
			fmtFloat(e.Score),
			strconv.Itoa(len(e.Inputs)),
			strconv.Itoa(len(e.Skipped)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Showing %d score log entries. Log backend: %s\n", len(entries), cfg.LogBackend)
	return err
}

// writeCSVResultsForScoreLog writes the score log in CSV format.
func writeCSVResultsForScoreLog(w io.Writer, entries []schema.ScoreLogEntry, fmtFloat func(float64) string) error {
	header := []string{"run_at", "champion_id", "formula_version", "score", "input_count", "skipped_count"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, e := range entries {
			rec := []string{
				e.RunAt.Format(time.RFC3339),
				e.ChampionID,
				e.FormulaVersion,
				fmtFloat(e.Score),
				strconv.Itoa(len(e.Inputs)),
				strconv.Itoa(len(e.Skipped)),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteScoreLogStatus prints status information about the score log store.
func WriteScoreLogStatus(status schema.ScoreLogStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeScoreLogStatusText(w, status)
	}, "Wrote status")
}

// writeScoreLogStatusText renders the store status as plain text.
func writeScoreLogStatusText(w io.Writer, status schema.ScoreLogStatus) error {
	if _, err := fmt.Fprintf(w, "Backend: %s\n", status.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Entries: %d\n", status.EntryCount); err != nil {
		return err
	}
	if status.LatestRun != nil {
		if _, err := fmt.Fprintf(w, "Latest run: %s\n", status.LatestRun.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}
