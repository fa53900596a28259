package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// formatMetric renders a metric value or its sentinel. Sentinels are never
// rendered as zero.
func formatMetric(m schema.Metric, fmtFloat func(float64) string) string {
	switch m.Kind {
	case schema.MetricValue:
		return fmtFloat(m.Value)
	case schema.MetricInfinite:
		return "inf"
	case schema.MetricNoData:
		return "n/a"
	default:
		return "undef"
	}
}

// formatFlags joins data-quality flags for a single cell, "-" when clean.
func formatFlags(flags []schema.Flag) string {
	if len(flags) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		parts = append(parts, string(f))
	}
	return strings.Join(parts, "|")
}

// formatPenalties renders the confidence penalty breakdown in a stable order.
func formatPenalties(penalties map[schema.PenaltyKey]float64, fmtFloat func(float64) string) string {
	if len(penalties) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(penalties))
	for k := range penalties {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%s", k, fmtFloat(penalties[schema.PenaltyKey(k)])))
	}
	return strings.Join(parts, ", ")
}

// formatOptionalInt renders a nullable count, "n/a" when absent.
func formatOptionalInt(v *int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}

// formatOptionalBool renders a nullable yes/no, "n/a" when absent.
func formatOptionalBool(v *bool) string {
	if v == nil {
		return "n/a"
	}
	if *v {
		return "yes"
	}
	return "no"
}
