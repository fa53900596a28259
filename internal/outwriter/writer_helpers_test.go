package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/plantops/capaimpact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(1)
	assert.Equal(t, "12.3", fmtFloat(12.34))
	assert.Equal(t, "%d", intFmt)

	fmtFloat2, _ := createFormatters(2)
	assert.Equal(t, "12.34", fmtFloat2(12.34))

	fmtFloat0, _ := createFormatters(0)
	assert.Equal(t, "12", fmtFloat0(12.34))
}

func TestFormatMetric(t *testing.T) {
	fmtFloat, _ := createFormatters(1)

	tests := []struct {
		name     string
		metric   schema.Metric
		expected string
	}{
		{name: "value", metric: schema.MetricOf(2.78), expected: "2.8"},
		{name: "infinite", metric: schema.MetricInf(), expected: "inf"},
		{name: "no data", metric: schema.MetricNone(), expected: "n/a"},
		{name: "undefined", metric: schema.MetricUndef(), expected: "undef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMetric(tt.metric, fmtFloat))
		})
	}
}

func TestFormatFlags(t *testing.T) {
	assert.Equal(t, "-", formatFlags(nil))
	assert.Equal(t, "missing-due-date|overlap-detected",
		formatFlags([]schema.Flag{schema.FlagMissingDueDate, schema.FlagOverlapDetected}))
}

func TestFormatPenaltiesStableOrder(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	penalties := map[schema.PenaltyKey]float64{
		schema.PenaltyInterference:    15,
		schema.PenaltyBeforeShortfall: 5,
	}

	got := formatPenalties(penalties, fmtFloat)
	assert.Equal(t, "before_shortfall:5.0, interference:15.0", got)
	assert.Equal(t, "-", formatPenalties(nil, fmtFloat))
}

func TestFormatOptionalHelpers(t *testing.T) {
	days := 9
	onTime := false
	assert.Equal(t, "9", formatOptionalInt(&days))
	assert.Equal(t, "n/a", formatOptionalInt(nil))
	assert.Equal(t, "no", formatOptionalBool(&onTime))
	assert.Equal(t, "n/a", formatOptionalBool(nil))
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "2"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", buf.String())
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "a ver...", TruncateText("a very long flag list", 8))
	// Tiny widths leave the text untouched rather than slicing out of range.
	assert.Equal(t, "abcdef", TruncateText("abcdef", 3))
}
