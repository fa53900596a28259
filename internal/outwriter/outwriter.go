// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteImpacts prints impact results using the configured output format.
func (ow *OutWriter) WriteImpacts(results []schema.ImpactResult, skipped []schema.SkippedAction, cfg *contract.Config, duration time.Duration) error {
	return WriteImpactResults(results, skipped, cfg, duration)
}

// WriteRanking prints the champion ranking using the configured output format.
func (ow *OutWriter) WriteRanking(entries []schema.RankingEntry, skipped []schema.SkippedAction, cfg *contract.Config, duration time.Duration) error {
	return WriteRankingResults(entries, skipped, cfg, duration)
}

// WriteActionMetrics prints per-action time metrics and the KPI rollup.
func (ow *OutWriter) WriteActionMetrics(rows []schema.ActionMetrics, kpi schema.ActionsKPI, timeline []schema.KPIRow, cfg *contract.Config) error {
	return WriteActionMetricsResults(rows, kpi, timeline, cfg)
}

// WriteScoreLog prints score log entries using the configured output format.
func (ow *OutWriter) WriteScoreLog(entries []schema.ScoreLogEntry, cfg *contract.Config) error {
	return WriteScoreLogEntries(entries, cfg)
}

// GetMaxTableTitleWidth calculates the maximum width for free-text columns
// in table output based on terminal width and table configuration.
func GetMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 45 // Rank + IDs + Savings + Conf + Label with borders/padding

	if cfg.Detail {
		baseWidth += 40 // Scrap + Downtime + window day columns with formatting
	}
	if cfg.Explain {
		baseWidth += 30 // Penalty breakdown column with formatting
	}

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}

// TruncateText truncates a free-text cell to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 so the ellipsis always leaves at
// least one character of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}
