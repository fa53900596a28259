package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/plantops/capaimpact/schema"
)

// Confidence label constants.
const (
	StrongValue   = "Strong"   // Strong evidence
	ModerateValue = "Moderate" // Moderate evidence
	WeakValue     = "Weak"     // Weak evidence
	PoorValue     = "Poor"     // Poor evidence
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgGreen, color.Bold) // strongColor marks results safe to act on.
	ModerateColor = color.New(color.FgCyan)              // moderateColor marks usable results.
	WeakColor     = color.New(color.FgYellow)            // weakColor marks results needing review, not bold.
	PoorColor     = color.New(color.FgRed, color.Bold)   // poorColor marks results to distrust.
)

// GetPlainLabel returns a plain text label indicating the evidence strength
// based on the result's confidence score. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(confidence int) string {
	switch {
	case confidence >= 80:
		return StrongValue
	case confidence >= 60:
		return ModerateValue
	case confidence >= 40:
		return WeakValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, then applies the color.
func GetColorLabel(confidence int) string {
	text := GetPlainLabel(confidence)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case WeakValue:
		return WeakColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// LogRunHeader prints a concise, 2-line header describing the snapshot a
// command is about to score. Suppressed for machine-readable output modes so
// stdout stays parseable.
func LogRunHeader(cfg *Config, activity string) {
	if cfg.Output != schema.TextOut || cfg.OutputFile != "" {
		return
	}

	actionsName := filepath.Base(cfg.ActionsFile)
	if cfg.UseEmojis {
		fmt.Printf("🔎 %s: %s\n", activity, actionsName)
		fmt.Printf("📅 As of: %s\n", cfg.AsOf.Format(schema.DateFormat))
	} else {
		fmt.Printf("%s: %s\n", activity, actionsName)
		fmt.Printf("As of: %s\n", cfg.AsOf.Format(schema.DateFormat))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetScoreLogDBFilePath returns the path to the SQLite DB file for the
// score log store.
func GetScoreLogDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".capaimpact_scorelog.db"
	}
	return filepath.Join(homeDir, ".capaimpact_scorelog.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
