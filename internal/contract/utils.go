package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rebuylabs/rebuy/schema"
)

// Color variables for console output.
var (
	OverdueColor = color.New(color.FgRed, color.Bold) // past due, strongest signal
	DueSoonColor = color.New(color.FgYellow)          // inside the due-soon window
	OKColor      = color.New(color.FgGreen)           // nothing to do yet
)

// GetPlainStatusLabel returns the plain text label for a status. This is the
// form used for CSV, JSON, parquet and xlsx output.
func GetPlainStatusLabel(s schema.Status) string {
	return string(s)
}

// GetColorStatusLabel returns a colored label for console tables.
func GetColorStatusLabel(s schema.Status) string {
	switch s {
	case schema.OverdueStatus:
		return OverdueColor.Sprint(s)
	case schema.DueSoonStatus:
		return DueSoonColor.Sprint(s)
	default:
		return OKColor.Sprint(s)
	}
}

// StatusLabel picks the colored or plain form based on config.
func StatusLabel(s schema.Status, useColors bool) string {
	if useColors {
		return GetColorStatusLabel(s)
	}
	return GetPlainStatusLabel(s)
}

// BenchmarkHeaderLabel describes the active benchmark selection for headers,
// e.g. "benchmark = p50 (per product)" or "manual = 90 days".
func BenchmarkHeaderLabel(cfg *Config) string {
	if cfg.BenchmarkMode == schema.ManualMode {
		return fmt.Sprintf("manual = %.0f days", cfg.ManualDays)
	}
	return fmt.Sprintf("benchmark = p%.0f (per product)", cfg.Quantile*100)
}

// FormatRatePct renders a rate pointer as a percentage, or "-" when the rate
// is undefined.
func FormatRatePct(rate *float64, precision int) string {
	if rate == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f%%", precision, *rate*100)
}

// FormatOptDays renders an optional day count, or "-" when absent.
func FormatOptDays(days *float64, precision int) string {
	if days == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", precision, *days)
}

// TruncateID shortens long opaque identifiers for table display.
func TruncateID(id string, maxWidth int) string {
	if maxWidth <= 3 || len(id) <= maxWidth {
		return id
	}
	return id[:maxWidth-3] + "..."
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path writes to stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// RedactDSN hides credentials in a connection string for display.
func RedactDSN(connStr string) string {
	if i := strings.Index(connStr, "@"); i >= 0 {
		return "***" + connStr[i:]
	}
	return connStr
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".rebuy_snapshots.db"
	}
	return filepath.Join(homeDir, ".rebuy_snapshots.db")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s\n", msg)
}
