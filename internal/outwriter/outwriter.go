// Package outwriter has output and writer logic for all result shapes.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rebuylabs/rebuy/internal/contract"
	"golang.org/x/term"
)

// StatusHeader carries the context lines printed under a status table.
type StatusHeader struct {
	Title     string
	AsOf      time.Time
	Benchmark string
}

// getMaxTableIDWidth calculates the maximum width for identifier columns in
// table output based on terminal width.
func getMaxTableIDWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric and date columns plus borders/padding.
	available := (termWidth - 60) / 2
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}

// writeWithFile handles the common pattern of opening a file, writing to it,
// and cleaning up.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote %s to %s\n", successMsg, outputFile)
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

// createFormatters returns float and int format helpers honoring the
// configured precision.
func createFormatters(precision int) (func(float64) string, string) {
	fmtFloat := func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	return fmtFloat, "%d"
}

// requireFileFor guards output modes that cannot stream to stdout.
func requireFileFor(mode string, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("%s output requires --output-file", mode)
	}
	return nil
}
