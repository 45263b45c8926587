package snapshot

import (
	"errors"
	"fmt"

	"github.com/rebuylabs/rebuy/internal/parquet"
)

// ExecuteExport exports stored snapshot data to Parquet files.
func ExecuteExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get snapshot status: %w", err)
	}

	if status.RunCount == 0 {
		return errors.New("no snapshot data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.RunCount)
	fmt.Printf("Total comparison rows: %d\n", status.RowCount)

	runs, err := store.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot runs: %w", err)
	}

	rows, err := store.ListRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve comparison rows: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteSnapshotRunsParquet(runs, runsFile); err != nil {
		return fmt.Errorf("failed to write snapshot runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	rowsFile := outputFile + ".rows.parquet"
	if err := parquet.WriteSnapshotRowsParquet(rows, rowsFile); err != nil {
		return fmt.Errorf("failed to write comparison rows: %w", err)
	}
	fmt.Printf("Exported %d comparison rows to: %s\n", len(rows), rowsFile)

	return nil
}
