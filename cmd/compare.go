package cmd

import (
	"github.com/rebuylabs/rebuy/core"
	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd aggregates retention metrics per product.
var compareCmd = &cobra.Command{
	Use:   "compare <data-path>",
	Short: "Compare retention metrics across products.",
	Long: `Aggregate the per-customer status records into one row per product.

Each row carries:
- customer count: distinct customers who bought the product
- repeat rate: share of customers with two or more purchases
- urgency rate: share of customers currently due soon or overdue
- median retention days: median observed repeat-purchase interval

Rates with an empty denominator stay undefined rather than showing a
misleading zero.

When a snapshot backend is configured, each comparison run is recorded so
the metrics can be tracked over time (see 'rebuy snapshot').

Examples:
  # Side-by-side product comparison
  rebuy compare transactions.csv

  # Record the run into a local SQLite snapshot store
  rebuy compare transactions.csv --snapshot-backend sqlite

  # Export the comparison for a BI tool
  rebuy compare transactions.csv --output parquet --output-file compare.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(cfg, snapshotManager); err != nil {
			contract.LogFatal("Cannot run comparison", err)
		}
	},
}
