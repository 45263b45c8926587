package cmd

import (
	"errors"

	"github.com/rebuylabs/rebuy/core"
	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/spf13/cobra"
)

var errProductRequired = errors.New("--product is required")

// statusCmd computes the action list for one product.
var statusCmd = &cobra.Command{
	Use:   "status <data-path>",
	Short: "Show which customers of a product are ok, due soon, or overdue.",
	Long: `Compute a repurchase status record for every customer of one product.

For each customer the last purchase date is combined with the product's
repurchase benchmark to produce a due date, a days-until-due count, and a
status label (ok, due_soon, overdue). The output is an action list sorted
by urgency: the customers at the top are the ones to contact first.

The benchmark comes from the observed repeat-purchase intervals of the
product's own customers (quantile mode, default median), or from a fixed
number of days (manual mode).

Examples:
  # Who is due for a repeat order of SKU-123?
  rebuy status transactions.csv --product SKU-123

  # Only the overdue customers, as of a specific date
  rebuy status transactions.csv --product SKU-123 --filter overdue --asof 2024-06-30

  # Use a fixed 60-day cycle instead of the observed intervals
  rebuy status transactions.csv --product SKU-123 --bench-mode manual --manual-days 60

  # Export the action list to CSV for the CRM
  rebuy status transactions.parquet --product SKU-123 --output csv --output-file actions.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.ProductID == "" {
			contract.LogFatal("Cannot run status", errProductRequired)
		}
		if err := core.ExecuteStatus(cfg); err != nil {
			contract.LogFatal("Cannot run status", err)
		}
	},
}
