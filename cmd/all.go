package cmd

import (
	"github.com/rebuylabs/rebuy/core"
	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/spf13/cobra"
)

// allCmd computes status records across every product.
var allCmd = &cobra.Command{
	Use:   "all <data-path>",
	Short: "Show status records for every customer-product pair.",
	Long: `Compute repurchase status records across all products at once.

Each product gets its own benchmark resolved from its own customers, so a
fast-moving consumable and a yearly subscription can coexist in one dataset.
The combined list is ordered by product, then customer.

Examples:
  # Full status table across the whole dataset
  rebuy all transactions.csv

  # Only actionable records, capped for a quick scan
  rebuy all transactions.csv --filter actionable --limit 50

  # JSON for downstream tooling
  rebuy all transactions.csv --output json --output-file statuses.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAll(cfg); err != nil {
			contract.LogFatal("Cannot run all-product status", err)
		}
	},
}
