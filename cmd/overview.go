package cmd

import (
	"github.com/rebuylabs/rebuy/core"
	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/spf13/cobra"
)

// overviewCmd shows the most urgent actionable record per customer.
var overviewCmd = &cobra.Command{
	Use:   "overview <data-path>",
	Short: "Show the single most urgent product per customer.",
	Long: `Reduce the all-product status table to one row per customer.

For every customer with at least one actionable record (due soon or
overdue), keep the product where they are most behind. This is the daily
call-list view: one line per customer, most urgent first.

Examples:
  # Who should we contact today, and about what?
  rebuy overview transactions.csv

  # Just the overdue ones
  rebuy overview transactions.csv --filter overdue`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOverview(cfg); err != nil {
			contract.LogFatal("Cannot run overview", err)
		}
	},
}
