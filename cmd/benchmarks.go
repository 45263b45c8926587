package cmd

import (
	"github.com/rebuylabs/rebuy/core"
	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/spf13/cobra"
)

// benchmarksCmd resolves the per-product interval benchmarks.
var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks <data-path>",
	Short: "Show the resolved repurchase benchmark per product.",
	Long: `Resolve and print the repurchase interval benchmark for every product
without computing customer statuses.

In quantile mode the benchmark is taken from the observed repeat-purchase
intervals of each product's customers. Products with fewer than two repeat
customers fall back to a fixed default and are flagged with a manual source.

Examples:
  # Median repurchase cycle per product
  rebuy benchmarks transactions.csv

  # A stricter 25th percentile benchmark
  rebuy benchmarks transactions.csv --quantile 0.25`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBenchmarks(cfg); err != nil {
			contract.LogFatal("Cannot resolve benchmarks", err)
		}
	},
}
