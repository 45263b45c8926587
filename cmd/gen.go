package cmd

import (
	"fmt"

	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/internal/loader"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// genCmd writes a synthetic transactions dataset.
var genCmd = &cobra.Command{
	Use:   "gen <output-path>",
	Short: "Generate a synthetic transactions dataset for demos and testing.",
	Long: `Write a synthetic transactions file (csv or parquet, chosen by the
output extension).

Each product gets its own typical repeat cycle so quantile benchmarks
differ across products, and a share of customers are one-time buyers so
repeat rates stay realistic. The same seed always produces the same file.

Examples:
  # A small CSV demo dataset
  rebuy gen demo.csv --customers 100 --products 3

  # A larger parquet dataset with a fixed seed
  rebuy gen demo.parquet --customers 5000 --products 20 --seed 7`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, args []string) {
		params := loader.GenParams{
			Customers: viper.GetInt("customers"),
			Products:  viper.GetInt("products"),
			Seed:      viper.GetInt64("seed"),
		}
		count, err := loader.GenerateDataset(args[0], params)
		if err != nil {
			contract.LogFatal("Cannot generate dataset", err)
		}
		fmt.Printf("Wrote %d transactions to %s\n", count, args[0])
	},
}
