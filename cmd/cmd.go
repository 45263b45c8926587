// Package cmd defines the command-line interface for rebuy.
package cmd

import (
	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(benchmarksCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the snapshot subcommands to the parent snapshot command
	snapshotCmd.AddCommand(snapshotStatusCmd)
	snapshotCmd.AddCommand(snapshotClearCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("product", "p", "", "Product ID for single-product commands")
	rootCmd.PersistentFlags().String("asof", contract.AsOfDataset, "Reference date: dataset, today, or a date like 2024-06-30")
	rootCmd.PersistentFlags().String("bench-mode", string(schema.QuantileMode), "Benchmark mode: quantile or manual")
	rootCmd.PersistentFlags().Float64("quantile", schema.DefaultQuantile, "Quantile for the interval benchmark, in (0,1)")
	rootCmd.PersistentFlags().Float64("manual-days", schema.DefaultIntervalDays, "Fixed benchmark interval in days (manual mode)")
	rootCmd.PersistentFlags().Int("due-soon", schema.DefaultSoonDays, "Due-soon window in days")
	rootCmd.PersistentFlags().StringP("filter", "f", "", "Keep only some statuses: overdue, due_soon, actionable, ok")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display (0 = all)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or xlsx")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("snapshot-backend", string(schema.NoneBackend), "Snapshot backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("snapshot-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of genCmd to Viper
	genCmd.Flags().Int("customers", 200, "Number of distinct customers to generate")
	genCmd.Flags().Int("products", 5, "Number of distinct products to generate")
	genCmd.Flags().Int64("seed", 42, "RNG seed for reproducible datasets")
	if err := viper.BindPFlags(genCmd.Flags()); err != nil {
		contract.LogFatal("Error binding gen flags", err)
	}

	// Bind all flags of snapshotMigrateCmd to Viper
	snapshotMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(snapshotMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshot migrate flags", err)
	}
}
