package cmd

import (
	"fmt"

	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/internal/snapshot"
	"github.com/rebuylabs/rebuy/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need store access without full shared setup.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backendStr := viper.GetString("snapshot-backend")
	connStr := viper.GetString("snapshot-db-connect")

	// Handle empty backend as SQLite: managing snapshots implies a store
	var backend schema.DatabaseBackend
	if backendStr == "" || backendStr == string(schema.NoneBackend) {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := snapshot.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create tables,
// allowing migrations to run on a fresh database.
func snapshotMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("snapshot-backend")
	connStr := viper.GetString("snapshot-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" || backendStr == string(schema.NoneBackend) {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetSnapshotDBFilePath()
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr

	return nil
}

// snapshotMigrateSetupWrapper wraps snapshotMigrateSetup to provide PreRunE for migrate command.
func snapshotMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotMigrateSetup()
}

// snapshotCmd focused on snapshot data management.
//
// Note: Snapshot subcommands use minimal initialization (snapshotSetup) instead
// of the full sharedSetup used by analysis commands. This avoids dataset loading
// and engine parameter validation for simple store operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage recorded comparison runs",
	Long: `Manage the snapshot store that records comparison runs over time.

When a snapshot backend is configured, every 'rebuy compare' run stores:
- Run metadata (timestamp, engine parameters)
- One row per product with its retention metrics

This enables longitudinal tracking of repeat rates and retention cycles.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show snapshot store statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check store status
  rebuy snapshot status

  # Export for analysis in pandas/DuckDB
  rebuy snapshot export --output-file snapshot-data`,
}

// snapshotStatusCmd shows snapshot store status.
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot store statistics and connection details",
	Long: `Show information about the snapshot store.

Displays:
- Backend type and location
- Total number of recorded runs
- Total number of stored comparison rows

Examples:
  # Check snapshot store status
  rebuy snapshot status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := snapshot.Manager.GetStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		snapshot.PrintStatus(status)
	},
}

// snapshotClearCmd clears the snapshot data.
var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded comparison runs",
	Long: `Delete all stored runs and comparison rows.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  rebuy snapshot export --output-file backup
  rebuy snapshot clear`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapshot.ClearStore(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshot data", err)
		}
		fmt.Println("Snapshot data cleared successfully.")
	},
}

// snapshotExportCmd exports snapshot data to Parquet files.
var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export all stored snapshot data to Parquet format.

Exports two datasets:
- Runs - metadata about each recorded comparison run
- Rows - the per-product retention metrics of every run

Requires: --output-file parameter (used as a filename prefix)

Examples:
  # Export all data
  rebuy snapshot export --output-file rebuy-data

  # Query the export with DuckDB
  duckdb -c "SELECT * FROM read_parquet('rebuy-data.rows.parquet') LIMIT 10"`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapshot.ExecuteExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export snapshot data", err)
		}
	},
}

// snapshotMigrateCmd runs database migrations for the snapshot store.
var snapshotMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the snapshot store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  rebuy snapshot migrate

  # Rollback to initial state
  rebuy snapshot migrate --target-version 0`,
	PreRunE: snapshotMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := snapshot.Migrate(cfg.SnapshotBackend, cfg.SnapshotDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
