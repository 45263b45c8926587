// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/rebuylabs/rebuy/schema"
)

// TransactionSource supplies the validated, normalized transaction table.
// It is the boundary between the pure engine and whatever loads the data,
// which keeps the engine testable with hand-built fixtures.
type TransactionSource interface {
	// Load reads the full transaction table. It fails with
	// schema.ErrMissingColumn or schema.ErrInvalidDate on contract violations.
	Load() ([]schema.Transaction, error)
}

// SnapshotManager exposes the configured snapshot store.
// This allows the persistence layer to be mocked for testing.
type SnapshotManager interface {
	GetStore() SnapshotStore
}

// SnapshotStore persists comparison runs outside the pure core.
type SnapshotStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (string, error)

	// EndRun updates the run with completion data.
	EndRun(runID string, endTime time.Time, totalProducts int) error

	// RecordComparisonRow stores one aggregated product row for a run.
	RecordComparisonRow(runID string, row schema.ComparisonRow) error

	// ListRuns returns all recorded runs, newest first.
	ListRuns() ([]schema.SnapshotRun, error)

	// ListRows returns the stored comparison rows across all runs.
	ListRows() ([]schema.SnapshotRow, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.SnapshotStatus, error)

	// Clear removes all stored runs and rows.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
