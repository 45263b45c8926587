package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

// newSQLiteStore creates a store backed by a throwaway database file.
func newSQLiteStore(t *testing.T) contract.SnapshotStore {
	t.Helper()
	store, err := NewStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRunLifecycle(t *testing.T) {
	store := newSQLiteStore(t)

	start := time.Date(2024, 2, 4, 10, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{"bench_mode": "quantile", "quantile": 0.5})
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	require.NoError(t, store.RecordComparisonRow(runID, schema.ComparisonRow{
		ProductID:           "p1",
		CustomerCount:       4,
		RepeatRate:          floatPtr(0.5),
		UrgencyRate:         floatPtr(0.25),
		MedianRetentionDays: floatPtr(12.5),
	}))
	require.NoError(t, store.RecordComparisonRow(runID, schema.ComparisonRow{
		ProductID:     "p2",
		CustomerCount: 0,
	}))
	require.NoError(t, store.EndRun(runID, start.Add(time.Second), 2))

	runs, err := store.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.True(t, runs[0].StartTime.Equal(start))
	require.NotNil(t, runs[0].EndTime)
	assert.True(t, runs[0].EndTime.Equal(start.Add(time.Second)))
	assert.Equal(t, int32(2), runs[0].TotalProducts)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, "quantile")
}

func TestStoreListRowsRoundtrip(t *testing.T) {
	store := newSQLiteStore(t)

	runID, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordComparisonRow(runID, schema.ComparisonRow{
		ProductID:           "widget",
		CustomerCount:       3,
		RepeatRate:          floatPtr(1),
		UrgencyRate:         floatPtr(0),
		MedianRetentionDays: floatPtr(30),
	}))
	require.NoError(t, store.RecordComparisonRow(runID, schema.ComparisonRow{
		ProductID:     "anvil",
		CustomerCount: 1,
	}))

	rows, err := store.ListRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by run then product.
	assert.Equal(t, "anvil", rows[0].ProductID)
	assert.Nil(t, rows[0].RepeatRate)
	assert.Nil(t, rows[0].MedianRetentionDays)

	assert.Equal(t, "widget", rows[1].ProductID)
	require.NotNil(t, rows[1].RepeatRate)
	assert.InDelta(t, 1.0, *rows[1].RepeatRate, 0.0001)
	require.NotNil(t, rows[1].MedianRetentionDays)
	assert.InDelta(t, 30.0, *rows[1].MedianRetentionDays, 0.0001)
	assert.False(t, rows[1].RecordedAt.IsZero())
}

func TestStoreListRunsNewestFirst(t *testing.T) {
	store := newSQLiteStore(t)

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	olderID, err := store.BeginRun(older, nil)
	require.NoError(t, err)
	newerID, err := store.BeginRun(newer, nil)
	require.NoError(t, err)

	runs, err := store.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newerID, runs[0].RunID)
	assert.Equal(t, olderID, runs[1].RunID)
}

func TestStoreStatusAndClear(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Zero(t, status.RunCount)
	assert.Zero(t, status.RowCount)

	runID, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordComparisonRow(runID, schema.ComparisonRow{ProductID: "p1", CustomerCount: 1}))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.EqualValues(t, 1, status.RunCount)
	assert.EqualValues(t, 1, status.RowCount)

	require.NoError(t, store.Clear())

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.RunCount)
	assert.Zero(t, status.RowCount)
}

func TestStoreNoneBackendIsNoOp(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.Empty(t, runID)

	assert.NoError(t, store.RecordComparisonRow("x", schema.ComparisonRow{}))
	assert.NoError(t, store.EndRun("x", time.Now(), 0))

	runs, err := store.ListRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestNewStoreUnsupportedBackend(t *testing.T) {
	_, err := NewStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
