// Package parquet provides data structures and functions for exporting rebuy
// results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rebuylabs/rebuy/schema"
)

// StatusRecordOut is the parquet shape of one status record.
type StatusRecordOut struct {
	CustomerID   string    `parquet:"customer_id,snappy"`
	ProductID    string    `parquet:"product_id,snappy"`
	LastPurchase time.Time `parquet:"last_purchase_date,snappy"`
	IntervalDays float64   `parquet:"expected_interval_days,snappy"`
	DueDate      time.Time `parquet:"due_date,snappy"`
	DaysUntilDue int32     `parquet:"days_until_due,snappy"`
	Status       string    `parquet:"status,snappy"`
}

// ComparisonRowOut is the parquet shape of one comparison row. Rates are
// optional so undefined values stay null instead of collapsing to zero.
type ComparisonRowOut struct {
	ProductID           string   `parquet:"product_id,snappy"`
	CustomerCount       int32    `parquet:"customer_count,snappy"`
	RepeatRate          *float64 `parquet:"repeat_rate,optional,snappy"`
	UrgencyRate         *float64 `parquet:"urgency_rate,optional,snappy"`
	MedianRetentionDays *float64 `parquet:"median_retention_days,optional,snappy"`
}

// SnapshotRunOut is the parquet shape of one stored comparison run.
type SnapshotRunOut struct {
	RunID         string     `parquet:"run_id,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	TotalProducts int32      `parquet:"total_products,snappy"`
	ConfigParams  *string    `parquet:"config_params,optional,snappy"`
}

// SnapshotRowOut is the parquet shape of one stored comparison row.
type SnapshotRowOut struct {
	RunID               string    `parquet:"run_id,snappy"`
	ProductID           string    `parquet:"product_id,snappy"`
	CustomerCount       int32     `parquet:"customer_count,snappy"`
	RepeatRate          *float64  `parquet:"repeat_rate,optional,snappy"`
	UrgencyRate         *float64  `parquet:"urgency_rate,optional,snappy"`
	MedianRetentionDays *float64  `parquet:"median_retention_days,optional,snappy"`
	RecordedAt          time.Time `parquet:"recorded_at,snappy"`
}

// writeParquetFile writes rows to a new parquet file, inferring the schema
// from struct tags.
func writeParquetFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteStatusRecordsParquet writes status records to a Parquet file.
func WriteStatusRecordsParquet(records []schema.StatusRecord, outputPath string) error {
	return writeParquetFile(ConvertStatusRecords(records), outputPath)
}

// WriteComparisonRowsParquet writes comparison rows to a Parquet file.
func WriteComparisonRowsParquet(rows []schema.ComparisonRow, outputPath string) error {
	return writeParquetFile(ConvertComparisonRows(rows), outputPath)
}

// WriteSnapshotRunsParquet writes stored runs to a Parquet file.
func WriteSnapshotRunsParquet(runs []schema.SnapshotRun, outputPath string) error {
	return writeParquetFile(ConvertSnapshotRuns(runs), outputPath)
}

// WriteSnapshotRowsParquet writes stored comparison rows to a Parquet file.
func WriteSnapshotRowsParquet(rows []schema.SnapshotRow, outputPath string) error {
	return writeParquetFile(ConvertSnapshotRows(rows), outputPath)
}

// ConvertStatusRecords converts engine records to the parquet shape.
func ConvertStatusRecords(records []schema.StatusRecord) []StatusRecordOut {
	out := make([]StatusRecordOut, len(records))
	for i, r := range records {
		out[i] = StatusRecordOut{
			CustomerID:   r.CustomerID,
			ProductID:    r.ProductID,
			LastPurchase: r.LastPurchase,
			IntervalDays: r.IntervalDays,
			DueDate:      r.DueDate,
			DaysUntilDue: int32(r.DaysUntilDue),
			Status:       string(r.Status),
		}
	}
	return out
}

// ConvertComparisonRows converts aggregator rows to the parquet shape.
func ConvertComparisonRows(rows []schema.ComparisonRow) []ComparisonRowOut {
	out := make([]ComparisonRowOut, len(rows))
	for i, r := range rows {
		out[i] = ComparisonRowOut{
			ProductID:           r.ProductID,
			CustomerCount:       int32(r.CustomerCount),
			RepeatRate:          r.RepeatRate,
			UrgencyRate:         r.UrgencyRate,
			MedianRetentionDays: r.MedianRetentionDays,
		}
	}
	return out
}

// ConvertSnapshotRuns converts stored runs to the parquet shape.
func ConvertSnapshotRuns(runs []schema.SnapshotRun) []SnapshotRunOut {
	out := make([]SnapshotRunOut, len(runs))
	for i, r := range runs {
		out[i] = SnapshotRunOut{
			RunID:         r.RunID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			TotalProducts: r.TotalProducts,
			ConfigParams:  r.ConfigParams,
		}
	}
	return out
}

// ConvertSnapshotRows converts stored comparison rows to the parquet shape.
func ConvertSnapshotRows(rows []schema.SnapshotRow) []SnapshotRowOut {
	out := make([]SnapshotRowOut, len(rows))
	for i, r := range rows {
		out[i] = SnapshotRowOut{
			RunID:               r.RunID,
			ProductID:           r.ProductID,
			CustomerCount:       r.CustomerCount,
			RepeatRate:          r.RepeatRate,
			UrgencyRate:         r.UrgencyRate,
			MedianRetentionDays: r.MedianRetentionDays,
			RecordedAt:          r.RecordedAt,
		}
	}
	return out
}

// MockFetchSnapshotRuns generates sample SnapshotRun data for demonstration.
func MockFetchSnapshotRuns() []schema.SnapshotRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 58*time.Minute)
	configParams1 := `{"bench_mode":"quantile","quantile":0.5,"due_soon":7}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-24*time.Hour + 3*time.Minute)
	configParams2 := `{"bench_mode":"manual","manual_days":60,"due_soon":14}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: end_time and config_params stay nil to demonstrate nullable fields

	return []schema.SnapshotRun{
		{
			RunID:         "0b9e9448-6ad6-4d2c-9572-6cbb0b4f7d11",
			StartTime:     startTime1,
			EndTime:       &endTime1,
			TotalProducts: 12,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         "3f0d5a25-9c5c-4bb4-9e40-1a0965a7a1f4",
			StartTime:     startTime2,
			EndTime:       &endTime2,
			TotalProducts: 8,
			ConfigParams:  &configParams2,
		},
		{
			RunID:         "c1d7a7aa-4b39-4a8d-8a5c-2f9f12f7b9c2",
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			TotalProducts: 0,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchSnapshotRows generates sample SnapshotRow data for demonstration.
func MockFetchSnapshotRows() []schema.SnapshotRow {
	now := time.Now()
	repeat1, urgency1, median1 := 0.62, 0.18, 34.0
	repeat2, urgency2, median2 := 0.41, 0.29, 58.5

	return []schema.SnapshotRow{
		{
			RunID:               "0b9e9448-6ad6-4d2c-9572-6cbb0b4f7d11",
			ProductID:           "espresso-beans-1kg",
			CustomerCount:       240,
			RepeatRate:          &repeat1,
			UrgencyRate:         &urgency1,
			MedianRetentionDays: &median1,
			RecordedAt:          now.Add(-2 * time.Hour),
		},
		{
			RunID:               "0b9e9448-6ad6-4d2c-9572-6cbb0b4f7d11",
			ProductID:           "filter-papers-100pk",
			CustomerCount:       95,
			RepeatRate:          &repeat2,
			UrgencyRate:         &urgency2,
			MedianRetentionDays: &median2,
			RecordedAt:          now.Add(-2 * time.Hour),
		},
		{
			RunID:               "3f0d5a25-9c5c-4bb4-9e40-1a0965a7a1f4",
			ProductID:           "descaler-tablets",
			CustomerCount:       0,
			RepeatRate:          nil, // No customers - nullable field
			UrgencyRate:         nil,
			MedianRetentionDays: nil,
			RecordedAt:          now.Add(-24 * time.Hour),
		},
	}
}
