package schema

import "time"

// SnapshotRun is the stored metadata of one recorded comparison run.
type SnapshotRun struct {
	RunID         string     `json:"run_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	TotalProducts int32      `json:"total_products"`
	ConfigParams  *string    `json:"config_params"` // JSON-encoded engine parameters
}

// SnapshotRow is one stored comparison row, tied to its run.
type SnapshotRow struct {
	RunID               string    `json:"run_id"`
	ProductID           string    `json:"product_id"`
	CustomerCount       int32     `json:"customer_count"`
	RepeatRate          *float64  `json:"repeat_rate"`
	UrgencyRate         *float64  `json:"urgency_rate"`
	MedianRetentionDays *float64  `json:"median_retention_days"`
	RecordedAt          time.Time `json:"recorded_at"`
}

// SnapshotStatus summarizes the snapshot store for the status subcommand.
type SnapshotStatus struct {
	Backend  DatabaseBackend `json:"backend"`
	Location string          `json:"location"` // File path or redacted DSN
	RunCount int64           `json:"run_count"`
	RowCount int64           `json:"row_count"`
}
