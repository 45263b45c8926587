package schema

// Custom string types for type safety.
type (
	// Status classifies how close a customer is to their due date.
	Status string

	// BenchmarkMode selects how the expected interval is derived.
	BenchmarkMode string

	// BenchmarkSource records where a resolved benchmark value came from.
	BenchmarkSource string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for snapshots.
	DatabaseBackend string
)

// All customer statuses.
const (
	OKStatus      Status = "ok"
	DueSoonStatus Status = "due_soon"
	OverdueStatus Status = "overdue"
)

// All benchmark modes.
const (
	QuantileMode BenchmarkMode = "quantile" // default
	ManualMode   BenchmarkMode = "manual"
)

// All benchmark sources. A quantile-mode resolution that had too little data
// to be trustworthy reports ManualSource, matching a hand-entered default.
const (
	QuantileSource BenchmarkSource = "quantile"
	ManualSource   BenchmarkSource = "manual"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	XLSXOut    OutputMode = "xlsx"
)

// All snapshot backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// DefaultIntervalDays is the fallback expected interval used when a product
// has too few observed repeat purchases to derive a quantile benchmark
// (fewer than two customers with at least one interval). The fallback is
// surfaced through Benchmark.Source so downstream consumers can warn.
const DefaultIntervalDays = 90.0

// Default user-tunable parameters.
const (
	DefaultQuantile = 0.5
	DefaultSoonDays = 14
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
	XLSXOut:    {},
}

// ValidBenchmarkModes lists all valid benchmark modes.
var ValidBenchmarkModes = map[BenchmarkMode]struct{}{
	QuantileMode: {},
	ManualMode:   {},
}

// ValidDatabaseBackends lists all valid snapshot backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AllStatuses returns the statuses in display order.
var AllStatuses = []Status{OKStatus, DueSoonStatus, OverdueStatus}
