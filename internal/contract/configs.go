package contract

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/rebuylabs/rebuy/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 0 // 0 means no limit; status tables are action lists
	MaxResultLimit     = 100000
	DefaultPrecision   = 1
)

// AsOf choices that are not literal dates.
const (
	AsOfDataset = "dataset" // max last-purchase date in the loaded data
	AsOfToday   = "today"
)

// Config holds the validated runtime configuration.
// Every engine parameter is carried explicitly; nothing is read from
// ambient state at compute time.
type Config struct {
	DataPath   string // Path to the transactions file (csv or parquet)
	ProductID  string // Product selection for single-product commands
	AsOfChoice string // "dataset" or "today"; empty when AsOfDate is set
	AsOfDate   time.Time

	BenchmarkMode schema.BenchmarkMode
	Quantile      float64
	ManualDays    float64
	SoonDays      int

	StatusFilter []schema.Status // Action-list filter; empty keeps everything

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataPathStr string

	Product           string  `mapstructure:"product"`
	AsOf              string  `mapstructure:"asof"`
	BenchMode         string  `mapstructure:"bench-mode"`
	Quantile          float64 `mapstructure:"quantile"`
	ManualDays        float64 `mapstructure:"manual-days"`
	SoonDays          int     `mapstructure:"due-soon"`
	Filter            string  `mapstructure:"filter"`
	Limit             int     `mapstructure:"limit"`
	Precision         int     `mapstructure:"precision"`
	Output            string  `mapstructure:"output"`
	OutputFile        string  `mapstructure:"output-file"`
	Width             int     `mapstructure:"width"`
	Color             string  `mapstructure:"color"`
	SnapshotBackend   string  `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string  `mapstructure:"snapshot-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.StatusFilter != nil {
		clone.StatusFilter = make([]schema.Status, len(c.StatusFilter))
		copy(clone.StatusFilter, c.StatusFilter)
	}
	return &clone
}

// EngineParams returns the configuration parameters that affect computation,
// for snapshot run records and headers.
func (c *Config) EngineParams() map[string]any {
	params := map[string]any{
		"bench_mode": string(c.BenchmarkMode),
		"due_soon":   c.SoonDays,
	}
	if c.BenchmarkMode == schema.ManualMode {
		params["manual_days"] = c.ManualDays
	} else {
		params["quantile"] = c.Quantile
	}
	if c.AsOfChoice != "" {
		params["asof"] = c.AsOfChoice
	} else {
		params["asof"] = c.AsOfDate.Format(schema.DateFormat)
	}
	return params
}

// CloneParams is a convenience for handlers that tweak EngineParams copies.
func CloneParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	maps.Copy(out, params)
	return out
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.DataPath = input.DataPathStr
	cfg.ProductID = input.Product
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// --- Limit / Precision ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- Output mode ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format %q. must be text, csv, json, parquet, xlsx", input.Output)
	}

	// --- Benchmark parameters ---
	cfg.BenchmarkMode = schema.BenchmarkMode(strings.ToLower(input.BenchMode))
	if _, ok := schema.ValidBenchmarkModes[cfg.BenchmarkMode]; !ok {
		return fmt.Errorf("invalid benchmark mode %q. must be quantile or manual", input.BenchMode)
	}
	cfg.Quantile = input.Quantile
	cfg.ManualDays = input.ManualDays
	switch cfg.BenchmarkMode {
	case schema.QuantileMode:
		if cfg.Quantile <= 0 || cfg.Quantile >= 1 {
			return fmt.Errorf("%w: quantile must be in (0,1), got %v", schema.ErrInvalidBenchmark, cfg.Quantile)
		}
	case schema.ManualMode:
		if cfg.ManualDays <= 0 {
			return fmt.Errorf("%w: manual-days must be positive, got %v", schema.ErrInvalidBenchmark, cfg.ManualDays)
		}
	}

	if input.SoonDays < 0 {
		return fmt.Errorf("due-soon must be non-negative (received %d)", input.SoonDays)
	}
	cfg.SoonDays = input.SoonDays

	// --- ASOF date ---
	if err := processAsOf(cfg, input.AsOf); err != nil {
		return err
	}

	// --- Status filter ---
	if err := processStatusFilter(cfg, input.Filter); err != nil {
		return err
	}

	// --- Color handling ---
	cfg.UseColors = parseBoolFlag(input.Color, true)

	// --- Snapshot backend ---
	cfg.SnapshotBackend = schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.SnapshotBackend]; !ok {
		return fmt.Errorf("invalid snapshot backend %q. must be sqlite, mysql, postgresql, none", input.SnapshotBackend)
	}
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	if err := ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
		return err
	}

	return nil
}

// RevalidateAsOf re-parses the asof choice for handlers that override it
// after the initial validation pass.
func RevalidateAsOf(cfg *Config, raw string) error {
	return processAsOf(cfg, raw)
}

// RevalidateBenchmark re-checks benchmark parameters after handler overrides.
func RevalidateBenchmark(cfg *Config) error {
	if _, ok := schema.ValidBenchmarkModes[cfg.BenchmarkMode]; !ok {
		return fmt.Errorf("invalid benchmark mode %q. must be quantile or manual", cfg.BenchmarkMode)
	}
	switch cfg.BenchmarkMode {
	case schema.QuantileMode:
		if cfg.Quantile <= 0 || cfg.Quantile >= 1 {
			return fmt.Errorf("%w: quantile must be in (0,1), got %v", schema.ErrInvalidBenchmark, cfg.Quantile)
		}
	case schema.ManualMode:
		if cfg.ManualDays <= 0 {
			return fmt.Errorf("%w: manual-days must be positive, got %v", schema.ErrInvalidBenchmark, cfg.ManualDays)
		}
	}
	return nil
}

// processAsOf parses the asof choice: the dataset keyword, today, or a
// literal calendar date.
func processAsOf(cfg *Config, raw string) error {
	choice := strings.ToLower(strings.TrimSpace(raw))
	switch choice {
	case "", AsOfDataset:
		cfg.AsOfChoice = AsOfDataset
		return nil
	case AsOfToday:
		cfg.AsOfChoice = AsOfToday
		return nil
	}
	t, err := time.Parse(schema.DateFormat, choice)
	if err != nil {
		return fmt.Errorf("invalid asof %q. must be dataset, today, or a date like 2024-06-30", raw)
	}
	cfg.AsOfChoice = ""
	cfg.AsOfDate = schema.NormalizeDate(t)
	return nil
}

// processStatusFilter parses the action-list filter flag.
func processStatusFilter(cfg *Config, raw string) error {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		cfg.StatusFilter = nil
	case "overdue":
		cfg.StatusFilter = []schema.Status{schema.OverdueStatus}
	case "due_soon", "due-soon":
		cfg.StatusFilter = []schema.Status{schema.DueSoonStatus}
	case "actionable":
		cfg.StatusFilter = []schema.Status{schema.DueSoonStatus, schema.OverdueStatus}
	case "ok":
		cfg.StatusFilter = []schema.Status{schema.OKStatus}
	default:
		return fmt.Errorf("invalid filter %q. must be overdue, due_soon, actionable, ok", raw)
	}
	return nil
}

// parseBoolFlag interprets the yes/no style string flags.
func parseBoolFlag(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("snapshot-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("snapshot-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use postgres:// form")
		}
	}
	return nil
}
