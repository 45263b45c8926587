// Package core has core logic for profiles, benchmarks, status and aggregation.
package core

import (
	"time"

	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/internal/loader"
	"github.com/rebuylabs/rebuy/internal/outwriter"
	"github.com/rebuylabs/rebuy/schema"
)

// OptionsFromConfig extracts the engine parameters from the validated config.
func OptionsFromConfig(cfg *contract.Config) Options {
	return Options{
		BenchmarkMode: cfg.BenchmarkMode,
		Quantile:      cfg.Quantile,
		ManualDays:    cfg.ManualDays,
		SoonDays:      cfg.SoonDays,
	}
}

// ResolveAsOf turns the configured asof choice into a concrete reference
// date: an explicit date verbatim, "today" as the current calendar date, or
// "dataset" as the newest last-purchase date in the profiles (falling back to
// today for an empty dataset).
func ResolveAsOf(profiles []schema.CustomerProfile, cfg *contract.Config) time.Time {
	if !cfg.AsOfDate.IsZero() {
		return cfg.AsOfDate
	}
	if cfg.AsOfChoice == contract.AsOfToday {
		return schema.NormalizeDate(time.Now().UTC())
	}
	var latest time.Time
	for _, p := range profiles {
		if p.LastPurchase.After(latest) {
			latest = p.LastPurchase
		}
	}
	if latest.IsZero() {
		return schema.NormalizeDate(time.Now().UTC())
	}
	return latest
}

// loadProfiles reads the configured data file and derives profiles plus the
// effective reference date.
func loadProfiles(cfg *contract.Config) ([]schema.CustomerProfile, time.Time, error) {
	txs, err := loader.NewFileSource(cfg.DataPath).Load()
	if err != nil {
		return nil, time.Time{}, err
	}
	profiles := BuildProfiles(txs)
	return profiles, ResolveAsOf(profiles, cfg), nil
}

// warnOnFallback surfaces the degraded benchmark mode: a quantile request
// that resolved to the default interval because the product had too little
// repeat history.
func warnOnFallback(cfg *contract.Config, benches ...schema.Benchmark) {
	if cfg.BenchmarkMode != schema.QuantileMode {
		return
	}
	for _, b := range benches {
		if b.Source == schema.ManualSource {
			contract.LogWarn("product "+b.ProductID+" has too few repeat purchases; using default interval", nil)
		}
	}
}

// applyLimit truncates records for display when a result limit is set.
func applyLimit[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// GetStatusResults computes the status records for the selected product.
// Exposed for the MCP server, which consumes results without printing.
func GetStatusResults(cfg *contract.Config) ([]schema.StatusRecord, schema.Benchmark, time.Time, error) {
	profiles, asof, err := loadProfiles(cfg)
	if err != nil {
		return nil, schema.Benchmark{}, time.Time{}, err
	}
	records, bench, err := computeSingleWithBenchmark(profiles, cfg.ProductID, asof, OptionsFromConfig(cfg))
	if err != nil {
		return nil, schema.Benchmark{}, time.Time{}, err
	}
	records = FilterByStatus(records, cfg.StatusFilter...)
	return records, bench, asof, nil
}

// GetAllStatusResults computes status records across every product.
func GetAllStatusResults(cfg *contract.Config) ([]schema.StatusRecord, time.Time, error) {
	profiles, asof, err := loadProfiles(cfg)
	if err != nil {
		return nil, time.Time{}, err
	}
	records, err := ComputeAll(profiles, asof, OptionsFromConfig(cfg))
	if err != nil {
		return nil, time.Time{}, err
	}
	records = FilterByStatus(records, cfg.StatusFilter...)
	return records, asof, nil
}

// GetComparisonResults computes one comparison row per product.
func GetComparisonResults(cfg *contract.Config) ([]schema.ComparisonRow, time.Time, error) {
	profiles, asof, err := loadProfiles(cfg)
	if err != nil {
		return nil, time.Time{}, err
	}
	records, err := ComputeAll(profiles, asof, OptionsFromConfig(cfg))
	if err != nil {
		return nil, time.Time{}, err
	}
	return Aggregate(records, profiles), asof, nil
}

// GetOverviewResults computes the most urgent actionable record per customer.
func GetOverviewResults(cfg *contract.Config) ([]schema.StatusRecord, time.Time, error) {
	clone := cfg.Clone()
	clone.StatusFilter = nil // filter applies after MostUrgent
	records, asof, err := GetAllStatusResults(clone)
	if err != nil {
		return nil, time.Time{}, err
	}
	return FilterByStatus(MostUrgent(records), cfg.StatusFilter...), asof, nil
}

// GetBenchmarkResults resolves one benchmark per product.
func GetBenchmarkResults(cfg *contract.Config) ([]schema.Benchmark, error) {
	profiles, _, err := loadProfiles(cfg)
	if err != nil {
		return nil, err
	}
	return ResolveAllBenchmarks(profiles, OptionsFromConfig(cfg))
}

// ExecuteStatus runs the single-product analysis and prints the action list.
func ExecuteStatus(cfg *contract.Config) error {
	start := time.Now()
	records, bench, asof, err := GetStatusResults(cfg)
	if err != nil {
		return err
	}
	warnOnFallback(cfg, bench)
	records = applyLimit(records, cfg.ResultLimit)
	return outwriter.PrintStatusResults(records, cfg, outwriter.StatusHeader{
		Title:     "Status for " + cfg.ProductID,
		AsOf:      asof,
		Benchmark: contract.BenchmarkHeaderLabel(cfg),
	}, time.Since(start))
}

// ExecuteAll runs the all-product analysis and prints every status record.
func ExecuteAll(cfg *contract.Config) error {
	start := time.Now()
	records, asof, err := GetAllStatusResults(cfg)
	if err != nil {
		return err
	}
	records = applyLimit(records, cfg.ResultLimit)
	return outwriter.PrintStatusResults(records, cfg, outwriter.StatusHeader{
		Title:     "Status across all products",
		AsOf:      asof,
		Benchmark: contract.BenchmarkHeaderLabel(cfg),
	}, time.Since(start))
}

// ExecuteCompare runs the cross-product aggregation, optionally records a
// snapshot of the run, and prints the comparison table.
func ExecuteCompare(cfg *contract.Config, mgr contract.SnapshotManager) error {
	start := time.Now()
	rows, asof, err := GetComparisonResults(cfg)
	if err != nil {
		return err
	}
	recordSnapshot(cfg, mgr, rows, start)
	rows = applyLimit(rows, cfg.ResultLimit)
	return outwriter.PrintComparisonResults(rows, cfg, asof, time.Since(start))
}

// ExecuteOverview prints the most urgent actionable record per customer.
func ExecuteOverview(cfg *contract.Config) error {
	start := time.Now()
	records, asof, err := GetOverviewResults(cfg)
	if err != nil {
		return err
	}
	records = applyLimit(records, cfg.ResultLimit)
	return outwriter.PrintStatusResults(records, cfg, outwriter.StatusHeader{
		Title:     "Most urgent per customer",
		AsOf:      asof,
		Benchmark: contract.BenchmarkHeaderLabel(cfg),
	}, time.Since(start))
}

// ExecuteBenchmarks prints the resolved benchmark per product.
func ExecuteBenchmarks(cfg *contract.Config) error {
	benches, err := GetBenchmarkResults(cfg)
	if err != nil {
		return err
	}
	warnOnFallback(cfg, benches...)
	return outwriter.PrintBenchmarkResults(benches, cfg)
}

// recordSnapshot stores the comparison run when a snapshot store is
// configured. Persistence problems are warnings, never command failures.
func recordSnapshot(cfg *contract.Config, mgr contract.SnapshotManager, rows []schema.ComparisonRow, start time.Time) {
	if mgr == nil || cfg.SnapshotBackend == schema.NoneBackend {
		return
	}
	store := mgr.GetStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(start, cfg.EngineParams())
	if err != nil {
		contract.LogWarn("could not begin snapshot run", err)
		return
	}
	for _, row := range rows {
		if err := store.RecordComparisonRow(runID, row); err != nil {
			contract.LogWarn("could not record snapshot row", err)
			return
		}
	}
	if err := store.EndRun(runID, time.Now(), len(rows)); err != nil {
		contract.LogWarn("could not finish snapshot run", err)
	}
}
