package core

import (
	"fmt"
	"math"
	"time"

	"github.com/rebuylabs/rebuy/schema"
)

// Options bundles every user-tunable parameter that affects status
// computation. All values are explicit arguments; the engine reads no
// ambient state, which keeps repeated calls deterministic.
type Options struct {
	BenchmarkMode schema.BenchmarkMode
	Quantile      float64
	ManualDays    float64
	SoonDays      int
}

// classify maps days-until-due onto a status. Both boundaries belong to
// due_soon: exactly 0 days left is due_soon (not overdue) and exactly
// SoonDays left is due_soon (not ok).
func classify(daysUntilDue, soonDays int) schema.Status {
	switch {
	case daysUntilDue < 0:
		return schema.OverdueStatus
	case daysUntilDue <= soonDays:
		return schema.DueSoonStatus
	default:
		return schema.OKStatus
	}
}

// statusForProfile builds one StatusRecord given a resolved benchmark.
// Fractional benchmark intervals are rounded to the nearest whole day before
// the due date is computed, matching how coverage was estimated upstream.
func statusForProfile(p schema.CustomerProfile, bench schema.Benchmark, refDate time.Time, soonDays int) schema.StatusRecord {
	dueDate := p.LastPurchase.AddDate(0, 0, int(math.Round(bench.IntervalDays)))
	daysUntilDue := schema.DaysBetween(refDate, dueDate)
	return schema.StatusRecord{
		CustomerID:   p.CustomerID,
		ProductID:    p.ProductID,
		LastPurchase: p.LastPurchase,
		IntervalDays: bench.IntervalDays,
		DueDate:      dueDate,
		DaysUntilDue: daysUntilDue,
		Status:       classify(daysUntilDue, soonDays),
	}
}

// ComputeSingle evaluates every customer of one product against that
// product's benchmark. It fails with schema.ErrUnknownProduct when the
// product has no profiles.
func ComputeSingle(profiles []schema.CustomerProfile, productID string, refDate time.Time, opts Options) ([]schema.StatusRecord, error) {
	records, _, err := computeSingleWithBenchmark(profiles, productID, refDate, opts)
	return records, err
}

// computeSingleWithBenchmark is ComputeSingle plus the resolved benchmark,
// which the orchestration layer surfaces in headers.
func computeSingleWithBenchmark(profiles []schema.CustomerProfile, productID string, refDate time.Time, opts Options) ([]schema.StatusRecord, schema.Benchmark, error) {
	subset := profilesForProduct(profiles, productID)
	if len(subset) == 0 {
		return nil, schema.Benchmark{}, fmt.Errorf("%w: %q has no purchase history", schema.ErrUnknownProduct, productID)
	}

	bench, err := ResolveBenchmark(subset, productID, opts.BenchmarkMode, BenchmarkParams{
		Quantile:   opts.Quantile,
		ManualDays: opts.ManualDays,
	})
	if err != nil {
		return nil, schema.Benchmark{}, err
	}

	records := make([]schema.StatusRecord, 0, len(subset))
	for _, p := range subset {
		records = append(records, statusForProfile(p, bench, refDate, opts.SoonDays))
	}
	return records, bench, nil
}

// ComputeAll concatenates ComputeSingle over every distinct product, each
// product evaluated against its own benchmark. Products are visited in
// ascending order and customers are already ordered within a product, so two
// calls with identical inputs produce identical output. The benchmark for
// each product is resolved exactly once per invocation. An empty product set
// yields an empty slice, never an error.
func ComputeAll(profiles []schema.CustomerProfile, refDate time.Time, opts Options) ([]schema.StatusRecord, error) {
	var records []schema.StatusRecord
	benchCache := make(map[string]schema.Benchmark)

	for _, productID := range ProductIDs(profiles) {
		subset := profilesForProduct(profiles, productID)
		bench, ok := benchCache[productID]
		if !ok {
			var err error
			bench, err = ResolveBenchmark(subset, productID, opts.BenchmarkMode, BenchmarkParams{
				Quantile:   opts.Quantile,
				ManualDays: opts.ManualDays,
			})
			if err != nil {
				return nil, err
			}
			benchCache[productID] = bench
		}
		for _, p := range subset {
			records = append(records, statusForProfile(p, bench, refDate, opts.SoonDays))
		}
	}
	if records == nil {
		records = []schema.StatusRecord{}
	}
	return records, nil
}

// ResolveAllBenchmarks resolves one benchmark per product, in ascending
// product order.
func ResolveAllBenchmarks(profiles []schema.CustomerProfile, opts Options) ([]schema.Benchmark, error) {
	var benches []schema.Benchmark
	for _, productID := range ProductIDs(profiles) {
		bench, err := ResolveBenchmark(profilesForProduct(profiles, productID), productID, opts.BenchmarkMode, BenchmarkParams{
			Quantile:   opts.Quantile,
			ManualDays: opts.ManualDays,
		})
		if err != nil {
			return nil, err
		}
		benches = append(benches, bench)
	}
	return benches, nil
}
