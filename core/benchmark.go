package core

import (
	"fmt"

	"github.com/rebuylabs/rebuy/schema"
)

// BenchmarkParams carries the user-tunable inputs for benchmark resolution.
type BenchmarkParams struct {
	Quantile   float64 // Quantile in (0,1) for quantile mode
	ManualDays float64 // Expected interval for manual mode, must be > 0
}

// ResolveBenchmark derives the expected repeat-purchase interval for one
// product from its profiles.
//
// In quantile mode the interval is the q-th quantile of every observed
// interval across the product's customers. When fewer than two customers have
// at least one observed interval the statistic is not trustworthy, so the
// resolver falls back to schema.DefaultIntervalDays and reports
// Source = manual; the degraded mode is visible to callers, never silent.
//
// In manual mode the supplied value is used verbatim and must be strictly
// positive.
func ResolveBenchmark(profiles []schema.CustomerProfile, productID string, mode schema.BenchmarkMode, params BenchmarkParams) (schema.Benchmark, error) {
	switch mode {
	case schema.ManualMode:
		if params.ManualDays <= 0 {
			return schema.Benchmark{}, fmt.Errorf("%w: manual interval must be positive, got %v", schema.ErrInvalidBenchmark, params.ManualDays)
		}
		return schema.Benchmark{
			ProductID:    productID,
			IntervalDays: params.ManualDays,
			Source:       schema.ManualSource,
		}, nil

	case schema.QuantileMode:
		q := params.Quantile
		if q == 0 {
			q = schema.DefaultQuantile
		}
		if q <= 0 || q >= 1 {
			return schema.Benchmark{}, fmt.Errorf("%w: quantile must be in (0,1), got %v", schema.ErrInvalidBenchmark, q)
		}

		var intervals []float64
		customersWithIntervals := 0
		for _, p := range profiles {
			if len(p.Intervals) > 0 {
				customersWithIntervals++
				intervals = append(intervals, p.Intervals...)
			}
		}
		if customersWithIntervals < 2 {
			return schema.Benchmark{
				ProductID:    productID,
				IntervalDays: schema.DefaultIntervalDays,
				Source:       schema.ManualSource,
			}, nil
		}

		return schema.Benchmark{
			ProductID:    productID,
			IntervalDays: Quantile(intervals, q),
			Source:       schema.QuantileSource,
		}, nil

	default:
		return schema.Benchmark{}, fmt.Errorf("%w: unsupported mode %q", schema.ErrInvalidBenchmark, mode)
	}
}
