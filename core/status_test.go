package core

import (
	"testing"

	"github.com/rebuylabs/rebuy/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quantileOpts(soonDays int) Options {
	return Options{
		BenchmarkMode: schema.QuantileMode,
		Quantile:      schema.DefaultQuantile,
		SoonDays:      soonDays,
	}
}

// TestClassify tests the status boundaries. Both edges of the due-soon
// window are inclusive.
func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		daysUntilDue int
		soonDays     int
		expected     schema.Status
	}{
		{"well before due", 30, 14, schema.OKStatus},
		{"just outside window", 15, 14, schema.OKStatus},
		{"window boundary", 14, 14, schema.DueSoonStatus},
		{"inside window", 7, 14, schema.DueSoonStatus},
		{"due today", 0, 14, schema.DueSoonStatus},
		{"one day late", -1, 14, schema.OverdueStatus},
		{"long overdue", -100, 14, schema.OverdueStatus},
		{"zero window due today", 0, 0, schema.DueSoonStatus},
		{"zero window one day left", 1, 0, schema.OKStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classify(tt.daysUntilDue, tt.soonDays))
		})
	}
}

// TestComputeSingleRepeatBuyer walks one repeat buyer through the whole
// pipeline: purchases on days 0, 10, 20 give a 10-day median cycle, so by
// day 35 the customer is five days overdue.
func TestComputeSingleRepeatBuyer(t *testing.T) {
	profiles := BuildProfiles([]schema.Transaction{
		tx("c1", "p1", 0, 0),
		tx("c1", "p1", 10, 1),
		tx("c1", "p1", 20, 2),
		tx("c2", "p1", 0, 3),
		tx("c2", "p1", 10, 4),
	})

	records, err := ComputeSingle(profiles, "p1", day(35), quantileOpts(3))
	require.NoError(t, err)
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "c1", r.CustomerID)
	assert.Equal(t, day(20), r.LastPurchase)
	assert.InDelta(t, 10.0, r.IntervalDays, 0.0001)
	assert.Equal(t, day(30), r.DueDate)
	assert.Equal(t, -5, r.DaysUntilDue)
	assert.Equal(t, schema.OverdueStatus, r.Status)
}

// TestComputeSingleOneTimeBuyerGetsRecord verifies customers with a single
// purchase still get a status against the product benchmark.
func TestComputeSingleOneTimeBuyerGetsRecord(t *testing.T) {
	profiles := BuildProfiles([]schema.Transaction{
		tx("c1", "p1", 0, 0),
		tx("c1", "p1", 10, 1),
		tx("c2", "p1", 0, 2),
		tx("c2", "p1", 10, 3),
		tx("c3", "p1", 8, 4),
	})

	records, err := ComputeSingle(profiles, "p1", day(12), quantileOpts(3))
	require.NoError(t, err)
	require.Len(t, records, 3)

	// c3 bought once on day 8; benchmark is 10 days, due day 18
	r := records[2]
	assert.Equal(t, "c3", r.CustomerID)
	assert.Equal(t, day(18), r.DueDate)
	assert.Equal(t, 6, r.DaysUntilDue)
	assert.Equal(t, schema.OKStatus, r.Status)
}

// TestComputeSingleUnknownProduct verifies the sentinel error.
func TestComputeSingleUnknownProduct(t *testing.T) {
	profiles := BuildProfiles([]schema.Transaction{
		tx("c1", "p1", 0, 0),
	})

	_, err := ComputeSingle(profiles, "nope", day(10), quantileOpts(3))
	assert.ErrorIs(t, err, schema.ErrUnknownProduct)
}

// TestComputeSingleFractionalBenchmarkRounds verifies fractional intervals
// round to the nearest whole day before the due date is computed.
func TestComputeSingleFractionalBenchmarkRounds(t *testing.T) {
	profiles := BuildProfiles([]schema.Transaction{
		tx("c1", "p1", 0, 0),
		tx("c1", "p1", 10, 1),
		tx("c2", "p1", 0, 2),
		tx("c2", "p1", 15, 3),
	})

	// Intervals 10 and 15, median 12.5, rounds to 13
	records, err := ComputeSingle(profiles, "p1", day(20), quantileOpts(3))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.InDelta(t, 12.5, records[0].IntervalDays, 0.0001)
	assert.Equal(t, day(23), records[0].DueDate)
}

// TestComputeAll verifies each product is scored against its own benchmark
// and output order is product then customer.
func TestComputeAll(t *testing.T) {
	profiles := BuildProfiles([]schema.Transaction{
		// p1: 10-day cycle
		tx("c1", "p1", 0, 0),
		tx("c1", "p1", 10, 1),
		tx("c2", "p1", 0, 2),
		tx("c2", "p1", 10, 3),
		// p2: 40-day cycle
		tx("c1", "p2", 0, 4),
		tx("c1", "p2", 40, 5),
		tx("c3", "p2", 0, 6),
		tx("c3", "p2", 40, 7),
	})

	records, err := ComputeAll(profiles, day(25), quantileOpts(3))
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "p1", records[0].ProductID)
	assert.Equal(t, "c1", records[0].CustomerID)
	assert.Equal(t, schema.OverdueStatus, records[0].Status) // due day 20

	assert.Equal(t, "p2", records[2].ProductID)
	assert.Equal(t, schema.OKStatus, records[2].Status) // due day 80

	// Same product, different benchmarks never bleed into each other
	assert.InDelta(t, 10.0, records[0].IntervalDays, 0.0001)
	assert.InDelta(t, 40.0, records[2].IntervalDays, 0.0001)
}

// TestComputeAllDeterministic verifies two runs over the same input produce
// identical output.
func TestComputeAllDeterministic(t *testing.T) {
	profiles := BuildProfiles([]schema.Transaction{
		tx("c2", "p2", 3, 0),
		tx("c1", "p1", 0, 1),
		tx("c1", "p1", 12, 2),
		tx("c3", "p1", 5, 3),
		tx("c3", "p1", 14, 4),
	})

	first, err := ComputeAll(profiles, day(30), quantileOpts(7))
	require.NoError(t, err)
	second, err := ComputeAll(profiles, day(30), quantileOpts(7))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestComputeAllEmpty verifies an empty dataset yields an empty slice, not
// an error.
func TestComputeAllEmpty(t *testing.T) {
	records, err := ComputeAll(nil, day(0), quantileOpts(3))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

// TestResolveAllBenchmarks verifies one benchmark per product in ascending
// order.
func TestResolveAllBenchmarks(t *testing.T) {
	profiles := BuildProfiles([]schema.Transaction{
		tx("c1", "p2", 0, 0),
		tx("c1", "p1", 0, 1),
		tx("c1", "p1", 10, 2),
		tx("c2", "p1", 0, 3),
		tx("c2", "p1", 10, 4),
	})

	benches, err := ResolveAllBenchmarks(profiles, quantileOpts(3))
	require.NoError(t, err)
	require.Len(t, benches, 2)
	assert.Equal(t, "p1", benches[0].ProductID)
	assert.Equal(t, schema.QuantileSource, benches[0].Source)
	assert.Equal(t, "p2", benches[1].ProductID)
	assert.Equal(t, schema.ManualSource, benches[1].Source) // one-time buyer fallback
}
