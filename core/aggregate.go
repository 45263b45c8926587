package core

import (
	"sort"

	"github.com/rebuylabs/rebuy/schema"
)

// Aggregate rolls status records and profiles up into one comparison row per
// product present in profiles, ordered by product ID ascending. Repeat rate
// is the share of customers with two or more purchases; urgency rate is the
// share currently due_soon or overdue. The median retention window uses the
// same interpolation rule as the benchmark resolver. A product with zero
// customers reports nil rates rather than dividing by zero.
func Aggregate(records []schema.StatusRecord, profiles []schema.CustomerProfile) []schema.ComparisonRow {
	type productAgg struct {
		customers  int
		repeats    int
		actionable int
		intervals  []float64
	}

	aggs := make(map[string]*productAgg)
	for _, p := range profiles {
		agg, ok := aggs[p.ProductID]
		if !ok {
			agg = &productAgg{}
			aggs[p.ProductID] = agg
		}
		agg.customers++
		if p.PurchaseCount >= 2 {
			agg.repeats++
		}
		agg.intervals = append(agg.intervals, p.Intervals...)
	}

	for _, r := range records {
		if agg, ok := aggs[r.ProductID]; ok && r.Actionable() {
			agg.actionable++
		}
	}

	ids := make([]string, 0, len(aggs))
	for id := range aggs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]schema.ComparisonRow, 0, len(ids))
	for _, id := range ids {
		agg := aggs[id]
		row := schema.ComparisonRow{
			ProductID:     id,
			CustomerCount: agg.customers,
			RepeatRate:    schema.Ratio(agg.repeats, agg.customers),
			UrgencyRate:   schema.Ratio(agg.actionable, agg.customers),
		}
		if len(agg.intervals) > 0 {
			median := Median(agg.intervals)
			row.MedianRetentionDays = &median
		}
		rows = append(rows, row)
	}
	return rows
}
