package core

import (
	"sort"

	"github.com/rebuylabs/rebuy/schema"
)

// MostUrgent keeps, for each customer with at least one actionable record
// (due_soon or overdue), the record with the smallest days-until-due across
// all products. Output is sorted by urgency, ties broken by customer ID so
// the result is stable.
func MostUrgent(records []schema.StatusRecord) []schema.StatusRecord {
	best := make(map[string]schema.StatusRecord)
	for _, r := range records {
		if !r.Actionable() {
			continue
		}
		cur, ok := best[r.CustomerID]
		if !ok || r.DaysUntilDue < cur.DaysUntilDue {
			best[r.CustomerID] = r
		}
	}

	out := make([]schema.StatusRecord, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysUntilDue != out[j].DaysUntilDue {
			return out[i].DaysUntilDue < out[j].DaysUntilDue
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	return out
}

// FilterByStatus keeps records matching the given statuses, sorted by
// days-until-due ascending (most urgent first). An empty filter returns the
// records unchanged.
func FilterByStatus(records []schema.StatusRecord, statuses ...schema.Status) []schema.StatusRecord {
	if len(statuses) == 0 {
		return records
	}
	keep := make(map[schema.Status]struct{}, len(statuses))
	for _, s := range statuses {
		keep[s] = struct{}{}
	}

	var out []schema.StatusRecord
	for _, r := range records {
		if _, ok := keep[r.Status]; ok {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntilDue < out[j].DaysUntilDue
	})
	return out
}
