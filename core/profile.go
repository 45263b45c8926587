package core

import (
	"sort"

	"github.com/rebuylabs/rebuy/schema"
)

// BuildProfiles derives one CustomerProfile per (customer, product) pair seen
// in the transactions. Purchase dates are sorted ascending with a stable rule:
// purchases sharing a calendar date keep their original row order. The result
// is ordered by product then customer so downstream output is reproducible.
func BuildProfiles(txs []schema.Transaction) []schema.CustomerProfile {
	type pairKey struct {
		customer string
		product  string
	}

	grouped := make(map[pairKey][]schema.Transaction)
	for _, tx := range txs {
		k := pairKey{customer: tx.CustomerID, product: tx.ProductID}
		grouped[k] = append(grouped[k], tx)
	}

	profiles := make([]schema.CustomerProfile, 0, len(grouped))
	for k, purchases := range grouped {
		sort.SliceStable(purchases, func(i, j int) bool {
			if !purchases[i].PurchaseDate.Equal(purchases[j].PurchaseDate) {
				return purchases[i].PurchaseDate.Before(purchases[j].PurchaseDate)
			}
			return purchases[i].RowIndex < purchases[j].RowIndex
		})

		intervals := make([]float64, 0, len(purchases)-1)
		for i := 1; i < len(purchases); i++ {
			gap := schema.DaysBetween(purchases[i-1].PurchaseDate, purchases[i].PurchaseDate)
			intervals = append(intervals, float64(gap))
		}

		profiles = append(profiles, schema.CustomerProfile{
			CustomerID:    k.customer,
			ProductID:     k.product,
			FirstPurchase: purchases[0].PurchaseDate,
			LastPurchase:  purchases[len(purchases)-1].PurchaseDate,
			PurchaseCount: len(purchases),
			Intervals:     intervals,
		})
	}

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].ProductID != profiles[j].ProductID {
			return profiles[i].ProductID < profiles[j].ProductID
		}
		return profiles[i].CustomerID < profiles[j].CustomerID
	})
	return profiles
}

// ProductIDs returns the distinct product identifiers present in the
// profiles, in ascending order.
func ProductIDs(profiles []schema.CustomerProfile) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, p := range profiles {
		if _, ok := seen[p.ProductID]; !ok {
			seen[p.ProductID] = struct{}{}
			ids = append(ids, p.ProductID)
		}
	}
	sort.Strings(ids)
	return ids
}

// profilesForProduct filters profiles down to a single product, preserving order.
func profilesForProduct(profiles []schema.CustomerProfile, productID string) []schema.CustomerProfile {
	var out []schema.CustomerProfile
	for _, p := range profiles {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	return out
}
