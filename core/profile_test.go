package core

import (
	"testing"
	"time"

	"github.com/rebuylabs/rebuy/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// day returns a normalized calendar date n days after the fixture epoch.
func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func tx(customer, product string, d int, rowIndex int) schema.Transaction {
	return schema.Transaction{
		CustomerID:   customer,
		ProductID:    product,
		PurchaseDate: day(d),
		RowIndex:     rowIndex,
	}
}

// TestBuildProfiles tests grouping, interval derivation, and output order.
func TestBuildProfiles(t *testing.T) {
	txs := []schema.Transaction{
		tx("c2", "p1", 5, 0),
		tx("c1", "p2", 0, 1),
		tx("c1", "p1", 0, 2),
		tx("c1", "p1", 10, 3),
		tx("c1", "p1", 20, 4),
	}

	profiles := BuildProfiles(txs)
	require.Len(t, profiles, 3)

	// Ordered by product then customer
	assert.Equal(t, "p1", profiles[0].ProductID)
	assert.Equal(t, "c1", profiles[0].CustomerID)
	assert.Equal(t, "p1", profiles[1].ProductID)
	assert.Equal(t, "c2", profiles[1].CustomerID)
	assert.Equal(t, "p2", profiles[2].ProductID)

	// Repeat buyer of p1
	repeat := profiles[0]
	assert.Equal(t, 3, repeat.PurchaseCount)
	assert.Equal(t, day(0), repeat.FirstPurchase)
	assert.Equal(t, day(20), repeat.LastPurchase)
	assert.Equal(t, []float64{10, 10}, repeat.Intervals)

	// Single buyer has no intervals
	single := profiles[1]
	assert.Equal(t, 1, single.PurchaseCount)
	assert.Empty(t, single.Intervals)
	assert.Equal(t, single.FirstPurchase, single.LastPurchase)
}

// TestBuildProfilesUnsortedInput verifies dates are ordered regardless of
// input order.
func TestBuildProfilesUnsortedInput(t *testing.T) {
	txs := []schema.Transaction{
		tx("c1", "p1", 20, 0),
		tx("c1", "p1", 0, 1),
		tx("c1", "p1", 10, 2),
	}

	profiles := BuildProfiles(txs)
	require.Len(t, profiles, 1)
	assert.Equal(t, day(0), profiles[0].FirstPurchase)
	assert.Equal(t, day(20), profiles[0].LastPurchase)
	assert.Equal(t, []float64{10, 10}, profiles[0].Intervals)
}

// TestBuildProfilesSameDayTieBreak verifies purchases sharing a date keep
// their original row order, producing a zero-day interval.
func TestBuildProfilesSameDayTieBreak(t *testing.T) {
	txs := []schema.Transaction{
		tx("c1", "p1", 5, 7),
		tx("c1", "p1", 5, 3),
	}

	profiles := BuildProfiles(txs)
	require.Len(t, profiles, 1)
	assert.Equal(t, 2, profiles[0].PurchaseCount)
	assert.Equal(t, []float64{0}, profiles[0].Intervals)
}

// TestBuildProfilesEmpty verifies empty input yields no profiles.
func TestBuildProfilesEmpty(t *testing.T) {
	assert.Empty(t, BuildProfiles(nil))
}

// TestProductIDs tests distinct product extraction.
func TestProductIDs(t *testing.T) {
	profiles := BuildProfiles([]schema.Transaction{
		tx("c1", "p2", 0, 0),
		tx("c2", "p1", 0, 1),
		tx("c3", "p2", 0, 2),
	})
	assert.Equal(t, []string{"p1", "p2"}, ProductIDs(profiles))
	assert.Empty(t, ProductIDs(nil))
}
