// Package schema has configs, models and shared constants for all parts of rebuy.
package schema

import "time"

// Transaction represents a single purchase event from the input dataset.
// It is immutable once loaded; the engine never mutates transactions.
type Transaction struct {
	CustomerID   string    `json:"customer_id"`             // Opaque customer identifier
	ProductID    string    `json:"product_id"`              // Opaque product identifier
	PurchaseDate time.Time `json:"purchase_date"`           // Calendar date, normalized to midnight UTC
	Amount       float64   `json:"amount,omitempty"`        // Optional purchase amount
	RowIndex     int       `json:"-"`                       // Original row position, used for same-day tie-breaks
}

// CustomerProfile is the derived purchase history of one (customer, product) pair.
// Intervals holds the day gaps between consecutive purchases in chronological
// order, so len(Intervals) == PurchaseCount-1 and it is empty for one-time buyers.
type CustomerProfile struct {
	CustomerID    string    `json:"customer_id"`
	ProductID     string    `json:"product_id"`
	FirstPurchase time.Time `json:"first_purchase_date"`
	LastPurchase  time.Time `json:"last_purchase_date"`
	PurchaseCount int       `json:"purchase_count"`
	Intervals     []float64 `json:"observed_intervals"`
}

// Benchmark is the expected repeat-purchase interval for one product.
type Benchmark struct {
	ProductID    string          `json:"product_id"`
	IntervalDays float64         `json:"expected_interval_days"` // Always > 0
	Source       BenchmarkSource `json:"source"`                 // quantile or manual
}

// StatusRecord is the engine output for one (customer, product) pair.
// DueDate is LastPurchase plus the product benchmark interval; DaysUntilDue
// is measured against the reference date and may be negative.
type StatusRecord struct {
	CustomerID   string    `json:"customer_id"`
	ProductID    string    `json:"product_id"`
	LastPurchase time.Time `json:"last_purchase_date"`
	IntervalDays float64   `json:"expected_interval_days"`
	DueDate      time.Time `json:"due_date"`
	DaysUntilDue int       `json:"days_until_due"`
	Status       Status    `json:"status"`
}

// ComparisonRow is the aggregated view of one product across all of its
// customers. Rates are nil when the product has no customers; nil is the
// explicit "undefined" sentinel and renders as null in JSON.
type ComparisonRow struct {
	ProductID           string   `json:"product_id"`
	CustomerCount       int      `json:"customer_count"`
	RepeatRate          *float64 `json:"repeat_rate"`
	UrgencyRate         *float64 `json:"urgency_rate"`
	MedianRetentionDays *float64 `json:"median_retention_days"`
}

// Actionable reports whether the record needs follow-up (due soon or overdue).
func (r StatusRecord) Actionable() bool {
	return r.Status == DueSoonStatus || r.Status == OverdueStatus
}
