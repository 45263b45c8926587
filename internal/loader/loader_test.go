package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rebuylabs/rebuy/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempFile writes content into a temp file with the given name.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadCSV tests the happy path including optional amount and row order.
func TestLoadCSV(t *testing.T) {
	path := writeTempFile(t, "tx.csv", `customer_id,product_id,purchase_date,amount
c1,p1,2024-01-01,19.90
c1,p1,2024-01-11,
c2,p2,2024-02-01,5.00
`)

	txs, err := NewFileSource(path).Load()
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, "c1", txs[0].CustomerID)
	assert.Equal(t, "p1", txs[0].ProductID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), txs[0].PurchaseDate)
	assert.InDelta(t, 19.90, txs[0].Amount, 0.0001)
	assert.Equal(t, 0, txs[0].RowIndex)

	assert.Equal(t, 1, txs[1].RowIndex)
	assert.Zero(t, txs[1].Amount)
	assert.Equal(t, 2, txs[2].RowIndex)
}

// TestLoadCSVHeaderVariants verifies column order and casing do not matter
// and the amount column is optional.
func TestLoadCSVHeaderVariants(t *testing.T) {
	path := writeTempFile(t, "tx.csv", `PURCHASE_DATE,Customer_ID,product_id
2024-03-05,c9,p3
`)

	txs, err := NewFileSource(path).Load()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "c9", txs[0].CustomerID)
	assert.Equal(t, "p3", txs[0].ProductID)
}

// TestLoadCSVTimestampDates verifies RFC3339 timestamps normalize to
// midnight UTC.
func TestLoadCSVTimestampDates(t *testing.T) {
	path := writeTempFile(t, "tx.csv", `customer_id,product_id,purchase_date
c1,p1,2024-06-30T15:04:05Z
`)

	txs, err := NewFileSource(path).Load()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), txs[0].PurchaseDate)
}

// TestLoadTSV verifies tab-separated input works via the .tsv extension.
func TestLoadTSV(t *testing.T) {
	path := writeTempFile(t, "tx.tsv", "customer_id\tproduct_id\tpurchase_date\nc1\tp1\t2024-01-01\n")

	txs, err := NewFileSource(path).Load()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "c1", txs[0].CustomerID)
}

// TestLoadCSVMissingColumn verifies the sentinel error per missing column.
func TestLoadCSVMissingColumn(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no customer_id", "product_id,purchase_date"},
		{"no product_id", "customer_id,purchase_date"},
		{"no purchase_date", "customer_id,product_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "tx.csv", tt.header+"\n")
			_, err := NewFileSource(path).Load()
			assert.ErrorIs(t, err, schema.ErrMissingColumn)
		})
	}
}

// TestLoadCSVInvalidDate verifies unparsable dates fail with the sentinel.
func TestLoadCSVInvalidDate(t *testing.T) {
	path := writeTempFile(t, "tx.csv", `customer_id,product_id,purchase_date
c1,p1,06/30/2024
`)

	_, err := NewFileSource(path).Load()
	assert.ErrorIs(t, err, schema.ErrInvalidDate)
}

// TestLoadCSVEmptyFile verifies a file with no header yields no rows.
func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeTempFile(t, "tx.csv", "")
	txs, err := NewFileSource(path).Load()
	require.NoError(t, err)
	assert.Empty(t, txs)
}

// TestLoadUnsupportedExtension verifies unknown formats are rejected.
func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := NewFileSource("data.xlsx").Load()
	assert.Error(t, err)

	_, err = NewFileSource("").Load()
	assert.Error(t, err)
}
