package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rebuylabs/rebuy/schema"
)

// loadCSV reads a header-mapped csv or tsv file into transactions.
func loadCSV(path string) ([]schema.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		reader.Comma = '\t'
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []schema.Transaction{}, nil
		}
		return nil, fmt.Errorf("failed to read header of %q: %w", path, err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var txs []schema.Transaction
	rowIndex := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d of %q: %w", rowIndex+2, path, err)
		}

		date, err := parseDate(record[cols.purchaseDate])
		if err != nil {
			return nil, fmt.Errorf("row %d of %q: %w", rowIndex+2, path, err)
		}

		tx := schema.Transaction{
			CustomerID:   strings.TrimSpace(record[cols.customerID]),
			ProductID:    strings.TrimSpace(record[cols.productID]),
			PurchaseDate: date,
			RowIndex:     rowIndex,
		}
		if cols.amount >= 0 && cols.amount < len(record) {
			if raw := strings.TrimSpace(record[cols.amount]); raw != "" {
				// Amount is optional metadata; a bad value is not fatal.
				tx.Amount, _ = strconv.ParseFloat(raw, 64)
			}
		}
		txs = append(txs, tx)
		rowIndex++
	}
	return txs, nil
}

// columnIndexes holds the positions of the contract columns in the header.
type columnIndexes struct {
	customerID   int
	productID    int
	purchaseDate int
	amount       int // -1 when absent
}

// mapColumns resolves the required columns from the header row, failing with
// schema.ErrMissingColumn when one is absent. Header matching is
// case-insensitive.
func mapColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{customerID: -1, productID: -1, purchaseDate: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColumnCustomerID:
			cols.customerID = i
		case ColumnProductID:
			cols.productID = i
		case ColumnPurchaseDate:
			cols.purchaseDate = i
		case ColumnAmount:
			cols.amount = i
		}
	}

	for _, req := range []struct {
		name  string
		index int
	}{
		{ColumnCustomerID, cols.customerID},
		{ColumnProductID, cols.productID},
		{ColumnPurchaseDate, cols.purchaseDate},
	} {
		if req.index < 0 {
			return cols, fmt.Errorf("%w: %q", schema.ErrMissingColumn, req.name)
		}
	}
	return cols, nil
}

// parseDate accepts calendar dates (2024-06-30) and full RFC3339 timestamps,
// normalizing both to midnight UTC.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(schema.DateFormat, raw); err == nil {
		return schema.NormalizeDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return schema.NormalizeDate(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", schema.ErrInvalidDate, raw)
}
