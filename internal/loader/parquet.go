package loader

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rebuylabs/rebuy/schema"
)

// transactionRow is the parquet shape of one purchase event. The schema is
// derived from struct tags, so the gen command and the loader stay in sync.
type transactionRow struct {
	CustomerID   string  `parquet:"customer_id,snappy"`
	ProductID    string  `parquet:"product_id,snappy"`
	PurchaseDate int64   `parquet:"purchase_date,snappy"` // Unix seconds, midnight UTC
	Amount       float64 `parquet:"amount,optional,snappy"`
}

// loadParquet reads a parquet transactions file.
func loadParquet(path string) ([]schema.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// The row schema is inferred from the transactionRow struct tags.
	reader := parquet.NewGenericReader[transactionRow](file)
	defer func() { _ = reader.Close() }()

	var txs []schema.Transaction
	buf := make([]transactionRow, 1024)
	rowIndex := 0
	for {
		n, err := reader.Read(buf)
		for _, row := range buf[:n] {
			txs = append(txs, fromParquetRow(row, rowIndex))
			rowIndex++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows from %q: %w", path, err)
		}
	}
	return txs, nil
}

// fromParquetRow converts a parquet row to the engine transaction shape.
func fromParquetRow(row transactionRow, rowIndex int) schema.Transaction {
	return schema.Transaction{
		CustomerID:   row.CustomerID,
		ProductID:    row.ProductID,
		PurchaseDate: schema.NormalizeDate(time.Unix(row.PurchaseDate, 0).UTC()),
		Amount:       row.Amount,
		RowIndex:     rowIndex,
	}
}

// toParquetRow is the inverse mapping, used by the gen command.
func toParquetRow(tx schema.Transaction) transactionRow {
	return transactionRow{
		CustomerID:   tx.CustomerID,
		ProductID:    tx.ProductID,
		PurchaseDate: tx.PurchaseDate.Unix(),
		Amount:       tx.Amount,
	}
}
