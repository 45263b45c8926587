package loader

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/parquet-go/parquet-go"
	"github.com/rebuylabs/rebuy/schema"
	"github.com/schollz/progressbar/v3"
)

// GenParams controls synthetic dataset generation.
type GenParams struct {
	Customers int   // Number of distinct customers
	Products  int   // Number of distinct products
	Seed      int64 // RNG seed for reproducible datasets
}

// GenerateDataset writes a synthetic transactions file (csv or parquet,
// chosen by extension). Each product gets its own typical repeat cycle so
// quantile benchmarks differ across products, and a share of customers are
// one-time buyers so repeat rates stay realistic.
func GenerateDataset(path string, params GenParams) (int, error) {
	if params.Customers <= 0 || params.Products <= 0 {
		return 0, fmt.Errorf("customers and products must be positive")
	}

	faker := gofakeit.New(params.Seed)
	rng := rand.New(rand.NewSource(params.Seed))

	products := make([]string, params.Products)
	cycles := make([]int, params.Products)
	for i := range products {
		products[i] = strings.ToLower(strings.ReplaceAll(faker.ProductName(), " ", "-"))
		cycles[i] = 20 + rng.Intn(120) // typical repeat cycle, 20-139 days
	}

	end := schema.NormalizeDate(time.Now().UTC())
	bar := progressbar.Default(int64(params.Customers), "generating customers")

	var txs []schema.Transaction
	for c := 0; c < params.Customers; c++ {
		customerID := faker.UUID()
		owned := 1 + rng.Intn(min(3, params.Products))
		for _, pi := range rng.Perm(params.Products)[:owned] {
			purchases := 1
			if rng.Float64() > 0.35 { // ~65% are repeat buyers
				purchases = 2 + rng.Intn(5)
			}
			// Walk backwards from a recent anchor using the product cycle
			// with +/-30% jitter per gap.
			date := end.AddDate(0, 0, -rng.Intn(cycles[pi]*2))
			for p := 0; p < purchases; p++ {
				txs = append(txs, schema.Transaction{
					CustomerID:   customerID,
					ProductID:    products[pi],
					PurchaseDate: date,
					Amount:       float64(faker.Price(5, 400)),
				})
				jitter := 1 + (rng.Float64()-0.5)*0.6
				date = date.AddDate(0, 0, -int(float64(cycles[pi])*jitter))
			}
		}
		_ = bar.Add(1)
	}

	for i := range txs {
		txs[i].RowIndex = i
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return len(txs), writeCSVDataset(path, txs)
	case ".parquet":
		return len(txs), writeParquetDataset(path, txs)
	default:
		return 0, fmt.Errorf("unsupported output file %q: expected .csv or .parquet", path)
	}
}

// writeCSVDataset writes transactions using the loader column contract.
func writeCSVDataset(path string, txs []schema.Transaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{ColumnCustomerID, ColumnProductID, ColumnPurchaseDate, ColumnAmount}); err != nil {
		return err
	}
	for _, tx := range txs {
		rec := []string{
			tx.CustomerID,
			tx.ProductID,
			tx.PurchaseDate.Format(schema.DateFormat),
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeParquetDataset writes transactions in the parquet shape the loader reads.
func writeParquetDataset(path string, txs []schema.Transaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[transactionRow](file)
	defer func() { _ = writer.Close() }()

	rows := make([]transactionRow, len(txs))
	for i, tx := range txs {
		rows[i] = toParquetRow(tx)
	}
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows to %q: %w", path, err)
	}
	return nil
}
