// Package loader reads transaction tables from csv and parquet files.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/schema"
)

// Required input columns, per the data contract.
const (
	ColumnCustomerID   = "customer_id"
	ColumnProductID    = "product_id"
	ColumnPurchaseDate = "purchase_date"
	ColumnAmount       = "amount" // optional
)

// FileSource loads transactions from a local file, dispatching on extension.
type FileSource struct {
	path string
}

var _ contract.TransactionSource = &FileSource{} // Compile-time check

// NewFileSource returns a TransactionSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads the whole table. The format is chosen by file extension:
// .csv (and .tsv) or .parquet.
func (s *FileSource) Load() ([]schema.Transaction, error) {
	if s.path == "" {
		return nil, fmt.Errorf("data file is required")
	}
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".csv", ".tsv":
		return loadCSV(s.path)
	case ".parquet":
		return loadParquet(s.path)
	default:
		return nil, fmt.Errorf("unsupported data file %q: expected .csv, .tsv or .parquet", s.path)
	}
}
