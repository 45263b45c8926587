package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/internal/parquet"
	"github.com/rebuylabs/rebuy/schema"
)

// PrintComparisonResults outputs comparison rows, dispatching on the
// configured output format.
func PrintComparisonResults(rows []schema.ComparisonRow, cfg *contract.Config, asof time.Time, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeComparisonCSV(csvWriter, rows, cfg.Precision)
		}, "CSV")
	case schema.ParquetOut:
		if err := requireFileFor("parquet", cfg.OutputFile); err != nil {
			return err
		}
		return parquet.WriteComparisonRowsParquet(rows, cfg.OutputFile)
	case schema.XLSXOut:
		if err := requireFileFor("xlsx", cfg.OutputFile); err != nil {
			return err
		}
		return writeComparisonXLSX(rows, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(rows, cfg, asof, duration, w)
		}, "table")
	}
}

// writeComparisonTable generates and writes the side-by-side product table.
func writeComparisonTable(rows []schema.ComparisonRow, cfg *contract.Config, asof time.Time, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Product", "Customers", "Repeat Rate", "Urgency Rate", "Median Retention"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := getMaxTableIDWidth(cfg)
	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			contract.TruncateID(r.ProductID, idWidth),
			strconv.Itoa(r.CustomerCount),
			contract.FormatRatePct(r.RepeatRate, cfg.Precision),
			contract.FormatRatePct(r.UrgencyRate, cfg.Precision),
			contract.FormatOptDays(r.MedianRetentionDays, cfg.Precision),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	totalCustomers := 0
	for _, r := range rows {
		totalCustomers += r.CustomerCount
	}
	if _, err := fmt.Fprintf(writer, "Comparing %d products (%d customer-product pairs)\n", len(rows), totalCustomers); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "ASOF = %s | %s | due soon window = %dd | computed in %v\n",
		asof.Format(schema.DateFormat), contract.BenchmarkHeaderLabel(cfg), cfg.SoonDays, duration); err != nil {
		return err
	}
	return nil
}

// writeComparisonCSV writes comparison rows in CSV format. Undefined rates
// stay empty cells.
func writeComparisonCSV(w *csv.Writer, rows []schema.ComparisonRow, precision int) error {
	header := []string{
		"product_id",
		"customer_count",
		"repeat_rate",
		"urgency_rate",
		"median_retention_days",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.ProductID,
			strconv.Itoa(r.CustomerCount),
			formatOptCSV(r.RepeatRate, precision),
			formatOptCSV(r.UrgencyRate, precision),
			formatOptCSV(r.MedianRetentionDays, precision),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// formatOptCSV renders an optional float for CSV, keeping undefined empty.
func formatOptCSV(v *float64, precision int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', precision+2, 64)
}
