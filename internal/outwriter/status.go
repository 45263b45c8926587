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

// PrintStatusResults outputs status records, dispatching on the configured
// output format.
func PrintStatusResults(records []schema.StatusRecord, cfg *contract.Config, hdr StatusHeader, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatusJSON(w, records)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeStatusCSV(csvWriter, records, fmtFloat, intFmt)
		}, "CSV")
	case schema.ParquetOut:
		if err := requireFileFor("parquet", cfg.OutputFile); err != nil {
			return err
		}
		return parquet.WriteStatusRecordsParquet(records, cfg.OutputFile)
	case schema.XLSXOut:
		if err := requireFileFor("xlsx", cfg.OutputFile); err != nil {
			return err
		}
		return writeStatusXLSX(records, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatusTable(records, cfg, hdr, fmtFloat, duration, w)
		}, "table")
	}
}

// writeStatusTable generates and writes the human-readable action list.
func writeStatusTable(records []schema.StatusRecord, cfg *contract.Config, hdr StatusHeader, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Customer", "Product", "Last Purchase", "Interval", "Due Date", "Days Left", "Status"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := getMaxTableIDWidth(cfg)
	var data [][]string
	for i, r := range records {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateID(r.CustomerID, idWidth),
			contract.TruncateID(r.ProductID, idWidth),
			r.LastPurchase.Format(schema.DateFormat),
			fmtFloat(r.IntervalDays),
			r.DueDate.Format(schema.DateFormat),
			strconv.Itoa(r.DaysUntilDue),
			contract.StatusLabel(r.Status, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Summary stats
	counts := make(map[schema.Status]int)
	for _, r := range records {
		counts[r.Status]++
	}
	if _, err := fmt.Fprintf(writer, "%s: %d customers (ok: %d, due_soon: %d, overdue: %d)\n",
		hdr.Title, len(records), counts[schema.OKStatus], counts[schema.DueSoonStatus], counts[schema.OverdueStatus]); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "ASOF = %s | %s | due soon window = %dd | computed in %v\n",
		hdr.AsOf.Format(schema.DateFormat), hdr.Benchmark, cfg.SoonDays, duration); err != nil {
		return err
	}
	return nil
}

// writeStatusCSV writes status records in CSV format.
func writeStatusCSV(w *csv.Writer, records []schema.StatusRecord, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"customer_id",
		"product_id",
		"last_purchase_date",
		"expected_interval_days",
		"due_date",
		"days_until_due",
		"status",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			r.CustomerID,
			r.ProductID,
			r.LastPurchase.Format(schema.DateFormat),
			fmtFloat(r.IntervalDays),
			r.DueDate.Format(schema.DateFormat),
			fmt.Sprintf(intFmt, r.DaysUntilDue),
			contract.GetPlainStatusLabel(r.Status),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeStatusJSON writes status records in JSON format.
func writeStatusJSON(w io.Writer, records []schema.StatusRecord) error {
	type jsonStatusRecord struct {
		Rank int `json:"rank"`
		schema.StatusRecord
	}
	output := make([]jsonStatusRecord, len(records))
	for i, r := range records {
		output[i] = jsonStatusRecord{Rank: i + 1, StatusRecord: r}
	}
	return writeJSON(w, output)
}
