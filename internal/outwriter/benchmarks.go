package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/schema"
)

// PrintBenchmarkResults outputs resolved per-product benchmarks.
func PrintBenchmarkResults(benches []schema.Benchmark, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, benches)
		}, "JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeBenchmarkCSV(csvWriter, benches, cfg.Precision)
		}, "CSV")
	case schema.ParquetOut, schema.XLSXOut:
		return fmt.Errorf("benchmark output supports %s, %s and %s only",
			schema.TextOut, schema.CSVOut, schema.JSONOut)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarkTable(benches, cfg, w)
		}, "table")
	}
}

func writeBenchmarkTable(benches []schema.Benchmark, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Product", "Interval Days", "Source"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	fmtFloat, _ := createFormatters(cfg.Precision)
	idWidth := getMaxTableIDWidth(cfg)
	var data [][]string
	for _, b := range benches {
		data = append(data, []string{
			contract.TruncateID(b.ProductID, idWidth),
			fmtFloat(b.IntervalDays),
			string(b.Source),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Resolved %d benchmarks | %s\n", len(benches), contract.BenchmarkHeaderLabel(cfg))
	return err
}

func writeBenchmarkCSV(w *csv.Writer, benches []schema.Benchmark, precision int) error {
	if err := w.Write([]string{"product_id", "interval_days", "source"}); err != nil {
		return err
	}
	for _, b := range benches {
		rec := []string{
			b.ProductID,
			strconv.FormatFloat(b.IntervalDays, 'f', precision, 64),
			string(b.Source),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
