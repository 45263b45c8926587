package outwriter

import (
	"fmt"

	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/schema"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Results"

// newWorkbook creates a workbook with a single named sheet and writes the
// header row.
func newWorkbook(header []string) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, name); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// setRow writes one row of mixed-type values starting at column A.
func setRow(f *excelize.File, rowIdx int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func saveWorkbook(f *excelize.File, outputFile string) error {
	if err := f.SaveAs(outputFile); err != nil {
		return fmt.Errorf("cannot save workbook: %w", err)
	}
	fmt.Printf("Created XLSX file at %s\n", outputFile)
	return nil
}

func writeStatusXLSX(records []schema.StatusRecord, cfg *contract.Config) error {
	f, err := newWorkbook([]string{
		"customer_id", "product_id", "last_purchase", "interval_days",
		"due_date", "days_until_due", "status",
	})
	if err != nil {
		return err
	}
	defer f.Close()

	for i, r := range records {
		row := []any{
			r.CustomerID,
			r.ProductID,
			r.LastPurchase.Format(schema.DateFormat),
			r.IntervalDays,
			r.DueDate.Format(schema.DateFormat),
			r.DaysUntilDue,
			string(r.Status),
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}
	return saveWorkbook(f, cfg.OutputFile)
}

func writeComparisonXLSX(rows []schema.ComparisonRow, cfg *contract.Config) error {
	f, err := newWorkbook([]string{
		"product_id", "customer_count", "repeat_rate", "urgency_rate",
		"median_retention_days",
	})
	if err != nil {
		return err
	}
	defer f.Close()

	for i, r := range rows {
		row := []any{
			r.ProductID,
			r.CustomerCount,
			optCell(r.RepeatRate),
			optCell(r.UrgencyRate),
			optCell(r.MedianRetentionDays),
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}
	return saveWorkbook(f, cfg.OutputFile)
}

// optCell keeps undefined rates as empty cells instead of zeroes.
func optCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
