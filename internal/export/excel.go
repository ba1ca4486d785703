package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
)

const sheetName = "Statements"

// WriteXLSX writes the flattened rows to an Excel workbook at path, one sheet
// with the same columns as the CSV output.
func WriteXLSX(path string, results []statement.DocumentResult) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for ri, r := range results {
		row := FlattenResult(r)
		cells := []string{
			row.SourceFile, row.Issuer, row.CardNetwork, row.Status,
			row.StatementDate, row.StatementDateStatus,
			row.PaymentDueDate, row.PaymentDueStatus,
			row.MinimumPayment, row.MinimumPayStatus,
			row.TotalBalance, row.TotalBalanceStatus,
			row.AccountLast4, row.AccountStatus,
		}
		for ci, v := range cells {
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", ri+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
