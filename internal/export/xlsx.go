// Package export builds spreadsheet exports of an owner's invoice book.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"billfold/internal/domain"
)

// WorkbookContentType is the MIME type of the generated artifact.
const WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Invoices"

// columns defines the header row.
var columns = []string{
	"Invoice Number",
	"Status",
	"Client Name",
	"Client Email",
	"Issue Date",
	"Due Date",
	"Subtotal",
	"Discount Rate (%)",
	"Discount Amount",
	"Tax Rate (%)",
	"Tax Amount",
	"Total",
	"Line Items",
	"Deleted At",
	"Created At",
}

// BuildWorkbook renders the invoices into a single-sheet XLSX workbook and
// returns its bytes.
func BuildWorkbook(invoices []domain.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("export.BuildWorkbook: creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export.BuildWorkbook: removing default sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export.BuildWorkbook: header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, fmt.Errorf("export.BuildWorkbook: header cell: %w", err)
		}
	}

	for rowIdx, inv := range invoices {
		deletedAt := ""
		if inv.DeletedAt != nil {
			deletedAt = inv.DeletedAt.UTC().Format("2006-01-02 15:04:05")
		}
		row := []interface{}{
			inv.InvoiceNumber,
			string(inv.Status),
			inv.ClientName,
			inv.ClientEmail,
			inv.IssueDate.Format(domain.DateLayout),
			inv.DueDate.Format(domain.DateLayout),
			inv.Subtotal,
			inv.DiscountRate,
			inv.DiscountAmount,
			inv.TaxRate,
			inv.TaxAmount,
			inv.Total,
			len(inv.LineItems),
			deletedAt,
			inv.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("export.BuildWorkbook: cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return nil, fmt.Errorf("export.BuildWorkbook: writing cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export.BuildWorkbook: serializing: %w", err)
	}
	return buf.Bytes(), nil
}
