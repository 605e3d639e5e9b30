package spreadsheet

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/plantdesk/pkg/tabular"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	DefaultSheetName = "Rapor"
	defaultSheet     = "Sheet1"
)

// Provider renders report tables as xlsx workbooks.
type Provider interface {
	Render(ctx context.Context, table tabular.Table, sheetName string) ([]byte, error)
}

type ExcelProvider struct{}

func New() Provider {
	return &ExcelProvider{}
}

// Render writes a single-sheet workbook with the header row first. A table
// without rows still produces a valid workbook.
func (p *ExcelProvider) Render(ctx context.Context, table tabular.Table, sheetName string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := strings.TrimSpace(sheetName)
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, err
	}

	if len(table.Columns) > 0 {
		header := make([]any, len(table.Columns))
		for i, column := range table.Columns {
			header[i] = column
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, err
		}

		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, err
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return nil, err
		}
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := make([]any, len(row))
		for j, value := range row {
			values[j] = cellValue(value)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cellValue keeps numbers and dates native so the sheet can be summed and sorted.
func cellValue(value any) any {
	switch v := value.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return v.InexactFloat64()
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC()
	case string, bool, int, int32, int64, float64:
		return v
	default:
		return tabular.FormatCell(v)
	}
}
