package service

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/omkarh25/som/internal/apperror"
	"github.com/omkarh25/som/internal/models"
	"github.com/omkarh25/som/internal/schema"
)

// row is a record that can be read column by column.
type row interface {
	Column(name string) (interface{}, bool)
}

type ExcelService struct {
	registry *schema.Registry
}

func NewExcelService(registry *schema.Registry) *ExcelService {
	return &ExcelService{registry: registry}
}

// TransactionsWorkbook renders transactions as an xlsx workbook
func (s *ExcelService) TransactionsWorkbook(transactions []models.Transaction) (*bytes.Buffer, error) {
	return buildWorkbook(s.registry, schema.Transactions, "Transactions", transactions)
}

// AccountsWorkbook renders accounts as an xlsx workbook
func (s *ExcelService) AccountsWorkbook(accounts []models.Account) (*bytes.Buffer, error) {
	return buildWorkbook(s.registry, schema.Accounts, "Accounts", accounts)
}

// buildWorkbook writes one header row of column names, one row per record,
// and a final row summing every decimal column.
func buildWorkbook[T row](registry *schema.Registry, table, sheetName string, rows []T) (*bytes.Buffer, error) {
	entity, ok := registry.Lookup(table)
	if !ok {
		return nil, fmt.Errorf("table %q: %w", table, apperror.ErrNotFound)
	}
	fields := entity.Fields

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	// Write headers
	for i, field := range fields {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, field.Name)
	}

	totals := make([]decimal.Decimal, len(fields))

	// Write data
	for rowIdx, r := range rows {
		line := rowIdx + 2
		for colIdx, field := range fields {
			value, _ := r.Column(field.Name)
			value, err := cellValue(value)
			if err != nil {
				return nil, fmt.Errorf("%s row %d, column %s: %w", table, rowIdx+1, field.Name, err)
			}
			if field.Type == schema.TypeDecimal {
				totals[colIdx] = totals[colIdx].Add(decimal.NewFromFloat(value.(float64)))
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, line)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Totals row
	totalLine := len(rows) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalLine), "Total")
	for colIdx, field := range fields {
		if field.Type != schema.TypeDecimal {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, totalLine)
		f.SetCellValue(sheetName, cell, totals[colIdx].InexactFloat64())
	}

	// Set header style
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(fields), 1)
	f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	// Number format with 2 decimal places on decimal columns
	numericStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2})
	for colIdx, field := range fields {
		if field.Type != schema.TypeDecimal {
			continue
		}
		colName, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColStyle(sheetName, colName, numericStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// cellValue converts a column value to what is written to the sheet.
func cellValue(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case time.Time:
		return models.FormatTimestamp(val), nil
	case *string:
		if val == nil {
			return "", nil
		}
		return *val, nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("%v: %w", val, apperror.ErrUnrepresentable)
		}
		return val, nil
	}
	return v, nil
}
