// Package parser indexes workbooks and resolves mapping strategies against them.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
	"github.com/xuri/excelize/v2"
)

// IndexWorkbook converts every worksheet of f into a row/column lookup.
// Sheets that cannot be read as a grid, such as chart sheets, are left out.
func IndexWorkbook(f *excelize.File) models.Workbook {
	wb := make(models.Workbook)
	for _, sheetName := range f.GetSheetList() {
		sheet, err := IndexSheet(f, sheetName)
		if err != nil {
			continue
		}
		wb[sheetName] = sheet
	}
	return wb
}

// IndexSheet extracts the raw cell values of one sheet, keyed by 1-based
// row number and upper-case column letters. Empty cells are not stored.
func IndexSheet(f *excelize.File, sheetName string) (models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheet := make(models.Sheet)
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		var cells models.Row

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			colName, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				continue
			}
			ctype, _ := f.GetCellType(sheetName, colName+strconv.Itoa(rowNum))

			if cells == nil {
				cells = make(models.Row)
			}
			cells[colName] = parseValue(cellValue, ctype)
		}

		if cells != nil {
			sheet[rowNum] = cells
		}
	}

	return sheet, nil
}

// parseValue classifies a raw cell string. Text cells stay text even when
// they look numeric, so IDs typed as text keep their leading zeros.
func parseValue(s string, ctype excelize.CellType) models.Value {
	switch ctype {
	case excelize.CellTypeBool:
		return models.BoolValue(s == "1" || strings.EqualFold(s, "true"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return models.StringValue(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return models.NumberValue(f)
	}
	return models.StringValue(s)
}
