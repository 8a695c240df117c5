package parser

import (
	"fmt"
	"sort"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
	"github.com/xuri/excelize/v2"
)

// Dimension returns the range covering every non-empty cell of sheet,
// e.g. "A1:N60", or "" for an empty sheet.
func Dimension(sheet models.Sheet) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(sheet)
	if minRow < 0 {
		return ""
	}

	startCell, err := excelize.CoordinatesToCellName(minCol, minRow)
	if err != nil {
		return ""
	}
	endCell, err := excelize.CoordinatesToCellName(maxCol, maxRow)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// DumpSheet renders an indexed sheet in ascending row order.
func DumpSheet(title string, sheet models.Sheet) models.SheetData {
	data := models.SheetData{
		Title:     title,
		Dimension: Dimension(sheet),
	}

	rowNums := make([]int, 0, len(sheet))
	for r := range sheet {
		rowNums = append(rowNums, r)
	}
	sort.Ints(rowNums)

	for _, r := range rowNums {
		data.Rows = append(data.Rows, models.CellRow{R: r, C: sheet[r]})
	}
	return data
}

// findDataBounds finds the 1-based bounding box of non-empty cells.
func findDataBounds(sheet models.Sheet) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowNum, row := range sheet {
		for colName, v := range row {
			if v.IsEmpty() {
				continue
			}
			colNum, err := excelize.ColumnNameToNumber(colName)
			if err != nil {
				continue
			}
			if minRow < 0 || rowNum < minRow {
				minRow = rowNum
			}
			if maxRow < 0 || rowNum > maxRow {
				maxRow = rowNum
			}
			if minCol < 0 || colNum < minCol {
				minCol = colNum
			}
			if maxCol < 0 || colNum > maxCol {
				maxCol = colNum
			}
		}
	}

	return
}
