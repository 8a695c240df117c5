package mapping

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseCellRef parses a cell reference such as "B5", "$b$5", "C1!B5" or
// "'Sheet 1'!$B$5". The column is normalised to upper case.
func ParseCellRef(ref string) (CellRef, error) {
	sheet, cell := splitSheet(ref)
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return CellRef{}, fmt.Errorf("cell reference %q: %w", ref, err)
	}
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return CellRef{}, fmt.Errorf("cell reference %q: %w", ref, err)
	}
	return CellRef{Sheet: sheet, Column: name, Row: row}, nil
}

// NormalizeColumn validates column letters and returns them upper-cased.
func NormalizeColumn(letters string) (string, error) {
	col := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(letters), "$", ""))
	if _, err := excelize.ColumnNameToNumber(col); err != nil {
		return "", fmt.Errorf("column %q: %w", letters, err)
	}
	return col, nil
}

// ParseColumnRange parses a single-column range such as "A42:A48".
func ParseColumnRange(ref string) (sheet, column string, startRow, endRow int, err error) {
	sheet, rng := splitSheet(ref)
	parts := strings.Split(rng, ":")
	if len(parts) != 2 {
		return "", "", 0, 0, fmt.Errorf("range %q: expected START:END", ref)
	}

	start, err := ParseCellRef(parts[0])
	if err != nil {
		return "", "", 0, 0, err
	}
	end, err := ParseCellRef(parts[1])
	if err != nil {
		return "", "", 0, 0, err
	}
	if start.Column != end.Column {
		return "", "", 0, 0, fmt.Errorf("range %q: spans columns %s and %s", ref, start.Column, end.Column)
	}
	return sheet, start.Column, start.Row, end.Row, nil
}

// splitSheet separates an optional sheet qualifier from a reference and
// strips absolute markers from the remainder.
func splitSheet(ref string) (sheet, rest string) {
	rest = strings.TrimSpace(ref)
	if idx := strings.LastIndex(rest, "!"); idx >= 0 {
		sheet = strings.Trim(rest[:idx], "'")
		rest = rest[idx+1:]
	}
	rest = strings.ToUpper(strings.ReplaceAll(rest, "$", ""))
	return sheet, rest
}
