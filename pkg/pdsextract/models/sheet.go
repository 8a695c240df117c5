package models

// Row maps upper-case column letters to raw cell values.
type Row map[string]Value

// Sheet maps 1-based row numbers to rows. Rows and columns without a
// defined cell are absent.
type Sheet map[int]Row

// Cell returns the value at column/row, or the empty Value.
func (s Sheet) Cell(column string, row int) Value {
	if r, ok := s[row]; ok {
		return r[column]
	}
	return Value{}
}

// MaxRow returns the highest indexed row number, or 0 for an empty sheet.
func (s Sheet) MaxRow() int {
	last := 0
	for r := range s {
		if r > last {
			last = r
		}
	}
	return last
}

// Workbook maps sheet titles to indexed sheets.
type Workbook map[string]Sheet

// Cell returns the value at sheet/column/row, or the empty Value when the
// sheet or cell does not exist.
func (wb Workbook) Cell(sheet, column string, row int) Value {
	return wb[sheet].Cell(column, row)
}

// SheetData represents a dump of one indexed sheet.
type SheetData struct {
	// Title is the sheet name.
	Title string `json:"title"`
	// Dimension is the range covering every non-empty cell, e.g. "A1:N60".
	Dimension string `json:"dimension,omitempty"`
	// Rows contains indexed rows in ascending order.
	Rows []CellRow `json:"rows,omitempty"`
}
