package parser

import (
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
)

// Table resolves one repeating section, one record per row in ascending
// row order. A row is kept when it has a value in at least one required
// field (if any are declared) and in at least one field overall.
// An invalid row range or a table without columns yields nil.
func (r Resolver) Table(t mapping.Table) []models.Record {
	if !t.Valid() || len(t.Columns) == 0 {
		return nil
	}

	sheet := r.Workbook[r.sheetName(t.Sheet)]
	endRow := t.EndRow
	if last := sheet.MaxRow(); last < endRow {
		endRow = last
	}

	var out []models.Record
	for row := t.StartRow; row <= endRow; row++ {
		rec := make(models.Record, len(t.Columns))
		filled := false
		for _, col := range t.Columns {
			val := r.column(sheet, col, row)
			rec[col.Name] = val
			if !isEmptyResult(val) {
				filled = true
			}
		}
		if !filled || !hasRequired(rec, t.Required) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// column takes the first non-blank cell among the fallback letters. Later
// letters are not consulted once one is found, even if its cast fails.
func (r Resolver) column(sheet models.Sheet, col mapping.Column, row int) any {
	for _, letter := range col.Letters {
		v := sheet.Cell(letter, row)
		if isBlank(v) {
			continue
		}
		val := r.Caster.Cast(v, col.Type)
		if isEmptyResult(val) {
			return nil
		}
		return val
	}
	return nil
}

func hasRequired(rec models.Record, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, name := range required {
		if !isEmptyResult(rec[name]) {
			return true
		}
	}
	return false
}
