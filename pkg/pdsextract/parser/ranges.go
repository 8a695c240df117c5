package parser

import (
	"strings"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
)

// OtherInformation joins the non-blank cells of each range with newlines.
// Ranges with no surviving values are omitted.
func (r Resolver) OtherInformation(fields []mapping.RangeField) map[string]string {
	out := make(map[string]string)
	for _, f := range fields {
		if f.StartRow <= 0 || f.EndRow < f.StartRow {
			continue
		}
		sheet := r.Workbook[r.sheetName(f.Sheet)]
		endRow := f.EndRow
		if last := sheet.MaxRow(); last < endRow {
			endRow = last
		}

		var parts []string
		for row := f.StartRow; row <= endRow; row++ {
			if s := r.Caster.CastString(sheet.Cell(f.Column, row)); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			out[f.Name] = strings.Join(parts, "\n")
		}
	}
	return out
}
