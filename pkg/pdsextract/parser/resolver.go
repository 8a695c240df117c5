package parser

import (
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
)

// Resolver evaluates compiled mapping strategies against one indexed
// workbook. It holds no mutable state; a zero DefaultSheet resolves
// unqualified references to a sheet named "".
type Resolver struct {
	Workbook     models.Workbook
	DefaultSheet string
	Caster       Caster
}

// sheetName returns the first non-empty candidate, falling back to the
// default sheet.
func (r Resolver) sheetName(candidates ...string) string {
	for _, name := range candidates {
		if name != "" {
			return name
		}
	}
	return r.DefaultSheet
}

func (r Resolver) cell(ref mapping.CellRef, enclosingSheet string) models.Value {
	return r.Workbook.Cell(r.sheetName(ref.Sheet, enclosingSheet), ref.Column, ref.Row)
}

// Fields resolves single-field definitions. Fields whose cell is blank or
// whose value cannot be cast are left out of the result, except booleans:
// a blank boolean cell resolves to false.
func (r Resolver) Fields(fields []mapping.Field) models.Record {
	out := make(models.Record)
	for _, f := range fields {
		v := r.cell(f.Cell, "")
		if f.Type != mapping.TypeBoolean && isBlank(v) {
			continue
		}
		val := r.Caster.Cast(v, f.Type)
		if isEmptyResult(val) {
			continue
		}
		out[f.Name] = val
	}
	return out
}
