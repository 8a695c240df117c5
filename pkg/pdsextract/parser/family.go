package parser

import (
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
)

// PersonFields are seeded with "" on every family record.
var PersonFields = []string{
	"surname",
	"first_name",
	"middle_name",
	"name_extension",
	"occupation",
	"employer_name",
	"business_address",
	"telephone_no",
}

// Family resolves relation-tagged person records. An entry whose cells are
// all blank produces no record, so an empty "Father" block is not emitted.
func (r Resolver) Family(entries []mapping.FamilyEntry) []models.Record {
	var out []models.Record
	for _, e := range entries {
		rec := make(models.Record, len(PersonFields)+1)
		for _, name := range PersonFields {
			rec[name] = ""
		}
		rec["relation"] = e.Relation

		filled := false
		for _, f := range e.Cells {
			v := r.cell(f.Cell, e.Sheet)
			if isBlank(v) {
				continue
			}
			val := r.Caster.Cast(v, f.Type)
			if isEmptyResult(val) {
				continue
			}
			rec[f.Name] = val
			filled = true
		}

		if filled {
			out = append(out, rec)
		}
	}
	return out
}
