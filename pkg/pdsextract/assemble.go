package pdsextract

import (
	"sort"

	"go.uber.org/zap"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/parser"
)

// Reference field aliases, in lookup order.
var (
	referenceName    = []string{"fullname", "name"}
	referenceAddress = []string{"address"}
	referencePhone   = []string{"telephone_no", "tel_no", "telephone"}
)

// Assemble resolves schema against an indexed workbook. Scalar fields are
// resolved first; each section is attached only when it produced data.
func Assemble(wb models.Workbook, schema *mapping.Schema, opts Options) models.Document {
	log := opts.logger()
	r := parser.Resolver{
		Workbook:     wb,
		DefaultSheet: opts.defaultSheet(schema),
		Caster: parser.Caster{
			Date1904: opts.ShouldUse1904(),
			Logger:   log,
		},
	}

	doc := make(models.Document)
	for name, v := range r.Fields(schema.Fields) {
		doc[name] = v
	}
	log.Debug("resolved fields", zap.Int("count", len(doc)), zap.Int("configured", len(schema.Fields)))

	attach := func(section string, n int, v any) {
		log.Debug("resolved section", zap.String("section", section), zap.Int("count", n))
		if n > 0 {
			doc[section] = v
		}
	}

	family := r.Family(schema.Family)
	attach(models.SectionFamilyBackground, len(family), family)

	for _, t := range schema.Tables {
		records := r.Table(t)
		attach(t.Section, len(records), records)
	}

	if schema.References != nil {
		refs := references(r.Table(*schema.References))
		attach(models.SectionReferences, len(refs), refs)
	}

	other := r.OtherInformation(schema.OtherInformation)
	attach(models.SectionOtherInformation, len(other), other)

	answers := r.Questionnaire(schema.Questionnaire)
	attach(models.SectionQuestionnaire, len(answers), answers)

	return doc
}

// references normalizes raw reference rows to name/address/phone.
// Rows with none of the three are dropped.
func references(records []models.Record) []models.Reference {
	var out []models.Reference
	for _, rec := range records {
		ref := models.Reference{
			Fullname:    firstString(rec, referenceName),
			Address:     firstString(rec, referenceAddress),
			TelephoneNo: firstString(rec, referencePhone),
		}
		if ref == (models.Reference{}) {
			continue
		}
		out = append(out, ref)
	}
	return out
}

func firstString(rec models.Record, keys []string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Sections returns the sorted section keys present in doc.
func Sections(doc models.Document) []string {
	var out []string
	for key := range doc {
		if models.IsSection(key) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
