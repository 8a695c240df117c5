package mapping

import (
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
)

// FieldType is the semantic type a cell is cast to.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeDate    FieldType = "date"
	TypeNumeric FieldType = "numeric"
	TypeBoolean FieldType = "boolean"
)

func parseFieldType(s string) (FieldType, bool) {
	switch FieldType(s) {
	case "", TypeString:
		return TypeString, true
	case TypeDate, TypeNumeric, TypeBoolean:
		return FieldType(s), true
	}
	return "", false
}

// CellRef addresses one cell. An empty Sheet resolves to the enclosing
// definition's sheet, then to the default sheet.
type CellRef struct {
	Sheet  string
	Column string
	Row    int
}

// Field maps one cell to one named output value.
type Field struct {
	Name string
	Cell CellRef
	Type FieldType
}

// Column is one named table column with its ordered fallback letters.
type Column struct {
	Name    string
	Letters []string
	Type    FieldType
}

// Table maps a row range to a sequence of records.
type Table struct {
	Section  string
	Sheet    string
	StartRow int
	EndRow   int
	Columns  []Column
	Required []string
}

// Valid reports whether the row range can be evaluated.
func (t Table) Valid() bool {
	return t.StartRow > 0 && t.EndRow > 0 && t.StartRow <= t.EndRow
}

// FamilyEntry is a relation-tagged cluster of person cells.
type FamilyEntry struct {
	Relation string
	Sheet    string
	Cells    []Field
}

// RangeField joins the non-blank cells of one column range.
type RangeField struct {
	Name     string
	Sheet    string
	Column   string
	StartRow int
	EndRow   int
}

// Question is one questionnaire item.
type Question struct {
	Number      int
	Sheet       string
	AnswerCell  CellRef
	DetailsCell CellRef
}

// Schema is a compiled mapping configuration. It is read-only once
// returned by Parse and safe to share between extractions.
type Schema struct {
	DefaultSheet     string
	Fields           []Field
	Family           []FamilyEntry
	Tables           []Table
	References       *Table
	OtherInformation []RangeField
	Questionnaire    []Question
}

// Sections returns the document sections the schema can produce, in
// assembly order.
func (s *Schema) Sections() []string {
	var out []string
	if len(s.Family) > 0 {
		out = append(out, models.SectionFamilyBackground)
	}
	for _, t := range s.Tables {
		out = append(out, t.Section)
	}
	if s.References != nil {
		out = append(out, models.SectionReferences)
	}
	if len(s.OtherInformation) > 0 {
		out = append(out, models.SectionOtherInformation)
	}
	if len(s.Questionnaire) > 0 {
		out = append(out, models.SectionQuestionnaire)
	}
	return out
}
