package mapping

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
)

const sectionFields = "fields"

// compile turns the decoded YAML into typed strategies. All problems are
// collected so one load reports every broken entry.
func compile(raw *rawSchema) (*Schema, error) {
	c := &compiler{}
	s := &Schema{DefaultSheet: raw.DefaultSheet}

	for _, name := range sortedKeys(raw.Fields) {
		if models.IsSection(name) {
			c.fail(sectionFields, name, errors.New("name collides with a document section"))
			continue
		}
		if f, ok := c.field(sectionFields, name, raw.Fields[name]); ok {
			s.Fields = append(s.Fields, f)
		}
	}

	for i, fam := range raw.FamilyBackground {
		if e, ok := c.family(i, fam); ok {
			s.Family = append(s.Family, e)
		}
	}

	for _, name := range sortedKeys(raw.Tables) {
		if !isTableSection(name) {
			c.fail("tables", name, fmt.Errorf("unknown table section (known: %s)", strings.Join(models.TableSections, ", ")))
		}
	}
	for _, section := range models.TableSections {
		rt, ok := raw.Tables[section]
		if !ok {
			continue
		}
		if t, ok := c.table(section, rt); ok {
			s.Tables = append(s.Tables, t)
		}
	}

	if raw.References != nil {
		if t, ok := c.table(models.SectionReferences, *raw.References); ok {
			s.References = &t
		}
	}

	if raw.OtherInformation != nil {
		s.OtherInformation = c.otherInformation(*raw.OtherInformation)
	}

	numbers := make([]int, 0, len(raw.Questionnaire))
	for n := range raw.Questionnaire {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	for _, n := range numbers {
		if q, ok := c.question(n, raw.Questionnaire[n]); ok {
			s.Questionnaire = append(s.Questionnaire, q)
		}
	}

	if err := errors.Join(c.errs...); err != nil {
		return nil, err
	}
	return s, nil
}

type compiler struct {
	errs []error
}

func (c *compiler) fail(section, field string, err error) {
	c.errs = append(c.errs, newError(section, field, err))
}

func (c *compiler) fieldType(section, field, name string) (FieldType, bool) {
	t, ok := parseFieldType(name)
	if !ok {
		c.fail(section, field, fmt.Errorf("unknown type %q", name))
	}
	return t, ok
}

func (c *compiler) field(section, name string, rf rawField) (Field, bool) {
	ref, err := ParseCellRef(rf.Cell)
	if err != nil {
		c.fail(section, name, err)
		return Field{}, false
	}
	if ref.Sheet == "" {
		ref.Sheet = rf.Sheet
	}
	t, ok := c.fieldType(section, name, rf.Type)
	if !ok {
		return Field{}, false
	}
	return Field{Name: name, Cell: ref, Type: t}, true
}

func (c *compiler) family(idx int, rf rawFamily) (FamilyEntry, bool) {
	section := fmt.Sprintf("%s[%d]", models.SectionFamilyBackground, idx)
	if strings.TrimSpace(rf.Relation) == "" {
		c.fail(section, "relation", errors.New("relation is required"))
		return FamilyEntry{}, false
	}

	entry := FamilyEntry{Relation: rf.Relation, Sheet: rf.Sheet}
	ok := true
	for _, name := range sortedKeys(rf.Cells) {
		if name == "relation" {
			c.fail(section, name, errors.New("relation is reserved"))
			ok = false
			continue
		}
		f, fok := c.field(section, name, rf.Cells[name])
		if !fok {
			ok = false
			continue
		}
		entry.Cells = append(entry.Cells, f)
	}
	return entry, ok
}

func (c *compiler) table(section string, rt rawTable) (Table, bool) {
	t := Table{
		Section:  section,
		Sheet:    rt.Sheet,
		StartRow: rt.StartRow,
		EndRow:   rt.EndRow,
	}
	ok := true

	for _, name := range sortedKeys(rt.Columns) {
		rc := rt.Columns[name]
		letters := rc.letters()
		if len(letters) == 0 {
			c.fail(section, name, errors.New("no column letters"))
			ok = false
			continue
		}
		col := Column{Name: name, Letters: make([]string, 0, len(letters))}
		for _, l := range letters {
			norm, err := NormalizeColumn(l)
			if err != nil {
				c.fail(section, name, err)
				ok = false
				continue
			}
			col.Letters = append(col.Letters, norm)
		}
		ft, tok := c.fieldType(section, name, rc.Type)
		if !tok {
			ok = false
			continue
		}
		col.Type = ft
		t.Columns = append(t.Columns, col)
	}

	for _, req := range rt.Required {
		if _, found := rt.Columns[req]; !found {
			c.fail(section, req, errors.New("required field is not a configured column"))
			ok = false
		}
	}
	t.Required = append(t.Required, rt.Required...)

	return t, ok
}

func (c *compiler) otherInformation(ro rawOtherInfo) []RangeField {
	var out []RangeField
	for _, name := range sortedKeys(ro.Fields) {
		rr := ro.Fields[name]
		rf := RangeField{Name: name, Sheet: ro.Sheet, StartRow: rr.StartRow, EndRow: rr.EndRow}

		if rr.Ref != "" {
			sheet, col, start, end, err := ParseColumnRange(rr.Ref)
			if err != nil {
				c.fail(models.SectionOtherInformation, name, err)
				continue
			}
			if sheet != "" {
				rf.Sheet = sheet
			}
			rf.Column, rf.StartRow, rf.EndRow = col, start, end
		} else {
			col, err := NormalizeColumn(rr.Column)
			if err != nil {
				c.fail(models.SectionOtherInformation, name, err)
				continue
			}
			rf.Column = col
		}
		out = append(out, rf)
	}
	return out
}

func (c *compiler) question(n int, rq rawQuestion) (Question, bool) {
	section := models.SectionQuestionnaire
	field := fmt.Sprint(n)

	answer, err := ParseCellRef(rq.AnswerCell)
	if err != nil {
		c.fail(section, field, fmt.Errorf("answer_cell: %w", err))
		return Question{}, false
	}

	q := Question{Number: n, Sheet: rq.Sheet, AnswerCell: answer}
	if strings.TrimSpace(rq.DetailsCell) != "" {
		details, err := ParseCellRef(rq.DetailsCell)
		if err != nil {
			c.fail(section, field, fmt.Errorf("details_cell: %w", err))
			return Question{}, false
		}
		q.DetailsCell = details
	}
	return q, true
}

func isTableSection(name string) bool {
	for _, s := range models.TableSections {
		if s == name {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
