package pdsextract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/output"
)

// cells maps sheet name to cell reference to value.
type cells map[string]map[string]any

func newWorkbook(t *testing.T, data cells) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for sheet, values := range data {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
			first = false
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for ref, v := range values {
			require.NoError(t, f.SetCellValue(sheet, ref, v))
		}
	}
	return f
}

func saveWorkbook(t *testing.T, data cells) string {
	t.Helper()

	f := newWorkbook(t, data)
	defer f.Close()

	path := filepath.Join(t.TempDir(), "pds.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func mustParse(t *testing.T, yaml string) *mapping.Schema {
	t.Helper()

	s, err := mapping.Parse([]byte(yaml))
	require.NoError(t, err)
	return s
}

func TestExtractFile_SingleField(t *testing.T) {
	schema := mustParse(t, `
fields:
  surname: B5
  first_name: B6
  date_of_birth: {cell: B7, type: date}
tables:
  children:
    start_row: 10
    end_row: 12
    columns:
      fullname: E
`)
	path := saveWorkbook(t, cells{
		"C1": {"B5": "Dela Cruz", "B6": "   "},
	})

	doc, err := ExtractFile(path, schema, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.Document{"surname": "Dela Cruz"}, doc)
}

func TestExtractFile_BlankBooleanField(t *testing.T) {
	schema := mustParse(t, `
fields:
  surname: B5
  is_solo_parent: {cell: B9, type: boolean}
  is_pwd: {cell: B10, type: boolean}
`)
	path := saveWorkbook(t, cells{
		"C1": {"B5": "Dela Cruz", "B10": "  "},
	})

	doc, err := ExtractFile(path, schema, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.Document{
		"surname":        "Dela Cruz",
		"is_solo_parent": false,
		"is_pwd":         false,
	}, doc)
}

func TestExtractFile_Children(t *testing.T) {
	schema := mustParse(t, `
tables:
  children:
    start_row: 10
    end_row: 12
    columns:
      fullname: E
      date_of_birth: {column: F, type: date}
`)
	path := saveWorkbook(t, cells{
		"C1": {
			"E10": "Juan Dela Cruz", "F10": 45000,
			"E12": "Maria Dela Cruz", "F12": 44927,
		},
	})

	doc, err := ExtractFile(path, schema, DefaultOptions())
	require.NoError(t, err)

	want := models.Document{
		models.SectionChildren: []models.Record{
			{"fullname": "Juan Dela Cruz", "date_of_birth": "2023-03-15"},
			{"fullname": "Maria Dela Cruz", "date_of_birth": "2023-01-01"},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("ExtractFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFile_DefaultSchema(t *testing.T) {
	path := saveWorkbook(t, cells{
		"C1": {"D10": "Dela Cruz", "D11": "Juan", "D13": "1990-06-12"},
		"C4": {"G6": "X", "H11": "cousin"},
	})

	doc, err := ExtractFile(path, nil, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Dela Cruz", doc["surname"])
	assert.Equal(t, "Juan", doc["first_name"])
	assert.Equal(t, "1990-06-12", doc["date_of_birth"])

	answers, ok := doc[models.SectionQuestionnaire].([]models.Answer)
	require.True(t, ok)
	require.Len(t, answers, 12)
	assert.Equal(t, models.Answer{QuestionNumber: 1, Answer: true, Details: "cousin"}, answers[0])
	assert.Equal(t, models.Answer{QuestionNumber: 2, Answer: false, Details: "cousin"}, answers[1])
	assert.False(t, answers[11].Answer)

	assert.Equal(t, []string{models.SectionQuestionnaire}, Sections(doc))
}

func TestExtractFile_Date1904(t *testing.T) {
	schema := mustParse(t, "fields:\n  date_of_birth: {cell: A1, type: date}\n")

	f := newWorkbook(t, cells{"C1": {"A1": 45000}})
	use1904 := true
	require.NoError(t, f.SetWorkbookProps(&excelize.WorkbookPropsOptions{Date1904: &use1904}))
	path := filepath.Join(t.TempDir(), "1904.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	doc, err := ExtractFile(path, schema, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "2027-03-16", doc["date_of_birth"])

	use1900 := false
	doc, err = ExtractFile(path, schema, Options{Date1904: &use1900})
	require.NoError(t, err)
	assert.Equal(t, "2023-03-15", doc["date_of_birth"])
}

func TestExtractFile_DefaultSheetOverride(t *testing.T) {
	schema := mustParse(t, "fields:\n  surname: B5\n")
	path := saveWorkbook(t, cells{
		"C1":   {"B5": "from C1"},
		"Form": {"B5": "from Form"},
	})

	doc, err := ExtractFile(path, schema, Options{DefaultSheet: "Form"})
	require.NoError(t, err)
	assert.Equal(t, "from Form", doc["surname"])
}

func TestExtractFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("not found", func(t *testing.T) {
		path := filepath.Join(dir, "missing.xlsx")
		_, err := ExtractFile(path, nil, DefaultOptions())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFileNotFound)
		assert.ErrorIs(t, err, ErrUnreadable)

		var srcErr *SourceError
		require.True(t, errors.As(err, &srcErr))
		assert.Equal(t, path, srcErr.Path)
	})

	t.Run("not a workbook", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

		_, err := ExtractFile(path, nil, DefaultOptions())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnreadable)
		assert.NotErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("reader", func(t *testing.T) {
		_, err := Extract(bytes.NewReader([]byte("nope")), nil, DefaultOptions())
		assert.ErrorIs(t, err, ErrUnreadable)
	})
}

func TestResolveSchema(t *testing.T) {
	custom := mustParse(t, "fields:\n  surname: B5\n")
	got, err := resolveSchema(custom)
	require.NoError(t, err)
	assert.Same(t, custom, got)

	got, err = resolveSchema(nil)
	require.NoError(t, err)
	assert.Len(t, got.Questionnaire, 12)
}

func TestExtractFile_SchemaResolvedBeforeOpen(t *testing.T) {
	// A missing workbook with the built-in mapping still reports the
	// workbook, so mapping resolution did not mask it.
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.xlsx"), nil, DefaultOptions())
	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.NotErrorIs(t, err, mapping.ErrInvalidMapping)
}

func TestCheckIndexed(t *testing.T) {
	assert.ErrorIs(t, checkIndexed(models.Workbook{}), ErrNoSheets)
	assert.ErrorIs(t, checkIndexed(nil), ErrNoSheets)
	assert.NoError(t, checkIndexed(models.Workbook{"C1": {}}))
}

func TestExtract_Reader(t *testing.T) {
	schema := mustParse(t, "fields:\n  surname: B5\n")
	f := newWorkbook(t, cells{"C1": {"B5": "Dela Cruz"}})
	defer f.Close()

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	doc, err := Extract(buf, schema, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.Document{"surname": "Dela Cruz"}, doc)
}

func fullForm() cells {
	return cells{
		"C1": {
			"D10": "Dela Cruz", "D11": "Juan", "D13": 32671, "D33": "123-456-789",
			"D43": "Dela Cruz", "D44": "Pedro",
			"I37": "Ana Dela Cruz", "M37": "2015-02-01",
		},
		"C2": {
			"A5": "Career Service Professional", "F5": 85.5, "G5": 43000,
			"A18": 44000, "D18": "Administrative Officer", "G18": "DepEd", "J18": 35000, "M18": "Y",
		},
		"C3": {
			"A18": "Leadership Training", "E18": "2022-05-02", "G18": 24,
			"A42": "Driving", "A43": "Cooking",
		},
		"C4": {
			"A52": "Maria Santos", "F52": "Quezon City", "G52": "09171234567",
			"G6": "x", "G13": "no",
		},
	}
}

func TestExtractFile_Idempotent(t *testing.T) {
	path := saveWorkbook(t, fullForm())
	schema, err := mapping.Default()
	require.NoError(t, err)

	first, err := ExtractFile(path, schema, DefaultOptions())
	require.NoError(t, err)
	second, err := ExtractFile(path, schema, DefaultOptions())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second extraction differs (-first +second):\n%s", diff)
	}

	a, err := output.DocumentToJSON(first, false)
	require.NoError(t, err)
	b, err := output.DocumentToJSON(second, false)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	assert.Equal(t, []string{
		models.SectionChildren,
		models.SectionCivilServiceEligibility,
		models.SectionFamilyBackground,
		models.SectionLearningDevelopment,
		models.SectionOtherInformation,
		models.SectionQuestionnaire,
		models.SectionReferences,
		models.SectionWorkExperience,
	}, Sections(first))

	assert.Equal(t, []models.Reference{
		{Fullname: "Maria Santos", Address: "Quezon City", TelephoneNo: "09171234567"},
	}, first[models.SectionReferences])
	assert.Equal(t, map[string]string{"special_skills": "Driving\nCooking"}, first[models.SectionOtherInformation])
	assert.Equal(t, "123-456-789", first["tin_no"])

	work := first[models.SectionWorkExperience].([]models.Record)
	require.Len(t, work, 1)
	assert.Equal(t, "Administrative Officer", work[0]["position_title"])
	assert.Equal(t, "35000", work[0]["monthly_salary"])
	assert.Equal(t, true, work[0]["government_service"])
	assert.Nil(t, work[0]["date_to"])
}

func TestExtractFile_Concurrent(t *testing.T) {
	path := saveWorkbook(t, fullForm())
	schema, err := mapping.Default()
	require.NoError(t, err)

	want, err := ExtractFile(path, schema, DefaultOptions())
	require.NoError(t, err)

	results := make([]models.Document, 8)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			doc, err := ExtractFile(path, schema, DefaultOptions())
			results[i] = doc
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("extraction %d differs (-want +got):\n%s", i, diff)
		}
	}
}

func TestDump(t *testing.T) {
	path := saveWorkbook(t, cells{
		"C1": {"B5": "Dela Cruz", "C6": 12},
	})

	wb, err := Dump(path)
	require.NoError(t, err)
	assert.Equal(t, "pds.xlsx", wb.BookName)

	sheet, ok := wb.Sheets["C1"]
	require.True(t, ok)
	assert.Equal(t, "C1", sheet.Title)
	assert.Equal(t, "B5:C6", sheet.Dimension)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, 5, sheet.Rows[0].R)
	assert.Equal(t, models.NumberValue(12), sheet.Rows[1].C["C"])

	_, err = Dump(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}
