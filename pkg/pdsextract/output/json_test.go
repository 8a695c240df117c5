package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
)

func TestDocumentToJSON(t *testing.T) {
	doc := models.Document{
		"surname":    "Dela Cruz & Sons",
		"first_name": "Juan",
		"questionnaire": []models.Answer{
			{QuestionNumber: 1, Answer: true, Details: "<none>"},
		},
	}

	got, err := DocumentToJSON(doc, false)
	require.NoError(t, err)
	assert.Equal(t,
		`{"first_name":"Juan","questionnaire":[{"question_number":1,"answer":true,"details":"<none>"}],"surname":"Dela Cruz & Sons"}`,
		string(got))
}

func TestToJSON_Pretty(t *testing.T) {
	got, err := ToJSON(map[string]any{"b": 1, "a": nil}, true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": null,\n  \"b\": 1\n}", string(got))
}

func TestSheetToJSON(t *testing.T) {
	sheet := &models.SheetData{
		Title:     "C1",
		Dimension: "B5:C5",
		Rows: []models.CellRow{
			{R: 5, C: map[string]models.Value{
				"B": models.StringValue("Dela Cruz"),
				"C": models.NumberValue(45000),
			}},
		},
	}

	got, err := SheetToJSON(sheet, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"C1","dimension":"B5:C5","rows":[{"r":5,"c":{"B":"Dela Cruz","C":45000}}]}`, string(got))

	empty, err := SheetToJSON(&models.SheetData{Title: "C9"}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"C9"}`, string(empty))
}
