package parser

import (
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
)

// Questionnaire returns exactly one answer per question, blank or not,
// since "No" is meaningful. A question without a details cell has "".
func (r Resolver) Questionnaire(questions []mapping.Question) []models.Answer {
	out := make([]models.Answer, 0, len(questions))
	for _, q := range questions {
		answer, _ := r.Caster.Cast(r.cell(q.AnswerCell, q.Sheet), mapping.TypeBoolean).(bool)

		details := ""
		if q.DetailsCell.Row > 0 {
			details = r.Caster.CastString(r.cell(q.DetailsCell, q.Sheet))
		}

		out = append(out, models.Answer{
			QuestionNumber: q.Number,
			Answer:         answer,
			Details:        details,
		})
	}
	return out
}
