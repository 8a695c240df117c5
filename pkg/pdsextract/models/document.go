package models

// Top-level section keys of an extracted document.
const (
	SectionFamilyBackground        = "family_background"
	SectionChildren                = "children"
	SectionEducationalBackground   = "educational_background"
	SectionCivilServiceEligibility = "civil_service_eligibility"
	SectionWorkExperience          = "work_experience"
	SectionVoluntaryWork           = "voluntary_work"
	SectionLearningDevelopment     = "learning_development"
	SectionReferences              = "references"
	SectionOtherInformation        = "other_information"
	SectionQuestionnaire           = "questionnaire"
)

// TableSections lists the repeating-table sections in assembly order.
var TableSections = []string{
	SectionChildren,
	SectionEducationalBackground,
	SectionCivilServiceEligibility,
	SectionWorkExperience,
	SectionVoluntaryWork,
	SectionLearningDevelopment,
}

// IsSection reports whether key names a document section rather than a
// scalar field.
func IsSection(key string) bool {
	switch key {
	case SectionFamilyBackground, SectionReferences, SectionOtherInformation, SectionQuestionnaire:
		return true
	}
	for _, s := range TableSections {
		if s == key {
			return true
		}
	}
	return false
}

// Document is an extracted form. Every key is optional; absence means the
// source form had no data for it.
type Document map[string]any

// Record is one row of a table section or one family member.
// A nil value means the cell was blank or could not be cast.
type Record map[string]any

// Reference is a normalised character reference.
type Reference struct {
	Fullname    string `json:"fullname"`
	Address     string `json:"address"`
	TelephoneNo string `json:"telephone_no"`
}

// Answer is one questionnaire item.
type Answer struct {
	QuestionNumber int    `json:"question_number"`
	Answer         bool   `json:"answer"`
	Details        string `json:"details"`
}
