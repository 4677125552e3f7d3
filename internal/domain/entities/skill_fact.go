package entities

// SkillFact extends the occupation grain with one skill attached to the
// occupation within a project. Multiple skill rows share the same
// (project, occupation) pair.
type SkillFact struct {
	ProjectID          string `json:"project_id" db:"project_id"`
	ProjectTitle       string `json:"project_title" db:"project_title"`
	OccupationID       string `json:"occupation_id" db:"occupation_id"`
	OccupationLabel    string `json:"occupation_label" db:"occupation_label"`
	IndustryLabel      string `json:"industry_label" db:"industry_label"`
	PrepLevelLabel     string `json:"prep_level_label" db:"prep_level_label"`
	PrepLevelOrdinal   int    `json:"prep_level_ordinal" db:"prep_level_ordinal"`
	SkillCategoryLabel string `json:"skill_category_label" db:"skill_category_label"`
	SkillLabel         string `json:"skill_label" db:"skill_label"`
	// TopFive marks a skill among the five most salient for the
	// occupation. It is a property of the (occupation, skill) pair,
	// not of the project.
	TopFive bool `json:"top_five" db:"top_five"`
}

// PrepCategory returns the preparation bucket for this fact's ordinal.
func (f *SkillFact) PrepCategory() PrepCategory {
	return PrepCategoryFromOrdinal(f.PrepLevelOrdinal)
}
