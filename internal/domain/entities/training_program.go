package entities

// TrainingProgram is one row of the training program bundle table: a
// program that builds skills in a category at a given preparation level.
type TrainingProgram struct {
	ProgramID          string `json:"program_id" db:"program_id"`
	ProgramTitle       string `json:"program_title" db:"program_title"`
	Provider           string `json:"provider" db:"provider"`
	SkillCategoryLabel string `json:"skill_category_label" db:"skill_category_label"`
	PrepCategory       string `json:"prep_category" db:"prep_category"`
	DurationWeeks      int    `json:"duration_weeks" db:"duration_weeks"`
	Description        string `json:"description" db:"description"`
}
