package entities

// OccupationFact is one row of the project-occupation fact table: an
// occupation required by one appraisal project, tagged with its industry
// and standardized preparation level. Rows are immutable for the lifetime
// of the process once loaded.
type OccupationFact struct {
	ProjectID           string `json:"project_id" db:"project_id"`
	ProjectTitle        string `json:"project_title" db:"project_title"`
	ShortSummary        string `json:"short_summary" db:"short_summary"`
	OccupationID        string `json:"occupation_id" db:"occupation_id"`
	OccupationLabel     string `json:"occupation_label" db:"occupation_label"`
	IndustryLabel       string `json:"industry_label" db:"industry_label"`
	PrepLevelLabel      string `json:"prep_level_label" db:"prep_level_label"`
	PrepLevelOrdinal    int    `json:"prep_level_ordinal" db:"prep_level_ordinal"`
	ActivityDescription string `json:"activity_description" db:"activity_description"`
}

// PrepCategory returns the preparation bucket for this fact's ordinal.
func (f *OccupationFact) PrepCategory() PrepCategory {
	return PrepCategoryFromOrdinal(f.PrepLevelOrdinal)
}

// Project is a distinct appraisal project with its summary, derived from
// the occupation fact table for the project selector.
type Project struct {
	ProjectID    string `json:"project_id"`
	ProjectTitle string `json:"project_title"`
	ShortSummary string `json:"short_summary"`
}
