package entities

import "time"

// AllProjects is the project filter value that selects every project.
const AllProjects = "ALL"

// AllIndustries is the industry filter value that selects every industry.
// The presentation layer may also send "All Industries"; handlers normalize
// it before storing.
const AllIndustries = "ALL"

// TableID identifies one detail table. Each table owns an independent
// pagination state within a session.
type TableID string

const (
	TableOccupations TableID = "occupations"
	TableSkills      TableID = "skills"
	TableTraining    TableID = "training"
)

// IsValid reports whether the table id names a known detail table.
func (t TableID) IsValid() bool {
	switch t {
	case TableOccupations, TableSkills, TableTraining:
		return true
	}
	return false
}

// FilterSelection holds the user's current cross-filter choices. Mutated
// only by explicit user selection; a stale industry (absent from the rows
// surviving the project filter) degrades to AllIndustries instead of
// producing an empty view the user never asked for.
type FilterSelection struct {
	Project     string `json:"project"`
	Industry    string `json:"industry"`
	TopFiveOnly bool   `json:"top_five_only"`
}

// DefaultFilterSelection returns the session-start selection.
func DefaultFilterSelection() FilterSelection {
	return FilterSelection{
		Project:  AllProjects,
		Industry: AllIndustries,
	}
}

// AllProjectsSelected reports whether the project filter passes everything.
func (s FilterSelection) AllProjectsSelected() bool {
	return s.Project == "" || s.Project == AllProjects
}

// AllIndustriesSelected reports whether the industry filter passes everything.
func (s FilterSelection) AllIndustriesSelected() bool {
	return s.Industry == "" || s.Industry == AllIndustries
}

// SkillTableFilters are the extra table-local filters of the skills detail
// table. Empty values pass everything. They narrow only the detail table
// and its export, never the heatmap.
type SkillTableFilters struct {
	PrepLevelLabel string `json:"prep_level_label,omitempty"`
	SkillCategory  string `json:"skill_category,omitempty"`
}

// PaginationState is the cursor of one detail table. PageIndex is always
// re-derived against the current filtered row count before rendering, so
// it can never be left out of bounds.
type PaginationState struct {
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// SessionState is the complete per-session state: filters, per-table
// pagination cursors, and the chat transcript. One interaction is
// processed at a time per session; each interaction either fully commits
// its changes or leaves the state untouched.
type SessionState struct {
	ID           string                      `json:"id"`
	Filters      FilterSelection             `json:"filters"`
	SkillFilters SkillTableFilters           `json:"skill_filters"`
	Pages        map[TableID]PaginationState `json:"pages"`
	Transcript   []ChatMessage               `json:"transcript"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// NewSessionState creates a session with documented defaults: ALL filters,
// page zero everywhere, empty transcript.
func NewSessionState(id string) *SessionState {
	now := time.Now().UTC()
	return &SessionState{
		ID:        id,
		Filters:   DefaultFilterSelection(),
		Pages:     make(map[TableID]PaginationState),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Page returns the pagination state for a table, lazily initialized to
// page zero with the given page size.
func (s *SessionState) Page(table TableID, pageSize int) PaginationState {
	if p, ok := s.Pages[table]; ok {
		if p.PageSize == 0 {
			p.PageSize = pageSize
		}
		return p
	}
	return PaginationState{PageIndex: 0, PageSize: pageSize}
}

// SetPage stores a table's pagination state.
func (s *SessionState) SetPage(table TableID, p PaginationState) {
	if s.Pages == nil {
		s.Pages = make(map[TableID]PaginationState)
	}
	s.Pages[table] = p
}

// Clone returns a deep copy. Interactions mutate a clone and commit it
// back whole, so a failed interaction never leaves partial state.
func (s *SessionState) Clone() *SessionState {
	cp := *s
	cp.Pages = make(map[TableID]PaginationState, len(s.Pages))
	for k, v := range s.Pages {
		cp.Pages[k] = v
	}
	cp.Transcript = make([]ChatMessage, len(s.Transcript))
	copy(cp.Transcript, s.Transcript)
	return &cp
}

// AppendExchange appends a user entry and its assistant reply as one
// atomic unit, keeping the every-user-entry-followed-by-one-assistant-entry
// shape of the transcript.
func (s *SessionState) AppendExchange(userText, assistantText string) {
	s.Transcript = append(s.Transcript,
		ChatMessage{Role: RoleUser, Content: userText},
		ChatMessage{Role: RoleAssistant, Content: assistantText},
	)
}
