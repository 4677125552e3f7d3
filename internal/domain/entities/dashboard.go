package entities

// IndustryAggregate is one donut-chart row: an industry with its distinct
// occupation count, 1-based rank, and share of the total. Ordering is
// descending by count with ties broken by ascending label, so repeated
// renders never reorder tied groups.
type IndustryAggregate struct {
	IndustryLabel   string  `json:"industry_label"`
	DisplayLabel    string  `json:"display_label"`
	OccupationCount int     `json:"occupation_count"`
	Rank            int     `json:"rank"`
	SharePercent    float64 `json:"share_percent"`
}

// HeatmapCell is one cell of the preparation-by-skill-category grid.
// Percent is normalized within the cell's preparation column.
type HeatmapCell struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// HeatmapGrid is the rectangular skill-concentration grid. Columns are
// preparation categories in fixed Low/Medium/High order (Unknown appended
// only when present); Rows are skill category labels sorted ascending.
// Cells is indexed [row][column] and zero-filled for absent combinations.
type HeatmapGrid struct {
	Columns    []string        `json:"columns"`
	Rows       []string        `json:"rows"`
	RowDisplay []string        `json:"row_display"`
	Cells      [][]HeatmapCell `json:"cells"`
}

// DetailPage is one page of a detail table plus the pagination facts the
// presentation needs to render navigation.
type DetailPage struct {
	TableID    TableID    `json:"table_id"`
	Columns    []string   `json:"columns"`
	Rows       [][]string `json:"rows"`
	PageIndex  int        `json:"page_index"`
	TotalPages int        `json:"total_pages"`
	TotalRows  int        `json:"total_rows"`
}

// DetailTable is a full filtered, sorted detail result before pagination.
// Export serializes all of it; DetailPage slices it.
type DetailTable struct {
	TableID TableID
	Columns []string
	Rows    [][]string
}

// DashboardView is the refreshed client-visible state returned by every
// mutating interaction.
type DashboardView struct {
	Greeting     string                      `json:"greeting"`
	Filters      FilterSelection             `json:"filters"`
	SkillFilters SkillTableFilters           `json:"skill_filters"`
	Pages        map[TableID]PaginationState `json:"pages"`
	Transcript   []ChatMessage               `json:"transcript"`
}
