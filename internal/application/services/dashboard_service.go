package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"math/rand"
	"sort"
	"strconv"

	"github.com/pad2skills/backend/internal/domain/entities"
	"github.com/pad2skills/backend/internal/domain/repositories"
	apperrors "github.com/pad2skills/backend/pkg/errors"
	"github.com/pad2skills/backend/pkg/utils"
)

// SampleSeed fixes the example-rows sample so the panel is stable across
// renders, mirroring the deterministic dedup sample.
const SampleSeed = 42

// Display column headers, also used verbatim as CSV header rows.
var (
	occupationColumns = []string{"Industry", "Occupation (ESCO)", "Preparation Level (O*NET)", "Example PAD Activities"}
	skillColumns      = []string{"Occupation (ESCO)", "Preparation Level (O*NET)", "Skill Category", "Skill"}
	trainingColumns   = []string{"Program", "Provider", "Skill Category", "Preparation Level", "Duration (weeks)", "Description"}
)

// Export file names per detail table.
var exportFileNames = map[entities.TableID]string{
	entities.TableOccupations: "occupations_details.csv",
	entities.TableSkills:      "skills_details_filtered.csv",
	entities.TableTraining:    "training_programs.csv",
}

// DashboardService derives every client-visible view model from the fact
// tables: chart aggregates, paginated detail tables, samples, and CSV
// exports. It holds no mutable state; per-session state lives in the
// SessionStore.
type DashboardService struct {
	facts      repositories.FactRepository
	filters    *FilterService
	agg        *AggregationService
	pageSize   int
	sampleSize int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(facts repositories.FactRepository, filters *FilterService, agg *AggregationService, pageSize, sampleSize int) *DashboardService {
	if pageSize <= 0 {
		pageSize = 10
	}
	if sampleSize <= 0 {
		sampleSize = 3
	}
	return &DashboardService{
		facts:      facts,
		filters:    filters,
		agg:        agg,
		pageSize:   pageSize,
		sampleSize: sampleSize,
	}
}

// PageSize returns the fixed rows-per-page of the detail tables.
func (s *DashboardService) PageSize() int {
	return s.pageSize
}

// Projects lists the distinct projects sorted by title, for the project
// selector and its info dialog.
func (s *DashboardService) Projects(ctx context.Context) ([]entities.Project, error) {
	facts, err := s.facts.GetOccupationFacts(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var projects []entities.Project
	for _, f := range facts {
		if _, ok := seen[f.ProjectTitle]; ok {
			continue
		}
		seen[f.ProjectTitle] = struct{}{}
		projects = append(projects, entities.Project{
			ProjectID:    f.ProjectID,
			ProjectTitle: f.ProjectTitle,
			ShortSummary: f.ShortSummary,
		})
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ProjectTitle < projects[j].ProjectTitle
	})
	return projects, nil
}

// Industries lists the industry options surviving the selection's project
// filter, sorted ascending.
func (s *DashboardService) Industries(ctx context.Context, sel entities.FilterSelection) ([]string, error) {
	facts, err := s.facts.GetOccupationFacts(ctx)
	if err != nil {
		return nil, err
	}
	return s.filters.IndustriesFor(facts, sel), nil
}

/// IndustryChart returns the donut aggregate: distinct occupation counts
// by industry under the selection's project filter. The industry filter
// deliberately does not narrow the chart; it narrows the detail tables
// below it while the donut keeps showing the whole distribution.
func (s *DashboardService) IndustryChart(ctx context.Context, sel entities.FilterSelection) ([]entities.IndustryAggregate, error) {
	facts, err := s.facts.GetOccupationFacts(ctx)
	if err != nil {
		return nil, err
	}
	chartSel := sel
	chartSel.Industry = entities.AllIndustries
	return s.agg.AggregateByIndustry(s.filters.ApplyOccupationFilters(facts, chartSel)), nil
}

// Heatmap returns the skill-concentration grid under the full selection.
func (s *DashboardService) Heatmap(ctx context.Context, sel entities.FilterSelection) (*entities.HeatmapGrid, error) {
	facts, err := s.facts.GetSkillFacts(ctx)
	if err != nil {
		return nil, err
	}
	return s.agg.AggregateHeatmap(s.filters.ApplySkillFilters(facts, sel)), nil
}

// DetailTable builds the full filtered, sorted detail result for a table.
// Zero surviving rows is a valid empty result, not an error.
func (s *DashboardService) DetailTable(ctx context.Context, table entities.TableID, sel entities.FilterSelection, skillFilters entities.SkillTableFilters) (*entities.DetailTable, error) {
	switch table {
	case entities.TableOccupations:
		return s.occupationTable(ctx, sel)
	case entities.TableSkills:
		return s.skillTable(ctx, sel, skillFilters)
	case entities.TableTraining:
		return s.trainingTable(ctx)
	default:
		return nil, apperrors.NewValidationError("unknown detail table: " + string(table))
	}
}

// DetailPage slices one page out of a detail table. The page index is
// re-clamped against the current row count, so a stale cursor lands on
// page zero instead of out of bounds.
func (s *DashboardService) DetailPage(ctx context.Context, table entities.TableID, sel entities.FilterSelection, skillFilters entities.SkillTableFilters, pageIndex int) (*entities.DetailPage, error) {
	full, err := s.DetailTable(ctx, table, sel, skillFilters)
	if err != nil {
		return nil, err
	}

	totalRows := len(full.Rows)
	totalPages := TotalPages(totalRows, s.pageSize)
	pageIndex = ClampPage(pageIndex, totalPages)
	start, end := PageBounds(pageIndex, s.pageSize, totalRows)

	return &entities.DetailPage{
		TableID:    table,
		Columns:    full.Columns,
		Rows:       full.Rows[start:end],
		PageIndex:  pageIndex,
		TotalPages: totalPages,
		TotalRows:  totalRows,
	}, nil
}

// Sample returns a small deterministic sample of a detail table for the
// example-rows panel.
func (s *DashboardService) Sample(ctx context.Context, table entities.TableID, sel entities.FilterSelection, skillFilters entities.SkillTableFilters) (*entities.DetailTable, error) {
	full, err := s.DetailTable(ctx, table, sel, skillFilters)
	if err != nil {
		return nil, err
	}

	n := s.sampleSize
	if n > len(full.Rows) {
		n = len(full.Rows)
	}

	rng := rand.New(rand.NewSource(SampleSeed))
	picked := rng.Perm(len(full.Rows))[:n]
	sort.Ints(picked)

	rows := make([][]string, 0, n)
	for _, i := range picked {
		rows = append(rows, full.Rows[i])
	}
	return &entities.DetailTable{TableID: table, Columns: full.Columns, Rows: rows}, nil
}

// ExportCSV serializes a detail table's full filtered result: header row
// of display labels, then every row, standard CSV quoting only. Returns
// the bytes and the download file name.
func (s *DashboardService) ExportCSV(ctx context.Context, table entities.TableID, sel entities.FilterSelection, skillFilters entities.SkillTableFilters) ([]byte, string, error) {
	full, err := s.DetailTable(ctx, table, sel, skillFilters)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(full.Columns); err != nil {
		return nil, "", apperrors.NewInternalError("failed to write CSV header", err)
	}
	for _, row := range full.Rows {
		if err := w.Write(row); err != nil {
			return nil, "", apperrors.NewInternalError("failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", apperrors.NewInternalError("failed to flush CSV", err)
	}
	return buf.Bytes(), exportFileNames[table], nil
}

func (s *DashboardService) occupationTable(ctx context.Context, sel entities.FilterSelection) (*entities.DetailTable, error) {
	facts, err := s.facts.GetOccupationFacts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := s.filters.ApplyOccupationFilters(facts, sel)
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].IndustryLabel != filtered[j].IndustryLabel {
			return filtered[i].IndustryLabel < filtered[j].IndustryLabel
		}
		return filtered[i].OccupationLabel < filtered[j].OccupationLabel
	})

	rows := make([][]string, 0, len(filtered))
	for _, f := range filtered {
		rows = append(rows, []string{
			utils.ShortenLabel(f.IndustryLabel, utils.IndustryDisplayMax),
			f.OccupationLabel,
			f.PrepLevelLabel,
			f.ActivityDescription,
		})
	}
	return &entities.DetailTable{TableID: entities.TableOccupations, Columns: occupationColumns, Rows: rows}, nil
}

func (s *DashboardService) skillTable(ctx context.Context, sel entities.FilterSelection, skillFilters entities.SkillTableFilters) (*entities.DetailTable, error) {
	facts, err := s.facts.GetSkillFacts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := DedupSkillPairs(s.filters.ApplySkillFilters(facts, sel))

	// Table-local filters narrow only this table, never the heatmap
	if skillFilters.PrepLevelLabel != "" {
		filtered = filterSkills(filtered, func(f *entities.SkillFact) bool {
			return f.PrepLevelLabel == skillFilters.PrepLevelLabel
		})
	}
	if skillFilters.SkillCategory != "" {
		filtered = filterSkills(filtered, func(f *entities.SkillFact) bool {
			return f.SkillCategoryLabel == skillFilters.SkillCategory
		})
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		ri, rj := prepRank(filtered[i].PrepCategory()), prepRank(filtered[j].PrepCategory())
		if ri != rj {
			return ri < rj
		}
		if filtered[i].SkillCategoryLabel != filtered[j].SkillCategoryLabel {
			return filtered[i].SkillCategoryLabel < filtered[j].SkillCategoryLabel
		}
		return filtered[i].OccupationLabel < filtered[j].OccupationLabel
	})

	rows := make([][]string, 0, len(filtered))
	for _, f := range filtered {
		rows = append(rows, []string{
			f.OccupationLabel,
			f.PrepLevelLabel,
			f.SkillCategoryLabel,
			f.SkillLabel,
		})
	}
	return &entities.DetailTable{TableID: entities.TableSkills, Columns: skillColumns, Rows: rows}, nil
}

func (s *DashboardService) trainingTable(ctx context.Context) (*entities.DetailTable, error) {
	programs, err := s.facts.GetTrainingPrograms(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]*entities.TrainingProgram, len(programs))
	copy(sorted, programs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProgramTitle < sorted[j].ProgramTitle
	})

	rows := make([][]string, 0, len(sorted))
	for _, p := range sorted {
		rows = append(rows, []string{
			p.ProgramTitle,
			p.Provider,
			p.SkillCategoryLabel,
			p.PrepCategory,
			strconv.Itoa(p.DurationWeeks),
			p.Description,
		})
	}
	return &entities.DetailTable{TableID: entities.TableTraining, Columns: trainingColumns, Rows: rows}, nil
}

func filterSkills(facts []*entities.SkillFact, keep func(*entities.SkillFact) bool) []*entities.SkillFact {
	result := facts[:0:0]
	for _, f := range facts {
		if keep(f) {
			result = append(result, f)
		}
	}
	return result
}

func prepRank(c entities.PrepCategory) int {
	switch c {
	case entities.PrepLow:
		return 0
	case entities.PrepMedium:
		return 1
	case entities.PrepHigh:
		return 2
	default:
		return 3
	}
}
