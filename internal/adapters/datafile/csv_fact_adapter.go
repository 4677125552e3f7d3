package datafile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pad2skills/backend/internal/domain/entities"
	"github.com/pad2skills/backend/internal/domain/repositories"
	apperrors "github.com/pad2skills/backend/pkg/errors"
	"github.com/pad2skills/backend/pkg/utils"
)

// Fact table file names within the data directory.
const (
	occupationFactsFile  = "project_occupation_data.csv"
	skillFactsFile       = "project_occupation_skill_data.csv"
	trainingProgramsFile = "training_program_bundles.csv"
)

// CSVFactAdapter implements FactRepository over CSV files. Industry
// labels are normalized at ingestion; required-column validation failures
// surface as unavailable errors, while a file with a valid header and no
// rows is an empty (valid) table.
type CSVFactAdapter struct {
	dir string
}

// NewCSVFactAdapter creates a new CSV-backed fact adapter
func NewCSVFactAdapter(dir string) repositories.FactRepository {
	return &CSVFactAdapter{dir: dir}
}

var occupationColumns = []string{
	"project_id", "project_title", "short_summary",
	"esco_id", "occupation_esco", "industry_cat_label",
	"onet_job_zone", "onet_job_zone_label", "pad_activities",
}

var skillColumns = []string{
	"project_id", "project_title", "esco_id", "occupation_esco",
	"industry_cat_label", "onet_job_zone", "onet_job_zone_label",
	"skill_category_label", "skill_label", "top_five",
}

var trainingColumns = []string{
	"program_id", "program_title", "provider",
	"skill_category_label", "prep_category", "duration_weeks", "description",
}

// GetOccupationFacts reads and validates the project-occupation table
func (a *CSVFactAdapter) GetOccupationFacts(ctx context.Context) ([]*entities.OccupationFact, error) {
	records, idx, err := a.readTable(ctx, occupationFactsFile, occupationColumns)
	if err != nil {
		return nil, err
	}

	facts := make([]*entities.OccupationFact, 0, len(records))
	for _, rec := range records {
		facts = append(facts, &entities.OccupationFact{
			ProjectID:           rec[idx["project_id"]],
			ProjectTitle:        rec[idx["project_title"]],
			ShortSummary:        rec[idx["short_summary"]],
			OccupationID:        rec[idx["esco_id"]],
			OccupationLabel:     rec[idx["occupation_esco"]],
			IndustryLabel:       utils.NormalizeIndustryLabel(rec[idx["industry_cat_label"]]),
			PrepLevelLabel:      rec[idx["onet_job_zone_label"]],
			PrepLevelOrdinal:    parseOrdinal(rec[idx["onet_job_zone"]]),
			ActivityDescription: rec[idx["pad_activities"]],
		})
	}
	return facts, nil
}

// GetSkillFacts reads and validates the project-occupation-skill table
func (a *CSVFactAdapter) GetSkillFacts(ctx context.Context) ([]*entities.SkillFact, error) {
	records, idx, err := a.readTable(ctx, skillFactsFile, skillColumns)
	if err != nil {
		return nil, err
	}

	facts := make([]*entities.SkillFact, 0, len(records))
	for _, rec := range records {
		facts = append(facts, &entities.SkillFact{
			ProjectID:          rec[idx["project_id"]],
			ProjectTitle:       rec[idx["project_title"]],
			OccupationID:       rec[idx["esco_id"]],
			OccupationLabel:    rec[idx["occupation_esco"]],
			IndustryLabel:      utils.NormalizeIndustryLabel(rec[idx["industry_cat_label"]]),
			PrepLevelLabel:     rec[idx["onet_job_zone_label"]],
			PrepLevelOrdinal:   parseOrdinal(rec[idx["onet_job_zone"]]),
			SkillCategoryLabel: rec[idx["skill_category_label"]],
			SkillLabel:         rec[idx["skill_label"]],
			TopFive:            parseBool(rec[idx["top_five"]]),
		})
	}
	return facts, nil
}

// GetTrainingPrograms reads and validates the training program table
func (a *CSVFactAdapter) GetTrainingPrograms(ctx context.Context) ([]*entities.TrainingProgram, error) {
	records, idx, err := a.readTable(ctx, trainingProgramsFile, trainingColumns)
	if err != nil {
		return nil, err
	}

	programs := make([]*entities.TrainingProgram, 0, len(records))
	for _, rec := range records {
		weeks, _ := strconv.Atoi(strings.TrimSpace(rec[idx["duration_weeks"]]))
		programs = append(programs, &entities.TrainingProgram{
			ProgramID:          rec[idx["program_id"]],
			ProgramTitle:       rec[idx["program_title"]],
			Provider:           rec[idx["provider"]],
			SkillCategoryLabel: rec[idx["skill_category_label"]],
			PrepCategory:       rec[idx["prep_category"]],
			DurationWeeks:      weeks,
			Description:        rec[idx["description"]],
		})
	}
	return programs, nil
}

// readTable opens a CSV file, validates its header against the required
// columns, and returns the data records plus a column index.
func (a *CSVFactAdapter) readTable(ctx context.Context, name string, required []string) ([][]string, map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	path := filepath.Join(a.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewUnavailableError(fmt.Sprintf("cannot open fact table %s", name), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, apperrors.NewUnavailableError(fmt.Sprintf("cannot read header of fact table %s", name), err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, apperrors.NewUnavailableError(
			fmt.Sprintf("fact table %s missing required columns: %s", name, strings.Join(missing, ", ")), nil)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, apperrors.NewUnavailableError(fmt.Sprintf("malformed row in fact table %s", name), err)
		}
		// Short rows would panic on column access; pad them out
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		records = append(records, rec)
	}

	return records, idx, nil
}

// parseOrdinal parses a job-zone value; unparseable or missing values
// yield zero, which buckets to the Unknown preparation category.
func parseOrdinal(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	// Source data sometimes carries zones as floats ("3.0")
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "t", "yes":
		return true
	}
	return false
}
