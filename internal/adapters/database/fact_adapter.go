package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/pad2skills/backend/internal/domain/entities"
	"github.com/pad2skills/backend/internal/domain/repositories"
	"github.com/pad2skills/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/pad2skills/backend/pkg/errors"
	"github.com/pad2skills/backend/pkg/utils"
)

// FactAdapter implements FactRepository over PostgreSQL
type FactAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFactAdapter creates a new PostgreSQL fact adapter
func NewFactAdapter(client *postgres.Client) repositories.FactRepository {
	return &FactAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetOccupationFacts retrieves the project-occupation fact table
func (a *FactAdapter) GetOccupationFacts(ctx context.Context) ([]*entities.OccupationFact, error) {
	query, args, err := a.db.Select(
		"project_id", "project_title", "short_summary",
		"occupation_id", "occupation_label", "industry_label",
		"prep_level_label", "prep_level_ordinal", "activity_description",
	).From("project_occupations").
		Order(goqu.I("project_id").Asc(), goqu.I("occupation_id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build occupation facts query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to load occupation facts", err)
	}
	defer rows.Close()

	var facts []*entities.OccupationFact
	for rows.Next() {
		fact := &entities.OccupationFact{}
		err := rows.Scan(
			&fact.ProjectID,
			&fact.ProjectTitle,
			&fact.ShortSummary,
			&fact.OccupationID,
			&fact.OccupationLabel,
			&fact.IndustryLabel,
			&fact.PrepLevelLabel,
			&fact.PrepLevelOrdinal,
			&fact.ActivityDescription,
		)
		if err != nil {
			return nil, apperrors.NewUnavailableError("failed to scan occupation fact", err)
		}
		fact.IndustryLabel = utils.NormalizeIndustryLabel(fact.IndustryLabel)
		facts = append(facts, fact)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("failed to iterate occupation facts", err)
	}

	return facts, nil
}

// GetSkillFacts retrieves the project-occupation-skill fact table
func (a *FactAdapter) GetSkillFacts(ctx context.Context) ([]*entities.SkillFact, error) {
	query, args, err := a.db.Select(
		"project_id", "project_title", "occupation_id", "occupation_label",
		"industry_label", "prep_level_label", "prep_level_ordinal",
		"skill_category_label", "skill_label", "top_five",
	).From("project_occupation_skills").
		Order(goqu.I("project_id").Asc(), goqu.I("occupation_id").Asc(), goqu.I("skill_label").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build skill facts query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to load skill facts", err)
	}
	defer rows.Close()

	var facts []*entities.SkillFact
	for rows.Next() {
		fact := &entities.SkillFact{}
		err := rows.Scan(
			&fact.ProjectID,
			&fact.ProjectTitle,
			&fact.OccupationID,
			&fact.OccupationLabel,
			&fact.IndustryLabel,
			&fact.PrepLevelLabel,
			&fact.PrepLevelOrdinal,
			&fact.SkillCategoryLabel,
			&fact.SkillLabel,
			&fact.TopFive,
		)
		if err != nil {
			return nil, apperrors.NewUnavailableError("failed to scan skill fact", err)
		}
		fact.IndustryLabel = utils.NormalizeIndustryLabel(fact.IndustryLabel)
		facts = append(facts, fact)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("failed to iterate skill facts", err)
	}

	return facts, nil
}

// GetTrainingPrograms retrieves the training program bundle table
func (a *FactAdapter) GetTrainingPrograms(ctx context.Context) ([]*entities.TrainingProgram, error) {
	query, args, err := a.db.Select(
		"program_id", "program_title", "provider",
		"skill_category_label", "prep_category", "duration_weeks", "description",
	).From("training_programs").
		Order(goqu.I("program_title").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build training programs query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to load training programs", err)
	}
	defer rows.Close()

	var programs []*entities.TrainingProgram
	for rows.Next() {
		program := &entities.TrainingProgram{}
		err := rows.Scan(
			&program.ProgramID,
			&program.ProgramTitle,
			&program.Provider,
			&program.SkillCategoryLabel,
			&program.PrepCategory,
			&program.DurationWeeks,
			&program.Description,
		)
		if err != nil {
			return nil, apperrors.NewUnavailableError("failed to scan training program", err)
		}
		programs = append(programs, program)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUnavailableError("failed to iterate training programs", err)
	}

	return programs, nil
}
