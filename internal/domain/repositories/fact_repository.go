package repositories

import (
	"context"

	"github.com/pad2skills/backend/internal/domain/entities"
)

// FactRepository defines the read contract of the fact table provider.
// A loaded empty table is a valid state; a source that cannot be loaded
// or fails required-column validation yields an Unavailable error. The
// returned slices are immutable for the lifetime of the process and must
// not be mutated by callers.
type FactRepository interface {
	// GetOccupationFacts retrieves the project-occupation fact table
	GetOccupationFacts(ctx context.Context) ([]*entities.OccupationFact, error)

	// GetSkillFacts retrieves the project-occupation-skill fact table
	GetSkillFacts(ctx context.Context) ([]*entities.SkillFact, error)

	// GetTrainingPrograms retrieves the training program bundle table
	GetTrainingPrograms(ctx context.Context) ([]*entities.TrainingProgram, error)
}
