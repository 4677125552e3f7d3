package database

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pad2skills/backend/internal/domain/entities"
	"github.com/pad2skills/backend/internal/domain/repositories"
	"github.com/pad2skills/backend/internal/infrastructure/observability"
)

// CachedFactAdapter decorates a FactRepository with a process-wide
// immutable cache: each table is loaded once and the same slices are
// served to every session until process restart. A failed load is not
// cached, so the next request retries the source.
type CachedFactAdapter struct {
	inner   repositories.FactRepository
	metrics *observability.Metrics

	mu          sync.Mutex
	occupations []*entities.OccupationFact
	skills      []*entities.SkillFact
	training    []*entities.TrainingProgram
	loaded      map[string]bool
}

// NewCachedFactAdapter wraps a fact repository with once-per-process caching
func NewCachedFactAdapter(inner repositories.FactRepository, metrics *observability.Metrics) repositories.FactRepository {
	return &CachedFactAdapter{
		inner:   inner,
		metrics: metrics,
		loaded:  make(map[string]bool),
	}
}

// GetOccupationFacts serves the cached occupation table, loading it on first access
func (a *CachedFactAdapter) GetOccupationFacts(ctx context.Context) ([]*entities.OccupationFact, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loaded["occupations"] {
		return a.occupations, nil
	}

	start := time.Now()
	facts, err := a.inner.GetOccupationFacts(ctx)
	if err != nil {
		return nil, err
	}
	a.recordLoad(ctx, "occupations", start, len(facts))

	a.occupations = facts
	a.loaded["occupations"] = true
	return facts, nil
}

// GetSkillFacts serves the cached skill table, loading it on first access
func (a *CachedFactAdapter) GetSkillFacts(ctx context.Context) ([]*entities.SkillFact, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loaded["skills"] {
		return a.skills, nil
	}

	start := time.Now()
	facts, err := a.inner.GetSkillFacts(ctx)
	if err != nil {
		return nil, err
	}
	a.recordLoad(ctx, "skills", start, len(facts))

	a.skills = facts
	a.loaded["skills"] = true
	return facts, nil
}

// GetTrainingPrograms serves the cached training table, loading it on first access
func (a *CachedFactAdapter) GetTrainingPrograms(ctx context.Context) ([]*entities.TrainingProgram, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loaded["training"] {
		return a.training, nil
	}

	start := time.Now()
	programs, err := a.inner.GetTrainingPrograms(ctx)
	if err != nil {
		return nil, err
	}
	a.recordLoad(ctx, "training", start, len(programs))

	a.training = programs
	a.loaded["training"] = true
	return programs, nil
}

func (a *CachedFactAdapter) recordLoad(ctx context.Context, table string, start time.Time, rows int) {
	elapsed := time.Since(start)
	log.Info().
		Str("table", table).
		Int("rows", rows).
		Dur("elapsed", elapsed).
		Msg("Fact table loaded")
	if a.metrics != nil {
		observability.RecordFactLoadMetric(ctx, a.metrics, table, elapsed)
	}
}
