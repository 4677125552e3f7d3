package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pad2skills/backend/internal/domain/entities"
)

func occFact(project, occID, occLabel, industry string) *entities.OccupationFact {
	return &entities.OccupationFact{
		ProjectID:       project,
		ProjectTitle:    project,
		OccupationID:    occID,
		OccupationLabel: occLabel,
		IndustryLabel:   industry,
	}
}

func skillFact(project, occID, occLabel, industry, category, skill string, topFive bool) *entities.SkillFact {
	return &entities.SkillFact{
		ProjectID:          project,
		ProjectTitle:       project,
		OccupationID:       occID,
		OccupationLabel:    occLabel,
		IndustryLabel:      industry,
		SkillCategoryLabel: category,
		SkillLabel:         skill,
		TopFive:            topFive,
	}
}

func TestApplyOccupationFilters_ProjectFilter(t *testing.T) {
	svc := NewFilterService()
	facts := []*entities.OccupationFact{
		occFact("Solar Plant", "esco-1", "Electrician", "Construction"),
		occFact("Solar Plant", "esco-2", "Welder", "Manufacturing"),
		occFact("Wind Farm", "esco-3", "Technician", "Energy"),
	}

	result := svc.ApplyOccupationFilters(facts, entities.FilterSelection{
		Project:  "Solar Plant",
		Industry: entities.AllIndustries,
	})

	require.Len(t, result, 2)
	for _, f := range result {
		assert.Equal(t, "Solar Plant", f.ProjectTitle)
	}
}

func TestApplyOccupationFilters_DedupAcrossProjects(t *testing.T) {
	svc := NewFilterService()
	// esco-1 appears in two projects; under ALL it must count once
	facts := []*entities.OccupationFact{
		occFact("Solar Plant", "esco-1", "Electrician", "Construction"),
		occFact("Wind Farm", "esco-1", "Electrician", "Construction"),
		occFact("Wind Farm", "esco-2", "Technician", "Energy"),
	}

	result := svc.ApplyOccupationFilters(facts, entities.DefaultFilterSelection())

	require.Len(t, result, 2)
	seen := make(map[string]int)
	for _, f := range result {
		seen[f.OccupationID]++
	}
	assert.Equal(t, 1, seen["esco-1"])
	assert.Equal(t, 1, seen["esco-2"])
}

func TestApplyOccupationFilters_DedupIsDeterministic(t *testing.T) {
	svc := NewFilterService()
	facts := []*entities.OccupationFact{
		occFact("P1", "esco-1", "Electrician", "Construction"),
		occFact("P2", "esco-1", "Electrician", "Construction"),
		occFact("P3", "esco-1", "Electrician", "Construction"),
		occFact("P1", "esco-2", "Welder", "Manufacturing"),
		occFact("P2", "esco-2", "Welder", "Manufacturing"),
	}

	first := svc.ApplyOccupationFilters(facts, entities.DefaultFilterSelection())
	for i := 0; i < 10; i++ {
		again := svc.ApplyOccupationFilters(facts, entities.DefaultFilterSelection())
		require.Len(t, again, len(first))
		for j := range first {
			assert.Same(t, first[j], again[j], "representative rows must be stable across renders")
		}
	}
}

func TestApplyOccupationFilters_IndustryAfterDedup(t *testing.T) {
	svc := NewFilterService()
	facts := []*entities.OccupationFact{
		occFact("P1", "esco-1", "Electrician", "Construction"),
		occFact("P2", "esco-2", "Welder", "Manufacturing"),
	}

	result := svc.ApplyOccupationFilters(facts, entities.FilterSelection{
		Project:  entities.AllProjects,
		Industry: "Manufacturing",
	})

	require.Len(t, result, 1)
	assert.Equal(t, "esco-2", result[0].OccupationID)
}

func TestApplyOccupationFilters_Idempotent(t *testing.T) {
	svc := NewFilterService()
	facts := []*entities.OccupationFact{
		occFact("P1", "esco-1", "Electrician", "Construction"),
		occFact("P1", "esco-2", "Welder", "Manufacturing"),
	}
	sel := entities.FilterSelection{Project: "P1", Industry: "Construction"}

	once := svc.ApplyOccupationFilters(facts, sel)
	twice := svc.ApplyOccupationFilters(once, sel)
	assert.Equal(t, once, twice)
}

func TestApplySkillFilters(t *testing.T) {
	svc := NewFilterService()
	facts := []*entities.SkillFact{
		skillFact("P1", "esco-1", "Electrician", "Construction", "Technical", "Wiring", true),
		skillFact("P1", "esco-1", "Electrician", "Construction", "Safety", "Protocols", false),
		skillFact("P2", "esco-2", "Welder", "Manufacturing", "Technical", "Welding", true),
	}

	tests := []struct {
		name string
		sel  entities.FilterSelection
		want int
	}{
		{"all rows", entities.DefaultFilterSelection(), 3},
		{"project narrows", entities.FilterSelection{Project: "P1", Industry: entities.AllIndustries}, 2},
		{"industry narrows", entities.FilterSelection{Project: entities.AllProjects, Industry: "Manufacturing"}, 1},
		{"top five narrows", entities.FilterSelection{Project: entities.AllProjects, Industry: entities.AllIndustries, TopFiveOnly: true}, 2},
		{"conjunction", entities.FilterSelection{Project: "P1", Industry: "Construction", TopFiveOnly: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, svc.ApplySkillFilters(facts, tt.sel), tt.want)
		})
	}
}

func TestApplySkillFilters_KeepsFullGrain(t *testing.T) {
	svc := NewFilterService()
	// The same (occupation, skill) pair under two projects stays twice:
	// the heatmap consumes the full grain
	facts := []*entities.SkillFact{
		skillFact("P1", "esco-1", "Electrician", "Construction", "Technical", "Wiring", false),
		skillFact("P2", "esco-1", "Electrician", "Construction", "Technical", "Wiring", false),
	}

	result := svc.ApplySkillFilters(facts, entities.DefaultFilterSelection())
	assert.Len(t, result, 2)
}

func TestDedupSkillPairs(t *testing.T) {
	facts := []*entities.SkillFact{
		skillFact("P1", "esco-1", "Electrician", "Construction", "Technical", "Wiring", false),
		skillFact("P2", "esco-1", "Electrician", "Construction", "Technical", "Wiring", false),
		skillFact("P1", "esco-1", "Electrician", "Construction", "Safety", "Protocols", false),
	}

	result := DedupSkillPairs(facts)

	require.Len(t, result, 2)
	// First occurrence wins
	assert.Equal(t, "P1", result[0].ProjectTitle)
	assert.Equal(t, "Wiring", result[0].SkillLabel)
	assert.Equal(t, "Protocols", result[1].SkillLabel)
}

func TestNormalizeSelection(t *testing.T) {
	svc := NewFilterService()
	facts := []*entities.OccupationFact{
		occFact("Solar Plant", "esco-1", "Electrician", "Construction"),
		occFact("Wind Farm", "esco-2", "Technician", "Energy"),
	}

	t.Run("valid industry kept", func(t *testing.T) {
		sel := svc.NormalizeSelection(facts, entities.FilterSelection{Project: "Solar Plant", Industry: "Construction"})
		assert.Equal(t, "Construction", sel.Industry)
	})

	t.Run("stale industry degrades to all", func(t *testing.T) {
		// Energy exists in the data but not under Solar Plant
		sel := svc.NormalizeSelection(facts, entities.FilterSelection{Project: "Solar Plant", Industry: "Energy"})
		assert.Equal(t, entities.AllIndustries, sel.Industry)
	})

	t.Run("all industries untouched", func(t *testing.T) {
		sel := svc.NormalizeSelection(facts, entities.FilterSelection{Project: "Solar Plant", Industry: entities.AllIndustries})
		assert.Equal(t, entities.AllIndustries, sel.Industry)
	})
}

func TestIndustriesFor(t *testing.T) {
	svc := NewFilterService()
	facts := []*entities.OccupationFact{
		occFact("P1", "esco-1", "Electrician", "Construction"),
		occFact("P1", "esco-2", "Welder", "Manufacturing"),
		occFact("P1", "esco-3", "Foreman", "Construction"),
		occFact("P2", "esco-4", "Technician", "Energy"),
	}

	industries := svc.IndustriesFor(facts, entities.FilterSelection{Project: "P1", Industry: entities.AllIndustries})
	assert.Equal(t, []string{"Construction", "Manufacturing"}, industries)

	all := svc.IndustriesFor(facts, entities.DefaultFilterSelection())
	assert.Equal(t, []string{"Construction", "Energy", "Manufacturing"}, all)
}
