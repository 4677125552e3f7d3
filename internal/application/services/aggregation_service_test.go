package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pad2skills/backend/internal/domain/entities"
)

func prepSkillFact(occID, industry, category string, ordinal int) *entities.SkillFact {
	return &entities.SkillFact{
		ProjectID:          "P1",
		ProjectTitle:       "P1",
		OccupationID:       occID,
		OccupationLabel:    occID,
		IndustryLabel:      industry,
		PrepLevelOrdinal:   ordinal,
		SkillCategoryLabel: category,
		SkillLabel:         category + " skill",
	}
}

func TestAggregateByIndustry_CountsDistinctOccupations(t *testing.T) {
	svc := NewAggregationService()
	facts := []*entities.OccupationFact{
		occFact("P1", "esco-1", "Electrician", "Construction"),
		occFact("P2", "esco-1", "Electrician", "Construction"),
		occFact("P1", "esco-2", "Foreman", "Construction"),
		occFact("P1", "esco-3", "Welder", "Manufacturing"),
	}

	result := svc.AggregateByIndustry(facts)

	require.Len(t, result, 2)
	assert.Equal(t, "Construction", result[0].IndustryLabel)
	assert.Equal(t, 2, result[0].OccupationCount, "esco-1 in two projects counts once")
	assert.Equal(t, 1, result[1].OccupationCount)
}

func TestAggregateByIndustry_RankAndTieBreak(t *testing.T) {
	svc := NewAggregationService()
	facts := []*entities.OccupationFact{
		occFact("P1", "esco-1", "A", "Energy"),
		occFact("P1", "esco-2", "B", "Energy"),
		occFact("P1", "esco-3", "C", "Manufacturing"),
		occFact("P1", "esco-4", "D", "Construction"),
	}

	result := svc.AggregateByIndustry(facts)

	require.Len(t, result, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{result[0].Rank, result[1].Rank, result[2].Rank})
	assert.Equal(t, "Energy", result[0].IndustryLabel)
	// Tied counts order by label ascending
	assert.Equal(t, "Construction", result[1].IndustryLabel)
	assert.Equal(t, "Manufacturing", result[2].IndustryLabel)
}

func TestAggregateByIndustry_SharesSumToRoughly100(t *testing.T) {
	svc := NewAggregationService()
	facts := []*entities.OccupationFact{
		occFact("P1", "esco-1", "A", "Energy"),
		occFact("P1", "esco-2", "B", "Energy"),
		occFact("P1", "esco-3", "C", "Manufacturing"),
		occFact("P1", "esco-4", "D", "Construction"),
		occFact("P1", "esco-5", "E", "Construction"),
		occFact("P1", "esco-6", "F", "Construction"),
	}

	result := svc.AggregateByIndustry(facts)

	var sum float64
	var counted int
	for _, a := range result {
		sum += a.SharePercent
		counted += a.OccupationCount
	}
	assert.Equal(t, 6, counted, "every occupation lands in exactly one segment")
	assert.InDelta(t, 100.0, sum, 0.5)
}

func TestAggregateByIndustry_Empty(t *testing.T) {
	svc := NewAggregationService()
	assert.Empty(t, svc.AggregateByIndustry(nil))
}

func TestAggregateByIndustry_ShortensDisplayLabel(t *testing.T) {
	svc := NewAggregationService()
	long := "Professional, scientific and technical activities"
	facts := []*entities.OccupationFact{occFact("P1", "esco-1", "A", long)}

	result := svc.AggregateByIndustry(facts)

	require.Len(t, result, 1)
	assert.Equal(t, long, result[0].IndustryLabel)
	assert.Len(t, []rune(result[0].DisplayLabel), 29)
}

func TestAggregateHeatmap_ColumnPercentagesSumTo100(t *testing.T) {
	svc := NewAggregationService()
	facts := []*entities.SkillFact{
		prepSkillFact("esco-1", "Construction", "Technical", 2),
		prepSkillFact("esco-2", "Construction", "Safety", 2),
		prepSkillFact("esco-3", "Construction", "Technical", 2),
		prepSkillFact("esco-4", "Energy", "Technical", 3),
		prepSkillFact("esco-5", "Energy", "Cognitive", 5),
	}

	grid := svc.AggregateHeatmap(facts)

	require.Equal(t, []string{"Low (1-2)", "Medium (3)", "High (4-5)"}, grid.Columns)
	for col := range grid.Columns {
		var sum float64
		var count int
		for row := range grid.Rows {
			sum += grid.Cells[row][col].Percent
			count += grid.Cells[row][col].Count
		}
		if count > 0 {
			assert.InDelta(t, 100.0, sum, 0.1, "column %s", grid.Columns[col])
		}
	}
}

func TestAggregateHeatmap_ZeroFillsAbsentCombinations(t *testing.T) {
	svc := NewAggregationService()
	facts := []*entities.SkillFact{
		prepSkillFact("esco-1", "Construction", "Technical", 1),
		prepSkillFact("esco-2", "Construction", "Safety", 4),
	}

	grid := svc.AggregateHeatmap(facts)

	require.Equal(t, []string{"Safety", "Technical"}, grid.Rows)
	require.Len(t, grid.Cells, 2)
	for _, row := range grid.Cells {
		require.Len(t, row, 3, "grid must be rectangular")
	}
	// Safety has no Low rows, Technical has no High rows
	assert.Equal(t, 0, grid.Cells[0][0].Count)
	assert.Equal(t, 1, grid.Cells[0][2].Count)
	assert.Equal(t, 1, grid.Cells[1][0].Count)
	assert.Equal(t, 0, grid.Cells[1][2].Count)
}

func TestAggregateHeatmap_UnknownColumnOnlyWhenPresent(t *testing.T) {
	svc := NewAggregationService()

	withoutUnknown := svc.AggregateHeatmap([]*entities.SkillFact{
		prepSkillFact("esco-1", "Construction", "Technical", 3),
	})
	assert.Len(t, withoutUnknown.Columns, 3)

	withUnknown := svc.AggregateHeatmap([]*entities.SkillFact{
		prepSkillFact("esco-1", "Construction", "Technical", 3),
		prepSkillFact("esco-2", "Construction", "Technical", 0),
	})
	require.Len(t, withUnknown.Columns, 4)
	assert.Equal(t, "Unknown", withUnknown.Columns[3])
}

func TestAggregateHeatmap_KeepsFullGrainCounts(t *testing.T) {
	svc := NewAggregationService()
	// The same pair under two projects counts twice in the heatmap
	facts := []*entities.SkillFact{
		prepSkillFact("esco-1", "Construction", "Technical", 2),
		prepSkillFact("esco-1", "Construction", "Technical", 2),
	}
	facts[1].ProjectTitle = "P2"

	grid := svc.AggregateHeatmap(facts)

	require.Equal(t, []string{"Technical"}, grid.Rows)
	assert.Equal(t, 2, grid.Cells[0][0].Count)
}

func TestAggregateHeatmap_ShortensRowDisplay(t *testing.T) {
	svc := NewAggregationService()
	long := "Working with machinery and specialised equipment"
	grid := svc.AggregateHeatmap([]*entities.SkillFact{
		prepSkillFact("esco-1", "Construction", long, 3),
	})

	require.Len(t, grid.RowDisplay, 1)
	assert.Equal(t, long, grid.Rows[0])
	assert.Len(t, []rune(grid.RowDisplay[0]), 19)
}
