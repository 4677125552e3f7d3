package services

import (
	"math"
	"sort"

	"github.com/pad2skills/backend/internal/domain/entities"
	"github.com/pad2skills/backend/pkg/utils"
)

// AggregationService derives the chart-ready aggregates from filtered
// fact rows. All computations are pure and deterministic.
type AggregationService struct{}

// NewAggregationService creates a new aggregation service
func NewAggregationService() *AggregationService {
	return &AggregationService{}
}

// AggregateByIndustry groups occupation facts by industry and counts
// distinct occupation ids per group. Ordering is descending by count with
// ties broken by ascending label; Rank is the 1-based position in that
// ordering and SharePercent is the group's share of the summed counts
// rounded to one decimal (rounded shares need not sum to exactly 100).
func (s *AggregationService) AggregateByIndustry(facts []*entities.OccupationFact) []entities.IndustryAggregate {
	distinct := make(map[string]map[string]struct{})
	for _, f := range facts {
		if distinct[f.IndustryLabel] == nil {
			distinct[f.IndustryLabel] = make(map[string]struct{})
		}
		distinct[f.IndustryLabel][f.OccupationID] = struct{}{}
	}

	aggregates := make([]entities.IndustryAggregate, 0, len(distinct))
	total := 0
	for industry, occupations := range distinct {
		aggregates = append(aggregates, entities.IndustryAggregate{
			IndustryLabel:   industry,
			DisplayLabel:    utils.ShortenLabel(industry, utils.IndustryDisplayMax),
			OccupationCount: len(occupations),
		})
		total += len(occupations)
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].OccupationCount != aggregates[j].OccupationCount {
			return aggregates[i].OccupationCount > aggregates[j].OccupationCount
		}
		return aggregates[i].IndustryLabel < aggregates[j].IndustryLabel
	})

	for i := range aggregates {
		aggregates[i].Rank = i + 1
		if total > 0 {
			aggregates[i].SharePercent = round1(100 * float64(aggregates[i].OccupationCount) / float64(total))
		}
	}
	return aggregates
}

// AggregateHeatmap builds the preparation-category by skill-category grid
// from skill fact rows. Cell counts are raw row counts; percentages are
// normalized within each preparation column so every non-empty column
// sums to 100. The grid is rectangular: absent combinations are
// zero-filled. Column order is fixed Low, Medium, High, with Unknown
// appended only when present in the data.
func (s *AggregationService) AggregateHeatmap(facts []*entities.SkillFact) *entities.HeatmapGrid {
	counts := make(map[entities.PrepCategory]map[string]int)
	columnTotals := make(map[entities.PrepCategory]int)
	rowSet := make(map[string]struct{})

	for _, f := range facts {
		cat := f.PrepCategory()
		if counts[cat] == nil {
			counts[cat] = make(map[string]int)
		}
		counts[cat][f.SkillCategoryLabel]++
		columnTotals[cat]++
		rowSet[f.SkillCategoryLabel] = struct{}{}
	}

	columns := make([]entities.PrepCategory, 0, len(entities.PrepCategoryOrder)+1)
	columns = append(columns, entities.PrepCategoryOrder...)
	if columnTotals[entities.PrepUnknown] > 0 {
		columns = append(columns, entities.PrepUnknown)
	}

	rows := make([]string, 0, len(rowSet))
	for r := range rowSet {
		rows = append(rows, r)
	}
	sort.Strings(rows)

	grid := &entities.HeatmapGrid{
		Columns:    make([]string, len(columns)),
		Rows:       rows,
		RowDisplay: make([]string, len(rows)),
		Cells:      make([][]entities.HeatmapCell, len(rows)),
	}
	for i, c := range columns {
		grid.Columns[i] = c.DisplayLabel()
	}
	for i, r := range rows {
		grid.RowDisplay[i] = utils.ShortenLabel(r, utils.SkillCategoryDisplayMax)
		grid.Cells[i] = make([]entities.HeatmapCell, len(columns))
		for j, c := range columns {
			count := counts[c][r]
			cell := entities.HeatmapCell{Count: count}
			if total := columnTotals[c]; total > 0 {
				cell.Percent = round1(100 * float64(count) / float64(total))
			}
			grid.Cells[i][j] = cell
		}
	}
	return grid
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
