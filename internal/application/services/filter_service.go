package services

import (
	"math/rand"
	"sort"

	"github.com/pad2skills/backend/internal/domain/entities"
)

// DedupSeed is the fixed seed for the deterministic representative-row
// sample used when the project filter is ALL. The seed is part of the
// contract: repeated renders of the unfiltered view are byte-identical
// across sessions and processes.
const DedupSeed = 42

// FilterService applies a FilterSelection to the fact tables. Predicates
// compose conjunctively: a row survives iff it matches every non-ALL,
// non-false field.
type FilterService struct{}

// NewFilterService creates a new filter service
func NewFilterService() *FilterService {
	return &FilterService{}
}

// ApplyOccupationFilters filters occupation facts by the selection. With
// the project filter at ALL, occupations are deduplicated to one
// representative row per occupation id via a seeded pseudo-random pick,
// so an occupation shared by several projects counts once.
func (s *FilterService) ApplyOccupationFilters(facts []*entities.OccupationFact, sel entities.FilterSelection) []*entities.OccupationFact {
	var filtered []*entities.OccupationFact
	if sel.AllProjectsSelected() {
		filtered = dedupeByOccupation(facts)
	} else {
		for _, f := range facts {
			if f.ProjectTitle == sel.Project {
				filtered = append(filtered, f)
			}
		}
	}

	if sel.AllIndustriesSelected() {
		return filtered
	}

	result := filtered[:0:0]
	for _, f := range filtered {
		if f.IndustryLabel == sel.Industry {
			result = append(result, f)
		}
	}
	return result
}

// ApplySkillFilters filters skill facts by the selection. Skill facts
// keep the full project-occupation-skill grain; no deduplication happens
// here (the detail table applies its own pair dedup separately).
func (s *FilterService) ApplySkillFilters(facts []*entities.SkillFact, sel entities.FilterSelection) []*entities.SkillFact {
	var result []*entities.SkillFact
	for _, f := range facts {
		if !sel.AllProjectsSelected() && f.ProjectTitle != sel.Project {
			continue
		}
		if !sel.AllIndustriesSelected() && f.IndustryLabel != sel.Industry {
			continue
		}
		if sel.TopFiveOnly && !f.TopFive {
			continue
		}
		result = append(result, f)
	}
	return result
}

// DedupSkillPairs drops duplicate (occupation, skill) pairs across
// projects, keeping the first occurrence. This applies only inside the
// skills detail table and its export; the heatmap keeps the full grain.
func DedupSkillPairs(facts []*entities.SkillFact) []*entities.SkillFact {
	seen := make(map[[2]string]struct{}, len(facts))
	var result []*entities.SkillFact
	for _, f := range facts {
		key := [2]string{f.OccupationID, f.SkillLabel}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, f)
	}
	return result
}

// NormalizeSelection degrades a stale industry selection to ALL: when the
// selected industry no longer exists among the rows surviving the project
// filter, the user should see the unfiltered view, not an empty result
// for a choice they did not make.
func (s *FilterService) NormalizeSelection(facts []*entities.OccupationFact, sel entities.FilterSelection) entities.FilterSelection {
	if sel.AllIndustriesSelected() {
		return sel
	}
	projectOnly := sel
	projectOnly.Industry = entities.AllIndustries
	for _, f := range s.ApplyOccupationFilters(facts, projectOnly) {
		if f.IndustryLabel == sel.Industry {
			return sel
		}
	}
	sel.Industry = entities.AllIndustries
	return sel
}

// IndustriesFor lists the distinct industries surviving the project
// filter, sorted ascending. This feeds the industry selector options.
func (s *FilterService) IndustriesFor(facts []*entities.OccupationFact, sel entities.FilterSelection) []string {
	projectOnly := sel
	projectOnly.Industry = entities.AllIndustries
	seen := make(map[string]struct{})
	var industries []string
	for _, f := range s.ApplyOccupationFilters(facts, projectOnly) {
		if _, ok := seen[f.IndustryLabel]; ok {
			continue
		}
		seen[f.IndustryLabel] = struct{}{}
		industries = append(industries, f.IndustryLabel)
	}
	sort.Strings(industries)
	return industries
}

// dedupeByOccupation keeps one row per occupation id. Groups are visited
// in sorted-id order and the representative is drawn from a single
// generator seeded with DedupSeed, so the choice is stable run to run
// even though the representative project is otherwise arbitrary.
func dedupeByOccupation(facts []*entities.OccupationFact) []*entities.OccupationFact {
	groups := make(map[string][]*entities.OccupationFact)
	var ids []string
	for _, f := range facts {
		if _, ok := groups[f.OccupationID]; !ok {
			ids = append(ids, f.OccupationID)
		}
		groups[f.OccupationID] = append(groups[f.OccupationID], f)
	}
	sort.Strings(ids)

	rng := rand.New(rand.NewSource(DedupSeed))
	result := make([]*entities.OccupationFact, 0, len(ids))
	for _, id := range ids {
		group := groups[id]
		result = append(result, group[rng.Intn(len(group))])
	}
	return result
}
