package datafile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pad2skills/backend/pkg/errors"
)

const occupationHeader = "project_id,project_title,short_summary,esco_id,occupation_esco,industry_cat_label,onet_job_zone,onet_job_zone_label,pad_activities"

func writeDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestGetOccupationFacts(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, occupationFactsFile, occupationHeader+"\n"+
		`p1,Solar Plant,Utility-scale solar,esco-1,Electrician,C Manufacturing,3.0,Medium Preparation Needed,"Install wiring, test circuits"`+"\n"+
		"p1,Solar Plant,Utility-scale solar,esco-2,Welder,F Construction,2,Some Preparation Needed,Weld frames\n")

	facts, err := NewCSVFactAdapter(dir).GetOccupationFacts(context.Background())

	require.NoError(t, err)
	require.Len(t, facts, 2)

	assert.Equal(t, "esco-1", facts[0].OccupationID)
	assert.Equal(t, "Electrician", facts[0].OccupationLabel)
	assert.Equal(t, "Manufacturing", facts[0].IndustryLabel, "ISIC section prefix stripped at ingestion")
	assert.Equal(t, 3, facts[0].PrepLevelOrdinal, "float-encoded job zone parsed")
	assert.Equal(t, "Install wiring, test circuits", facts[0].ActivityDescription)

	assert.Equal(t, "Construction", facts[1].IndustryLabel)
	assert.Equal(t, 2, facts[1].PrepLevelOrdinal)
}

func TestGetOccupationFacts_MissingFile(t *testing.T) {
	adapter := NewCSVFactAdapter(t.TempDir())

	_, err := adapter.GetOccupationFacts(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestGetOccupationFacts_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, occupationFactsFile, "project_id,project_title\np1,Solar Plant\n")

	_, err := NewCSVFactAdapter(dir).GetOccupationFacts(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
	assert.Contains(t, err.Error(), "esco_id")
}

func TestGetOccupationFacts_EmptyTableIsValid(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, occupationFactsFile, occupationHeader+"\n")

	facts, err := NewCSVFactAdapter(dir).GetOccupationFacts(context.Background())

	require.NoError(t, err)
	assert.Empty(t, facts)
}

func TestGetOccupationFacts_PadsShortRows(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, occupationFactsFile, occupationHeader+"\n"+
		"p1,Solar Plant,Summary,esco-1,Electrician\n")

	facts, err := NewCSVFactAdapter(dir).GetOccupationFacts(context.Background())

	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Empty(t, facts[0].IndustryLabel)
	assert.Equal(t, 0, facts[0].PrepLevelOrdinal)
}

func TestGetSkillFacts(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, skillFactsFile,
		"project_id,project_title,esco_id,occupation_esco,industry_cat_label,onet_job_zone,onet_job_zone_label,skill_category_label,skill_label,top_five\n"+
			"p1,Solar Plant,esco-1,Electrician,F Construction,3,Medium Preparation Needed,working with machinery,operate equipment,True\n"+
			"p1,Solar Plant,esco-1,Electrician,F Construction,3,Medium Preparation Needed,communication,report writing,False\n")

	facts, err := NewCSVFactAdapter(dir).GetSkillFacts(context.Background())

	require.NoError(t, err)
	require.Len(t, facts, 2)
	assert.Equal(t, "working with machinery", facts[0].SkillCategoryLabel)
	assert.True(t, facts[0].TopFive)
	assert.False(t, facts[1].TopFive)
	assert.Equal(t, "Construction", facts[0].IndustryLabel)
}

func TestGetTrainingPrograms(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, trainingProgramsFile,
		"program_id,program_title,provider,skill_category_label,prep_category,duration_weeks,description\n"+
			"tp-1,Welding Basics,TVET Center,technical,Low,8,Intro welding course\n")

	programs, err := NewCSVFactAdapter(dir).GetTrainingPrograms(context.Background())

	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "Welding Basics", programs[0].ProgramTitle)
	assert.Equal(t, 8, programs[0].DurationWeeks)
}

func TestParseOrdinal(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"3.0", 3},
		{" 4 ", 4},
		{"", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseOrdinal(tt.in), "input %q", tt.in)
	}
}
