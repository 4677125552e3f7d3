package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrepCategoryFromOrdinal(t *testing.T) {
	tests := []struct {
		ordinal int
		want    PrepCategory
	}{
		{1, PrepLow},
		{2, PrepLow},
		{3, PrepMedium},
		{4, PrepHigh},
		{5, PrepHigh},
		{0, PrepUnknown},
		{6, PrepUnknown},
		{-1, PrepUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PrepCategoryFromOrdinal(tt.ordinal), "ordinal %d", tt.ordinal)
	}
}

func TestPrepCategoryDisplayLabel(t *testing.T) {
	assert.Equal(t, "Low (1-2)", PrepLow.DisplayLabel())
	assert.Equal(t, "Medium (3)", PrepMedium.DisplayLabel())
	assert.Equal(t, "High (4-5)", PrepHigh.DisplayLabel())
	assert.Equal(t, "Unknown", PrepUnknown.DisplayLabel())
}

func TestSessionStateClone(t *testing.T) {
	state := NewSessionState("s1")
	state.SetPage(TableSkills, PaginationState{PageIndex: 2, PageSize: 10})
	state.AppendExchange("q", "a")

	clone := state.Clone()
	clone.SetPage(TableSkills, PaginationState{PageIndex: 9, PageSize: 10})
	clone.AppendExchange("q2", "a2")

	assert.Equal(t, 2, state.Pages[TableSkills].PageIndex)
	assert.Len(t, state.Transcript, 2)
}

func TestSessionStatePageLazyDefault(t *testing.T) {
	state := NewSessionState("s1")

	page := state.Page(TableOccupations, 10)
	assert.Equal(t, 0, page.PageIndex)
	assert.Equal(t, 10, page.PageSize)
	assert.Empty(t, state.Pages, "reading a page does not materialize state")
}
