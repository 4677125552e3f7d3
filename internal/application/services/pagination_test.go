package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name      string
		totalRows int
		pageSize  int
		want      int
	}{
		{"empty result is one page", 0, 10, 1},
		{"exact multiple", 30, 10, 3},
		{"partial last page", 31, 10, 4},
		{"single row", 1, 10, 1},
		{"zero page size", 50, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.totalRows, tt.pageSize))
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		pageIndex  int
		totalPages int
		want       int
	}{
		{"in bounds", 2, 5, 2},
		{"last page", 4, 5, 4},
		{"past end resets to zero", 5, 5, 0},
		{"negative resets to zero", -1, 5, 0},
		{"shrunk result resets stale cursor", 7, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPage(tt.pageIndex, tt.totalPages))
		})
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name       string
		pageIndex  int
		totalPages int
		direction  string
		want       int
	}{
		{"next advances", 0, 3, PageNext, 1},
		{"next at last page is a no-op", 2, 3, PageNext, 2},
		{"previous steps back", 2, 3, PagePrevious, 1},
		{"previous at first page is a no-op", 0, 3, PagePrevious, 0},
		{"single page never moves", 0, 1, PageNext, 0},
		{"stale cursor clamps before moving", 9, 3, PageNext, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Navigate(tt.pageIndex, tt.totalPages, tt.direction))
		})
	}
}

func TestPageBounds(t *testing.T) {
	start, end := PageBounds(0, 10, 25)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = PageBounds(2, 10, 25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = PageBounds(0, 10, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}
