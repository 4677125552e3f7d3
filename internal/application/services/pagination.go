package services

// Pagination directions accepted by NavigatePage.
const (
	PagePrevious = "previous"
	PageNext     = "next"
)

// TotalPages returns the page count for a row set: ceil(rows/size), with
// a minimum of one so an empty result renders as an empty first page
// rather than an undefined page count.
func TotalPages(totalRows, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (totalRows + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage re-derives a page index against the current page count.
// An index at or past the end resets to zero; indices are never left
// out of bounds.
func ClampPage(pageIndex, totalPages int) int {
	if pageIndex < 0 || pageIndex >= totalPages {
		return 0
	}
	return pageIndex
}

// Navigate applies a previous/next command with bounds: previous at the
// first page and next at the last page are no-ops.
func Navigate(pageIndex, totalPages int, direction string) int {
	pageIndex = ClampPage(pageIndex, totalPages)
	switch direction {
	case PagePrevious:
		if pageIndex > 0 {
			pageIndex--
		}
	case PageNext:
		if pageIndex < totalPages-1 {
			pageIndex++
		}
	}
	return pageIndex
}

// PageBounds returns the half-open row range [start, end) of a page.
func PageBounds(pageIndex, pageSize, totalRows int) (int, int) {
	start := pageIndex * pageSize
	if start > totalRows {
		start = totalRows
	}
	end := start + pageSize
	if end > totalRows {
		end = totalRows
	}
	return start, end
}
