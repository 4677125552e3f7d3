package entities

// PrepCategory is the three-bucket view of the 1-5 preparation ordinal.
// Every ordinal maps to exactly one bucket; values outside 1-5 map to
// PrepUnknown.
type PrepCategory string

const (
	PrepLow     PrepCategory = "Low"
	PrepMedium  PrepCategory = "Medium"
	PrepHigh    PrepCategory = "High"
	PrepUnknown PrepCategory = "Unknown"
)

// PrepCategoryFromOrdinal buckets a preparation ordinal: 1-2 Low, 3
// Medium, 4-5 High, anything else Unknown.
func PrepCategoryFromOrdinal(ordinal int) PrepCategory {
	switch {
	case ordinal == 1 || ordinal == 2:
		return PrepLow
	case ordinal == 3:
		return PrepMedium
	case ordinal == 4 || ordinal == 5:
		return PrepHigh
	default:
		return PrepUnknown
	}
}

// DisplayLabel returns the label shown on heatmap columns.
func (c PrepCategory) DisplayLabel() string {
	switch c {
	case PrepLow:
		return "Low (1-2)"
	case PrepMedium:
		return "Medium (3)"
	case PrepHigh:
		return "High (4-5)"
	default:
		return "Unknown"
	}
}

// PrepCategoryOrder is the fixed column ordering for heatmap rendering.
// Unknown is appended by the aggregation only when present in the data.
var PrepCategoryOrder = []PrepCategory{PrepLow, PrepMedium, PrepHigh}
