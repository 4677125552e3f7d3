package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Display truncation widths. The industry reference is
// "S Arts Sports and Recreation" after prefix stripping; the skill
// category reference is "arts and humanities".
const (
	IndustryDisplayMax      = 29
	SkillCategoryDisplayMax = 19
)

// isicSectionPrefix matches the single-letter ISIC section code some
// industry labels carry, e.g. "C Manufacturing".
var isicSectionPrefix = regexp.MustCompile(`^[A-Z] `)

// NormalizeIndustryLabel strips the removable single-letter classification
// prefix and surrounding whitespace. Applied once at ingestion, never
// per-view.
func NormalizeIndustryLabel(label string) string {
	label = strings.TrimSpace(label)
	return strings.TrimSpace(isicSectionPrefix.ReplaceAllString(label, ""))
}

// ShortenLabel truncates a display label to max runes, replacing the tail
// with an ellipsis. Filter keys keep the full label; only display fields
// are shortened.
func ShortenLabel(label string, max int) string {
	if utf8.RuneCountInString(label) <= max {
		return label
	}
	runes := []rune(label)
	return string(runes[:max-1]) + "…"
}

// NormalizeFilterValue maps the presentation layer's "all" spellings onto
// the canonical ALL sentinel. Other values pass through trimmed.
func NormalizeFilterValue(value string) string {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "", "all", "all industries", "all projects":
		return "ALL"
	}
	return trimmed
}
