// utils/text.go
package utils

import (
	"strings"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlaceSlug derives the placeId sent with every match: lowercased, each run of
// whitespace replaced by one hyphen. Punctuation and accents are kept.
func PlaceSlug(placeName string) string {
	return strings.Join(strings.Fields(strings.ToLower(placeName)), "-")
}

// VenueKey is the grouping key for venue statistics.
func VenueKey(placeName string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(placeName))
}

// Fold lowercases and strips diacritics so "Estadio Peñón" matches "penon".
func Fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}
