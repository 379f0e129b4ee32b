package dataprocessing

import (
	"strings"
)

const (
	genreSeparator   = ", "
	countrySeparator = ","
	unknownCountry   = "unknown"
	internationalTag = "international"
)

var genreReplacer = strings.NewReplacer(
	"dramas", "drama",
	"comedies", "comedy",
)

// NormalizeGenres lowercases genre text and folds plural genre names onto their singular form
func NormalizeGenres(raw string) string {
	return genreReplacer.Replace(strings.ToLower(raw))
}

// SplitGenres splits normalized genre text into one entry per genre, skipping blanks
func SplitGenres(normalized string) []string {
	if strings.TrimSpace(normalized) == "" {
		return nil
	}
	parts := strings.Split(normalized, genreSeparator)
	genres := make([]string, 0, len(parts))
	for _, part := range parts {
		if g := strings.TrimSpace(part); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// IsInternational reports whether the genre text mentions international content
func IsInternational(rawGenres string) bool {
	return strings.Contains(strings.ToLower(rawGenres), internationalTag)
}

// SplitCountries splits a country list into one entry per country.
// Unknown or empty country fields yield no entries.
func SplitCountries(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, unknownCountry) {
		return nil
	}
	parts := strings.Split(trimmed, countrySeparator)
	countries := make([]string, 0, len(parts))
	for _, part := range parts {
		if c := strings.TrimSpace(part); c != "" {
			countries = append(countries, c)
		}
	}
	return countries
}
