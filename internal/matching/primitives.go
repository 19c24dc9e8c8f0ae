// internal/matching/primitives.go
// Pure scoring primitives shared by the snapshot and user matchers.
// All functions are deterministic and side-effect free.

package matching

import (
	"strings"
	"time"
)

const (
	recencyWindowDays = 7
	recencyWeight     = 0.1
)

// TextSimilarity returns the Jaccard similarity of the word sets of two
// strings in [0,1]. Tokens are split on whitespace and lowercased. Two
// empty strings score 0, never NaN.
func TextSimilarity(a, b string) float64 {
	wordsA := tokenize(a)
	wordsB := tokenize(b)

	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	union := make(map[string]bool, len(wordsA)+len(wordsB))
	for w := range wordsA {
		union[w] = true
	}
	for w := range wordsB {
		if wordsA[w] {
			intersection++
		}
		union[w] = true
	}

	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

// ThemeOverlapScore returns |shared| / max(|themes1|, |themes2|) in [0,1].
// Either list empty scores 0.
func ThemeOverlapScore(themes1, themes2 []string) float64 {
	if len(themes1) == 0 || len(themes2) == 0 {
		return 0
	}

	shared := SharedThemes(themes1, themes2)
	maxLen := len(themes1)
	if len(themes2) > maxLen {
		maxLen = len(themes2)
	}
	return float64(len(shared)) / float64(maxLen)
}

// SharedThemes returns the themes present in both lists, preserving the
// order of the first list and dropping duplicates.
func SharedThemes(themes1, themes2 []string) []string {
	set := make(map[string]bool, len(themes2))
	for _, t := range themes2 {
		set[t] = true
	}

	shared := make([]string, 0)
	for _, t := range themes1 {
		if set[t] {
			shared = append(shared, t)
			delete(set, t)
		}
	}
	return shared
}

// CulturalDiversityBonus awards 0.2 when the two cities differ. Exact
// case-insensitive string comparison, no geocoding.
func CulturalDiversityBonus(city1, city2 string) float64 {
	if !strings.EqualFold(strings.TrimSpace(city1), strings.TrimSpace(city2)) {
		return 0.2
	}
	return 0
}

// RecencyBonus decays linearly from recencyWeight to zero over a seven-day
// window. Anything older than the window scores 0.
func RecencyBonus(createdAt, now time.Time) float64 {
	ageDays := now.Sub(createdAt).Hours() / 24
	remaining := (recencyWindowDays - ageDays) / recencyWindowDays
	if remaining < 0 {
		remaining = 0
	}
	return remaining * recencyWeight
}

// LocationBonus scores city proximity: same full city string scores 0.1,
// same country (trailing comma segment) scores 0.05, otherwise 0.
func LocationBonus(city1, city2 string) float64 {
	c1 := strings.TrimSpace(city1)
	c2 := strings.TrimSpace(city2)

	if strings.EqualFold(c1, c2) {
		return 0.1
	}
	if strings.EqualFold(CountryOf(c1), CountryOf(c2)) {
		return 0.05
	}
	return 0
}

// ActivityBonus rewards recently created accounts or content: under 7 days
// scores 0.1, under 30 days 0.05, otherwise 0.
func ActivityBonus(createdAt, now time.Time) float64 {
	ageDays := now.Sub(createdAt).Hours() / 24
	switch {
	case ageDays < 7:
		return 0.1
	case ageDays < 30:
		return 0.05
	default:
		return 0
	}
}

// CountryOf extracts the country token from a "City, Country" string: the
// trimmed segment after the last comma. A city without a comma is its own
// country token.
func CountryOf(city string) string {
	idx := strings.LastIndex(city, ",")
	return strings.TrimSpace(city[idx+1:])
}

func tokenize(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		words[w] = true
	}
	return words
}
