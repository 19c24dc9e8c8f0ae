package matching

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTextSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{name: "identical text", a: "pasta night in rome", b: "pasta night in rome", expected: 1.0},
		{name: "no overlap", a: "pasta night", b: "flamenco guitar", expected: 0.0},
		{name: "partial overlap", a: "street food market", b: "street music festival", expected: 0.2},
		{name: "case insensitive", a: "Pasta Night", b: "pasta night", expected: 1.0},
		{name: "both empty", a: "", b: "", expected: 0.0},
		{name: "one empty", a: "pasta", b: "", expected: 0.0},
		{name: "whitespace only", a: "   ", b: "\t\n", expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextSimilarity(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.False(t, math.IsNaN(got), "must never return NaN")
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestThemeOverlapScore(t *testing.T) {
	tests := []struct {
		name     string
		themes1  []string
		themes2  []string
		expected float64
	}{
		{name: "full overlap", themes1: []string{"food"}, themes2: []string{"food"}, expected: 1.0},
		{name: "half overlap", themes1: []string{"food", "music"}, themes2: []string{"food"}, expected: 0.5},
		{name: "no overlap", themes1: []string{"food"}, themes2: []string{"music"}, expected: 0.0},
		{name: "first empty", themes1: nil, themes2: []string{"food"}, expected: 0.0},
		{name: "second empty", themes1: []string{"food"}, themes2: nil, expected: 0.0},
		{name: "both empty", themes1: nil, themes2: nil, expected: 0.0},
		{name: "uneven lengths", themes1: []string{"food", "music", "places"}, themes2: []string{"music", "language"}, expected: 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ThemeOverlapScore(tt.themes1, tt.themes2)
			assert.InDelta(t, tt.expected, got, 1e-9)

			// Symmetry holds for every pair.
			assert.InDelta(t, got, ThemeOverlapScore(tt.themes2, tt.themes1), 1e-9)
		})
	}
}

func TestCulturalDiversityBonus(t *testing.T) {
	assert.Equal(t, 0.2, CulturalDiversityBonus("Rome, Italy", "Tokyo, Japan"))
	assert.Equal(t, 0.0, CulturalDiversityBonus("Rome, Italy", "Rome, Italy"))
	assert.Equal(t, 0.0, CulturalDiversityBonus("Rome, Italy", "rome, italy"))
}

func TestRecencyBonus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.InDelta(t, 0.1, RecencyBonus(now, now), 1e-9)
	assert.InDelta(t, 0.05, RecencyBonus(now.Add(-3*24*time.Hour-12*time.Hour), now), 1e-9)
	assert.Equal(t, 0.0, RecencyBonus(now.Add(-8*24*time.Hour), now))
	assert.Equal(t, 0.0, RecencyBonus(now.Add(-365*24*time.Hour), now))
}

func TestLocationBonus(t *testing.T) {
	assert.Equal(t, 0.1, LocationBonus("Rome, Italy", "Rome, Italy"))
	assert.Equal(t, 0.05, LocationBonus("Rome, Italy", "Milan, Italy"))
	assert.Equal(t, 0.0, LocationBonus("Rome, Italy", "Tokyo, Japan"))
	assert.Equal(t, 0.1, LocationBonus("rome, italy", "Rome, Italy"))

	// Cities without a comma compare as their own country token.
	assert.Equal(t, 0.1, LocationBonus("Rome", "Rome"))
	assert.Equal(t, 0.0, LocationBonus("Rome", "Tokyo"))
}

func TestActivityBonus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.1, ActivityBonus(now.Add(-2*24*time.Hour), now))
	assert.Equal(t, 0.05, ActivityBonus(now.Add(-20*24*time.Hour), now))
	assert.Equal(t, 0.0, ActivityBonus(now.Add(-40*24*time.Hour), now))
}

func TestCountryOf(t *testing.T) {
	assert.Equal(t, "Italy", CountryOf("Rome, Italy"))
	assert.Equal(t, "Japan", CountryOf(" Tokyo , Japan "))
	assert.Equal(t, "Rome", CountryOf("Rome"))
	assert.Equal(t, "USA", CountryOf("Brooklyn, New York, USA"))
	assert.Equal(t, "", CountryOf(""))
}

func TestSharedThemes(t *testing.T) {
	assert.Equal(t, []string{"food", "music"}, SharedThemes([]string{"food", "music", "places"}, []string{"music", "food"}))
	assert.Empty(t, SharedThemes([]string{"food"}, []string{"music"}))
	assert.Empty(t, SharedThemes(nil, []string{"music"}))
}
