// internal/matching/user_matcher.go

package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bridgeup/bridgeup-backend/internal/models"
)

// userScoreFloor drops connection candidates that barely register.
const userScoreFloor = 0.15

// FindUserMatches ranks candidate users against the target user:
//
//	score = 0.4*interestOverlap + diversityBonus + locationBonus + activityBonus
//
// where interestOverlap is sharedThemeCount / max(len(themes)) and 0 when
// either side has no themes. The target is excluded from its own results,
// candidates at or below the floor are dropped, and results are sorted by
// score descending then truncated to limit.
func (e *engine) FindUserMatches(target *models.User, users []*models.User, limit int) []UserMatch {
	now := e.now()

	matches := make([]UserMatch, 0, len(users))
	for _, candidate := range users {
		if candidate.ID == target.ID {
			continue
		}

		interestOverlap := ThemeOverlapScore(target.Themes, candidate.Themes)
		diversity := CulturalDiversityBonus(target.City, candidate.City)
		location := LocationBonus(target.City, candidate.City)
		activity := ActivityBonus(candidate.CreatedAt, now)

		score := 0.4*interestOverlap + diversity + location + activity
		if score > 1 {
			score = 1
		}
		if score <= userScoreFloor {
			continue
		}

		sharedInterests := SharedThemes(target.Themes, candidate.Themes)

		reasons := make([]string, 0, 4)
		if interestOverlap > 0 {
			reasons = append(reasons, fmt.Sprintf("Shared interests: %s", strings.Join(sharedInterests, ", ")))
		}
		if diversity > 0 {
			reasons = append(reasons, "From a different culture")
		}
		if location >= 0.1 {
			reasons = append(reasons, "Lives in the same city")
		} else if location > 0 {
			reasons = append(reasons, "Lives in the same country")
		}
		if activity > 0 {
			reasons = append(reasons, "Recently active")
		}

		matches = append(matches, UserMatch{
			User:            candidate,
			Score:           score,
			Reasons:         reasons,
			SharedInterests: sharedInterests,
			SharedSkills:    []string{},
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
