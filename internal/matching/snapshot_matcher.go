// internal/matching/snapshot_matcher.go

package matching

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bridgeup/bridgeup-backend/internal/models"
)

// snapshotScoreFloor drops candidates that barely register.
const snapshotScoreFloor = 0.1

// FindBestSnapshotMatches ranks candidate snapshots against the target.
//
// Per candidate with a resolvable owner:
//
//	score = 0.4*themeOverlap + 0.3*textSimilarity
//	      + diversityBonus + recencyBonus + 0.2*userCompatibility
//
// The nominal weights sum past 1.0, so the result is clamped to 1.0.
// The target owner's own snapshots are excluded, candidates whose owner is
// missing from the user collection are skipped, and candidates scoring at
// or below the floor are dropped. Results are sorted by score descending
// with input order preserved on ties, then truncated to limit.
func (e *engine) FindBestSnapshotMatches(target *models.Snapshot, snapshots []*models.Snapshot, users []*models.User, limit int) []MatchScore {
	now := e.now()
	usersByID := indexUsers(users)

	targetOwner, ok := usersByID[target.UserID]
	if !ok {
		return []MatchScore{}
	}

	matches := make([]MatchScore, 0, len(snapshots))
	for _, candidate := range snapshots {
		if candidate.UserID == target.UserID {
			continue
		}
		owner, ok := usersByID[candidate.UserID]
		if !ok {
			recordSkippedCandidate()
			continue
		}

		themeOverlap := ThemeOverlapScore(target.Themes, candidate.Themes)
		textSim := TextSimilarity(target.Text, candidate.Text)
		diversity := CulturalDiversityBonus(targetOwner.City, owner.City)
		recency := RecencyBonus(candidate.CreatedAt, now)
		compatibility := e.UserCompatibility(targetOwner, owner)

		score := 0.4*themeOverlap + 0.3*textSim + diversity + recency + 0.2*compatibility
		if score > 1 {
			score = 1
		}
		if score <= snapshotScoreFloor {
			continue
		}

		reasons := make([]string, 0, 4)
		if themeOverlap > 0 {
			shared := SharedThemes(target.Themes, candidate.Themes)
			reasons = append(reasons, fmt.Sprintf("Shared themes: %s", strings.Join(shared, ", ")))
		}
		if textSim > 0.3 {
			reasons = append(reasons, "Similar content and captions")
		}
		if diversity > 0 {
			reasons = append(reasons, "Connects two different cultures")
		}
		if recency > 0.05 {
			reasons = append(reasons, "Posted recently")
		}
		if compatibility > 0.3 {
			reasons = append(reasons, "Highly compatible creators")
		}

		recordSnapshotScore(score)
		matches = append(matches, MatchScore{
			Snapshot: candidate,
			Score:    score,
			Reasons:  reasons,
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

// UserCompatibility scores how well two creators pair up, in [0,1]:
// half from theme overlap, 0.3 when their cities differ, 0.2 when their
// accounts were created within 30 days of each other.
func (e *engine) UserCompatibility(u1, u2 *models.User) float64 {
	score := 0.5 * ThemeOverlapScore(u1.Themes, u2.Themes)

	if !strings.EqualFold(strings.TrimSpace(u1.City), strings.TrimSpace(u2.City)) {
		score += 0.3
	}

	ageGap := u1.CreatedAt.Sub(u2.CreatedAt)
	if ageGap < 0 {
		ageGap = -ageGap
	}
	if ageGap < 30*24*time.Hour {
		score += 0.2
	}

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

func indexUsers(users []*models.User) map[string]*models.User {
	byID := make(map[string]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}
