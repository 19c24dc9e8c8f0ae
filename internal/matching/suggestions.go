// internal/matching/suggestions.go

package matching

import (
	"sort"

	"github.com/bridgeup/bridgeup-backend/internal/models"
)

const (
	recentSnapshotWindow = 3
	matchesPerSnapshot   = 2
	topBridgeLimit       = 3
	connectionLimit      = 3
	topThemeCount        = 2
)

// BridgeSuggestions aggregates one suggestion bundle for the home feed.
//
// The user's three most recent snapshots each contribute their top two
// snapshot matches; the concatenation is truncated to three in snapshot
// order. There is deliberately no global re-sort across snapshots: a later
// snapshot's stronger match can be truncated away. Clients have been tuned
// against this ordering, so it is preserved rather than fixed.
func (e *engine) BridgeSuggestions(user *models.User, snapshots []*models.Snapshot, users []*models.User) *Suggestions {
	own := make([]*models.Snapshot, 0)
	for _, s := range snapshots {
		if s.UserID == user.ID {
			own = append(own, s)
		}
	}
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].CreatedAt.After(own[j].CreatedAt)
	})
	if len(own) > recentSnapshotWindow {
		own = own[:recentSnapshotWindow]
	}

	topBridges := make([]MatchScore, 0, topBridgeLimit)
	for _, snapshot := range own {
		topBridges = append(topBridges, e.FindBestSnapshotMatches(snapshot, snapshots, users, matchesPerSnapshot)...)
	}
	if len(topBridges) > topBridgeLimit {
		topBridges = topBridges[:topBridgeLimit]
	}

	suggestions := &Suggestions{
		TopBridges:           topBridges,
		PotentialConnections: e.FindUserMatches(user, users, connectionLimit),
		PersonalizedThemes:   e.personalizedThemes(user, snapshots),
	}

	recordSuggestionsGenerated()
	return suggestions
}

// personalizedThemes returns the user's two most frequent snapshot themes
// plus one discovery theme: the first catalog theme they have not already
// surfaced.
func (e *engine) personalizedThemes(user *models.User, snapshots []*models.Snapshot) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, s := range snapshots {
		if s.UserID != user.ID {
			continue
		}
		for _, theme := range s.Themes {
			if counts[theme] == 0 {
				order = append(order, theme)
			}
			counts[theme]++
		}
	}

	// Sort by frequency descending, first-seen order on ties.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topThemeCount {
		order = order[:topThemeCount]
	}

	themes := make([]string, len(order))
	copy(themes, order)

	for _, catalogTheme := range e.themeCatalog {
		if !containsTheme(themes, catalogTheme) {
			themes = append(themes, catalogTheme)
			break
		}
	}
	return themes
}

func containsTheme(themes []string, theme string) bool {
	for _, t := range themes {
		if t == theme {
			return true
		}
	}
	return false
}
