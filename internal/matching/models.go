// internal/matching/models.go

package matching

import "github.com/bridgeup/bridgeup-backend/internal/models"

// MatchScore ranks a candidate snapshot against a target snapshot.
// Reasons are human-readable strings intended for direct display.
type MatchScore struct {
	Snapshot *models.Snapshot `json:"snapshot"`
	Score    float64          `json:"score"`
	Reasons  []string         `json:"reasons"`
}

// UserMatch ranks a candidate user against a target user.
// SharedSkills is always empty today; users carry no skills field yet, but
// downstream clients already render the list so it stays in the payload.
type UserMatch struct {
	User            *models.User `json:"user"`
	Score           float64      `json:"score"`
	Reasons         []string     `json:"reasons"`
	SharedInterests []string     `json:"shared_interests"`
	SharedSkills    []string     `json:"shared_skills"`
}

// Suggestions bundles everything the home feed needs for one user: the best
// bridge candidates across their recent snapshots, people worth connecting
// with, and themes to explore next.
type Suggestions struct {
	TopBridges           []MatchScore `json:"top_bridges"`
	PotentialConnections []UserMatch  `json:"potential_connections"`
	PersonalizedThemes   []string     `json:"personalized_themes"`
}
