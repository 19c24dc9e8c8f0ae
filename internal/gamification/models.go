// internal/gamification/models.go

package gamification

import "time"

// Badge categories
const (
	CategoryCreation    = "creation"
	CategorySocial      = "social"
	CategoryExploration = "exploration"
	CategoryAchievement = "achievement"
)

// Badge rarities
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Badge is a per-user evaluation of a badge definition. Unlocked badges
// carry UnlockedAt; badges with partial progress are returned without it so
// clients can render progress bars; badges with zero progress are omitted.
type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Category    string     `json:"category"`
	Rarity      string     `json:"rarity"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	Progress    int        `json:"progress"`
	MaxProgress int        `json:"max_progress"`
}

// Achievement is a per-user evaluation of an achievement definition.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Points      int        `json:"points"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	Progress    int        `json:"progress"`
	MaxProgress int        `json:"max_progress"`
}

// InteractionTotals carries the likes/saves a user has given out. These
// counts live in the interactions store, not in the snapshot or bridge
// collections, so the caller supplies them alongside the entity slices.
type InteractionTotals struct {
	BridgesLiked int `json:"bridges_liked"`
	BridgesSaved int `json:"bridges_saved"`
}

// UserStats is the derived gamification view of a user. It is recomputed
// on demand and never persisted.
type UserStats struct {
	BridgesCreated     int           `json:"bridges_created"`
	SnapshotsPosted    int           `json:"snapshots_posted"`
	LikesReceived      int           `json:"likes_received"`
	SavesReceived      int           `json:"saves_received"`
	BridgesLiked       int           `json:"bridges_liked"`
	BridgesSaved       int           `json:"bridges_saved"`
	ThemesExplored     []string      `json:"themes_explored"`
	CountriesConnected []string      `json:"countries_connected"`
	StreakDays         int           `json:"streak_days"`
	LastActiveDate     time.Time     `json:"last_active_date"`
	TotalPoints        int           `json:"total_points"`
	Level              int           `json:"level"`
	Badges             []Badge       `json:"badges"`
	Achievements       []Achievement `json:"achievements"`
}
