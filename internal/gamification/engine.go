// internal/gamification/engine.go
// Derives UserStats, badge unlocks, and achievement unlocks from raw
// entities. Pure and total over well-formed input: empty collections yield
// zero counts, never an error.

package gamification

import (
	"sort"
	"time"

	"github.com/bridgeup/bridgeup-backend/internal/matching"
	"github.com/bridgeup/bridgeup-backend/internal/models"
)

// Point weights for derived stats.
const (
	pointsPerBridge    = 10
	pointsPerSnapshot  = 5
	pointsPerLike      = 2
	pointsPerSave      = 3
	pointsPerTheme     = 15
	pointsPerCountry   = 20
	pointsPerStreakDay = 5
	pointsPerLevel     = 100
)

// Engine evaluates user stats against an injected catalog.
type Engine struct {
	catalog Catalog
	now     func() time.Time
}

// NewEngine creates a gamification engine bound to a catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{
		catalog: catalog,
		now:     time.Now,
	}
}

// CalculateUserStats derives the full gamification view for one user from
// already-loaded collections. The given totals (likes/saves the user handed
// out) come from the interactions store and are passed through.
func (e *Engine) CalculateUserStats(
	user *models.User,
	userSnapshots []*models.Snapshot,
	userBridges []*models.Bridge,
	allBridges []*models.Bridge,
	allUsers []*models.User,
	given InteractionTotals,
) *UserStats {
	now := e.now()

	bridgesCreated := len(userBridges)
	snapshotsPosted := len(userSnapshots)

	likesReceived := 0
	savesReceived := 0
	for _, s := range userSnapshots {
		likesReceived += s.LikeCount
		savesReceived += s.SaveCount
	}

	themesExplored := uniqueThemes(userSnapshots)
	countriesConnected := connectedCountries(user, allUsers)
	streakDays := calculateStreakDays(userSnapshots, now)

	totalPoints := bridgesCreated*pointsPerBridge +
		snapshotsPosted*pointsPerSnapshot +
		likesReceived*pointsPerLike +
		savesReceived*pointsPerSave +
		len(themesExplored)*pointsPerTheme +
		len(countriesConnected)*pointsPerCountry +
		streakDays*pointsPerStreakDay

	level := totalPoints/pointsPerLevel + 1

	stats := &UserStats{
		BridgesCreated:     bridgesCreated,
		SnapshotsPosted:    snapshotsPosted,
		LikesReceived:      likesReceived,
		SavesReceived:      savesReceived,
		BridgesLiked:       given.BridgesLiked,
		BridgesSaved:       given.BridgesSaved,
		ThemesExplored:     themesExplored,
		CountriesConnected: countriesConnected,
		StreakDays:         streakDays,
		LastActiveDate:     now,
		TotalPoints:        totalPoints,
		Level:              level,
	}

	stats.Badges = e.evaluateBadges(stats, user.CreatedAt, now)
	stats.Achievements = e.evaluateAchievements(stats, now)
	return stats
}

// calculateStreakDays counts consecutive calendar days with at least one
// snapshot, walking backward from today. Every day gap is measured from
// today's midnight: a snapshot whose gap equals the running streak extends
// it, the first larger gap ends it, and snapshots from an already-counted
// day are passed over.
func calculateStreakDays(snapshots []*models.Snapshot, now time.Time) int {
	if len(snapshots) == 0 {
		return 0
	}

	sorted := make([]*models.Snapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	streak := 0
	today := midnight(now)
	for _, s := range sorted {
		daysDiff := int(today.Sub(midnight(s.CreatedAt)).Hours() / 24)
		if daysDiff == streak {
			streak++
		} else if daysDiff > streak {
			break
		}
	}
	return streak
}

func (e *Engine) evaluateBadges(stats *UserStats, accountCreatedAt, now time.Time) []Badge {
	badges := make([]Badge, 0, len(e.catalog.Badges))

	for _, def := range e.catalog.Badges {
		var unlocked bool
		progress := 0
		maxProgress := 1

		switch def.Metric {
		case MetricAccountAgeDays:
			ageDays := now.Sub(accountCreatedAt).Hours() / 24
			unlocked = ageDays <= float64(def.Threshold)
		default:
			value := stats.metricValue(def.Metric)
			unlocked = value >= def.Threshold
			if def.TrackProgress {
				progress = value
				if progress > def.Threshold {
					progress = def.Threshold
				}
				maxProgress = def.Threshold
			}
		}

		badge := Badge{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Category:    def.Category,
			Rarity:      def.Rarity,
			Progress:    progress,
			MaxProgress: maxProgress,
		}

		if unlocked {
			unlockedAt := now
			badge.UnlockedAt = &unlockedAt
			badges = append(badges, badge)
		} else if progress > 0 {
			badges = append(badges, badge)
		}
	}

	return badges
}

func (e *Engine) evaluateAchievements(stats *UserStats, now time.Time) []Achievement {
	achievements := make([]Achievement, 0, len(e.catalog.Achievements))

	for _, def := range e.catalog.Achievements {
		var unlocked bool
		progress := 0
		maxProgress := 1

		if def.Metric == MetricNone {
			unlocked = true
		} else {
			value := stats.metricValue(def.Metric)
			unlocked = value >= def.Threshold
			progress = value
			if progress > def.Threshold {
				progress = def.Threshold
			}
			maxProgress = def.Threshold
		}

		achievement := Achievement{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Points:      def.Points,
			Progress:    progress,
			MaxProgress: maxProgress,
		}

		if unlocked {
			unlockedAt := now
			achievement.UnlockedAt = &unlockedAt
			achievements = append(achievements, achievement)
		} else if progress > 0 {
			achievements = append(achievements, achievement)
		}
	}

	return achievements
}

// metricValue resolves a catalog metric name against computed stats.
// Unknown metrics resolve to 0, so a catalog typo surfaces as a permanently
// locked entry rather than a crash.
func (s *UserStats) metricValue(metric string) int {
	switch metric {
	case MetricBridgesCreated:
		return s.BridgesCreated
	case MetricSnapshotsPosted:
		return s.SnapshotsPosted
	case MetricLikesReceived:
		return s.LikesReceived
	case MetricBridgesLiked:
		return s.BridgesLiked
	case MetricBridgesSaved:
		return s.BridgesSaved
	case MetricThemesExplored:
		return len(s.ThemesExplored)
	case MetricCountriesConnected:
		return len(s.CountriesConnected)
	case MetricStreakDays:
		return s.StreakDays
	default:
		return 0
	}
}

func uniqueThemes(snapshots []*models.Snapshot) []string {
	seen := make(map[string]bool)
	themes := make([]string, 0)
	for _, s := range snapshots {
		for _, t := range s.Themes {
			if !seen[t] {
				seen[t] = true
				themes = append(themes, t)
			}
		}
	}
	return themes
}

// connectedCountries collects the unique country tokens from every other
// user's city field.
func connectedCountries(user *models.User, allUsers []*models.User) []string {
	seen := make(map[string]bool)
	countries := make([]string, 0)
	for _, u := range allUsers {
		if u.ID == user.ID {
			continue
		}
		country := matching.CountryOf(u.City)
		if country == "" || seen[country] {
			continue
		}
		seen[country] = true
		countries = append(countries, country)
	}
	return countries
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// LevelTitle maps a numeric level to its display title.
func LevelTitle(level int) string {
	switch {
	case level >= 50:
		return "Cultural Legend"
	case level >= 25:
		return "Bridge Master"
	case level >= 15:
		return "Cultural Ambassador"
	case level >= 10:
		return "Global Connector"
	case level >= 5:
		return "Bridge Builder"
	case level >= 3:
		return "Cultural Explorer"
	case level >= 2:
		return "Newcomer"
	default:
		return "Beginner"
	}
}

// RarityColor maps a badge rarity to its display color.
func RarityColor(rarity string) string {
	switch rarity {
	case RarityRare:
		return "#3B82F6"
	case RarityEpic:
		return "#8B5CF6"
	case RarityLegendary:
		return "#F59E0B"
	default:
		return "#6B7280"
	}
}
