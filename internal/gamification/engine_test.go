package gamification

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgeup/bridgeup-backend/internal/models"
)

var testNow = time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

func fixedEngine() *Engine {
	return &Engine{
		catalog: DefaultCatalog(),
		now:     func() time.Time { return testNow },
	}
}

func statsUser(id string, createdAt time.Time) *models.User {
	return &models.User{
		ID:          id,
		DisplayName: "user-" + id,
		City:        "Rome, Italy",
		Themes:      []string{"food"},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func snapshotAt(id, userID string, themes []string, createdAt time.Time, likes, saves int) *models.Snapshot {
	return &models.Snapshot{
		ID:        id,
		UserID:    userID,
		MediaType: models.MediaPhoto,
		Themes:    themes,
		CreatedAt: createdAt,
		LikeCount: likes,
		SaveCount: saves,
	}
}

func TestCalculateUserStats_BrandNewUser(t *testing.T) {
	eng := fixedEngine()
	user := statsUser("u1", testNow)

	stats := eng.CalculateUserStats(user, nil, nil, nil, []*models.User{user}, InteractionTotals{})

	assert.Equal(t, 0, stats.TotalPoints)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 0, stats.StreakDays)
	assert.Empty(t, stats.ThemesExplored)
	assert.Empty(t, stats.CountriesConnected)
}

func TestCalculateUserStats_PointsAndLevel(t *testing.T) {
	eng := fixedEngine()

	user := statsUser("u1", testNow.AddDate(-1, 0, 0))

	// 20 snapshots, 150 likes and 10 saves spread over them, 5 unique
	// themes, posted on three consecutive days counting today.
	themes := [][]string{{"food"}, {"music"}, {"study"}, {"places"}, {"skills"}}
	snapshots := make([]*models.Snapshot, 0, 20)
	for i := 0; i < 20; i++ {
		likes := 0
		saves := 0
		if i == 0 {
			likes = 150
			saves = 10
		}
		day := i % 3 // 0, 1, 2 days ago
		snapshots = append(snapshots, snapshotAt(
			fmt.Sprintf("s%d", i), "u1", themes[i%5],
			testNow.AddDate(0, 0, -day), likes, saves,
		))
	}

	bridges := make([]*models.Bridge, 10)
	for i := range bridges {
		bridges[i] = &models.Bridge{ID: fmt.Sprintf("b%d", i), CreatedAt: testNow}
	}

	allUsers := []*models.User{
		user,
		{ID: "u2", City: "Rome, Italy"},
		{ID: "u3", City: "Milan, Italy"},
		{ID: "u4", City: "Tokyo, Japan"},
	}

	stats := eng.CalculateUserStats(user, snapshots, bridges, bridges, allUsers, InteractionTotals{})

	assert.Equal(t, 10, stats.BridgesCreated)
	assert.Equal(t, 20, stats.SnapshotsPosted)
	assert.Equal(t, 150, stats.LikesReceived)
	assert.Equal(t, 10, stats.SavesReceived)
	assert.Len(t, stats.ThemesExplored, 5)
	assert.Equal(t, []string{"Italy", "Japan"}, stats.CountriesConnected)
	assert.Equal(t, 3, stats.StreakDays)

	// 100 + 100 + 300 + 30 + 75 + 40 + 15 = 660, level 7.
	assert.Equal(t, 660, stats.TotalPoints)
	assert.Equal(t, 7, stats.Level)
}

func TestCalculateStreakDays(t *testing.T) {
	tests := []struct {
		name     string
		daysAgo  []int
		expected int
	}{
		{name: "no snapshots", daysAgo: nil, expected: 0},
		{name: "only today", daysAgo: []int{0}, expected: 1},
		{name: "three consecutive days", daysAgo: []int{0, 1, 2}, expected: 3},
		{name: "gap breaks streak", daysAgo: []int{0, 1, 3, 4}, expected: 2},
		{name: "no post today", daysAgo: []int{1, 2, 3}, expected: 0},
		{name: "multiple posts same day", daysAgo: []int{0, 0, 1, 1, 2}, expected: 3},
		{name: "unsorted input", daysAgo: []int{2, 0, 1}, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshots := make([]*models.Snapshot, 0, len(tt.daysAgo))
			for i, d := range tt.daysAgo {
				snapshots = append(snapshots, snapshotAt(
					fmt.Sprintf("s%d", i), "u1", []string{"food"},
					testNow.AddDate(0, 0, -d), 0, 0,
				))
			}
			assert.Equal(t, tt.expected, calculateStreakDays(snapshots, testNow))
		})
	}
}

func findBadge(badges []Badge, id string) *Badge {
	for i := range badges {
		if badges[i].ID == id {
			return &badges[i]
		}
	}
	return nil
}

func findAchievement(achievements []Achievement, id string) *Achievement {
	for i := range achievements {
		if achievements[i].ID == id {
			return &achievements[i]
		}
	}
	return nil
}

func TestBadges_BridgeMasterThreshold(t *testing.T) {
	eng := fixedEngine()
	user := statsUser("u1", testNow.AddDate(-1, 0, 0))

	makeBridges := func(n int) []*models.Bridge {
		bridges := make([]*models.Bridge, n)
		for i := range bridges {
			bridges[i] = &models.Bridge{ID: fmt.Sprintf("b%d", i)}
		}
		return bridges
	}

	// Unlocked at exactly 10 bridges.
	stats := eng.CalculateUserStats(user, nil, makeBridges(10), nil, nil, InteractionTotals{})
	badge := findBadge(stats.Badges, "bridge_master")
	require.NotNil(t, badge)
	require.NotNil(t, badge.UnlockedAt)
	assert.Equal(t, testNow, *badge.UnlockedAt)
	assert.Equal(t, 10, badge.Progress)
	assert.Equal(t, 10, badge.MaxProgress)

	// Partial progress at 5 bridges: present, not unlocked.
	stats = eng.CalculateUserStats(user, nil, makeBridges(5), nil, nil, InteractionTotals{})
	badge = findBadge(stats.Badges, "bridge_master")
	require.NotNil(t, badge)
	assert.Nil(t, badge.UnlockedAt)
	assert.Equal(t, 5, badge.Progress)
	assert.Equal(t, 10, badge.MaxProgress)

	// Zero progress: omitted entirely.
	stats = eng.CalculateUserStats(user, nil, nil, nil, nil, InteractionTotals{})
	assert.Nil(t, findBadge(stats.Badges, "bridge_master"))
}

func TestBadges_EarlyAdopter(t *testing.T) {
	eng := fixedEngine()

	fresh := statsUser("u1", testNow.AddDate(0, 0, -3))
	stats := eng.CalculateUserStats(fresh, nil, nil, nil, nil, InteractionTotals{})
	badge := findBadge(stats.Badges, "early_adopter")
	require.NotNil(t, badge)
	assert.NotNil(t, badge.UnlockedAt)

	// No progress tracking for the time-window badge.
	assert.Equal(t, 0, badge.Progress)
	assert.Equal(t, 1, badge.MaxProgress)

	veteran := statsUser("u2", testNow.AddDate(0, -6, 0))
	stats = eng.CalculateUserStats(veteran, nil, nil, nil, nil, InteractionTotals{})
	assert.Nil(t, findBadge(stats.Badges, "early_adopter"))
}

func TestAchievements_FirstStepsAlwaysUnlocked(t *testing.T) {
	eng := fixedEngine()
	user := statsUser("u1", testNow)

	stats := eng.CalculateUserStats(user, nil, nil, nil, nil, InteractionTotals{})

	achievement := findAchievement(stats.Achievements, "first_steps")
	require.NotNil(t, achievement)
	assert.NotNil(t, achievement.UnlockedAt)
	assert.Equal(t, 10, achievement.Points)
}

func TestAchievements_GivenInteractions(t *testing.T) {
	eng := fixedEngine()
	user := statsUser("u1", testNow.AddDate(-1, 0, 0))

	stats := eng.CalculateUserStats(user, nil, nil, nil, nil, InteractionTotals{BridgesLiked: 10, BridgesSaved: 7})

	butterfly := findAchievement(stats.Achievements, "social_butterfly")
	require.NotNil(t, butterfly)
	assert.NotNil(t, butterfly.UnlockedAt)

	collector := findAchievement(stats.Achievements, "collector")
	require.NotNil(t, collector)
	assert.Nil(t, collector.UnlockedAt)
	assert.Equal(t, 7, collector.Progress)
	assert.Equal(t, 20, collector.MaxProgress)
}

func TestEngine_CustomCatalog(t *testing.T) {
	catalog := Catalog{
		Badges: []BadgeDef{
			{ID: "night_owl", Name: "Night Owl", Metric: MetricSnapshotsPosted, Threshold: 2, TrackProgress: true},
		},
		Achievements: []AchievementDef{
			{ID: "hello", Name: "Hello", Points: 5, Metric: MetricNone},
		},
	}
	eng := &Engine{catalog: catalog, now: func() time.Time { return testNow }}
	user := statsUser("u1", testNow.AddDate(-1, 0, 0))

	snapshots := []*models.Snapshot{
		snapshotAt("s1", "u1", []string{"food"}, testNow, 0, 0),
	}

	stats := eng.CalculateUserStats(user, snapshots, nil, nil, nil, InteractionTotals{})

	require.Len(t, stats.Badges, 1)
	assert.Equal(t, "night_owl", stats.Badges[0].ID)
	assert.Nil(t, stats.Badges[0].UnlockedAt)
	assert.Equal(t, 1, stats.Badges[0].Progress)

	require.Len(t, stats.Achievements, 1)
	assert.Equal(t, "hello", stats.Achievements[0].ID)
}

func TestLevelTitle(t *testing.T) {
	assert.Equal(t, "Beginner", LevelTitle(1))
	assert.Equal(t, "Newcomer", LevelTitle(2))
	assert.Equal(t, "Cultural Explorer", LevelTitle(4))
	assert.Equal(t, "Bridge Builder", LevelTitle(7))
	assert.Equal(t, "Global Connector", LevelTitle(12))
	assert.Equal(t, "Cultural Legend", LevelTitle(99))
}

func TestRarityColor(t *testing.T) {
	assert.Equal(t, "#6B7280", RarityColor(RarityCommon))
	assert.Equal(t, "#3B82F6", RarityColor(RarityRare))
	assert.Equal(t, "#8B5CF6", RarityColor(RarityEpic))
	assert.Equal(t, "#F59E0B", RarityColor(RarityLegendary))
}
