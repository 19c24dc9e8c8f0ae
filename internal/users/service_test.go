package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgeup/bridgeup-backend/internal/bridges"
	"github.com/bridgeup/bridgeup-backend/internal/gamification"
	"github.com/bridgeup/bridgeup-backend/internal/models"
)

type stubCounter struct {
	totals gamification.InteractionTotals
}

func (c *stubCounter) CountGiven(ctx context.Context, userID string) (gamification.InteractionTotals, error) {
	return c.totals, nil
}

func newTestService(t *testing.T) (Service, *MemoryRepository, *bridges.MemorySnapshotRepository, *bridges.MemoryBridgeRepository) {
	t.Helper()

	repo := NewMemoryRepository()
	snapshots := bridges.NewMemorySnapshotRepository()
	bridgeRepo := bridges.NewMemoryBridgeRepository(snapshots)
	engine := gamification.NewEngine(gamification.DefaultCatalog())

	svc := NewService(repo, snapshots, bridgeRepo, &stubCounter{}, engine)
	return svc, repo, snapshots, bridgeRepo
}

func TestCreateUser_NormalizesThemes(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		DisplayName: "  Marco ",
		City:        "Rome, Italy",
		Themes:      []string{" Food", "food", "MUSIC"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Marco", user.DisplayName)
	assert.Equal(t, []string{"food", "music"}, user.Themes)
	assert.NotEmpty(t, user.ID)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserRequest{
		DisplayName: "Marco",
		City:        "Rome, Italy",
		Themes:      []string{"food"},
	})
	require.NoError(t, err)

	newCity := "Milan, Italy"
	updated, err := svc.Update(ctx, user.ID, UpdateUserRequest{City: &newCity})
	require.NoError(t, err)

	assert.Equal(t, "Milan, Italy", updated.City)
	assert.Equal(t, "Marco", updated.DisplayName, "unset fields stay untouched")
	assert.Equal(t, []string{"food"}, updated.Themes)
}

func TestStats_MaterializesCollections(t *testing.T) {
	repo := NewMemoryRepository()
	snapshots := bridges.NewMemorySnapshotRepository()
	bridgeRepo := bridges.NewMemoryBridgeRepository(snapshots)
	engine := gamification.NewEngine(gamification.DefaultCatalog())
	counter := &stubCounter{totals: gamification.InteractionTotals{BridgesLiked: 2, BridgesSaved: 1}}
	svc := NewService(repo, snapshots, bridgeRepo, counter, engine)

	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, &models.User{
		ID: "u1", DisplayName: "Marco", City: "Rome, Italy",
		Themes: []string{"food"}, CreatedAt: now.AddDate(0, -2, 0),
	}))
	require.NoError(t, repo.Save(ctx, &models.User{
		ID: "u2", DisplayName: "Yuki", City: "Tokyo, Japan",
		Themes: []string{"food"}, CreatedAt: now.AddDate(0, -3, 0),
	}))

	require.NoError(t, snapshots.Save(ctx, &models.Snapshot{
		ID: "s1", UserID: "u1", MediaType: models.MediaPhoto,
		Themes: []string{"food"}, CreatedAt: now, LikeCount: 3, SaveCount: 1,
	}))
	require.NoError(t, snapshots.Save(ctx, &models.Snapshot{
		ID: "s2", UserID: "u2", MediaType: models.MediaPhoto,
		Themes: []string{"food"}, CreatedAt: now,
	}))
	require.NoError(t, bridgeRepo.Save(ctx, &models.Bridge{
		ID: "b1", LeftSnapshotID: "s1", RightSnapshotID: "s2",
		Themes: []string{"food"}, CreatedAt: now,
	}))

	stats, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.BridgesCreated)
	assert.Equal(t, 1, stats.SnapshotsPosted)
	assert.Equal(t, 3, stats.LikesReceived)
	assert.Equal(t, 2, stats.BridgesLiked, "totals come from the interaction counter")
	assert.Equal(t, 1, stats.BridgesSaved)
	assert.Contains(t, stats.CountriesConnected, "Japan")
	assert.Greater(t, stats.TotalPoints, 0)
}

func TestStats_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Stats(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
