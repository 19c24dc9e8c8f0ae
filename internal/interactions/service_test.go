package interactions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgeup/bridgeup-backend/internal/bridges"
	"github.com/bridgeup/bridgeup-backend/internal/models"
)

func newTestService(t *testing.T) (Service, *bridges.MemorySnapshotRepository, *bridges.MemoryBridgeRepository) {
	t.Helper()
	ctx := context.Background()

	snapshots := bridges.NewMemorySnapshotRepository()
	bridgeRepo := bridges.NewMemoryBridgeRepository(snapshots)

	require.NoError(t, snapshots.Save(ctx, &models.Snapshot{
		ID: "s1", UserID: "u1", MediaType: models.MediaPhoto, CreatedAt: time.Now(),
	}))
	require.NoError(t, snapshots.Save(ctx, &models.Snapshot{
		ID: "s2", UserID: "u2", MediaType: models.MediaPhoto, CreatedAt: time.Now(),
	}))
	require.NoError(t, bridgeRepo.Save(ctx, &models.Bridge{
		ID: "b1", LeftSnapshotID: "s1", RightSnapshotID: "s2", CreatedAt: time.Now(),
	}))

	svc := NewService(NewMemoryRepository(), snapshots, bridgeRepo, nil)
	return svc, snapshots, bridgeRepo
}

func TestToggleLike_Snapshot(t *testing.T) {
	svc, snapshots, _ := newTestService(t)
	ctx := context.Background()

	liked, err := svc.ToggleLike(ctx, "u2", models.TargetSnapshot, "s1")
	require.NoError(t, err)
	assert.True(t, liked)

	s, err := snapshots.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.LikeCount)

	// Toggling again removes the like and decrements.
	liked, err = svc.ToggleLike(ctx, "u2", models.TargetSnapshot, "s1")
	require.NoError(t, err)
	assert.False(t, liked)

	s, err = snapshots.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, s.LikeCount)
}

func TestToggleLike_Bridge(t *testing.T) {
	svc, _, bridgeRepo := newTestService(t)
	ctx := context.Background()

	liked, err := svc.ToggleLike(ctx, "u1", models.TargetBridge, "b1")
	require.NoError(t, err)
	assert.True(t, liked)

	b, err := bridgeRepo.FindByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Metrics.Likes)
}

func TestToggleLike_InvalidTarget(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ToggleLike(context.Background(), "u1", "comment", "x")
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestToggleSave_SnapshotCounter(t *testing.T) {
	svc, snapshots, _ := newTestService(t)
	ctx := context.Background()

	saved, err := svc.ToggleSave(ctx, "u2", models.TargetSnapshot, "s1")
	require.NoError(t, err)
	assert.True(t, saved)

	s, err := snapshots.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.SaveCount)
}

func TestIsLikedIsSaved(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	liked, err := svc.IsLiked(ctx, "u1", models.TargetBridge, "b1")
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = svc.ToggleLike(ctx, "u1", models.TargetBridge, "b1")
	require.NoError(t, err)
	_, err = svc.ToggleSave(ctx, "u1", models.TargetBridge, "b1")
	require.NoError(t, err)

	liked, err = svc.IsLiked(ctx, "u1", models.TargetBridge, "b1")
	require.NoError(t, err)
	assert.True(t, liked)

	saved, err := svc.IsSaved(ctx, "u1", models.TargetBridge, "b1")
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestGetSavedItems(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ToggleSave(ctx, "u1", models.TargetBridge, "b1")
	require.NoError(t, err)
	_, err = svc.ToggleSave(ctx, "u1", models.TargetSnapshot, "s2")
	require.NoError(t, err)

	saves, err := svc.GetSavedItems(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, saves, 2)

	saves, err = svc.GetSavedItems(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, saves)
}

func TestGetCounts_WithoutCache(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ToggleLike(ctx, "u1", models.TargetBridge, "b1")
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, "u2", models.TargetBridge, "b1")
	require.NoError(t, err)

	counts, err := svc.GetCounts(ctx, models.TargetBridge, "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Likes)
}

func TestCountGiven_FeedsGamification(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ToggleLike(ctx, "u1", models.TargetBridge, "b1")
	require.NoError(t, err)
	_, err = svc.ToggleSave(ctx, "u1", models.TargetBridge, "b1")
	require.NoError(t, err)
	// Snapshot interactions do not count toward bridge totals.
	_, err = svc.ToggleLike(ctx, "u1", models.TargetSnapshot, "s2")
	require.NoError(t, err)

	totals, err := svc.CountGiven(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, totals.BridgesLiked)
	assert.Equal(t, 1, totals.BridgesSaved)
}
