package bridges

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgeup/bridgeup-backend/internal/matching"
	"github.com/bridgeup/bridgeup-backend/internal/models"
)

type stubUserDirectory struct {
	users map[string]*models.User
}

func (d *stubUserDirectory) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (d *stubUserDirectory) ListAll(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	return users, nil
}

func newTestService(t *testing.T) (Service, *MemorySnapshotRepository, *MemoryBridgeRepository) {
	t.Helper()

	snapshots := NewMemorySnapshotRepository()
	bridgeRepo := NewMemoryBridgeRepository(snapshots)
	users := &stubUserDirectory{users: map[string]*models.User{
		"u1": {ID: "u1", DisplayName: "Marco", City: "Rome, Italy", Themes: []string{"food", "music"}},
		"u2": {ID: "u2", DisplayName: "Yuki", City: "Tokyo, Japan", Themes: []string{"food", "places"}},
		"u3": {ID: "u3", DisplayName: "Ana", City: "Lima, Peru", Themes: []string{"study"}},
	}}

	svc := NewService(snapshots, bridgeRepo, users, matching.NewEngine(nil))
	return svc, snapshots, bridgeRepo
}

func TestCreateSnapshot_NoCandidatesStaysPending(t *testing.T) {
	svc, _, _ := newTestService(t)

	snapshot, bridge, err := svc.CreateSnapshot(context.Background(), CreateSnapshotRequest{
		UserID:    "u1",
		MediaType: "photo",
		MediaPath: "/media/pasta.jpg",
		Text:      "Sunday pasta",
		Themes:    []string{"Food"},
	})
	require.NoError(t, err)

	assert.Nil(t, bridge)
	assert.True(t, snapshot.PendingMatch)
	assert.Equal(t, models.MediaPhoto, snapshot.MediaType)
	assert.Equal(t, []string{"food"}, snapshot.Themes, "themes are lowercased")
}

func TestCreateSnapshot_CoercesVideoToPhoto(t *testing.T) {
	svc, _, _ := newTestService(t)

	snapshot, _, err := svc.CreateSnapshot(context.Background(), CreateSnapshotRequest{
		UserID:    "u1",
		MediaType: "video",
		MediaPath: "/media/clip.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaPhoto, snapshot.MediaType)
}

func TestCreateSnapshot_RejectsUnknownMediaType(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.CreateSnapshot(context.Background(), CreateSnapshotRequest{
		UserID:    "u1",
		MediaType: "hologram",
		MediaPath: "/media/x",
	})
	assert.ErrorIs(t, err, ErrInvalidMediaType)
}

func TestCreateSnapshot_MatchesPendingCounterpart(t *testing.T) {
	svc, snapshots, bridgeRepo := newTestService(t)
	ctx := context.Background()

	first, bridge, err := svc.CreateSnapshot(ctx, CreateSnapshotRequest{
		UserID:    "u1",
		MediaType: "photo",
		MediaPath: "/media/pasta.jpg",
		Text:      "Homemade pasta night",
		Themes:    []string{"food"},
	})
	require.NoError(t, err)
	require.Nil(t, bridge)

	second, bridge, err := svc.CreateSnapshot(ctx, CreateSnapshotRequest{
		UserID:    "u2",
		MediaType: "photo",
		MediaPath: "/media/ramen.jpg",
		Text:      "Late night ramen",
		Themes:    []string{"food", "places"},
	})
	require.NoError(t, err)
	require.NotNil(t, bridge, "shared food theme across cultures should match")

	assert.ElementsMatch(t, []string{first.ID, second.ID},
		[]string{bridge.LeftSnapshotID, bridge.RightSnapshotID})
	assert.ElementsMatch(t, []string{"food", "places"}, bridge.Themes)

	// Both halves left the pending pool.
	pending, err := snapshots.ListPending(ctx, 10, false)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := bridgeRepo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "bridge is created exactly once")
}

func TestProcessSnapshot_AlreadyMatched(t *testing.T) {
	svc, snapshots, _ := newTestService(t)
	ctx := context.Background()

	matched := &models.Snapshot{
		ID:           "s1",
		UserID:       "u1",
		MediaType:    models.MediaPhoto,
		MediaPath:    "/media/a.jpg",
		PendingMatch: false,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, snapshots.Save(ctx, matched))

	_, err := svc.ProcessSnapshot(ctx, "s1")
	assert.ErrorIs(t, err, ErrAlreadyMatched)
}

func TestProcessSnapshot_UnknownSnapshot(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ProcessSnapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRetryMatching_PairsPendingSnapshots(t *testing.T) {
	svc, snapshots, _ := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	seed := []*models.Snapshot{
		{ID: "s1", UserID: "u1", MediaType: models.MediaPhoto, MediaPath: "/m/1", Text: "street food tour", Themes: []string{"food"}, PendingMatch: true, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "s2", UserID: "u2", MediaType: models.MediaPhoto, MediaPath: "/m/2", Text: "food market morning", Themes: []string{"food"}, PendingMatch: true, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "s3", UserID: "u3", MediaType: models.MediaAudio, MediaPath: "/m/3", Text: "exam prep notes", Themes: []string{"study"}, PendingMatch: true, CreatedAt: now.Add(-1 * time.Hour)},
	}
	for _, s := range seed {
		require.NoError(t, snapshots.Save(ctx, s))
	}

	created, err := svc.RetryMatching(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created, "s1 and s2 pair up; s3 is left without a counterpart")

	pending, err := snapshots.ListPending(ctx, 10, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "s3", pending[0].ID)
}

func TestRecordView(t *testing.T) {
	svc, snapshots, bridgeRepo := newTestService(t)
	ctx := context.Background()

	require.NoError(t, snapshots.Save(ctx, &models.Snapshot{ID: "s1", UserID: "u1", CreatedAt: time.Now()}))
	require.NoError(t, snapshots.Save(ctx, &models.Snapshot{ID: "s2", UserID: "u2", CreatedAt: time.Now()}))
	require.NoError(t, bridgeRepo.Save(ctx, &models.Bridge{
		ID:              "b1",
		LeftSnapshotID:  "s1",
		RightSnapshotID: "s2",
		CreatedAt:       time.Now(),
	}))

	require.NoError(t, svc.RecordView(ctx, "b1"))
	require.NoError(t, svc.RecordView(ctx, "b1"))

	bridge, err := bridgeRepo.FindByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, bridge.Metrics.Views)

	assert.ErrorIs(t, svc.RecordView(ctx, "nope"), ErrBridgeNotFound)
}

func TestGetBridgeWithSnapshots(t *testing.T) {
	svc, snapshots, bridgeRepo := newTestService(t)
	ctx := context.Background()

	require.NoError(t, snapshots.Save(ctx, &models.Snapshot{ID: "s1", UserID: "u1", CreatedAt: time.Now()}))
	require.NoError(t, snapshots.Save(ctx, &models.Snapshot{ID: "s2", UserID: "u2", CreatedAt: time.Now()}))
	require.NoError(t, bridgeRepo.Save(ctx, &models.Bridge{
		ID:              "b1",
		LeftSnapshotID:  "s1",
		RightSnapshotID: "s2",
		CreatedAt:       time.Now(),
	}))

	detail, err := svc.GetBridgeWithSnapshots(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "s1", detail.Left.ID)
	assert.Equal(t, "s2", detail.Right.ID)

	_, err = svc.GetBridgeWithSnapshots(ctx, "nope")
	assert.ErrorIs(t, err, ErrBridgeNotFound)
}

func TestGetSuggestions(t *testing.T) {
	svc, snapshots, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, snapshots.Save(ctx, &models.Snapshot{
		ID: "s1", UserID: "u2", MediaType: models.MediaPhoto, MediaPath: "/m/1",
		Text: "tea ceremony", Themes: []string{"food"}, CreatedAt: time.Now().UTC(),
	}))

	suggestions, err := svc.GetSuggestions(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, suggestions)
	assert.NotEmpty(t, suggestions.PersonalizedThemes)
}
