// internal/bridges/service.go
// Snapshot and bridge lifecycle. A snapshot is posted pending a match; the
// matching engine pairs it with another pending snapshot and the pair becomes
// a bridge. Unmatched snapshots stay pending and are swept by RetryMatching.

package bridges

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/bridgeup/bridgeup-backend/internal/matching"
	"github.com/bridgeup/bridgeup-backend/internal/models"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrBridgeNotFound   = errors.New("bridge not found")
	ErrAlreadyMatched   = errors.New("snapshot is already part of a bridge")
	ErrInvalidMediaType = errors.New("invalid media type")
)

// pendingSweepLimit caps how many snapshots one RetryMatching pass considers.
const pendingSweepLimit = 50

// UserDirectory is the slice of user storage the matching pipeline needs.
// The users package's repository satisfies it.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
}

type CreateSnapshotRequest struct {
	UserID    string   `json:"user_id" validate:"required"`
	MediaType string   `json:"media_type" validate:"required,oneof=photo audio video"`
	MediaPath string   `json:"media_path" validate:"required"`
	Text      string   `json:"text" validate:"max=500"`
	Themes    []string `json:"themes" validate:"max=3"`
	Locale    string   `json:"locale"`
}

// BridgeWithSnapshots is the detail view of a bridge with both halves
// resolved.
type BridgeWithSnapshots struct {
	Bridge *models.Bridge   `json:"bridge"`
	Left   *models.Snapshot `json:"left"`
	Right  *models.Snapshot `json:"right"`
}

type Service interface {
	CreateSnapshot(ctx context.Context, req CreateSnapshotRequest) (*models.Snapshot, *models.Bridge, error)
	ProcessSnapshot(ctx context.Context, snapshotID string) (*models.Bridge, error)
	RetryMatching(ctx context.Context) (int, error)
	GetBridges(ctx context.Context, userID string) ([]*models.Bridge, error)
	GetBridgeWithSnapshots(ctx context.Context, bridgeID string) (*BridgeWithSnapshots, error)
	GetPendingSnapshots(ctx context.Context) ([]*models.Snapshot, error)
	RecordView(ctx context.Context, bridgeID string) error
	GetSuggestions(ctx context.Context, userID string) (*matching.Suggestions, error)
}

type service struct {
	snapshots  SnapshotRepository
	bridgeRepo BridgeRepository
	users      UserDirectory
	engine     matching.Engine
	now        func() time.Time
}

func NewService(snapshots SnapshotRepository, bridgeRepo BridgeRepository, users UserDirectory, engine matching.Engine) Service {
	return &service{
		snapshots:  snapshots,
		bridgeRepo: bridgeRepo,
		users:      users,
		engine:     engine,
		now:        time.Now,
	}
}

// CreateSnapshot stores a new snapshot and immediately tries to match it.
// The returned bridge is nil when no pending counterpart scored above the
// floor; the snapshot then stays pending for a later sweep.
func (s *service) CreateSnapshot(ctx context.Context, req CreateSnapshotRequest) (*models.Snapshot, *models.Bridge, error) {
	mediaType, err := normalizeMediaType(req.MediaType)
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		return nil, nil, fmt.Errorf("resolve snapshot owner: %w", err)
	}

	snapshot := &models.Snapshot{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		MediaType:    mediaType,
		MediaPath:    req.MediaPath,
		Text:         strings.TrimSpace(req.Text),
		Themes:       normalizeThemes(req.Themes),
		Locale:       req.Locale,
		PendingMatch: true,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return nil, nil, fmt.Errorf("save snapshot: %w", err)
	}
	recordSnapshotCreated(mediaType)

	bridge, err := s.ProcessSnapshot(ctx, snapshot.ID)
	if err != nil {
		// The snapshot is stored; matching can be retried later.
		log.Warn().Err(err).Str("snapshot_id", snapshot.ID).Msg("initial match attempt failed")
		return snapshot, nil, nil
	}
	if bridge != nil {
		snapshot.PendingMatch = false
	}
	return snapshot, bridge, nil
}

// ProcessSnapshot runs the matching engine over the other pending snapshots.
// On a match it creates the bridge exactly once and clears both pendingMatch
// flags. Returns (nil, nil) when nothing matched.
func (s *service) ProcessSnapshot(ctx context.Context, snapshotID string) (*models.Bridge, error) {
	target, err := s.snapshots.FindByID(ctx, snapshotID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !target.PendingMatch {
		return nil, ErrAlreadyMatched
	}

	pending, err := s.snapshots.ListPending(ctx, pendingSweepLimit, false)
	if err != nil {
		return nil, fmt.Errorf("list pending snapshots: %w", err)
	}

	candidates := make([]*models.Snapshot, 0, len(pending))
	for _, p := range pending {
		if p.ID != target.ID {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	matches := s.engine.FindBestSnapshotMatches(target, candidates, users, 1)
	if len(matches) == 0 {
		return nil, nil
	}

	best := matches[0]
	bridge, err := s.createBridge(ctx, target, best.Snapshot)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("bridge_id", bridge.ID).
		Str("left", target.ID).
		Str("right", best.Snapshot.ID).
		Float64("score", best.Score).
		Msg("bridge created")
	return bridge, nil
}

// createBridge persists the pair and clears both pending flags. Order of
// operations matters: the bridge row exists before either flag flips, so a
// crash in between leaves a re-runnable pending snapshot, never a lost pair.
func (s *service) createBridge(ctx context.Context, left, right *models.Snapshot) (*models.Bridge, error) {
	bridge := &models.Bridge{
		ID:              uuid.New().String(),
		LeftSnapshotID:  left.ID,
		RightSnapshotID: right.ID,
		Themes:          unionThemes(left.Themes, right.Themes),
		CreatedAt:       s.now().UTC(),
	}

	if err := s.bridgeRepo.Save(ctx, bridge); err != nil {
		return nil, fmt.Errorf("save bridge: %w", err)
	}
	for _, snapshotID := range []string{left.ID, right.ID} {
		if err := s.snapshots.SetPendingMatch(ctx, snapshotID, false); err != nil {
			return nil, fmt.Errorf("clear pending flag on %s: %w", snapshotID, err)
		}
	}

	recordBridgeCreated()
	return bridge, nil
}

// RetryMatching sweeps pending snapshots oldest first and reports how many
// bridges were created.
func (s *service) RetryMatching(ctx context.Context) (int, error) {
	pending, err := s.snapshots.ListPending(ctx, pendingSweepLimit, true)
	if err != nil {
		return 0, fmt.Errorf("list pending snapshots: %w", err)
	}

	created := 0
	for _, snapshot := range pending {
		bridge, err := s.ProcessSnapshot(ctx, snapshot.ID)
		if err != nil {
			// A snapshot matched earlier in this same sweep.
			if errors.Is(err, ErrAlreadyMatched) {
				continue
			}
			return created, err
		}
		if bridge != nil {
			created++
		}
	}
	return created, nil
}

func (s *service) GetBridges(ctx context.Context, userID string) ([]*models.Bridge, error) {
	if userID == "" {
		return s.bridgeRepo.ListAll(ctx)
	}
	return s.bridgeRepo.ListForUser(ctx, userID)
}

func (s *service) GetBridgeWithSnapshots(ctx context.Context, bridgeID string) (*BridgeWithSnapshots, error) {
	bridge, err := s.bridgeRepo.FindByID(ctx, bridgeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBridgeNotFound
		}
		return nil, fmt.Errorf("load bridge: %w", err)
	}

	left, err := s.snapshots.FindByID(ctx, bridge.LeftSnapshotID)
	if err != nil {
		return nil, fmt.Errorf("load left snapshot: %w", err)
	}
	right, err := s.snapshots.FindByID(ctx, bridge.RightSnapshotID)
	if err != nil {
		return nil, fmt.Errorf("load right snapshot: %w", err)
	}

	return &BridgeWithSnapshots{Bridge: bridge, Left: left, Right: right}, nil
}

func (s *service) GetPendingSnapshots(ctx context.Context) ([]*models.Snapshot, error) {
	return s.snapshots.ListPending(ctx, pendingSweepLimit, false)
}

func (s *service) RecordView(ctx context.Context, bridgeID string) error {
	err := s.bridgeRepo.IncrementMetric(ctx, bridgeID, "views", 1)
	if errors.Is(err, ErrNotFound) {
		return ErrBridgeNotFound
	}
	if err == nil {
		recordBridgeView()
	}
	return err
}

// GetSuggestions materializes the collections the matching engine needs and
// aggregates top bridges, potential connections, and personalized themes.
func (s *service) GetSuggestions(ctx context.Context, userID string) (*matching.Suggestions, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	snapshots, err := s.snapshots.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return s.engine.BridgeSuggestions(user, snapshots, users), nil
}

// normalizeMediaType validates the media kind. Video uploads are stored as
// photos: the app keeps only the thumbnail frame for bridge display.
func normalizeMediaType(mediaType string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case models.MediaPhoto:
		return models.MediaPhoto, nil
	case models.MediaAudio:
		return models.MediaAudio, nil
	case models.MediaVideo:
		return models.MediaPhoto, nil
	default:
		return "", ErrInvalidMediaType
	}
}

func normalizeThemes(themes []string) []string {
	normalized := make([]string, 0, len(themes))
	for _, t := range themes {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if !containsString(normalized, t) {
			normalized = append(normalized, t)
		}
	}
	return normalized
}

func unionThemes(left, right []string) []string {
	union := make([]string, 0, len(left)+len(right))
	for _, t := range append(append([]string{}, left...), right...) {
		if !containsString(union, t) {
			union = append(union, t)
		}
	}
	return union
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
