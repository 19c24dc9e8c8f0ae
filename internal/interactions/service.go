// internal/interactions/service.go
// Toggle-style likes and saves over snapshots and bridges. The database is
// the source of truth; Redis only caches per-target counts and is invalidated
// on every toggle.

package interactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/bridgeup/bridgeup-backend/internal/bridges"
	"github.com/bridgeup/bridgeup-backend/internal/gamification"
	"github.com/bridgeup/bridgeup-backend/internal/models"
)

var ErrInvalidTarget = errors.New("invalid interaction target")

const countsCacheTTL = 5 * time.Minute

// TargetCounts is the engagement summary for one snapshot or bridge.
type TargetCounts struct {
	Likes int `json:"likes"`
	Saves int `json:"saves"`
}

type Service interface {
	ToggleLike(ctx context.Context, userID, targetType, targetID string) (bool, error)
	ToggleSave(ctx context.Context, userID, targetType, targetID string) (bool, error)
	IsLiked(ctx context.Context, userID, targetType, targetID string) (bool, error)
	IsSaved(ctx context.Context, userID, targetType, targetID string) (bool, error)
	GetSavedItems(ctx context.Context, userID string) ([]*models.Save, error)
	GetCounts(ctx context.Context, targetType, targetID string) (*TargetCounts, error)
	CountGiven(ctx context.Context, userID string) (gamification.InteractionTotals, error)
}

type service struct {
	repo       Repository
	snapshots  bridges.SnapshotRepository
	bridgeRepo bridges.BridgeRepository
	redis      *redis.Client
	now        func() time.Time
}

// NewService wires interaction storage to the target repositories whose
// counters it maintains. The redis client may be nil; caching is then
// skipped entirely.
func NewService(repo Repository, snapshots bridges.SnapshotRepository, bridgeRepo bridges.BridgeRepository, redisClient *redis.Client) Service {
	return &service{
		repo:       repo,
		snapshots:  snapshots,
		bridgeRepo: bridgeRepo,
		redis:      redisClient,
		now:        time.Now,
	}
}

func (s *service) ToggleLike(ctx context.Context, userID, targetType, targetID string) (bool, error) {
	if err := validateTarget(targetType); err != nil {
		return false, err
	}

	_, err := s.repo.FindLike(ctx, userID, targetType, targetID)
	switch {
	case err == nil:
		if err := s.repo.DeleteLike(ctx, userID, targetType, targetID); err != nil {
			return false, fmt.Errorf("delete like: %w", err)
		}
		if err := s.adjustCounter(ctx, targetType, targetID, "likes", -1); err != nil {
			return false, err
		}
		s.invalidateCounts(ctx, targetType, targetID)
		recordToggle("like", "off")
		return false, nil

	case errors.Is(err, ErrNotFound):
		like := &models.Like{
			ID:         uuid.New().String(),
			UserID:     userID,
			TargetType: targetType,
			TargetID:   targetID,
			CreatedAt:  s.now().UTC(),
		}
		if err := s.repo.InsertLike(ctx, like); err != nil {
			return false, fmt.Errorf("insert like: %w", err)
		}
		if err := s.adjustCounter(ctx, targetType, targetID, "likes", 1); err != nil {
			return false, err
		}
		s.invalidateCounts(ctx, targetType, targetID)
		recordToggle("like", "on")
		return true, nil

	default:
		return false, fmt.Errorf("find like: %w", err)
	}
}

func (s *service) ToggleSave(ctx context.Context, userID, targetType, targetID string) (bool, error) {
	if err := validateTarget(targetType); err != nil {
		return false, err
	}

	_, err := s.repo.FindSave(ctx, userID, targetType, targetID)
	switch {
	case err == nil:
		if err := s.repo.DeleteSave(ctx, userID, targetType, targetID); err != nil {
			return false, fmt.Errorf("delete save: %w", err)
		}
		if err := s.adjustCounter(ctx, targetType, targetID, "saves", -1); err != nil {
			return false, err
		}
		s.invalidateCounts(ctx, targetType, targetID)
		recordToggle("save", "off")
		return false, nil

	case errors.Is(err, ErrNotFound):
		save := &models.Save{
			ID:         uuid.New().String(),
			UserID:     userID,
			TargetType: targetType,
			TargetID:   targetID,
			CreatedAt:  s.now().UTC(),
		}
		if err := s.repo.InsertSave(ctx, save); err != nil {
			return false, fmt.Errorf("insert save: %w", err)
		}
		if err := s.adjustCounter(ctx, targetType, targetID, "saves", 1); err != nil {
			return false, err
		}
		s.invalidateCounts(ctx, targetType, targetID)
		recordToggle("save", "on")
		return true, nil

	default:
		return false, fmt.Errorf("find save: %w", err)
	}
}

func (s *service) IsLiked(ctx context.Context, userID, targetType, targetID string) (bool, error) {
	_, err := s.repo.FindLike(ctx, userID, targetType, targetID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) IsSaved(ctx context.Context, userID, targetType, targetID string) (bool, error) {
	_, err := s.repo.FindSave(ctx, userID, targetType, targetID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) GetSavedItems(ctx context.Context, userID string) ([]*models.Save, error) {
	return s.repo.ListSavesByUser(ctx, userID)
}

// GetCounts returns like/save counts for a target, cache-aside over Redis.
func (s *service) GetCounts(ctx context.Context, targetType, targetID string) (*TargetCounts, error) {
	if err := validateTarget(targetType); err != nil {
		return nil, err
	}

	key := countsKey(targetType, targetID)
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, key).Result(); err == nil {
			counts := &TargetCounts{}
			if err := json.Unmarshal([]byte(data), counts); err == nil {
				return counts, nil
			}
		}
	}

	counts, err := s.loadCounts(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(counts); err == nil {
			s.redis.Set(ctx, key, data, countsCacheTTL)
		}
	}
	return counts, nil
}

// CountGiven reports how many bridges the user has liked and saved. These
// totals feed the gamification engine's social badges.
func (s *service) CountGiven(ctx context.Context, userID string) (gamification.InteractionTotals, error) {
	liked, err := s.repo.CountLikesGiven(ctx, userID, models.TargetBridge)
	if err != nil {
		return gamification.InteractionTotals{}, fmt.Errorf("count likes given: %w", err)
	}
	saved, err := s.repo.CountSavesGiven(ctx, userID, models.TargetBridge)
	if err != nil {
		return gamification.InteractionTotals{}, fmt.Errorf("count saves given: %w", err)
	}
	return gamification.InteractionTotals{BridgesLiked: liked, BridgesSaved: saved}, nil
}

func (s *service) adjustCounter(ctx context.Context, targetType, targetID, counter string, delta int) error {
	var err error
	switch targetType {
	case models.TargetSnapshot:
		err = s.snapshots.IncrementCount(ctx, targetID, counter, delta)
	case models.TargetBridge:
		// Bridges track likes only; saves live in the saves table alone.
		if counter == "likes" {
			err = s.bridgeRepo.IncrementMetric(ctx, targetID, "likes", delta)
		}
	}
	if err != nil {
		return fmt.Errorf("adjust %s counter on %s %s: %w", counter, targetType, targetID, err)
	}
	return nil
}

func (s *service) loadCounts(ctx context.Context, targetType, targetID string) (*TargetCounts, error) {
	switch targetType {
	case models.TargetSnapshot:
		snapshot, err := s.snapshots.FindByID(ctx, targetID)
		if err != nil {
			return nil, err
		}
		return &TargetCounts{Likes: snapshot.LikeCount, Saves: snapshot.SaveCount}, nil
	case models.TargetBridge:
		bridge, err := s.bridgeRepo.FindByID(ctx, targetID)
		if err != nil {
			return nil, err
		}
		return &TargetCounts{Likes: bridge.Metrics.Likes}, nil
	}
	return nil, ErrInvalidTarget
}

func (s *service) invalidateCounts(ctx context.Context, targetType, targetID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, countsKey(targetType, targetID)).Err(); err != nil {
		log.Warn().Err(err).Str("target", targetID).Msg("failed to invalidate counts cache")
	}
}

func countsKey(targetType, targetID string) string {
	return fmt.Sprintf("counts:%s:%s", targetType, targetID)
}

func validateTarget(targetType string) error {
	switch targetType {
	case models.TargetSnapshot, models.TargetBridge:
		return nil
	}
	return ErrInvalidTarget
}
