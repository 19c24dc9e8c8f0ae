// internal/users/service.go
// Profiles and the materialized stats endpoint. The gamification engine is
// pure over already-loaded collections; this service does the loading.

package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bridgeup/bridgeup-backend/internal/bridges"
	"github.com/bridgeup/bridgeup-backend/internal/gamification"
	"github.com/bridgeup/bridgeup-backend/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type CreateUserRequest struct {
	DisplayName string   `json:"display_name" validate:"required,min=2,max=50"`
	PhotoURL    *string  `json:"photo_url"`
	City        string   `json:"city" validate:"required"`
	Themes      []string `json:"themes" validate:"max=3"`
}

type UpdateUserRequest struct {
	DisplayName *string  `json:"display_name" validate:"omitempty,min=2,max=50"`
	PhotoURL    *string  `json:"photo_url"`
	City        *string  `json:"city"`
	Themes      []string `json:"themes" validate:"max=3"`
}

// InteractionCounter reports how many bridges a user has liked and saved.
// The interactions service satisfies it.
type InteractionCounter interface {
	CountGiven(ctx context.Context, userID string) (gamification.InteractionTotals, error)
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Stats(ctx context.Context, id string) (*gamification.UserStats, error)
}

type service struct {
	repo         Repository
	snapshots    bridges.SnapshotRepository
	bridgeRepo   bridges.BridgeRepository
	interactions InteractionCounter
	engine       *gamification.Engine
	now          func() time.Time
}

func NewService(repo Repository, snapshots bridges.SnapshotRepository, bridgeRepo bridges.BridgeRepository, interactions InteractionCounter, engine *gamification.Engine) Service {
	return &service{
		repo:         repo,
		snapshots:    snapshots,
		bridgeRepo:   bridgeRepo,
		interactions: interactions,
		engine:       engine,
		now:          time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	now := s.now().UTC()
	user := &models.User{
		ID:          uuid.New().String(),
		DisplayName: strings.TrimSpace(req.DisplayName),
		PhotoURL:    req.PhotoURL,
		City:        strings.TrimSpace(req.City),
		Themes:      normalizeThemes(req.Themes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.PhotoURL != nil {
		user.PhotoURL = req.PhotoURL
	}
	if req.City != nil {
		user.City = strings.TrimSpace(*req.City)
	}
	if req.Themes != nil {
		user.Themes = normalizeThemes(req.Themes)
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

func (s *service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListAll(ctx)
}

// Stats loads everything the gamification engine needs and computes the
// user's badges, achievements, streak, points and level.
func (s *service) Stats(ctx context.Context, id string) (*gamification.UserStats, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	userSnapshots, err := s.snapshots.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list user snapshots: %w", err)
	}
	userBridges, err := s.bridgeRepo.ListForUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list user bridges: %w", err)
	}
	allBridges, err := s.bridgeRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bridges: %w", err)
	}
	allUsers, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	given, err := s.interactions.CountGiven(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count interactions given: %w", err)
	}

	return s.engine.CalculateUserStats(user, userSnapshots, userBridges, allBridges, allUsers, given), nil
}

func normalizeThemes(themes []string) []string {
	normalized := make([]string, 0, len(themes))
	for _, t := range themes {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		seen := false
		for _, n := range normalized {
			if n == t {
				seen = true
				break
			}
		}
		if !seen {
			normalized = append(normalized, t)
		}
	}
	return normalized
}
