// internal/interactions/repository.go
// Likes and saves storage. One row per (user, target); toggling deletes or
// inserts the row, counters on the target move with it.

package interactions

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/bridgeup/bridgeup-backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	FindLike(ctx context.Context, userID, targetType, targetID string) (*models.Like, error)
	InsertLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, targetType, targetID string) error

	FindSave(ctx context.Context, userID, targetType, targetID string) (*models.Save, error)
	InsertSave(ctx context.Context, save *models.Save) error
	DeleteSave(ctx context.Context, userID, targetType, targetID string) error

	ListSavesByUser(ctx context.Context, userID string) ([]*models.Save, error)
	CountLikesGiven(ctx context.Context, userID, targetType string) (int, error)
	CountSavesGiven(ctx context.Context, userID, targetType string) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) FindLike(ctx context.Context, userID, targetType, targetID string) (*models.Like, error) {
	query := `
		SELECT id, user_id, target_type, target_id, created_at
		FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = $3`

	like := &models.Like{}
	err := r.db.GetContext(ctx, like, query, userID, targetType, targetID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return like, nil
}

func (r *postgresRepository) InsertLike(ctx context.Context, like *models.Like) error {
	query := `
		INSERT INTO likes (id, user_id, target_type, target_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		like.ID, like.UserID, like.TargetType, like.TargetID, like.CreatedAt)
	return err
}

func (r *postgresRepository) DeleteLike(ctx context.Context, userID, targetType, targetID string) error {
	query := `DELETE FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = $3`
	_, err := r.db.ExecContext(ctx, query, userID, targetType, targetID)
	return err
}

func (r *postgresRepository) FindSave(ctx context.Context, userID, targetType, targetID string) (*models.Save, error) {
	query := `
		SELECT id, user_id, target_type, target_id, created_at
		FROM saves WHERE user_id = $1 AND target_type = $2 AND target_id = $3`

	save := &models.Save{}
	err := r.db.GetContext(ctx, save, query, userID, targetType, targetID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return save, nil
}

func (r *postgresRepository) InsertSave(ctx context.Context, save *models.Save) error {
	query := `
		INSERT INTO saves (id, user_id, target_type, target_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		save.ID, save.UserID, save.TargetType, save.TargetID, save.CreatedAt)
	return err
}

func (r *postgresRepository) DeleteSave(ctx context.Context, userID, targetType, targetID string) error {
	query := `DELETE FROM saves WHERE user_id = $1 AND target_type = $2 AND target_id = $3`
	_, err := r.db.ExecContext(ctx, query, userID, targetType, targetID)
	return err
}

func (r *postgresRepository) ListSavesByUser(ctx context.Context, userID string) ([]*models.Save, error) {
	query := `
		SELECT id, user_id, target_type, target_id, created_at
		FROM saves WHERE user_id = $1 ORDER BY created_at DESC`

	saves := make([]*models.Save, 0)
	if err := r.db.SelectContext(ctx, &saves, query, userID); err != nil {
		return nil, err
	}
	return saves, nil
}

func (r *postgresRepository) CountLikesGiven(ctx context.Context, userID, targetType string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM likes WHERE user_id = $1 AND target_type = $2`
	err := r.db.GetContext(ctx, &count, query, userID, targetType)
	return count, err
}

func (r *postgresRepository) CountSavesGiven(ctx context.Context, userID, targetType string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM saves WHERE user_id = $1 AND target_type = $2`
	err := r.db.GetContext(ctx, &count, query, userID, targetType)
	return count, err
}

// MemoryRepository backs tests and demo mode.
type MemoryRepository struct {
	mu    sync.RWMutex
	likes map[string]*models.Like
	saves map[string]*models.Save
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		likes: make(map[string]*models.Like),
		saves: make(map[string]*models.Save),
	}
}

func interactionKey(userID, targetType, targetID string) string {
	return userID + "/" + targetType + "/" + targetID
}

func (r *MemoryRepository) FindLike(ctx context.Context, userID, targetType, targetID string) (*models.Like, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	like, ok := r.likes[interactionKey(userID, targetType, targetID)]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *like
	return &clone, nil
}

func (r *MemoryRepository) InsertLike(ctx context.Context, like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *like
	r.likes[interactionKey(like.UserID, like.TargetType, like.TargetID)] = &clone
	return nil
}

func (r *MemoryRepository) DeleteLike(ctx context.Context, userID, targetType, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes, interactionKey(userID, targetType, targetID))
	return nil
}

func (r *MemoryRepository) FindSave(ctx context.Context, userID, targetType, targetID string) (*models.Save, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	save, ok := r.saves[interactionKey(userID, targetType, targetID)]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *save
	return &clone, nil
}

func (r *MemoryRepository) InsertSave(ctx context.Context, save *models.Save) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *save
	r.saves[interactionKey(save.UserID, save.TargetType, save.TargetID)] = &clone
	return nil
}

func (r *MemoryRepository) DeleteSave(ctx context.Context, userID, targetType, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.saves, interactionKey(userID, targetType, targetID))
	return nil
}

func (r *MemoryRepository) ListSavesByUser(ctx context.Context, userID string) ([]*models.Save, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	saves := make([]*models.Save, 0)
	for _, save := range r.saves {
		if save.UserID == userID {
			clone := *save
			saves = append(saves, &clone)
		}
	}
	return saves, nil
}

func (r *MemoryRepository) CountLikesGiven(ctx context.Context, userID, targetType string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, like := range r.likes {
		if like.UserID == userID && like.TargetType == targetType {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) CountSavesGiven(ctx context.Context, userID, targetType string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, save := range r.saves {
		if save.UserID == userID && save.TargetType == targetType {
			count++
		}
	}
	return count, nil
}
