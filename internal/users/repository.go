// internal/users/repository.go
package users

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bridgeup/bridgeup-backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	Save(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Save(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, display_name, photo_url, city, themes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			photo_url = EXCLUDED.photo_url,
			city = EXCLUDED.city,
			themes = EXCLUDED.themes,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.DisplayName, u.PhotoURL, u.City,
		pq.Array(u.Themes), u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, display_name, photo_url, city, themes, created_at, updated_at
		FROM users WHERE id = $1`

	u := &models.User{}
	err := r.db.QueryRowxContext(ctx, query, id).Scan(
		&u.ID, &u.DisplayName, &u.PhotoURL, &u.City,
		pq.Array(&u.Themes), &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, display_name, photo_url, city, themes, created_at, updated_at
		FROM users ORDER BY created_at DESC`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u := &models.User{}
		err := rows.Scan(
			&u.ID, &u.DisplayName, &u.PhotoURL, &u.City,
			pq.Array(&u.Themes), &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// MemoryRepository backs tests and demo mode.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*models.User)}
}

func (r *MemoryRepository) Save(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}
