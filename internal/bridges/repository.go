// internal/bridges/repository.go
// Storage for snapshots and bridges. The service layer only sees the
// interfaces; Postgres backs production and the in-memory implementation
// backs tests and demo mode.

package bridges

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

// SnapshotRepository is the capability set the matching pipeline needs
// from snapshot storage.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *models.Snapshot) error
	FindByID(ctx context.Context, id string) (*models.Snapshot, error)
	ListAll(ctx context.Context) ([]*models.Snapshot, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Snapshot, error)
	ListPending(ctx context.Context, limit int, oldestFirst bool) ([]*models.Snapshot, error)
	SetPendingMatch(ctx context.Context, id string, pending bool) error
	IncrementCount(ctx context.Context, id, counter string, delta int) error
}

// BridgeRepository stores bridges and their engagement metrics.
type BridgeRepository interface {
	Save(ctx context.Context, bridge *models.Bridge) error
	FindByID(ctx context.Context, id string) (*models.Bridge, error)
	ListAll(ctx context.Context) ([]*models.Bridge, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Bridge, error)
	IncrementMetric(ctx context.Context, id, metric string, delta int) error
}

//
// Postgres implementations
//

type postgresSnapshotRepository struct {
	db *sqlx.DB
}

func NewPostgresSnapshotRepository(db *sqlx.DB) SnapshotRepository {
	return &postgresSnapshotRepository{db: db}
}

func (r *postgresSnapshotRepository) Save(ctx context.Context, s *models.Snapshot) error {
	query := `
		INSERT INTO snapshots (id, user_id, media_type, media_path, text, themes, locale, pending_match, created_at, like_count, save_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			pending_match = EXCLUDED.pending_match,
			like_count = EXCLUDED.like_count,
			save_count = EXCLUDED.save_count`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.MediaType, s.MediaPath, s.Text,
		pq.Array(s.Themes), s.Locale, s.PendingMatch, s.CreatedAt,
		s.LikeCount, s.SaveCount,
	)
	return err
}

func (r *postgresSnapshotRepository) FindByID(ctx context.Context, id string) (*models.Snapshot, error) {
	query := `
		SELECT id, user_id, media_type, media_path, text, themes, locale, pending_match, created_at, like_count, save_count
		FROM snapshots WHERE id = $1`

	s := &models.Snapshot{}
	err := r.db.QueryRowxContext(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.MediaType, &s.MediaPath, &s.Text,
		pq.Array(&s.Themes), &s.Locale, &s.PendingMatch, &s.CreatedAt,
		&s.LikeCount, &s.SaveCount,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresSnapshotRepository) ListAll(ctx context.Context) ([]*models.Snapshot, error) {
	query := `
		SELECT id, user_id, media_type, media_path, text, themes, locale, pending_match, created_at, like_count, save_count
		FROM snapshots ORDER BY created_at DESC`
	return r.scanSnapshots(ctx, query)
}

func (r *postgresSnapshotRepository) ListByUser(ctx context.Context, userID string) ([]*models.Snapshot, error) {
	query := `
		SELECT id, user_id, media_type, media_path, text, themes, locale, pending_match, created_at, like_count, save_count
		FROM snapshots WHERE user_id = $1 ORDER BY created_at DESC`
	return r.scanSnapshots(ctx, query, userID)
}

func (r *postgresSnapshotRepository) ListPending(ctx context.Context, limit int, oldestFirst bool) ([]*models.Snapshot, error) {
	order := "DESC"
	if oldestFirst {
		order = "ASC"
	}
	query := `
		SELECT id, user_id, media_type, media_path, text, themes, locale, pending_match, created_at, like_count, save_count
		FROM snapshots WHERE pending_match = TRUE ORDER BY created_at ` + order + ` LIMIT $1`
	return r.scanSnapshots(ctx, query, limit)
}

func (r *postgresSnapshotRepository) SetPendingMatch(ctx context.Context, id string, pending bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE snapshots SET pending_match = $1 WHERE id = $2`, pending, id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresSnapshotRepository) IncrementCount(ctx context.Context, id, counter string, delta int) error {
	var column string
	switch counter {
	case "likes":
		column = "like_count"
	case "saves":
		column = "save_count"
	default:
		return errors.New("unknown snapshot counter: " + counter)
	}

	query := `UPDATE snapshots SET ` + column + ` = ` + column + ` + $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresSnapshotRepository) scanSnapshots(ctx context.Context, query string, args ...interface{}) ([]*models.Snapshot, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]*models.Snapshot, 0)
	for rows.Next() {
		s := &models.Snapshot{}
		err := rows.Scan(
			&s.ID, &s.UserID, &s.MediaType, &s.MediaPath, &s.Text,
			pq.Array(&s.Themes), &s.Locale, &s.PendingMatch, &s.CreatedAt,
			&s.LikeCount, &s.SaveCount,
		)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

type postgresBridgeRepository struct {
	db *sqlx.DB
}

func NewPostgresBridgeRepository(db *sqlx.DB) BridgeRepository {
	return &postgresBridgeRepository{db: db}
}

func (r *postgresBridgeRepository) Save(ctx context.Context, b *models.Bridge) error {
	query := `
		INSERT INTO bridges (id, left_snapshot_id, right_snapshot_id, themes, created_at, views, likes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.LeftSnapshotID, b.RightSnapshotID,
		pq.Array(b.Themes), b.CreatedAt, b.Metrics.Views, b.Metrics.Likes,
	)
	return err
}

func (r *postgresBridgeRepository) FindByID(ctx context.Context, id string) (*models.Bridge, error) {
	query := `
		SELECT id, left_snapshot_id, right_snapshot_id, themes, created_at, views, likes
		FROM bridges WHERE id = $1`

	b := &models.Bridge{}
	err := r.db.QueryRowxContext(ctx, query, id).Scan(
		&b.ID, &b.LeftSnapshotID, &b.RightSnapshotID,
		pq.Array(&b.Themes), &b.CreatedAt, &b.Metrics.Views, &b.Metrics.Likes,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *postgresBridgeRepository) ListAll(ctx context.Context) ([]*models.Bridge, error) {
	query := `
		SELECT id, left_snapshot_id, right_snapshot_id, themes, created_at, views, likes
		FROM bridges ORDER BY created_at DESC`
	return r.scanBridges(ctx, query)
}

func (r *postgresBridgeRepository) ListForUser(ctx context.Context, userID string) ([]*models.Bridge, error) {
	query := `
		SELECT b.id, b.left_snapshot_id, b.right_snapshot_id, b.themes, b.created_at, b.views, b.likes
		FROM bridges b
		JOIN snapshots s ON s.id IN (b.left_snapshot_id, b.right_snapshot_id)
		WHERE s.user_id = $1
		GROUP BY b.id, b.left_snapshot_id, b.right_snapshot_id, b.themes, b.created_at, b.views, b.likes
		ORDER BY b.created_at DESC`
	return r.scanBridges(ctx, query, userID)
}

func (r *postgresBridgeRepository) IncrementMetric(ctx context.Context, id, metric string, delta int) error {
	var column string
	switch metric {
	case "views":
		column = "views"
	case "likes":
		column = "likes"
	default:
		return errors.New("unknown bridge metric: " + metric)
	}

	query := `UPDATE bridges SET ` + column + ` = ` + column + ` + $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresBridgeRepository) scanBridges(ctx context.Context, query string, args ...interface{}) ([]*models.Bridge, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bridges := make([]*models.Bridge, 0)
	for rows.Next() {
		b := &models.Bridge{}
		err := rows.Scan(
			&b.ID, &b.LeftSnapshotID, &b.RightSnapshotID,
			pq.Array(&b.Themes), &b.CreatedAt, &b.Metrics.Views, &b.Metrics.Likes,
		)
		if err != nil {
			return nil, err
		}
		bridges = append(bridges, b)
	}
	return bridges, rows.Err()
}

//
// In-memory implementations (tests and demo mode)
//

type MemorySnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*models.Snapshot
	order     []string
}

func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{snapshots: make(map[string]*models.Snapshot)}
}

func (r *MemorySnapshotRepository) Save(ctx context.Context, s *models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.snapshots[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	clone := *s
	r.snapshots[s.ID] = &clone
	return nil
}

func (r *MemorySnapshotRepository) FindByID(ctx context.Context, id string) (*models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.snapshots[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *MemorySnapshotRepository) ListAll(ctx context.Context) ([]*models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.list(func(*models.Snapshot) bool { return true }, false, 0), nil
}

func (r *MemorySnapshotRepository) ListByUser(ctx context.Context, userID string) ([]*models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.list(func(s *models.Snapshot) bool { return s.UserID == userID }, false, 0), nil
}

func (r *MemorySnapshotRepository) ListPending(ctx context.Context, limit int, oldestFirst bool) ([]*models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.list(func(s *models.Snapshot) bool { return s.PendingMatch }, oldestFirst, limit), nil
}

func (r *MemorySnapshotRepository) SetPendingMatch(ctx context.Context, id string, pending bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.snapshots[id]
	if !ok {
		return ErrNotFound
	}
	s.PendingMatch = pending
	return nil
}

// IncrementCount adjusts a like/save counter. Used by the interactions
// service in demo mode.
func (r *MemorySnapshotRepository) IncrementCount(ctx context.Context, id, counter string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.snapshots[id]
	if !ok {
		return ErrNotFound
	}
	switch counter {
	case "likes":
		s.LikeCount += delta
	case "saves":
		s.SaveCount += delta
	default:
		return errors.New("unknown snapshot counter: " + counter)
	}
	return nil
}

func (r *MemorySnapshotRepository) list(keep func(*models.Snapshot) bool, oldestFirst bool, limit int) []*models.Snapshot {
	snapshots := make([]*models.Snapshot, 0, len(r.order))
	for _, id := range r.order {
		if s := r.snapshots[id]; keep(s) {
			clone := *s
			snapshots = append(snapshots, &clone)
		}
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		if oldestFirst {
			return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
		}
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}
	return snapshots
}

type MemoryBridgeRepository struct {
	mu      sync.RWMutex
	bridges map[string]*models.Bridge
	order   []string

	// snapshots resolves bridge membership for ListForUser.
	snapshots *MemorySnapshotRepository
}

func NewMemoryBridgeRepository(snapshots *MemorySnapshotRepository) *MemoryBridgeRepository {
	return &MemoryBridgeRepository{
		bridges:   make(map[string]*models.Bridge),
		snapshots: snapshots,
	}
}

func (r *MemoryBridgeRepository) Save(ctx context.Context, b *models.Bridge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bridges[b.ID]; !exists {
		r.order = append(r.order, b.ID)
	}
	clone := *b
	r.bridges[b.ID] = &clone
	return nil
}

func (r *MemoryBridgeRepository) FindByID(ctx context.Context, id string) (*models.Bridge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bridges[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *MemoryBridgeRepository) ListAll(ctx context.Context) ([]*models.Bridge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bridges := make([]*models.Bridge, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.bridges[id]
		bridges = append(bridges, &clone)
	}
	sort.SliceStable(bridges, func(i, j int) bool {
		return bridges[i].CreatedAt.After(bridges[j].CreatedAt)
	})
	return bridges, nil
}

func (r *MemoryBridgeRepository) ListForUser(ctx context.Context, userID string) ([]*models.Bridge, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	bridges := make([]*models.Bridge, 0)
	for _, b := range all {
		if r.bridgeBelongsTo(ctx, b, userID) {
			bridges = append(bridges, b)
		}
	}
	return bridges, nil
}

func (r *MemoryBridgeRepository) IncrementMetric(ctx context.Context, id, metric string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bridges[id]
	if !ok {
		return ErrNotFound
	}
	switch metric {
	case "views":
		b.Metrics.Views += delta
	case "likes":
		b.Metrics.Likes += delta
	default:
		return errors.New("unknown bridge metric: " + metric)
	}
	return nil
}

func (r *MemoryBridgeRepository) bridgeBelongsTo(ctx context.Context, b *models.Bridge, userID string) bool {
	for _, snapshotID := range []string{b.LeftSnapshotID, b.RightSnapshotID} {
		s, err := r.snapshots.FindByID(ctx, snapshotID)
		if err == nil && s.UserID == userID {
			return true
		}
	}
	return false
}
