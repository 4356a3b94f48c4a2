package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/model"
)

// PlayerRepository defines read-only player queries.
type PlayerRepository interface {
	List(ctx context.Context, search string, limit, offset int) ([]model.Player, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Player, error)
	FindBySlug(ctx context.Context, slug string) (*model.Player, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Player, error)
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) List(ctx context.Context, search string, limit, offset int) ([]model.Player, error) {
	q := r.db.WithContext(ctx).Model(&model.Player{})
	if term := strings.TrimSpace(search); term != "" {
		// LOWER + LIKE keeps the query portable across postgres and the
		// sqlite test driver.
		pattern := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", pattern, pattern)
	}
	var players []model.Player
	if err := q.Order("name asc").Limit(limit).Offset(offset).Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Player, error) {
	var player model.Player
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) FindBySlug(ctx context.Context, slug string) (*model.Player, error) {
	var player model.Player
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var players []model.Player
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}
