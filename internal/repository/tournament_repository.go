package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/model"
)

// TournamentRepository defines read-only tournament queries.
type TournamentRepository interface {
	List(ctx context.Context, isGrandSlam *bool, limit, offset int) ([]model.Tournament, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tournament, error)
}

type tournamentRepository struct {
	db *gorm.DB
}

// NewTournamentRepository creates a new tournament repository.
func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) List(ctx context.Context, isGrandSlam *bool, limit, offset int) ([]model.Tournament, error) {
	q := r.db.WithContext(ctx).Model(&model.Tournament{})
	if isGrandSlam != nil {
		q = q.Where("is_grand_slam = ?", *isGrandSlam)
	}
	var tournaments []model.Tournament
	if err := q.Order("name asc").Limit(limit).Offset(offset).Find(&tournaments).Error; err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *tournamentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tournament, error) {
	var tournament model.Tournament
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tournament).Error; err != nil {
		return nil, err
	}
	return &tournament, nil
}
