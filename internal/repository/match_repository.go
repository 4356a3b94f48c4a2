package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/model"
)

// MatchFilter narrows a match listing. Nil fields are ignored.
type MatchFilter struct {
	TournamentID *uuid.UUID
	Year         *int
	BestOf       *int
	IsFinal      *bool
	Category     string
}

// MatchRepository defines read-only match queries. Matches are reference
// data; there is no write path outside seeding.
type MatchRepository interface {
	List(ctx context.Context, filter MatchFilter, limit, offset int) ([]model.Match, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Match, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Match, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new match repository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) expanded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Tournament").
		Preload("Player1").
		Preload("Player2")
}

func (r *matchRepository) List(ctx context.Context, filter MatchFilter, limit, offset int) ([]model.Match, error) {
	q := r.expanded(ctx).Model(&model.Match{})
	if filter.TournamentID != nil {
		q = q.Where("tournament_id = ?", *filter.TournamentID)
	}
	if filter.Year != nil {
		q = q.Where("year = ?", *filter.Year)
	}
	if filter.BestOf != nil {
		q = q.Where("best_of = ?", *filter.BestOf)
	}
	if filter.IsFinal != nil {
		q = q.Where("is_final = ?", *filter.IsFinal)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	var matches []model.Match
	if err := q.Order("year desc").Order("created_at desc").
		Limit(limit).Offset(offset).Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Match, error) {
	var match model.Match
	if err := r.expanded(ctx).Where("id = ?", id).First(&match).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Match, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var matches []model.Match
	if err := r.expanded(ctx).Where("id IN ?", ids).Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Match, error) {
	var matches []model.Match
	err := r.expanded(ctx).
		Where("player1_id = ? OR player2_id = ?", playerID, playerID).
		Order("year desc").Order("created_at desc").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
