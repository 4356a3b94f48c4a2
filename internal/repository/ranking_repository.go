package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/model"
)

// RankingRepository persists per-user ordered lists. Each kind lives in its
// own table selected through RankingKind.TableName.
type RankingRepository interface {
	List(ctx context.Context, kind model.RankingKind, userID uuid.UUID) ([]model.RankingEntry, error)
	// Replace deletes the user's prior entries for the kind and inserts the
	// given ids at 1-based positions in input order, all inside a single
	// transaction. A partial write is never observable.
	Replace(ctx context.Context, kind model.RankingKind, userID uuid.UUID, entityIDs []uuid.UUID) error
}

type rankingRepository struct {
	db *gorm.DB
}

// NewRankingRepository creates a new ranking repository.
func NewRankingRepository(db *gorm.DB) RankingRepository {
	return &rankingRepository{db: db}
}

func (r *rankingRepository) List(ctx context.Context, kind model.RankingKind, userID uuid.UUID) ([]model.RankingEntry, error) {
	var entries []model.RankingEntry
	err := r.db.WithContext(ctx).Table(kind.TableName()).
		Where("user_id = ?", userID).
		Order("position asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *rankingRepository) Replace(ctx context.Context, kind model.RankingKind, userID uuid.UUID, entityIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(kind.TableName()).
			Where("user_id = ?", userID).
			Delete(&model.RankingEntry{}).Error; err != nil {
			return err
		}
		for i, entityID := range entityIDs {
			entry := model.RankingEntry{
				ID:       uuid.New(),
				UserID:   userID,
				EntityID: entityID,
				Position: i + 1,
			}
			if err := tx.Table(kind.TableName()).Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
