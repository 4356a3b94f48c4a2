package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/model"
)

// PicksRepository persists the single per-user picks row.
type PicksRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.UserPicks, error)
	// Upsert creates the user's row with the given column values or applies
	// them to the existing row, inside a single transaction. Values may be
	// nil to clear a slot; columns absent from the map are left untouched.
	Upsert(ctx context.Context, userID uuid.UUID, values map[string]interface{}) error
}

type picksRepository struct {
	db *gorm.DB
}

// NewPicksRepository creates a new picks repository.
func NewPicksRepository(db *gorm.DB) PicksRepository {
	return &picksRepository{db: db}
}

func (r *picksRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.UserPicks, error) {
	var picks model.UserPicks
	err := r.db.WithContext(ctx).
		Preload("FavoritePlayer").
		Preload("FavoriteBestOf5Match.Tournament").
		Preload("FavoriteBestOf5Match.Player1").
		Preload("FavoriteBestOf5Match.Player2").
		Preload("FavoriteBestOf3Match.Tournament").
		Preload("FavoriteBestOf3Match.Player1").
		Preload("FavoriteBestOf3Match.Player2").
		Preload("BestGrandSlamFinal.Tournament").
		Preload("BestGrandSlamFinal.Player1").
		Preload("BestGrandSlamFinal.Player2").
		Where("user_id = ?", userID).
		First(&picks).Error
	if err != nil {
		return nil, err
	}
	return &picks, nil
}

func (r *picksRepository) Upsert(ctx context.Context, userID uuid.UUID, values map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.UserPicks
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			picks := model.UserPicks{UserID: userID}
			if err := tx.Create(&picks).Error; err != nil {
				return err
			}
			existing = picks
		} else if err != nil {
			return err
		}
		if len(values) == 0 {
			return nil
		}
		return tx.Model(&model.UserPicks{}).
			Where("id = ?", existing.ID).
			Updates(values).Error
	})
}
