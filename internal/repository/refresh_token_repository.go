package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/model"
)

// RefreshTokenRepository defines persistence for hashed refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByHashAndUser(ctx context.Context, tokenHash string, userID uuid.UUID) (*model.RefreshToken, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByHash(ctx context.Context, tokenHash string) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository.
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *refreshTokenRepository) FindByHashAndUser(ctx context.Context, tokenHash string, userID uuid.UUID) (*model.RefreshToken, error) {
	var token model.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND user_id = ?", tokenHash, userID).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RefreshToken{}, "id = ?", id).Error
}

// DeleteByHash removes every row matching the hash. Deleting a hash with no
// rows is not an error, which makes logout idempotent.
func (r *refreshTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).Delete(&model.RefreshToken{}, "token_hash = ?", tokenHash).Error
}
