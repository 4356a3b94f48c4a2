package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	ListByThread(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]model.Post, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) ListByThread(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]model.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("thread_id = ?", threadID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []model.Post
	err := r.db.WithContext(ctx).Preload("Author").
		Where("thread_id = ?", threadID).
		Order("created_at asc").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}
