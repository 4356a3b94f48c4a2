package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/model"
)

// ForumRepository defines forum persistence operations.
type ForumRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.Forum, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Forum, error)
	FindBySlug(ctx context.Context, slug string) (*model.Forum, error)
	Create(ctx context.Context, forum *model.Forum) error
	Update(ctx context.Context, forum *model.Forum) error
}

// threadCountSelect attaches the per-forum thread count to forum reads.
const threadCountSelect = "forums.*, (SELECT COUNT(*) FROM threads WHERE threads.forum_id = forums.id) AS thread_count"

type forumRepository struct {
	db *gorm.DB
}

// NewForumRepository creates a new forum repository.
func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) List(ctx context.Context, limit, offset int) ([]model.Forum, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Forum{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var forums []model.Forum
	err := r.db.WithContext(ctx).Preload("Creator").
		Select(threadCountSelect).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&forums).Error
	if err != nil {
		return nil, 0, err
	}
	return forums, total, nil
}

func (r *forumRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Forum, error) {
	var forum model.Forum
	if err := r.db.WithContext(ctx).Preload("Creator").
		Select(threadCountSelect).
		Where("id = ?", id).First(&forum).Error; err != nil {
		return nil, err
	}
	return &forum, nil
}

func (r *forumRepository) FindBySlug(ctx context.Context, slug string) (*model.Forum, error) {
	var forum model.Forum
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&forum).Error; err != nil {
		return nil, err
	}
	return &forum, nil
}

func (r *forumRepository) Create(ctx context.Context, forum *model.Forum) error {
	return r.db.WithContext(ctx).Create(forum).Error
}

func (r *forumRepository) Update(ctx context.Context, forum *model.Forum) error {
	return r.db.WithContext(ctx).Save(forum).Error
}
