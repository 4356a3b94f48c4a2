package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tennistrivia/internal/model"
)

// ThreadRepository defines thread persistence operations.
type ThreadRepository interface {
	ListByForum(ctx context.Context, forumID uuid.UUID, limit, offset int) ([]model.Thread, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Thread, error)
	// CreateWithFirstPost inserts the thread and, when firstPost is non-nil,
	// its opening post in the same transaction.
	CreateWithFirstPost(ctx context.Context, thread *model.Thread, firstPost *model.Post) error
}

// postCountSelect attaches the per-thread post count to thread reads.
const postCountSelect = "threads.*, (SELECT COUNT(*) FROM posts WHERE posts.thread_id = threads.id) AS post_count"

type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new thread repository.
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) ListByForum(ctx context.Context, forumID uuid.UUID, limit, offset int) ([]model.Thread, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Thread{}).
		Where("forum_id = ?", forumID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var threads []model.Thread
	err := r.db.WithContext(ctx).Preload("Author").
		Select(postCountSelect).
		Where("forum_id = ?", forumID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&threads).Error
	if err != nil {
		return nil, 0, err
	}
	return threads, total, nil
}

func (r *threadRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Thread, error) {
	var thread model.Thread
	err := r.db.WithContext(ctx).
		Preload("Forum").
		Preload("Author").
		Select(postCountSelect).
		Where("id = ?", id).
		First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) CreateWithFirstPost(ctx context.Context, thread *model.Thread, firstPost *model.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(thread).Error; err != nil {
			return err
		}
		if firstPost != nil {
			firstPost.ThreadID = thread.ID
			if err := tx.Create(firstPost).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
