package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"tennistrivia/internal/errors"
	"tennistrivia/internal/model"
	"tennistrivia/internal/repository"
)

// ForumList is a page of forums with the overall count.
type ForumList struct {
	Data  []model.Forum `json:"data"`
	Total int64         `json:"total"`
}

// ThreadList is a page of threads with the overall count.
type ThreadList struct {
	Data  []model.Thread `json:"data"`
	Total int64          `json:"total"`
}

// ThreadWithPosts is a thread plus one page of its posts.
type ThreadWithPosts struct {
	model.Thread
	Posts      []model.Post `json:"posts"`
	PostsTotal int64        `json:"postsTotal"`
}

// ForumUpdate is a partial forum update; Description is tri-state so an
// explicit null clears it.
type ForumUpdate struct {
	Title       *string        `json:"title" validate:"omitempty,min=1,max=200"`
	Description OptionalString `json:"description"`
}

// ForumService manages forums, threads and posts with ownership checks.
type ForumService interface {
	ListForums(ctx context.Context, limit, offset int) (*ForumList, error)
	GetForum(ctx context.Context, id uuid.UUID) (*model.Forum, error)
	CreateForum(ctx context.Context, userID uuid.UUID, title string, description, explicitSlug *string) (*model.Forum, error)
	UpdateForum(ctx context.Context, forumID, userID uuid.UUID, update ForumUpdate) (*model.Forum, error)

	ListThreads(ctx context.Context, forumID uuid.UUID, limit, offset int) (*ThreadList, error)
	CreateThread(ctx context.Context, forumID, userID uuid.UUID, title string, body *string) (*model.Thread, error)
	GetThread(ctx context.Context, id uuid.UUID, limit, offset int) (*ThreadWithPosts, error)

	CreatePost(ctx context.Context, threadID, userID uuid.UUID, body string) (*model.Post, error)
	UpdatePost(ctx context.Context, postID, userID uuid.UUID, body string) (*model.Post, error)
}

type forumService struct {
	forumRepo  repository.ForumRepository
	threadRepo repository.ThreadRepository
	postRepo   repository.PostRepository
}

// NewForumService creates a new forum service.
func NewForumService(forumRepo repository.ForumRepository, threadRepo repository.ThreadRepository, postRepo repository.PostRepository) ForumService {
	return &forumService{
		forumRepo:  forumRepo,
		threadRepo: threadRepo,
		postRepo:   postRepo,
	}
}

func (s *forumService) ListForums(ctx context.Context, limit, offset int) (*ForumList, error) {
	forums, total, err := s.forumRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list forums: %w", err)
	}
	return &ForumList{Data: forums, Total: total}, nil
}

func (s *forumService) GetForum(ctx context.Context, id uuid.UUID) (*model.Forum, error) {
	forum, err := s.forumRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Forum not found")
		}
		return nil, fmt.Errorf("load forum: %w", err)
	}
	return forum, nil
}

func (s *forumService) CreateForum(ctx context.Context, userID uuid.UUID, title string, description, explicitSlug *string) (*model.Forum, error) {
	finalSlug := ""
	if explicitSlug != nil {
		finalSlug = strings.TrimSpace(*explicitSlug)
	}
	if finalSlug == "" {
		finalSlug = slug.Make(title)
	}
	if finalSlug == "" {
		return nil, errors.BadRequest("Slug could not be generated from title", "INVALID_SLUG")
	}

	if _, err := s.forumRepo.FindBySlug(ctx, finalSlug); err == nil {
		return nil, errors.Conflict("Forum slug already exists", "SLUG_EXISTS")
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	forum := &model.Forum{
		Title:       strings.TrimSpace(title),
		Slug:        finalSlug,
		Description: trimmedOrNil(description),
		CreatedByID: userID,
	}
	if err := s.forumRepo.Create(ctx, forum); err != nil {
		return nil, fmt.Errorf("create forum: %w", err)
	}
	return s.forumRepo.FindByID(ctx, forum.ID)
}

func (s *forumService) UpdateForum(ctx context.Context, forumID, userID uuid.UUID, update ForumUpdate) (*model.Forum, error) {
	forum, err := s.GetForum(ctx, forumID)
	if err != nil {
		return nil, err
	}
	if forum.CreatedByID != userID {
		return nil, errors.Forbidden("Not allowed to update this forum")
	}

	if update.Title != nil {
		forum.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description.Set {
		forum.Description = trimmedOrNil(update.Description.Value)
	}
	if err := s.forumRepo.Update(ctx, forum); err != nil {
		return nil, fmt.Errorf("update forum: %w", err)
	}
	return forum, nil
}

func (s *forumService) ListThreads(ctx context.Context, forumID uuid.UUID, limit, offset int) (*ThreadList, error) {
	if _, err := s.GetForum(ctx, forumID); err != nil {
		return nil, err
	}
	threads, total, err := s.threadRepo.ListByForum(ctx, forumID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	return &ThreadList{Data: threads, Total: total}, nil
}

// CreateThread inserts the thread and, when the trimmed body is non-empty,
// its first post with the same body, atomically.
func (s *forumService) CreateThread(ctx context.Context, forumID, userID uuid.UUID, title string, body *string) (*model.Thread, error) {
	if _, err := s.GetForum(ctx, forumID); err != nil {
		return nil, err
	}

	trimmedBody := trimmedOrNil(body)
	thread := &model.Thread{
		ForumID:  forumID,
		AuthorID: userID,
		Title:    strings.TrimSpace(title),
		Body:     trimmedBody,
	}
	var firstPost *model.Post
	if trimmedBody != nil {
		firstPost = &model.Post{
			AuthorID: userID,
			Body:     *trimmedBody,
		}
	}
	if err := s.threadRepo.CreateWithFirstPost(ctx, thread, firstPost); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	return s.threadRepo.FindByID(ctx, thread.ID)
}

func (s *forumService) GetThread(ctx context.Context, id uuid.UUID, limit, offset int) (*ThreadWithPosts, error) {
	thread, err := s.threadRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Thread not found")
		}
		return nil, fmt.Errorf("load thread: %w", err)
	}
	posts, total, err := s.postRepo.ListByThread(ctx, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &ThreadWithPosts{Thread: *thread, Posts: posts, PostsTotal: total}, nil
}

func (s *forumService) CreatePost(ctx context.Context, threadID, userID uuid.UUID, body string) (*model.Post, error) {
	if _, err := s.threadRepo.FindByID(ctx, threadID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Thread not found")
		}
		return nil, fmt.Errorf("load thread: %w", err)
	}
	post := &model.Post{
		ThreadID: threadID,
		AuthorID: userID,
		Body:     strings.TrimSpace(body),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.postRepo.FindByID(ctx, post.ID)
}

func (s *forumService) UpdatePost(ctx context.Context, postID, userID uuid.UUID, body string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	if post.AuthorID != userID {
		return nil, errors.Forbidden("Not allowed to edit this post")
	}
	post.Body = strings.TrimSpace(body)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
