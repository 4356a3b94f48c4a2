package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tennistrivia/internal/errors"
	"tennistrivia/internal/model"
	"tennistrivia/internal/repository"
)

func newForumService(t *testing.T) (ForumService, func(email string) model.User) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewForumService(
		repository.NewForumRepository(db),
		repository.NewThreadRepository(db),
		repository.NewPostRepository(db),
	)
	return svc, func(email string) model.User { return seedUser(t, db, email) }
}

func strptr(s string) *string { return &s }

func TestForumService_CreateForumDerivesSlug(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	user := mkUser("host@example.com")

	forum, err := svc.CreateForum(ctx, user.ID, "Grass Court Legends", strptr("  The lawns  "), nil)
	require.NoError(t, err)
	assert.Equal(t, "grass-court-legends", forum.Slug)
	require.NotNil(t, forum.Description)
	assert.Equal(t, "The lawns", *forum.Description)
	assert.Equal(t, user.ID, forum.CreatedByID)
	assert.Equal(t, user.Email, forum.Creator.Email)
}

func TestForumService_CreateForumExplicitSlugWins(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	user := mkUser("host@example.com")

	forum, err := svc.CreateForum(ctx, user.ID, "Some Title", nil, strptr("legends"))
	require.NoError(t, err)
	assert.Equal(t, "legends", forum.Slug)
}

func TestForumService_CreateForumSlugConflict(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	user := mkUser("host@example.com")

	_, err := svc.CreateForum(ctx, user.ID, "Clay Season", nil, nil)
	require.NoError(t, err)

	_, err = svc.CreateForum(ctx, user.ID, "Clay  Season", nil, nil)
	var httpErr *errors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.StatusCode)
	assert.Equal(t, "SLUG_EXISTS", httpErr.Code)
}

func TestForumService_CreateForumUnsluggableTitle(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	user := mkUser("host@example.com")

	_, err := svc.CreateForum(ctx, user.ID, "!!!", nil, nil)
	var httpErr *errors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.StatusCode)
	assert.Equal(t, "INVALID_SLUG", httpErr.Code)
}

func TestForumService_UpdateForumOwnershipAndTriState(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	owner := mkUser("owner@example.com")
	other := mkUser("other@example.com")

	forum, err := svc.CreateForum(ctx, owner.ID, "Indoor Hardcourt", strptr("Fast conditions"), nil)
	require.NoError(t, err)

	_, err = svc.UpdateForum(ctx, forum.ID, other.ID, ForumUpdate{Title: strptr("Hijacked")})
	var httpErr *errors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.StatusCode)

	// Title-only update leaves the description alone.
	updated, err := svc.UpdateForum(ctx, forum.ID, owner.ID, ForumUpdate{Title: strptr("Indoor Tennis")})
	require.NoError(t, err)
	assert.Equal(t, "Indoor Tennis", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Fast conditions", *updated.Description)

	// Explicit null clears the description.
	updated, err = svc.UpdateForum(ctx, forum.ID, owner.ID, ForumUpdate{Description: OptionalString{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)

	_, err = svc.UpdateForum(ctx, uuid.New(), owner.ID, ForumUpdate{})
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)
}

func TestForumService_ThreadWithFirstPost(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	user := mkUser("poster@example.com")

	forum, err := svc.CreateForum(ctx, user.ID, "Match Discussions", nil, nil)
	require.NoError(t, err)

	thread, err := svc.CreateThread(ctx, forum.ID, user.ID, "Greatest final ever?", strptr("Wimbledon 2008, obviously."))
	require.NoError(t, err)
	assert.Equal(t, "Greatest final ever?", thread.Title)
	assert.Equal(t, user.ID, thread.AuthorID)

	got, err := svc.GetThread(ctx, thread.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, got.Posts, 1)
	assert.Equal(t, "Wimbledon 2008, obviously.", got.Posts[0].Body)
	assert.Equal(t, user.ID, got.Posts[0].AuthorID)
	assert.EqualValues(t, 1, got.PostsTotal)
}

func TestForumService_ThreadWithoutBodyHasNoFirstPost(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	user := mkUser("poster@example.com")

	forum, err := svc.CreateForum(ctx, user.ID, "Open Threads", nil, nil)
	require.NoError(t, err)

	thread, err := svc.CreateThread(ctx, forum.ID, user.ID, "No opener", strptr("   "))
	require.NoError(t, err)

	got, err := svc.GetThread(ctx, thread.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, got.Posts)
	assert.Nil(t, got.Body)
}

func TestForumService_ThreadInUnknownForum(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	user := mkUser("poster@example.com")

	_, err := svc.CreateThread(ctx, uuid.New(), user.ID, "Lost", nil)
	var httpErr *errors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)

	_, err = svc.ListThreads(ctx, uuid.New(), 20, 0)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)
}

func TestForumService_PostOwnership(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	author := mkUser("author@example.com")
	other := mkUser("other@example.com")

	forum, err := svc.CreateForum(ctx, author.ID, "Rivalries", nil, nil)
	require.NoError(t, err)
	thread, err := svc.CreateThread(ctx, forum.ID, author.ID, "Fedal", nil)
	require.NoError(t, err)

	post, err := svc.CreatePost(ctx, thread.ID, other.ID, "40 matches and counting")
	require.NoError(t, err)
	assert.Equal(t, other.ID, post.AuthorID)

	_, err = svc.UpdatePost(ctx, post.ID, author.ID, "rewritten")
	var httpErr *errors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.StatusCode)

	edited, err := svc.UpdatePost(ctx, post.ID, other.ID, "38 matches, corrected")
	require.NoError(t, err)
	assert.Equal(t, "38 matches, corrected", edited.Body)

	_, err = svc.CreatePost(ctx, uuid.New(), author.ID, "into the void")
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)
}

func TestForumService_CountsFollowActivity(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	user := mkUser("counter@example.com")

	forum, err := svc.CreateForum(ctx, user.ID, "Slam Predictions", nil, nil)
	require.NoError(t, err)
	assert.Zero(t, forum.ThreadCount)

	first, err := svc.CreateThread(ctx, forum.ID, user.ID, "Wimbledon draw", strptr("Who takes it?"))
	require.NoError(t, err)
	_, err = svc.CreateThread(ctx, forum.ID, user.ID, "US Open draw", nil)
	require.NoError(t, err)

	got, err := svc.GetForum(ctx, forum.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.ThreadCount)

	list, err := svc.ListForums(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.EqualValues(t, 2, list.Data[0].ThreadCount)

	// The opening post counts; a reply bumps the thread's count.
	_, err = svc.CreatePost(ctx, first.ID, user.ID, "Alcaraz in four")
	require.NoError(t, err)

	threads, err := svc.ListThreads(ctx, forum.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, threads.Data, 2)
	for _, th := range threads.Data {
		if th.ID == first.ID {
			assert.EqualValues(t, 2, th.PostCount)
		} else {
			assert.Zero(t, th.PostCount)
		}
	}

	withPosts, err := svc.GetThread(ctx, first.ID, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, withPosts.PostCount)
	assert.EqualValues(t, 2, withPosts.PostsTotal)
}

func TestForumService_ListForumsPaginates(t *testing.T) {
	ctx := context.Background()
	svc, mkUser := newForumService(t)
	user := mkUser("lister@example.com")

	for _, title := range []string{"Forum One", "Forum Two", "Forum Three"} {
		_, err := svc.CreateForum(ctx, user.ID, title, nil, nil)
		require.NoError(t, err)
	}

	page, err := svc.ListForums(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.EqualValues(t, 3, page.Total)

	rest, err := svc.ListForums(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest.Data, 1)
	assert.EqualValues(t, 3, rest.Total)
}
