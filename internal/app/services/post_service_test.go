package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/store"
)

func TestCreatePostNotifiesCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPostService(env.deps)
	ctx := context.Background()

	own, err := svc.CreatePost(ctx, "u1", &dto.CreatePostRequest{Content: "  hello #campus  "})
	require.NoError(t, err)
	assert.Equal(t, "hello #campus", own.Content)
	assert.Equal(t, "Alex Morgan", own.Author.Name)
	assert.Empty(t, env.notificationsFor("u1"), "own posts do not notify")

	other, err := svc.CreatePost(ctx, "u2", &dto.CreatePostRequest{Content: "study group tonight"})
	require.NoError(t, err)

	got := env.notificationsFor("u1")
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationPost, got[0].Type)
	assert.Equal(t, other.ID, got[0].LinkID)
	assert.False(t, got[0].IsRead)
	assert.Len(t, env.sent.For("u1"), 1)

	// newest first
	var ids []string
	env.store.View(func(st *store.State) {
		for _, p := range st.Posts.All() {
			ids = append(ids, p.ID)
		}
	})
	assert.Equal(t, []string{other.ID, own.ID}, ids)
}

func TestCreatePostGuards(t *testing.T) {
	env := newTestEnv(t, withSuspended("u2"))
	svc := NewPostService(env.deps)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, "u1", &dto.CreatePostRequest{Content: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)

	_, err = svc.CreatePost(ctx, "u2", &dto.CreatePostRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)

	_, err = svc.CreatePost(ctx, "nobody", &dto.CreatePostRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = svc.CreatePost(ctx, "u1", &dto.CreatePostRequest{Content: "hi", EventID: "ev-missing"})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	assert.Equal(t, 0, env.store.Counts()["posts"])
}

func TestEditAndDeletePostPermissions(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPostService(env.deps)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "u2", &dto.CreatePostRequest{Content: "original"})
	require.NoError(t, err)

	edited := "edited"
	_, err = svc.EditPost(ctx, "admin", post.ID, &dto.EditPostRequest{Content: &edited})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "admins may delete but not edit")

	resp, err := svc.EditPost(ctx, "u2", post.ID, &dto.EditPostRequest{Content: &edited})
	require.NoError(t, err)
	assert.Equal(t, "edited", resp.Content)
	require.NotNil(t, resp.UpdatedAt)

	err = svc.DeletePost(ctx, "u1", post.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.DeletePost(ctx, "admin", post.ID))
	_, err = svc.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCommentNotifiesAuthor(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPostService(env.deps)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "u1", &dto.CreatePostRequest{Content: "anyone at the library?"})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, "u1", post.ID, &dto.AddCommentRequest{Text: "bump"})
	require.NoError(t, err)
	assert.Empty(t, env.notificationsFor("u1"))

	c, err := svc.AddComment(ctx, "u2", post.ID, &dto.AddCommentRequest{Text: "on my way"})
	require.NoError(t, err)
	assert.Equal(t, "Priya Shah", c.Author.Name)

	got := env.notificationsFor("u1")
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationComment, got[0].Type)

	full, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, full.Comments, 2)
}

func TestReactionsNeverNegative(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPostService(env.deps)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "u1", &dto.CreatePostRequest{Content: "react to me"})
	require.NoError(t, err)

	r, err := svc.Unreact(ctx, "u2", post.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Like)

	r, err = svc.React(ctx, "u2", post.ID, models.ReactionLove)
	require.NoError(t, err)
	r, err = svc.React(ctx, "u3", post.ID, models.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Love)

	_, err = svc.React(ctx, "u2", post.ID, models.ReactionKind("angry"))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestFeedHashtagWinsOverSearch(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 9, 0, 0, 0, time.UTC) }
	env := newTestEnv(t, func(st *store.State) {
		st.Posts.Append(models.Post{ID: "p1", AuthorID: "u1", Content: "Finals week #exams", CreatedAt: day(1)})
		st.Posts.Append(models.Post{ID: "p2", AuthorID: "u2", Content: "Pizza in the quad", CreatedAt: day(2)})
		st.Posts.Append(models.Post{ID: "p3", AuthorID: "u2", Content: "Library open late #Exams", CreatedAt: day(3)})
	})
	svc := NewFeedService(env.deps)
	ctx := context.Background()

	resp, err := svc.Feed(ctx, &dto.FeedRequest{Search: "pizza", Hashtag: "#exams"})
	require.NoError(t, err)
	assert.Empty(t, resp.Search)
	assert.Equal(t, "exams", resp.Hashtag)
	assert.Equal(t, []string{"p3", "p1"}, postIDs(resp.Posts))

	resp, err = svc.Feed(ctx, &dto.FeedRequest{Search: "priya", Sort: "oldest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3"}, postIDs(resp.Posts))

	resp, err = svc.Feed(ctx, &dto.FeedRequest{StartDate: "2024-05-02", EndDate: "2024-05-02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, postIDs(resp.Posts))

	_, err = svc.Feed(ctx, &dto.FeedRequest{StartDate: "05/02/2024"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	tags, err := svc.Hashtags(ctx, 0)
	require.NoError(t, err)
	require.NotEmpty(t, tags)
	assert.Equal(t, "exams", tags[0].Tag)
	assert.Equal(t, 2, tags[0].Count)
}

func postIDs(posts []dto.PostResponse) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}
