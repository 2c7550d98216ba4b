package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
)

func TestOnlyPublishedArticlesAreListed(t *testing.T) {
	env := newTestEnv(t)
	svc := NewArticleService(env.deps)
	ctx := context.Background()

	pub, err := svc.CreateArticle(ctx, "u1", &dto.CreateArticleRequest{
		Title:   "Surviving finals",
		Content: "Sleep, then study.",
		Tags:    []string{"#Study", "tips", "study"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ArticlePublished, pub.Status)
	assert.Equal(t, []string{"study", "tips"}, pub.Tags)

	draft, err := svc.CreateArticle(ctx, "u1", &dto.CreateArticleRequest{
		Title:   "Half-baked thoughts",
		Content: "TBD",
		Status:  models.ArticleDraft,
	})
	require.NoError(t, err)

	list, err := svc.ListPublished(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pub.ID, list[0].ID)

	tagged, err := svc.ListPublished(ctx, "tips")
	require.NoError(t, err)
	assert.Len(t, tagged, 1)

	_, err = svc.GetArticle(ctx, "u2", draft.ID)
	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
	_, err = svc.GetArticle(ctx, "u1", draft.ID)
	assert.NoError(t, err)
	_, err = svc.GetArticle(ctx, "admin", draft.ID)
	assert.NoError(t, err)

	mine, err := svc.ListByAuthor(ctx, "u1", "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	theirs, err := svc.ListByAuthor(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	published := models.ArticlePublished
	_, err = svc.UpdateArticle(ctx, "u2", draft.ID, &dto.UpdateArticleRequest{Status: &published})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.UpdateArticle(ctx, "u1", draft.ID, &dto.UpdateArticleRequest{Status: &published})
	require.NoError(t, err)
	list, err = svc.ListPublished(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestArticleReactionsAndComments(t *testing.T) {
	env := newTestEnv(t)
	svc := NewArticleService(env.deps)
	ctx := context.Background()

	a, err := svc.CreateArticle(ctx, "u2", &dto.CreateArticleRequest{Title: "Club fair recap", Content: "Great turnout."})
	require.NoError(t, err)

	r, err := svc.React(ctx, "u1", a.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Like)

	_, err = svc.AddComment(ctx, "u1", a.ID, &dto.AddCommentRequest{Text: "Nice write-up"})
	require.NoError(t, err)

	got, err := svc.GetArticle(ctx, "u1", a.ID)
	require.NoError(t, err)
	assert.Len(t, got.Comments, 1)

	require.NoError(t, svc.DeleteArticle(ctx, "admin", a.ID))
	_, err = svc.GetArticle(ctx, "u1", a.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
