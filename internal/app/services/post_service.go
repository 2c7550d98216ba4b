package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/feed"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// PostService defines the interface for newsfeed post operations
type PostService interface {
	CreatePost(ctx context.Context, actorID string, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	EditPost(ctx context.Context, actorID, postID string, req *dto.EditPostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, actorID, postID string) error
	AddComment(ctx context.Context, actorID, postID string, req *dto.AddCommentRequest) (*dto.CommentResponse, error)
	React(ctx context.Context, actorID, postID string, kind models.ReactionKind) (*models.Reactions, error)
	Unreact(ctx context.Context, actorID, postID string, kind models.ReactionKind) (*models.Reactions, error)
	GetPost(ctx context.Context, postID string) (*dto.PostResponse, error)
	ListByAuthor(ctx context.Context, authorID string) ([]dto.PostResponse, error)
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(deps *Deps) PostService {
	return &postServiceImpl{deps: deps, logger: deps.component("post_service")}
}

// CreatePost publishes a post. Posts by anyone other than the current user
// notify the current user.
func (s *postServiceImpl) CreatePost(ctx context.Context, actorID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Msg("Creating post")

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpCreatePost)

	out := s.deps.newOutbox()
	var resp dto.PostResponse
	err := s.deps.Store.Update("create_post", func(st *store.State) error {
		author, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		if req.EventID != "" && !st.Events.Has(req.EventID) {
			return apperrors.NotFound(apperrors.ErrEventNotFound)
		}

		post := models.Post{
			ID:        s.deps.IDs.ID("p"),
			AuthorID:  author.ID,
			Content:   content,
			ImageURL:  req.ImageURL,
			Comments:  []models.Comment{},
			EventID:   req.EventID,
			CreatedAt: s.deps.now(),
		}
		st.Posts.Prepend(post)

		if author.ID != st.CurrentUserID {
			out.push(st, st.CurrentUserID, models.NotificationPost,
				fmt.Sprintf("%s shared a new post", author.Name), post.ID)
		}
		resp = dto.NewPostResponse(post, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.flush(ctx)

	s.logger.Info().Str("postID", resp.ID).Str("authorID", actorID).Msg("Post created")
	return &resp, nil
}

// EditPost changes the content or image of the actor's own post
func (s *postServiceImpl) EditPost(ctx context.Context, actorID, postID string, req *dto.EditPostRequest) (*dto.PostResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("postID", postID).Msg("Editing post")

	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpEditPost)

	var resp dto.PostResponse
	err := s.deps.Store.Update("edit_post", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		post, ok := st.Posts.Get(postID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrPostNotFound)
		}
		if err := auth.ValidateOwner(actor, post.AuthorID); err != nil {
			return err
		}

		if req.Content != nil {
			post.Content = strings.TrimSpace(*req.Content)
		}
		if req.ImageURL != nil {
			post.ImageURL = *req.ImageURL
		}
		now := s.deps.now()
		post.UpdatedAt = &now
		st.Posts.Replace(post)

		resp = dto.NewPostResponse(post, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeletePost removes a post. Authors and admins may delete.
func (s *postServiceImpl) DeletePost(ctx context.Context, actorID, postID string) error {
	s.logger.Debug().Str("actorID", actorID).Str("postID", postID).Msg("Deleting post")

	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}

	s.deps.delay(ctx, latency.OpDeletePost)

	return s.deps.Store.Update("delete_post", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		post, ok := st.Posts.Get(postID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrPostNotFound)
		}
		if err := auth.ValidateOwnership(actor, post.AuthorID); err != nil {
			return err
		}
		st.Posts.Remove(postID)
		return nil
	})
}

// AddComment appends a comment and notifies the post author
func (s *postServiceImpl) AddComment(ctx context.Context, actorID, postID string, req *dto.AddCommentRequest) (*dto.CommentResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("postID", postID).Msg("Adding comment")

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpAddComment)

	out := s.deps.newOutbox()
	var resp dto.CommentResponse
	err := s.deps.Store.Update("add_comment", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		post, ok := st.Posts.Get(postID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrPostNotFound)
		}

		comment := models.Comment{
			ID:        s.deps.IDs.ID("c"),
			AuthorID:  actor.ID,
			Text:      text,
			Timestamp: s.deps.now(),
		}
		st.Posts.Replace(post.WithComment(comment))

		if post.AuthorID != actor.ID {
			out.push(st, post.AuthorID, models.NotificationComment,
				fmt.Sprintf("%s commented on your post: %q", actor.Name, truncate(text, 60)), post.ID)
		}
		resp = dto.NewCommentResponses([]models.Comment{comment}, lookupIn(st))[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.flush(ctx)
	return &resp, nil
}

// React increments one reaction counter
func (s *postServiceImpl) React(ctx context.Context, actorID, postID string, kind models.ReactionKind) (*models.Reactions, error) {
	return s.react(ctx, actorID, postID, kind, 1)
}

// Unreact decrements one reaction counter. Counters never drop below zero.
func (s *postServiceImpl) Unreact(ctx context.Context, actorID, postID string, kind models.ReactionKind) (*models.Reactions, error) {
	return s.react(ctx, actorID, postID, kind, -1)
}

func (s *postServiceImpl) react(ctx context.Context, actorID, postID string, kind models.ReactionKind, delta int) (*models.Reactions, error) {
	s.logger.Debug().Str("actorID", actorID).Str("postID", postID).Str("kind", string(kind)).Int("delta", delta).Msg("Reacting to post")

	if _, ok := (models.Reactions{}).Apply(kind, 0); !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown reaction %q", kind))
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpReact)

	var reactions models.Reactions
	err := s.deps.Store.Update("react_post", func(st *store.State) error {
		post, ok := st.Posts.Get(postID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrPostNotFound)
		}
		post.Reactions, _ = post.Reactions.Apply(kind, delta)
		st.Posts.Replace(post)
		reactions = post.Reactions
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reactions, nil
}

// GetPost returns a single post
func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*dto.PostResponse, error) {
	var (
		resp dto.PostResponse
		ok   bool
	)
	s.deps.Store.View(func(st *store.State) {
		var post models.Post
		if post, ok = st.Posts.Get(postID); ok {
			resp = dto.NewPostResponse(post, lookupIn(st))
		}
	})
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrPostNotFound)
	}
	return &resp, nil
}

// ListByAuthor returns a user's posts, newest first
func (s *postServiceImpl) ListByAuthor(ctx context.Context, authorID string) ([]dto.PostResponse, error) {
	var (
		out    []dto.PostResponse
		exists bool
	)
	s.deps.Store.View(func(st *store.State) {
		if exists = st.Users.Has(authorID); !exists {
			return
		}
		lookup := lookupIn(st)
		posts := st.Posts.Filter(func(p models.Post) bool { return p.AuthorID == authorID })
		for _, p := range feed.Apply(posts, nil, feed.Query{Sort: feed.SortNewest}) {
			out = append(out, dto.NewPostResponse(p, lookup))
		}
	})
	if !exists {
		return nil, apperrors.NotFound(apperrors.ErrUserNotFound)
	}
	if out == nil {
		out = []dto.PostResponse{}
	}
	return out, nil
}
