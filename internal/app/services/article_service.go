package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// ArticleService defines the interface for blog article operations
type ArticleService interface {
	CreateArticle(ctx context.Context, actorID string, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error)
	UpdateArticle(ctx context.Context, actorID, articleID string, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error)
	DeleteArticle(ctx context.Context, actorID, articleID string) error
	React(ctx context.Context, actorID, articleID string, kind models.ReactionKind) (*models.Reactions, error)
	AddComment(ctx context.Context, actorID, articleID string, req *dto.AddCommentRequest) (*dto.CommentResponse, error)
	GetArticle(ctx context.Context, viewerID, articleID string) (*dto.ArticleResponse, error)
	ListPublished(ctx context.Context, tag string) ([]dto.ArticleResponse, error)
	ListByAuthor(ctx context.Context, viewerID, authorID string) ([]dto.ArticleResponse, error)
}

// articleServiceImpl implements ArticleService
type articleServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewArticleService creates a new ArticleService
func NewArticleService(deps *Deps) ArticleService {
	return &articleServiceImpl{deps: deps, logger: deps.component("article_service")}
}

// CreateArticle stores a published article or a draft. Status defaults to
// published.
func (s *articleServiceImpl) CreateArticle(ctx context.Context, actorID string, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("title", req.Title).Msg("Creating article")

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	status := req.Status
	if status == "" {
		status = models.ArticlePublished
	}
	if !status.Valid() {
		return nil, apperrors.NewBadRequestError("article status must be published or draft")
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpSaveArticle)

	var resp dto.ArticleResponse
	err := s.deps.Store.Update("create_article", func(st *store.State) error {
		author, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		now := s.deps.now()
		a := models.Article{
			ID:            s.deps.IDs.ID("a"),
			AuthorID:      author.ID,
			Title:         strings.TrimSpace(req.Title),
			Content:       req.Content,
			CoverImageURL: req.CoverImageURL,
			Tags:          normalizeTags(req.Tags),
			Status:        status,
			Comments:      []models.Comment{},
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		st.Articles.Prepend(a)
		resp = dto.NewArticleResponse(a, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("articleID", resp.ID).Str("status", string(status)).Msg("Article created")
	return &resp, nil
}

// UpdateArticle edits an article. Author or admin only.
func (s *articleServiceImpl) UpdateArticle(ctx context.Context, actorID, articleID string, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("articleID", articleID).Msg("Updating article")

	if req.Status != nil && !req.Status.Valid() {
		return nil, apperrors.NewBadRequestError("article status must be published or draft")
	}
	if (req.Title != nil && strings.TrimSpace(*req.Title) == "") || (req.Content != nil && strings.TrimSpace(*req.Content) == "") {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpSaveArticle)

	var resp dto.ArticleResponse
	err := s.deps.Store.Update("update_article", func(st *store.State) error {
		a, err := s.editable(st, actorID, articleID)
		if err != nil {
			return err
		}
		if req.Title != nil {
			a.Title = strings.TrimSpace(*req.Title)
		}
		if req.Content != nil {
			a.Content = *req.Content
		}
		if req.CoverImageURL != nil {
			a.CoverImageURL = *req.CoverImageURL
		}
		if req.Tags != nil {
			a.Tags = normalizeTags(*req.Tags)
		}
		if req.Status != nil {
			a.Status = *req.Status
		}
		a.UpdatedAt = s.deps.now()
		st.Articles.Replace(a)
		resp = dto.NewArticleResponse(a, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteArticle removes an article. Author or admin only.
func (s *articleServiceImpl) DeleteArticle(ctx context.Context, actorID, articleID string) error {
	s.logger.Debug().Str("actorID", actorID).Str("articleID", articleID).Msg("Deleting article")

	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}

	s.deps.delay(ctx, latency.OpSaveArticle)

	return s.deps.Store.Update("delete_article", func(st *store.State) error {
		if _, err := s.editable(st, actorID, articleID); err != nil {
			return err
		}
		st.Articles.Remove(articleID)
		return nil
	})
}

// React increments a reaction counter on a published article
func (s *articleServiceImpl) React(ctx context.Context, actorID, articleID string, kind models.ReactionKind) (*models.Reactions, error) {
	if _, ok := (models.Reactions{}).Apply(kind, 0); !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown reaction %q", kind))
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpReact)

	var reactions models.Reactions
	err := s.deps.Store.Update("react_article", func(st *store.State) error {
		a, err := s.visible(st, actorID, articleID)
		if err != nil {
			return err
		}
		a.Reactions, _ = a.Reactions.Apply(kind, 1)
		st.Articles.Replace(a)
		reactions = a.Reactions
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reactions, nil
}

// AddComment comments on an article and notifies its author
func (s *articleServiceImpl) AddComment(ctx context.Context, actorID, articleID string, req *dto.AddCommentRequest) (*dto.CommentResponse, error) {
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
	err := s.deps.Store.Update("comment_article", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		a, err := s.visible(st, actorID, articleID)
		if err != nil {
			return err
		}
		c := models.Comment{ID: s.deps.IDs.ID("c"), AuthorID: actor.ID, Text: text, Timestamp: s.deps.now()}
		st.Articles.Replace(a.WithComment(c))
		if a.AuthorID != actor.ID {
			out.push(st, a.AuthorID, models.NotificationComment,
				fmt.Sprintf("%s commented on %q", actor.Name, a.Title), a.ID)
		}
		resp = dto.NewCommentResponses([]models.Comment{c}, lookupIn(st))[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.flush(ctx)
	return &resp, nil
}

// GetArticle returns an article. Drafts are only visible to their author and
// admins.
func (s *articleServiceImpl) GetArticle(ctx context.Context, viewerID, articleID string) (*dto.ArticleResponse, error) {
	var (
		resp dto.ArticleResponse
		err  error
	)
	s.deps.Store.View(func(st *store.State) {
		var a models.Article
		if a, err = s.visible(st, viewerID, articleID); err == nil {
			resp = dto.NewArticleResponse(a, lookupIn(st))
		}
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPublished returns published articles only, optionally by tag
func (s *articleServiceImpl) ListPublished(ctx context.Context, tag string) ([]dto.ArticleResponse, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	var out []dto.ArticleResponse
	s.deps.Store.View(func(st *store.State) {
		articles := st.Articles.Filter(func(a models.Article) bool {
			if a.Status != models.ArticlePublished {
				return false
			}
			return tag == "" || containsTag(a.Tags, tag)
		})
		lookup := lookupIn(st)
		out = make([]dto.ArticleResponse, 0, len(articles))
		for _, a := range articles {
			out = append(out, dto.NewArticleResponse(a, lookup))
		}
	})
	return out, nil
}

// ListByAuthor returns an author's articles. Drafts are included only when
// the viewer is the author.
func (s *articleServiceImpl) ListByAuthor(ctx context.Context, viewerID, authorID string) ([]dto.ArticleResponse, error) {
	var out []dto.ArticleResponse
	s.deps.Store.View(func(st *store.State) {
		articles := st.Articles.Filter(func(a models.Article) bool {
			if a.AuthorID != authorID {
				return false
			}
			return a.Status == models.ArticlePublished || viewerID == authorID
		})
		lookup := lookupIn(st)
		out = make([]dto.ArticleResponse, 0, len(articles))
		for _, a := range articles {
			out = append(out, dto.NewArticleResponse(a, lookup))
		}
	})
	return out, nil
}

func (s *articleServiceImpl) editable(st *store.State, actorID, articleID string) (models.Article, error) {
	actor, err := auth.ActorIn(st, actorID)
	if err != nil {
		return models.Article{}, err
	}
	a, ok := st.Articles.Get(articleID)
	if !ok {
		return models.Article{}, apperrors.NotFound(apperrors.ErrArticleNotFound)
	}
	if err := auth.ValidateOwnership(actor, a.AuthorID); err != nil {
		return models.Article{}, err
	}
	return a, nil
}

// visible hides drafts from everyone but the author and admins. A hidden
// draft reads as not found.
func (s *articleServiceImpl) visible(st *store.State, viewerID, articleID string) (models.Article, error) {
	a, ok := st.Articles.Get(articleID)
	if !ok {
		return models.Article{}, apperrors.NotFound(apperrors.ErrArticleNotFound)
	}
	if a.Status == models.ArticlePublished || a.AuthorID == viewerID {
		return a, nil
	}
	if viewer, ok := st.Users.Get(viewerID); ok && viewer.IsAdmin() {
		return a, nil
	}
	return models.Article{}, apperrors.NotFound(apperrors.ErrArticleNotFound)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "#"))
		if t != "" && !containsTag(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
