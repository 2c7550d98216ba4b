package dto

import (
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// CreateArticleRequest creates a blog article
type CreateArticleRequest struct {
	Title         string               `json:"title" form:"title" binding:"required,notblank,max=200"`
	Content       string               `json:"content" form:"content" binding:"required,notblank"`
	CoverImageURL string               `json:"coverImageUrl" form:"coverImageUrl"`
	Tags          []string             `json:"tags" form:"tags"`
	Status        models.ArticleStatus `json:"status" form:"status" binding:"omitempty,oneof=published draft"`
}

// UpdateArticleRequest edits an article. Nil fields are left unchanged.
type UpdateArticleRequest struct {
	Title         *string               `json:"title" binding:"omitempty,notblank,max=200"`
	Content       *string               `json:"content" binding:"omitempty,notblank"`
	CoverImageURL *string               `json:"coverImageUrl"`
	Tags          *[]string             `json:"tags"`
	Status        *models.ArticleStatus `json:"status" binding:"omitempty,oneof=published draft"`
}

// ArticleResponse is an article with author and comments resolved
type ArticleResponse struct {
	ID            string               `json:"id"`
	Author        UserSummary          `json:"author"`
	Title         string               `json:"title"`
	Content       string               `json:"content"`
	CoverImageURL string               `json:"coverImageUrl,omitempty"`
	Tags          []string             `json:"tags,omitempty"`
	Status        models.ArticleStatus `json:"status"`
	Reactions     models.Reactions     `json:"reactions"`
	Comments      []CommentResponse    `json:"comments"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// NewArticleResponse resolves an article
func NewArticleResponse(a models.Article, lookup UserLookup) ArticleResponse {
	return ArticleResponse{
		ID:            a.ID,
		Author:        Summarize(lookup, a.AuthorID),
		Title:         a.Title,
		Content:       a.Content,
		CoverImageURL: a.CoverImageURL,
		Tags:          a.Tags,
		Status:        a.Status,
		Reactions:     a.Reactions,
		Comments:      NewCommentResponses(a.Comments, lookup),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
