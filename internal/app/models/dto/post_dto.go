package dto

import (
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// CreatePostRequest is the body of a new post. ImageURL may be a data URL.
type CreatePostRequest struct {
	Content  string `json:"content" form:"content" binding:"required,notblank,max=5000"`
	ImageURL string `json:"imageUrl" form:"imageUrl"`
	EventID  string `json:"eventId" form:"eventId"`
}

// EditPostRequest edits a post. Nil fields are left unchanged.
type EditPostRequest struct {
	Content  *string `json:"content" binding:"omitempty,notblank,max=5000"`
	ImageURL *string `json:"imageUrl"`
}

// AddCommentRequest adds a comment to a post or article
type AddCommentRequest struct {
	Text string `json:"text" binding:"required,notblank,max=2000"`
}

// ReactRequest moves a reaction counter
type ReactRequest struct {
	Kind models.ReactionKind `json:"kind" binding:"required,oneof=like love laugh wow sad"`
}

// CommentResponse is a comment with its author resolved
type CommentResponse struct {
	ID        string      `json:"id"`
	Author    UserSummary `json:"author"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewCommentResponses resolves comment authors
func NewCommentResponses(comments []models.Comment, lookup UserLookup) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentResponse{
			ID:        c.ID,
			Author:    Summarize(lookup, c.AuthorID),
			Text:      c.Text,
			Timestamp: c.Timestamp,
		})
	}
	return out
}

// PostResponse is a post with its author and comments resolved
type PostResponse struct {
	ID        string            `json:"id"`
	Author    UserSummary       `json:"author"`
	Content   string            `json:"content"`
	ImageURL  string            `json:"imageUrl,omitempty"`
	Reactions models.Reactions  `json:"reactions"`
	Comments  []CommentResponse `json:"comments"`
	EventID   string            `json:"eventId,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

// NewPostResponse resolves a post
func NewPostResponse(p models.Post, lookup UserLookup) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Author:    Summarize(lookup, p.AuthorID),
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Reactions: p.Reactions,
		Comments:  NewCommentResponses(p.Comments, lookup),
		EventID:   p.EventID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FeedRequest carries the newsfeed filter query parameters
type FeedRequest struct {
	Search    string `form:"search"`
	Hashtag   string `form:"hashtag"`
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Sort      string `form:"sort" binding:"omitempty,oneof=newest oldest"`
}

// FeedResponse is the filtered newsfeed
type FeedResponse struct {
	Posts   []PostResponse `json:"posts"`
	Search  string         `json:"search,omitempty"`
	Hashtag string         `json:"hashtag,omitempty"`
	Sort    string         `json:"sort"`
	Total   int            `json:"total"`
}
