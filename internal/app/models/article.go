package models

import "time"

// ArticleStatus is the publication state of an article
type ArticleStatus string

const (
	ArticlePublished ArticleStatus = "published"
	ArticleDraft     ArticleStatus = "draft"
)

// Valid reports whether s is published or draft
func (s ArticleStatus) Valid() bool {
	return s == ArticlePublished || s == ArticleDraft
}

// Article is a blog entry. Only published articles appear in the public list.
type Article struct {
	ID            string        `json:"id"`
	AuthorID      string        `json:"authorId"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	CoverImageURL string        `json:"coverImageUrl,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
	Status        ArticleStatus `json:"status"`
	Reactions     Reactions     `json:"reactions"`
	Comments      []Comment     `json:"comments"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// GetID implements Entity
func (a Article) GetID() string { return a.ID }

// WithComment returns a copy of a with c appended to a fresh comment slice.
func (a Article) WithComment(c Comment) Article {
	comments := make([]Comment, 0, len(a.Comments)+1)
	comments = append(comments, a.Comments...)
	a.Comments = append(comments, c)
	return a
}
