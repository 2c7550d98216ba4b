package models

import "time"

// Comment belongs to one Post or Article
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Post is a newsfeed entry
type Post struct {
	ID        string     `json:"id"`
	AuthorID  string     `json:"authorId"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"imageUrl,omitempty"`
	Reactions Reactions  `json:"reactions"`
	Comments  []Comment  `json:"comments"`
	EventID   string     `json:"eventId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// GetID implements Entity
func (p Post) GetID() string { return p.ID }

// WithComment returns a copy of p with c appended to a fresh comment slice.
func (p Post) WithComment(c Comment) Post {
	comments := make([]Comment, 0, len(p.Comments)+1)
	comments = append(comments, p.Comments...)
	p.Comments = append(comments, c)
	return p
}
