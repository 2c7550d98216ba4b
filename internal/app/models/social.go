package models

import "time"

// FriendRequestStatus is the state of a friend request. Answered requests are
// removed, so only pending requests are ever stored.
type FriendRequestStatus string

const (
	FriendRequestPending FriendRequestStatus = "pending"
)

// FriendRequest references two Users by id
type FriendRequest struct {
	ID         string              `json:"id"`
	FromUserID string              `json:"fromUserId"`
	ToUserID   string              `json:"toUserId"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// GetID implements Entity
func (r FriendRequest) GetID() string { return r.ID }

// Involves reports whether the request connects a and b in either direction
func (r FriendRequest) Involves(a, b string) bool {
	return (r.FromUserID == a && r.ToUserID == b) || (r.FromUserID == b && r.ToUserID == a)
}

// MentorshipStatus is the state of a mentorship request
type MentorshipStatus string

const (
	MentorshipPending  MentorshipStatus = "pending"
	MentorshipAccepted MentorshipStatus = "accepted"
	MentorshipDeclined MentorshipStatus = "declined"
)

// MentorshipRequest asks a mentor to admit a user into their community group.
// Requests stay in the store after being answered.
type MentorshipRequest struct {
	ID          string           `json:"id"`
	FromUserID  string           `json:"fromUserId"`
	ToMentorID  string           `json:"toMentorId"`
	CommunityID string           `json:"communityId"`
	Message     string           `json:"message,omitempty"`
	Status      MentorshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	RespondedAt *time.Time       `json:"respondedAt,omitempty"`
}

// GetID implements Entity
func (r MentorshipRequest) GetID() string { return r.ID }

// Group is a community with a member set
type Group struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Members      []string  `json:"members"`
	Admins       []string  `json:"admins"`
	IsMentorship bool      `json:"isMentorship"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetID implements Entity
func (g Group) GetID() string { return g.ID }
