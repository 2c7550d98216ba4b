package dto

import (
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// SendFriendRequestRequest targets another user
type SendFriendRequestRequest struct {
	ToUserID string `json:"toUserId" binding:"required"`
}

// FriendRequestResponse is a pending friend request with both users resolved
type FriendRequestResponse struct {
	ID        string                     `json:"id"`
	FromUser  UserSummary                `json:"fromUser"`
	ToUser    UserSummary                `json:"toUser"`
	Status    models.FriendRequestStatus `json:"status"`
	CreatedAt time.Time                  `json:"createdAt"`
}

// NewFriendRequestResponse resolves a friend request
func NewFriendRequestResponse(r models.FriendRequest, lookup UserLookup) FriendRequestResponse {
	return FriendRequestResponse{
		ID:        r.ID,
		FromUser:  Summarize(lookup, r.FromUserID),
		ToUser:    Summarize(lookup, r.ToUserID),
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

// FriendRequestsResponse lists both directions of pending requests
type FriendRequestsResponse struct {
	Incoming []FriendRequestResponse `json:"incoming"`
	Outgoing []FriendRequestResponse `json:"outgoing"`
}

// CreateGroupRequest creates a group
type CreateGroupRequest struct {
	Name        string `json:"name" form:"name" binding:"required,notblank,max=120"`
	Description string `json:"description" form:"description" binding:"max=2000"`
	Category    string `json:"category" form:"category" binding:"max=60"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
}

// GroupResponse is a group with membership info for the viewer
type GroupResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Category     string        `json:"category,omitempty"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	Members      []UserSummary `json:"members"`
	MemberCount  int           `json:"memberCount"`
	Admins       []string      `json:"admins"`
	IsMember     bool          `json:"isMember"`
	IsAdmin      bool          `json:"isAdmin"`
	IsMentorship bool          `json:"isMentorship"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// NewGroupResponse resolves a group for viewerID
func NewGroupResponse(g models.Group, lookup UserLookup, viewerID string) GroupResponse {
	return GroupResponse{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		Category:     g.Category,
		ImageURL:     g.ImageURL,
		Members:      SummarizeAll(lookup, g.Members),
		MemberCount:  len(g.Members),
		Admins:       g.Admins,
		IsMember:     models.ContainsID(g.Members, viewerID),
		IsAdmin:      models.ContainsID(g.Admins, viewerID),
		IsMentorship: g.IsMentorship,
		CreatedAt:    g.CreatedAt,
	}
}

// MembershipResponse reports membership after a join/leave
type MembershipResponse struct {
	GroupID     string `json:"groupId"`
	IsMember    bool   `json:"isMember"`
	MemberCount int    `json:"memberCount"`
}

// CreateMentorshipCommunityRequest creates the mentor's community group
type CreateMentorshipCommunityRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=120"`
	Description string `json:"description" binding:"max=2000"`
}

// SendMentorshipRequestRequest asks a mentor for mentorship
type SendMentorshipRequestRequest struct {
	MentorID    string `json:"mentorId" binding:"required"`
	CommunityID string `json:"communityId" binding:"required"`
	Message     string `json:"message" binding:"max=1000"`
}

// MentorshipRequestResponse is a mentorship request with users resolved
type MentorshipRequestResponse struct {
	ID          string                  `json:"id"`
	FromUser    UserSummary             `json:"fromUser"`
	ToMentor    UserSummary             `json:"toMentor"`
	CommunityID string                  `json:"communityId"`
	Message     string                  `json:"message,omitempty"`
	Status      models.MentorshipStatus `json:"status"`
	CreatedAt   time.Time               `json:"createdAt"`
	RespondedAt *time.Time              `json:"respondedAt,omitempty"`
}

// NewMentorshipRequestResponse resolves a mentorship request
func NewMentorshipRequestResponse(r models.MentorshipRequest, lookup UserLookup) MentorshipRequestResponse {
	return MentorshipRequestResponse{
		ID:          r.ID,
		FromUser:    Summarize(lookup, r.FromUserID),
		ToMentor:    Summarize(lookup, r.ToMentorID),
		CommunityID: r.CommunityID,
		Message:     r.Message,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		RespondedAt: r.RespondedAt,
	}
}

// MentorshipRequestsResponse lists requests in both directions
type MentorshipRequestsResponse struct {
	Incoming []MentorshipRequestResponse `json:"incoming"`
	Outgoing []MentorshipRequestResponse `json:"outgoing"`
}

// MentorResponse is a mentor entry in the mentor directory
type MentorResponse struct {
	User          UserSummary `json:"user"`
	Expertise     []string    `json:"expertise"`
	CommunityID   string      `json:"communityId,omitempty"`
	CommunityName string      `json:"communityName,omitempty"`
	MenteeCount   int         `json:"menteeCount"`
}
