package models

import (
	"time"
)

// ProfileVisibility controls who can see a profile
type ProfileVisibility string

const (
	VisibilityPublic  ProfileVisibility = "public"
	VisibilityFriends ProfileVisibility = "friends"
	VisibilityPrivate ProfileVisibility = "private"
)

// UserSettings holds per-user preferences
type UserSettings struct {
	EmailNotifications bool              `json:"emailNotifications"`
	PushNotifications  bool              `json:"pushNotifications"`
	ProfileVisibility  ProfileVisibility `json:"profileVisibility"`
	DarkMode           bool              `json:"darkMode"`
}

// User is a member of the campus community
type User struct {
	ID        string     `json:"id" example:"u1"`
	Name      string     `json:"name" example:"Alex Morgan"`
	Email     string     `json:"email" example:"alex@campus.edu"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	CoverURL  string     `json:"coverUrl,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Major     string     `json:"major,omitempty"`
	Year      string     `json:"year,omitempty"`
	Role      RoleType   `json:"role" example:"Student"`
	Status    UserStatus `json:"status" example:"active"`
	// Friends is kept symmetric by the friend handlers
	Friends  []string     `json:"friends"`
	Settings UserSettings `json:"settings"`

	IsMentor          bool     `json:"isMentor"`
	MentorExpertise   []string `json:"mentorExpertise,omitempty"`
	MentorCommunityID string   `json:"mentorCommunityId,omitempty"`

	JoinedAt time.Time `json:"joinedAt"`
}

// GetID implements Entity
func (u User) GetID() string { return u.ID }

// IsAdmin reports whether the user holds the admin role
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsActive reports whether the user may run commands
func (u User) IsActive() bool { return u.Status != UserSuspended }
