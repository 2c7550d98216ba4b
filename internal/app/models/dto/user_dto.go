package dto

import (
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// UserLookup resolves a user id. (*store.Collection[models.User]).Get fits.
type UserLookup func(id string) (models.User, bool)

// UserSummary is the compact author/participant representation embedded in
// other responses. It is resolved at query time, so it always reflects the
// latest profile.
type UserSummary struct {
	ID        string          `json:"id" example:"u1"`
	Name      string          `json:"name" example:"Alex Morgan"`
	AvatarURL string          `json:"avatarUrl,omitempty"`
	Role      models.RoleType `json:"role,omitempty" example:"Student"`
	Major     string          `json:"major,omitempty"`
}

// NewUserSummary builds a summary from a user
func NewUserSummary(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL, Role: u.Role, Major: u.Major}
}

// Summarize resolves id through lookup. Deleted users render as a placeholder.
func Summarize(lookup UserLookup, id string) UserSummary {
	if lookup != nil {
		if u, ok := lookup(id); ok {
			return NewUserSummary(u)
		}
	}
	return UserSummary{ID: id, Name: "Unknown user"}
}

// SummarizeAll resolves a list of ids
func SummarizeAll(lookup UserLookup, ids []string) []UserSummary {
	out := make([]UserSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, Summarize(lookup, id))
	}
	return out
}

// ProfileResponse is the full profile of a user
type ProfileResponse struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Email             string               `json:"email"`
	AvatarURL         string               `json:"avatarUrl,omitempty"`
	CoverURL          string               `json:"coverUrl,omitempty"`
	Bio               string               `json:"bio,omitempty"`
	Major             string               `json:"major,omitempty"`
	Year              string               `json:"year,omitempty"`
	Role              models.RoleType      `json:"role"`
	Status            models.UserStatus    `json:"status"`
	Friends           []UserSummary        `json:"friends"`
	FriendCount       int                  `json:"friendCount"`
	Settings          *models.UserSettings `json:"settings,omitempty"`
	IsMentor          bool                 `json:"isMentor"`
	MentorExpertise   []string             `json:"mentorExpertise,omitempty"`
	MentorCommunityID string               `json:"mentorCommunityId,omitempty"`
	JoinedAt          time.Time            `json:"joinedAt"`
}

// NewProfileResponse builds a profile. Settings are only included for the
// owner.
func NewProfileResponse(u models.User, lookup UserLookup, includeSettings bool) ProfileResponse {
	resp := ProfileResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		AvatarURL:         u.AvatarURL,
		CoverURL:          u.CoverURL,
		Bio:               u.Bio,
		Major:             u.Major,
		Year:              u.Year,
		Role:              u.Role,
		Status:            u.Status,
		Friends:           SummarizeAll(lookup, u.Friends),
		FriendCount:       len(u.Friends),
		IsMentor:          u.IsMentor,
		MentorExpertise:   u.MentorExpertise,
		MentorCommunityID: u.MentorCommunityID,
		JoinedAt:          u.JoinedAt,
	}
	if includeSettings {
		settings := u.Settings
		resp.Settings = &settings
	}
	return resp
}

// UpdateProfileRequest carries editable profile fields. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	Name      *string `json:"name" form:"name" binding:"omitempty,notblank,max=100"`
	Bio       *string `json:"bio" form:"bio" binding:"omitempty,max=500"`
	Major     *string `json:"major" form:"major" binding:"omitempty,max=100"`
	Year      *string `json:"year" form:"year" binding:"omitempty,max=30"`
	AvatarURL *string `json:"avatarUrl" form:"avatarUrl"`
	CoverURL  *string `json:"coverUrl" form:"coverUrl"`
}

// UpdateSettingsRequest carries user settings. Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	EmailNotifications *bool   `json:"emailNotifications"`
	PushNotifications  *bool   `json:"pushNotifications"`
	ProfileVisibility  *string `json:"profileVisibility" binding:"omitempty,oneof=public friends private"`
	DarkMode           *bool   `json:"darkMode"`
}

// BecomeMentorRequest turns a user into a mentor
type BecomeMentorRequest struct {
	Expertise []string `json:"expertise" binding:"required,min=1,dive,notblank"`
}

// UserFilterRequest filters the user directory
type UserFilterRequest struct {
	Search  string `form:"search"`
	Role    string `form:"role" binding:"omitempty,oneof=Student Staff Admin"`
	Mentors bool   `form:"mentors"`
}

// SessionRequest selects which seed user the client acts as
type SessionRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// SessionResponse carries the session token
type SessionResponse struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType" example:"Bearer"`
	ExpiresIn   int             `json:"expiresIn" example:"86400"`
	User        ProfileResponse `json:"user"`
}
