package dto

import "github.com/yigit/campusbuzz/internal/app/models"

// DashboardResponse summarizes the store for the admin dashboard
type DashboardResponse struct {
	Counts              map[string]int `json:"counts"`
	ActiveUsers         int            `json:"activeUsers"`
	SuspendedUsers      int            `json:"suspendedUsers"`
	AvailableListings   int            `json:"availableListings"`
	SoldListings        int            `json:"soldListings"`
	PublishedArticles   int            `json:"publishedArticles"`
	DraftArticles       int            `json:"draftArticles"`
	UnreadNotifications int            `json:"unreadNotifications"`
	PendingMentorships  int            `json:"pendingMentorships"`
}

// SetUserStatusRequest suspends or reactivates a user
type SetUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=active suspended"`
}

// SetUserRoleRequest changes a user's role
type SetUserRoleRequest struct {
	Role models.RoleType `json:"role" binding:"required,oneof=Student Staff Admin"`
}

// AdminUserResponse is a user row in the admin table
type AdminUserResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Role        models.RoleType   `json:"role"`
	Status      models.UserStatus `json:"status"`
	FriendCount int               `json:"friendCount"`
	PostCount   int               `json:"postCount"`
	IsMentor    bool              `json:"isMentor"`
}
