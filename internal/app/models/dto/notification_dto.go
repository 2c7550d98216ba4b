package dto

import "github.com/yigit/campusbuzz/internal/app/models"

// NotificationListResponse lists a user's notifications
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

// NotificationFilterRequest filters the notification list
type NotificationFilterRequest struct {
	UnreadOnly bool `form:"unreadOnly"`
}

// MarkAllReadResponse reports how many notifications were marked read
type MarkAllReadResponse struct {
	Marked int `json:"marked"`
}
