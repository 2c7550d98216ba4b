package models

import "time"

// NotificationType categorizes a notification
type NotificationType string

const (
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationFriendAccept  NotificationType = "friend_accept"
	NotificationMessage       NotificationType = "message"
	NotificationPost          NotificationType = "post"
	NotificationMarketplace   NotificationType = "marketplace"
	NotificationEvent         NotificationType = "event"
	NotificationMentorship    NotificationType = "mentorship"
	NotificationComment       NotificationType = "comment"
	NotificationSystem        NotificationType = "system"
)

// Notification is addressed to one recipient. IsRead only ever goes from
// false to true.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipientId"`
	Text        string           `json:"text"`
	IsRead      bool             `json:"isRead"`
	Type        NotificationType `json:"type"`
	LinkID      string           `json:"linkId,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

// GetID implements Entity
func (n Notification) GetID() string { return n.ID }
