package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/store"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	List(ctx context.Context, userID string, filter *dto.NotificationFilterRequest) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID, notificationID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (*dto.MarkAllReadResponse, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	Notify(ctx context.Context, recipientID string, typ models.NotificationType, text, linkID string) (*models.Notification, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(deps *Deps) NotificationService {
	return &notificationServiceImpl{deps: deps, logger: deps.component("notification_service")}
}

// List returns a user's notifications, newest first
func (s *notificationServiceImpl) List(ctx context.Context, userID string, filter *dto.NotificationFilterRequest) (*dto.NotificationListResponse, error) {
	unreadOnly := filter != nil && filter.UnreadOnly
	resp := &dto.NotificationListResponse{Notifications: []models.Notification{}}
	s.deps.Store.View(func(st *store.State) {
		st.Notifications.Each(func(n models.Notification) {
			if n.RecipientID != userID {
				return
			}
			if !n.IsRead {
				resp.UnreadCount++
			} else if unreadOnly {
				return
			}
			resp.Notifications = append(resp.Notifications, n)
		})
	})
	return resp, nil
}

// MarkRead marks one notification read. Marking never goes back to unread.
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID string) (*models.Notification, error) {
	var out models.Notification
	err := s.deps.Store.Update("mark_notification_read", func(st *store.State) error {
		n, ok := st.Notifications.Get(notificationID)
		if !ok || n.RecipientID != userID {
			return apperrors.NotFound(apperrors.ErrNotificationNotFound)
		}
		if !n.IsRead {
			n.IsRead = true
			st.Notifications.Replace(n)
		}
		out = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkAllRead marks every unread notification of userID read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID string) (*dto.MarkAllReadResponse, error) {
	var marked int
	err := s.deps.Store.Update("mark_all_notifications_read", func(st *store.State) error {
		marked = st.Notifications.Map(func(n models.Notification) (models.Notification, bool) {
			if n.RecipientID != userID || n.IsRead {
				return n, false
			}
			n.IsRead = true
			return n, true
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("userID", userID).Int("marked", marked).Msg("Notifications marked read")
	return &dto.MarkAllReadResponse{Marked: marked}, nil
}

// UnreadCount returns the number of unread notifications of userID
func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	s.deps.Store.View(func(st *store.State) {
		count = st.Notifications.Count(func(n models.Notification) bool {
			return n.RecipientID == userID && !n.IsRead
		})
	})
	return count, nil
}

// Notify stores and delivers a standalone notification
func (s *notificationServiceImpl) Notify(ctx context.Context, recipientID string, typ models.NotificationType, text, linkID string) (*models.Notification, error) {
	out := s.deps.newOutbox()
	err := s.deps.Store.Update("notify", func(st *store.State) error {
		if !st.Users.Has(recipientID) {
			return apperrors.NotFound(apperrors.ErrUserNotFound)
		}
		out.push(st, recipientID, typ, text, linkID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	n := out.items[0]
	out.flush(ctx)
	return &n, nil
}
