package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
)

func TestNotificationsReadIsMonotonic(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNotificationService(env.deps)
	ctx := context.Background()

	first, err := svc.Notify(ctx, "u1", models.NotificationSystem, "Welcome to Campus Buzz", "")
	require.NoError(t, err)
	_, err = svc.Notify(ctx, "u1", models.NotificationSystem, "Finish your profile", "")
	require.NoError(t, err)
	_, err = svc.Notify(ctx, "u2", models.NotificationSystem, "Hi Priya", "")
	require.NoError(t, err)

	_, err = svc.Notify(ctx, "ghost", models.NotificationSystem, "nobody home", "")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Len(t, env.sent.seen, 3)

	count, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = svc.MarkRead(ctx, "u2", first.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound, "only the recipient sees it")

	read, err := svc.MarkRead(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	read, err = svc.MarkRead(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead, "marking again keeps it read")

	list, err := svc.List(ctx, "u1", &dto.NotificationFilterRequest{UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, list.UnreadCount)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, "Finish your profile", list.Notifications[0].Text)

	marked, err := svc.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, marked.Marked)

	count, err = svc.UnreadCount(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "other users are untouched")

	list, err = svc.List(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, list.UnreadCount)
	assert.Len(t, list.Notifications, 2)
}
