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

func TestDirectConversationIsDeduplicated(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMessagingService(env.deps)
	ctx := context.Background()

	first, err := svc.CreateConversation(ctx, "u1", &dto.CreateConversationRequest{ParticipantIDs: []string{"u2"}})
	require.NoError(t, err)
	assert.False(t, first.IsGroup)

	again, err := svc.CreateConversation(ctx, "u2", &dto.CreateConversationRequest{ParticipantIDs: []string{"u1", "u2"}})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, env.store.Counts()["conversations"])

	_, err = svc.CreateConversation(ctx, "u1", &dto.CreateConversationRequest{ParticipantIDs: []string{"u1"}})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.CreateConversation(ctx, "u1", &dto.CreateConversationRequest{ParticipantIDs: []string{"u2", "u3"}})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest, "groups need a name")

	group, err := svc.CreateConversation(ctx, "u1", &dto.CreateConversationRequest{
		ParticipantIDs: []string{"u2", "u3"},
		Name:           "Project team",
	})
	require.NoError(t, err)
	assert.True(t, group.IsGroup)
	assert.Len(t, group.Participants, 3)
}

func TestUnreadCountsPerParticipant(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMessagingService(env.deps)
	ctx := context.Background()

	conv, err := svc.CreateConversation(ctx, "u1", &dto.CreateConversationRequest{
		ParticipantIDs: []string{"u2", "u3"},
		Name:           "Lab partners",
	})
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, "u2", conv.ID, &dto.SendMessageRequest{Text: "hey"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "u2", conv.ID, &dto.SendMessageRequest{Text: "lab at 3?"})
	require.NoError(t, err)

	for _, tc := range []struct {
		user string
		want int
	}{
		{"u1", 2},
		{"u2", 0},
		{"u3", 2},
	} {
		got, err := svc.UnreadTotal(ctx, tc.user)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.user)
	}
	assert.Len(t, env.sent.For("u1"), 2)
	assert.Len(t, env.sent.For("u3"), 2)
	assert.Empty(t, env.sent.For("u2"))

	opened, err := svc.SelectConversation(ctx, "u1", conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, opened.UnreadCount)
	assert.Len(t, opened.Messages, 2)

	u3, err := svc.UnreadTotal(ctx, "u3")
	require.NoError(t, err)
	assert.Equal(t, 2, u3, "selecting only resets the viewer's count")

	_, err = svc.SelectConversation(ctx, "admin", conv.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.SendMessage(ctx, "u1", conv.ID, &dto.SendMessageRequest{Text: " "})
	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)

	list, err := svc.ListConversations(ctx, "u3")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].LastMessage)
	assert.Equal(t, "lab at 3?", list[0].LastMessage.Text)

	notes := env.notificationsFor("u3")
	require.NotEmpty(t, notes)
	assert.Equal(t, models.NotificationMessage, notes[0].Type)
	assert.Equal(t, conv.ID, notes[0].LinkID)
}
