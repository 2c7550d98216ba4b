package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/store"
)

func TestMentorshipAcceptAddsMember(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMentorshipService(env.deps)
	ctx := context.Background()

	community, err := svc.CreateCommunity(ctx, "u3", &dto.CreateMentorshipCommunityRequest{Name: "Research Circle"})
	require.NoError(t, err)
	assert.True(t, community.IsMentorship)
	assert.True(t, env.user(t, "u3").IsMentor)
	assert.Equal(t, community.ID, env.user(t, "u3").MentorCommunityID)

	_, err = svc.CreateCommunity(ctx, "u3", &dto.CreateMentorshipCommunityRequest{Name: "Second"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.SendRequest(ctx, "u1", &dto.SendMentorshipRequestRequest{MentorID: "u2", CommunityID: community.ID})
	assert.ErrorIs(t, err, apperrors.ErrNotAMentor)

	mr, err := svc.SendRequest(ctx, "u1", &dto.SendMentorshipRequestRequest{
		MentorID:    "u3",
		CommunityID: community.ID,
		Message:     "I'd love guidance on grad school",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MentorshipPending, mr.Status)

	_, err = svc.SendRequest(ctx, "u1", &dto.SendMentorshipRequestRequest{MentorID: "u3", CommunityID: community.ID})
	assert.ErrorIs(t, err, apperrors.ErrMentorshipPending)

	toMentor := env.notificationsFor("u3")
	require.Len(t, toMentor, 1)
	assert.Equal(t, models.NotificationMentorship, toMentor[0].Type)

	_, err = svc.AcceptRequest(ctx, "u1", mr.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	accepted, err := svc.AcceptRequest(ctx, "u3", mr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MentorshipAccepted, accepted.Status)
	require.NotNil(t, accepted.RespondedAt)

	env.store.View(func(st *store.State) {
		g, ok := st.Groups.Get(community.ID)
		require.True(t, ok)
		assert.Contains(t, g.Members, "u1")
		assert.True(t, st.MentorshipRequests.Has(mr.ID), "answered requests are kept")
	})
	assert.Len(t, env.notificationsFor("u1"), 1)

	_, err = svc.DeclineRequest(ctx, "u3", mr.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyHandled)

	mentors, err := svc.ListMentors(ctx)
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, 1, mentors[0].MenteeCount)

	require.NoError(t, svc.RemoveMentee(ctx, "u3", "u1"))
	mentors, err = svc.ListMentors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, mentors[0].MenteeCount)
}

func TestMentorshipDeclineKeepsHistory(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMentorshipService(env.deps)
	ctx := context.Background()

	community, err := svc.CreateCommunity(ctx, "u3", &dto.CreateMentorshipCommunityRequest{Name: "Design Lab"})
	require.NoError(t, err)
	mr, err := svc.SendRequest(ctx, "u2", &dto.SendMentorshipRequestRequest{MentorID: "u3", CommunityID: community.ID})
	require.NoError(t, err)

	declined, err := svc.DeclineRequest(ctx, "u3", mr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MentorshipDeclined, declined.Status)

	lists, err := svc.ListRequests(ctx, "u3")
	require.NoError(t, err)
	require.Len(t, lists.Incoming, 1)
	assert.Empty(t, lists.Outgoing)

	// a declined request does not block a new one
	_, err = svc.SendRequest(ctx, "u2", &dto.SendMentorshipRequestRequest{MentorID: "u3", CommunityID: community.ID})
	assert.NoError(t, err)
}
