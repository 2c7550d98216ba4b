package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/store"
)

func TestFriendRequestAcceptIsSymmetric(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFriendService(env.deps)
	ctx := context.Background()

	req, err := svc.SendFriendRequest(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestPending, req.Status)

	incoming := env.notificationsFor("u1")
	require.Len(t, incoming, 1)
	assert.Equal(t, models.NotificationFriendRequest, incoming[0].Type)

	_, err = svc.SendFriendRequest(ctx, "u1", "u2")
	assert.ErrorIs(t, err, apperrors.ErrFriendRequestPending, "one pending request per pair in either direction")

	_, err = svc.AcceptFriendRequest(ctx, "u2", req.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "only the recipient may accept")

	friend, err := svc.AcceptFriendRequest(ctx, "u1", req.ID)
	require.NoError(t, err)
	assert.Equal(t, "u2", friend.ID)

	assert.Contains(t, env.user(t, "u1").Friends, "u2")
	assert.Contains(t, env.user(t, "u2").Friends, "u1")
	assert.Equal(t, 0, env.store.Counts()["friendRequests"])

	accepted := env.notificationsFor("u2")
	require.Len(t, accepted, 1)
	assert.Equal(t, models.NotificationFriendAccept, accepted[0].Type)

	_, err = svc.SendFriendRequest(ctx, "u1", "u2")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyFriends)

	require.NoError(t, svc.Unfriend(ctx, "u2", "u1"))
	assert.NotContains(t, env.user(t, "u1").Friends, "u2")
	assert.NotContains(t, env.user(t, "u2").Friends, "u1")
}

func TestFriendRequestGuards(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFriendService(env.deps)
	ctx := context.Background()

	_, err := svc.SendFriendRequest(ctx, "u1", "u1")
	assert.ErrorIs(t, err, apperrors.ErrSelfFriendRequest)

	_, err = svc.SendFriendRequest(ctx, "u1", "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	req, err := svc.SendFriendRequest(ctx, "u1", "u3")
	require.NoError(t, err)

	err = svc.CancelFriendRequest(ctx, "u3", req.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.DeclineFriendRequest(ctx, "u3", req.ID))
	assert.Empty(t, env.user(t, "u1").Friends)

	err = svc.DeclineFriendRequest(ctx, "u3", req.ID)
	assert.ErrorIs(t, err, apperrors.ErrFriendRequestNotFound)
}

func TestFriendSuggestionsRankByMutualFriends(t *testing.T) {
	env := newTestEnv(t, func(st *store.State) {
		link := func(a, b string) {
			ua, _ := st.Users.Get(a)
			ub, _ := st.Users.Get(b)
			ua.Friends = models.AddID(ua.Friends, b)
			ub.Friends = models.AddID(ub.Friends, a)
			st.Users.Replace(ua)
			st.Users.Replace(ub)
		}
		st.Users.Append(models.User{ID: "u4", Name: "Sam", Status: models.UserActive})
		link("u1", "u2")
		link("u2", "u4")
		link("u2", "u3")
		link("u1", "u3")
		link("u3", "u4")
	})
	svc := NewFriendService(env.deps)

	got, err := svc.Suggestions(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "u4", got[0].ID)
	for _, s := range got {
		assert.NotEqual(t, "u1", s.ID)
		assert.NotEqual(t, "u2", s.ID)
		assert.NotEqual(t, "u3", s.ID)
	}
}
