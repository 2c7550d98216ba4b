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

func TestGroupMembershipLifecycle(t *testing.T) {
	env := newTestEnv(t)
	svc := NewGroupService(env.deps)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "u1", &dto.CreateGroupRequest{Name: "  Chess Club  "})
	require.NoError(t, err)
	assert.Equal(t, "Chess Club", group.Name)
	assert.True(t, group.IsMember)
	assert.True(t, group.IsAdmin)
	assert.Equal(t, 1, group.MemberCount)

	joined, err := svc.JoinGroup(ctx, "u2", group.ID)
	require.NoError(t, err)
	assert.True(t, joined.IsMember)
	assert.Equal(t, 2, joined.MemberCount)

	// joining twice is a no-op
	joined, err = svc.JoinGroup(ctx, "u2", group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, joined.MemberCount)

	toggled, err := svc.ToggleMembership(ctx, "u2", group.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsMember)
	assert.Equal(t, 1, toggled.MemberCount)

	mine, err := svc.ListGroups(ctx, "u2", true)
	require.NoError(t, err)
	assert.Empty(t, mine)

	all, err := svc.ListGroups(ctx, "u2", false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// an admin who leaves loses admin rights
	left, err := svc.LeaveGroup(ctx, "u1", group.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, left.MemberCount)

	got, err := svc.GetGroup(ctx, "u1", group.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Admins)
}

func TestCreateGroupRejectsBlankName(t *testing.T) {
	env := newTestEnv(t)
	svc := NewGroupService(env.deps)

	_, err := svc.CreateGroup(context.Background(), "u1", &dto.CreateGroupRequest{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, 0, env.store.Counts()["groups"])
}

func TestDeleteGroupPermissions(t *testing.T) {
	env := newTestEnv(t)
	svc := NewGroupService(env.deps)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "u1", &dto.CreateGroupRequest{Name: "Robotics"})
	require.NoError(t, err)
	_, err = svc.JoinGroup(ctx, "u2", group.ID)
	require.NoError(t, err)

	err = svc.DeleteGroup(ctx, "u2", group.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "plain members cannot delete")

	require.NoError(t, svc.DeleteGroup(ctx, "admin", group.ID))

	_, err = svc.GetGroup(ctx, "u1", group.ID)
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)

	err = svc.DeleteGroup(ctx, "u1", group.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestDeleteMentorshipCommunityClearsMentorLink(t *testing.T) {
	env := newTestEnv(t, func(st *store.State) {
		st.Groups.Append(models.Group{ID: "g-mentor", Name: "Lee's mentees", Members: []string{"u3"}, Admins: []string{"u3"}})
		u, _ := st.Users.Get("u3")
		u.IsMentor = true
		u.MentorCommunityID = "g-mentor"
		st.Users.Replace(u)
		st.MentorshipRequests.Append(models.MentorshipRequest{
			ID: "mr1", FromUserID: "u1", ToMentorID: "u3", CommunityID: "g-mentor", Status: models.MentorshipPending,
		})
	})
	svc := NewGroupService(env.deps)

	require.NoError(t, svc.DeleteGroup(context.Background(), "u3", "g-mentor"))

	assert.Empty(t, env.user(t, "u3").MentorCommunityID)
	assert.Equal(t, 0, env.store.Counts()["mentorshipRequests"])
}

func TestMentorshipCommunityMembershipGoesThroughRequests(t *testing.T) {
	env := newTestEnv(t)
	groups := NewGroupService(env.deps)
	mentorship := NewMentorshipService(env.deps)
	ctx := context.Background()

	community, err := mentorship.CreateCommunity(ctx, "u3", &dto.CreateMentorshipCommunityRequest{Name: "Systems mentoring"})
	require.NoError(t, err)

	_, err = groups.JoinGroup(ctx, "u1", community.ID)
	assert.ErrorIs(t, err, apperrors.ErrJoinByRequest)
	_, err = groups.ToggleMembership(ctx, "u1", community.ID)
	assert.ErrorIs(t, err, apperrors.ErrJoinByRequest)

	_, err = groups.LeaveGroup(ctx, "u3", community.ID)
	assert.ErrorIs(t, err, apperrors.ErrMentorCannotLeave)
	_, err = groups.ToggleMembership(ctx, "u3", community.ID)
	assert.ErrorIs(t, err, apperrors.ErrMentorCannotLeave)

	got, err := groups.GetGroup(ctx, "u3", community.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u3"}, got.Admins)
	assert.Equal(t, 1, got.MemberCount)

	// the mentor can still take requests
	req, err := mentorship.SendRequest(ctx, "u1", &dto.SendMentorshipRequestRequest{MentorID: "u3", CommunityID: community.ID})
	require.NoError(t, err)
	_, err = mentorship.AcceptRequest(ctx, "u3", req.ID)
	require.NoError(t, err)

	// mentees may leave
	left, err := groups.LeaveGroup(ctx, "u1", community.ID)
	require.NoError(t, err)
	assert.False(t, left.IsMember)
	assert.Equal(t, 1, left.MemberCount)
}
