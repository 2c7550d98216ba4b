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

func TestAdminCommandsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAdminService(env.deps)
	ctx := context.Background()

	_, err := svc.Dashboard(ctx, "u1")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.SetUserStatus(ctx, "u3", "u2", models.UserSuspended)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	dash, err := svc.Dashboard(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, 4, dash.Counts["users"])
	assert.Equal(t, 4, dash.ActiveUsers)
}

func TestSuspendBlocksCommands(t *testing.T) {
	env := newTestEnv(t)
	admin := NewAdminService(env.deps)
	posts := NewPostService(env.deps)
	ctx := context.Background()

	_, err := admin.SetUserStatus(ctx, "admin", "u1", models.UserSuspended)
	assert.ErrorIs(t, err, apperrors.ErrCurrentUserProtected)

	row, err := admin.SetUserStatus(ctx, "admin", "u2", models.UserSuspended)
	require.NoError(t, err)
	assert.Equal(t, models.UserSuspended, row.Status)

	_, err = posts.CreatePost(ctx, "u2", &dto.CreatePostRequest{Content: "still here?"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)

	_, err = admin.SetUserStatus(ctx, "admin", "u2", models.UserStatus("banned"))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = admin.SetUserRole(ctx, "admin", "admin", models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	row, err = admin.SetUserRole(ctx, "admin", "u3", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, row.Role)
}

func TestDeleteUserStripsReferences(t *testing.T) {
	env := newTestEnv(t, func(st *store.State) {
		u1, _ := st.Users.Get("u1")
		u1.Friends = []string{"u2"}
		st.Users.Replace(u1)
		u2, _ := st.Users.Get("u2")
		u2.Friends = []string{"u1"}
		st.Users.Replace(u2)

		st.Posts.Append(models.Post{ID: "p1", AuthorID: "u2", Content: "bye"})
		st.Posts.Append(models.Post{ID: "p2", AuthorID: "u1", Content: "hi"})
		st.Events.Append(models.Event{ID: "e1", OrganizerID: "u3", Attendees: []string{"u3", "u2"}})
		st.Groups.Append(models.Group{ID: "g1", Members: []string{"u2", "u3"}, Admins: []string{"u2"}})
		st.FriendRequests.Append(models.FriendRequest{ID: "fr1", FromUserID: "u2", ToUserID: "u3"})
	})
	svc := NewAdminService(env.deps)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteUser(ctx, "admin", "u1"), apperrors.ErrCurrentUserProtected)
	assert.ErrorIs(t, svc.DeleteUser(ctx, "admin", "ghost"), apperrors.ErrUserNotFound)

	require.NoError(t, svc.DeleteUser(ctx, "admin", "u2"))

	env.store.View(func(st *store.State) {
		assert.False(t, st.Users.Has("u2"))
		u1, _ := st.Users.Get("u1")
		assert.Empty(t, u1.Friends)
		assert.False(t, st.Posts.Has("p1"))
		assert.True(t, st.Posts.Has("p2"))
		e1, _ := st.Events.Get("e1")
		assert.Equal(t, []string{"u3"}, e1.Attendees)
		g1, _ := st.Groups.Get("g1")
		assert.Equal(t, []string{"u3"}, g1.Members)
		assert.Empty(t, g1.Admins)
		assert.Equal(t, 0, st.FriendRequests.Len())
	})
}

func TestDeleteUserRemovesWhatTheyRan(t *testing.T) {
	env := newTestEnv(t, func(st *store.State) {
		u3, _ := st.Users.Get("u3")
		u3.IsMentor = true
		u3.MentorCommunityID = "g-mentor"
		st.Users.Replace(u3)

		st.Groups.Append(models.Group{ID: "g-mentor", IsMentorship: true, Members: []string{"u3", "u1"}, Admins: []string{"u3"}})
		st.MentorshipRequests.Append(models.MentorshipRequest{
			ID: "mr1", FromUserID: "u1", ToMentorID: "u3", CommunityID: "g-mentor", Status: models.MentorshipAccepted,
		})
		st.Events.Append(models.Event{ID: "e-talk", OrganizerID: "u3", Attendees: []string{"u3", "u1"}})
		st.Posts.Append(models.Post{
			ID: "p-talk", AuthorID: "u1", Content: "See you there", EventID: "e-talk",
			Comments: []models.Comment{{ID: "c1", AuthorID: "u3", Text: "Welcome"}, {ID: "c2", AuthorID: "u2", Text: "Going"}},
		})
		st.Conversations.Append(models.Conversation{ID: "dm", Participants: []string{"u1", "u3"}, Unread: map[string]int{"u1": 1}})
		st.Conversations.Append(models.Conversation{
			ID: "study", IsGroup: true, Participants: []string{"u1", "u2", "u3"}, Unread: map[string]int{"u2": 2, "u3": 4},
		})
		st.Jobs.Append(models.Job{ID: "job1", PostedByID: "u3", Title: "TA"})
	})
	svc := NewAdminService(env.deps)

	require.NoError(t, svc.DeleteUser(context.Background(), "admin", "u3"))

	env.store.View(func(st *store.State) {
		assert.False(t, st.Groups.Has("g-mentor"), "community without its mentor is removed")
		assert.Equal(t, 0, st.MentorshipRequests.Len())
		assert.False(t, st.Events.Has("e-talk"))

		post, ok := st.Posts.Get("p-talk")
		require.True(t, ok)
		assert.Empty(t, post.EventID)
		require.Len(t, post.Comments, 1)
		assert.Equal(t, "u2", post.Comments[0].AuthorID)

		assert.False(t, st.Conversations.Has("dm"), "1:1 conversations go with the user")
		study, ok := st.Conversations.Get("study")
		require.True(t, ok)
		assert.Equal(t, []string{"u1", "u2"}, study.Participants)
		assert.Equal(t, 0, study.UnreadFor("u3"))
		assert.Equal(t, 2, study.UnreadFor("u2"))

		assert.False(t, st.Jobs.Has("job1"))
	})
}

func TestHeroSlidesOrdering(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAdminService(env.deps)
	ctx := context.Background()

	_, err := svc.CreateHeroSlide(ctx, "u1", &dto.HeroSlideRequest{Title: "Nope"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	a, err := svc.CreateHeroSlide(ctx, "admin", &dto.HeroSlideRequest{Title: "Welcome Week", Order: 1})
	require.NoError(t, err)
	b, err := svc.CreateHeroSlide(ctx, "admin", &dto.HeroSlideRequest{Title: "Career Fair", Order: 0})
	require.NoError(t, err)

	slides, err := svc.ListHeroSlides(ctx)
	require.NoError(t, err)
	require.Len(t, slides, 2)
	assert.Equal(t, b.ID, slides[0].ID)

	slides, err = svc.ReorderHeroSlides(ctx, "admin", []string{a.ID})
	require.NoError(t, err)
	assert.Equal(t, a.ID, slides[0].ID)
	assert.Equal(t, 0, slides[0].Order)
	assert.Equal(t, 1, slides[1].Order)

	_, err = svc.ReorderHeroSlides(ctx, "admin", []string{"hero-missing"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	require.NoError(t, svc.DeleteHeroSlide(ctx, "admin", b.ID))
	slides, err = svc.ListHeroSlides(ctx)
	require.NoError(t, err)
	assert.Len(t, slides, 1)
}
