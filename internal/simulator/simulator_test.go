package simulator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/services"
	"github.com/yigit/campusbuzz/internal/pkg/idgen"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

func newTestRunner(t *testing.T, setup func(st *store.State)) (*Runner, *store.Store) {
	t.Helper()

	st := store.NewState()
	st.CurrentUserID = "u1"
	st.Users.Append(models.User{ID: "u1", Name: "Alex", Status: models.UserActive, Friends: []string{}})
	st.Users.Append(models.User{ID: "u2", Name: "Priya", Status: models.UserActive, Friends: []string{}})
	if setup != nil {
		setup(st)
	}
	s, err := store.New(st, zerolog.Nop())
	require.NoError(t, err)

	n := 0
	deps := &services.Deps{
		Store:   s,
		Delayer: latency.None{},
		Clock:   func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) },
		IDs: idgen.NewSequence(func() string {
			n++
			return fmt.Sprint(n)
		}),
		Logger: zerolog.Nop(),
	}
	svc := Services{
		Posts:       services.NewPostService(deps),
		Marketplace: services.NewMarketplaceService(deps),
		Friends:     services.NewFriendService(deps),
		Messaging:   services.NewMessagingService(deps),
	}
	return NewRunner(s, svc, Config{Seed: 42}, zerolog.Nop()), s
}

func notificationsOf(s *store.Store, typ models.NotificationType) []models.Notification {
	var out []models.Notification
	s.View(func(st *store.State) {
		out = st.Notifications.Filter(func(n models.Notification) bool {
			return n.RecipientID == st.CurrentUserID && n.Type == typ
		})
	})
	return out
}

func TestPostTickCreatesPostAndNotification(t *testing.T) {
	r, s := newTestRunner(t, nil)

	require.NoError(t, r.Tick(context.Background(), TaskPosts))

	s.View(func(st *store.State) {
		require.Equal(t, 1, st.Posts.Len())
		p := st.Posts.All()[0]
		assert.Equal(t, "u2", p.AuthorID)
		assert.NotEmpty(t, p.Content)
	})
	assert.Len(t, notificationsOf(s, models.NotificationPost), 1)
}

func TestMarketplaceTickCreatesAvailableListing(t *testing.T) {
	r, s := newTestRunner(t, nil)

	require.NoError(t, r.Tick(context.Background(), TaskMarketplace))

	s.View(func(st *store.State) {
		require.Equal(t, 1, st.Listings.Len())
		item := st.Listings.All()[0]
		assert.Equal(t, models.ListingAvailable, item.Status)
		assert.GreaterOrEqual(t, item.Price, 0.0)
	})
	assert.Len(t, notificationsOf(s, models.NotificationMarketplace), 1)
}

func TestFriendRequestTickSkipsFriendsAndPending(t *testing.T) {
	r, s := newTestRunner(t, nil)
	ctx := context.Background()

	require.NoError(t, r.Tick(ctx, TaskFriendRequests))
	assert.Len(t, notificationsOf(s, models.NotificationFriendRequest), 1)

	// u2 now has a pending request with u1, so nobody is left
	assert.ErrorIs(t, r.Tick(ctx, TaskFriendRequests), ErrNoCandidate)
}

func TestMessageTickRepliesInConversation(t *testing.T) {
	r, s := newTestRunner(t, func(st *store.State) {
		st.Conversations.Append(models.Conversation{
			ID:           "conv-1",
			Participants: []string{"u1", "u2"},
			Messages:     []models.Message{},
			Unread:       map[string]int{"u1": 0, "u2": 0},
		})
	})

	require.NoError(t, r.Tick(context.Background(), TaskMessages))

	s.View(func(st *store.State) {
		c, ok := st.Conversations.Get("conv-1")
		require.True(t, ok)
		require.Len(t, c.Messages, 1)
		assert.Equal(t, "u2", c.Messages[0].SenderID)
		assert.Equal(t, 1, c.UnreadFor("u1"))
		assert.Equal(t, 0, c.UnreadFor("u2"))
	})
	assert.Len(t, notificationsOf(s, models.NotificationMessage), 1)
}

func TestTickWithoutCandidates(t *testing.T) {
	r, _ := newTestRunner(t, func(st *store.State) {
		u2, _ := st.Users.Get("u2")
		u2.Status = models.UserSuspended
		st.Users.Replace(u2)
	})
	ctx := context.Background()

	for _, task := range Tasks {
		assert.ErrorIs(t, r.Tick(ctx, task), ErrNoCandidate, task)
	}
	assert.ErrorIs(t, r.Tick(ctx, Task("weather")), ErrUnknownTask)
}

func TestStartStop(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	r.intervals = map[Task]time.Duration{TaskPosts: time.Hour}

	r.Start(context.Background())
	r.Start(context.Background())
	r.Stop()
	r.Stop()
}
