package seed

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/feed"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/store"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestDefaultFixtureIsConsistent(t *testing.T) {
	st, err := Default(now, "u1")
	require.NoError(t, err)

	me, ok := st.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Alex Morgan", me.Name)

	counts := st.Counts()
	for _, name := range []string{"users", "posts", "events", "listings", "articles", "groups", "conversations", "notifications"} {
		assert.Positive(t, counts[name], name)
	}

	p1, ok := st.Posts.Get("p1")
	require.True(t, ok)
	assert.Equal(t, now.Add(-2*time.Hour), p1.CreatedAt)
	require.Len(t, p1.Comments, 1)
	assert.Equal(t, now.Add(-time.Hour), p1.Comments[0].Timestamp)

	e4, ok := st.Events.Get("e4")
	require.True(t, ok)
	assert.True(t, e4.StartTime.Before(now), "negative offsets produce past events")
	assert.Equal(t, 4*time.Hour, e4.EndTime.Sub(e4.StartTime))

	conv, ok := st.Conversations.Get("conv1")
	require.True(t, ok)
	assert.Equal(t, 1, conv.UnreadFor("u1"))
	assert.Equal(t, 0, conv.UnreadFor("u2"))
	assert.Equal(t, now.Add(-2*time.Hour), conv.UpdatedAt)

	hero, ok := st.HeroSlides.Get("hero2")
	require.True(t, ok)
	assert.Equal(t, "/events/e3", hero.LinkURL)
	assert.Equal(t, 1, hero.Order)

	u7, _ := st.Users.Get("u7")
	assert.Equal(t, models.VisibilityPrivate, u7.Settings.ProfileVisibility)
	assert.Equal(t, models.UserActive, u7.Status)
	assert.NotNil(t, u7.Friends)
}

func TestFixtureKeepsFreeTextIntact(t *testing.T) {
	st, err := Default(now, "u1")
	require.NoError(t, err)

	p1, ok := st.Posts.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Finally finished my lab report! Time for a long nap #finals #biology", p1.Content)

	conv, ok := st.Conversations.Get("conv1")
	require.True(t, ok)
	require.NotEmpty(t, conv.Messages)
	assert.Equal(t, "Are you going to the hackathon?", conv.Messages[0].Text)

	poll, ok := st.Polls.Get("poll1")
	require.True(t, ok)
	assert.Equal(t, "Which late-night study spot should stay open during finals?", poll.Question)

	tagged := 0
	st.Posts.Each(func(p models.Post) {
		if len(feed.Hashtags(p.Content)) > 0 {
			tagged++
		}
	})
	assert.Equal(t, st.Posts.Len(), tagged, "every seed post carries at least one hashtag")
}

func TestMissingCurrentUser(t *testing.T) {
	_, err := Default(now, "nobody")
	assert.ErrorIs(t, err, ErrInvalidFixture)
}

func TestBrokenReferencesReportedTogether(t *testing.T) {
	data := []byte(`
users:
  - {id: u1, name: A, role: Student, friends: [u2]}
  - {id: u2, name: B, role: Student}
posts:
  - {id: p1, author_id: ghost, content: hi, event_id: e9}
groups:
  - {id: g1, name: G, members: [u1], admins: [u2]}
`)
	_, err := Load(data, now, "u1")
	require.ErrorIs(t, err, ErrInvalidFixture)
	assert.ErrorContains(t, err, "not symmetric")
	assert.ErrorContains(t, err, `unknown user "ghost"`)
	assert.ErrorContains(t, err, `unknown event "e9"`)
	assert.ErrorContains(t, err, "is not a member")
}

func TestNewStoreFromEmbeddedFixture(t *testing.T) {
	s, err := NewStore("", now, "u1", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "u1", s.CurrentUserID())

	var posts int
	s.View(func(st *store.State) { posts = st.Posts.Len() })
	assert.Equal(t, 6, posts)

	_, err = NewStore("does/not/exist.yaml", now, "u1", zerolog.Nop())
	assert.Error(t, err)
}
