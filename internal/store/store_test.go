package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st := NewState()
	st.CurrentUserID = "u1"
	st.Users.Append(models.User{ID: "u1", Name: "Alex"})
	s, err := New(st, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestNewRequiresCurrentUser(t *testing.T) {
	st := NewState()
	st.CurrentUserID = "ghost"

	_, err := New(st, zerolog.Nop())
	assert.ErrorIs(t, err, ErrCurrentUserMissing)
}

func TestCollectionOrdering(t *testing.T) {
	c := NewCollection[models.Post]()
	c.Append(models.Post{ID: "a"})
	c.Append(models.Post{ID: "b"})
	c.Prepend(models.Post{ID: "c"})

	ids := func() []string {
		var out []string
		for _, p := range c.All() {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids())

	assert.True(t, c.Replace(models.Post{ID: "a", Content: "edited"}))
	assert.False(t, c.Replace(models.Post{ID: "zzz"}))
	got, _ := c.Get("a")
	assert.Equal(t, "edited", got.Content)
	assert.Equal(t, []string{"c", "a", "b"}, ids())

	assert.True(t, c.Remove("c"))
	assert.False(t, c.Remove("c"))
	assert.Equal(t, []string{"a", "b"}, ids())

	assert.Equal(t, 1, c.RemoveWhere(func(p models.Post) bool { return p.ID == "b" }))
	assert.Equal(t, []string{"a"}, ids())
}

func TestUpdateErrorDoesNotBumpRevision(t *testing.T) {
	s := newTestStore(t)

	err := s.Update("noop", func(*State) error { return errors.New("rejected") })
	require.Error(t, err)
	assert.Equal(t, uint64(0), s.Revision())

	require.NoError(t, s.Update("add", func(st *State) error {
		st.Posts.Prepend(models.Post{ID: "p1"})
		return nil
	}))
	assert.Equal(t, uint64(1), s.Revision())
	assert.Equal(t, 1, s.Counts()["posts"])
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update("like", func(st *State) error {
				u, _ := st.Users.Get("u1")
				u.Friends = models.AddID(u.Friends, "x")
				st.Users.Replace(u)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), s.Revision())
	s.View(func(st *State) {
		u, _ := st.Users.Get("u1")
		assert.Equal(t, []string{"x"}, u.Friends)
	})
}
