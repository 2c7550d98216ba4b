// Package seed builds the initial in-memory state from a YAML fixture.
//
// The embedded fixture is what a fresh server starts with. Every restart
// resets the store to it.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/store"
)

//go:embed fixtures/campus.yaml
var campusFixture []byte

// ErrInvalidFixture wraps every reference or shape problem found in a fixture
var ErrInvalidFixture = errors.New("invalid seed fixture")

// Default loads the embedded fixture
func Default(now time.Time, currentUserID string) (*store.State, error) {
	return Load(campusFixture, now, currentUserID)
}

// LoadFile loads a fixture from disk
func LoadFile(path string, now time.Time, currentUserID string) (*store.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed fixture: %w", err)
	}
	return Load(data, now, currentUserID)
}

// Load parses a fixture and resolves its relative timestamps against now.
// The fixture must contain currentUserID and every id it references.
func Load(data []byte, now time.Time, currentUserID string) (*store.State, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed fixture: %w", err)
	}
	st := f.build(now)
	st.CurrentUserID = currentUserID
	if err := check(st); err != nil {
		return nil, err
	}
	return st, nil
}

// NewStore loads the fixture configured by path (embedded when empty) and
// wraps it in a Store.
func NewStore(path string, now time.Time, currentUserID string, lgr zerolog.Logger) (*store.Store, error) {
	var (
		st  *store.State
		err error
	)
	if path == "" {
		st, err = Default(now, currentUserID)
	} else {
		st, err = LoadFile(path, now, currentUserID)
	}
	if err != nil {
		return nil, err
	}
	s, err := store.New(st, lgr)
	if err != nil {
		return nil, err
	}
	lgr.Info().Str("currentUserID", currentUserID).Interface("counts", st.Counts()).Msg("Seed data loaded")
	return s, nil
}

// check validates the cross-references of a freshly built state. All
// problems are reported together.
func check(st *store.State) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidFixture}, args...)...))
	}
	user := func(kind, id, ref string) {
		if !st.Users.Has(ref) {
			fail("%s %s references unknown user %q", kind, id, ref)
		}
	}

	if _, ok := st.CurrentUser(); !ok {
		fail("current user %q is not in the fixture", st.CurrentUserID)
	}

	st.Users.Each(func(u models.User) {
		for _, f := range u.Friends {
			friend, ok := st.Users.Get(f)
			if !ok {
				fail("user %s has unknown friend %q", u.ID, f)
				continue
			}
			if !models.ContainsID(friend.Friends, u.ID) {
				fail("friendship %s-%s is not symmetric", u.ID, f)
			}
		}
		if u.IsMentor && u.MentorCommunityID != "" && !st.Groups.Has(u.MentorCommunityID) {
			fail("mentor %s references unknown group %q", u.ID, u.MentorCommunityID)
		}
	})
	st.Posts.Each(func(p models.Post) {
		user("post", p.ID, p.AuthorID)
		if p.EventID != "" && !st.Events.Has(p.EventID) {
			fail("post %s references unknown event %q", p.ID, p.EventID)
		}
		for _, c := range p.Comments {
			user("comment", c.ID, c.AuthorID)
		}
	})
	st.Events.Each(func(e models.Event) {
		user("event", e.ID, e.OrganizerID)
		for _, a := range e.Attendees {
			user("event", e.ID, a)
		}
		if e.EndTime.Before(e.StartTime) {
			fail("event %s ends before it starts", e.ID)
		}
	})
	st.Listings.Each(func(m models.MarketplaceItem) {
		user("listing", m.ID, m.SellerID)
		if !m.Status.Valid() {
			fail("listing %s has invalid status %q", m.ID, m.Status)
		}
	})
	st.Articles.Each(func(a models.Article) {
		user("article", a.ID, a.AuthorID)
		if !a.Status.Valid() {
			fail("article %s has invalid status %q", a.ID, a.Status)
		}
	})
	st.Groups.Each(func(g models.Group) {
		for _, m := range g.Members {
			user("group", g.ID, m)
		}
		for _, a := range g.Admins {
			if !models.ContainsID(g.Members, a) {
				fail("group %s admin %q is not a member", g.ID, a)
			}
		}
	})
	st.Conversations.Each(func(c models.Conversation) {
		for _, p := range c.Participants {
			user("conversation", c.ID, p)
		}
		for _, m := range c.Messages {
			if !c.HasParticipant(m.SenderID) {
				fail("message %s sender %q is not a participant", m.ID, m.SenderID)
			}
		}
	})
	st.Notifications.Each(func(n models.Notification) {
		user("notification", n.ID, n.RecipientID)
	})
	st.FriendRequests.Each(func(r models.FriendRequest) {
		user("friend request", r.ID, r.FromUserID)
		user("friend request", r.ID, r.ToUserID)
	})
	st.MentorshipRequests.Each(func(r models.MentorshipRequest) {
		user("mentorship request", r.ID, r.FromUserID)
		user("mentorship request", r.ID, r.ToMentorID)
		if !st.Groups.Has(r.CommunityID) {
			fail("mentorship request %s references unknown group %q", r.ID, r.CommunityID)
		}
	})
	st.ScheduleItems.Each(func(s models.ScheduleItem) {
		user("schedule item", s.ID, s.OwnerID)
		if !s.Day.Valid() {
			fail("schedule item %s has invalid day %q", s.ID, s.Day)
		}
	})
	st.Todos.Each(func(t models.TodoItem) { user("todo", t.ID, t.OwnerID) })
	st.Jobs.Each(func(j models.Job) { user("job", j.ID, j.PostedByID) })
	st.Polls.Each(func(p models.Poll) {
		user("poll", p.ID, p.AuthorID)
		for _, o := range p.Options {
			for _, v := range o.Voters {
				user("poll", p.ID, v)
			}
		}
	})
	st.LostAndFound.Each(func(l models.LostAndFoundItem) { user("lost and found item", l.ID, l.ReporterID) })

	return errors.Join(errs...)
}
