// Package store holds every Campus Buzz entity in memory.
//
// All mutations go through Store.Update, which is the single entry point for
// user commands and background simulators alike. Readers use Store.View.
// Entities are stored by value. Handlers must not modify slices or maps
// reachable from a stored entity in place; they build new ones instead.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// ErrCurrentUserMissing is returned when the current user is not in the store
var ErrCurrentUserMissing = errors.New("current user is not present in the store")

// State is the full set of collections.
type State struct {
	// CurrentUserID is the user the demo client is signed in as. Simulated
	// activity is addressed to this user.
	CurrentUserID string

	Users              *Collection[models.User]
	Posts              *Collection[models.Post]
	Events             *Collection[models.Event]
	Listings           *Collection[models.MarketplaceItem]
	Articles           *Collection[models.Article]
	Groups             *Collection[models.Group]
	Conversations      *Collection[models.Conversation]
	Notifications      *Collection[models.Notification]
	FriendRequests     *Collection[models.FriendRequest]
	MentorshipRequests *Collection[models.MentorshipRequest]
	ScheduleItems      *Collection[models.ScheduleItem]
	Jobs               *Collection[models.Job]
	HeroSlides         *Collection[models.HeroSlide]
	Polls              *Collection[models.Poll]
	LibraryResources   *Collection[models.LibraryResource]
	Todos              *Collection[models.TodoItem]
	LostAndFound       *Collection[models.LostAndFoundItem]
}

// NewState returns a State with every collection empty
func NewState() *State {
	return &State{
		Users:              NewCollection[models.User](),
		Posts:              NewCollection[models.Post](),
		Events:             NewCollection[models.Event](),
		Listings:           NewCollection[models.MarketplaceItem](),
		Articles:           NewCollection[models.Article](),
		Groups:             NewCollection[models.Group](),
		Conversations:      NewCollection[models.Conversation](),
		Notifications:      NewCollection[models.Notification](),
		FriendRequests:     NewCollection[models.FriendRequest](),
		MentorshipRequests: NewCollection[models.MentorshipRequest](),
		ScheduleItems:      NewCollection[models.ScheduleItem](),
		Jobs:               NewCollection[models.Job](),
		HeroSlides:         NewCollection[models.HeroSlide](),
		Polls:              NewCollection[models.Poll](),
		LibraryResources:   NewCollection[models.LibraryResource](),
		Todos:              NewCollection[models.TodoItem](),
		LostAndFound:       NewCollection[models.LostAndFoundItem](),
	}
}

// CurrentUser returns the signed-in demo user
func (s *State) CurrentUser() (models.User, bool) {
	return s.Users.Get(s.CurrentUserID)
}

// Counts is a per-collection size summary
type Counts map[string]int

// Counts returns the size of every collection
func (s *State) Counts() Counts {
	return Counts{
		"users":              s.Users.Len(),
		"posts":              s.Posts.Len(),
		"events":             s.Events.Len(),
		"listings":           s.Listings.Len(),
		"articles":           s.Articles.Len(),
		"groups":             s.Groups.Len(),
		"conversations":      s.Conversations.Len(),
		"notifications":      s.Notifications.Len(),
		"friendRequests":     s.FriendRequests.Len(),
		"mentorshipRequests": s.MentorshipRequests.Len(),
		"scheduleItems":      s.ScheduleItems.Len(),
		"jobs":               s.Jobs.Len(),
		"heroSlides":         s.HeroSlides.Len(),
		"polls":              s.Polls.Len(),
		"libraryResources":   s.LibraryResources.Len(),
		"todos":              s.Todos.Len(),
		"lostAndFound":       s.LostAndFound.Len(),
	}
}

// Store guards a State
type Store struct {
	mu       sync.RWMutex
	state    *State
	revision uint64
	logger   zerolog.Logger
}

// New wraps state in a Store. The current user must be present.
func New(state *State, logger zerolog.Logger) (*Store, error) {
	if state == nil {
		state = NewState()
	}
	if _, ok := state.CurrentUser(); !ok {
		return nil, fmt.Errorf("%w: %q", ErrCurrentUserMissing, state.CurrentUserID)
	}
	return &Store{state: state, logger: logger}, nil
}

// View runs fn with read access to the state. fn must not mutate it.
func (s *Store) View(fn func(st *State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Update runs fn with exclusive access to the state. The op name is only used
// for logging. Handlers validate before mutating so that an error leaves the
// state untouched.
func (s *Store) Update(op string, fn func(st *State) error) error {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.state); err != nil {
		s.logger.Debug().Err(err).Str("op", op).Msg("Store update rejected")
		return err
	}
	s.revision++

	s.logger.Debug().
		Str("op", op).
		Uint64("revision", s.revision).
		Dur("took", time.Since(start)).
		Msg("Store updated")
	return nil
}

// Revision returns the number of committed updates
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// CurrentUserID returns the signed-in demo user id
func (s *Store) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentUserID
}

// Counts returns the size of every collection
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Counts()
}
