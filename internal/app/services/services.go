// Package services holds the command handlers of Campus Buzz.
//
// Every command follows the same shape: check guard clauses, wait out the
// simulated latency, apply one store.Update (building any notification inside
// it), then deliver the notifications that update produced.
//
// Services defined in this package:
//   - PostService, FeedService: newsfeed posts, comments, reactions, filters
//   - FriendService: friend requests and friend lists
//   - EventService: events and RSVPs
//   - MessagingService: conversations, messages, unread counts
//   - MarketplaceService: listings
//   - ArticleService: blog articles
//   - GroupService, MentorshipService: groups and mentorship communities
//   - ProfileService, NotificationService
//   - CampusService, PollService, JobService: campus utilities
//   - AdminService: dashboard, user management, hero slides
package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/idgen"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// Notifier delivers committed notifications to live channels (toast, sockets)
type Notifier interface {
	Deliver(ctx context.Context, n models.Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, n models.Notification)

// Deliver implements Notifier
func (f NotifierFunc) Deliver(ctx context.Context, n models.Notification) { f(ctx, n) }

// Fanout delivers to every notifier in order
type Fanout []Notifier

// Deliver implements Notifier
func (f Fanout) Deliver(ctx context.Context, n models.Notification) {
	for _, nt := range f {
		if nt != nil {
			nt.Deliver(ctx, n)
		}
	}
}

// Deps bundles what every service needs
type Deps struct {
	Store    *store.Store
	Delayer  latency.Delayer
	Clock    func() time.Time
	IDs      *idgen.Generator
	Notifier Notifier
	Authz    *auth.AuthorizationService
	Logger   zerolog.Logger
	// Location is used to interpret feed date filters
	Location *time.Location
}

func (d *Deps) now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

func (d *Deps) delay(ctx context.Context, op latency.Op) {
	if d.Delayer == nil {
		return
	}
	d.Delayer.Delay(ctx, op)
}

func (d *Deps) location() *time.Location {
	if d.Location == nil {
		return time.Local
	}
	return d.Location
}

func (d *Deps) component(name string) zerolog.Logger {
	return d.Logger.With().Str("component", name).Logger()
}

// actor resolves the acting user before the delay so that obviously invalid
// commands fail fast. The check is repeated inside the update.
func (d *Deps) actor(userID string) (models.User, error) {
	if d.Authz != nil {
		return d.Authz.Actor(userID)
	}
	var (
		u   models.User
		err error
	)
	d.Store.View(func(st *store.State) { u, err = auth.ActorIn(st, userID) })
	return u, err
}

// outbox collects notifications created inside an update
type outbox struct {
	deps  *Deps
	items []models.Notification
}

func (d *Deps) newOutbox() *outbox {
	return &outbox{deps: d}
}

// push creates a notification in st. Notifications to the actor themself
// are dropped by callers, not here.
func (o *outbox) push(st *store.State, recipientID string, typ models.NotificationType, text, linkID string) {
	if !st.Users.Has(recipientID) {
		return
	}
	n := models.Notification{
		ID:          o.deps.IDs.ID("n"),
		RecipientID: recipientID,
		Text:        text,
		Type:        typ,
		LinkID:      linkID,
		Timestamp:   o.deps.now(),
	}
	st.Notifications.Prepend(n)
	o.items = append(o.items, n)
}

// flush hands committed notifications to the live channels
func (o *outbox) flush(ctx context.Context) {
	if o.deps.Notifier == nil {
		o.items = nil
		return
	}
	for _, n := range o.items {
		o.deps.Notifier.Deliver(ctx, n)
	}
	o.items = nil
}

func lookupIn(st *store.State) dto.UserLookup {
	return st.Users.Get
}

func nameOf(st *store.State, userID string) string {
	if u, ok := st.Users.Get(userID); ok {
		return u.Name
	}
	return "Someone"
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
