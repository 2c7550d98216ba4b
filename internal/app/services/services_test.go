package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/pkg/idgen"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// recorder captures delivered notifications
type recorder struct {
	mu   sync.Mutex
	seen []models.Notification
}

func (r *recorder) Deliver(_ context.Context, n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func (r *recorder) For(userID string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.seen {
		if n.RecipientID == userID {
			out = append(out, n)
		}
	}
	return out
}

type testEnv struct {
	deps  *Deps
	store *store.Store
	sent  *recorder
}

// newTestEnv builds a store with four users: u1 (current, student),
// u2 (student), u3 (staff) and admin. Extra setup runs before the store is
// wrapped.
func newTestEnv(t *testing.T, setup ...func(st *store.State)) *testEnv {
	t.Helper()

	st := store.NewState()
	st.CurrentUserID = "u1"
	for _, u := range []models.User{
		{ID: "u1", Name: "Alex Morgan", Role: models.RoleStudent, Status: models.UserActive, Friends: []string{}},
		{ID: "u2", Name: "Priya Shah", Role: models.RoleStudent, Status: models.UserActive, Friends: []string{}},
		{ID: "u3", Name: "Dr. Lee", Role: models.RoleStaff, Status: models.UserActive, Friends: []string{}},
		{ID: "admin", Name: "Site Admin", Role: models.RoleAdmin, Status: models.UserActive, Friends: []string{}},
	} {
		st.Users.Append(u)
	}
	for _, fn := range setup {
		fn(st)
	}

	s, err := store.New(st, zerolog.Nop())
	require.NoError(t, err)

	seq := 0
	rec := &recorder{}
	deps := &Deps{
		Store:   s,
		Delayer: latency.None{},
		Clock:   func() time.Time { return testNow },
		IDs: idgen.NewSequence(func() string {
			seq++
			return fmt.Sprint(seq)
		}),
		Notifier: rec,
		Authz:    auth.NewAuthorizationService(s),
		Logger:   zerolog.Nop(),
		Location: time.UTC,
	}
	return &testEnv{deps: deps, store: s, sent: rec}
}

func (e *testEnv) user(t *testing.T, id string) models.User {
	t.Helper()
	var (
		u  models.User
		ok bool
	)
	e.store.View(func(st *store.State) { u, ok = st.Users.Get(id) })
	require.True(t, ok, "user %s", id)
	return u
}

func (e *testEnv) notificationsFor(userID string) []models.Notification {
	var out []models.Notification
	e.store.View(func(st *store.State) {
		out = st.Notifications.Filter(func(n models.Notification) bool { return n.RecipientID == userID })
	})
	return out
}

func withSuspended(id string) func(st *store.State) {
	return func(st *store.State) {
		u, _ := st.Users.Get(id)
		u.Status = models.UserSuspended
		st.Users.Replace(u)
	}
}
