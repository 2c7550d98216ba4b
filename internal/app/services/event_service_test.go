package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/store"
)

func TestRSVPToggles(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEventService(env.deps)
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, "u3", &dto.CreateEventRequest{
		Title:     "Career Fair",
		StartTime: testNow.Add(24 * time.Hour),
		EndTime:   testNow.Add(26 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ev.AttendeeCount, "organizer attends")

	r, err := svc.RSVP(ctx, "u1", ev.ID)
	require.NoError(t, err)
	assert.True(t, r.Attending)
	assert.Equal(t, 2, r.AttendeeCount)

	r, err = svc.RSVP(ctx, "u1", ev.ID)
	require.NoError(t, err)
	assert.False(t, r.Attending)
	assert.Equal(t, 1, r.AttendeeCount)

	_, err = svc.RSVP(ctx, "u1", "e-missing")
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestUpdateEventNotifiesAttendees(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEventService(env.deps)
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, "u3", &dto.CreateEventRequest{
		Title:     "Hackathon",
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(5 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.RSVP(ctx, "u1", ev.ID)
	require.NoError(t, err)

	loc := "Engineering Hall"
	_, err = svc.UpdateEvent(ctx, "u2", ev.ID, &dto.UpdateEventRequest{Location: &loc})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.UpdateEvent(ctx, "u3", ev.ID, &dto.UpdateEventRequest{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, loc, updated.Location)

	got := env.notificationsFor("u1")
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationEvent, got[0].Type)
	assert.Empty(t, env.notificationsFor("u3"))

	early := testNow
	_, err = svc.UpdateEvent(ctx, "u3", ev.ID, &dto.UpdateEventRequest{EndTime: &early})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDeleteEventUnlinksPosts(t *testing.T) {
	env := newTestEnv(t, func(st *store.State) {
		st.Events.Append(models.Event{ID: "e1", Title: "Open Mic", OrganizerID: "u2", Attendees: []string{"u2"},
			StartTime: testNow, EndTime: testNow.Add(time.Hour)})
		st.Posts.Append(models.Post{ID: "p1", AuthorID: "u2", Content: "see you there", EventID: "e1"})
	})
	svc := NewEventService(env.deps)

	require.NoError(t, svc.DeleteEvent(context.Background(), "admin", "e1"))

	env.store.View(func(st *store.State) {
		p, ok := st.Posts.Get("p1")
		require.True(t, ok)
		assert.Empty(t, p.EventID)
		assert.False(t, st.Events.Has("e1"))
	})
}

func TestListEventsUpcomingSortedByStart(t *testing.T) {
	env := newTestEnv(t, func(st *store.State) {
		st.Events.Append(models.Event{ID: "past", Category: "Social", StartTime: testNow.Add(-48 * time.Hour), EndTime: testNow.Add(-47 * time.Hour)})
		st.Events.Append(models.Event{ID: "later", Category: "Career", StartTime: testNow.Add(72 * time.Hour), EndTime: testNow.Add(73 * time.Hour)})
		st.Events.Append(models.Event{ID: "soon", Category: "Social", StartTime: testNow.Add(time.Hour), EndTime: testNow.Add(2 * time.Hour)})
	})
	svc := NewEventService(env.deps)
	ctx := context.Background()

	got, err := svc.ListEvents(ctx, "u1", &dto.EventFilterRequest{Upcoming: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "soon", got[0].ID)
	assert.Equal(t, "later", got[1].ID)

	got, err = svc.ListEvents(ctx, "u1", &dto.EventFilterRequest{Category: "social"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "past", got[0].ID)
}
