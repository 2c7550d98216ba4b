package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// EventService defines the interface for campus event operations
type EventService interface {
	CreateEvent(ctx context.Context, actorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, actorID, eventID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, actorID, eventID string) error
	RSVP(ctx context.Context, actorID, eventID string) (*dto.RSVPResponse, error)
	GetEvent(ctx context.Context, viewerID, eventID string) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, viewerID string, filter *dto.EventFilterRequest) ([]dto.EventResponse, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(deps *Deps) EventService {
	return &eventServiceImpl{deps: deps, logger: deps.component("event_service")}
}

// CreateEvent creates an event organized by the actor. The organizer attends
// by default.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, actorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("title", req.Title).Msg("Creating event")

	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, apperrors.NewBadRequestError("event must end after it starts")
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpSaveEvent)

	var resp dto.EventResponse
	err := s.deps.Store.Update("create_event", func(st *store.State) error {
		organizer, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		ev := models.Event{
			ID:          s.deps.IDs.ID("e"),
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Location:    req.Location,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
			OrganizerID: organizer.ID,
			Attendees:   []string{organizer.ID},
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			CreatedAt:   s.deps.now(),
		}
		st.Events.Prepend(ev)
		resp = dto.NewEventResponse(ev, lookupIn(st), actorID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("eventID", resp.ID).Msg("Event created")
	return &resp, nil
}

// UpdateEvent edits an event. Attendees are told about the change.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, actorID, eventID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("eventID", eventID).Msg("Updating event")

	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpSaveEvent)

	out := s.deps.newOutbox()
	var resp dto.EventResponse
	err := s.deps.Store.Update("update_event", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		ev, ok := st.Events.Get(eventID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrEventNotFound)
		}
		if err := auth.ValidateOwnership(actor, ev.OrganizerID); err != nil {
			return err
		}

		if req.Title != nil {
			ev.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			ev.Description = *req.Description
		}
		if req.Location != nil {
			ev.Location = *req.Location
		}
		if req.Category != nil {
			ev.Category = *req.Category
		}
		if req.ImageURL != nil {
			ev.ImageURL = *req.ImageURL
		}
		if req.StartTime != nil {
			ev.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			ev.EndTime = *req.EndTime
		}
		if !ev.EndTime.After(ev.StartTime) {
			return apperrors.NewBadRequestError("event must end after it starts")
		}
		st.Events.Replace(ev)

		for _, attendee := range ev.Attendees {
			if attendee != actor.ID {
				out.push(st, attendee, models.NotificationEvent,
					fmt.Sprintf("%q was updated", ev.Title), ev.ID)
			}
		}
		resp = dto.NewEventResponse(ev, lookupIn(st), actorID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.flush(ctx)
	return &resp, nil
}

// DeleteEvent removes an event. Posts linked to it keep their text but lose
// the link.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, actorID, eventID string) error {
	s.logger.Debug().Str("actorID", actorID).Str("eventID", eventID).Msg("Deleting event")

	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}

	s.deps.delay(ctx, latency.OpSaveEvent)

	return s.deps.Store.Update("delete_event", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		ev, ok := st.Events.Get(eventID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrEventNotFound)
		}
		if err := auth.ValidateOwnership(actor, ev.OrganizerID); err != nil {
			return err
		}
		st.Events.Remove(eventID)
		st.Posts.Map(func(p models.Post) (models.Post, bool) {
			if p.EventID != eventID {
				return p, false
			}
			p.EventID = ""
			return p, true
		})
		return nil
	})
}

// RSVP toggles the actor's attendance
func (s *eventServiceImpl) RSVP(ctx context.Context, actorID, eventID string) (*dto.RSVPResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("eventID", eventID).Msg("Toggling RSVP")

	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpRSVP)

	var resp dto.RSVPResponse
	err := s.deps.Store.Update("rsvp_event", func(st *store.State) error {
		ev, ok := st.Events.Get(eventID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrEventNotFound)
		}
		var attending bool
		ev.Attendees, attending = models.ToggleID(ev.Attendees, actorID)
		st.Events.Replace(ev)

		resp = dto.RSVPResponse{EventID: ev.ID, Attending: attending, AttendeeCount: len(ev.Attendees)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEvent returns one event
func (s *eventServiceImpl) GetEvent(ctx context.Context, viewerID, eventID string) (*dto.EventResponse, error) {
	var (
		resp dto.EventResponse
		ok   bool
	)
	s.deps.Store.View(func(st *store.State) {
		var ev models.Event
		if ev, ok = st.Events.Get(eventID); ok {
			resp = dto.NewEventResponse(ev, lookupIn(st), viewerID)
		}
	})
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrEventNotFound)
	}
	return &resp, nil
}

// ListEvents returns events ordered by start time. Upcoming restricts the
// list to events that have not ended yet.
func (s *eventServiceImpl) ListEvents(ctx context.Context, viewerID string, filter *dto.EventFilterRequest) ([]dto.EventResponse, error) {
	if filter == nil {
		filter = &dto.EventFilterRequest{}
	}
	now := s.deps.now()

	var out []dto.EventResponse
	s.deps.Store.View(func(st *store.State) {
		events := st.Events.Filter(func(e models.Event) bool {
			if filter.Category != "" && !strings.EqualFold(e.Category, filter.Category) {
				return false
			}
			return !filter.Upcoming || e.EndTime.After(now)
		})
		slices.SortStableFunc(events, func(a, b models.Event) int {
			return a.StartTime.Compare(b.StartTime)
		})
		lookup := lookupIn(st)
		out = make([]dto.EventResponse, 0, len(events))
		for _, e := range events {
			out = append(out, dto.NewEventResponse(e, lookup, viewerID))
		}
	})
	return out, nil
}
