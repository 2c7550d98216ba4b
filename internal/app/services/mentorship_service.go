package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// MentorshipService defines the interface for mentorship operations
type MentorshipService interface {
	CreateCommunity(ctx context.Context, actorID string, req *dto.CreateMentorshipCommunityRequest) (*dto.GroupResponse, error)
	SendRequest(ctx context.Context, actorID string, req *dto.SendMentorshipRequestRequest) (*dto.MentorshipRequestResponse, error)
	AcceptRequest(ctx context.Context, actorID, requestID string) (*dto.MentorshipRequestResponse, error)
	DeclineRequest(ctx context.Context, actorID, requestID string) (*dto.MentorshipRequestResponse, error)
	RemoveMentee(ctx context.Context, actorID, menteeID string) error
	ListRequests(ctx context.Context, actorID string) (*dto.MentorshipRequestsResponse, error)
	ListMentors(ctx context.Context) ([]dto.MentorResponse, error)
}

// mentorshipServiceImpl implements MentorshipService
type mentorshipServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(deps *Deps) MentorshipService {
	return &mentorshipServiceImpl{deps: deps, logger: deps.component("mentorship_service")}
}

// CreateCommunity creates the actor's mentorship community. The actor
// becomes a mentor, and the community's admin and first member.
func (s *mentorshipServiceImpl) CreateCommunity(ctx context.Context, actorID string, req *dto.CreateMentorshipCommunityRequest) (*dto.GroupResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("name", req.Name).Msg("Creating mentorship community")

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpMentorship)

	var resp dto.GroupResponse
	err := s.deps.Store.Update("create_mentorship_community", func(st *store.State) error {
		mentor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		if mentor.MentorCommunityID != "" && st.Groups.Has(mentor.MentorCommunityID) {
			return apperrors.NewConflictError("you already run a mentorship community")
		}
		g := models.Group{
			ID:           s.deps.IDs.ID("g"),
			Name:         strings.TrimSpace(req.Name),
			Description:  req.Description,
			Category:     "Mentorship",
			Members:      []string{mentor.ID},
			Admins:       []string{mentor.ID},
			IsMentorship: true,
			CreatedAt:    s.deps.now(),
		}
		st.Groups.Prepend(g)

		mentor.IsMentor = true
		mentor.MentorCommunityID = g.ID
		st.Users.Replace(mentor)

		resp = dto.NewGroupResponse(g, lookupIn(st), actorID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("mentorID", actorID).Str("groupID", resp.ID).Msg("Mentorship community created")
	return &resp, nil
}

// SendRequest asks a mentor to join their community. The target must be a
// mentor and own the community. One pending request per pair.
func (s *mentorshipServiceImpl) SendRequest(ctx context.Context, actorID string, req *dto.SendMentorshipRequestRequest) (*dto.MentorshipRequestResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("mentorID", req.MentorID).Msg("Sending mentorship request")

	if actorID == req.MentorID {
		return nil, apperrors.NewBadRequestError("cannot request mentorship from yourself")
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpMentorship)

	out := s.deps.newOutbox()
	var resp dto.MentorshipRequestResponse
	err := s.deps.Store.Update("send_mentorship_request", func(st *store.State) error {
		from, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		mentor, ok := st.Users.Get(req.MentorID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrUserNotFound)
		}
		if !mentor.IsMentor {
			return apperrors.NewValidationError(apperrors.ErrNotAMentor)
		}
		community, ok := st.Groups.Get(req.CommunityID)
		if !ok || !community.IsMentorship || !models.ContainsID(community.Admins, mentor.ID) {
			return apperrors.NotFound(apperrors.ErrGroupNotFound)
		}
		if models.ContainsID(community.Members, actorID) {
			return apperrors.NewConflictError("you are already a member of this community")
		}
		if _, dup := st.MentorshipRequests.Find(func(r models.MentorshipRequest) bool {
			return r.FromUserID == actorID && r.ToMentorID == mentor.ID && r.Status == models.MentorshipPending
		}); dup {
			return apperrors.Conflict(apperrors.ErrMentorshipPending)
		}

		mr := models.MentorshipRequest{
			ID:          s.deps.IDs.ID("mr"),
			FromUserID:  from.ID,
			ToMentorID:  mentor.ID,
			CommunityID: community.ID,
			Message:     strings.TrimSpace(req.Message),
			Status:      models.MentorshipPending,
			CreatedAt:   s.deps.now(),
		}
		st.MentorshipRequests.Prepend(mr)
		out.push(st, mentor.ID, models.NotificationMentorship,
			fmt.Sprintf("%s would like you to mentor them", from.Name), mr.ID)

		resp = dto.NewMentorshipRequestResponse(mr, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.flush(ctx)
	return &resp, nil
}

// AcceptRequest marks the request accepted and adds the requester to the
// mentor's community. The request stays in history.
func (s *mentorshipServiceImpl) AcceptRequest(ctx context.Context, actorID, requestID string) (*dto.MentorshipRequestResponse, error) {
	return s.answer(ctx, actorID, requestID, models.MentorshipAccepted)
}

// DeclineRequest marks the request declined. The request stays in history.
func (s *mentorshipServiceImpl) DeclineRequest(ctx context.Context, actorID, requestID string) (*dto.MentorshipRequestResponse, error) {
	return s.answer(ctx, actorID, requestID, models.MentorshipDeclined)
}

func (s *mentorshipServiceImpl) answer(ctx context.Context, actorID, requestID string, status models.MentorshipStatus) (*dto.MentorshipRequestResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("requestID", requestID).Str("status", string(status)).Msg("Answering mentorship request")

	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpMentorship)

	out := s.deps.newOutbox()
	var resp dto.MentorshipRequestResponse
	err := s.deps.Store.Update("answer_mentorship_request", func(st *store.State) error {
		mentor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		mr, ok := st.MentorshipRequests.Get(requestID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrMentorshipRequestNotFound)
		}
		if mr.ToMentorID != actorID {
			return apperrors.ErrPermissionDenied
		}
		if mr.Status != models.MentorshipPending {
			return apperrors.Conflict(apperrors.ErrRequestAlreadyHandled)
		}

		if status == models.MentorshipAccepted {
			community, ok := st.Groups.Get(mr.CommunityID)
			if !ok {
				return apperrors.NotFound(apperrors.ErrGroupNotFound)
			}
			community.Members = models.AddID(community.Members, mr.FromUserID)
			st.Groups.Replace(community)
		}

		now := s.deps.now()
		mr.Status = status
		mr.RespondedAt = &now
		st.MentorshipRequests.Replace(mr)

		verb := "declined"
		if status == models.MentorshipAccepted {
			verb = "accepted"
		}
		out.push(st, mr.FromUserID, models.NotificationMentorship,
			fmt.Sprintf("%s %s your mentorship request", mentor.Name, verb), mr.CommunityID)

		resp = dto.NewMentorshipRequestResponse(mr, lookupIn(st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.flush(ctx)
	return &resp, nil
}

// RemoveMentee removes a member from the actor's mentorship community
func (s *mentorshipServiceImpl) RemoveMentee(ctx context.Context, actorID, menteeID string) error {
	s.logger.Debug().Str("actorID", actorID).Str("menteeID", menteeID).Msg("Removing mentee")

	if actorID == menteeID {
		return apperrors.NewBadRequestError("a mentor cannot remove themselves")
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}

	s.deps.delay(ctx, latency.OpMentorship)

	return s.deps.Store.Update("remove_mentee", func(st *store.State) error {
		mentor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		if !mentor.IsMentor || mentor.MentorCommunityID == "" {
			return apperrors.NewValidationError(apperrors.ErrNotAMentor)
		}
		community, ok := st.Groups.Get(mentor.MentorCommunityID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrGroupNotFound)
		}
		if !models.ContainsID(community.Members, menteeID) {
			return apperrors.NotFound(apperrors.ErrUserNotFound)
		}
		community.Members = models.RemoveID(community.Members, menteeID)
		community.Admins = models.RemoveID(community.Admins, menteeID)
		st.Groups.Replace(community)
		return nil
	})
}

// ListRequests returns mentorship requests addressed to and sent by the actor
func (s *mentorshipServiceImpl) ListRequests(ctx context.Context, actorID string) (*dto.MentorshipRequestsResponse, error) {
	resp := &dto.MentorshipRequestsResponse{
		Incoming: []dto.MentorshipRequestResponse{},
		Outgoing: []dto.MentorshipRequestResponse{},
	}
	s.deps.Store.View(func(st *store.State) {
		lookup := lookupIn(st)
		st.MentorshipRequests.Each(func(r models.MentorshipRequest) {
			switch actorID {
			case r.ToMentorID:
				resp.Incoming = append(resp.Incoming, dto.NewMentorshipRequestResponse(r, lookup))
			case r.FromUserID:
				resp.Outgoing = append(resp.Outgoing, dto.NewMentorshipRequestResponse(r, lookup))
			}
		})
	})
	return resp, nil
}

// ListMentors returns every mentor with their community
func (s *mentorshipServiceImpl) ListMentors(ctx context.Context) ([]dto.MentorResponse, error) {
	var out []dto.MentorResponse
	s.deps.Store.View(func(st *store.State) {
		out = []dto.MentorResponse{}
		st.Users.Each(func(u models.User) {
			if !u.IsMentor || !u.IsActive() {
				return
			}
			m := dto.MentorResponse{User: dto.NewUserSummary(u), Expertise: u.MentorExpertise}
			if g, ok := st.Groups.Get(u.MentorCommunityID); ok {
				m.CommunityID = g.ID
				m.CommunityName = g.Name
				m.MenteeCount = len(models.RemoveID(g.Members, u.ID))
			}
			if m.Expertise == nil {
				m.Expertise = []string{}
			}
			out = append(out, m)
		})
	})
	return out, nil
}
