package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/auth"
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/latency"
	"github.com/yigit/campusbuzz/internal/store"
)

// GroupService defines the interface for group operations
type GroupService interface {
	CreateGroup(ctx context.Context, actorID string, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	DeleteGroup(ctx context.Context, actorID, groupID string) error
	JoinGroup(ctx context.Context, actorID, groupID string) (*dto.MembershipResponse, error)
	LeaveGroup(ctx context.Context, actorID, groupID string) (*dto.MembershipResponse, error)
	ToggleMembership(ctx context.Context, actorID, groupID string) (*dto.MembershipResponse, error)
	GetGroup(ctx context.Context, viewerID, groupID string) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context, viewerID string, mine bool) ([]dto.GroupResponse, error)
}

// groupServiceImpl implements GroupService
type groupServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(deps *Deps) GroupService {
	return &groupServiceImpl{deps: deps, logger: deps.component("group_service")}
}

// CreateGroup creates a group. The creator becomes its first member and admin.
func (s *groupServiceImpl) CreateGroup(ctx context.Context, actorID string, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("name", req.Name).Msg("Creating group")

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrEmptyContent)
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpSaveGroup)

	var resp dto.GroupResponse
	err := s.deps.Store.Update("create_group", func(st *store.State) error {
		if _, err := auth.ActorIn(st, actorID); err != nil {
			return err
		}
		g := models.Group{
			ID:          s.deps.IDs.ID("g"),
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
			Members:     []string{actorID},
			Admins:      []string{actorID},
			CreatedAt:   s.deps.now(),
		}
		st.Groups.Prepend(g)
		resp = dto.NewGroupResponse(g, lookupIn(st), actorID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("groupID", resp.ID).Msg("Group created")
	return &resp, nil
}

// DeleteGroup removes a group. Group admins and site admins may delete.
// Deleting a mentorship community also clears the mentor's community link.
func (s *groupServiceImpl) DeleteGroup(ctx context.Context, actorID, groupID string) error {
	s.logger.Debug().Str("actorID", actorID).Str("groupID", groupID).Msg("Deleting group")

	if _, err := s.deps.actor(actorID); err != nil {
		return err
	}

	s.deps.delay(ctx, latency.OpSaveGroup)

	return s.deps.Store.Update("delete_group", func(st *store.State) error {
		actor, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		g, ok := st.Groups.Get(groupID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrGroupNotFound)
		}
		if !actor.IsAdmin() && !models.ContainsID(g.Admins, actorID) {
			return apperrors.ErrPermissionDenied
		}
		st.Groups.Remove(groupID)
		st.Users.Map(func(u models.User) (models.User, bool) {
			if u.MentorCommunityID != groupID {
				return u, false
			}
			u.MentorCommunityID = ""
			return u, true
		})
		st.MentorshipRequests.RemoveWhere(func(r models.MentorshipRequest) bool {
			return r.CommunityID == groupID && r.Status == models.MentorshipPending
		})
		return nil
	})
}

// JoinGroup adds the actor to a group
func (s *groupServiceImpl) JoinGroup(ctx context.Context, actorID, groupID string) (*dto.MembershipResponse, error) {
	return s.setMembership(ctx, actorID, groupID, func(members []string) []string {
		return models.AddID(members, actorID)
	})
}

// LeaveGroup removes the actor from a group
func (s *groupServiceImpl) LeaveGroup(ctx context.Context, actorID, groupID string) (*dto.MembershipResponse, error) {
	return s.setMembership(ctx, actorID, groupID, func(members []string) []string {
		return models.RemoveID(members, actorID)
	})
}

// ToggleMembership joins if the actor is not a member and leaves otherwise
func (s *groupServiceImpl) ToggleMembership(ctx context.Context, actorID, groupID string) (*dto.MembershipResponse, error) {
	return s.setMembership(ctx, actorID, groupID, func(members []string) []string {
		out, _ := models.ToggleID(members, actorID)
		return out
	})
}

func (s *groupServiceImpl) setMembership(ctx context.Context, actorID, groupID string, change func([]string) []string) (*dto.MembershipResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Str("groupID", groupID).Msg("Changing group membership")

	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpJoinGroup)

	var resp dto.MembershipResponse
	err := s.deps.Store.Update("group_membership", func(st *store.State) error {
		g, ok := st.Groups.Get(groupID)
		if !ok {
			return apperrors.NotFound(apperrors.ErrGroupNotFound)
		}
		wasMember := models.ContainsID(g.Members, actorID)
		g.Members = change(g.Members)
		isMember := models.ContainsID(g.Members, actorID)
		if g.IsMentorship {
			if isMember && !wasMember {
				return apperrors.Conflict(apperrors.ErrJoinByRequest)
			}
			if wasMember && !isMember && runsCommunity(st, actorID, g) {
				return apperrors.Conflict(apperrors.ErrMentorCannotLeave)
			}
		}
		if !isMember {
			g.Admins = models.RemoveID(g.Admins, actorID)
		}
		st.Groups.Replace(g)
		resp = dto.MembershipResponse{
			GroupID:     g.ID,
			IsMember:    isMember,
			MemberCount: len(g.Members),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// runsCommunity reports whether userID is the mentor behind community g
func runsCommunity(st *store.State, userID string, g models.Group) bool {
	if u, ok := st.Users.Get(userID); ok && u.MentorCommunityID == g.ID {
		return true
	}
	return models.ContainsID(g.Admins, userID)
}

// GetGroup returns one group
func (s *groupServiceImpl) GetGroup(ctx context.Context, viewerID, groupID string) (*dto.GroupResponse, error) {
	var (
		resp dto.GroupResponse
		ok   bool
	)
	s.deps.Store.View(func(st *store.State) {
		var g models.Group
		if g, ok = st.Groups.Get(groupID); ok {
			resp = dto.NewGroupResponse(g, lookupIn(st), viewerID)
		}
	})
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrGroupNotFound)
	}
	return &resp, nil
}

// ListGroups lists all groups, or only the viewer's groups when mine is set
func (s *groupServiceImpl) ListGroups(ctx context.Context, viewerID string, mine bool) ([]dto.GroupResponse, error) {
	var out []dto.GroupResponse
	s.deps.Store.View(func(st *store.State) {
		groups := st.Groups.Filter(func(g models.Group) bool {
			return !mine || models.ContainsID(g.Members, viewerID)
		})
		lookup := lookupIn(st)
		out = make([]dto.GroupResponse, 0, len(groups))
		for _, g := range groups {
			out = append(out, dto.NewGroupResponse(g, lookup, viewerID))
		}
	})
	return out, nil
}
