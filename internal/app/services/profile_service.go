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

// ProfileService defines the interface for user profile operations
type ProfileService interface {
	GetProfile(ctx context.Context, viewerID, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, actorID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdateSettings(ctx context.Context, actorID string, req *dto.UpdateSettingsRequest) (*models.UserSettings, error)
	BecomeMentor(ctx context.Context, actorID string, req *dto.BecomeMentorRequest) (*dto.ProfileResponse, error)
	ListUsers(ctx context.Context, filter *dto.UserFilterRequest) ([]dto.UserSummary, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	deps   *Deps
	logger zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(deps *Deps) ProfileService {
	return &profileServiceImpl{deps: deps, logger: deps.component("profile_service")}
}

// GetProfile returns a profile. Private profiles only show their summary to
// non-friends; settings are only shown to the owner.
func (s *profileServiceImpl) GetProfile(ctx context.Context, viewerID, userID string) (*dto.ProfileResponse, error) {
	var (
		resp dto.ProfileResponse
		ok   bool
	)
	s.deps.Store.View(func(st *store.State) {
		var u models.User
		if u, ok = st.Users.Get(userID); !ok {
			return
		}
		owner := viewerID == userID
		resp = dto.NewProfileResponse(u, lookupIn(st), owner)
		if owner || profileVisibleTo(st, u, viewerID) {
			return
		}
		resp.Bio, resp.Email, resp.CoverURL = "", "", ""
		resp.Friends = []dto.UserSummary{}
	})
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrUserNotFound)
	}
	return &resp, nil
}

func profileVisibleTo(st *store.State, u models.User, viewerID string) bool {
	switch u.Settings.ProfileVisibility {
	case models.VisibilityPrivate:
		if v, ok := st.Users.Get(viewerID); ok && v.IsAdmin() {
			return true
		}
		return false
	case models.VisibilityFriends:
		if v, ok := st.Users.Get(viewerID); ok && v.IsAdmin() {
			return true
		}
		return models.ContainsID(u.Friends, viewerID)
	default:
		return true
	}
}

// UpdateProfile edits the actor's own profile. Because entities reference
// users by id, the change is visible everywhere the user appears.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, actorID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Msg("Updating profile")

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperrors.NewBadRequestError("name must not be empty")
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpUpdateProfile)

	var resp dto.ProfileResponse
	err := s.deps.Store.Update("update_profile", func(st *store.State) error {
		u, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			u.Name = strings.TrimSpace(*req.Name)
		}
		if req.Bio != nil {
			u.Bio = *req.Bio
		}
		if req.Major != nil {
			u.Major = *req.Major
		}
		if req.Year != nil {
			u.Year = *req.Year
		}
		if req.AvatarURL != nil {
			u.AvatarURL = *req.AvatarURL
		}
		if req.CoverURL != nil {
			u.CoverURL = *req.CoverURL
		}
		st.Users.Replace(u)
		resp = dto.NewProfileResponse(u, lookupIn(st), true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateSettings changes the actor's settings
func (s *profileServiceImpl) UpdateSettings(ctx context.Context, actorID string, req *dto.UpdateSettingsRequest) (*models.UserSettings, error) {
	s.logger.Debug().Str("actorID", actorID).Msg("Updating settings")

	if req.ProfileVisibility != nil {
		switch models.ProfileVisibility(*req.ProfileVisibility) {
		case models.VisibilityPublic, models.VisibilityFriends, models.VisibilityPrivate:
		default:
			return nil, apperrors.NewBadRequestError("profileVisibility must be public, friends or private")
		}
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpUpdateProfile)

	var settings models.UserSettings
	err := s.deps.Store.Update("update_settings", func(st *store.State) error {
		u, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		if req.EmailNotifications != nil {
			u.Settings.EmailNotifications = *req.EmailNotifications
		}
		if req.PushNotifications != nil {
			u.Settings.PushNotifications = *req.PushNotifications
		}
		if req.ProfileVisibility != nil {
			u.Settings.ProfileVisibility = models.ProfileVisibility(*req.ProfileVisibility)
		}
		if req.DarkMode != nil {
			u.Settings.DarkMode = *req.DarkMode
		}
		st.Users.Replace(u)
		settings = u.Settings
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// BecomeMentor flags the actor as a mentor with the given expertise
func (s *profileServiceImpl) BecomeMentor(ctx context.Context, actorID string, req *dto.BecomeMentorRequest) (*dto.ProfileResponse, error) {
	s.logger.Debug().Str("actorID", actorID).Strs("expertise", req.Expertise).Msg("Becoming mentor")

	expertise := make([]string, 0, len(req.Expertise))
	for _, e := range req.Expertise {
		if e = strings.TrimSpace(e); e != "" {
			expertise = append(expertise, e)
		}
	}
	if len(expertise) == 0 {
		return nil, apperrors.NewBadRequestError("at least one area of expertise is required")
	}
	if _, err := s.deps.actor(actorID); err != nil {
		return nil, err
	}

	s.deps.delay(ctx, latency.OpMentorship)

	var resp dto.ProfileResponse
	err := s.deps.Store.Update("become_mentor", func(st *store.State) error {
		u, err := auth.ActorIn(st, actorID)
		if err != nil {
			return err
		}
		u.IsMentor = true
		u.MentorExpertise = expertise
		st.Users.Replace(u)
		resp = dto.NewProfileResponse(u, lookupIn(st), true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers returns the user directory
func (s *profileServiceImpl) ListUsers(ctx context.Context, filter *dto.UserFilterRequest) ([]dto.UserSummary, error) {
	if filter == nil {
		filter = &dto.UserFilterRequest{}
	}
	var out []dto.UserSummary
	s.deps.Store.View(func(st *store.State) {
		users := st.Users.Filter(func(u models.User) bool {
			if filter.Role != "" && string(u.Role) != filter.Role {
				return false
			}
			if filter.Mentors && !u.IsMentor {
				return false
			}
			if filter.Search != "" && !containsFold(u.Name, filter.Search) && !containsFold(u.Major, filter.Search) {
				return false
			}
			return true
		})
		out = make([]dto.UserSummary, 0, len(users))
		for _, u := range users {
			out = append(out, dto.NewUserSummary(u))
		}
	})
	return out, nil
}
