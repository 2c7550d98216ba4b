package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/auth"
	"github.com/yigit/campusbuzz/internal/store"
)

// SessionService picks the seed user a client acts as. No password is
// involved.
type SessionService struct {
	deps       *Deps
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(deps *Deps, jwtService *auth.JWTService) *SessionService {
	return &SessionService{deps: deps, jwtService: jwtService, logger: deps.component("session_service")}
}

// StartSession issues a token for userID. An empty id selects the store's
// current user.
func (s *SessionService) StartSession(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	var (
		user    models.User
		found   bool
		profile dto.ProfileResponse
	)
	s.deps.Store.View(func(st *store.State) {
		if userID == "" {
			userID = st.CurrentUserID
		}
		if user, found = st.Users.Get(userID); found {
			profile = dto.NewProfileResponse(user, lookupIn(st), true)
		}
	})
	if !found {
		s.logger.Warn().Str("userID", userID).Msg("Session requested for unknown user")
		return nil, apperrors.NotFound(apperrors.ErrUserNotFound)
	}
	if !user.IsActive() {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateSessionToken(user)
	if err != nil {
		s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to sign session token")
		return nil, err
	}

	s.logger.Info().Str("userID", userID).Msg("Session started")
	return &dto.SessionResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        profile,
	}, nil
}
