package auth

import (
	"github.com/yigit/campusbuzz/internal/app/models"
	"github.com/yigit/campusbuzz/internal/pkg/apperrors"
	"github.com/yigit/campusbuzz/internal/pkg/logger"
	"github.com/yigit/campusbuzz/internal/store"
)

// AuthorizationService answers "who is acting and what may they touch"
// against the in-memory store.
type AuthorizationService struct {
	store *store.Store
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(st *store.Store) *AuthorizationService {
	return &AuthorizationService{store: st}
}

// Actor returns the acting user if it exists and is not suspended
func (s *AuthorizationService) Actor(userID string) (models.User, error) {
	var (
		user models.User
		err  error
	)
	s.store.View(func(st *store.State) {
		user, err = ActorIn(st, userID)
	})
	return user, err
}

// ValidateAdmin returns ErrPermissionDenied unless userID is an active admin
func (s *AuthorizationService) ValidateAdmin(userID string) (models.User, error) {
	user, err := s.Actor(userID)
	if err != nil {
		return models.User{}, err
	}
	if !user.IsAdmin() {
		logger.Warn().Str("userID", userID).Msg("Non-admin attempted an admin command")
		return models.User{}, apperrors.NewForbiddenError("only admins can perform this action")
	}
	return user, nil
}

// ValidateRole returns ErrPermissionDenied unless the user holds one of roles
func (s *AuthorizationService) ValidateRole(userID string, roles ...models.RoleType) (models.User, error) {
	user, err := s.Actor(userID)
	if err != nil {
		return models.User{}, err
	}
	for _, r := range roles {
		if user.Role == r {
			return user, nil
		}
	}
	return models.User{}, apperrors.NewForbiddenError("your role cannot perform this action")
}

// ActorIn resolves the acting user inside a View or Update
func ActorIn(st *store.State, userID string) (models.User, error) {
	user, ok := st.Users.Get(userID)
	if !ok {
		return models.User{}, apperrors.NotFound(apperrors.ErrUserNotFound)
	}
	if !user.IsActive() {
		return models.User{}, apperrors.ErrAccountDisabled
	}
	return user, nil
}

// CanModify reports whether actor may edit or delete something owned by
// ownerID. Admins may modify anything.
func CanModify(actor models.User, ownerID string) bool {
	return actor.ID == ownerID || actor.IsAdmin()
}

// ValidateOwnership returns ErrPermissionDenied unless CanModify holds
func ValidateOwnership(actor models.User, ownerID string) error {
	if !CanModify(actor, ownerID) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateOwner is ValidateOwnership without the admin override
func ValidateOwner(actor models.User, ownerID string) error {
	if actor.ID != ownerID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
