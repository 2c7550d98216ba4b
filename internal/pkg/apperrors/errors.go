package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Session errors
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrAccountDisabled = errors.New("account is suspended")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Entity lookups
var (
	ErrUserNotFound              = errors.New("user not found")
	ErrPostNotFound              = errors.New("post not found")
	ErrEventNotFound             = errors.New("event not found")
	ErrListingNotFound           = errors.New("marketplace listing not found")
	ErrArticleNotFound           = errors.New("article not found")
	ErrGroupNotFound             = errors.New("group not found")
	ErrConversationNotFound      = errors.New("conversation not found")
	ErrFriendRequestNotFound     = errors.New("friend request not found")
	ErrMentorshipRequestNotFound = errors.New("mentorship request not found")
	ErrNotificationNotFound      = errors.New("notification not found")
	ErrPollNotFound              = errors.New("poll not found")
	ErrJobNotFound               = errors.New("job not found")
)

// Guard clause errors
var (
	ErrEmptyContent          = errors.New("content must not be empty")
	ErrSelfFriendRequest     = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends        = errors.New("users are already friends")
	ErrFriendRequestPending  = errors.New("a friend request between these users is already pending")
	ErrInvalidListingStatus  = errors.New("listing status must be Available or Sold")
	ErrNotAMentor            = errors.New("target user is not a mentor")
	ErrMentorshipPending     = errors.New("a mentorship request is already pending")
	ErrNotParticipant        = errors.New("user is not a participant of this conversation")
	ErrCurrentUserProtected  = errors.New("the current user cannot be removed")
	ErrPollClosed            = errors.New("poll is closed")
	ErrInvalidImage          = errors.New("file is not a supported image")
	ErrRequestAlreadyHandled = errors.New("request has already been answered")
	ErrJoinByRequest         = errors.New("mentorship communities are joined through a mentorship request")
	ErrMentorCannotLeave     = errors.New("mentors cannot leave their own community")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError wraps a guard-clause sentinel so it maps to a validation failure
func NewValidationError(err error) error {
	return &CustomError{
		Err:     errors.Join(ErrValidationFailed, err),
		Message: err.Error(),
	}
}

// NotFound wraps an entity sentinel so callers can match either the entity error
// or the generic ErrResourceNotFound.
func NotFound(err error) error {
	return &CustomError{
		Err:     errors.Join(ErrResourceNotFound, err),
		Message: err.Error(),
	}
}

// Conflict wraps a guard-clause sentinel as ErrConflict
func Conflict(err error) error {
	return &CustomError{
		Err:     errors.Join(ErrConflict, err),
		Message: err.Error(),
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
