package models

// Entity is implemented by every record kept in the store.
type Entity interface {
	GetID() string
}

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "Student"
	RoleStaff   RoleType = "Staff"
	RoleAdmin   RoleType = "Admin"
)

// Valid reports whether r is a known role
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// UserStatus defines whether a user may act
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

// Valid reports whether s is a known status
func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserSuspended
}

// Reactions holds the five reaction counters of a post or article.
type Reactions struct {
	Like  int `json:"like"`
	Love  int `json:"love"`
	Laugh int `json:"laugh"`
	Wow   int `json:"wow"`
	Sad   int `json:"sad"`
}

// ReactionKind names one of the reaction counters
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionLaugh ReactionKind = "laugh"
	ReactionWow   ReactionKind = "wow"
	ReactionSad   ReactionKind = "sad"
)

// Apply returns a copy of r with the counter for kind moved by delta.
// Counters never drop below zero. ok is false for an unknown kind.
func (r Reactions) Apply(kind ReactionKind, delta int) (Reactions, bool) {
	var counter *int
	switch kind {
	case ReactionLike:
		counter = &r.Like
	case ReactionLove:
		counter = &r.Love
	case ReactionLaugh:
		counter = &r.Laugh
	case ReactionWow:
		counter = &r.Wow
	case ReactionSad:
		counter = &r.Sad
	default:
		return r, false
	}
	*counter += delta
	if *counter < 0 {
		*counter = 0
	}
	return r, true
}

// Total is the sum of all counters
func (r Reactions) Total() int {
	return r.Like + r.Love + r.Laugh + r.Wow + r.Sad
}
