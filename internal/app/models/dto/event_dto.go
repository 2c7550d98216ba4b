package dto

import (
	"time"

	"github.com/yigit/campusbuzz/internal/app/models"
)

// CreateEventRequest creates an event
type CreateEventRequest struct {
	Title       string    `json:"title" form:"title" binding:"required,notblank,max=200"`
	Description string    `json:"description" form:"description" binding:"max=5000"`
	Location    string    `json:"location" form:"location" binding:"max=200"`
	Category    string    `json:"category" form:"category" binding:"max=60"`
	ImageURL    string    `json:"imageUrl" form:"imageUrl"`
	StartTime   time.Time `json:"startTime" form:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" form:"endTime" binding:"required,gtfield=StartTime"`
}

// UpdateEventRequest edits an event. Nil fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,notblank,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	Location    *string    `json:"location" binding:"omitempty,max=200"`
	Category    *string    `json:"category" binding:"omitempty,max=60"`
	ImageURL    *string    `json:"imageUrl"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

// EventResponse is an event with organizer and attendance resolved
type EventResponse struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Location      string      `json:"location,omitempty"`
	Category      string      `json:"category,omitempty"`
	ImageURL      string      `json:"imageUrl,omitempty"`
	Organizer     UserSummary `json:"organizer"`
	Attendees     []string    `json:"attendees"`
	AttendeeCount int         `json:"attendeeCount"`
	Attending     bool        `json:"attending"`
	StartTime     time.Time   `json:"startTime"`
	EndTime       time.Time   `json:"endTime"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// NewEventResponse resolves e for viewerID
func NewEventResponse(e models.Event, lookup UserLookup, viewerID string) EventResponse {
	return EventResponse{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Location:      e.Location,
		Category:      e.Category,
		ImageURL:      e.ImageURL,
		Organizer:     Summarize(lookup, e.OrganizerID),
		Attendees:     e.Attendees,
		AttendeeCount: len(e.Attendees),
		Attending:     models.ContainsID(e.Attendees, viewerID),
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		CreatedAt:     e.CreatedAt,
	}
}

// RSVPResponse reports attendance after an RSVP toggle
type RSVPResponse struct {
	EventID       string `json:"eventId"`
	Attending     bool   `json:"attending"`
	AttendeeCount int    `json:"attendeeCount"`
}

// EventFilterRequest filters the event list
type EventFilterRequest struct {
	Category string `form:"category"`
	Upcoming bool   `form:"upcoming"`
}
