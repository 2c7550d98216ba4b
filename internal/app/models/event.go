package models

import "time"

// Event is a campus event users can RSVP to
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	OrganizerID string    `json:"organizerId"`
	Attendees   []string  `json:"attendees"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GetID implements Entity
func (e Event) GetID() string { return e.ID }
