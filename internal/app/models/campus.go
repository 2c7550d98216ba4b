package models

import "time"

// Weekday names used by schedule items
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// Valid reports whether d is a known weekday
func (d Weekday) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// ScheduleItem is a class or block in a user's weekly timetable
type ScheduleItem struct {
	ID        string  `json:"id"`
	OwnerID   string  `json:"ownerId"`
	Title     string  `json:"title"`
	Location  string  `json:"location,omitempty"`
	Day       Weekday `json:"day"`
	StartTime string  `json:"startTime" example:"09:00"`
	EndTime   string  `json:"endTime" example:"10:30"`
	Color     string  `json:"color,omitempty"`
}

// GetID implements Entity
func (s ScheduleItem) GetID() string { return s.ID }

// JobType classifies a job posting
type JobType string

const (
	JobFullTime   JobType = "Full-time"
	JobPartTime   JobType = "Part-time"
	JobInternship JobType = "Internship"
)

// Job is a career board posting
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Type        JobType   `json:"type"`
	Description string    `json:"description,omitempty"`
	PostedByID  string    `json:"postedById"`
	PostedAt    time.Time `json:"postedAt"`
}

// GetID implements Entity
func (j Job) GetID() string { return j.ID }

// HeroSlide is a banner on the landing page
type HeroSlide struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Order    int    `json:"order"`
}

// GetID implements Entity
func (h HeroSlide) GetID() string { return h.ID }

// PollOption is one answer of a poll with the ids of its voters
type PollOption struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Voters []string `json:"voters"`
}

// Poll is a single-choice question
type Poll struct {
	ID        string       `json:"id"`
	AuthorID  string       `json:"authorId"`
	Question  string       `json:"question"`
	Options   []PollOption `json:"options"`
	Closed    bool         `json:"closed"`
	CreatedAt time.Time    `json:"createdAt"`
}

// GetID implements Entity
func (p Poll) GetID() string { return p.ID }

// LibraryResourceType classifies a library resource
type LibraryResourceType string

const (
	ResourceBook    LibraryResourceType = "Book"
	ResourceJournal LibraryResourceType = "Journal"
	ResourceDigital LibraryResourceType = "Digital"
)

// LibraryResource is an item in the campus library catalog
type LibraryResource struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Author    string              `json:"author,omitempty"`
	Type      LibraryResourceType `json:"type"`
	Available bool                `json:"available"`
	Location  string              `json:"location,omitempty"`
}

// GetID implements Entity
func (l LibraryResource) GetID() string { return l.ID }

// TodoItem is a personal task
type TodoItem struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

// GetID implements Entity
func (t TodoItem) GetID() string { return t.ID }

// LostFoundKind tells whether an item was lost or found
type LostFoundKind string

const (
	KindLost  LostFoundKind = "lost"
	KindFound LostFoundKind = "found"
)

// LostAndFoundItem is a report on the lost and found board
type LostAndFoundItem struct {
	ID          string        `json:"id"`
	ReporterID  string        `json:"reporterId"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	Kind        LostFoundKind `json:"kind"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Resolved    bool          `json:"resolved"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// GetID implements Entity
func (l LostAndFoundItem) GetID() string { return l.ID }
